package billing

import (
	"sort"
	"strings"
)

type SortKey string

const (
	SortByDueDate  SortKey = "due_date"
	SortByStatus   SortKey = "payment_status"
	SortByCustomer SortKey = "customer"
)

func (k SortKey) IsValid() bool {
	switch k {
	case SortByDueDate, SortByStatus, SortByCustomer:
		return true
	}
	return false
}

// SortState models the column-header toggle of the invoice table:
// selecting the active key flips direction, selecting a new key resets
// to ascending.
type SortState struct {
	Key SortKey
	Asc bool
}

func (s *SortState) Toggle(key SortKey) {
	if key == s.Key {
		s.Asc = !s.Asc
		return
	}
	s.Key = key
	s.Asc = true
}

// SortInvoiceRows orders rows in place by the given column. Each column
// compares by its own type: due dates as timestamps, status and
// customer name as case-insensitive strings. Ties are acceptable in any
// order.
func SortInvoiceRows(rows []InvoiceRow, key SortKey, asc bool) {
	less := func(a, b InvoiceRow) bool {
		switch key {
		case SortByStatus:
			return strings.ToLower(a.PaymentStatus) < strings.ToLower(b.PaymentStatus)
		case SortByCustomer:
			return strings.ToLower(a.CustomerName) < strings.ToLower(b.CustomerName)
		default:
			return a.DueDate.Before(b.DueDate)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if asc {
			return less(rows[i], rows[j])
		}
		return less(rows[j], rows[i])
	})
}
