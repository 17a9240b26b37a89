package billing

import "fmt"

// NextInvoiceNumber derives a human-readable invoice number from the
// current row count: count 0 -> "INV-00001", count 41 -> "INV-00042".
// The numeric part is padded to five digits and simply grows beyond
// that (count 99999 -> "INV-100000").
//
// Count-then-insert is not atomic: two submissions racing through this
// can derive the same number. The invoices table carries a unique index
// on invoice_number, so the loser fails its insert instead of silently
// duplicating.
func NextInvoiceNumber(count int64) string {
	return fmt.Sprintf("INV-%05d", count+1)
}
