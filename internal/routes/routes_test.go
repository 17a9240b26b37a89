package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"business-management-backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal("open test db:", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.InvoiceAuditLog{},
	); err != nil {
		t.Fatal("migrate:", err)
	}

	r := gin.New()
	RegisterRoutes(r, db, []byte("test-secret"))
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func registerUser(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Cameron", "email": "cameron@example.com", "password": "hunter22",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	token, _ := decode(t, w)["token"].(string)
	if token == "" {
		t.Fatal("no token in register response")
	}
	return token
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health = %d", w.Code)
	}
}

func TestSessionStates(t *testing.T) {
	r, _ := newTestRouter(t)

	// No token: absent.
	w := doJSON(t, r, http.MethodGet, "/api/session", "", nil)
	if got := decode(t, w)["state"]; got != "absent" {
		t.Fatalf("state without token = %v, want absent", got)
	}

	// Garbage token: absent.
	w = doJSON(t, r, http.MethodGet, "/api/session", "garbage", nil)
	if got := decode(t, w)["state"]; got != "absent" {
		t.Fatalf("state with bad token = %v, want absent", got)
	}

	// Valid token: present with user identity.
	token := registerUser(t, r)
	w = doJSON(t, r, http.MethodGet, "/api/session", token, nil)
	out := decode(t, w)
	if out["state"] != "present" {
		t.Fatalf("state with token = %v, want present", out["state"])
	}
	if out["user"] == nil {
		t.Fatal("present state should carry the user")
	}
}

func TestCustomerEndpointsRequireSession(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/customers", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list = %d, want 401", w.Code)
	}
}

func TestCustomerCreateListGet(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerUser(t, r)

	// Name is required.
	w := doJSON(t, r, http.MethodPost, "/api/customers", token, map[string]string{"email": "x@y.z"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("nameless create = %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/customers", token, map[string]string{
		"name": "Acme", "email": "billing@acme.test", "phone": "555-0100", "address": "1 Main St",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}
	created := decode(t, w)["customer"].(map[string]any)
	id := created["id"].(string)

	w = doJSON(t, r, http.MethodGet, "/api/customers", token, nil)
	customers := decode(t, w)["customers"].([]any)
	if len(customers) != 1 {
		t.Fatalf("list length = %d, want 1", len(customers))
	}

	w = doJSON(t, r, http.MethodGet, "/api/customers/"+id, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get = %d", w.Code)
	}

	// Unknown id is a 404, bad id a 400.
	w = doJSON(t, r, http.MethodGet, "/api/customers/6c1f2ee5-0000-0000-0000-000000000000", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing customer = %d, want 404", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/customers/not-a-uuid", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad id = %d, want 400", w.Code)
	}
}

func TestInvoiceCreateAndList(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/customers", token, map[string]string{"name": "Acme"})
	customerID := decode(t, w)["customer"].(map[string]any)["id"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/invoices", token, map[string]any{
		"customer_id": customerID,
		"due_date":    "2025-10-01",
		"notes":       "net 30",
		"items": []map[string]any{
			{"description": "consulting", "quantity": 2, "unit_price": 100, "discount": 0.1, "taxable": true},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create invoice = %d %s", w.Code, w.Body.String())
	}
	out := decode(t, w)
	totals := out["totals"].(map[string]any)
	if totals["subtotal"].(float64) != 180 || totals["tax"].(float64) != 14.4 {
		t.Fatalf("totals = %v", totals)
	}
	invoice := out["invoice"].(map[string]any)
	if invoice["invoice_number"] != "INV-00001" {
		t.Fatalf("invoice number = %v", invoice["invoice_number"])
	}

	// Listing resolves the customer name.
	w = doJSON(t, r, http.MethodGet, "/api/invoices?sort=customer&dir=asc", token, nil)
	rows := decode(t, w)["invoices"].([]any)
	if len(rows) != 1 {
		t.Fatalf("invoice list length = %d", len(rows))
	}
	if rows[0].(map[string]any)["customer_name"] != "Acme" {
		t.Fatalf("customer name not resolved: %v", rows[0])
	}

	// Unknown sort column is rejected.
	w = doJSON(t, r, http.MethodGet, "/api/invoices?sort=created_at", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad sort = %d, want 400", w.Code)
	}

	// Detail carries items and rounded totals.
	invoiceID := invoice["id"].(string)
	w = doJSON(t, r, http.MethodGet, "/api/invoices/"+invoiceID, token, nil)
	detail := decode(t, w)
	if len(detail["items"].([]any)) != 1 {
		t.Fatalf("detail items = %v", detail["items"])
	}

	// PDF download responds with a PDF attachment.
	w = doJSON(t, r, http.MethodGet, "/api/invoices/"+invoiceID+"/pdf", token, nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("pdf = %d, content-type %q", w.Code, w.Header().Get("Content-Type"))
	}
}

func TestInvoicePartialFailureResponse(t *testing.T) {
	r, db := newTestRouter(t)
	token := registerUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/customers", token, map[string]string{"name": "Acme"})
	customerID := decode(t, w)["customer"].(map[string]any)["id"].(string)

	if err := db.Migrator().DropTable(&models.InvoiceItem{}); err != nil {
		t.Fatal(err)
	}

	w = doJSON(t, r, http.MethodPost, "/api/invoices", token, map[string]any{
		"customer_id": customerID,
		"due_date":    "2025-10-01",
		"items": []map[string]any{
			{"description": "widget", "quantity": 1, "unit_price": 10},
		},
	})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("partial failure = %d, want 502", w.Code)
	}
	out := decode(t, w)
	if out["invoice"] == nil {
		t.Fatal("orphaned header should be reported")
	}
	debug, _ := out["debug"].(string)
	if debug == "" {
		t.Fatal("debug trail missing from partial failure response")
	}
}

func TestDashboardAndSettings(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerUser(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/dashboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard = %d", w.Code)
	}
	out := decode(t, w)
	if out["customer_count"].(float64) != 0 {
		t.Fatalf("customer_count = %v, want 0", out["customer_count"])
	}

	w = doJSON(t, r, http.MethodGet, "/api/settings", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("settings = %d", w.Code)
	}
}
