package server

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/example/glowmart/pkg/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const orderBody = `{
	"items": [{"id": "p1", "name": "Serum", "price": 50000, "quantity": 2, "subtotal": 100000}],
	"totalAmount": 100000,
	"paymentMethod": "cash",
	"paymentStatus": "pending",
	"orderStatus": "pending",
	"paymentDetails": {"cashAmount": 150000, "changeAmount": 50000},
	"customerInfo": {"userId": "u1", "name": "Rara", "email": "rara@example.com"},
	"orderDate": "2026-08-30T10:00:00Z",
	"orderNumber": "ORD-123-abc"
}`

func TestCreateTransaction(t *testing.T) {
	orders := &fakeOrders{}
	s := newTestServer(&fakeProducts{}, orders, &fakeUsers{}, nil)

	w := doRequest(s, http.MethodPost, "/transactions", orderBody, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeBody(t, w)
	if resp["success"] != true {
		t.Fatalf("expected success, got %v", resp)
	}
	if resp["orderNumber"] != "ORD-123-abc" {
		t.Fatalf("order number should be echoed, got %v", resp["orderNumber"])
	}
	if resp["id"] == "" {
		t.Fatal("expected a generated id")
	}
	if len(orders.orders) != 1 {
		t.Fatal("order was not stored")
	}
}

func TestCreateTransactionGeneratesOrderNumber(t *testing.T) {
	orders := &fakeOrders{}
	s := newTestServer(&fakeProducts{}, orders, &fakeUsers{}, nil)

	body := strings.Replace(orderBody, `"orderNumber": "ORD-123-abc"`, `"orderNumber": ""`, 1)
	w := doRequest(s, http.MethodPost, "/transactions", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeBody(t, w)
	number, _ := resp["orderNumber"].(string)
	if !strings.HasPrefix(number, "ORD-") {
		t.Fatalf("expected a generated ORD- number, got %q", number)
	}
}

func TestCreateTransactionNotDeduplicated(t *testing.T) {
	orders := &fakeOrders{}
	s := newTestServer(&fakeProducts{}, orders, &fakeUsers{}, nil)

	doRequest(s, http.MethodPost, "/transactions", orderBody, nil)
	doRequest(s, http.MethodPost, "/transactions", orderBody, nil)

	if len(orders.orders) != 2 {
		t.Fatalf("two identical submissions must create two orders, got %d", len(orders.orders))
	}
	if orders.orders[0].ID == orders.orders[1].ID {
		t.Fatal("the two orders must have distinct identifiers")
	}
}

func TestCreateTransactionRejectsBadTotal(t *testing.T) {
	s := newTestServer(&fakeProducts{}, &fakeOrders{}, &fakeUsers{}, nil)

	body := strings.Replace(orderBody, `"totalAmount": 100000`, `"totalAmount": 90000`, 1)
	w := doRequest(s, http.MethodPost, "/transactions", body, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("mismatched total must be rejected, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateTransactionRejectsEmptyItems(t *testing.T) {
	s := newTestServer(&fakeProducts{}, &fakeOrders{}, &fakeUsers{}, nil)

	w := doRequest(s, http.MethodPost, "/transactions",
		`{"items": [], "totalAmount": 0, "paymentMethod": "cash"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateTransactionStoresQRISReference(t *testing.T) {
	cache := &fakeCache{}
	s := newTestServer(&fakeProducts{}, &fakeOrders{}, &fakeUsers{}, cache)

	body := strings.Replace(orderBody, `"paymentMethod": "cash"`, `"paymentMethod": "qris"`, 1)
	body = strings.Replace(body,
		`"paymentDetails": {"cashAmount": 150000, "changeAmount": 50000}`,
		`"paymentDetails": {"qrisReference": "ref-777"}`, 1)

	w := doRequest(s, http.MethodPost, "/transactions", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if cache.qrisRefs["ref-777"] != "ORD-123-abc" {
		t.Fatalf("qris reference should map to the order number, got %v", cache.qrisRefs)
	}
}

func TestListTransactionsFiltersByUser(t *testing.T) {
	orders := &fakeOrders{orders: []models.Order{
		{ID: primitive.NewObjectID(), OrderNumber: "a", CustomerInfo: models.CustomerInfo{UserID: "u1"}},
		{ID: primitive.NewObjectID(), OrderNumber: "b", CustomerInfo: models.CustomerInfo{UserID: "u2"}},
	}}
	s := newTestServer(&fakeProducts{}, orders, &fakeUsers{}, nil)

	w := doRequest(s, http.MethodGet, "/transactions?userId=u1", "", nil)
	resp := decodeBody(t, w)
	list, _ := resp["transactions"].([]interface{})
	if len(list) != 1 {
		t.Fatalf("expected 1 transaction for u1, got %d", len(list))
	}
}

func TestUpdateStatusMissingFields(t *testing.T) {
	s := newTestServer(&fakeProducts{}, &fakeOrders{}, &fakeUsers{}, nil)

	w := doRequest(s, http.MethodPut, "/transactions", `{"id": "x"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decodeBody(t, w)["message"]; got != "ID dan status wajib diisi" {
		t.Fatalf("unexpected message: %v", got)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	s := newTestServer(&fakeProducts{}, &fakeOrders{}, &fakeUsers{}, nil)

	w := doRequest(s, http.MethodPut, "/transactions", `{"id": "x", "orderStatus": "paid"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decodeBody(t, w)["message"]; got != "Status pesanan tidak valid" {
		t.Fatalf("unexpected message: %v", got)
	}
}

func TestUpdateStatusPendingToShipped(t *testing.T) {
	orders := &fakeOrders{orders: []models.Order{
		{ID: primitive.NewObjectID(), OrderNumber: "a", OrderStatus: models.StatusPending},
	}}
	s := newTestServer(&fakeProducts{}, orders, &fakeUsers{}, nil)

	id := orders.orders[0].ID.Hex()
	w := doRequest(s, http.MethodPut, "/transactions",
		fmt.Sprintf(`{"id": %q, "orderStatus": "shipped"}`, id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Re-fetch shows the new status.
	listResp := decodeBody(t, doRequest(s, http.MethodGet, "/transactions", "", nil))
	list := listResp["transactions"].([]interface{})
	first := list[0].(map[string]interface{})
	if first["orderStatus"] != "shipped" {
		t.Fatalf("expected shipped after re-fetch, got %v", first["orderStatus"])
	}
}

func TestUpdateStatusTerminalOrderRejected(t *testing.T) {
	orders := &fakeOrders{orders: []models.Order{
		{ID: primitive.NewObjectID(), OrderNumber: "a", OrderStatus: models.StatusCompleted},
	}}
	s := newTestServer(&fakeProducts{}, orders, &fakeUsers{}, nil)

	id := orders.orders[0].ID.Hex()
	w := doRequest(s, http.MethodPut, "/transactions",
		fmt.Sprintf(`{"id": %q, "orderStatus": "processing"}`, id), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if orders.orders[0].OrderStatus != models.StatusCompleted {
		t.Fatal("terminal order must be left untouched")
	}
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	s := newTestServer(&fakeProducts{}, &fakeOrders{}, &fakeUsers{}, nil)

	w := doRequest(s, http.MethodPut, "/transactions",
		fmt.Sprintf(`{"id": %q, "orderStatus": "shipped"}`, primitive.NewObjectID().Hex()), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("a no-op update is a failure; expected 400, got %d", w.Code)
	}
}

func TestTransactionStats(t *testing.T) {
	orders := &fakeOrders{orders: []models.Order{
		{ID: primitive.NewObjectID(), OrderDate: "2026-08-30T09:00:00Z", TotalAmount: 100000,
			CustomerInfo: models.CustomerInfo{Name: "Rara"}},
		{ID: primitive.NewObjectID(), OrderDate: "2026-08-30T12:00:00Z", TotalAmount: 50000,
			CustomerInfo: models.CustomerInfo{Name: "Dina"}},
		{ID: primitive.NewObjectID(), OrderDate: "2026-08-31T08:00:00Z", TotalAmount: 75000,
			CustomerInfo: models.CustomerInfo{Name: "Rara"}},
	}}
	s := newTestServer(&fakeProducts{}, orders, &fakeUsers{}, nil)

	w := doRequest(s, http.MethodGet, "/transactions/stats", "", nil)
	resp := decodeBody(t, w)
	if resp["totalTransactions"] != float64(3) {
		t.Fatalf("expected 3 transactions, got %v", resp["totalTransactions"])
	}
	stats := resp["stats"].(map[string]interface{})
	day := stats["2026-08-30"].(map[string]interface{})
	if day["count"] != float64(2) || day["total"] != float64(150000) {
		t.Fatalf("unexpected day stats: %v", day)
	}

	// Staff-name filter narrows the fold.
	w = doRequest(s, http.MethodGet, "/transactions/stats?kasir=Rara", "", nil)
	resp = decodeBody(t, w)
	if resp["totalTransactions"] != float64(2) {
		t.Fatalf("expected 2 transactions for Rara, got %v", resp["totalTransactions"])
	}
}

func TestAdminStats(t *testing.T) {
	products := &fakeProducts{products: []models.Product{{ID: primitive.NewObjectID(), Name: "Serum"}}}
	orders := &fakeOrders{orders: []models.Order{
		{ID: primitive.NewObjectID(), OrderStatus: models.StatusShipped},
		{ID: primitive.NewObjectID()},
	}}
	users := &fakeUsers{users: []models.User{{ID: primitive.NewObjectID(), Username: "admin"}}}
	s := newTestServer(products, orders, users, nil)

	w := doRequest(s, http.MethodGet, "/admin/stats", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeBody(t, w)
	if resp["totalProducts"] != float64(1) || resp["totalOrders"] != float64(2) || resp["totalUsers"] != float64(1) {
		t.Fatalf("unexpected counts: %v", resp)
	}
	recent := resp["recentOrders"].([]interface{})
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent orders, got %d", len(recent))
	}
	// Orders without a stored status render as pending.
	second := recent[1].(map[string]interface{})
	if second["status"] != "pending" {
		t.Fatalf("missing status should default to pending, got %v", second["status"])
	}
}
