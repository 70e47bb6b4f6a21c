package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/glowmart/pkg/models"
)

func TestPlaceOrder(t *testing.T) {
	var gotOrder models.Order
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/transactions" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotOrder); err != nil {
			t.Fatalf("decode order: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":     true,
			"orderNumber": "ORD-42-abc",
			"id":          "65f000000000000000000001",
		})
	}))
	defer ts.Close()

	c := New(ts.URL)
	placed, err := c.PlaceOrder(context.Background(), &models.Order{
		OrderNumber:   "ORD-42-abc",
		PaymentMethod: models.PaymentCash,
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if placed.OrderNumber != "ORD-42-abc" || placed.ID != "65f000000000000000000001" {
		t.Fatalf("unexpected placed order: %+v", placed)
	}
	if gotOrder.OrderNumber != "ORD-42-abc" {
		t.Fatalf("order was not forwarded: %+v", gotOrder)
	}
}

func TestPlaceOrderRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Pesanan tidak valid",
		})
	}))
	defer ts.Close()

	_, err := New(ts.URL).PlaceOrder(context.Background(), &models.Order{})
	if err == nil {
		t.Fatal("expected an error for a rejected order")
	}
}

func TestListOrdersFiltersByUser(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("userId"); got != "u1" {
			t.Fatalf("expected userId=u1, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"transactions": []map[string]interface{}{
				{"orderNumber": "ORD-1", "orderStatus": "shipped"},
			},
		})
	}))
	defer ts.Close()

	orders, err := New(ts.URL).ListOrders(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 1 || orders[0].OrderStatus != models.StatusShipped {
		t.Fatalf("unexpected orders: %+v", orders)
	}
}

func TestUpdateUserSelfGuard(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("self-modification must be refused before any request is sent")
	}))
	defer ts.Close()

	c := New(ts.URL).WithActor("admin-1")
	role := "user"
	if err := c.UpdateUser(context.Background(), "admin-1", &role, nil); !errors.Is(err, ErrSelfModification) {
		t.Fatalf("expected ErrSelfModification, got %v", err)
	}
	if err := c.DeleteUser(context.Background(), "admin-1"); !errors.Is(err, ErrSelfModification) {
		t.Fatalf("expected ErrSelfModification, got %v", err)
	}
}

func TestActorHeaderForwarded(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-User-ID"); got != "admin-1" {
			t.Fatalf("expected X-User-ID header, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer ts.Close()

	c := New(ts.URL).WithActor("admin-1")
	if err := c.DeleteUser(context.Background(), "user-2"); err != nil {
		t.Fatalf("delete user: %v", err)
	}
}

func TestLoginFailureSurfacesMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Username atau password salah",
		})
	}))
	defer ts.Close()

	_, err := New(ts.URL).Login(context.Background(), "rara", "wrong")
	if err == nil {
		t.Fatal("expected an error")
	}
	if want := "Username atau password salah"; !strings.Contains(err.Error(), want) {
		t.Fatalf("error should carry the server message, got %v", err)
	}
}

func TestAdminStats(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"totalProducts": 3,
			"totalOrders":   7,
			"totalUsers":    2,
			"recentOrders": []map[string]string{
				{"id": "a", "status": "pending"},
			},
		})
	}))
	defer ts.Close()

	stats, err := New(ts.URL).AdminStats(context.Background())
	if err != nil {
		t.Fatalf("admin stats: %v", err)
	}
	if stats.TotalProducts != 3 || stats.TotalOrders != 7 || stats.TotalUsers != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(stats.RecentOrders) != 1 || stats.RecentOrders[0].Status != "pending" {
		t.Fatalf("unexpected recent orders: %+v", stats.RecentOrders)
	}
}
