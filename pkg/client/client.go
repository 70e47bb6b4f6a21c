// Package client is the programmatic face of the storefront UI: one
// HTTP call per user action, no retries, no request coalescing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/example/glowmart/pkg/checkout"
	"github.com/example/glowmart/pkg/models"
	"github.com/example/glowmart/pkg/reporting"
)

// ErrSelfModification is returned before any network call when an admin
// tries to change or delete their own account.
var ErrSelfModification = errors.New("cannot modify own account")

type Client struct {
	baseURL    string
	httpClient *http.Client
	actorID    string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithActor returns a copy of the client acting as the given user; the
// id travels in the X-User-ID header so the server can apply the same
// self-protection rules.
func (c *Client) WithActor(userID string) *Client {
	cp := *c
	cp.actorID = userID
	return &cp
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	var created models.Product
	if err := c.do(ctx, http.MethodPost, "/products", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, fields map[string]interface{}) error {
	body := map[string]interface{}{"id": id}
	for k, v := range fields {
		body[k] = v
	}
	return c.do(ctx, http.MethodPut, "/products", body, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products", map[string]string{"id": id}, nil)
}

type placeOrderResponse struct {
	Success     bool   `json:"success"`
	OrderNumber string `json:"orderNumber"`
	ID          string `json:"id"`
	Message     string `json:"message"`
}

// PlaceOrder submits a checkout payload to the order store. It
// implements checkout.OrderPlacer.
func (c *Client) PlaceOrder(ctx context.Context, order *models.Order) (*checkout.PlacedOrder, error) {
	var resp placeOrderResponse
	if err := c.do(ctx, http.MethodPost, "/transactions", order, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("order rejected: %s", resp.Message)
	}
	return &checkout.PlacedOrder{ID: resp.ID, OrderNumber: resp.OrderNumber}, nil
}

type listOrdersResponse struct {
	Success      bool           `json:"success"`
	Transactions []models.Order `json:"transactions"`
	Message      string         `json:"message"`
}

func (c *Client) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	path := "/transactions"
	if userID != "" {
		path += "?userId=" + url.QueryEscape(userID)
	}
	var resp listOrdersResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("list orders failed: %s", resp.Message)
	}
	return resp.Transactions, nil
}

// UpdateOrderStatus changes one order's status. Callers re-fetch the
// full list afterwards instead of patching local state.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	body := map[string]interface{}{"id": id, "orderStatus": status}
	return c.do(ctx, http.MethodPut, "/transactions", body, nil)
}

type statsResponse struct {
	Success           bool                         `json:"success"`
	Stats             map[string]reporting.DayStat `json:"stats"`
	TotalTransactions int                          `json:"totalTransactions"`
	Message           string                       `json:"message"`
}

func (c *Client) TransactionStats(ctx context.Context, startDate, endDate, kasir string) (map[string]reporting.DayStat, int, error) {
	query := url.Values{}
	if startDate != "" {
		query.Set("startDate", startDate)
	}
	if endDate != "" {
		query.Set("endDate", endDate)
	}
	if kasir != "" {
		query.Set("kasir", kasir)
	}
	path := "/transactions/stats"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var resp statsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, 0, err
	}
	if !resp.Success {
		return nil, 0, fmt.Errorf("stats failed: %s", resp.Message)
	}
	return resp.Stats, resp.TotalTransactions, nil
}

type listUsersResponse struct {
	Users []models.User `json:"users"`
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var resp listUsersResponse
	if err := c.do(ctx, http.MethodGet, "/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// UpdateUser changes a user's role and/or active flag. The self-guard
// mirrors the admin UI: controls for the acting admin's own row are
// disabled before the server ever sees the request.
func (c *Client) UpdateUser(ctx context.Context, id string, role *string, isActive *bool) error {
	if c.actorID != "" && c.actorID == id {
		return ErrSelfModification
	}
	body := map[string]interface{}{"id": id}
	if role != nil {
		body["role"] = *role
	}
	if isActive != nil {
		body["isActive"] = *isActive
	}
	return c.do(ctx, http.MethodPut, "/users", body, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	if c.actorID != "" && c.actorID == id {
		return ErrSelfModification
	}
	return c.do(ctx, http.MethodDelete, "/users", map[string]string{"id": id}, nil)
}

// AuthUser is the safe view of an account returned by login.
type AuthUser struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	FullName    string   `json:"fullName"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

type loginResponse struct {
	Success bool     `json:"success"`
	User    AuthUser `json:"user"`
	Message string   `json:"message"`
}

func (c *Client) Login(ctx context.Context, username, password string) (*AuthUser, error) {
	body := map[string]string{"username": username, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("login failed: %s", resp.Message)
	}
	return &resp.User, nil
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
	Role     string `json:"role,omitempty"`
}

type registerResponse struct {
	Success bool        `json:"success"`
	User    models.User `json:"user"`
	Message string      `json:"message"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	var resp registerResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("registration failed: %s", resp.Message)
	}
	return &resp.User, nil
}

type AdminStats struct {
	TotalProducts int64 `json:"totalProducts"`
	TotalOrders   int64 `json:"totalOrders"`
	TotalUsers    int64 `json:"totalUsers"`
	RecentOrders  []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"recentOrders"`
}

func (c *Client) AdminStats(ctx context.Context) (*AdminStats, error) {
	var stats AdminStats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.actorID != "" {
		req.Header.Set("X-User-ID", c.actorID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil {
			if apiErr.Error != "" {
				return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
			}
			if apiErr.Message != "" {
				return fmt.Errorf("%s %s: %s", method, path, apiErr.Message)
			}
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
