package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/glowmart/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentNone means no payment method has been selected yet.
const PaymentNone models.PaymentMethod = ""

// PlacedOrder is the store's answer to a successful submission.
type PlacedOrder struct {
	ID          string
	OrderNumber string
}

// OrderPlacer submits a finished order to the order store. The HTTP API
// client implements it; tests use fakes.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, order *models.Order) (*PlacedOrder, error)
}

// Notifier is the user-facing confirmation/alert surface. Presentation
// is external; the workflow only emits messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

var (
	ErrCartEmpty        = errors.New("cart is empty")
	ErrNoPaymentMethod  = errors.New("no payment method selected")
	ErrInsufficientCash = errors.New("cash received is less than the total")
	ErrQRISNotReady     = errors.New("qris code is not ready")
)

// Checkout drives a single cart through payment selection and order
// submission. The cart is injected, so the workflow holds no hidden
// state of its own beyond the payment sub-state.
type Checkout struct {
	cart     *Cart
	placer   OrderPlacer
	qris     QRISGenerator
	notify   Notifier
	logger   *zap.Logger
	customer models.CustomerInfo

	method       models.PaymentMethod
	cashReceived float64
	cashEntered  bool
	payload      *QRISPayload
}

func New(cart *Cart, placer OrderPlacer, gen QRISGenerator, notify Notifier, logger *zap.Logger, customer models.CustomerInfo) *Checkout {
	if gen == nil {
		gen = SimulatedQRIS{}
	}
	if notify == nil {
		notify = nopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checkout{
		cart:     cart,
		placer:   placer,
		qris:     gen,
		notify:   notify,
		logger:   logger,
		customer: customer,
	}
}

func (c *Checkout) Cart() *Cart {
	return c.cart
}

func (c *Checkout) Method() models.PaymentMethod {
	return c.method
}

func (c *Checkout) AddToCart(p models.Product) {
	if c.cart.Add(p) {
		c.notify.Success("Produk ditambahkan ke keranjang!")
	} else {
		c.notify.Success("Jumlah produk di keranjang bertambah!")
	}
}

func (c *Checkout) UpdateQuantity(productID string, quantity int) {
	c.cart.UpdateQuantity(productID, quantity)
}

func (c *Checkout) RemoveFromCart(productID string) {
	if c.cart.Remove(productID) {
		c.notify.Success("Produk dihapus dari keranjang!")
	}
}

func (c *Checkout) ClearCart() {
	c.cart.Clear()
	c.notify.Success("Keranjang dikosongkan!")
}

// SelectPayment moves the workflow from method selection into a payment
// branch. The qris branch obtains a code up front; on failure the
// workflow reverts to selection and the cart is untouched.
func (c *Checkout) SelectPayment(ctx context.Context, method models.PaymentMethod) error {
	switch method {
	case models.PaymentQRIS:
		payload, err := c.qris.Generate(ctx, c.cart.Total())
		if err != nil {
			c.method = PaymentNone
			c.payload = nil
			c.notify.Error("Gagal membuat QRIS. Silakan coba lagi.")
			return fmt.Errorf("failed to generate qris code: %w", err)
		}
		c.method = models.PaymentQRIS
		c.payload = payload
	case models.PaymentCash:
		c.method = models.PaymentCash
		c.payload = nil
		c.cashReceived = 0
		c.cashEntered = false
	default:
		return fmt.Errorf("unknown payment method %q", method)
	}
	return nil
}

func (c *Checkout) QRIS() *QRISPayload {
	return c.payload
}

// EnterCash records the amount the operator received and returns the
// change due.
func (c *Checkout) EnterCash(received float64) float64 {
	c.cashReceived = received
	c.cashEntered = true
	return c.Change()
}

func (c *Checkout) Change() float64 {
	return c.cashReceived - c.cart.Total()
}

// CanConfirm reports whether the current payment sub-state allows
// submission: a ready QR code, or entered cash covering the total.
func (c *Checkout) CanConfirm() bool {
	switch c.method {
	case models.PaymentQRIS:
		return c.payload != nil
	case models.PaymentCash:
		return c.cashEntered && c.Change() >= 0
	}
	return false
}

// Cancel returns to method selection. The cart survives.
func (c *Checkout) Cancel() {
	c.method = PaymentNone
	c.payload = nil
	c.cashReceived = 0
	c.cashEntered = false
}

// ProcessPayment builds the order payload and submits it. On success
// the cart is cleared and the payment state reset; on failure both are
// kept so the user can retry.
func (c *Checkout) ProcessPayment(ctx context.Context) (*PlacedOrder, error) {
	if c.cart.Empty() {
		return nil, ErrCartEmpty
	}

	total := c.cart.Total()
	details := models.PaymentDetails{}

	switch c.method {
	case models.PaymentCash:
		if !c.cashEntered || c.Change() < 0 {
			c.notify.Error("Uang yang diterima kurang dari total belanja")
			return nil, ErrInsufficientCash
		}
		details.CashAmount = c.cashReceived
		details.ChangeAmount = c.Change()
	case models.PaymentQRIS:
		if c.payload == nil {
			return nil, ErrQRISNotReady
		}
		details.QRISReference = c.payload.Reference
	default:
		return nil, ErrNoPaymentMethod
	}

	now := time.Now().UTC()
	order := &models.Order{
		OrderNumber:    newOrderNumber(now),
		Items:          c.cart.Items(),
		TotalAmount:    total,
		PaymentMethod:  c.method,
		PaymentStatus:  "pending",
		OrderStatus:    models.StatusPending,
		PaymentDetails: details,
		CustomerInfo:   c.customer,
		OrderDate:      now.Format(time.RFC3339),
	}

	placed, err := c.placer.PlaceOrder(ctx, order)
	if err != nil {
		c.logger.Error("failed to place order",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
		c.notify.Error("Terjadi kesalahan saat memproses pesanan. Silakan coba lagi.")
		return nil, err
	}

	c.logger.Info("order placed",
		zap.String("order_number", placed.OrderNumber),
		zap.Float64("total", total),
		zap.String("payment_method", string(c.method)))

	c.cart.Clear()
	c.Cancel()
	c.notify.Success(fmt.Sprintf("Pesanan berhasil dibuat! Nomor order: %s", placed.OrderNumber))
	return placed, nil
}

// newOrderNumber makes a unique order number. Nothing deduplicates
// submissions, so two identical orders get two distinct numbers.
func newOrderNumber(now time.Time) string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}
