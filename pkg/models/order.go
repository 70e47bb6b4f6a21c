package models

import (
	"errors"
	"fmt"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentMethod selects how an order is paid. QRIS is a simulated
// QR-code payment standing in for a real gateway.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentQRIS PaymentMethod = "qris"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentQRIS
}

type OrderItem struct {
	ProductID string  `bson:"id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Subtotal  float64 `bson:"subtotal" json:"subtotal"`
}

type PaymentDetails struct {
	CashAmount    float64 `bson:"cashAmount,omitempty" json:"cashAmount,omitempty"`
	ChangeAmount  float64 `bson:"changeAmount,omitempty" json:"changeAmount,omitempty"`
	QRISReference string  `bson:"qrisReference,omitempty" json:"qrisReference,omitempty"`
}

// CustomerInfo is a snapshot of the buyer taken at checkout time.
type CustomerInfo struct {
	UserID  string `bson:"userId" json:"userId"`
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
}

type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber    string             `bson:"orderNumber" json:"orderNumber"`
	Items          []OrderItem        `bson:"items" json:"items"`
	TotalAmount    float64            `bson:"totalAmount" json:"totalAmount"`
	PaymentMethod  PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus  string             `bson:"paymentStatus" json:"paymentStatus"`
	OrderStatus    OrderStatus        `bson:"orderStatus" json:"orderStatus"`
	PaymentDetails PaymentDetails     `bson:"paymentDetails" json:"paymentDetails"`
	CustomerInfo   CustomerInfo       `bson:"customerInfo" json:"customerInfo"`
	OrderDate      string             `bson:"orderDate" json:"orderDate"`
	CreatedAt      string             `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt      string             `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

var ErrEmptyOrder = errors.New("order has no items")

// Validate checks an order at the store boundary. Malformed records are
// rejected outright rather than stored with defaulted fields.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}
	var sum float64
	for i, item := range o.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("item %d: quantity must be at least 1", i)
		}
		if item.Price < 0 {
			return fmt.Errorf("item %d: negative price", i)
		}
		if !amountsEqual(item.Subtotal, item.Price*float64(item.Quantity)) {
			return fmt.Errorf("item %d: subtotal %v does not match price x quantity", i, item.Subtotal)
		}
		sum += item.Subtotal
	}
	if !amountsEqual(o.TotalAmount, sum) {
		return fmt.Errorf("total amount %v does not match sum of subtotals %v", o.TotalAmount, sum)
	}
	if !o.PaymentMethod.Valid() {
		return fmt.Errorf("unknown payment method %q", o.PaymentMethod)
	}
	if !o.OrderStatus.Valid() {
		return fmt.Errorf("unknown order status %q", o.OrderStatus)
	}
	return nil
}

func amountsEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
