package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
	OrderCancelled OrderStatus = "Cancelled"
)

// Terminal reports whether no operator transition may leave s.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

type PaymentMode string

const (
	PaymentCash PaymentMode = "Cash"
	PaymentCard PaymentMode = "Card"
	PaymentUPI  PaymentMode = "UPI"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI:
		return true
	}
	return false
}

// Money is a decimal amount that renders as a bare JSON number. It decodes
// from either a number or a quoted string.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// Order is a placed customer order. Customer is set once at creation.
type Order struct {
	ID          primitive.ObjectID   `json:"id"`
	Customer    primitive.ObjectID   `json:"user"`
	Products    []primitive.ObjectID `json:"products"`
	TotalAmount Money                `json:"totalAmount"`
	PaymentMode PaymentMode          `json:"paymentMode"`
	Status      OrderStatus          `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
}
