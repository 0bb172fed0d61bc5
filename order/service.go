package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"smartstore-backend/apperr"
	"smartstore-backend/entity"
	"smartstore-backend/store"
)

var errOrderNotFound = apperr.NotFound("order not found")

// rank orders the statuses an operator may set. Moving to a lower rank is refused.
var rank = map[entity.OrderStatus]int{
	entity.OrderPending:   0,
	entity.OrderShipped:   1,
	entity.OrderDelivered: 2,
}

// Decimal128 keeps 34 significant digits; two of them are cents.
// 10^34 needs 113 bits.
const (
	maxAmountDigits = 34
	amountPlaces    = 2
	maxAmountBits   = 113
)

// statusAttempts bounds the re-reads when an order changes between the
// transition check and the write.
const statusAttempts = 3

type PlaceInput struct {
	Products    []primitive.ObjectID
	TotalAmount decimal.Decimal
	PaymentMode entity.PaymentMode
}

type Service struct {
	repo      Repository
	customers CustomerOrders
	now       func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, customers CustomerOrders, opts ...Option) *Service {
	s := &Service{repo: repo, customers: customers, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// checkAmount accepts non-negative amounts with at most two decimal places
// that fit in a Decimal128. The exponent and coefficient size are bounded
// before anything expands the value.
func checkAmount(d decimal.Decimal) error {
	if d.IsNegative() {
		return apperr.Validation("totalAmount must not be negative")
	}
	exp := int(d.Exponent())
	coef := d.Coefficient()
	if exp < -maxAmountDigits || exp > maxAmountDigits || coef.BitLen() > maxAmountBits {
		return apperr.Validation("totalAmount is out of range")
	}
	digits := len(coef.String())
	if digits > maxAmountDigits || digits+exp > maxAmountDigits-amountPlaces {
		return apperr.Validation("totalAmount is out of range")
	}
	if exp < -amountPlaces && !d.Equal(d.Round(amountPlaces)) {
		return apperr.Validation("totalAmount must have at most 2 decimal places")
	}
	return nil
}

// Place stores a Pending order and then appends its id to the customer's history.
// The two writes are not atomic; a failure in between leaves an order the
// customer's history does not list.
func (s *Service) Place(ctx context.Context, customerID primitive.ObjectID, in PlaceInput) (*entity.Order, error) {
	if err := checkAmount(in.TotalAmount); err != nil {
		return nil, err
	}
	mode := in.PaymentMode
	if mode == "" {
		mode = entity.PaymentCash
	}
	if !mode.Valid() {
		return nil, apperr.Validation("paymentMode must be Cash, Card or UPI")
	}
	products := in.Products
	if products == nil {
		products = []primitive.ObjectID{}
	}

	o := &entity.Order{
		ID:          primitive.NewObjectID(),
		Customer:    customerID,
		Products:    products,
		TotalAmount: entity.NewMoney(in.TotalAmount),
		PaymentMode: mode,
		Status:      entity.OrderPending,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, apperr.Internal("failed to place order", err)
	}
	if err := s.customers.AppendOrder(ctx, customerID, o.ID); err != nil {
		return nil, apperr.Internal("failed to record order on user", err)
	}
	return o, nil
}

// UpdateStatus applies an operator transition. Any of Pending, Shipped and
// Delivered may be requested and intermediate states may be skipped, but an
// order never moves backwards or out of Delivered/Cancelled.
func (s *Service) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*entity.Order, error) {
	target := entity.OrderStatus(status)
	targetRank, ok := rank[target]
	if !ok {
		return nil, apperr.Validation("invalid status")
	}

	for attempt := 0; attempt < statusAttempts; attempt++ {
		o, err := s.find(ctx, id)
		if err != nil {
			return nil, err
		}
		if o.Status == target {
			return o, nil
		}
		if o.Status.Terminal() {
			return nil, apperr.Validation(fmt.Sprintf("order is already %s", o.Status))
		}
		if targetRank < rank[o.Status] {
			return nil, apperr.Validation(fmt.Sprintf("cannot move order from %s to %s", o.Status, target))
		}
		// only write if nobody moved the order since it was read
		updated, err := s.repo.SetStatus(ctx, id, []entity.OrderStatus{o.Status}, target)
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		return s.statusResult(updated, err)
	}
	return nil, apperr.Internal("failed to update order", errors.New("order status kept changing"))
}

// CancelByCustomer cancels the customer's own order whatever its state.
// Nothing is written when the order belongs to someone else.
func (s *Service) CancelByCustomer(ctx context.Context, customerID, id primitive.ObjectID) (*entity.Order, error) {
	o, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Customer != customerID {
		return nil, apperr.Forbidden("order belongs to another user")
	}
	return s.statusResult(s.repo.SetStatus(ctx, id, nil, entity.OrderCancelled))
}

// Delete removes the order permanently. The owner's history keeps the id.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return errOrderNotFound
	}
	if err != nil {
		return apperr.Internal("failed to delete order", err)
	}
	return nil
}

func (s *Service) ListForCustomer(ctx context.Context, customerID primitive.ObjectID) ([]entity.Order, error) {
	orders, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch orders", err)
	}
	return orders, nil
}

func (s *Service) ListAll(ctx context.Context) ([]entity.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to fetch orders", err)
	}
	return orders, nil
}

func (s *Service) find(ctx context.Context, id primitive.ObjectID) (*entity.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errOrderNotFound
	}
	if err != nil {
		return nil, apperr.Internal("failed to load order", err)
	}
	return o, nil
}

func (s *Service) statusResult(o *entity.Order, err error) (*entity.Order, error) {
	if errors.Is(err, store.ErrNotFound) {
		return nil, errOrderNotFound
	}
	if err != nil {
		return nil, apperr.Internal("failed to update order", err)
	}
	return o, nil
}
