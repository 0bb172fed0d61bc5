package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"smartstore-backend/entity"
	"smartstore-backend/store"
)

type OrderRepo struct {
	mu   sync.RWMutex
	byID map[primitive.ObjectID]entity.Order
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{byID: map[primitive.ObjectID]entity.Order{}}
}

func cloneOrder(o entity.Order) entity.Order {
	o.Products = append([]primitive.ObjectID{}, o.Products...)
	return o
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	if _, ok := r.byID[o.ID]; ok {
		return store.ErrDuplicate
	}
	r.byID[o.ID] = cloneOrder(*o)
	return nil
}

func (r *OrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

func (r *OrderRepo) filter(keep func(entity.Order) bool) []entity.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entity.Order{}
	for _, o := range r.byID {
		if keep(o) {
			out = append(out, cloneOrder(o))
		}
	}
	slices.SortFunc(out, func(a, b entity.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func (r *OrderRepo) List(_ context.Context) ([]entity.Order, error) {
	return r.filter(func(entity.Order) bool { return true }), nil
}

func (r *OrderRepo) ListByCustomer(_ context.Context, customerID primitive.ObjectID) ([]entity.Order, error) {
	return r.filter(func(o entity.Order) bool { return o.Customer == customerID }), nil
}

func (r *OrderRepo) ListCreatedBetween(_ context.Context, from, to time.Time) ([]entity.Order, error) {
	return r.filter(func(o entity.Order) bool {
		return !o.CreatedAt.Before(from) && !o.CreatedAt.After(to)
	}), nil
}

func (r *OrderRepo) SetStatus(_ context.Context, id primitive.ObjectID, from []entity.OrderStatus, status entity.OrderStatus) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if len(from) > 0 && !slices.Contains(from, o.Status) {
		return nil, store.ErrConflict
	}
	o.Status = status
	r.byID[id] = o
	o = cloneOrder(o)
	return &o, nil
}

func (r *OrderRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
