// Package memstore keeps documents in process memory. It backs STORE_DRIVER=memory
// and the tests.
package memstore

import (
	"bytes"
	"context"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"smartstore-backend/entity"
	"smartstore-backend/store"
)

type CustomerRepo struct {
	mu   sync.RWMutex
	byID map[primitive.ObjectID]entity.Customer
}

func NewCustomerRepo() *CustomerRepo {
	return &CustomerRepo{byID: map[primitive.ObjectID]entity.Customer{}}
}

func cloneCustomer(c entity.Customer) entity.Customer {
	c.Wishlist = append([]primitive.ObjectID{}, c.Wishlist...)
	c.Orders = append([]primitive.ObjectID{}, c.Orders...)
	if c.DateOfBirth != nil {
		dob := *c.DateOfBirth
		c.DateOfBirth = &dob
	}
	return c
}

func withoutPassword(c entity.Customer) *entity.Customer {
	out := cloneCustomer(c)
	out.PasswordHash = ""
	return &out
}

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == c.Email {
			return store.ErrDuplicate
		}
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	r.byID[c.ID] = cloneCustomer(*c)
	return nil
}

func (r *CustomerRepo) FindByID(_ context.Context, id primitive.ObjectID) (*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return withoutPassword(c), nil
}

func (r *CustomerRepo) FindByEmail(_ context.Context, email string) (*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.byID {
		if c.Email == email {
			out := cloneCustomer(c)
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *CustomerRepo) List(_ context.Context) ([]entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Customer, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, *withoutPassword(c))
	}
	slices.SortFunc(out, func(a, b entity.Customer) int {
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	return out, nil
}

func (r *CustomerRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, u entity.ProfileUpdate) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u.Apply(&c)
	r.byID[id] = c
	return withoutPassword(c), nil
}

func (r *CustomerRepo) SetWishlist(_ context.Context, id primitive.ObjectID, wishlist []primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return store.ErrNotFound
	}
	c.Wishlist = append([]primitive.ObjectID{}, wishlist...)
	r.byID[id] = c
	return nil
}

func (r *CustomerRepo) AppendOrder(_ context.Context, id, orderID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return store.ErrNotFound
	}
	c.Orders = append(slices.Clip(c.Orders), orderID)
	r.byID[id] = c
	return nil
}

func (r *CustomerRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
