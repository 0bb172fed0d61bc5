package memstore

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"smartstore-backend/entity"
	"smartstore-backend/store"
)

type AdminRepo struct {
	mu   sync.RWMutex
	byID map[primitive.ObjectID]entity.Admin
}

func NewAdminRepo() *AdminRepo {
	return &AdminRepo{byID: map[primitive.ObjectID]entity.Admin{}}
}

func (r *AdminRepo) Create(_ context.Context, a *entity.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == a.Email {
			return store.ErrDuplicate
		}
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	r.byID[a.ID] = *a
	return nil
}

func (r *AdminRepo) FindByID(_ context.Context, id primitive.ObjectID) (*entity.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	a.PasswordHash = ""
	return &a, nil
}

func (r *AdminRepo) FindByEmail(_ context.Context, email string) (*entity.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.byID {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}
