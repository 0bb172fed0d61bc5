package admin

import (
	"context"
	"errors"
	"strings"

	"smartstore-backend/apperr"
	"smartstore-backend/auth"
	"smartstore-backend/entity"
	"smartstore-backend/store"
)

// Provisioner creates the operator account. It signs nothing, so it runs
// without the token secret.
type Provisioner struct {
	repo   Repository
	hasher auth.PasswordHasher
}

func NewProvisioner(repo Repository, hasher auth.PasswordHasher) *Provisioner {
	return &Provisioner{repo: repo, hasher: hasher}
}

// Bootstrap reports false and changes nothing when an operator with that
// email already exists.
func (p *Provisioner) Bootstrap(ctx context.Context, name, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, apperr.Validation("admin email and password are required")
	}
	if name = strings.TrimSpace(name); name == "" {
		name = "Admin"
	}

	_, err := p.repo.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}

	hashed, err := p.hasher.Hash(password)
	if err != nil {
		return false, err
	}
	err = p.repo.Create(ctx, &entity.Admin{Name: name, Email: email, PasswordHash: hashed})
	if errors.Is(err, store.ErrDuplicate) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
