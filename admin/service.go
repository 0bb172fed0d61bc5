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

var errBadCredentials = apperr.Unauthorized("invalid credentials")

type Service struct {
	repo   Repository
	hasher auth.PasswordHasher
	tokens *auth.Tokens
}

func NewService(repo Repository, hasher auth.PasswordHasher, tokens *auth.Tokens) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

func (s *Service) Login(ctx context.Context, email, password string) (string, *entity.Admin, error) {
	a, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, errBadCredentials
	}
	if err != nil {
		return "", nil, apperr.Internal("server error", err)
	}
	if !s.hasher.Verify(password, a.PasswordHash) {
		return "", nil, errBadCredentials
	}
	token, err := s.tokens.Issue(a.ID.Hex(), auth.KindAdmin, auth.AdminTokenTTL)
	if err != nil {
		return "", nil, apperr.Internal("server error", err)
	}
	a.PasswordHash = ""
	return token, a, nil
}
