package customer

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"smartstore-backend/apperr"
	"smartstore-backend/auth"
	"smartstore-backend/entity"
	"smartstore-backend/store"
)

var errBadCredentials = apperr.Validation("invalid email or password")

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Phone       string
	Gender      string
	DateOfBirth *time.Time
	Address     string
}

type ProfileInput struct {
	Name        *string
	Phone       *string
	Gender      *string
	DateOfBirth *time.Time
	Address     *string
}

type Service struct {
	repo   Repository
	hasher auth.PasswordHasher
	tokens *auth.Tokens
}

func NewService(repo Repository, hasher auth.PasswordHasher, tokens *auth.Tokens) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.Customer, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" || email == "" || in.Password == "" {
		return nil, apperr.Validation("name, email and password are required")
	}
	gender, ok := entity.ParseGender(in.Gender)
	if !ok {
		return nil, apperr.Validation("gender must be Male, Female or Other")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Validation("user already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Internal("failed to register", err)
	}

	hashed, err := s.hasher.Hash(in.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, apperr.Validation("password is too long")
	}
	if err != nil {
		return nil, apperr.Internal("failed to register", err)
	}

	c := &entity.Customer{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Phone:        strings.TrimSpace(in.Phone),
		Gender:       gender,
		DateOfBirth:  in.DateOfBirth,
		Address:      strings.TrimSpace(in.Address),
		Wishlist:     []primitive.ObjectID{},
		Orders:       []primitive.ObjectID{},
	}
	if err := s.repo.Create(ctx, c); err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Validation("user already exists")
		}
		return nil, apperr.Internal("failed to register", err)
	}
	c.PasswordHash = ""
	return c, nil
}

// Login checks the credentials and issues a customer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *entity.Customer, error) {
	c, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, errBadCredentials
	}
	if err != nil {
		return "", nil, apperr.Internal("failed to log in", err)
	}
	if !s.hasher.Verify(password, c.PasswordHash) {
		return "", nil, errBadCredentials
	}
	token, err := s.tokens.Issue(c.ID.Hex(), auth.KindCustomer, auth.CustomerTokenTTL)
	if err != nil {
		return "", nil, apperr.Internal("failed to log in", err)
	}
	c.PasswordHash = ""
	return token, c, nil
}

func (s *Service) Profile(ctx context.Context, id primitive.ObjectID) (*entity.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to load profile", err)
	}
	return c, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id primitive.ObjectID, in ProfileInput) (*entity.Customer, error) {
	var u entity.ProfileUpdate
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Validation("name cannot be empty")
		}
		u.Name = &name
	}
	if in.Gender != nil {
		g, ok := entity.ParseGender(*in.Gender)
		if !ok {
			return nil, apperr.Validation("gender must be Male, Female or Other")
		}
		u.Gender = &g
	}
	u.Phone = in.Phone
	u.DateOfBirth = in.DateOfBirth
	u.Address = in.Address

	if u.Empty() {
		return s.Profile(ctx, id)
	}
	c, err := s.repo.UpdateProfile(ctx, id, u)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Internal("error updating profile", err)
	}
	return c, nil
}

// ToggleWishlist adds productID when absent and removes it otherwise.
// It reports whether the product ended up in the wishlist.
func (s *Service) ToggleWishlist(ctx context.Context, id, productID primitive.ObjectID) (bool, []primitive.ObjectID, error) {
	c, err := s.Profile(ctx, id)
	if err != nil {
		return false, nil, err
	}

	wishlist := make([]primitive.ObjectID, 0, len(c.Wishlist)+1)
	removed := false
	for _, pid := range c.Wishlist {
		if pid == productID {
			removed = true
			continue
		}
		wishlist = append(wishlist, pid)
	}
	if !removed {
		wishlist = append(wishlist, productID)
	}

	if err := s.repo.SetWishlist(ctx, id, wishlist); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil, apperr.NotFound("user not found")
		}
		return false, nil, apperr.Internal("error updating wishlist", err)
	}
	return !removed, wishlist, nil
}

func (s *Service) List(ctx context.Context) ([]entity.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list users", err)
	}
	return customers, nil
}

// Delete removes the customer. Their orders are left in place.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("user not found")
	}
	if err != nil {
		return apperr.Internal("failed to delete user", err)
	}
	return nil
}
