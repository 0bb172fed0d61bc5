package entity

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// ParseGender accepts any casing ("male", "FEMALE") and returns the canonical value.
// An empty input yields an empty gender.
func ParseGender(s string) (Gender, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	g := Gender(strings.ToUpper(s[:1]) + strings.ToLower(s[1:]))
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return g, true
	}
	return "", false
}

// Customer is a storefront user. PasswordHash never leaves the service in JSON.
type Customer struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Email        string               `bson:"email" json:"email"`
	PasswordHash string               `bson:"password,omitempty" json:"-"`
	Phone        string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Gender       Gender               `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth  *time.Time           `bson:"dob,omitempty" json:"dob,omitempty"`
	Address      string               `bson:"address,omitempty" json:"address,omitempty"`
	Wishlist     []primitive.ObjectID `bson:"wishlist" json:"wishlist"`
	Orders       []primitive.ObjectID `bson:"orders" json:"orders"`
}

// ProfileUpdate carries the optional fields of a profile edit. Nil means unchanged.
type ProfileUpdate struct {
	Name        *string
	Phone       *string
	Gender      *Gender
	DateOfBirth *time.Time
	Address     *string
}

func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Phone == nil && u.Gender == nil && u.DateOfBirth == nil && u.Address == nil
}

// Apply copies the set fields onto c.
func (u ProfileUpdate) Apply(c *Customer) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Phone != nil {
		c.Phone = *u.Phone
	}
	if u.Gender != nil {
		c.Gender = *u.Gender
	}
	if u.DateOfBirth != nil {
		dob := *u.DateOfBirth
		c.DateOfBirth = &dob
	}
	if u.Address != nil {
		c.Address = *u.Address
	}
}
