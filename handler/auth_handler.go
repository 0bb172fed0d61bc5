package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartstore-backend/auth"
	"smartstore-backend/customer"
	"smartstore-backend/entity"
	"smartstore-backend/middleware"
)

// AuthHandler serves customer registration and sessions under /api/auth.
type AuthHandler struct {
	customers *customer.Service
	carrier   auth.SessionCarrier
}

func NewAuthHandler(customers *customer.Service, carrier auth.SessionCarrier) *AuthHandler {
	return &AuthHandler{customers: customers, carrier: carrier}
}

type registerPayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Gender   string `json:"gender"`
	DOB      string `json:"dob"`
	Address  string `json:"address"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p registerPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			bindError(c, err)
			return
		}
		dob, err := parseDate(p.DOB)
		if err != nil {
			writeError(c, err)
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		_, err = h.customers.Register(ctx, customer.RegisterInput{
			Name:        p.Name,
			Email:       p.Email,
			Password:    p.Password,
			Phone:       p.Phone,
			Gender:      p.Gender,
			DateOfBirth: dob,
			Address:     p.Address,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

func (h *AuthHandler) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p loginPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			bindError(c, err)
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		token, cust, err := h.customers.Login(ctx, p.Email, p.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		h.carrier.Attach(c, auth.KindCustomer, token)
		c.JSON(http.StatusOK, gin.H{
			"message": "Login success",
			"token":   token,
			"user":    gin.H{"id": cust.ID, "name": cust.Name, "email": cust.Email},
		})
	}
}

// Logout only clears the cookie; an issued token stays valid until it expires.
func (h *AuthHandler) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.carrier.Clear(c, auth.KindCustomer)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}

func (h *AuthHandler) Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		cust := middleware.MustPrincipal[*entity.Customer](c, auth.KindCustomer)
		c.JSON(http.StatusOK, gin.H{"user": cust})
	}
}
