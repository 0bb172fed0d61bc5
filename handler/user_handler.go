package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"smartstore-backend/auth"
	"smartstore-backend/customer"
	"smartstore-backend/entity"
	"smartstore-backend/middleware"
	"smartstore-backend/order"
)

// UserHandler serves the signed-in customer's routes under /api/user.
type UserHandler struct {
	customers *customer.Service
	orders    *order.Service
}

func NewUserHandler(customers *customer.Service, orders *order.Service) *UserHandler {
	return &UserHandler{customers: customers, orders: orders}
}

func currentCustomer(c *gin.Context) *entity.Customer {
	return middleware.MustPrincipal[*entity.Customer](c, auth.KindCustomer)
}

type profilePayload struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Gender  *string `json:"gender"`
	DOB     *string `json:"dob"`
	Address *string `json:"address"`
}

type placeOrderPayload struct {
	Products    []primitive.ObjectID `json:"products"`
	TotalAmount *decimal.Decimal     `json:"totalAmount" binding:"required"`
	PaymentMode string               `json:"paymentMode"`
}

type wishlistPayload struct {
	ProductID primitive.ObjectID `json:"productId" binding:"required"`
}

func (h *UserHandler) Profile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()
		cust, err := h.customers.Profile(ctx, currentCustomer(c).ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "user": cust})
	}
}

func (h *UserHandler) UpdateProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p profilePayload
		if err := c.ShouldBindJSON(&p); err != nil {
			bindError(c, err)
			return
		}
		in := customer.ProfileInput{Name: p.Name, Phone: p.Phone, Gender: p.Gender, Address: p.Address}
		if p.DOB != nil {
			dob, err := parseDate(*p.DOB)
			if err != nil {
				writeError(c, err)
				return
			}
			in.DateOfBirth = dob
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		cust, err := h.customers.UpdateProfile(ctx, currentCustomer(c).ID, in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully", "user": cust})
	}
}

func (h *UserHandler) Orders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()
		orders, err := h.orders.ListForCustomer(ctx, currentCustomer(c).ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}

func (h *UserHandler) PlaceOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p placeOrderPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			bindError(c, err)
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		o, err := h.orders.Place(ctx, currentCustomer(c).ID, order.PlaceInput{
			Products:    p.Products,
			TotalAmount: *p.TotalAmount,
			PaymentMode: entity.PaymentMode(p.PaymentMode),
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "order": o})
	}
}

func (h *UserHandler) CancelOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", "order")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		o, err := h.orders.CancelByCustomer(ctx, currentCustomer(c).ID, id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order cancelled", "order": o})
	}
}

func (h *UserHandler) ToggleWishlist() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p wishlistPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			bindError(c, err)
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		added, wishlist, err := h.customers.ToggleWishlist(ctx, currentCustomer(c).ID, p.ProductID)
		if err != nil {
			writeError(c, err)
			return
		}
		msg := "Removed from wishlist"
		if added {
			msg = "Added to wishlist"
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": msg, "wishlist": wishlist})
	}
}
