package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartstore-backend/admin"
	"smartstore-backend/auth"
	"smartstore-backend/customer"
	"smartstore-backend/entity"
	"smartstore-backend/middleware"
	"smartstore-backend/order"
)

// AdminHandler serves the operator console under /api/admin.
type AdminHandler struct {
	admins    *admin.Service
	customers *customer.Service
	orders    *order.Service
	carrier   auth.SessionCarrier
}

func NewAdminHandler(admins *admin.Service, customers *customer.Service, orders *order.Service, carrier auth.SessionCarrier) *AdminHandler {
	return &AdminHandler{admins: admins, customers: customers, orders: orders, carrier: carrier}
}

type adminView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func viewOf(a *entity.Admin) adminView {
	return adminView{ID: a.ID.Hex(), Name: a.Name, Email: a.Email}
}

type dashboardResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Admin   adminView `json:"admin"`
	order.Dashboard
}

type statusPayload struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p loginPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			bindError(c, err)
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		token, a, err := h.admins.Login(ctx, p.Email, p.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		h.carrier.Attach(c, auth.KindAdmin, token)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login successful",
			"token":   token,
			"admin":   viewOf(a),
		})
	}
}

func (h *AdminHandler) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.carrier.Clear(c, auth.KindAdmin)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}

func (h *AdminHandler) Dashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		a := middleware.MustPrincipal[*entity.Admin](c, auth.KindAdmin)
		ctx, cancel := requestContext(c)
		defer cancel()
		d, err := h.orders.Dashboard(ctx)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dashboardResponse{
			Success:   true,
			Message:   "Welcome to Admin Dashboard",
			Admin:     viewOf(a),
			Dashboard: d,
		})
	}
}

func (h *AdminHandler) Users() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()
		users, err := h.customers.List(ctx)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
	}
}

func (h *AdminHandler) DeleteUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", "user")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		if err := h.customers.Delete(ctx, id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
	}
}

func (h *AdminHandler) Orders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()
		orders, err := h.orders.ListAll(ctx)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}

func (h *AdminHandler) UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", "order")
		if !ok {
			return
		}
		var p statusPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			bindError(c, err)
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		o, err := h.orders.UpdateStatus(ctx, id, p.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order updated", "order": o})
	}
}

func (h *AdminHandler) DeleteOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "orderId", "order")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		if err := h.orders.Delete(ctx, id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order deleted successfully"})
	}
}
