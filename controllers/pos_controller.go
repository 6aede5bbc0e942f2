package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/toyfront/storefront-gateway/apperrors"
	"github.com/toyfront/storefront-gateway/middleware"
	"github.com/toyfront/storefront-gateway/models"
	"github.com/toyfront/storefront-gateway/repository"
	"github.com/toyfront/storefront-gateway/services"
	"github.com/toyfront/storefront-gateway/woocommerce"
)

type POSController struct {
	pos   *services.POSService
	auth  *services.AuthService
	staff repository.StaffRepository
	store *woocommerce.Client
}

func NewPOSController(pos *services.POSService, auth *services.AuthService, staff repository.StaffRepository, store *woocommerce.Client) *POSController {
	return &POSController{pos: pos, auth: auth, staff: staff, store: store}
}

// StaffLogin verifies a register PIN for the signed-in user.
func (pc *POSController) StaffLogin(c *gin.Context) {
	var req models.POSLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	result, err := pc.pos.LoginStaff(c.Request.Context(), req.UserID, req.PIN)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateOrder rings up a sale at the register.
func (pc *POSController) CreateOrder(c *gin.Context) {
	ctx := c.Request.Context()

	staff, err := pc.currentStaff(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	session, err := pc.auth.Session(ctx, middleware.CurrentUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	var req models.POSOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	order, err := pc.pos.CreateOrder(ctx, staff, session.StoreToken, &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// Journal lists the staff member's local order journal.
func (pc *POSController) Journal(c *gin.Context) {
	staff, err := pc.currentStaff(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	orders, total, err := pc.pos.ListJournal(c.Request.Context(), staff, page, limit)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": total})
}

// RemoteOrders lists POS-channel orders from the store.
func (pc *POSController) RemoteOrders(c *gin.Context) {
	ctx := c.Request.Context()

	session, err := pc.auth.Session(ctx, middleware.CurrentUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	orders, paging, err := pc.store.ListPOSOrders(ctx, session.StoreToken, woocommerce.ListOptions{Page: page, PerPage: perPage})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	writePage(c, paging)
	c.JSON(http.StatusOK, orders)
}

// JournalEntry returns a single row from the staff member's journal.
func (pc *POSController) JournalEntry(c *gin.Context) {
	staff, err := pc.currentStaff(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid journal id"})
		return
	}

	entry, err := pc.pos.JournalEntry(c.Request.Context(), staff, id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// RegisterStaff enrolls a staff member with a register PIN.
func (pc *POSController) RegisterStaff(c *gin.Context) {
	var req models.StaffRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	staff, err := pc.pos.RegisterStaff(c.Request.Context(), req.UserID, req.Name, req.Role, req.PIN)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, staff)
}

// ListStaff returns the active staff roster.
func (pc *POSController) ListStaff(c *gin.Context) {
	staff, err := pc.pos.ListStaff(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

// SetStaffActive activates or deactivates a staff member.
func (pc *POSController) SetStaffActive(c *gin.Context) {
	var req models.StaffActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	staff, err := pc.pos.SetStaffActive(c.Request.Context(), c.Param("user_id"), *req.Active)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

// currentStaff resolves the signed-in gateway user to a staff record.
func (pc *POSController) currentStaff(c *gin.Context) (*models.Staff, error) {
	staff, err := pc.staff.FindByUserID(c.Request.Context(), middleware.CurrentUserID(c))
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	return staff, nil
}
