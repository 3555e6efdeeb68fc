package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"reminderkeeper/internal/application"
	"reminderkeeper/pkg/response"
	"reminderkeeper/pkg/validation"
)

type ExpenseHandler struct {
	Svc    *application.ExpenseService
	Logger *logrus.Logger
}

func NewExpenseHandler(svc *application.ExpenseService, logger *logrus.Logger) *ExpenseHandler {
	return &ExpenseHandler{Svc: svc, Logger: logger}
}

// Keeper GET /expense-keeper
func (h *ExpenseHandler) Keeper(c *gin.Context) {
	userID := c.GetString("userID")
	views, err := h.Svc.ListForUser(userID)
	if err != nil {
		h.Logger.WithError(err).Error("list expenses failed")
		c.HTML(http.StatusInternalServerError, "expense.html", gin.H{"Title": "Expense Keeper", "Error": "Error fetching expenses"})
		return
	}
	c.HTML(http.StatusOK, "expense.html", gin.H{
		"Title": "Expense Keeper",
		"User":  c.GetString("userName"),
		"Data":  views,
	})
}

// NewForm GET /expense/new
func (h *ExpenseHandler) NewForm(c *gin.Context) {
	c.HTML(http.StatusOK, "expense_new.html", gin.H{"Title": "New Expense", "User": c.GetString("userName")})
}

type expenseForm struct {
	Title         string `form:"title" binding:"required"`
	MaximumAmount string `form:"maximumAmount" binding:"required"`
}

// Create POST /expense/new
func (h *ExpenseHandler) Create(c *gin.Context) {
	var form expenseForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "expense_new.html", gin.H{"Title": "New Expense", "Error": "Title and maximum amount are required."})
		return
	}
	limit, err := strconv.ParseFloat(form.MaximumAmount, 64)
	if err != nil || limit <= 0 {
		c.HTML(http.StatusBadRequest, "expense_new.html", gin.H{"Title": "New Expense", "Error": "Maximum amount must be a positive number."})
		return
	}
	if _, err := h.Svc.SetLimit(c.GetString("userID"), form.Title, limit); err != nil {
		h.Logger.WithError(err).Error("create expense failed")
		c.HTML(http.StatusInternalServerError, "expense_new.html", gin.H{"Title": "New Expense", "Error": "Error creating expense"})
		return
	}
	c.Redirect(http.StatusFound, "/expense-keeper")
}

// UpdateSpent POST /update/expense/:id
func (h *ExpenseHandler) UpdateSpent(c *gin.Context) {
	spent, err := strconv.ParseFloat(c.PostForm("currentSpent"), 64)
	if err != nil || spent < 0 {
		c.String(http.StatusBadRequest, "Current spent must be a non-negative number.")
		return
	}
	if _, err := h.Svc.UpdateSpent(c.GetString("userID"), c.Param("id"), spent); err != nil {
		h.expensePageError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/expense-keeper")
}

// Delete GET /delete/expense/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.GetString("userID"), c.Param("id")); err != nil {
		h.expensePageError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/expense-keeper")
}

func (h *ExpenseHandler) expensePageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrNotExpenseOwner):
		c.String(http.StatusForbidden, "This expense belongs to another user.")
	case errors.Is(err, application.ErrExpenseNotFound):
		c.String(http.StatusNotFound, "Expense not found!")
	default:
		h.Logger.WithError(err).Error("expense operation failed")
		c.String(http.StatusInternalServerError, "Something went wrong.")
	}
}

type apiExpenseCreateRequest struct {
	Title         string  `json:"title" binding:"required"`
	MaximumAmount float64 `json:"maximum_amount" binding:"required,gt=0"`
}

type apiExpenseSpentRequest struct {
	CurrentSpent float64 `json:"current_spent" binding:"gte=0"`
}

// APIList GET /api/expenses
func (h *ExpenseHandler) APIList(c *gin.Context) {
	views, err := h.Svc.ListForUser(c.GetString("userID"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to list expenses", nil)
		return
	}
	response.Success(c, http.StatusOK, views, "expenses", map[string]any{"count": len(views)})
}

// APICreate POST /api/expenses
func (h *ExpenseHandler) APICreate(c *gin.Context) {
	var req apiExpenseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Svc.SetLimit(c.GetString("userID"), req.Title, req.MaximumAmount)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to create expense", nil)
		return
	}
	response.Success(c, http.StatusCreated, e, "expense created", nil)
}

// APIUpdateSpent PUT /api/expenses/:id/spent
func (h *ExpenseHandler) APIUpdateSpent(c *gin.Context) {
	var req apiExpenseSpentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Svc.UpdateSpent(c.GetString("userID"), c.Param("id"), req.CurrentSpent)
	if err != nil {
		h.expenseAPIError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e, "expense updated", nil)
}

// APIDelete DELETE /api/expenses/:id
func (h *ExpenseHandler) APIDelete(c *gin.Context) {
	if err := h.Svc.Delete(c.GetString("userID"), c.Param("id")); err != nil {
		h.expenseAPIError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "expense deleted", nil)
}

func (h *ExpenseHandler) expenseAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrNotExpenseOwner):
		response.Error[any](c, http.StatusForbidden, "expense belongs to another user", nil)
	case errors.Is(err, application.ErrExpenseNotFound):
		response.Error[any](c, http.StatusNotFound, "expense not found", nil)
	default:
		h.Logger.WithError(err).Error("expense operation failed")
		response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
	}
}
