package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nemopss/fintrack/db"
	"github.com/nemopss/fintrack/models"
)

const welcomePage = `<!DOCTYPE html>
<html>
<head><title>Fintrack</title></head>
<body>
<h1>Fintrack</h1>
<p>CRUD service for users and financial transactions. See <a href="/swagger/index.html">API docs</a>.</p>
</body>
</html>`

// Handler открывает отдельную сессию хранилища на каждый запрос: соединение
// живёт от начала обработчика до deferred Close и никогда не разделяется
// между запросами.
type Handler struct {
	dbPath string
}

func NewHandler(dbPath string) *Handler {
	return &Handler{dbPath: dbPath}
}

func (h *Handler) openStorage(c *gin.Context) *db.Storage {
	storage, err := db.NewStorage(h.dbPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return nil
	}
	return storage
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid id: " + c.Param("id")})
		return 0, false
	}
	return id, true
}

// Index godoc
// @Summary Welcome page
// @Produce html
// @Success 200 {string} string "HTML document"
// @Router / [get]
func (h *Handler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(welcomePage))
}

// CreateUser godoc
// @Summary Create a user
// @Produce json
// @Param name query string true "User name"
// @Param email query string true "User email"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	storage := h.openStorage(c)
	if storage == nil {
		return
	}
	defer storage.Close()

	user, err := storage.CreateUser(req.Name, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUser godoc
// @Summary Get a user by ID
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /user/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	storage := h.openStorage(c)
	if storage == nil {
		return
	}
	defer storage.Close()

	user, err := storage.GetUser(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUsers godoc
// @Summary List all users
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func (h *Handler) GetUsers(c *gin.Context) {
	storage := h.openStorage(c)
	if storage == nil {
		return
	}
	defer storage.Close()

	users, err := storage.GetUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUser godoc
// @Summary Update a user's name and email
// @Produce json
// @Param id path int true "User ID"
// @Param name query string true "User name"
// @Param email query string true "User email"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [put]
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.CreateUserRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	storage := h.openStorage(c)
	if storage == nil {
		return
	}
	defer storage.Close()

	user, err := storage.UpdateUser(id, req.Name, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.DeleteUserResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	storage := h.openStorage(c)
	if storage == nil {
		return
	}
	defer storage.Close()

	deleted, err := storage.DeleteUser(id)
	if err == db.ErrUserReferenced {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "user has transactions"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "user not found"})
		return
	}
	c.JSON(http.StatusOK, models.DeleteUserResponse{Message: "user deleted", UserID: id})
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Produce json
// @Param user_id query int true "Owner user ID"
// @Param amount query number true "Amount"
// @Param category query string true "Category (Food, Transport, Housing, Entertainment, Other)"
// @Param description query string true "Description"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /transaction [post]
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req models.CreateTransactionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	storage := h.openStorage(c)
	if storage == nil {
		return
	}
	defer storage.Close()

	transaction := models.Transaction{
		UserID:      req.UserID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}
	if err := storage.CreateTransaction(&transaction); err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: vErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// GetTransaction godoc
// @Summary Get a transaction by ID
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} models.ErrorResponse
// @Router /transaction/{id} [get]
func (h *Handler) GetTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	storage := h.openStorage(c)
	if storage == nil {
		return
	}
	defer storage.Close()

	transaction, err := storage.GetTransaction(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	if transaction == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "transaction not found"})
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// GetTransactions godoc
// @Summary List all transactions
// @Produce json
// @Success 200 {array} models.Transaction
// @Router /transactions [get]
func (h *Handler) GetTransactions(c *gin.Context) {
	storage := h.openStorage(c)
	if storage == nil {
		return
	}
	defer storage.Close()

	transactions, err := storage.GetTransactions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// UpdateTransaction godoc
// @Summary Replace a transaction's mutable fields
// @Produce json
// @Param id path int true "Transaction ID"
// @Param user_id query int true "Owner user ID"
// @Param amount query number true "Amount"
// @Param category query string true "Category (Food, Transport, Housing, Entertainment, Other)"
// @Param description query string true "Description"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /transaction/{id} [put]
func (h *Handler) UpdateTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.CreateTransactionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	storage := h.openStorage(c)
	if storage == nil {
		return
	}
	defer storage.Close()

	transaction := models.Transaction{
		ID:          id,
		UserID:      req.UserID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}
	updated, err := storage.UpdateTransaction(&transaction)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: vErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "transaction not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} models.DeleteTransactionResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /transaction/{id} [delete]
func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	storage := h.openStorage(c)
	if storage == nil {
		return
	}
	defer storage.Close()

	deleted, err := storage.DeleteTransaction(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "transaction not found"})
		return
	}
	c.JSON(http.StatusOK, models.DeleteTransactionResponse{Message: "transaction deleted", TransactionID: id})
}
