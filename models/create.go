package models

type CreateUserRequest struct {
	Name  string `form:"name" binding:"required"`
	Email string `form:"email" binding:"required"`
}

type CreateTransactionRequest struct {
	UserID      int     `form:"user_id" binding:"required"`
	Amount      float64 `form:"amount"`
	Category    string  `form:"category" binding:"required"`
	Description string  `form:"description" binding:"required"`
}
