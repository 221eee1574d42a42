package models

type DeleteUserResponse struct {
	Message string `json:"message" example:"user deleted"`
	UserID  int    `json:"user_id" example:"1"`
}

type DeleteTransactionResponse struct {
	Message       string `json:"message" example:"transaction deleted"`
	TransactionID int    `json:"transaction_id" example:"1"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"error"`
}
