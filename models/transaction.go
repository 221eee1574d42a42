package models

import (
	"fmt"
	"time"
)

type Transaction struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// ValidationError описывает поле записи, не прошедшее проверку.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// Validate проверяет транзакцию перед записью в хранилище.
func (t *Transaction) Validate() error {
	if !ValidCategory(t.Category) {
		return &ValidationError{Field: "category", Value: t.Category}
	}
	if t.Description == "" {
		return &ValidationError{Field: "description", Value: t.Description}
	}
	return nil
}
