package models

import (
	"errors"
	"strings"
	"testing"
)

// TestValidate тестирует проверку транзакции перед записью.
func TestValidate(t *testing.T) {
	// Все категории закрытого набора проходят проверку
	for _, category := range []string{CategoryFood, CategoryTransport, CategoryHousing, CategoryEntertainment, CategoryOther} {
		tx := Transaction{UserID: 1, Amount: 10, Category: category, Description: "ok"}
		if err := tx.Validate(); err != nil {
			t.Errorf("Expected category %q to be valid, got %v", category, err)
		}
	}

	// Категория вне набора отклоняется с указанием поля и значения
	tx := Transaction{UserID: 1, Amount: 10, Category: "Snacks", Description: "Chips"}
	err := tx.Validate()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if vErr.Field != "category" || vErr.Value != "Snacks" {
		t.Errorf("Expected ValidationError {Field: category, Value: Snacks}, got %+v", vErr)
	}
	if !strings.Contains(vErr.Error(), "category") || !strings.Contains(vErr.Error(), "Snacks") {
		t.Errorf("Expected error message to name field and value, got %q", vErr.Error())
	}

	// Пустое описание отклоняется
	tx = Transaction{UserID: 1, Amount: 10, Category: CategoryFood}
	err = tx.Validate()
	if !errors.As(err, &vErr) || vErr.Field != "description" {
		t.Errorf("Expected ValidationError on description, got %v", err)
	}
}
