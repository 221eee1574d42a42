package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/nemopss/fintrack/models"
)

var (
	// ErrNotConnected возвращается при вызове операции на закрытом хранилище.
	ErrNotConnected = errors.New("storage is not connected")
	// ErrUserReferenced возвращается при удалении пользователя, на которого
	// ссылаются транзакции.
	ErrUserReferenced = errors.New("user is referenced by transactions")
)

// Storage — хранилище с одним соединением на сессию. Открывается через
// NewStorage, закрывается через Close на каждом пути выхода.
type Storage struct {
	DB *sql.DB
}

func NewStorage(dbPath string) (*Storage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		created TIMESTAMP NOT NULL,
		updated TIMESTAMP NOT NULL
	);
	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		amount REAL NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL,
		created TIMESTAMP NOT NULL,
		updated TIMESTAMP NOT NULL
	);
	CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() {
	if s.DB != nil {
		s.DB.Close()
		s.DB = nil
	}
}

func (s *Storage) conn() (*sql.DB, error) {
	if s == nil || s.DB == nil {
		return nil, ErrNotConnected
	}
	return s.DB, nil
}

func (s *Storage) CreateUser(name, email string) (*models.User, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := db.Exec("INSERT INTO users (name, email, created, updated) VALUES (?, ?, ?, ?)",
		name, email, now, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.User{ID: int(id), Name: name, Email: email, Created: now, Updated: now}, nil
}

// GetUser возвращает nil, nil, если пользователь не найден.
func (s *Storage) GetUser(id int) (*models.User, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	var u models.User
	err = db.QueryRow("SELECT id, name, email, created, updated FROM users WHERE id = ?", id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Created, &u.Updated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Storage) GetUsers() ([]models.User, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT id, name, email, created, updated FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users = []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Created, &u.Updated); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser обновляет имя и почту, поле updated получает текущее время.
// Возвращает nil, nil, если пользователь не найден.
func (s *Storage) UpdateUser(id int, name, email string) (*models.User, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := db.Exec("UPDATE users SET name = ?, email = ?, updated = ? WHERE id = ?",
		name, email, now, id)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}
	return s.GetUser(id)
}

// DeleteUser возвращает ErrUserReferenced, если на пользователя ссылаются
// транзакции (внешний ключ в SQLite).
func (s *Storage) DeleteUser(id int) (bool, error) {
	db, err := s.conn()
	if err != nil {
		return false, err
	}

	res, err := db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		var sqlErr sqlite3.Error
		if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			return false, ErrUserReferenced
		}
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// CreateTransaction проверяет запись через models.Transaction.Validate и
// при успехе записывает её, выставляя ID и временные метки.
func (s *Storage) CreateTransaction(t *models.Transaction) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	res, err := db.Exec("INSERT INTO transactions (user_id, amount, category, description, created, updated) VALUES (?, ?, ?, ?, ?, ?)",
		t.UserID, t.Amount, t.Category, t.Description, now, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	t.ID = int(id)
	t.Created = now
	t.Updated = now
	return nil
}

// GetTransaction возвращает nil, nil, если транзакция не найдена.
func (s *Storage) GetTransaction(id int) (*models.Transaction, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	var t models.Transaction
	err = db.QueryRow("SELECT id, user_id, amount, category, description, created, updated FROM transactions WHERE id = ?", id).
		Scan(&t.ID, &t.UserID, &t.Amount, &t.Category, &t.Description, &t.Created, &t.Updated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Storage) GetTransactions() ([]models.Transaction, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT id, user_id, amount, category, description, created, updated FROM transactions")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions = []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Category, &t.Description, &t.Created, &t.Updated); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// UpdateTransaction заменяет все изменяемые поля и обновляет updated.
// Запись проверяется до записи в хранилище; nil, nil при отсутствии.
func (s *Storage) UpdateTransaction(t *models.Transaction) (*models.Transaction, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := db.Exec("UPDATE transactions SET user_id = ?, amount = ?, category = ?, description = ?, updated = ? WHERE id = ?",
		t.UserID, t.Amount, t.Category, t.Description, now, t.ID)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}
	return s.GetTransaction(t.ID)
}

func (s *Storage) DeleteTransaction(id int) (bool, error) {
	db, err := s.conn()
	if err != nil {
		return false, err
	}

	res, err := db.Exec("DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
