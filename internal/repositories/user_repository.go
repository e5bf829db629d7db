package repositories

import (
	"database/sql"
	"log"

	"github.com/vaaltic/crm/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (id, email, full_name, role, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(q,
		user.ID, user.Email, user.FullName, user.Role,
		user.PasswordHash, user.IsActive, user.CreatedAt,
	)
	return err
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `
		SELECT id, email, full_name, role, password_hash, is_active, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.db.QueryRow(q, email))
}

func (r *userRepository) GetByID(id string) (*models.User, error) {
	const q = `
		SELECT id, email, full_name, role, password_hash, is_active, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRow(q, id))
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.PasswordHash, &u.IsActive, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
