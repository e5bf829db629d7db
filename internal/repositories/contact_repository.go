package repositories

import (
	"database/sql"
	"log"

	"github.com/vaaltic/crm/internal/authz"
	"github.com/vaaltic/crm/internal/models"
)

type ContactRepository interface {
	Create(contact *models.Contact) error
	GetByID(id string) (*models.Contact, error)
	Update(contact *models.Contact) error
	Delete(id string) error
	List(scope authz.Scope) ([]*models.Contact, error)
	Count(scope authz.Scope) (int, error)
}

type contactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) ContactRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &contactRepository{db: db}
}

const contactColumns = `id, created_by, created_at, updated_at, name, email, phone, company, position`

func (r *contactRepository) Create(contact *models.Contact) error {
	const q = `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(q,
		contact.ID, contact.CreatedBy, contact.CreatedAt, contact.UpdatedAt,
		contact.Name, contact.Email, contact.Phone, contact.Company, contact.Position,
	)
	return err
}

func (r *contactRepository) GetByID(id string) (*models.Contact, error) {
	const q = `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`
	contact, err := scanContact(r.db.QueryRow(q, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

func (r *contactRepository) Update(contact *models.Contact) error {
	const q = `
		UPDATE contacts
		SET name=$1, email=$2, phone=$3, company=$4, position=$5, updated_at=$6
		WHERE id=$7
	`
	_, err := r.db.Exec(q,
		contact.Name, contact.Email, contact.Phone, contact.Company, contact.Position,
		contact.UpdatedAt, contact.ID,
	)
	return err
}

func (r *contactRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM contacts WHERE id=$1`, id)
	return err
}

func (r *contactRepository) List(scope authz.Scope) ([]*models.Contact, error) {
	q := `SELECT ` + contactColumns + ` FROM contacts WHERE 1=1`
	clause, args := scopeClause(scope, 1)
	q += clause + ` ORDER BY created_at DESC`

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Contact{}
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, contact)
	}
	return out, rows.Err()
}

func (r *contactRepository) Count(scope authz.Scope) (int, error) {
	q := `SELECT COUNT(*) FROM contacts WHERE 1=1`
	clause, args := scopeClause(scope, 1)
	var n int
	err := r.db.QueryRow(q+clause, args...).Scan(&n)
	return n, err
}

func scanContact(row rowScanner) (*models.Contact, error) {
	c := &models.Contact{}
	err := row.Scan(
		&c.ID, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		&c.Name, &c.Email, &c.Phone, &c.Company, &c.Position,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
