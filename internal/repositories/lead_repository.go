package repositories

import (
	"database/sql"
	"log"

	"github.com/vaaltic/crm/internal/authz"
	"github.com/vaaltic/crm/internal/models"
)

type LeadRepository interface {
	Create(lead *models.Lead) error
	GetByID(id string) (*models.Lead, error)
	Update(lead *models.Lead) error
	Delete(id string) error
	List(scope authz.Scope) ([]*models.Lead, error)
	Count(scope authz.Scope) (int, error)
	CountByStage(scope authz.Scope, stage models.LeadStage) (int, error)
}

type leadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) LeadRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &leadRepository{db: db}
}

const leadColumns = `id, created_by, created_at, updated_at, name, email, phone, company, stage, source, notes, assigned_to`

func (r *leadRepository) Create(lead *models.Lead) error {
	const q = `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(q,
		lead.ID, lead.CreatedBy, lead.CreatedAt, lead.UpdatedAt,
		lead.Name, lead.Email, lead.Phone, lead.Company,
		lead.Stage, lead.Source, lead.Notes, lead.AssignedTo,
	)
	return err
}

func (r *leadRepository) GetByID(id string) (*models.Lead, error) {
	const q = `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	lead, err := scanLead(r.db.QueryRow(q, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

// Update is a full replace of the entity fields; created_by and
// created_at are never part of the statement.
func (r *leadRepository) Update(lead *models.Lead) error {
	const q = `
		UPDATE leads
		SET name=$1, email=$2, phone=$3, company=$4, stage=$5, source=$6,
		    notes=$7, assigned_to=$8, updated_at=$9
		WHERE id=$10
	`
	_, err := r.db.Exec(q,
		lead.Name, lead.Email, lead.Phone, lead.Company, lead.Stage, lead.Source,
		lead.Notes, lead.AssignedTo, lead.UpdatedAt, lead.ID,
	)
	return err
}

func (r *leadRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM leads WHERE id=$1`, id)
	return err
}

func (r *leadRepository) List(scope authz.Scope) ([]*models.Lead, error) {
	q := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1`
	clause, args := scopeClause(scope, 1)
	q += clause + ` ORDER BY created_at DESC`

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, lead)
	}
	return out, rows.Err()
}

func (r *leadRepository) Count(scope authz.Scope) (int, error) {
	q := `SELECT COUNT(*) FROM leads WHERE 1=1`
	clause, args := scopeClause(scope, 1)
	var n int
	err := r.db.QueryRow(q+clause, args...).Scan(&n)
	return n, err
}

func (r *leadRepository) CountByStage(scope authz.Scope, stage models.LeadStage) (int, error) {
	q := `SELECT COUNT(*) FROM leads WHERE stage = $1`
	args := []interface{}{stage}
	clause, scopeArgs := scopeClause(scope, 2)
	args = append(args, scopeArgs...)
	var n int
	err := r.db.QueryRow(q+clause, args...).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*models.Lead, error) {
	l := &models.Lead{}
	err := row.Scan(
		&l.ID, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt,
		&l.Name, &l.Email, &l.Phone, &l.Company,
		&l.Stage, &l.Source, &l.Notes, &l.AssignedTo,
	)
	if err != nil {
		return nil, err
	}
	return l, nil
}
