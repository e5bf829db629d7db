package repositories

import (
	"database/sql"
	"log"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/vaaltic/crm/internal/authz"
	"github.com/vaaltic/crm/internal/models"
)

type DealRepository interface {
	Create(deal *models.Deal) error
	GetByID(id string) (*models.Deal, error)
	Update(deal *models.Deal) error
	Delete(id string) error
	List(scope authz.Scope) ([]*models.Deal, error)
	Count(scope authz.Scope) (int, error)
	CountByStage(scope authz.Scope, stage models.DealStage) (int, error)
	SumValueByStages(scope authz.Scope, stages []models.DealStage) (decimal.Decimal, error)
}

type dealRepository struct {
	db *sql.DB
}

func NewDealRepository(db *sql.DB) DealRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &dealRepository{db: db}
}

const dealColumns = `id, created_by, created_at, updated_at, title, value, expected_close_date, stage, description, contact_id`

func (r *dealRepository) Create(deal *models.Deal) error {
	const q = `
		INSERT INTO deals (` + dealColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(q,
		deal.ID, deal.CreatedBy, deal.CreatedAt, deal.UpdatedAt,
		deal.Title, deal.Value, deal.ExpectedCloseDate, deal.Stage,
		deal.Description, deal.ContactID,
	)
	return err
}

func (r *dealRepository) GetByID(id string) (*models.Deal, error) {
	const q = `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`
	deal, err := scanDeal(r.db.QueryRow(q, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return deal, nil
}

func (r *dealRepository) Update(deal *models.Deal) error {
	const q = `
		UPDATE deals
		SET title=$1, value=$2, expected_close_date=$3, stage=$4,
		    description=$5, contact_id=$6, updated_at=$7
		WHERE id=$8
	`
	_, err := r.db.Exec(q,
		deal.Title, deal.Value, deal.ExpectedCloseDate, deal.Stage,
		deal.Description, deal.ContactID, deal.UpdatedAt, deal.ID,
	)
	return err
}

func (r *dealRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM deals WHERE id=$1`, id)
	return err
}

func (r *dealRepository) List(scope authz.Scope) ([]*models.Deal, error) {
	q := `SELECT ` + dealColumns + ` FROM deals WHERE 1=1`
	clause, args := scopeClause(scope, 1)
	q += clause + ` ORDER BY created_at DESC`

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Deal{}
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, deal)
	}
	return out, rows.Err()
}

func (r *dealRepository) Count(scope authz.Scope) (int, error) {
	q := `SELECT COUNT(*) FROM deals WHERE 1=1`
	clause, args := scopeClause(scope, 1)
	var n int
	err := r.db.QueryRow(q+clause, args...).Scan(&n)
	return n, err
}

func (r *dealRepository) CountByStage(scope authz.Scope, stage models.DealStage) (int, error) {
	q := `SELECT COUNT(*) FROM deals WHERE stage = $1`
	args := []interface{}{stage}
	clause, scopeArgs := scopeClause(scope, 2)
	args = append(args, scopeArgs...)
	var n int
	err := r.db.QueryRow(q+clause, args...).Scan(&n)
	return n, err
}

// SumValueByStages totals deal values over the given stages inside the
// scope. The sum happens in NUMERIC on the database side and is scanned
// into a decimal, so currency never passes through a float.
func (r *dealRepository) SumValueByStages(scope authz.Scope, stages []models.DealStage) (decimal.Decimal, error) {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = string(s)
	}

	q := `SELECT COALESCE(SUM(value), 0) FROM deals WHERE stage = ANY($1)`
	args := []interface{}{pq.Array(names)}
	clause, scopeArgs := scopeClause(scope, 2)
	args = append(args, scopeArgs...)

	var total decimal.Decimal
	err := r.db.QueryRow(q+clause, args...).Scan(&total)
	return total, err
}

func scanDeal(row rowScanner) (*models.Deal, error) {
	d := &models.Deal{}
	err := row.Scan(
		&d.ID, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
		&d.Title, &d.Value, &d.ExpectedCloseDate, &d.Stage,
		&d.Description, &d.ContactID,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}
