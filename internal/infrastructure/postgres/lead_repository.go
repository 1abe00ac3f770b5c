package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-lead-crm/internal/domain/entity"
	"github.com/oksasatya/go-lead-crm/internal/domain/repository"
)

// querier is the subset of pgxpool.Pool the repository needs.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type LeadRepository struct {
	db querier
}

func NewLeadRepository(pool *pgxpool.Pool) *LeadRepository {
	if pool == nil {
		panic("postgres: pgx pool required for leads")
	}
	return &LeadRepository{db: pool}
}

// NewLeadRepositoryWithDB allows injecting a custom querier (e.g. pgxmock).
func NewLeadRepositoryWithDB(db querier) *LeadRepository {
	return &LeadRepository{db: db}
}

const leadColumns = `id, name, email, phone, company, message, source, created_at`

func (r *LeadRepository) Create(ctx context.Context, l *entity.Lead) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO leads (name, email, phone, company, message, source)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, l.Name, l.Email, l.Phone, l.Company, l.Message, string(l.Source))

	if err := row.Scan(&l.ID, &l.CreatedAt); err != nil {
		return fmt.Errorf("leads: insert failed: %w", err)
	}
	return nil
}

func (r *LeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("leads: list failed: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("leads: scan failed: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leads: list failed: %w", err)
	}
	return out, nil
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	// ids are uuids; anything else cannot exist. uuid.Parse also accepts
	// urn and braced forms, which postgres rejects, so query the canonical form.
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repository.ErrLeadNotFound
	}

	row := r.db.QueryRow(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE id = $1
	`, uid.String())

	l, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return l, nil
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var (
		l      entity.Lead
		source string
	)
	if err := row.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Company, &l.Message, &source, &l.CreatedAt); err != nil {
		return nil, err
	}
	l.Source = entity.Source(source)
	return &l, nil
}

var _ repository.LeadRepository = (*LeadRepository)(nil)
