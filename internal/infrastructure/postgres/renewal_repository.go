package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/slms-api/internal/domain"
	"github.com/jhoicas/slms-api/internal/domain/entity"
	"github.com/jhoicas/slms-api/internal/domain/repository"
)

var _ repository.RenewalRepository = (*RenewalRepo)(nil)

// RenewalRepo implementación del puerto RenewalRepository sobre PostgreSQL.
// La base es la autoridad del invariante de una sola tarea activa por
// licencia: índice único parcial
//
//	CREATE UNIQUE INDEX ux_renewal_active ON renewal_tasks (license_id)
//	WHERE status IN ('Pending', 'Quote Req');
//
// por lo que una creación en carrera (check-then-act del cliente) pierde
// con 23505 y se traduce a ErrRenewalPending, nunca se acepta dos veces.
type RenewalRepo struct {
	q Querier
}

// NewRenewalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRenewalRepository(q Querier) *RenewalRepo {
	return &RenewalRepo{q: q}
}

const renewalSelect = `SELECT id, license_id, software_name, due_date, quote_details, cost, status, created_at, updated_at FROM renewal_tasks`

// Create persiste una nueva tarea.
func (r *RenewalRepo) Create(task *entity.RenewalTask) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO renewal_tasks (id, license_id, software_name, due_date, quote_details, cost, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		task.ID, task.LicenseID, task.SoftwareName, task.DueDate, task.QuoteDetails,
		task.Cost, string(task.Status), task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRenewalPending
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert renewal: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea por ID.
func (r *RenewalRepo) GetByID(id string) (*entity.RenewalTask, error) {
	t, err := scanRenewal(r.q.QueryRow(context.Background(), renewalSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get renewal: %w", err)
	}
	return t, nil
}

// List devuelve todas las tareas, más recientes primero.
func (r *RenewalRepo) List() ([]*entity.RenewalTask, error) {
	rows, err := r.q.Query(context.Background(), renewalSelect+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list renewals: %w", err)
	}
	return scanRenewals(rows)
}

// ListByLicense devuelve las tareas de una licencia.
func (r *RenewalRepo) ListByLicense(licenseID string) ([]*entity.RenewalTask, error) {
	rows, err := r.q.Query(context.Background(),
		renewalSelect+` WHERE license_id = $1 ORDER BY created_at DESC`, licenseID)
	if err != nil {
		return nil, fmt.Errorf("list renewals by license: %w", err)
	}
	return scanRenewals(rows)
}

// GetActiveByLicense devuelve la tarea no-terminal de la licencia, si existe.
func (r *RenewalRepo) GetActiveByLicense(licenseID string) (*entity.RenewalTask, error) {
	t, err := scanRenewal(r.q.QueryRow(context.Background(),
		renewalSelect+` WHERE license_id = $1 AND status IN ('Pending', 'Quote Req') LIMIT 1`, licenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active renewal: %w", err)
	}
	return t, nil
}

// UpdateStatus transiciona una tarea de estado.
func (r *RenewalRepo) UpdateStatus(id string, status entity.RenewalStatus) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE renewal_tasks SET status = $2, updated_at = now() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("update renewal status: %w", err)
	}
	return nil
}

// Delete elimina una tarea por ID.
func (r *RenewalRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM renewal_tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete renewal: %w", err)
	}
	return nil
}

func scanRenewal(row pgx.Row) (*entity.RenewalTask, error) {
	var t entity.RenewalTask
	var status string
	if err := row.Scan(&t.ID, &t.LicenseID, &t.SoftwareName, &t.DueDate, &t.QuoteDetails,
		&t.Cost, &status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Status = entity.RenewalStatus(status)
	return &t, nil
}

func scanRenewals(rows pgx.Rows) ([]*entity.RenewalTask, error) {
	defer rows.Close()
	var list []*entity.RenewalTask
	for rows.Next() {
		t, err := scanRenewal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan renewal: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
