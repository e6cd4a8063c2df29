package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	appcompliance "github.com/jhoicas/slms-api/internal/application/compliance"
	"github.com/jhoicas/slms-api/internal/application/renewal"
	"github.com/jhoicas/slms-api/internal/domain/repository"
)

// Ensure TxRunner implements renewal.TxRunner and compliance.TxRunner.
var _ renewal.TxRunner = (*TxRunner)(nil)
var _ appcompliance.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRenewal inicia una transacción con los repos del flujo de renovación
// (chequeo de tarea activa + inserción, y efectos de aprobación) y hace
// Commit o Rollback.
func (r *TxRunner) RunRenewal(ctx context.Context, fn func(
	renewalRepo repository.RenewalRepository,
	licenseRepo repository.LicenseRepository,
	alertRepo repository.AlertRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRenewalRepository(tx), NewLicenseRepository(tx), NewAlertRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCompliance inicia una transacción para la reconciliación de alertas:
// una pasada del motor o entra completa o no entra (sin mutación parcial).
func (r *TxRunner) RunCompliance(ctx context.Context, fn func(
	alertRepo repository.AlertRepository,
	licenseRepo repository.LicenseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewAlertRepository(tx), NewLicenseRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
