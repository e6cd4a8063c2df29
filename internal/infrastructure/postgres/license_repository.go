package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/slms-api/internal/domain"
	"github.com/jhoicas/slms-api/internal/domain/entity"
	"github.com/jhoicas/slms-api/internal/domain/repository"
)

var _ repository.LicenseRepository = (*LicenseRepo)(nil)

// LicenseRepo implementación del puerto LicenseRepository sobre PostgreSQL.
// assigned_licenses se deriva contando instalaciones en la misma consulta;
// la tabla licenses no guarda ese número.
type LicenseRepo struct {
	q Querier
}

// NewLicenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLicenseRepository(q Querier) *LicenseRepo {
	return &LicenseRepo{q: q}
}

const licenseSelect = `
	SELECT l.id, l.product_name, l.vendor, l.license_type, l.total_entitlements,
	       (SELECT COUNT(*) FROM installations i WHERE i.license_id = l.id) AS assigned_licenses,
	       l.cost, l.purchase_date, l.expiry_date, l.created_at, l.updated_at
	FROM licenses l`

// Create persiste una nueva licencia.
func (r *LicenseRepo) Create(license *entity.License) error {
	query := `
		INSERT INTO licenses (id, product_name, vendor, license_type, total_entitlements, cost, purchase_date, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		license.ID, license.ProductName, license.Vendor, int(license.LicenseType),
		license.TotalEntitlements, license.Cost, license.PurchaseDate, license.ExpiryDate,
		license.CreatedAt, license.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert license: %w", err)
	}
	return nil
}

// GetByID obtiene una licencia con su conteo de asignaciones.
func (r *LicenseRepo) GetByID(id string) (*entity.License, error) {
	var l entity.License
	var licenseType int
	err := r.q.QueryRow(context.Background(), licenseSelect+` WHERE l.id = $1`, id).Scan(
		&l.ID, &l.ProductName, &l.Vendor, &licenseType, &l.TotalEntitlements,
		&l.AssignedLicenses, &l.Cost, &l.PurchaseDate, &l.ExpiryDate, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get license: %w", err)
	}
	l.LicenseType = entity.LicenseType(licenseType)
	return &l, nil
}

// List lista licencias con paginación.
func (r *LicenseRepo) List(limit, offset int) ([]*entity.License, error) {
	rows, err := r.q.Query(context.Background(),
		licenseSelect+` ORDER BY l.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list licenses: %w", err)
	}
	return scanLicenses(rows)
}

// ListAll devuelve todas las licencias (para el motor de cumplimiento y reportes).
func (r *LicenseRepo) ListAll() ([]*entity.License, error) {
	rows, err := r.q.Query(context.Background(), licenseSelect+` ORDER BY l.product_name`)
	if err != nil {
		return nil, fmt.Errorf("list all licenses: %w", err)
	}
	return scanLicenses(rows)
}

// Update actualiza los campos editables; assigned_licenses no existe como columna.
func (r *LicenseRepo) Update(license *entity.License) error {
	query := `
		UPDATE licenses SET product_name = $2, vendor = $3, license_type = $4, total_entitlements = $5, cost = $6, expiry_date = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		license.ID, license.ProductName, license.Vendor, int(license.LicenseType),
		license.TotalEntitlements, license.Cost, license.ExpiryDate, license.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update license: %w", err)
	}
	return nil
}

// UpdateExpiry extiende solo el vencimiento (renovación).
func (r *LicenseRepo) UpdateExpiry(id string, expiry time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE licenses SET expiry_date = $2, updated_at = now() WHERE id = $1`,
		id, expiry,
	)
	if err != nil {
		return fmt.Errorf("update license expiry: %w", err)
	}
	return nil
}

// Delete elimina una licencia por ID.
func (r *LicenseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM licenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete license: %w", err)
	}
	return nil
}

func scanLicenses(rows pgx.Rows) ([]*entity.License, error) {
	defer rows.Close()
	var list []*entity.License
	for rows.Next() {
		var l entity.License
		var licenseType int
		if err := rows.Scan(&l.ID, &l.ProductName, &l.Vendor, &licenseType, &l.TotalEntitlements,
			&l.AssignedLicenses, &l.Cost, &l.PurchaseDate, &l.ExpiryDate, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan license: %w", err)
		}
		l.LicenseType = entity.LicenseType(licenseType)
		list = append(list, &l)
	}
	return list, rows.Err()
}
