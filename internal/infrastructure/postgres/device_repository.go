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

var _ repository.DeviceRepository = (*DeviceRepo)(nil)
var _ repository.InstallationRepository = (*InstallationRepo)(nil)

// DeviceRepo implementación del puerto DeviceRepository sobre PostgreSQL.
type DeviceRepo struct {
	q Querier
}

// NewDeviceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeviceRepository(q Querier) *DeviceRepo {
	return &DeviceRepo{q: q}
}

// Create persiste un nuevo dispositivo.
func (r *DeviceRepo) Create(device *entity.Device) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO devices (id, hostname, owner_user_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		device.ID, device.Hostname, device.OwnerUserID, device.CreatedAt, device.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert device: %w", err)
	}
	return nil
}

// GetByID obtiene un dispositivo por ID.
func (r *DeviceRepo) GetByID(id string) (*entity.Device, error) {
	var d entity.Device
	err := r.q.QueryRow(context.Background(),
		`SELECT id, hostname, owner_user_id, created_at, updated_at FROM devices WHERE id = $1`, id,
	).Scan(&d.ID, &d.Hostname, &d.OwnerUserID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get device: %w", err)
	}
	return &d, nil
}

// List lista dispositivos con paginación.
func (r *DeviceRepo) List(limit, offset int) ([]*entity.Device, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, hostname, owner_user_id, created_at, updated_at FROM devices ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Device
	for rows.Next() {
		var d entity.Device
		if err := rows.Scan(&d.ID, &d.Hostname, &d.OwnerUserID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Count devuelve el total de dispositivos (tablero).
func (r *DeviceRepo) Count() (int, error) {
	var n int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM devices`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count devices: %w", err)
	}
	return n, nil
}

// Update actualiza un dispositivo existente.
func (r *DeviceRepo) Update(device *entity.Device) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE devices SET hostname = $2, owner_user_id = $3, updated_at = $4 WHERE id = $1`,
		device.ID, device.Hostname, device.OwnerUserID, device.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update device: %w", err)
	}
	return nil
}

// Delete elimina un dispositivo; sus instalaciones caen por ON DELETE CASCADE.
func (r *DeviceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM devices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete device: %w", err)
	}
	return nil
}

// InstallationRepo implementación del puerto InstallationRepository.
type InstallationRepo struct {
	q Querier
}

// NewInstallationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInstallationRepository(q Querier) *InstallationRepo {
	return &InstallationRepo{q: q}
}

// Create registra una instalación de licencia en un dispositivo.
func (r *InstallationRepo) Create(inst *entity.Installation) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO installations (id, device_id, license_id, installed_at) VALUES ($1, $2, $3, $4)`,
		inst.ID, inst.DeviceID, inst.LicenseID, inst.InstalledAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert installation: %w", err)
	}
	return nil
}

// GetByID obtiene una instalación por ID.
func (r *InstallationRepo) GetByID(id string) (*entity.Installation, error) {
	var i entity.Installation
	err := r.q.QueryRow(context.Background(),
		`SELECT id, device_id, license_id, installed_at FROM installations WHERE id = $1`, id,
	).Scan(&i.ID, &i.DeviceID, &i.LicenseID, &i.InstalledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get installation: %w", err)
	}
	return &i, nil
}

// ListByDevice lista las instalaciones de un dispositivo.
func (r *InstallationRepo) ListByDevice(deviceID string) ([]*entity.Installation, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, device_id, license_id, installed_at FROM installations WHERE device_id = $1 ORDER BY installed_at`, deviceID)
	if err != nil {
		return nil, fmt.Errorf("list installations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Installation
	for rows.Next() {
		var i entity.Installation
		if err := rows.Scan(&i.ID, &i.DeviceID, &i.LicenseID, &i.InstalledAt); err != nil {
			return nil, fmt.Errorf("scan installation: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// CountByLicense cuenta instalaciones de una licencia (assignedLicenses).
func (r *InstallationRepo) CountByLicense(licenseID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM installations WHERE license_id = $1`, licenseID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count installations: %w", err)
	}
	return n, nil
}

// Delete elimina una instalación por ID.
func (r *InstallationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM installations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete installation: %w", err)
	}
	return nil
}
