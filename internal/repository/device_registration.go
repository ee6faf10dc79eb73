package repository

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/rpos-gateway/internal/model"
	"github.com/deppfellow/rpos-gateway/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const rposLoginTable = "rpos_login"

// DeviceIDKey is the unique constraint on rpos_login.device_id.
const DeviceIDKey = "rpos_login_device_id_key"

// DeviceRegistrationRepository is the Postgres registry store.
type DeviceRegistrationRepository struct {
	db      DBTX
	timeout time.Duration
}

func NewDeviceRegistrationRepository(db DBTX, timeout time.Duration) *DeviceRegistrationRepository {
	return &DeviceRegistrationRepository{db: db, timeout: timeout}
}

// The conflicting row is locked for the duration of the statement, so
// concurrent writers for one device_id are applied one after another and
// each RETURNING sees a complete row. updated_at never moves backwards.
const upsertRegistrationSQL = `
INSERT INTO rpos_login (device_id, employee_id, admin_employee_id, approval_flag, lan_ip)
VALUES (@device_id, @employee_id, @admin_employee_id, @approval_flag, @lan_ip)
ON CONFLICT (device_id) DO UPDATE SET
	employee_id       = EXCLUDED.employee_id,
	admin_employee_id = EXCLUDED.admin_employee_id,
	approval_flag     = EXCLUDED.approval_flag,
	lan_ip            = EXCLUDED.lan_ip,
	updated_at        = GREATEST(now(), rpos_login.updated_at)
RETURNING id, device_id, employee_id, admin_employee_id, approval_flag, lan_ip, created_at, updated_at`

// Upsert creates the record for reg.DeviceID or updates every mutable
// field of the existing one, returning the stored row.
func (r *DeviceRegistrationRepository) Upsert(ctx context.Context, reg model.DeviceRegistration) (*model.DeviceRegistration, error) {
	const op = "rpos_login.upsert"

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, upsertRegistrationSQL, pgx.NamedArgs{
		"device_id":         reg.DeviceID,
		"employee_id":       reg.EmployeeID,
		"admin_employee_id": reg.AdminEmployeeID,
		"approval_flag":     string(reg.ApprovalFlag),
		"lan_ip":            reg.LANIP,
	})
	if err != nil {
		return nil, sqlerr.Wrap(op, rposLoginTable, err)
	}

	stored, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.DeviceRegistration])
	if err != nil {
		return nil, sqlerr.Wrap(op, rposLoginTable, err)
	}

	return stored, nil
}

const findRegistrationSQL = `
SELECT id, device_id, employee_id, admin_employee_id, approval_flag, lan_ip, created_at, updated_at
FROM rpos_login
WHERE device_id = @device_id
	AND (@admin_employee_id::text = '' OR admin_employee_id = @admin_employee_id)
ORDER BY updated_at DESC
LIMIT 1`

// Find looks a device up, optionally requiring a specific admin employee.
// A miss returns ErrNotFound.
func (r *DeviceRegistrationRepository) Find(ctx context.Context, deviceID, adminEmployeeID string) (*model.DeviceRegistration, error) {
	const op = "rpos_login.find"

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, findRegistrationSQL, pgx.NamedArgs{
		"device_id":         deviceID,
		"admin_employee_id": adminEmployeeID,
	})
	if err != nil {
		return nil, sqlerr.Wrap(op, rposLoginTable, err)
	}

	stored, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.DeviceRegistration])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, sqlerr.Wrap(op, rposLoginTable, err)
	}

	return stored, nil
}
