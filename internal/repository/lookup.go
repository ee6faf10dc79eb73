package repository

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/rpos-gateway/internal/model"
	"github.com/deppfellow/rpos-gateway/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// EmployeeRepository reads the back office user table.
type EmployeeRepository struct {
	db      DBTX
	timeout time.Duration
}

func NewEmployeeRepository(db DBTX, timeout time.Duration) *EmployeeRepository {
	return &EmployeeRepository{db: db, timeout: timeout}
}

func (r *EmployeeRepository) GetByCode(ctx context.Context, employeeCode int64) (*model.Employee, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT counter, employeecode, locationcode, password, userid
		FROM applicationuser
		WHERE employeecode = @employee_code`,
		pgx.NamedArgs{"employee_code": employeeCode},
	)
	if err != nil {
		return nil, sqlerr.Wrap("applicationuser.get", "applicationuser", err)
	}

	return collectOne[model.Employee](rows, "applicationuser.get", "applicationuser")
}

// LocationRepository reads the shop/location master table.
type LocationRepository struct {
	db      DBTX
	timeout time.Duration
}

func NewLocationRepository(db DBTX, timeout time.Duration) *LocationRepository {
	return &LocationRepository{db: db, timeout: timeout}
}

func (r *LocationRepository) GetByCode(ctx context.Context, locationCode int64) (*model.Location, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT locationcode, locationname, address, fax, emailid, manager
		FROM locationmaster
		WHERE locationcode = @location_code`,
		pgx.NamedArgs{"location_code": locationCode},
	)
	if err != nil {
		return nil, sqlerr.Wrap("locationmaster.get", "locationmaster", err)
	}

	return collectOne[model.Location](rows, "locationmaster.get", "locationmaster")
}

func collectOne[T any](rows pgx.Rows, op, table string) (*T, error) {
	out, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, sqlerr.Wrap(op, table, err)
	}
	return out, nil
}
