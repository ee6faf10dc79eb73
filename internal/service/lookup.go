package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/rpos-gateway/internal/model"
)

type EmployeeStore interface {
	GetByCode(ctx context.Context, employeeCode int64) (*model.Employee, error)
}

type LocationStore interface {
	GetByCode(ctx context.Context, locationCode int64) (*model.Location, error)
}

type CatalogStore interface {
	List(ctx context.Context, q model.CatalogQuery) (*model.CatalogPage, error)
}

// EmployeeService looks up back office users by employee code.
type EmployeeService struct {
	store EmployeeStore
}

func NewEmployeeService(store EmployeeStore) *EmployeeService {
	return &EmployeeService{store: store}
}

// Get returns the wire view of the employee. A miss is reported as
// repository.ErrNotFound.
func (s *EmployeeService) Get(ctx context.Context, employeeCode int64) (*model.EmployeeResponse, error) {
	e, err := s.store.GetByCode(ctx, employeeCode)
	if err != nil {
		return nil, err
	}
	res := e.ToResponse()
	return &res, nil
}

// EmployeeNotFoundMessage is the 404 message of an employee lookup.
func EmployeeNotFoundMessage(employeeCode int64) string {
	return fmt.Sprintf("User with Employee Code %d not found", employeeCode)
}

type LocationService struct {
	store LocationStore
}

func NewLocationService(store LocationStore) *LocationService {
	return &LocationService{store: store}
}

func (s *LocationService) Get(ctx context.Context, locationCode int64) (*model.LocationResponse, error) {
	l, err := s.store.GetByCode(ctx, locationCode)
	if err != nil {
		return nil, err
	}
	res := l.ToResponse()
	return &res, nil
}

func LocationNotFoundMessage(locationCode int64) string {
	return fmt.Sprintf("Location with code %d not found", locationCode)
}

// CatalogService pages through the item master view.
type CatalogService struct {
	store CatalogStore
}

func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) List(ctx context.Context, q model.CatalogQuery) (*model.CatalogPage, error) {
	return s.store.List(ctx, q)
}
