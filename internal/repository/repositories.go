package repository

import (
	"github.com/deppfellow/rpos-gateway/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	DeviceRegistration *DeviceRegistrationRepository
	Employee           *EmployeeRepository
	Location           *LocationRepository
	Catalog            *CatalogRepository
}

// NewRepositories builds every repository on the shared pool.
func NewRepositories(s *server.Server) *Repositories {
	pool := s.DB.Pool
	timeout := s.Config.Database.QueryTimeout

	return &Repositories{
		DeviceRegistration: NewDeviceRegistrationRepository(pool, timeout),
		Employee:           NewEmployeeRepository(pool, timeout),
		Location:           NewLocationRepository(pool, timeout),
		Catalog:            NewCatalogRepository(pool, timeout),
	}
}
