// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/deppfellow/rpos-gateway/internal/repository"
	"github.com/deppfellow/rpos-gateway/internal/server"
)

type Services struct {
	Registration *RegistrationService
	Employee     *EmployeeService
	Location     *LocationService
	Catalog      *CatalogService
	Host         *HostService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	// Approval mails are only queued when notifications are switched on.
	var notifier ApprovalNotifier
	if s.Config.Notification != nil && s.Config.Notification.Enabled && s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Registration: NewRegistrationService(repos.DeviceRegistration, notifier, s.Logger),
		Employee:     NewEmployeeService(repos.Employee),
		Location:     NewLocationService(repos.Location),
		Catalog:      NewCatalogService(repos.Catalog),
		Host:         NewHostService(),
	}, nil
}
