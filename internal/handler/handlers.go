// Package handler is the HTTP layer: it binds and validates requests,
// calls the service layer and writes responses.
package handler

import (
	"github.com/deppfellow/rpos-gateway/internal/server"
	"github.com/deppfellow/rpos-gateway/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	System       *SystemHandler
	Health       *HealthHandler
	OpenAPI      *OpenAPIHandler
	Registration *RegistrationHandler
	Lookup       *LookupHandler
	Host         *HostHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		System:       NewSystemHandler(s),
		Health:       NewHealthHandler(s),
		OpenAPI:      NewOpenAPIHandler(s),
		Registration: NewRegistrationHandler(s, services.Registration),
		Lookup:       NewLookupHandler(s, services),
		Host:         NewHostHandler(s, services.Host),
	}
}
