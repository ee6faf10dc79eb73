package handler

import (
	"net/http"

	"github.com/deppfellow/rpos-gateway/internal/model"
	"github.com/deppfellow/rpos-gateway/internal/server"
	"github.com/deppfellow/rpos-gateway/internal/service"
	"github.com/labstack/echo/v4"
)

type RegistrationHandler struct {
	Handler
	registration *service.RegistrationService
}

func NewRegistrationHandler(s *server.Server, registration *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		Handler:      NewHandler(s),
		registration: registration,
	}
}

// RegisterRequest is the body of POST /api/rpos-login. Required fields are
// checked after trimming by the registration service.
type RegisterRequest struct {
	DeviceID        string `json:"device_id"`
	EmployeeID      string `json:"employee_id"`
	AdminEmployeeID string `json:"admin_employee_id"`
	ApprovalFlag    string `json:"approval_flag"`
	LANIP           string `json:"lan_ip"`
}

func (r *RegisterRequest) Validate() error {
	return nil
}

type RegisterResponse struct {
	Success      bool               `json:"success"`
	ApprovalFlag model.ApprovalFlag `json:"approval_flag"`
}

type StatusRequest struct {
	DeviceID        string `query:"device_id"`
	AdminEmployeeID string `query:"admin_employee_id"`
}

func (r *StatusRequest) Validate() error {
	return nil
}

func (h *RegistrationHandler) Register(c echo.Context, req *RegisterRequest) (RegisterResponse, error) {
	stored, err := h.registration.Register(c.Request().Context(), model.RegisterInput{
		DeviceID:        req.DeviceID,
		EmployeeID:      req.EmployeeID,
		AdminEmployeeID: req.AdminEmployeeID,
		ApprovalFlag:    req.ApprovalFlag,
		LANIP:           req.LANIP,
	})
	if err != nil {
		return RegisterResponse{}, err
	}

	return RegisterResponse{Success: true, ApprovalFlag: stored.ApprovalFlag}, nil
}

// Status answers 200 for a known device and 404 with found=false otherwise.
func (h *RegistrationHandler) Status(c echo.Context, req *StatusRequest) (Response, error) {
	st, err := h.registration.Status(c.Request().Context(), req.DeviceID, req.AdminEmployeeID)
	if err != nil {
		return Response{}, err
	}

	if !st.Found {
		return WithStatus(http.StatusNotFound, st), nil
	}
	return WithStatus(http.StatusOK, st), nil
}
