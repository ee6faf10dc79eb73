package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/deppfellow/rpos-gateway/internal/model"
	"github.com/deppfellow/rpos-gateway/internal/repository"
	"github.com/deppfellow/rpos-gateway/internal/server"
	"github.com/deppfellow/rpos-gateway/internal/service"
	"github.com/deppfellow/rpos-gateway/internal/validation"
	"github.com/labstack/echo/v4"
)

type LookupHandler struct {
	Handler
	employees *service.EmployeeService
	locations *service.LocationService
	catalog   *service.CatalogService
}

func NewLookupHandler(s *server.Server, services *service.Services) *LookupHandler {
	return &LookupHandler{
		Handler:   NewHandler(s),
		employees: services.Employee,
		locations: services.Location,
		catalog:   services.Catalog,
	}
}

type GetEmployeeRequest struct {
	EmployeeCode string `param:"employee_code" validate:"required,numeric"`
}

func (r *GetEmployeeRequest) Validate() error {
	return validation.Struct(r)
}

// SearchEmployeeRequest accepts the code as a JSON string or number.
type SearchEmployeeRequest struct {
	EmployeeCode any `json:"employee_code"`

	code int64
}

func (r *SearchEmployeeRequest) Validate() error {
	code, err := model.ParseEmployeeCode(r.EmployeeCode)
	if err != nil {
		return validation.CustomValidationErrors{{Field: "employee_code", Message: err.Error()}}
	}
	r.code = code
	return nil
}

type GetLocationRequest struct {
	LocationCode string `param:"location_code" validate:"required,numeric"`
}

func (r *GetLocationRequest) Validate() error {
	return validation.Struct(r)
}

type CatalogRequest struct {
	Fields string `query:"fields"`
	Search string `query:"search"`
	Limit  string `query:"limit"`
	Offset string `query:"offset"`
}

func (r *CatalogRequest) Validate() error {
	return nil
}

func (h *LookupHandler) GetEmployee(c echo.Context, req *GetEmployeeRequest) (Response, error) {
	code, err := strconv.ParseInt(req.EmployeeCode, 10, 64)
	if err != nil {
		return Response{}, validationFailure("employee_code", model.ErrEmployeeCodeNotNumber.Error())
	}
	return h.employee(c, code)
}

func (h *LookupHandler) SearchEmployee(c echo.Context, req *SearchEmployeeRequest) (Response, error) {
	return h.employee(c, req.code)
}

func (h *LookupHandler) employee(c echo.Context, code int64) (Response, error) {
	res, err := h.employees.Get(c.Request().Context(), code)
	if errors.Is(err, repository.ErrNotFound) {
		return WithStatus(http.StatusNotFound, model.LookupMiss{
			Found:   false,
			Message: service.EmployeeNotFoundMessage(code),
		}), nil
	}
	if err != nil {
		return Response{}, err
	}
	return WithStatus(http.StatusOK, res), nil
}

func (h *LookupHandler) GetLocation(c echo.Context, req *GetLocationRequest) (Response, error) {
	code, err := strconv.ParseInt(req.LocationCode, 10, 64)
	if err != nil {
		return Response{}, validationFailure("location_code", "must be a number")
	}

	res, err := h.locations.Get(c.Request().Context(), code)
	if errors.Is(err, repository.ErrNotFound) {
		return WithStatus(http.StatusNotFound, model.LookupMiss{
			Found:   false,
			Message: service.LocationNotFoundMessage(code),
		}), nil
	}
	if err != nil {
		return Response{}, err
	}
	return WithStatus(http.StatusOK, res), nil
}

func (h *LookupHandler) ListCatalog(c echo.Context, req *CatalogRequest) (*model.CatalogPage, error) {
	q := model.NewCatalogQuery(req.Fields, req.Search, req.Limit, req.Offset)
	return h.catalog.List(c.Request().Context(), q)
}
