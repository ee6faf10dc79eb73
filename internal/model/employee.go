package model

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

var (
	ErrEmployeeCodeRequired  = errors.New("Employee code is required")
	ErrEmployeeCodeNotNumber = errors.New("Employee code must be a number")
)

// Employee is a row of the back office user table.
type Employee struct {
	EmployeeCode int64   `db:"employeecode"`
	UserID       *string `db:"userid"`
	Password     *string `db:"password"`
	Counter      *string `db:"counter"`
	LocationCode *int64  `db:"locationcode"`
}

// EmployeeResponse is the wire shape of a found employee. Username repeats
// the employee code because the POS client logs in with it.
type EmployeeResponse struct {
	EmployeeID   string `json:"employee_id"`
	Username     string `json:"username"`
	Counter      string `json:"counter"`
	Name         string `json:"name"`
	Password     string `json:"password"`
	LocationCode *int64 `json:"location_code"`
	Found        bool   `json:"found"`
}

// DefaultCounter is reported when no counter is assigned.
const DefaultCounter = "N"

// ToResponse maps the row to its wire shape, replacing NULLs with defaults.
func (e *Employee) ToResponse() EmployeeResponse {
	code := strconv.FormatInt(e.EmployeeCode, 10)

	counter := deref(e.Counter)
	if counter == "" {
		counter = DefaultCounter
	}

	var location *int64
	if e.LocationCode != nil && *e.LocationCode != 0 {
		location = e.LocationCode
	}

	return EmployeeResponse{
		EmployeeID:   code,
		Username:     code,
		Counter:      counter,
		Name:         deref(e.UserID),
		Password:     deref(e.Password),
		LocationCode: location,
		Found:        true,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ParseEmployeeCode accepts an employee code given as a JSON string or
// number. Zero values count as missing.
func ParseEmployeeCode(v any) (int64, error) {
	switch val := v.(type) {
	case nil:
		return 0, ErrEmployeeCodeRequired
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, ErrEmployeeCodeRequired
		}
		code, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, ErrEmployeeCodeNotNumber
		}
		return code, nil
	}

	code, err := cast.ToInt64E(v)
	if err != nil {
		return 0, ErrEmployeeCodeNotNumber
	}
	if code == 0 {
		return 0, ErrEmployeeCodeRequired
	}
	return code, nil
}
