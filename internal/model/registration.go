package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ApprovalFlag is the binary approval state of a device.
type ApprovalFlag string

const (
	ApprovalApproved ApprovalFlag = "Y"
	ApprovalPending  ApprovalFlag = "N"
)

// Maximum persisted lengths, in characters.
const (
	MaxDeviceIDLength   = 128
	MaxEmployeeIDLength = 32
	MaxLANIPLength      = 64
)

// ErrMissingRequiredField is wrapped by every ValidationError raised for an
// empty device_id or employee_id.
var ErrMissingRequiredField = errors.New("missing required field")

// ValidationError reports caller input that cannot be registered.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// DeviceRegistration is one row of the device pairing registry.
type DeviceRegistration struct {
	ID              int64        `json:"id" db:"id"`
	DeviceID        string       `json:"device_id" db:"device_id"`
	EmployeeID      string       `json:"employee_id" db:"employee_id"`
	AdminEmployeeID string       `json:"admin_employee_id" db:"admin_employee_id"`
	ApprovalFlag    ApprovalFlag `json:"approval_flag" db:"approval_flag"`
	LANIP           string       `json:"lan_ip" db:"lan_ip"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`
}

// IsApproved reports whether the device may proceed.
func (r *DeviceRegistration) IsApproved() bool {
	return r.ApprovalFlag == ApprovalApproved
}

// RegisterInput is the raw, caller-supplied registration.
type RegisterInput struct {
	DeviceID        string
	EmployeeID      string
	AdminEmployeeID string
	ApprovalFlag    string
	LANIP           string
}

// NormalizeApprovalFlag maps any input onto the allow-list: only "Y"
// (case-insensitive, surrounding whitespace ignored) approves.
func NormalizeApprovalFlag(raw string) ApprovalFlag {
	if strings.ToUpper(strings.TrimSpace(raw)) == string(ApprovalApproved) {
		return ApprovalApproved
	}
	return ApprovalPending
}

// NormalizeDeviceID trims and truncates a device id the way it is stored,
// so lookups by the raw id find the stored row.
func NormalizeDeviceID(raw string) string {
	return truncate(strings.TrimSpace(raw), MaxDeviceIDLength)
}

// NormalizeEmployeeID trims and truncates an employee id as stored.
func NormalizeEmployeeID(raw string) string {
	return truncate(strings.TrimSpace(raw), MaxEmployeeIDLength)
}

// NormalizeRegistration trims, defaults and truncates raw input into the
// record handed to the store. It performs no I/O.
func NormalizeRegistration(in RegisterInput) (DeviceRegistration, error) {
	deviceID := strings.TrimSpace(in.DeviceID)
	employeeID := strings.TrimSpace(in.EmployeeID)
	adminEmployeeID := strings.TrimSpace(in.AdminEmployeeID)

	if deviceID == "" {
		return DeviceRegistration{}, &ValidationError{Field: "device_id", Err: ErrMissingRequiredField}
	}
	if employeeID == "" {
		return DeviceRegistration{}, &ValidationError{Field: "employee_id", Err: ErrMissingRequiredField}
	}

	employeeID = truncate(employeeID, MaxEmployeeIDLength)
	if adminEmployeeID == "" {
		adminEmployeeID = employeeID
	}

	return DeviceRegistration{
		DeviceID:        NormalizeDeviceID(deviceID),
		EmployeeID:      employeeID,
		AdminEmployeeID: truncate(adminEmployeeID, MaxEmployeeIDLength),
		ApprovalFlag:    NormalizeApprovalFlag(in.ApprovalFlag),
		LANIP:           truncate(strings.TrimSpace(in.LANIP), MaxLANIPLength),
	}, nil
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// RegistrationStatus is the read view returned by a status lookup.
type RegistrationStatus struct {
	Found           bool         `json:"found"`
	ApprovalFlag    ApprovalFlag `json:"approval_flag"`
	EmployeeID      string       `json:"employee_id,omitempty"`
	AdminEmployeeID string       `json:"admin_employee_id,omitempty"`
	LANIP           *string      `json:"lan_ip,omitempty"`
}

// NotFoundStatus is the safe default for an unknown device.
func NotFoundStatus() RegistrationStatus {
	return RegistrationStatus{Found: false, ApprovalFlag: ApprovalPending}
}

// StatusOf builds the status view of a stored record.
func StatusOf(r *DeviceRegistration) RegistrationStatus {
	lanIP := r.LANIP
	return RegistrationStatus{
		Found:           true,
		ApprovalFlag:    r.ApprovalFlag,
		EmployeeID:      r.EmployeeID,
		AdminEmployeeID: r.AdminEmployeeID,
		LANIP:           &lanIP,
	}
}
