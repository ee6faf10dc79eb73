package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/rpos-gateway/internal/model"
	"github.com/hibiken/asynq"
)

// TaskApprovalRequested is enqueued when a device registers without approval.
const TaskApprovalRequested = "approval:requested"

// approvalDedupWindow collapses repeated registrations of one pending
// device into a single notification. asynq keys uniqueness on the payload
// bytes, so the payload carries nothing that changes between writes.
const approvalDedupWindow = 10 * time.Minute

// ApprovalRequestedPayload is the JSON payload of TaskApprovalRequested.
type ApprovalRequestedPayload struct {
	DeviceID        string `json:"device_id"`
	EmployeeID      string `json:"employee_id"`
	AdminEmployeeID string `json:"admin_employee_id"`
	LANIP           string `json:"lan_ip"`
}

// NewApprovalRequestedTask builds the task for a pending registration.
func NewApprovalRequestedTask(reg *model.DeviceRegistration) (*asynq.Task, error) {
	payload, err := json.Marshal(ApprovalRequestedPayload{
		DeviceID:        reg.DeviceID,
		EmployeeID:      reg.EmployeeID,
		AdminEmployeeID: reg.AdminEmployeeID,
		LANIP:           reg.LANIP,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskApprovalRequested,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
		asynq.Unique(approvalDedupWindow),
	), nil
}
