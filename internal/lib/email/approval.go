package email

import (
	"context"
	"fmt"
	"time"
)

// ApprovalRequestData feeds templates/approval_request.html.
type ApprovalRequestData struct {
	DeviceID        string
	EmployeeID      string
	AdminEmployeeID string
	LANIP           string
	RequestedAt     time.Time
}

// SendApprovalRequest asks an approver to review a pending device.
func (c *Client) SendApprovalRequest(ctx context.Context, to string, data ApprovalRequestData) error {
	return c.SendEmail(
		ctx,
		to,
		fmt.Sprintf("Device %s is waiting for approval", data.DeviceID),
		TemplateApprovalRequest,
		data,
	)
}
