package email

import "time"

// PreviewData holds sample template data for local preview.
var PreviewData = map[Template]any{
	TemplateApprovalRequest: ApprovalRequestData{
		DeviceID:        "POS-TERMINAL-07",
		EmployeeID:      "1042",
		AdminEmployeeID: "1001",
		LANIP:           "192.168.1.57",
		RequestedAt:     time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC),
	},
}
