package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/deppfellow/rpos-gateway/internal/config"
	"github.com/deppfellow/rpos-gateway/internal/lib/email"
	"github.com/deppfellow/rpos-gateway/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// approvalMailer is the email capability the approval handler needs.
type approvalMailer interface {
	SendApprovalRequest(ctx context.Context, to string, data email.ApprovalRequestData) error
}

// InitHandlers wires the dependencies used by task handlers. It must run
// before Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg, logger)
	if cfg.Notification != nil {
		j.approverEmail = cfg.Notification.ApproverEmail
	}
}

// NotifyApprovalRequested enqueues an approval request for reg. A
// duplicate within the dedup window is not an error.
func (j *JobService) NotifyApprovalRequested(ctx context.Context, reg *model.DeviceRegistration) error {
	task, err := NewApprovalRequestedTask(reg)
	if err != nil {
		return fmt.Errorf("failed to build approval task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		j.logger.Debug().Str("device_id", reg.DeviceID).Msg("approval request already queued")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue approval task: %w", err)
	}

	j.logger.Info().
		Str("device_id", reg.DeviceID).
		Str("task_id", info.ID).
		Msg("approval request queued")
	return nil
}

func (j *JobService) handleApprovalRequestedTask(ctx context.Context, t *asynq.Task) error {
	var p ApprovalRequestedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A malformed payload will never succeed.
		return fmt.Errorf("failed to unmarshal approval payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskApprovalRequested).
		Str("device_id", p.DeviceID).
		Logger()

	if j.approverEmail == "" {
		log.Warn().Msg("no approver email configured, dropping approval request")
		return nil
	}

	log.Info().Msg("processing approval request")

	err := j.mailer.SendApprovalRequest(ctx, j.approverEmail, email.ApprovalRequestData{
		DeviceID:        p.DeviceID,
		EmployeeID:      p.EmployeeID,
		AdminEmployeeID: p.AdminEmployeeID,
		LANIP:           p.LANIP,
		RequestedAt:     j.now(),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to send approval request email")
		return err
	}

	log.Info().Msg("approval request email sent")
	return nil
}
