package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/rpos-gateway/internal/errs"
	"github.com/deppfellow/rpos-gateway/internal/model"
	"github.com/deppfellow/rpos-gateway/internal/repository"
	"github.com/deppfellow/rpos-gateway/internal/sqlerr"
	"github.com/rs/zerolog"
)

// notifyTimeout bounds the enqueue of an approval notification so a slow
// broker cannot hold up the registration response.
const notifyTimeout = 2 * time.Second

// DeviceRegistrationStore persists device registrations.
type DeviceRegistrationStore interface {
	Upsert(ctx context.Context, reg model.DeviceRegistration) (*model.DeviceRegistration, error)
	Find(ctx context.Context, deviceID, adminEmployeeID string) (*model.DeviceRegistration, error)
}

// ApprovalNotifier is told about devices left waiting for approval.
type ApprovalNotifier interface {
	NotifyApprovalRequested(ctx context.Context, reg *model.DeviceRegistration) error
}

type RegistrationService struct {
	store    DeviceRegistrationStore
	notifier ApprovalNotifier
	logger   *zerolog.Logger
}

// NewRegistrationService builds the service. notifier may be nil.
func NewRegistrationService(store DeviceRegistrationStore, notifier ApprovalNotifier, logger *zerolog.Logger) *RegistrationService {
	return &RegistrationService{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Register normalizes in and writes it as the current state of the device.
// The returned record is what the store persisted.
func (s *RegistrationService) Register(ctx context.Context, in model.RegisterInput) (*model.DeviceRegistration, error) {
	reg, err := model.NormalizeRegistration(in)
	if err != nil {
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			return nil, errs.NewBadRequestError(model.ErrMissingRequiredField.Error(), true, nil, []errs.FieldError{
				{Field: vErr.Field, Error: "is required"},
			}, nil)
		}
		return nil, err
	}

	stored, err := s.store.Upsert(ctx, reg)
	if sqlerr.IsDuplicateKeyOn(err, repository.DeviceIDKey) {
		// Another writer created the row between our insert and update.
		s.logger.Debug().Str("device_id", reg.DeviceID).Msg("registration raced, retrying as update")
		stored, err = s.store.Upsert(ctx, reg)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("device_id", stored.DeviceID).
		Str("employee_id", stored.EmployeeID).
		Str("approval_flag", string(stored.ApprovalFlag)).
		Msg("device registered")

	if !stored.IsApproved() {
		s.notify(ctx, stored)
	}

	return stored, nil
}

func (s *RegistrationService) notify(ctx context.Context, reg *model.DeviceRegistration) {
	if s.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err := s.notifier.NotifyApprovalRequested(ctx, reg); err != nil {
		s.logger.Warn().
			Err(err).
			Str("device_id", reg.DeviceID).
			Msg("failed to request approval notification")
	}
}

// Status reports the stored state of a device. An unknown device is not an
// error: it reports found=false with a pending flag.
func (s *RegistrationService) Status(ctx context.Context, deviceID, adminEmployeeID string) (model.RegistrationStatus, error) {
	deviceID = model.NormalizeDeviceID(deviceID)
	if deviceID == "" {
		return model.RegistrationStatus{}, errs.NewBadRequestError("device_id query parameter is required", true, nil, []errs.FieldError{
			{Field: "device_id", Error: "is required"},
		}, nil)
	}

	reg, err := s.store.Find(ctx, deviceID, model.NormalizeEmployeeID(adminEmployeeID))
	if errors.Is(err, repository.ErrNotFound) {
		return model.NotFoundStatus(), nil
	}
	if err != nil {
		return model.RegistrationStatus{}, err
	}

	return model.StatusOf(reg), nil
}
