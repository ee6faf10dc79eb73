package job

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/rpos-gateway/internal/lib/email"
	"github.com/deppfellow/rpos-gateway/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type fakeMailer struct {
	to   string
	data email.ApprovalRequestData
	err  error
}

func (m *fakeMailer) SendApprovalRequest(_ context.Context, to string, data email.ApprovalRequestData) error {
	m.to, m.data = to, data
	return m.err
}

func newTestJobService(mailer approvalMailer, approver string) *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger, mailer: mailer, approverEmail: approver}
}

func TestNewApprovalRequestedTask(t *testing.T) {
	at := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	reg := &model.DeviceRegistration{
		DeviceID:        "D1",
		EmployeeID:      "E1",
		AdminEmployeeID: "A1",
		LANIP:           "192.168.1.20",
		UpdatedAt:       at,
	}

	task, err := NewApprovalRequestedTask(reg)
	if err != nil {
		t.Fatalf("NewApprovalRequestedTask() error = %v", err)
	}
	if task.Type() != TaskApprovalRequested {
		t.Errorf("Type() = %q, want %q", task.Type(), TaskApprovalRequested)
	}

	var p ApprovalRequestedPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		t.Fatalf("payload: %v", err)
	}
	want := ApprovalRequestedPayload{DeviceID: "D1", EmployeeID: "E1", AdminEmployeeID: "A1", LANIP: "192.168.1.20"}
	if p != want {
		t.Errorf("payload = %+v, want %+v", p, want)
	}
}

func TestApprovalTaskIdentityIgnoresWriteTime(t *testing.T) {
	first := &model.DeviceRegistration{DeviceID: "D1", EmployeeID: "E1", AdminEmployeeID: "E1", UpdatedAt: time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)}
	second := *first
	second.UpdatedAt = first.UpdatedAt.Add(time.Minute)

	a, err := NewApprovalRequestedTask(first)
	if err != nil {
		t.Fatalf("NewApprovalRequestedTask() error = %v", err)
	}
	b, err := NewApprovalRequestedTask(&second)
	if err != nil {
		t.Fatalf("NewApprovalRequestedTask() error = %v", err)
	}

	// asynq derives the uniqueness key from queue, type and payload bytes.
	if a.Type() != b.Type() || !bytes.Equal(a.Payload(), b.Payload()) {
		t.Errorf("re-registration built a distinct task: %s vs %s", a.Payload(), b.Payload())
	}
}

func TestHandleApprovalRequestedTask(t *testing.T) {
	reg := &model.DeviceRegistration{DeviceID: "D1", EmployeeID: "E1", AdminEmployeeID: "E1"}
	task, err := NewApprovalRequestedTask(reg)
	if err != nil {
		t.Fatalf("NewApprovalRequestedTask() error = %v", err)
	}

	t.Run("sends to approver", func(t *testing.T) {
		at := time.Date(2024, 5, 1, 8, 31, 0, 0, time.UTC)
		mailer := &fakeMailer{}
		j := newTestJobService(mailer, "it@example.com")
		j.clock = func() time.Time { return at }

		if err := j.handleApprovalRequestedTask(context.Background(), task); err != nil {
			t.Fatalf("handle error = %v", err)
		}
		if mailer.to != "it@example.com" || mailer.data.DeviceID != "D1" {
			t.Errorf("mailer got to=%q data=%+v", mailer.to, mailer.data)
		}
		if !mailer.data.RequestedAt.Equal(at) {
			t.Errorf("RequestedAt = %v, want %v", mailer.data.RequestedAt, at)
		}
	})

	t.Run("no approver drops the task", func(t *testing.T) {
		mailer := &fakeMailer{}
		j := newTestJobService(mailer, "")

		if err := j.handleApprovalRequestedTask(context.Background(), task); err != nil {
			t.Fatalf("handle error = %v", err)
		}
		if mailer.to != "" {
			t.Errorf("mailer was called with %q", mailer.to)
		}
	})

	t.Run("send failure is retried", func(t *testing.T) {
		sendErr := errors.New("provider down")
		j := newTestJobService(&fakeMailer{err: sendErr}, "it@example.com")

		err := j.handleApprovalRequestedTask(context.Background(), task)
		if !errors.Is(err, sendErr) || errors.Is(err, asynq.SkipRetry) {
			t.Errorf("handle error = %v, want retryable send error", err)
		}
	})

	t.Run("malformed payload skips retry", func(t *testing.T) {
		j := newTestJobService(&fakeMailer{}, "it@example.com")

		err := j.handleApprovalRequestedTask(context.Background(), asynq.NewTask(TaskApprovalRequested, []byte("{")))
		if !errors.Is(err, asynq.SkipRetry) {
			t.Errorf("handle error = %v, want SkipRetry", err)
		}
	})
}
