package worker

import (
	"context"
	"encoding/json"

	"github.com/orgdesk/backend/internal/domain/job"
	"github.com/orgdesk/backend/internal/infrastructure/email"
)

// EmailExecutor delivers EMAIL jobs through a mail sender
type EmailExecutor struct {
	sender email.Sender
}

// NewEmailExecutor creates an EmailExecutor
func NewEmailExecutor(sender email.Sender) *EmailExecutor {
	return &EmailExecutor{sender: sender}
}

// Validate checks the EMAIL payload shape
func (e *EmailExecutor) Validate(payload json.RawMessage) error {
	_, err := job.ParseEmailPayload(payload)
	return err
}

// Execute sends the login link
func (e *EmailExecutor) Execute(ctx context.Context, j *job.Job) error {
	payload, err := job.ParseEmailPayload(j.Payload)
	if err != nil {
		return err
	}
	return e.sender.SendLoginLink(ctx, payload.ToEmail, payload.Token)
}
