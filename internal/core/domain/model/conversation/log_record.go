package conversation

import (
	"errors"
	"time"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/errs"
)

// ErrLogRecordIsNotConstructed is returned when a LogRecord was not created
// through its constructor.
var ErrLogRecordIsNotConstructed = errs.NewValueIsRequiredError("log record must be created via NewLogRecord or RestoreLogRecord")

// LogRecord is one answered turn as persisted for audit and analytics: who
// asked, what was asked, how it was classified, what was answered, and how
// long the turn took. Records are append-only.
type LogRecord struct {
	id             kernel.UUID
	courierID      kernel.UUID
	message        string
	answer         string
	intent         Intent
	appliedAction  string
	fellBack       bool
	responseTimeMS int64
	createdAt      time.Time

	isConstructed bool
}

// NewLogRecord creates a log record for a just-answered turn.
// appliedAction is empty when the turn changed no delivery.
func NewLogRecord(
	id kernel.UUID,
	courierID kernel.UUID,
	message string,
	answer string,
	intent Intent,
	appliedAction string,
	fellBack bool,
	responseTimeMS int64,
) (*LogRecord, error) {
	if err := errors.Join(
		id.Validate(),
		courierID.Validate(),
		intent.Validate(),
	); err != nil {
		return nil, err
	}
	if message == "" {
		return nil, errs.NewValueIsRequiredError("message")
	}
	if answer == "" {
		return nil, errs.NewValueIsRequiredError("answer")
	}
	if responseTimeMS < 0 {
		return nil, errs.NewValueIsOutOfRangeError("responseTimeMS", responseTimeMS, 0, "unbounded")
	}

	return &LogRecord{
		id:             id,
		courierID:      courierID,
		message:        message,
		answer:         answer,
		intent:         intent,
		appliedAction:  appliedAction,
		fellBack:       fellBack,
		responseTimeMS: responseTimeMS,
		createdAt:      time.Now().UTC(),
		isConstructed:  true,
	}, nil
}

// RestoreLogRecord reconstructs a LogRecord from persistence.
func RestoreLogRecord(
	id kernel.UUID,
	courierID kernel.UUID,
	message string,
	answer string,
	intent Intent,
	appliedAction string,
	fellBack bool,
	responseTimeMS int64,
	createdAt time.Time,
) (*LogRecord, error) {
	record, err := NewLogRecord(id, courierID, message, answer, intent, appliedAction, fellBack, responseTimeMS)
	if err != nil {
		return nil, err
	}

	record.createdAt = createdAt
	return record, nil
}

// Validate ensures the LogRecord instance was properly constructed.
func (r *LogRecord) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrLogRecordIsNotConstructed
	}
	return nil
}

// ID returns the record identifier.
func (r *LogRecord) ID() kernel.UUID {
	return r.id
}

// CourierID returns the courier who sent the message.
func (r *LogRecord) CourierID() kernel.UUID {
	return r.courierID
}

// Message returns the courier's message.
func (r *LogRecord) Message() string {
	return r.message
}

// Answer returns the assistant's answer.
func (r *LogRecord) Answer() string {
	return r.answer
}

// Intent returns how the message was classified.
func (r *LogRecord) Intent() Intent {
	return r.intent
}

// AppliedAction describes the status change the turn applied, empty when the
// turn changed nothing.
func (r *LogRecord) AppliedAction() string {
	return r.appliedAction
}

// FellBack reports whether the deterministic fallback answered the turn.
func (r *LogRecord) FellBack() bool {
	return r.fellBack
}

// ResponseTimeMS returns the turn latency in milliseconds.
func (r *LogRecord) ResponseTimeMS() int64 {
	return r.responseTimeMS
}

// CreatedAt returns when the turn was answered.
func (r *LogRecord) CreatedAt() time.Time {
	return r.createdAt
}
