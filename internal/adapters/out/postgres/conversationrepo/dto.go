// Package conversationrepo provides data transfer objects and mapping functions
// for the append-only conversation log.
package conversationrepo

import (
	"time"

	"github.com/google/uuid"

	"courierbot/internal/core/domain/model/conversation"
	"courierbot/internal/core/domain/model/kernel"
)

// LogRecordDTO represents the database structure for persisting answered turns.
type LogRecordDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID      uuid.UUID `gorm:"type:uuid;index"`
	Message        string
	Answer         string
	Intent         string `gorm:"index"`
	AppliedAction  string
	FellBack       bool
	ResponseTimeMS int64
	CreatedAt      time.Time `gorm:"index"`
}

// TableName specifies the database table name for conversation log rows.
func (LogRecordDTO) TableName() string {
	return "conversation_logs"
}

// fromDomain converts a log record to its database representation.
func fromDomain(record *conversation.LogRecord) LogRecordDTO {
	return LogRecordDTO{
		ID:             record.ID().Bytes(),
		CourierID:      record.CourierID().Bytes(),
		Message:        record.Message(),
		Answer:         record.Answer(),
		Intent:         record.Intent().String(),
		AppliedAction:  record.AppliedAction(),
		FellBack:       record.FellBack(),
		ResponseTimeMS: record.ResponseTimeMS(),
		CreatedAt:      record.CreatedAt(),
	}
}

// toDomain converts a database DTO to a log record.
func toDomain(dto LogRecordDTO) (*conversation.LogRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	return conversation.RestoreLogRecord(
		id,
		courierID,
		dto.Message,
		dto.Answer,
		conversation.Intent(dto.Intent),
		dto.AppliedAction,
		dto.FellBack,
		dto.ResponseTimeMS,
		dto.CreatedAt,
	)
}
