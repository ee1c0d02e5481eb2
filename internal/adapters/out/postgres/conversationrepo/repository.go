package conversationrepo

import (
	"context"

	"gorm.io/gorm"

	"courierbot/internal/core/domain/model/conversation"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/errs"
)

// GormConversationRepository implements ConversationRepository using GORM.
type GormConversationRepository struct {
	db *gorm.DB
}

// NewGormConversationRepository creates a new GORM conversation repository.
func NewGormConversationRepository(db *gorm.DB) *GormConversationRepository {
	return &GormConversationRepository{db: db}
}

// Add saves one answered turn to the conversation log.
func (r *GormConversationRepository) Add(ctx context.Context, record *conversation.LogRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListForCourier retrieves up to limit of a courier's newest log records,
// newest first.
func (r *GormConversationRepository) ListForCourier(ctx context.Context,
	courierID kernel.UUID, limit int) ([]*conversation.LogRecord, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []LogRecordDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&dtos, "courier_id = ?", courierID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	records := make([]*conversation.LogRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
