package knowledgerepo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"courierbot/internal/core/domain/model/knowledge"
	"courierbot/internal/pkg/errs"
)

// GormKnowledgeRepository implements KnowledgeRepository using GORM.
//
// Ranking happens in the domain layer over the full entry set. The knowledge
// base is a few hundred rows of operational procedures, so one SELECT per
// search is cheaper than keeping a second scoring implementation in SQL.
type GormKnowledgeRepository struct {
	db *gorm.DB
}

// NewGormKnowledgeRepository creates a new GORM knowledge repository.
func NewGormKnowledgeRepository(db *gorm.DB) *GormKnowledgeRepository {
	return &GormKnowledgeRepository{db: db}
}

// Add saves a new knowledge entry to the database.
func (r *GormKnowledgeRepository) Add(ctx context.Context, entry *knowledge.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Search retrieves up to limit entries ranked by overlap with the query,
// best match first.
func (r *GormKnowledgeRepository) Search(ctx context.Context, query string, limit int) ([]*knowledge.Entry, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errs.NewValueIsRequiredError("query")
	}
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]*knowledge.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return knowledge.Rank(entries, query, limit), nil
}

// Categories lists the distinct entry categories in alphabetical order.
func (r *GormKnowledgeRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&EntryDTO{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}
