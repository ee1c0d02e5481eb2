// Package knowledgerepo provides data transfer objects and mapping functions for
// knowledge entry persistence. This package implements the repository pattern for
// the knowledge domain, handling the conversion between domain entities and
// database representations.
package knowledgerepo

import (
	"time"

	"github.com/google/uuid"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/knowledge"
)

// EntryDTO represents the database structure for persisting knowledge entries.
// Keywords are serialized as JSON so ranking stays in one place instead of
// being split between SQL and domain code.
type EntryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Category  string    `gorm:"index"`
	Title     string
	Body      string
	Keywords  []string `gorm:"serializer:json"`
	UpdatedAt time.Time
}

// TableName specifies the database table name for knowledge entries.
func (EntryDTO) TableName() string {
	return "knowledge_entries"
}

// fromDomain converts a knowledge entry to its database representation.
func fromDomain(entry *knowledge.Entry) EntryDTO {
	return EntryDTO{
		ID:        entry.ID().Bytes(),
		Category:  entry.Category(),
		Title:     entry.Title(),
		Body:      entry.Body(),
		Keywords:  entry.Keywords(),
		UpdatedAt: entry.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a knowledge entry.
func toDomain(dto EntryDTO) (*knowledge.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return knowledge.NewEntry(id, dto.Category, dto.Title, dto.Body, dto.Keywords, dto.UpdatedAt)
}
