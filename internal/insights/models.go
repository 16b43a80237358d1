package insights

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Digest is one generated usage summary, kept so admins can revisit past
// digests without re-invoking the model.
type Digest struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Summary    string         `gorm:"not null" json:"summary"`
	Paragraphs pq.StringArray `gorm:"type:text[]" json:"paragraphs"`
	LogCount   int            `gorm:"not null" json:"log_count"`
	CreatedBy  string         `gorm:"not null" json:"created_by"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (Digest) TableName() string { return "insights.digests" }
