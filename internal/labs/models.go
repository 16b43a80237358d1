package labs

import (
	"time"

	"github.com/google/uuid"
)

// UsageLog records one lab room session. CheckIn is assigned by the
// database, never the client clock. CheckOut and Duration are written
// together, exactly once, at check-out; a nil CheckOut means the session is
// open. At most one log per professor may be open at any time — enforced by
// a partial unique index plus the check-in transaction in store.go.
type UsageLog struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ProfessorID   string     `gorm:"not null;index" json:"professor_id"`
	ProfessorName string     `gorm:"not null" json:"professor_name"`
	RoomNumber    string     `gorm:"not null" json:"room_number"`
	CheckIn       time.Time  `gorm:"not null;default:now()" json:"check_in"`
	CheckOut      *time.Time `json:"check_out,omitempty"`
	Duration      *int       `json:"duration,omitempty"` // whole minutes
}

// Room is the registry behind the QR placards on lab doors. RoomNumber on a
// UsageLog is free text and carries no foreign key to this table; the
// registry only feeds the manual-entry dropdown and the seed tool.
type Room struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name     string    `gorm:"uniqueIndex;not null" json:"name"`
	Building string    `json:"building"`
	QRCode   string    `json:"qr_code,omitempty"`
}

func (UsageLog) TableName() string { return "labs.usage_logs" }
func (Room) TableName() string     { return "labs.rooms" }
