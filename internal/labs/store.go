package labs

import (
	"context"
	"errors"

	"github.com/LabTrack/LT-Backend/internal/auth"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfessorInfo is the slice of a profile the lifecycle needs: the name
// snapshot for new logs and the status for the blocked gate.
type ProfessorInfo struct {
	DisplayName string
	Status      string
}

// Store is the narrow persistence contract the session lifecycle runs on.
// The production implementation is GormStore; tests use an in-memory fake.
type Store interface {
	Professor(ctx context.Context, professorID string) (ProfessorInfo, error)
	ActiveSession(ctx context.Context, professorID string) (*UsageLog, error)
	// CreateActive inserts an open log, failing with ErrSessionAlreadyActive
	// if the professor already has one. The check and the insert must be
	// atomic — this is where the duplicate check-in race is closed.
	CreateActive(ctx context.Context, log *UsageLog) error
	Log(ctx context.Context, id string) (*UsageLog, error)
	// Close stamps check_out from the store's own clock, the same clock
	// that assigned check_in, and writes duration = round(minutes open)
	// in the same update, failing with ErrAlreadyClosed if the log is no
	// longer open. A single clock for both ends keeps durations exact
	// under host clock skew.
	Close(ctx context.Context, id string) (*UsageLog, error)
	LogsByProfessor(ctx context.Context, professorID string) ([]UsageLog, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Professor(ctx context.Context, professorID string) (ProfessorInfo, error) {
	var prof auth.Professor
	err := s.db.WithContext(ctx).First(&prof, "user_id = ?", professorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ProfessorInfo{}, ErrNotFound
	}
	if err != nil {
		return ProfessorInfo{}, err
	}
	return ProfessorInfo{DisplayName: prof.DisplayName, Status: prof.Status}, nil
}

func (s *GormStore) ActiveSession(ctx context.Context, professorID string) (*UsageLog, error) {
	var log UsageLog
	err := s.db.WithContext(ctx).
		Where("professor_id = ? AND check_out IS NULL", professorID).
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *GormStore) CreateActive(ctx context.Context, log *UsageLog) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the professor row so concurrent check-ins from the same
		// professor serialize here instead of both passing the guard.
		var prof auth.Professor
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&prof, "user_id = ?", log.ProfessorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var open int64
		if err := tx.Model(&UsageLog{}).
			Where("professor_id = ? AND check_out IS NULL", log.ProfessorID).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrSessionAlreadyActive
		}

		// CheckIn stays zero so the database default now() assigns it;
		// the driver returns the resolved row via RETURNING.
		return tx.Create(log).Error
	})
}

func (s *GormStore) Log(ctx context.Context, id string) (*UsageLog, error) {
	var log UsageLog
	err := s.db.WithContext(ctx).First(&log, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *GormStore) Close(ctx context.Context, id string) (*UsageLog, error) {
	res := s.db.WithContext(ctx).Model(&UsageLog{}).
		Where("id = ? AND check_out IS NULL", id).
		Updates(map[string]interface{}{
			"check_out": gorm.Expr("now()"),
			"duration":  gorm.Expr("ROUND(EXTRACT(EPOCH FROM (now() - check_in)) / 60)::int"),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the log vanished or someone closed it first.
		log, err := s.Log(ctx, id)
		if err != nil {
			return nil, err
		}
		return log, ErrAlreadyClosed
	}
	return s.Log(ctx, id)
}

func (s *GormStore) LogsByProfessor(ctx context.Context, professorID string) ([]UsageLog, error) {
	var logs []UsageLog
	err := s.db.WithContext(ctx).
		Where("professor_id = ?", professorID).
		Order("check_in DESC").
		Find(&logs).Error
	return logs, err
}
