package labs

import (
	"context"
	"errors"
	"strings"

	"github.com/LabTrack/LT-Backend/internal/auth"
)

// Service owns the check-in/check-out lifecycle and its one invariant: at
// most one open session per professor, at any time.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// CheckIn opens a session for a professor in a room. The blocked gate runs
// first and never writes; a duplicate check-in returns the existing open
// session together with ErrSessionAlreadyActive.
func (s *Service) CheckIn(ctx context.Context, professorID, professorName, roomNumber string) (*UsageLog, error) {
	room := strings.TrimSpace(roomNumber)
	if room == "" {
		return nil, ErrInvalidInput
	}

	prof, err := s.store.Professor(ctx, professorID)
	if err != nil {
		return nil, err
	}
	if prof.Status == auth.StatusBlocked {
		return nil, ErrAccessDenied
	}

	if existing, err := s.store.ActiveSession(ctx, professorID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, ErrSessionAlreadyActive
	}

	if professorName == "" {
		professorName = prof.DisplayName
	}

	log := &UsageLog{
		ProfessorID:   professorID,
		ProfessorName: professorName,
		RoomNumber:    room,
	}
	if err := s.store.CreateActive(ctx, log); err != nil {
		if errors.Is(err, ErrSessionAlreadyActive) {
			// Lost the race to another tab: surface the session that won.
			if existing, lookupErr := s.store.ActiveSession(ctx, professorID); lookupErr == nil && existing != nil {
				return existing, ErrSessionAlreadyActive
			}
		}
		return nil, err
	}
	return log, nil
}

// CheckOut closes one of the professor's own sessions; a log belonging to
// someone else is reported as ErrNotFound rather than revealed. The store
// stamps check-out and duration (whole minutes, rounded to nearest) from the
// clock that assigned check-in. Closing an already-closed log is rejected
// with ErrAlreadyClosed; the closed state is returned so callers can show it.
func (s *Service) CheckOut(ctx context.Context, professorID, logID string) (*UsageLog, error) {
	log, err := s.store.Log(ctx, logID)
	if err != nil {
		return nil, err
	}
	if log.ProfessorID != professorID {
		return nil, ErrNotFound
	}
	if log.CheckOut != nil {
		return log, ErrAlreadyClosed
	}

	return s.store.Close(ctx, logID)
}

// ActiveSession returns the professor's open session, or nil.
func (s *Service) ActiveSession(ctx context.Context, professorID string) (*UsageLog, error) {
	return s.store.ActiveSession(ctx, professorID)
}

// History returns the professor's sessions, newest first.
func (s *Service) History(ctx context.Context, professorID string) ([]UsageLog, error) {
	return s.store.LogsByProfessor(ctx, professorID)
}
