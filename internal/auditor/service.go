package auditor

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	id "riskgate/pkg/domain"
	dErrors "riskgate/pkg/domain-errors"
	"riskgate/pkg/platform/sentinel"
	"riskgate/pkg/requestcontext"
)

// Service exposes directory reads and credential checks. It implements the
// workflow engine's AuditorDirectory port.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Authenticate verifies username and password, returning the auditor on
// success. Unknown user and wrong password are indistinguishable to callers.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Auditor, error) {
	if username == "" || password == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid username or password")
	}
	a, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid username or password")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up auditor")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid username or password")
	}
	return a, nil
}

// Get returns the auditor for an authenticated session.
func (s *Service) Get(ctx context.Context, auditorID id.AuditorID) (*Auditor, error) {
	a, err := s.store.FindByID(ctx, auditorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "auditor not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up auditor")
	}
	return a, nil
}

// FirstActiveByLevel selects the first active auditor qualified for level
// exactly. No seniority fallback: a senior case is never handed to an expert
// automatically. Returns nil when nobody qualifies.
//
// Reads here are best-effort staffing: they need not be linearizable with
// case mutation, so a just-deactivated auditor may briefly still be picked.
func (s *Service) FirstActiveByLevel(ctx context.Context, level id.AuditLevel) (*id.AuditorID, error) {
	a, err := s.store.FirstActiveByLevel(ctx, level)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to query auditor directory")
	}
	if a == nil {
		s.logger.WarnContext(ctx, "no active auditor for level",
			"level", level,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, nil
	}
	auditorID := a.ID
	return &auditorID, nil
}

// Register creates a directory entry, hashing the password.
func (s *Service) Register(ctx context.Context, username, password, name string, level id.AuditLevel, department string) (*Auditor, error) {
	if username == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "username is required")
	}
	if !level.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid audit level %q", level)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}
	a := &Auditor{
		ID:           id.NewAuditorID(),
		Username:     username,
		PasswordHash: string(hash),
		Name:         name,
		Level:        level,
		Department:   department,
		Status:       StatusActive,
		CreatedAt:    requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, a); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "username already taken")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create auditor")
	}
	return a, nil
}
