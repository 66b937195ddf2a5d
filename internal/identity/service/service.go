package service

import (
	"context"
	"errors"
	"log/slog"

	"legatia/internal/identity/models"
	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/platform/sentinel"
	"legatia/pkg/platform/validation"
	"legatia/pkg/requestcontext"
)

// SearchLimit caps the number of users returned by Search.
const SearchLimit = 20

type ProfileStore interface {
	Create(ctx context.Context, p *models.Profile) error
	FindByUserID(ctx context.Context, userID id.UserID) (*models.Profile, error)
	Update(ctx context.Context, p *models.Profile) error
	Search(ctx context.Context, query string, exclude id.UserID, limit int) ([]*models.Profile, error)
}

// Service manages the caller's own profile and the user search directory.
type Service struct {
	profiles ProfileStore
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(profiles ProfileStore, opts ...Option) *Service {
	s := &Service{profiles: profiles, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers the caller's profile. A user has at most one profile.
func (s *Service) Create(ctx context.Context, fields models.ProfileFields) (*models.Profile, error) {
	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	p, err := models.NewProfile(userID, fields, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.NewWithReason(dErrors.CodeConflict, dErrors.ReasonProfileExists, "profile already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create profile")
	}
	s.logger.InfoContext(ctx, "profile created",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID,
	)
	return p, nil
}

// Get returns the caller's profile.
func (s *Service) Get(ctx context.Context) (*models.Profile, error) {
	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	return s.Lookup(ctx, userID)
}

// Lookup returns any user's profile. It backs the workflow services, which
// snapshot profiles into claims and members.
func (s *Service) Lookup(ctx context.Context, userID id.UserID) (*models.Profile, error) {
	p, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.NewWithReason(dErrors.CodeNotFound, dErrors.ReasonNotFound, "profile not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
	}
	return p, nil
}

// Update applies a partial update to the caller's profile. Claim snapshots
// taken earlier are copies and keep their original values.
func (s *Service) Update(ctx context.Context, u models.ProfileUpdate) (*models.Profile, error) {
	p, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.ApplyUpdate(u, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.profiles.Update(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.NewWithReason(dErrors.CodeNotFound, dErrors.ReasonNotFound, "profile not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update profile")
	}
	return p, nil
}

// Search finds other users by id, full name or surname at birth.
func (s *Service) Search(ctx context.Context, query string) ([]models.UserMatch, error) {
	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	query, err = validation.SearchQuery(query)
	if err != nil {
		return nil, err
	}
	found, err := s.profiles.Search(ctx, query, userID, SearchLimit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to search users")
	}

	seen := make(map[id.UserID]struct{}, len(found))
	matches := make([]models.UserMatch, 0, len(found))
	for _, p := range found {
		if _, dup := seen[p.UserID]; dup || p.UserID == userID {
			continue
		}
		seen[p.UserID] = struct{}{}
		matches = append(matches, p.ToUserMatch())
		if len(matches) == SearchLimit {
			break
		}
	}
	return matches, nil
}
