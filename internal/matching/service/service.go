package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks FamilyLister ProfileLookup

import (
	"context"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	familymodels "legatia/internal/family/models"
	identitymodels "legatia/internal/identity/models"
	"legatia/internal/matching/models"
	"legatia/internal/platform/tracing"
	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/requestcontext"
)

// DefaultThreshold is the minimum score of a returned match.
const DefaultThreshold = 75

type FamilyLister interface {
	ListVisible(ctx context.Context) ([]*familymodels.Family, error)
}

type ProfileLookup interface {
	Lookup(ctx context.Context, userID id.UserID) (*identitymodels.Profile, error)
}

// Service finds ghost members that may describe a user. It only reads.
type Service struct {
	families  FamilyLister
	profiles  ProfileLookup
	scorer    Scorer
	threshold int
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithScorer(scorer Scorer) Option {
	return func(s *Service) {
		s.scorer = scorer
	}
}

func WithThreshold(threshold int) Option {
	return func(s *Service) {
		if threshold >= 0 && threshold <= 100 {
			s.threshold = threshold
		}
	}
}

func New(families FamilyLister, profiles ProfileLookup, opts ...Option) *Service {
	s := &Service{
		families:  families,
		profiles:  profiles,
		scorer:    WeightedScorer{},
		threshold: DefaultThreshold,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindMatches scores every ghost of every visible family the user neither
// administers nor belongs to, and returns those at or above the threshold.
func (s *Service) FindMatches(ctx context.Context, userID id.UserID) (_ []models.Match, err error) {
	ctx, span := tracing.Start(ctx, "matching.FindMatches")
	defer func() { tracing.End(span, err) }()

	profile, err := s.profiles.Lookup(ctx, userID)
	if err != nil {
		return nil, err
	}
	families, err := s.families.ListVisible(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list families")
	}

	matches := []models.Match{}
	scanned := 0
	for _, f := range families {
		if !f.IsVisible || f.IsAdmin(userID) || f.HasLinked(userID) {
			continue
		}
		for i := range f.Members {
			m := &f.Members[i]
			if !m.IsGhost() {
				continue
			}
			scanned++
			score := s.scorer.Score(profile, m)
			if score < s.threshold {
				continue
			}
			matches = append(matches, models.NewMatch(f.ID, f.Name, f.CreatedAt, m.ID, i, m.DisplayName(), score))
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return models.Less(matches[i], matches[j]) })

	span.SetAttributes(
		attribute.Int("ghosts_scanned", scanned),
		attribute.Int("matches", len(matches)),
	)
	s.logger.DebugContext(ctx, "ghost matches computed",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID,
		"scanned", scanned,
		"matches", len(matches),
	)
	return matches, nil
}
