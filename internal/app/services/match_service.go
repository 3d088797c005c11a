package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/pkg/ai"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
	"github.com/yigit/scholarmatch/internal/pkg/events"
	"github.com/yigit/scholarmatch/internal/pkg/logger"
)

// MatchesGeneratedRoutingKey is the routing key of the event published after
// a new batch of matches is stored.
const MatchesGeneratedRoutingKey = "matches.generated"

// MatchesGeneratedEvent is the payload of a matches.generated event.
type MatchesGeneratedEvent struct {
	ProfileID   int64     `json:"profileId"`
	MatchIDs    []int64   `json:"matchIds"`
	Count       int       `json:"count"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// MatchService defines the interface for match operations
type MatchService interface {
	ListMatches(ctx context.Context, profileID int64) ([]*models.ScholarshipMatch, error)
	GenerateMatches(ctx context.Context, profile *models.StudentProfile) ([]*models.ScholarshipMatch, error)
}

type matchServiceImpl struct {
	store     MatchStore
	completer ai.Completer
	publisher events.Publisher
}

// NewMatchService creates a new match service instance. A nil publisher
// disables events.
func NewMatchService(store MatchStore, completer ai.Completer, publisher events.Publisher) MatchService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &matchServiceImpl{
		store:     store,
		completer: completer,
		publisher: publisher,
	}
}

// ListMatches returns the stored matches of a profile in insertion order.
// An unknown profile has no matches.
func (s *matchServiceImpl) ListMatches(ctx context.Context, profileID int64) ([]*models.ScholarshipMatch, error) {
	if profileID <= 0 {
		return []*models.ScholarshipMatch{}, nil
	}
	matches, err := s.store.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("error listing matches: %w", err)
	}
	if matches == nil {
		matches = []*models.ScholarshipMatch{}
	}
	return matches, nil
}

// GenerateMatches returns the existing matches of profile, or asks the model
// for new ones, normalizes and stores them. A profile never ends up with two
// batches: the store re-checks for existing rows under a lock before inserting.
func (s *matchServiceImpl) GenerateMatches(ctx context.Context, profile *models.StudentProfile) ([]*models.ScholarshipMatch, error) {
	log := logger.FromContext(ctx).With().Int64("profileID", profile.ID).Logger()

	existing, err := s.store.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, apperrors.NewGenerationError(fmt.Errorf("error checking existing matches: %w", err))
	}
	if len(existing) > 0 {
		log.Debug().Int("count", len(existing)).Msg("Matches already generated")
		return existing, nil
	}

	start := time.Now()
	reply, err := s.completer.CompleteJSON(ctx, BuildMatchPrompt(profile))
	if err != nil {
		log.Error().Err(err).Msg("Match completion failed")
		return nil, apperrors.NewGenerationError(err)
	}

	items, err := ParseMatchReply(reply)
	if err != nil {
		log.Error().Err(err).Msg("Match reply could not be parsed")
		return nil, apperrors.NewGenerationError(err)
	}

	stored, created, err := s.store.CreateBatchIfAbsent(ctx, profile.ID, NormalizeMatches(items, profile.ID))
	if err != nil {
		log.Error().Err(err).Msg("Storing matches failed")
		return nil, apperrors.NewGenerationError(err)
	}
	if stored == nil {
		stored = []*models.ScholarshipMatch{}
	}

	if len(stored) == 0 {
		log.Warn().Msg("Model returned no matches")
		return stored, nil
	}
	if !created {
		log.Info().Int("count", len(stored)).Msg("Concurrent generation already stored matches")
		return stored, nil
	}

	log.Info().
		Int("count", len(stored)).
		Dur("elapsed", time.Since(start)).
		Msg("Matches generated")

	s.publishGenerated(ctx, profile.ID, stored)
	return stored, nil
}

func (s *matchServiceImpl) publishGenerated(ctx context.Context, profileID int64, matches []*models.ScholarshipMatch) {
	ids := make([]int64, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	event := MatchesGeneratedEvent{
		ProfileID:   profileID,
		MatchIDs:    ids,
		Count:       len(matches),
		GeneratedAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, MatchesGeneratedRoutingKey, event); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Int64("profileID", profileID).Msg("Publishing matches.generated failed")
	}
}
