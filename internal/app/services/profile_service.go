package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/app/models/dto"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
	"github.com/yigit/scholarmatch/internal/pkg/logger"
	"github.com/yigit/scholarmatch/internal/pkg/validation"
)

// ProfileService defines the interface for profile operations
type ProfileService interface {
	CreateProfile(ctx context.Context, req *dto.CreateProfileRequest) (*models.StudentProfile, error)
	GetProfile(ctx context.Context, id int64) (*models.StudentProfile, error)
}

// ProfileServiceOption customizes a profile service
type ProfileServiceOption func(*profileServiceImpl)

// WithProfileCache caches profiles read by id for ttl. Profiles are immutable,
// so entries never need invalidation.
func WithProfileCache(cache JSONCache, ttl time.Duration) ProfileServiceOption {
	return func(s *profileServiceImpl) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

type profileServiceImpl struct {
	store     ProfileStore
	validator *validation.Validator
	cache     JSONCache
	cacheTTL  time.Duration
}

// NewProfileService creates a new profile service instance
func NewProfileService(store ProfileStore, opts ...ProfileServiceOption) ProfileService {
	s := &profileServiceImpl{
		store:     store,
		validator: validation.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func profileCacheKey(id int64) string {
	return "profile:" + strconv.FormatInt(id, 10)
}

// CreateProfile validates req and stores it. Nothing is written when
// validation fails.
func (s *profileServiceImpl) CreateProfile(ctx context.Context, req *dto.CreateProfileRequest) (*models.StudentProfile, error) {
	if req == nil {
		return nil, apperrors.NewValidationError("", "request body is required")
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	profile, err := s.store.Create(ctx, req.ToModel())
	if err != nil {
		return nil, fmt.Errorf("error creating profile: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("profileID", profile.ID).Msg("Profile created")
	s.storeInCache(ctx, profile)
	return profile, nil
}

// GetProfile retrieves a profile by ID
func (s *profileServiceImpl) GetProfile(ctx context.Context, id int64) (*models.StudentProfile, error) {
	if id <= 0 {
		return nil, apperrors.ErrProfileNotFound
	}

	if s.cache != nil {
		var cached models.StudentProfile
		found, err := s.cache.GetJSON(ctx, profileCacheKey(id), &cached)
		if err != nil {
			logger.FromContext(ctx).Warn().Err(err).Int64("profileID", id).Msg("Profile cache read failed")
		} else if found {
			return &cached, nil
		}
	}

	profile, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	s.storeInCache(ctx, profile)
	return profile, nil
}

func (s *profileServiceImpl) storeInCache(ctx context.Context, profile *models.StudentProfile) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, profileCacheKey(profile.ID), profile, s.cacheTTL); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Int64("profileID", profile.ID).Msg("Profile cache write failed")
	}
}
