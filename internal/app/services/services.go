package services

import (
	"context"
	"time"

	"github.com/yigit/scholarmatch/internal/app/models"
)

// Services defined in this package:
// - ProfileService: validates and stores eligibility profiles
// - MatchService: lists matches and generates them through the AI completer

// ProfileStore persists student profiles. Implemented by repositories.ProfileRepository.
type ProfileStore interface {
	Create(ctx context.Context, profile *models.StudentProfile) (*models.StudentProfile, error)
	GetByID(ctx context.Context, id int64) (*models.StudentProfile, error)
}

// MatchStore persists scholarship matches. Implemented by repositories.MatchRepository.
type MatchStore interface {
	ListByProfile(ctx context.Context, profileID int64) ([]*models.ScholarshipMatch, error)
	CreateBatchIfAbsent(ctx context.Context, profileID int64, matches []*models.ScholarshipMatch) ([]*models.ScholarshipMatch, bool, error)
}

// JSONCache is a key/value cache of JSON documents. Implemented by cache.RedisCache.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}
