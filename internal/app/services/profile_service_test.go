package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/app/models/dto"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func validRequest() *dto.CreateProfileRequest {
	return &dto.CreateProfileRequest{
		State:            "Karnataka",
		AnnualIncome:     "< ₹2.5 Lakh",
		Course:           "B.Tech",
		YearOfStudy:      "2nd Year",
		Category:         strPtr("OBC"),
		Gender:           strPtr("Female"),
		DisabilityStatus: boolPtr(false),
		RuralUrban:       "Rural",
	}
}

func TestCreateProfile_StoresAndAssignsID(t *testing.T) {
	store := newMemoryProfileStore()
	svc := NewProfileService(store)

	first, err := svc.CreateProfile(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := svc.CreateProfile(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Positive(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "Karnataka", first.State)
	require.NotNil(t, first.Category)
	assert.Equal(t, "OBC", *first.Category)
	assert.False(t, first.DisabilityStatus)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestCreateProfile_OptionalFieldsDefault(t *testing.T) {
	svc := NewProfileService(newMemoryProfileStore())
	req := validRequest()
	req.Category = nil
	req.Gender = nil
	req.DisabilityStatus = nil

	p, err := svc.CreateProfile(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, p.Category)
	assert.Nil(t, p.Gender)
	assert.False(t, p.DisabilityStatus)
}

func TestCreateProfile_StoresValuesAsSubmitted(t *testing.T) {
	store := newMemoryProfileStore()
	svc := NewProfileService(store)
	req := validRequest()
	req.State = " Delhi "
	req.Category = strPtr("")
	req.Gender = strPtr("  ")

	p, err := svc.CreateProfile(context.Background(), req)
	require.NoError(t, err)

	stored, err := store.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	for _, got := range []*models.StudentProfile{p, stored} {
		assert.Equal(t, " Delhi ", got.State)
		require.NotNil(t, got.Category)
		assert.Equal(t, "", *got.Category)
		require.NotNil(t, got.Gender)
		assert.Equal(t, "  ", *got.Gender)
		assert.Equal(t, req.Course, got.Course)
		assert.Equal(t, req.RuralUrban, got.RuralUrban)
	}
}

func TestCreateProfile_MissingFieldIsRejected(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(r *dto.CreateProfileRequest)
		field string
	}{
		{"missing state", func(r *dto.CreateProfileRequest) { r.State = "" }, "state"},
		{"blank course", func(r *dto.CreateProfileRequest) { r.Course = "   " }, "course"},
		{"missing year", func(r *dto.CreateProfileRequest) { r.YearOfStudy = "" }, "yearOfStudy"},
		{"missing location", func(r *dto.CreateProfileRequest) { r.RuralUrban = "" }, "ruralUrban"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryProfileStore()
			svc := NewProfileService(store)
			req := validRequest()
			tt.edit(req)

			_, err := svc.CreateProfile(context.Background(), req)
			vErr, ok := apperrors.AsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Empty(t, store.profiles, "nothing stored on validation failure")
		})
	}
}

func TestCreateProfile_StoreFailure(t *testing.T) {
	store := newMemoryProfileStore()
	store.err = errors.New("connection refused")
	svc := NewProfileService(store)

	_, err := svc.CreateProfile(context.Background(), validRequest())
	require.Error(t, err)
	_, isValidation := apperrors.AsValidation(err)
	assert.False(t, isValidation)
}

func TestGetProfile(t *testing.T) {
	store := newMemoryProfileStore()
	svc := NewProfileService(store)

	created, err := svc.CreateProfile(context.Background(), validRequest())
	require.NoError(t, err)

	got, err := svc.GetProfile(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Course, got.Course)

	_, err = svc.GetProfile(context.Background(), 9999)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = svc.GetProfile(context.Background(), 0)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestGetProfile_UsesCache(t *testing.T) {
	store := newMemoryProfileStore()
	cache := newMemoryCache()
	svc := NewProfileService(store, WithProfileCache(cache, 10*time.Minute))

	created, err := svc.CreateProfile(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, cache.ttls["profile:1"])

	got, err := svc.GetProfile(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.State, got.State)
	assert.Zero(t, store.reads, "served from cache")
}

func TestGetProfile_CacheFailureFallsBackToStore(t *testing.T) {
	store := newMemoryProfileStore()
	cache := newMemoryCache()
	cache.getErr = errors.New("redis down")
	svc := NewProfileService(store, WithProfileCache(cache, time.Minute))

	created, err := svc.CreateProfile(context.Background(), validRequest())
	require.NoError(t, err)

	got, err := svc.GetProfile(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 1, store.reads)
}
