package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
	"github.com/yigit/scholarmatch/internal/pkg/logger"
)

const profilesTable = "student_profiles"

var profileColumns = []string{
	"id", "state", "annual_income", "course", "year_of_study",
	"category", "gender", "disability_status", "rural_urban", "created_at",
}

// ProfileRepository handles student profile database operations
type ProfileRepository struct {
	db queryer
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db, sb: psql}
}

func (r *ProfileRepository) buildCreateQuery(p *models.StudentProfile) (string, []interface{}, error) {
	return r.sb.Insert(profilesTable).
		Columns("state", "annual_income", "course", "year_of_study",
			"category", "gender", "disability_status", "rural_urban").
		Values(p.State, p.AnnualIncome, p.Course, p.YearOfStudy,
			p.Category, p.Gender, p.DisabilityStatus, p.RuralUrban).
		Suffix("RETURNING id, created_at").
		ToSql()
}

func (r *ProfileRepository) buildGetByIDQuery(id int64) (string, []interface{}, error) {
	return r.sb.Select(profileColumns...).
		From(profilesTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
}

// Create inserts the profile and returns a copy carrying the assigned id and
// creation timestamp.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.StudentProfile) (*models.StudentProfile, error) {
	sql, args, err := r.buildCreateQuery(profile)
	if err != nil {
		logger.Error().Err(err).Msg("Error building create profile SQL")
		return nil, fmt.Errorf("failed to build create profile query: %w", err)
	}

	created := *profile
	var createdAt *time.Time
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&created.ID, &createdAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create profile query")
		return nil, fmt.Errorf("error creating profile: %w", err)
	}
	if createdAt != nil {
		created.CreatedAt = *createdAt
	}

	return &created, nil
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*models.StudentProfile, error) {
	sql, args, err := r.buildGetByIDQuery(id)
	if err != nil {
		logger.Error().Err(err).Msg("Error building get profile by ID SQL")
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	profile := &models.StudentProfile{}
	var createdAt *time.Time
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&profile.ID,
		&profile.State,
		&profile.AnnualIncome,
		&profile.Course,
		&profile.YearOfStudy,
		&profile.Category,
		&profile.Gender,
		&profile.DisabilityStatus,
		&profile.RuralUrban,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		logger.Error().Err(err).Int64("profileID", id).Msg("Error scanning profile row")
		return nil, fmt.Errorf("error getting profile by ID: %w", err)
	}
	if createdAt != nil {
		profile.CreatedAt = *createdAt
	}

	return profile, nil
}
