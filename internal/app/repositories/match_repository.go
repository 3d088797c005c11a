package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/db"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
	"github.com/yigit/scholarmatch/internal/pkg/dberrors"
	"github.com/yigit/scholarmatch/internal/pkg/logger"
)

const matchesTable = "scholarship_matches"

var matchColumns = []string{
	"id", "profile_id", "name", "government_type", "benefit_amount", "deadline",
	"match_confidence", "explainability", "required_documents", "missed_opportunities_score",
}

// MatchRepository handles scholarship match database operations
type MatchRepository struct {
	db   queryer
	pool db.TxBeginner
	sb   squirrel.StatementBuilderType
}

// NewMatchRepository creates a new MatchRepository
func NewMatchRepository(pool *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: pool, pool: pool, sb: psql}
}

func (r *MatchRepository) buildListByProfileQuery(profileID int64) (string, []interface{}, error) {
	return r.sb.Select(matchColumns...).
		From(matchesTable).
		Where(squirrel.Eq{"profile_id": profileID}).
		OrderBy("id ASC").
		ToSql()
}

func (r *MatchRepository) buildInsertBatchQuery(matches []*models.ScholarshipMatch) (string, []interface{}, error) {
	q := r.sb.Insert(matchesTable).
		Columns(matchColumns[1:]...).
		Suffix("RETURNING " + strings.Join(matchColumns, ", "))

	for _, m := range matches {
		docs := m.RequiredDocuments
		if docs == nil {
			docs = []string{}
		}
		encoded, err := json.Marshal(docs)
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode required documents: %w", err)
		}
		q = q.Values(m.ProfileID, m.Name, string(m.GovernmentType), m.BenefitAmount, m.Deadline,
			m.MatchConfidence, m.Explainability, encoded, m.MissedOpportunitiesScore)
	}
	return q.ToSql()
}

// ListByProfile returns the matches of a profile ordered by id. The result is
// never nil.
func (r *MatchRepository) ListByProfile(ctx context.Context, profileID int64) ([]*models.ScholarshipMatch, error) {
	return r.listByProfile(ctx, r.db, profileID)
}

func (r *MatchRepository) listByProfile(ctx context.Context, q queryer, profileID int64) ([]*models.ScholarshipMatch, error) {
	sql, args, err := r.buildListByProfileQuery(profileID)
	if err != nil {
		logger.Error().Err(err).Msg("Error building list matches SQL")
		return nil, fmt.Errorf("failed to build list matches query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("profileID", profileID).Msg("Error executing list matches query")
		return nil, fmt.Errorf("error querying matches: %w", err)
	}
	return collectMatches(rows)
}

// CreateBatch inserts all matches in one statement and returns them with ids.
// An empty input is a no-op.
func (r *MatchRepository) CreateBatch(ctx context.Context, matches []*models.ScholarshipMatch) ([]*models.ScholarshipMatch, error) {
	if len(matches) == 0 {
		return []*models.ScholarshipMatch{}, nil
	}

	var created []*models.ScholarshipMatch
	err := db.WithTransaction(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		created, err = r.createBatch(ctx, tx, matches)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CreateBatchIfAbsent stores matches for profileID unless the profile already
// has matches, in which case the existing batch is returned and created is
// false. Callers for the same profile are serialized by an advisory lock.
func (r *MatchRepository) CreateBatchIfAbsent(ctx context.Context, profileID int64, matches []*models.ScholarshipMatch) (result []*models.ScholarshipMatch, created bool, err error) {
	err = db.WithTransaction(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", profileID); err != nil {
			return fmt.Errorf("error locking profile matches: %w", err)
		}

		existing, err := r.listByProfile(ctx, tx, profileID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			result = existing
			return nil
		}

		result, err = r.createBatch(ctx, tx, matches)
		if err != nil {
			return err
		}
		created = len(result) > 0
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, created, nil
}

// createBatch is the shared insert of CreateBatch and CreateBatchIfAbsent.
// A batch pointing at a missing profile maps to ErrProfileNotFound.
func (r *MatchRepository) createBatch(ctx context.Context, q queryer, matches []*models.ScholarshipMatch) ([]*models.ScholarshipMatch, error) {
	if len(matches) == 0 {
		return []*models.ScholarshipMatch{}, nil
	}

	sql, args, err := r.buildInsertBatchQuery(matches)
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert matches SQL")
		return nil, fmt.Errorf("failed to build insert matches query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err == nil {
		var created []*models.ScholarshipMatch
		created, err = collectMatches(rows)
		if err == nil {
			return created, nil
		}
	}

	if dberrors.IsForeignKeyViolation(err) {
		return nil, apperrors.ErrProfileNotFound
	}
	logger.Error().Err(err).Int("count", len(matches)).Msg("Error executing insert matches query")
	return nil, fmt.Errorf("error inserting matches: %w", err)
}

func collectMatches(rows pgx.Rows) ([]*models.ScholarshipMatch, error) {
	defer rows.Close()

	matches := []*models.ScholarshipMatch{}
	for rows.Next() {
		m := &models.ScholarshipMatch{}
		var governmentType string
		var documents []byte
		if err := rows.Scan(
			&m.ID,
			&m.ProfileID,
			&m.Name,
			&governmentType,
			&m.BenefitAmount,
			&m.Deadline,
			&m.MatchConfidence,
			&m.Explainability,
			&documents,
			&m.MissedOpportunitiesScore,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning match row")
			return nil, fmt.Errorf("error scanning match row: %w", err)
		}
		m.GovernmentType = models.GovernmentType(governmentType)
		m.RequiredDocuments = []string{}
		if len(documents) > 0 {
			if err := json.Unmarshal(documents, &m.RequiredDocuments); err != nil {
				return nil, fmt.Errorf("error decoding required documents of match %d: %w", m.ID, err)
			}
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating match rows")
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}
	return matches, nil
}
