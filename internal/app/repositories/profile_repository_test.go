package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
)

func TestProfileRepository_Create(t *testing.T) {
	createdAt := time.Date(2025, 4, 23, 12, 0, 0, 0, time.UTC)
	conn := &fakeConn{
		onQueryRow: func(sql string, args []any) pgx.Row {
			return fakeRow{values: []any{int64(42), &createdAt}}
		},
	}
	repo := &ProfileRepository{db: conn, sb: psql}
	in := &models.StudentProfile{State: " Delhi ", AnnualIncome: "1", Course: "BA", YearOfStudy: "1st Year", Category: strPtr(""), RuralUrban: "Urban"}

	got, err := repo.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, createdAt, got.CreatedAt)
	assert.Equal(t, " Delhi ", got.State)
	require.NotNil(t, got.Category)
	assert.Equal(t, "", *got.Category)
	assert.Zero(t, in.ID, "input is not mutated")

	stmts := conn.executed()
	require.Len(t, stmts, 1)
	assert.Equal(t, " Delhi ", stmts[0].args[0])
}

func TestProfileRepository_GetByID(t *testing.T) {
	createdAt := time.Date(2025, 4, 23, 12, 0, 0, 0, time.UTC)
	conn := &fakeConn{
		onQueryRow: func(sql string, args []any) pgx.Row {
			return fakeRow{values: []any{
				int64(5), "Karnataka", "< ₹2.5 Lakh", "B.Tech", "2nd Year",
				strPtr("OBC"), nil, true, "Rural", &createdAt,
			}}
		},
	}
	repo := &ProfileRepository{db: conn, sb: psql}

	p, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, int64(5), p.ID)
	assert.Equal(t, "Karnataka", p.State)
	require.NotNil(t, p.Category)
	assert.Equal(t, "OBC", *p.Category)
	assert.Nil(t, p.Gender)
	assert.True(t, p.DisabilityStatus)
	assert.Equal(t, createdAt, p.CreatedAt)
}

func TestProfileRepository_GetByIDErrors(t *testing.T) {
	repo := &ProfileRepository{db: &fakeConn{
		onQueryRow: func(string, []any) pgx.Row { return fakeRow{err: pgx.ErrNoRows} },
	}, sb: psql}
	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)

	repo = &ProfileRepository{db: &fakeConn{
		onQueryRow: func(string, []any) pgx.Row { return fakeRow{err: errors.New("conn reset")} },
	}, sb: psql}
	_, err = repo.GetByID(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrResourceNotFound)
}
