package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/scholarmatch/internal/app/controllers"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/app/models/dto"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
	"github.com/yigit/scholarmatch/internal/web"
)

type noProfiles struct{}

func (noProfiles) CreateProfile(context.Context, *dto.CreateProfileRequest) (*models.StudentProfile, error) {
	return nil, apperrors.NewValidationError("state", "state is required")
}

func (noProfiles) GetProfile(context.Context, int64) (*models.StudentProfile, error) {
	return nil, apperrors.ErrProfileNotFound
}

type noMatches struct{}

func (noMatches) ListMatches(context.Context, int64) ([]*models.ScholarshipMatch, error) {
	return []*models.ScholarshipMatch{}, nil
}

func (noMatches) GenerateMatches(context.Context, *models.StudentProfile) ([]*models.ScholarshipMatch, error) {
	return []*models.ScholarshipMatch{}, nil
}

type upDB struct{}

func (upDB) Ping(context.Context) error { return nil }

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	tmpl, err := web.Templates()
	require.NoError(t, err)
	r.SetHTMLTemplate(tmpl)

	SetupRouter(r,
		controllers.NewProfileController(noProfiles{}, noMatches{}),
		controllers.NewWebController(noProfiles{}, noMatches{}),
		controllers.NewHealthController(upDB{}),
	)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestSetupRouter_RegisteredRoutes(t *testing.T) {
	r := newRouter(t)

	assert.Equal(t, http.StatusOK, get(r, "/ping").Code)
	assert.Equal(t, http.StatusOK, get(r, "/healthz").Code)
	assert.Equal(t, http.StatusOK, get(r, "/").Code)
	assert.Equal(t, http.StatusOK, get(r, "/how-it-works").Code)
	assert.Equal(t, http.StatusOK, get(r, "/eligibility").Code)

	w := get(r, "/api/profiles/1/matches")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, get(r, "/api/profiles/1").Code)
}

func TestSetupRouter_UnknownAPIPathIsJSON(t *testing.T) {
	r := newRouter(t)

	for _, path := range []string{"/api/unknown", "/api/profiles/1/nothing-here"} {
		w := get(r, path)
		require.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json", path)

		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), path)
		assert.Equal(t, "Route not found", body.Message)
		assert.Equal(t, dto.ErrorCodeResourceNotFound, body.Code)
	}
}

func TestSetupRouter_UnknownPageIsHTML(t *testing.T) {
	r := newRouter(t)

	for _, path := range []string{"/nowhere", "/apiary", "/static-page/x"} {
		w := get(r, path)
		require.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html", path)
		assert.Contains(t, w.Body.String(), "Page Not Found", path)
	}
}
