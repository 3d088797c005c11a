package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/scholarmatch/internal/app/models"
)

func sampleMatches() []*models.ScholarshipMatch {
	return []*models.ScholarshipMatch{
		{ID: 1, Name: "A", GovernmentType: models.GovernmentTypeGovernment, MatchConfidence: 95, MissedOpportunitiesScore: 10},
		{ID: 2, Name: "B", GovernmentType: models.GovernmentTypePrivate, MatchConfidence: 85, MissedOpportunitiesScore: 25},
		{ID: 3, Name: "C", GovernmentType: models.GovernmentTypeGovernment, MatchConfidence: 60, MissedOpportunitiesScore: 0},
	}
}

func names(ms []*models.ScholarshipMatch) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Name)
	}
	return out
}

func TestFilterMatches(t *testing.T) {
	ms := sampleMatches()

	assert.Equal(t, []string{"A", "B", "C"}, names(FilterMatches(ms, Filters{})))
	assert.Equal(t, []string{"A", "C"}, names(FilterMatches(ms, Filters{GovernmentOnly: true})))
	assert.Equal(t, []string{"A", "B"}, names(FilterMatches(ms, Filters{HighMatchOnly: true})))
	assert.Equal(t, []string{"A"}, names(FilterMatches(ms, Filters{GovernmentOnly: true, HighMatchOnly: true})))
}

func TestAverageMissedScore(t *testing.T) {
	assert.Equal(t, 12, AverageMissedScore(sampleMatches()))
	assert.Equal(t, 0, AverageMissedScore(nil))
}

func TestRing(t *testing.T) {
	assert.InDelta(t, RingCircumference, RingOffset(0), 1e-9)
	assert.InDelta(t, 0, RingOffset(100), 1e-9)
	assert.InDelta(t, RingCircumference/2, RingOffset(50), 1e-9)

	assert.Equal(t, "tone-excellent", RingTone(90))
	assert.Equal(t, "tone-good", RingTone(75))
	assert.Equal(t, "tone-fair", RingTone(50))
	assert.Equal(t, "tone-low", RingTone(10))
}

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, page := range []string{"home.html", "how_it_works.html", "eligibility.html", "results.html", "message.html"} {
		assert.NotNil(t, tmpl.Lookup(page), page)
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "home.html", Page{Title: "Home", Active: "home"}))
	assert.Contains(t, buf.String(), "/eligibility")
}

func TestStatic(t *testing.T) {
	f, err := Static().Open("app.css")
	require.NoError(t, err)
	require.NoError(t, f.Close())
}
