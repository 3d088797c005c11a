package web

import (
	"math"

	"github.com/yigit/scholarmatch/internal/app/models"
)

// Choices offered by the eligibility form.
var (
	States      = []Option{{"Maharashtra", "Maharashtra"}, {"Karnataka", "Karnataka"}, {"Delhi", "Delhi"}, {"Tamil Nadu", "Tamil Nadu"}, {"Other", "Other State"}}
	Courses     = []Option{{"B.Tech", "B.Tech / B.E."}, {"B.Sc", "B.Sc / Science"}, {"BA", "B.A. / Arts"}, {"Medical", "MBBS / Medical"}, {"Postgraduate", "Postgraduate"}}
	Years       = []Option{{"1st Year", "1st Year"}, {"2nd Year", "2nd Year"}, {"3rd Year", "3rd Year"}, {"4th Year", "4th Year"}}
	Categories  = []Option{{"General", "General"}, {"OBC", "OBC"}, {"SC", "SC"}, {"ST", "ST"}, {"EWS", "EWS"}}
	Genders     = []Option{{"Male", "Male"}, {"Female", "Female"}, {"Other", "Other"}}
	RegionTypes = []Option{{"Urban", "Urban"}, {"Rural", "Rural"}}
)

// Option is one entry of a select or radio group.
type Option struct {
	Value string
	Label string
}

// Filters are the toggles of the results page.
type Filters struct {
	GovernmentOnly bool
	HighMatchOnly  bool
}

// Active reports whether any filter is on.
func (f Filters) Active() bool {
	return f.GovernmentOnly || f.HighMatchOnly
}

// FilterMatches applies f, keeping the original order.
func FilterMatches(matches []*models.ScholarshipMatch, f Filters) []*models.ScholarshipMatch {
	out := make([]*models.ScholarshipMatch, 0, len(matches))
	for _, m := range matches {
		if f.GovernmentOnly && !m.IsGovernment() {
			continue
		}
		if f.HighMatchOnly && m.MatchConfidence < models.HighConfidenceThreshold {
			continue
		}
		out = append(out, m)
	}
	return out
}

// AverageMissedScore is the rounded mean missedOpportunitiesScore, 0 when
// there are no matches.
func AverageMissedScore(matches []*models.ScholarshipMatch) int {
	if len(matches) == 0 {
		return 0
	}
	total := 0
	for _, m := range matches {
		total += m.MissedOpportunitiesScore
	}
	return int(math.Round(float64(total) / float64(len(matches))))
}

// TopMatchThreshold marks a card with the highlight banner.
const TopMatchThreshold = 90

// Confidence ring geometry for a 56px ring with a 5px stroke.
const (
	ringSize   = 56.0
	ringStroke = 5.0
	ringRadius = (ringSize - ringStroke) / 2
)

// RingCircumference is the stroke-dasharray of the confidence ring.
var RingCircumference = 2 * math.Pi * ringRadius

// RingOffset is the stroke-dashoffset that fills score percent of the ring.
func RingOffset(score int) float64 {
	return RingCircumference - float64(score)/100*RingCircumference
}

// RingTone picks the ring color class for score.
func RingTone(score int) string {
	switch {
	case score >= TopMatchThreshold:
		return "tone-excellent"
	case score >= 70:
		return "tone-good"
	case score >= 50:
		return "tone-fair"
	default:
		return "tone-low"
	}
}
