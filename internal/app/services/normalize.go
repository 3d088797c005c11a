package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/pkg/ai"
)

// Defaults applied to fields the model omitted or got wrong.
const (
	DefaultMatchName           = "Unknown Scholarship"
	DefaultBenefitAmount       = "Varies"
	DefaultDeadline            = "TBD"
	DefaultMatchConfidence     = 80
	DefaultExplainability      = "Good match based on profile."
	DefaultMissedOpportunities = 0
)

// ErrMalformedReply is returned when the model reply is not a JSON object
// carrying a "matches" array.
var ErrMalformedReply = errors.New("malformed match reply")

// ParseMatchReply extracts the raw "matches" array from a model reply.
func ParseMatchReply(reply string) ([]interface{}, error) {
	var envelope map[string]interface{}
	if err := json.Unmarshal([]byte(ai.CleanJSON(reply)), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if envelope == nil {
		return nil, fmt.Errorf("%w: reply is not an object", ErrMalformedReply)
	}

	raw, ok := envelope["matches"]
	if !ok {
		return nil, fmt.Errorf("%w: missing matches key", ErrMalformedReply)
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: matches is not an array", ErrMalformedReply)
	}
	return items, nil
}

// NormalizeMatch coerces one raw element of the reply into a complete match
// for profileID. It never fails; missing or ill-typed fields get defaults.
func NormalizeMatch(raw interface{}, profileID int64) *models.ScholarshipMatch {
	obj, _ := raw.(map[string]interface{})

	return &models.ScholarshipMatch{
		ProfileID:                profileID,
		Name:                     stringOr(obj["name"], DefaultMatchName),
		GovernmentType:           normalizeGovernmentType(obj["governmentType"]),
		BenefitAmount:            stringOr(obj["benefitAmount"], DefaultBenefitAmount),
		Deadline:                 stringOr(obj["deadline"], DefaultDeadline),
		MatchConfidence:          scoreOr(obj["matchConfidence"], DefaultMatchConfidence),
		Explainability:           stringOr(obj["explainability"], DefaultExplainability),
		RequiredDocuments:        stringList(obj["requiredDocuments"]),
		MissedOpportunitiesScore: scoreOr(obj["missedOpportunitiesScore"], DefaultMissedOpportunities),
	}
}

// NormalizeMatches normalizes every element of items, preserving order.
func NormalizeMatches(items []interface{}, profileID int64) []*models.ScholarshipMatch {
	matches := make([]*models.ScholarshipMatch, 0, len(items))
	for _, item := range items {
		matches = append(matches, NormalizeMatch(item, profileID))
	}
	return matches
}

func stringOr(v interface{}, fallback string) string {
	switch val := v.(type) {
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return s
		}
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	return fallback
}

func normalizeGovernmentType(v interface{}) models.GovernmentType {
	s, _ := v.(string)
	if strings.EqualFold(strings.TrimSpace(s), string(models.GovernmentTypeGovernment)) {
		return models.GovernmentTypeGovernment
	}
	return models.GovernmentTypePrivate
}

func scoreOr(v interface{}, fallback int) int {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return fallback
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return fallback
		}
		f = parsed
	default:
		return fallback
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	f = math.Round(f)
	if f < models.MinScore {
		return models.MinScore
	}
	if f > models.MaxScore {
		return models.MaxScore
	}
	return int(f)
}

func stringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	docs := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				docs = append(docs, s)
			}
		}
	}
	return docs
}
