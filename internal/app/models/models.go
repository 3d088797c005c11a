package models

// GovernmentType classifies the body offering a scholarship.
type GovernmentType string

const (
	GovernmentTypeGovernment GovernmentType = "Government"
	GovernmentTypePrivate    GovernmentType = "Private"
)

// Score bounds shared by matchConfidence and missedOpportunitiesScore.
const (
	MinScore = 0
	MaxScore = 100
)

// HighConfidenceThreshold is the cut-off used by the "High Match" filter.
const HighConfidenceThreshold = 80
