package models

// ScholarshipMatch is one AI-generated recommendation for a profile.
type ScholarshipMatch struct {
	ID                       int64          `json:"id"`
	ProfileID                int64          `json:"profileId"`
	Name                     string         `json:"name"`
	GovernmentType           GovernmentType `json:"governmentType"`
	BenefitAmount            string         `json:"benefitAmount"`
	Deadline                 string         `json:"deadline"`
	MatchConfidence          int            `json:"matchConfidence"`
	Explainability           string         `json:"explainability"`
	RequiredDocuments        []string       `json:"requiredDocuments"`
	MissedOpportunitiesScore int            `json:"missedOpportunitiesScore"`
}

// IsGovernment reports whether the scholarship is government funded.
func (m *ScholarshipMatch) IsGovernment() bool {
	return m.GovernmentType == GovernmentTypeGovernment
}
