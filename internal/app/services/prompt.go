package services

import (
	"fmt"

	"github.com/yigit/scholarmatch/internal/app/models"
)

const matchPromptTemplate = `You are an AI scholarship matching system.
Generate 3-5 realistic (but mock) scholarship opportunities for the following student profile:
State: %s
Income: %s
Course: %s
Year: %s
Category: %s
Gender: %s
Disability: %s
Location: %s

Return a JSON object with a single key "matches" containing an array of objects with exactly these fields:
- name (string)
- governmentType (string) - "Government" or "Private"
- benefitAmount (string) - e.g., "₹50,000/year"
- deadline (string) - e.g., "Oct 15, 2025"
- matchConfidence (number 0-100)
- explainability (string) - 2 sentence explanation of why they are a good match based on their profile
- requiredDocuments (string array)
- missedOpportunitiesScore (number 0-100) - e.g., 20 if they missed some due to late application

Return only the JSON object, without markdown or any text before or after it.`

// BuildMatchPrompt renders the generation instruction for profile.
func BuildMatchPrompt(profile *models.StudentProfile) string {
	disability := "No"
	if profile.DisabilityStatus {
		disability = "Yes"
	}

	return fmt.Sprintf(matchPromptTemplate,
		profile.State,
		profile.AnnualIncome,
		profile.Course,
		profile.YearOfStudy,
		orNA(profile.Category),
		orNA(profile.Gender),
		disability,
		profile.RuralUrban,
	)
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
