package models

import "time"

// StudentProfile is one eligibility submission. It is never updated after creation.
type StudentProfile struct {
	ID               int64     `json:"id"`
	State            string    `json:"state"`
	AnnualIncome     string    `json:"annualIncome"`
	Course           string    `json:"course"`
	YearOfStudy      string    `json:"yearOfStudy"`
	Category         *string   `json:"category"`
	Gender           *string   `json:"gender"`
	DisabilityStatus bool      `json:"disabilityStatus"`
	RuralUrban       string    `json:"ruralUrban"`
	CreatedAt        time.Time `json:"createdAt"`
}
