package dto

import "github.com/yigit/scholarmatch/internal/app/models"

// CreateProfileRequest is the eligibility form payload. Field order is the
// order in which validation failures are reported.
type CreateProfileRequest struct {
	State            string  `json:"state" form:"state" validate:"required,notblank,max=100"`
	AnnualIncome     string  `json:"annualIncome" form:"annualIncome" validate:"required,notblank,max=100"`
	Course           string  `json:"course" form:"course" validate:"required,notblank,max=100"`
	YearOfStudy      string  `json:"yearOfStudy" form:"yearOfStudy" validate:"required,notblank,max=50"`
	Category         *string `json:"category" form:"category" validate:"omitempty,max=50"`
	Gender           *string `json:"gender" form:"gender" validate:"omitempty,max=50"`
	DisabilityStatus *bool   `json:"disabilityStatus" form:"disabilityStatus"`
	RuralUrban       string  `json:"ruralUrban" form:"ruralUrban" validate:"required,notblank,max=50"`
}

// ToModel converts the request into a profile ready to be stored. Values are
// copied as submitted; an absent optional field stays NULL.
func (r *CreateProfileRequest) ToModel() *models.StudentProfile {
	p := &models.StudentProfile{
		State:        r.State,
		AnnualIncome: r.AnnualIncome,
		Course:       r.Course,
		YearOfStudy:  r.YearOfStudy,
		Category:     r.Category,
		Gender:       r.Gender,
		RuralUrban:   r.RuralUrban,
	}
	if r.DisabilityStatus != nil {
		p.DisabilityStatus = *r.DisabilityStatus
	}
	return p
}
