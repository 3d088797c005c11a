package web

import (
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/app/models/dto"
)

// Page is the data every template receives.
type Page struct {
	Title  string
	Active string
}

// FormValues is the eligibility form as rendered, with optional fields
// flattened to their displayed value.
type FormValues struct {
	State        string
	AnnualIncome string
	Course       string
	YearOfStudy  string
	Category     string
	Gender       string
	Disability   bool
	RuralUrban   string
}

// DefaultForm is the initial state of the eligibility form.
func DefaultForm() FormValues {
	return FormValues{
		Category:   "General",
		Gender:     "Other",
		RuralUrban: "Urban",
	}
}

// FormFromRequest echoes a submitted request back into the form.
func FormFromRequest(r *dto.CreateProfileRequest) FormValues {
	f := FormValues{
		State:        r.State,
		AnnualIncome: r.AnnualIncome,
		Course:       r.Course,
		YearOfStudy:  r.YearOfStudy,
		RuralUrban:   r.RuralUrban,
	}
	if r.Category != nil {
		f.Category = *r.Category
	}
	if r.Gender != nil {
		f.Gender = *r.Gender
	}
	if r.DisabilityStatus != nil {
		f.Disability = *r.DisabilityStatus
	}
	return f
}

// EligibilityPage renders the profile form.
type EligibilityPage struct {
	Page
	Form       FormValues
	ErrorField string
	Error      string

	States      []Option
	Courses     []Option
	Years       []Option
	Categories  []Option
	Genders     []Option
	RegionTypes []Option
}

// NewEligibilityPage builds the form page around form.
func NewEligibilityPage(form FormValues) EligibilityPage {
	return EligibilityPage{
		Page:        Page{Title: "Check Eligibility", Active: "eligibility"},
		Form:        form,
		States:      States,
		Courses:     Courses,
		Years:       Years,
		Categories:  Categories,
		Genders:     Genders,
		RegionTypes: RegionTypes,
	}
}

// ResultsPage renders a profile's matches.
type ResultsPage struct {
	Page
	Profile   *models.StudentProfile
	Matches   []*models.ScholarshipMatch
	Total     int
	AvgMissed int
	Filters   Filters
	Error     string
}

// NewResultsPage filters all by f and computes the summary over all.
func NewResultsPage(profile *models.StudentProfile, all []*models.ScholarshipMatch, f Filters) ResultsPage {
	return ResultsPage{
		Page:      Page{Title: "Your Matches", Active: "results"},
		Profile:   profile,
		Matches:   FilterMatches(all, f),
		Total:     len(all),
		AvgMissed: AverageMissedScore(all),
		Filters:   f,
	}
}

// MessagePage renders a standalone notice such as a missing profile.
type MessagePage struct {
	Page
	Heading string
	Message string
}

// ProfileNotFoundPage is shown for unknown or malformed profile ids.
func ProfileNotFoundPage() MessagePage {
	return MessagePage{
		Page:    Page{Title: "Profile Not Found"},
		Heading: "Profile Not Found",
		Message: "We couldn't find the requested profile.",
	}
}

// ErrorPage is shown when a page cannot be rendered for an internal reason.
func ErrorPage() MessagePage {
	return MessagePage{
		Page:    Page{Title: "Something went wrong"},
		Heading: "Something went wrong",
		Message: "Please try again in a moment.",
	}
}
