// Package types provides the canonical resume record shared across drivers,
// the import pipeline, and storage.
package types

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ApplicationStatus tracks where a candidate sits in the hiring funnel.
type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "applied"
	StatusScreening ApplicationStatus = "screening"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusRejected  ApplicationStatus = "rejected"
	StatusHired     ApplicationStatus = "hired"
	StatusWithdrawn ApplicationStatus = "withdrawn"
)

// InterviewStatus tracks whether an interview has been arranged for a candidate.
type InterviewStatus string

const (
	InterviewScheduled    InterviewStatus = "scheduled"
	InterviewCompleted    InterviewStatus = "completed"
	InterviewCancelled    InterviewStatus = "cancelled"
	InterviewPending      InterviewStatus = "pending"
	InterviewNotScheduled InterviewStatus = "not_scheduled"
)

// Resume is the normalized application record. Every source driver maps its
// native columns onto these fields; nil means the source did not provide a value.
type Resume struct {
	ID *int64 `json:"id,omitempty"`

	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,resume_email"`
	Phone    *string `json:"phone,omitempty"`

	ResumeFile      *string    `json:"resume_file,omitempty"`
	PositionApplied *string    `json:"position_applied,omitempty"`
	ApplicationDate *time.Time `json:"application_date,omitempty"`

	TestScore *float64 `json:"test_score,omitempty" validate:"omitempty,gte=0,lte=100"`
	TestURL   *string  `json:"test_url,omitempty"`

	InterviewStatus *InterviewStatus `json:"interview_status,omitempty"`
	InterviewDate   *time.Time       `json:"interview_date,omitempty"`

	ApplicationStatus *ApplicationStatus `json:"application_status,omitempty"`

	RecruiterNotes *string `json:"recruiter_notes,omitempty"`
	HRNotes        *string `json:"hr_notes,omitempty"`
	TechnicalNotes *string `json:"technical_notes,omitempty"`

	YearsExperience *int    `json:"years_experience,omitempty" validate:"omitempty,gte=0"`
	Skills          *string `json:"skills,omitempty"`

	Source   *string `json:"source,omitempty"`
	SourceID *string `json:"source_id,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// emailPattern is the minimum bar for an address we are willing to store.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[a-zA-Z]{2,}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// validator's built-in "email" rule is stricter than the sources warrant;
	// match the same basic pattern the sheet owners were held to.
	_ = v.RegisterValidation("resume_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// NewResume builds a Resume from a canonical row produced by the import
// pipeline. Field values are coerced to their canonical representation
// (emails lower-cased and trimmed, numeric strings parsed); a value that
// cannot satisfy the field's constraints fails construction.
func NewResume(row map[string]any) (*Resume, error) {
	r := &Resume{}
	now := time.Now().UTC()
	r.CreatedAt = &now
	r.UpdatedAt = &now

	for field, value := range row {
		if value == nil {
			continue
		}
		if err := r.setField(field, value); err != nil {
			return nil, err
		}
	}

	if err := validate.Struct(r); err != nil {
		return nil, describeValidation(r, err)
	}

	return r, nil
}

// IsComplete reports whether the record carries the minimum fields worth
// persisting: a name and an email address.
func (r *Resume) IsComplete() bool {
	return r.FullName != nil && r.Email != nil
}

// UniquenessKey identifies "the same applicant from the same source".
// Deduplication on persist keys on this pair, never on the surrogate ID.
func (r *Resume) UniquenessKey() (email, source string) {
	if r.Email != nil {
		email = *r.Email
	}
	if r.Source != nil {
		source = *r.Source
	}
	return email, source
}

func (r *Resume) setField(field string, value any) error {
	switch field {
	case "full_name":
		r.FullName = cleanString(value)
	case "email":
		email, err := normalizeEmail(value)
		if err != nil {
			return err
		}
		r.Email = email
	case "phone":
		r.Phone = cleanString(value)
	case "resume_file":
		r.ResumeFile = cleanString(value)
	case "position_applied":
		r.PositionApplied = cleanString(value)
	case "application_date":
		r.ApplicationDate = timeValue(value)
	case "test_score":
		score, err := floatValue(value)
		if err != nil {
			return fmt.Errorf("invalid test_score %v: %w", value, err)
		}
		r.TestScore = score
	case "test_url":
		r.TestURL = cleanString(value)
	case "interview_status":
		r.InterviewStatus = interviewStatusValue(value)
	case "interview_date":
		r.InterviewDate = timeValue(value)
	case "application_status":
		r.ApplicationStatus = applicationStatusValue(value)
	case "recruiter_notes":
		r.RecruiterNotes = cleanString(value)
	case "hr_notes":
		r.HRNotes = cleanString(value)
	case "technical_notes":
		r.TechnicalNotes = cleanString(value)
	case "years_experience":
		years, err := intValue(value)
		if err != nil {
			return fmt.Errorf("invalid years_experience %v: %w", value, err)
		}
		r.YearsExperience = years
	case "skills":
		r.Skills = cleanString(value)
	case "source":
		if s := cleanString(value); s != nil {
			lowered := strings.ToLower(*s)
			r.Source = &lowered
		}
	case "source_id":
		r.SourceID = cleanString(value)
	}
	// Unknown fields are ignored: drivers may carry scratch columns that the
	// mapping never exposes.
	return nil
}

// normalizeEmail trims, lower-cases, and pattern-checks an email value.
// A blank value normalizes to nil rather than failing.
func normalizeEmail(value any) (*string, error) {
	s := cleanString(value)
	if s == nil {
		return nil, nil
	}
	email := strings.ToLower(strings.TrimSpace(*s))
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("invalid email format: %s", *s)
	}
	return &email, nil
}

// cleanString coerces a cell value to a trimmed string, mapping blank values
// to nil. Non-string scalars are formatted the way the sheet displayed them.
func cleanString(value any) *string {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case bool:
		s = strconv.FormatBool(v)
	default:
		s = fmt.Sprintf("%v", v)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func floatValue(value any) (*float64, error) {
	switch v := value.(type) {
	case float64:
		return &v, nil
	case float32:
		f := float64(v)
		return &f, nil
	case int:
		f := float64(v)
		return &f, nil
	case int64:
		f := float64(v)
		return &f, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, err
		}
		return &f, nil
	default:
		return nil, fmt.Errorf("unsupported numeric value %T", value)
	}
}

func intValue(value any) (*int, error) {
	switch v := value.(type) {
	case int:
		return &v, nil
	case int64:
		n := int(v)
		return &n, nil
	case float64:
		n := int(v)
		return &n, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			f, ferr := strconv.ParseFloat(trimmed, 64)
			if ferr != nil {
				return nil, err
			}
			n = int(f)
		}
		return &n, nil
	default:
		return nil, fmt.Errorf("unsupported integer value %T", value)
	}
}

func timeValue(value any) *time.Time {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return &v
	case *time.Time:
		return v
	default:
		return nil
	}
}

func interviewStatusValue(value any) *InterviewStatus {
	switch v := value.(type) {
	case InterviewStatus:
		return &v
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		status := InterviewStatus(v)
		return &status
	default:
		return nil
	}
}

func applicationStatusValue(value any) *ApplicationStatus {
	switch v := value.(type) {
	case ApplicationStatus:
		return &v
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		status := ApplicationStatus(v)
		return &status
	default:
		return nil
	}
}

// describeValidation turns validator output into the human-readable text that
// ends up in a row's ValidationError.
func describeValidation(r *Resume, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, ve := range verrs {
		switch ve.Field() {
		case "Email":
			if r.Email != nil {
				return fmt.Errorf("invalid email format: %s", *r.Email)
			}
			return fmt.Errorf("invalid email format")
		case "TestScore":
			return fmt.Errorf("test score must be between 0 and 100")
		case "YearsExperience":
			return fmt.Errorf("years of experience cannot be negative")
		}
	}
	return err
}
