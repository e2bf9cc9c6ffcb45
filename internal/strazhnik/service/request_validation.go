package service

import (
	"errors"
	"regexp"
	"slices"
	"strings"

	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/types"
)

var ErrValidationFailed = errors.New("validation failed")

// Violation codes.
const (
	CodeRequired     = "required"
	CodeInvalid      = "invalid"
	CodeOutOfRange   = "out_of_range"
	CodeNotInCatalog = "not_in_catalog"
)

// Bounds relative to the day the form is entered.
const (
	minStartOffsetDays = 1
	maxStartOffsetDays = 15
	minVisitorAgeYears = 14
)

var (
	emailPattern          = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	passportSeriesPattern = regexp.MustCompile(`^[0-9]{4}$`)
	passportNumberPattern = regexp.MustCompile(`^[0-9]{6}$`)
)

type Violation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError carries every problem found in a form.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return strings.Join(msgs, "\n")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidationFailed }

// Catalog holds the host departments and employees a request may name. An
// empty list disables the membership check for that field.
type Catalog struct {
	Departments []string
	Employees   []string
}

// ValidateForm checks every field independently and reports all
// violations at once. today is the day the form is being entered.
func ValidateForm(form types.RequestForm, today types.Date, catalog Catalog) error {
	var vs []Violation
	add := func(field, code, msg string) {
		vs = append(vs, Violation{Field: field, Code: code, Message: msg})
	}

	v := form.Visitor

	if strings.TrimSpace(v.LastName) == "" {
		add("visitor.last_name", CodeRequired, "last name is required")
	}
	if strings.TrimSpace(v.FirstName) == "" {
		add("visitor.first_name", CodeRequired, "first name is required")
	}
	if !emailPattern.MatchString(v.Email) {
		add("visitor.email", CodeInvalid, "invalid email address")
	}
	if !passportSeriesPattern.MatchString(v.Passport.Series) {
		add("visitor.passport.series", CodeInvalid, "passport series must be 4 digits")
	}
	if !passportNumberPattern.MatchString(v.Passport.Number) {
		add("visitor.passport.number", CodeInvalid, "passport number must be 6 digits")
	}
	if !types.IsDocumentSelected(form.Documents.PassportScan) {
		add("documents.passport_scan", CodeRequired, "passport scan is required")
	}

	earliest := today.AddDays(minStartOffsetDays)
	latest := today.AddDays(maxStartOffsetDays)
	switch start := form.Dates.Start; {
	case start.IsZero():
		add("dates.start", CodeRequired, "start date is required")
	case start.Before(earliest) || start.After(latest):
		add("dates.start", CodeOutOfRange, "start date must be between "+earliest.String()+" and "+latest.String())
	}

	latestBirth := today.AddYears(-minVisitorAgeYears)
	switch birth := v.BirthDate; {
	case birth.IsZero():
		add("visitor.birth_date", CodeRequired, "birth date is required")
	case birth.After(latestBirth):
		add("visitor.birth_date", CodeOutOfRange, "visitor must be at least 14 years old")
	}

	checkCatalog := func(field, value, label string, allowed []string) {
		switch {
		case strings.TrimSpace(value) == "":
			add(field, CodeRequired, label+" is required")
		case len(allowed) > 0 && !slices.Contains(allowed, value):
			add(field, CodeNotInCatalog, "unknown "+label+" "+value)
		}
	}
	checkCatalog("host.department", form.Host.Department, "department", catalog.Departments)
	checkCatalog("host.employee", form.Host.Employee, "host employee", catalog.Employees)

	if len(vs) > 0 {
		return &ValidationError{Violations: vs}
	}
	return nil
}
