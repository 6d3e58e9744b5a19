// Package validation checks a run configuration before the model touches any
// input file, collecting findings into a report.
package validation

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// ErrInvalid is wrapped by Report.Err when a report holds errors.
var ErrInvalid = eris.New("configuration has validation errors")

// Level names the part of the configuration a finding came from.
type Level string

const (
	LevelSchema    Level = "schema"
	LevelParameter Level = "parameter"
	LevelOption    Level = "option"
)

// Severity indicates how critical a validation result is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Result is a single validation finding. Path is the dotted location of the
// offending value in the parameter dictionaries.
type Result struct {
	Level       Level    `json:"level"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	Path        string   `json:"path"`
	ActualValue any      `json:"actual_value,omitempty"`
	Expected    string   `json:"expected,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Report collects the findings for one configuration. Country checks run into
// their own scoped report and are merged in, so Countries lists every country
// that was checked, clean or not.
type Report struct {
	Valid     bool     `json:"valid"`
	Scope     string   `json:"scope,omitempty"`
	Countries []string `json:"countries"`
	Errors    []Result `json:"errors"`
	Warnings  []Result `json:"warnings"`
	Info      []Result `json:"info"`
	Summary   string   `json:"summary"`
}

// NewReport creates an empty valid report.
func NewReport() *Report {
	r := &Report{
		Valid:     true,
		Countries: []string{},
		Errors:    []Result{},
		Warnings:  []Result{},
		Info:      []Result{},
	}
	r.summarise()
	return r
}

func newCountryReport(iso3 string) *Report {
	r := NewReport()
	r.Scope = iso3
	return r
}

func (r *Report) AddError(result Result) {
	result.Severity = SeverityError
	r.Errors = append(r.Errors, result)
	r.Valid = false
	r.summarise()
}

func (r *Report) AddWarning(result Result) {
	result.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, result)
	r.summarise()
}

func (r *Report) AddInfo(result Result) {
	result.Severity = SeverityInfo
	r.Info = append(r.Info, result)
	r.summarise()
}

// Merge folds a scoped report into this one. The scope is recorded in
// Countries even when the scoped report found nothing.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	if other.Scope != "" {
		r.Countries = append(r.Countries, other.Scope)
	}
	r.Countries = append(r.Countries, other.Countries...)
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Info = append(r.Info, other.Info...)
	r.Valid = r.Valid && other.Valid
	r.summarise()
}

// Err returns nil for a valid report, otherwise ErrInvalid annotated with the
// first error.
func (r *Report) Err() error {
	if r.Valid || len(r.Errors) == 0 {
		return nil
	}
	first := r.Errors[0]
	return eris.Wrapf(ErrInvalid, "%s (%s)", first.Message, r.Summary)
}

func (r *Report) summarise() {
	r.Summary = fmt.Sprintf("%s, %s across %s",
		count(len(r.Errors), "error"), count(len(r.Warnings), "warning"), count(len(r.Countries), "country"))
}

func count(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if noun == "country" {
		return fmt.Sprintf("%d countries", n)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
