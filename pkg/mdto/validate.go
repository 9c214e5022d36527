package mdto

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Violation is a single validation finding: the field it concerns, the
// offending value and a human-readable message.
type Violation struct {
	Field   string
	Value   string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationResult collects the violations found in one object. Validation
// never mutates the object; whether violations are warnings or fatal is the
// caller's policy.
type ValidationResult struct {
	Violations []Violation
}

// Add records a violation.
func (r *ValidationResult) Add(field, value, format string, args ...interface{}) {
	r.Violations = append(r.Violations, Violation{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// OK reports whether no violations were found.
func (r *ValidationResult) OK() bool {
	return len(r.Violations) == 0
}

// Err converts the result into an error wrapping ErrValidation, or nil when
// the result is clean. Strict mode escalates through this.
func (r *ValidationResult) Err() error {
	if r.OK() {
		return nil
	}
	msgs := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		msgs[i] = v.String()
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

// checkNaam reports names longer than MaxNaamLength. Length is counted in
// characters, not bytes; Dutch names routinely carry accented characters.
func checkNaam(r *ValidationResult, field, naam string) {
	if n := utf8.RuneCountInString(naam); n > MaxNaamLength {
		r.Add(field, naam, "naam is %d characters long, the MDTO schema caps it at %d", n, MaxNaamLength)
	}
}

// checkURL reports values that do not parse as absolute URLs with a scheme
// and a host.
func checkURL(r *ValidationResult, field, raw string) {
	u, err := url.ParseRequestURI(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		r.Add(field, raw, "%q is not a valid URL", raw)
	}
}

// Validate checks the naam length and any online consultation locations.
func (o *Informatieobject) Validate() ValidationResult {
	var res ValidationResult
	checkNaam(&res, "naam", o.Naam)
	if o.Raadpleeglocatie != nil {
		for _, u := range o.Raadpleeglocatie.Online {
			checkURL(&res, "raadpleeglocatieOnline", u)
		}
	}
	return res
}

// Validate checks the naam length and the URLBestand syntax.
func (b *Bestand) Validate() ValidationResult {
	var res ValidationResult
	checkNaam(&res, "naam", b.Naam)
	if b.URLBestand != "" {
		checkURL(&res, "URLBestand", b.URLBestand)
	}
	return res
}
