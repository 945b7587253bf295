// Package forms provides a declarative, field-configuration-driven form
// layer: one shared validation engine evaluating per-field rule tables, plus
// render-ready field schemas for the dashboard UI.
package forms

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// Values is one submitted form, field name to raw string value.
type Values map[string]string

// DecodeValues reads a JSON object of string fields from the request body.
// Unknown fields are kept so they can be echoed back to the UI.
func DecodeValues(r *http.Request) (Values, error) {
	values := Values{}
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		return nil, fmt.Errorf("decode form body: %w", err)
	}
	return values, nil
}

// Get returns the trimmed value of a field.
func (v Values) Get(name string) string {
	return strings.TrimSpace(v[name])
}

// Int parses a field as an integer, returning 0 when absent or malformed.
// Call only after validation has passed.
func (v Values) Int(name string) int {
	n, _ := strconv.Atoi(v.Get(name))
	return n
}

// Rules is the declarative constraint table for one field. Rules evaluate in
// a fixed order; the first failure wins. Optional fields with empty values
// pass every remaining rule.
type Rules struct {
	Required bool
	Number   bool    // value must parse as a number
	Positive bool    // numeric value must be > 0
	Max      float64 // numeric upper bound; 0 means unbounded
	MinLen   int

	Pattern        *regexp.Regexp
	PatternMessage string

	// Custom runs last and sees the whole form, which covers cross-field
	// rules like password confirmation. It returns "" on success.
	Custom func(value string, values Values) string
}

// Option is one choice in a select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field is one form field: identity, rendering hints and its rule table.
type Field struct {
	Name        string
	Label       string
	Type        string // text, number, email, password, date, datetime-local, select, textarea
	Placeholder string
	Options     []Option
	Rules       Rules
}

// Form is an ordered field list sharing one validation engine.
type Form struct {
	Name   string
	Fields []Field
}

// Validate evaluates every field's rule table against the submitted values.
// It is pure: the same input always produces the same error map.
func (f Form) Validate(values Values) map[string]string {
	errs := map[string]string{}
	for _, field := range f.Fields {
		if msg := field.validate(values); msg != "" {
			errs[field.Name] = msg
		}
	}
	return errs
}

func (fd Field) validate(values Values) string {
	value := values.Get(fd.Name)
	rules := fd.Rules

	if value == "" {
		if rules.Required {
			return fd.Label + " is required"
		}
		return ""
	}

	if rules.Number || rules.Positive || rules.Max > 0 {
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || (rules.Positive && n <= 0) {
			return fd.Label + " must be a positive number"
		}
		if rules.Max > 0 && n > rules.Max {
			return fmt.Sprintf("%s must be %s or less", fd.Label, strconv.FormatFloat(rules.Max, 'f', -1, 64))
		}
	}

	if rules.MinLen > 0 && len(value) < rules.MinLen {
		return fmt.Sprintf("%s must be at least %d characters", fd.Label, rules.MinLen)
	}

	if rules.Pattern != nil && !rules.Pattern.MatchString(value) {
		if rules.PatternMessage != "" {
			return rules.PatternMessage
		}
		return fd.Label + " is invalid"
	}

	if rules.Custom != nil {
		return rules.Custom(value, values)
	}
	return ""
}

// FieldView is the render-ready description of one field, including the
// echoed value and error so a failed submit never clears the form.
type FieldView struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required"`
	Options     []Option `json:"options,omitempty"`
	Value       string   `json:"value,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// Schema renders the form's field configuration, merging submitted values and
// validation errors when present.
func (f Form) Schema(values Values, errs map[string]string) []FieldView {
	views := make([]FieldView, 0, len(f.Fields))
	for _, field := range f.Fields {
		fieldType := field.Type
		if fieldType == "" {
			fieldType = "text"
		}
		views = append(views, FieldView{
			ID:          field.Name,
			Label:       field.Label,
			Type:        fieldType,
			Placeholder: field.Placeholder,
			Required:    field.Rules.Required,
			Options:     field.Options,
			Value:       values[field.Name],
			Error:       errs[field.Name],
		})
	}
	return views
}
