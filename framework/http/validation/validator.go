package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ── Types ────────────────────────────────────────────────────────────────────

// Errors holds validation messages per field.
// JSON output: {"errors": {"field": ["msg1", "msg2"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

func (e *Errors) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs, ok := e.Bag[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Messages returns every message, ordered by field name.
func (e *Errors) Messages() []string {
	fields := make([]string, 0, len(e.Bag))
	for field := range e.Bag {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var out []string
	for _, field := range fields {
		out = append(out, e.Bag[field]...)
	}
	return out
}

// ── Validator ────────────────────────────────────────────────────────────────

// Rules is a map of field → pipe-separated rule string.
// e.g. Rules{"APP_ENV": "required|in:local,production", "APP_PORT": "integer|between:1,65535"}
type Rules map[string]string

// Validator validates a flat map of values.
type Validator struct {
	data      map[string]string
	rules     Rules
	errors    *Errors
	validated bool
}

// Make creates a new Validator.
func Make(data map[string]string, rules Rules) *Validator {
	return &Validator{
		data:   data,
		rules:  rules,
		errors: &Errors{},
	}
}

// Fails runs validation and returns true if any rule fails.
func (v *Validator) Fails() bool {
	if !v.validated {
		v.validate()
		v.validated = true
	}
	return v.errors.Has()
}

// Passes runs validation and returns true if all rules pass.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the validation error bag.
func (v *Validator) Errors() *Errors { return v.errors }

// ── Core validation loop ─────────────────────────────────────────────────────

func (v *Validator) validate() {
	for field, ruleStr := range v.rules {
		value := v.data[field]
		rules := strings.Split(ruleStr, "|")
		numeric := hasRule(rules, "integer") || hasRule(rules, "numeric")

		for _, rule := range rules {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}

			// min:3 → name=min, param=3
			name, param, _ := strings.Cut(rule, ":")

			if !v.applyRule(field, value, name, param, numeric) {
				break // stop on first failure
			}
		}
	}
}

func hasRule(rules []string, name string) bool {
	for _, rule := range rules {
		if n, _, _ := strings.Cut(strings.TrimSpace(rule), ":"); n == name {
			return true
		}
	}
	return false
}

// applyRule returns true if the rule passes. Size rules compare the value
// itself when the field is numeric and its length otherwise.
func (v *Validator) applyRule(field, value, rule, param string, numeric bool) bool {
	switch rule {
	case "required":
		if strings.TrimSpace(value) == "" {
			v.errors.add(field, fmt.Sprintf("The %s field is required.", field))
			return false
		}

	case "nullable":
		if value == "" {
			return false // nothing else to check
		}

	case "numeric":
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			v.errors.add(field, fmt.Sprintf("The %s must be a number.", field))
			return false
		}

	case "integer":
		if _, err := strconv.Atoi(value); err != nil {
			v.errors.add(field, fmt.Sprintf("The %s must be an integer.", field))
			return false
		}

	case "boolean":
		if _, err := strconv.ParseBool(value); err != nil {
			v.errors.add(field, fmt.Sprintf("The %s field must be true or false.", field))
			return false
		}

	case "min", "max", "between":
		lo, hi := bounds(rule, param)
		size := float64(utf8.RuneCountInString(value))
		unit := " characters"
		if numeric {
			size, _ = strconv.ParseFloat(value, 64)
			unit = ""
		}
		if size < lo || size > hi {
			v.errors.add(field, sizeMessage(field, rule, param, unit))
			return false
		}

	case "in", "not_in":
		listed := false
		for _, a := range strings.Split(param, ",") {
			if strings.TrimSpace(a) == value {
				listed = true
				break
			}
		}
		if listed != (rule == "in") {
			v.errors.add(field, fmt.Sprintf("The selected %s is invalid.", field))
			return false
		}

	case "regex":
		re, err := regexp.Compile(param)
		if err != nil || !re.MatchString(value) {
			v.errors.add(field, fmt.Sprintf("The %s format is invalid.", field))
			return false
		}
	}

	return true
}

// bounds returns the inclusive range a size rule accepts.
func bounds(rule, param string) (float64, float64) {
	lo, hi := -1e308, 1e308
	switch rule {
	case "min":
		lo, _ = strconv.ParseFloat(param, 64)
	case "max":
		hi, _ = strconv.ParseFloat(param, 64)
	case "between":
		a, b, _ := strings.Cut(param, ",")
		lo, _ = strconv.ParseFloat(strings.TrimSpace(a), 64)
		hi, _ = strconv.ParseFloat(strings.TrimSpace(b), 64)
	}
	return lo, hi
}

func sizeMessage(field, rule, param, unit string) string {
	switch rule {
	case "min":
		return fmt.Sprintf("The %s must be at least %s%s.", field, param, unit)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s%s.", field, param, unit)
	default:
		a, b, _ := strings.Cut(param, ",")
		return fmt.Sprintf("The %s must be between %s and %s%s.", field, strings.TrimSpace(a), strings.TrimSpace(b), unit)
	}
}
