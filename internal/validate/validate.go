// Package validate runs declarative per-field rule sets and reports the first
// violated rule.
package validate

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Error describes a single field that failed its rule set.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Field binds a named value to the rules it must satisfy.
type Field struct {
	Name  string
	Value interface{}
	Rules []validation.Rule
}

// F is shorthand for building a Field.
func F(name string, value interface{}, rules ...validation.Rule) Field {
	return Field{Name: name, Value: value, Rules: rules}
}

// Required prepends a non-empty check to a rule set. Optional fields use the
// rule set as is, since every other rule passes on empty values.
func Required(rules ...validation.Rule) []validation.Rule {
	out := make([]validation.Rule, 0, len(rules)+1)
	out = append(out, validation.Required.Error("is required"))
	return append(out, rules...)
}

// Check validates fields in declaration order and stops at the first failure.
func Check(fields ...Field) error {
	for _, f := range fields {
		if err := validation.Validate(f.Value, f.Rules...); err != nil {
			return &Error{
				Field:   f.Name,
				Message: fmt.Sprintf("%q %s", f.Name, err.Error()),
			}
		}
	}
	return nil
}
