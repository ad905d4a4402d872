// Package validate runs declarative required-field checks before mutating
// handlers touch the database. Each route declares its rules next to the
// values it bound; all failing fields are reported together.
package validate

import (
	"strings"
)

// Rule pairs a field value with the message returned when it is empty.
type Rule struct {
	Param   string
	Value   string
	Message string
}

// FieldError is one entry of a 400 validation response.
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

// Required returns an error for every rule whose value is empty after
// trimming. An empty result means the request may proceed.
func Required(rules ...Rule) []FieldError {
	var errs []FieldError
	for _, r := range rules {
		if strings.TrimSpace(r.Value) == "" {
			errs = append(errs, FieldError{Param: r.Param, Msg: r.Message})
		}
	}
	return errs
}
