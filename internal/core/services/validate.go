package services

import (
	"net/url"
	"strings"

	"github.com/custodia-labs/cookbook/internal/core/domain"
)

// Validation messages reported per field.
const (
	msgRequired   = "Missing data for required field."
	msgInvalidURL = "Not a valid URL."
)

// ValidateSourceURL checks that raw is an absolute http or https URL.
func ValidateSourceURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return domain.NewValidationError("url", msgRequired)
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.NewValidationError("url", msgInvalidURL)
	}
	return nil
}

// requireFields returns a validation error naming every empty field.
// fields alternates name, value.
func requireFields(fields ...string) error {
	var verr *domain.ValidationError
	for i := 0; i+1 < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) != "" {
			continue
		}
		if verr == nil {
			verr = &domain.ValidationError{}
		}
		verr.Add(fields[i], msgRequired)
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// splitList splits a semicolon-delimited list, dropping empty tokens.
func splitList(list string) []string {
	var out []string
	for _, token := range strings.Split(list, ";") {
		if token = strings.TrimSpace(token); token != "" {
			out = append(out, token)
		}
	}
	return out
}
