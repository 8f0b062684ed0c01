package service

import (
	"strings"

	"github.com/hedgeshield/hedgeshield/internal/pkg/apperrors"
)

// DefaultTenant is used when a request carries no tenant header.
const DefaultTenant = "default"

const maxTenantLen = 40

// ResolveTenant validates the declared tenant identifier from the request
// header. Absent or blank resolves to the default tenant; anything else must
// be 1-40 characters from [A-Za-z0-9._-]. Pure function, no side effects.
func ResolveTenant(header string) (string, error) {
	v := strings.TrimSpace(header)
	if v == "" {
		return DefaultTenant, nil
	}
	if len(v) > maxTenantLen {
		return "", apperrors.NewInvalidTenant("invalid_company")
	}
	for _, r := range v {
		if !isTenantChar(r) {
			return "", apperrors.NewInvalidTenant("invalid_company")
		}
	}
	return v, nil
}

func isTenantChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_' || r == '.':
		return true
	}
	return false
}
