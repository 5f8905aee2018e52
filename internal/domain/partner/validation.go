package partner

import (
	"regexp"
	"strings"

	"github.com/mrtoldo/backend/internal/domain/shared"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.InvalidInput("Email cannot exceed 200 characters.")
	}
	if !emailRegex.MatchString(email) {
		return shared.InvalidInput("Invalid email address.")
	}
	return nil
}

func validatePhone(phone int64) error {
	if phone <= 0 {
		return shared.InvalidInput("Phone must be a number.")
	}
	return nil
}

// required returns an INVALID_INPUT error naming the first blank field
func required(fields ...[2]string) error {
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			return shared.InvalidInput(f[0] + " is required.")
		}
	}
	return nil
}
