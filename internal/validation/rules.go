// Package validation holds the pure field-level domain rules. Every
// function here is a side-effect-free predicate over the candidate value;
// uniqueness checks, which need persisted state, live in the services.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	MinScore = 1
	MaxScore = 10
)

// Letter first, then up to 30 of letters/digits/-/_/.; 2..31 chars total.
var usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9\-_.]{1,30}$`)

// ValidateUsername rejects the reserved name "me" (any case) and anything
// outside the username pattern.
func ValidateUsername(value string) error {
	if strings.EqualFold(value, "me") {
		return fmt.Errorf("username %q is reserved", value)
	}
	if !usernamePattern.MatchString(value) {
		return fmt.Errorf("invalid characters in username %q", value)
	}
	return nil
}

// ValidateYear rejects release years after the current calendar year
func ValidateYear(value int) error {
	now := time.Now().Year()
	if value > now {
		return fmt.Errorf("year %d can't be later than %d", value, now)
	}
	return nil
}

// ValidateScore rejects scores outside [1,10]
func ValidateScore(value int) error {
	if value < MinScore || value > MaxScore {
		return fmt.Errorf("score %d must be between %d and %d", value, MinScore, MaxScore)
	}
	return nil
}
