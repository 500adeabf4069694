package cryptox

import (
	"strings"
	"unicode/utf8"
)

const symbolClass = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

var trivialPatterns = []string{"password", "123456", "qwerty", "admin", "welcome"}

// Strength is the result of ScorePasswordStrength.
type Strength struct {
	IsStrong bool
	Score    int
	Reasons  []string
}

const (
	ReasonEmpty     = "Password is empty"
	ReasonStrong    = "Password is strong"
	ReasonLength    = "Password should be at least 8 characters long"
	ReasonUpper     = "Password should contain at least one uppercase letter"
	ReasonLower     = "Password should contain at least one lowercase letter"
	ReasonDigit     = "Password should contain at least one number"
	ReasonSymbol    = "Password should contain at least one special character"
	ReasonBlocklist = "Password contains common patterns that are easy to guess"
)

// ScorePasswordStrength rates password on a 0..5 scale.
//
// One point each for length >= 8, an uppercase letter, a lowercase letter,
// a digit and a symbol; one point off when the password contains a trivial
// pattern. A password is strong when it scores at least 4 and is at least
// 10 characters long.
func ScorePasswordStrength(password string) Strength {
	if password == "" {
		return Strength{Score: 0, Reasons: []string{ReasonEmpty}}
	}

	length := utf8.RuneCountInString(password)
	var reasons []string
	score := 0

	check := func(ok bool, reason string) {
		if ok {
			score++
			return
		}
		reasons = append(reasons, reason)
	}

	check(length >= 8, ReasonLength)
	check(strings.IndexFunc(password, isASCIIUpper) >= 0, ReasonUpper)
	check(strings.IndexFunc(password, isASCIILower) >= 0, ReasonLower)
	check(strings.IndexFunc(password, isASCIIDigit) >= 0, ReasonDigit)
	check(strings.ContainsAny(password, symbolClass), ReasonSymbol)

	lower := strings.ToLower(password)
	for _, p := range trivialPatterns {
		if strings.Contains(lower, p) {
			reasons = append(reasons, ReasonBlocklist)
			score--
			break
		}
	}

	isStrong := score >= 4 && length >= 10
	if score < 0 {
		score = 0
	}
	if len(reasons) == 0 {
		reasons = []string{ReasonStrong}
	}

	return Strength{IsStrong: isStrong, Score: score, Reasons: reasons}
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
