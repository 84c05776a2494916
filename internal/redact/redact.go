// Package redact masks sensitive values before they reach logs or error responses.
//
// Two kinds of helpers live here. MobileNumber and CardNumber mask a single known
// identifier, keeping only the trailing digits needed to correlate log lines.
// String and Error scrub free-form text such as driver error messages, which can
// echo connection strings, SQL fragments, or the key values of a violated
// constraint.
package redact

import (
	"regexp"
	"strings"
)

// Placeholders substituted for redacted content.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedNumberPlaceholder     = "[REDACTED_NUMBER]"
)

// visibleDigits is the number of trailing digits left readable by the masking helpers.
const visibleDigits = 4

const maskRune = '*'

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order; earlier rules win over overlapping later ones.
var rules = []rule{
	// connection strings with embedded credentials
	{
		regexp.MustCompile(`(?i)(postgres|postgresql|redis|rediss|db|database)://[^@\s]+@`),
		RedactedCredentialPlaceholder,
	},
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), "[REDACTED_JWT]"},
	{
		regexp.MustCompile(`(?i)(api[_-]?key|token|secret|bearer)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),
		RedactedKeyPlaceholder,
	},
	// postgres echoes the offending key on unique violations: Key (mobile_number)=(1234567890)
	{regexp.MustCompile(`\(([a-z_]+)\)=\([^)]*\)`), "($1)=" + RedactionPlaceholder},
	{
		regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\b[\s\w,*()$.]+\b(FROM|INTO|SET)\b[\s\w,*()$.='"]*`),
		"[REDACTED_SQL]",
	},
	// bare mobile and card numbers
	{regexp.MustCompile(`\b\d{10,19}\b`), RedactedNumberPlaceholder},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[REDACTED_EMAIL]"},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// MobileNumber masks all but the last four digits of a mobile number.
func MobileNumber(mobileNumber string) string {
	return maskTail(mobileNumber)
}

// CardNumber masks all but the last four digits of a card number.
func CardNumber(cardNumber string) string {
	return maskTail(cardNumber)
}

func maskTail(value string) string {
	if value == "" {
		return ""
	}
	// Too short to leave anything visible.
	if len(value) <= visibleDigits {
		return strings.Repeat(string(maskRune), len(value))
	}
	return strings.Repeat(string(maskRune), len(value)-visibleDigits) + value[len(value)-visibleDigits:]
}
