// Package redact strips secrets and internals from error text before it is
// logged next to an HTTP error response.
package redact

import "regexp"

// rule replaces every match of re with replacement. Rules run in order, so
// broader patterns come after the specific ones they would otherwise eat.
type rule struct {
	re          *regexp.Regexp
	replacement string
}

var rules = []rule{
	// credentials in connection URLs; the host part is kept
	{regexp.MustCompile(`(?i)\b(postgres(?:ql)?|pgx)://[^@\s]+@`), "[REDACTED_CREDENTIAL]"},
	// bcrypt hashes
	{regexp.MustCompile(`\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}`), "[REDACTED_HASH]"},
	// Authorization header values
	{regexp.MustCompile(`(?i)bearer\s+[^\s"']+`), "Bearer [REDACTED_TOKEN]"},
	// bare JWTs
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*`), "[REDACTED_JWT]"},
	// key=value and key: value secrets; the key is kept
	{regexp.MustCompile(`(?i)(password|passwd|secret|token)(\s*[=:]\s*)[^\s&,;]+`), "${1}${2}[REDACTED]"},
	// SQL statements up to the end of the statement
	{regexp.MustCompile(`(?i)\b(SELECT|INSERT\s+INTO|UPDATE|DELETE\s+FROM)\b[^;]*`), "[REDACTED_SQL]"},
	// filesystem paths with at least two segments
	{regexp.MustCompile(`(/[\w.-]+){2,}`), "[REDACTED_PATH]"},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.re.ReplaceAllString(result, r.replacement)
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
