package errors

import (
	"fmt"
	"strings"
)

// UserFriendlyError provides actionable error messages for end users
type UserFriendlyError struct {
	Message    string // User-facing message explaining what went wrong
	Suggestion string // Actionable steps to fix the issue
	Details    error  // Original error for debugging/logs
}

func (e *UserFriendlyError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString("How to fix:\n")
		sb.WriteString(e.Suggestion)
	}
	return sb.String()
}

func (e *UserFriendlyError) Unwrap() error {
	return e.Details
}

// NetworkError maps a failed sheet call to something a person can act
// on. Every network failure is recoverable by re-submitting or
// refreshing; nothing here retries on its own.
func NetworkError(op string, err error) *UserFriendlyError {
	msg := fmt.Sprintf("Couldn't %s", opPhrase(op))
	suggestion := "Check your internet connection, then press F5 to retry"

	if err != nil {
		errStr := err.Error()

		if strings.Contains(errStr, "no such host") || strings.Contains(errStr, "name resolution") {
			msg += " - DNS lookup failed"
			suggestion = "Verify the sheet URL and your DNS settings"
		}
		if strings.Contains(errStr, "connection refused") {
			msg += " - the server refused the connection"
			suggestion = "The endpoint may be down. Try again later."
		}
		if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
			msg += " - the request timed out"
			suggestion = "The server is slow or unreachable. Try again, or raise network.timeout_seconds in config.yml"
		}
		if strings.Contains(errStr, "unexpected status") {
			suggestion = "The endpoint answered with an error status. Check that the URL points at the deployed sheet script."
		}
		if strings.Contains(errStr, "malformed response") {
			msg = fmt.Sprintf("Couldn't %s - the server sent something unexpected", opPhrase(op))
			suggestion = "The URL may point at a web page instead of the sheet API. Verify SHEET_API_URL."
		}
	}

	return &UserFriendlyError{Message: msg, Suggestion: suggestion, Details: err}
}

// ConfigError explains a missing or invalid setting. The app stays up
// and interactive; only the operations that need the setting fail.
func ConfigError(key string, err error) *UserFriendlyError {
	return &UserFriendlyError{
		Message:    fmt.Sprintf("Missing configuration: %s", key),
		Suggestion: fmt.Sprintf("Set the %s environment variable, or add it to config.yml\nRun 'grievlog config' to see what resolved from where", key),
		Details:    err,
	}
}

// ValidationError is the local rejection of an empty submission; no
// network call was made.
func ValidationError() *UserFriendlyError {
	return &UserFriendlyError{
		Message:    "Empty thought",
		Suggestion: "Write something before submitting",
	}
}

func opPhrase(op string) string {
	switch op {
	case "submit":
		return "submit your thought"
	case "fetch":
		return "retrieve history"
	default:
		return op
	}
}
