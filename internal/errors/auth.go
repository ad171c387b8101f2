package errors

import "fmt"

// Provider error codes. The set mirrors what the identity provider
// reports; unknown codes fall back to a generic user message.
const (
	CodeUserNotFound      = "auth/user-not-found"
	CodeInvalidCredential = "auth/invalid-credential"
	CodeWrongPassword     = "auth/wrong-password"
	CodeInvalidEmail      = "auth/invalid-email"
	CodeEmailInUse        = "auth/email-already-in-use"
	CodeWeakPassword      = "auth/weak-password"
	CodeNetworkFailed     = "auth/network-request-failed"
)

var authMessages = map[string]string{
	CodeUserNotFound:      "No user found with this email address.",
	CodeInvalidCredential: "Invalid credentials, check your email or password.",
	CodeWrongPassword:     "Incorrect password. Please try again.",
	CodeInvalidEmail:      "Invalid email address. Please check and try again.",
	CodeEmailInUse:        "Email is already in use. Please use a different email.",
	CodeWeakPassword:      "Password is too weak. Please choose a stronger password.",
	CodeNetworkFailed:     "Network error. Please check your internet connection and try again.",
}

const genericAuthMessage = "An error occurred. Please try again later."

// AuthError is a failure reported by the external auth provider.
type AuthError struct {
	Code string
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("auth: %s", e.Code)
}

func (e *AuthError) Unwrap() error { return e.Err }

// UserMessage maps the provider code to a message suitable for display.
func (e *AuthError) UserMessage() string {
	if msg, ok := authMessages[e.Code]; ok {
		return msg
	}
	return genericAuthMessage
}

// NewAuthError builds an AuthError for the given provider code.
func NewAuthError(code string) *AuthError { return &AuthError{Code: code} }
