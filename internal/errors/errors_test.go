package errors

import (
	"errors"
	"testing"
)

func TestCategoryFor(t *testing.T) {
	t.Parallel()
	cases := []struct {
		status int
		want   Category
	}{
		{400, Irrecoverable},
		{401, Irrecoverable},
		{404, Irrecoverable},
		{408, Recoverable},
		{429, Recoverable},
		{500, Recoverable},
		{503, Recoverable},
	}
	for _, tc := range cases {
		if got := categoryFor(tc.status); got != tc.want {
			t.Errorf("categoryFor(%d) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestIsIrrecoverable(t *testing.T) {
	t.Parallel()
	if !IsIrrecoverable(NewHTTPError(403, "", "fetch profile")) {
		t.Error("403 should be irrecoverable")
	}
	if IsIrrecoverable(NewHTTPError(502, "", "fetch profile")) {
		t.Error("502 should be recoverable")
	}
	if IsIrrecoverable(errors.New("plain")) {
		t.Error("unclassified errors should not read as irrecoverable")
	}
}

func TestNetworkErrorUnwrap(t *testing.T) {
	t.Parallel()
	inner := errors.New("connection refused")
	err := NewNetworkError("fetch profile", inner)
	if err.Category != Recoverable {
		t.Errorf("category = %v, want Recoverable", err.Category)
	}
	if !errors.Is(err, inner) {
		t.Error("expected wrapped error to survive Unwrap")
	}
}

func TestAuthErrorUserMessage(t *testing.T) {
	t.Parallel()
	if got := NewAuthError(CodeWrongPassword).UserMessage(); got != authMessages[CodeWrongPassword] {
		t.Errorf("unexpected message: %q", got)
	}
	if got := NewAuthError("auth/some-new-code").UserMessage(); got != genericAuthMessage {
		t.Errorf("unknown code should fall back to generic message, got %q", got)
	}
}
