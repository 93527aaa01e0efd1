// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

package credential

import (
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	policy := DefaultPolicy()

	tests := []struct {
		name     string
		username string
		wantKind Kind
	}{
		{"empty", "", KindUsernameTooShort},
		{"two chars", "ab", KindUsernameTooShort},
		{"exactly three", "abc", ""},
		{"long", "administrator", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := policy.ValidateUsername(tt.username)
			if got := KindOf(err); got != tt.wantKind {
				t.Errorf("ValidateUsername(%q) kind = %q, want %q (err: %v)", tt.username, got, tt.wantKind, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	policy := DefaultPolicy()

	tests := []struct {
		name     string
		email    string
		wantKind Kind
	}{
		{"absent is accepted", "", ""},
		{"valid address", "a@b.com", ""},
		{"valid with subdomain", "ops@plex.home.example", ""},
		{"not an email", "not-an-email", KindInvalidEmailFormat},
		{"no dot in domain", "user@localhost", KindInvalidEmailFormat},
		{"whitespace", "user name@example.com", KindInvalidEmailFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := policy.ValidateEmail(tt.email)
			if got := KindOf(err); got != tt.wantKind {
				t.Errorf("ValidateEmail(%q) kind = %q, want %q (err: %v)", tt.email, got, tt.wantKind, err)
			}
		})
	}
}

func TestValidatePassword_Length(t *testing.T) {
	t.Parallel()

	policy := DefaultPolicy()

	tests := []struct {
		name     string
		password string
		wantKind Kind
	}{
		{"eleven chars", "Abcdef1234!", KindPasswordTooShort},
		{"twelve chars minimum", "Abcdef12345!", ""},
		{"128 chars maximum", "Aa1!" + strings.Repeat("x", 124), ""},
		{"129 chars", "Aa1!" + strings.Repeat("x", 125), KindPasswordTooLong},
		{"empty", "", KindPasswordTooShort},
		// Multibyte runes count as one character each, not per byte.
		{"nine chars multibyte", "Aa1!ééééé", KindPasswordTooShort},
		{"twelve chars multibyte", "Aa1!éééé€€€€", ""},
		{"129 chars multibyte", "Aa1!" + strings.Repeat("é", 125), KindPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := policy.ValidatePassword(tt.password)
			if got := KindOf(err); got != tt.wantKind {
				t.Errorf("ValidatePassword(%q) kind = %q, want %q (err: %v)", tt.password, got, tt.wantKind, err)
			}
		})
	}
}

func TestValidatePassword_CharacterClasses(t *testing.T) {
	t.Parallel()

	policy := DefaultPolicy()

	tests := []struct {
		name     string
		password string
		wantMsg  string
	}{
		{"no special char", "Abcdef123456", "special character"},
		{"no digit", "Abcdefghijk!", "digit"},
		{"no uppercase", "abcdef12345!", "uppercase"},
		{"no lowercase", "ABCDEF12345!", "lowercase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := policy.ValidatePassword(tt.password)
			if KindOf(err) != KindPasswordPolicyViolation {
				t.Fatalf("expected PASSWORD_POLICY_VIOLATION, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected message naming %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestValidatePassword_MessageNamesFullSpecialSet(t *testing.T) {
	t.Parallel()

	// The message is the caller's only guide to what counts as special, so
	// it must spell out the complete set.
	err := DefaultPolicy().ValidatePassword("Abcdef123456")
	if err == nil {
		t.Fatal("password without special char should be rejected")
	}
	if !strings.Contains(err.Error(), SpecialChars) {
		t.Errorf("message %q does not name the full special set %q", err.Error(), SpecialChars)
	}
}

func TestValidateUsername_CountsRunes(t *testing.T) {
	t.Parallel()

	policy := DefaultPolicy()
	if err := policy.ValidateUsername("éé"); KindOf(err) != KindUsernameTooShort {
		t.Errorf("two-rune username accepted: %v", err)
	}
	if err := policy.ValidateUsername("ééé"); err != nil {
		t.Errorf("three-rune username rejected: %v", err)
	}
}

func TestValidatePassword_AcceptsAllSpecialChars(t *testing.T) {
	t.Parallel()

	policy := DefaultPolicy()
	for _, r := range SpecialChars {
		password := "Abcdefgh1234" + string(r)
		if err := policy.ValidatePassword(password); err != nil {
			t.Errorf("password with special char %q rejected: %v", r, err)
		}
	}
}

func TestValidatePassword_ReportsAllFailuresTogether(t *testing.T) {
	t.Parallel()

	policy := DefaultPolicy()

	// Too short AND missing three classes: the kind reflects the length
	// failure, the message names every unmet requirement.
	err := policy.ValidatePassword("abc")
	if KindOf(err) != KindPasswordTooShort {
		t.Fatalf("expected PASSWORD_TOO_SHORT, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"at least 12 characters", "uppercase", "digit", "special character"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected message to name %q, got %q", want, msg)
		}
	}
	if strings.Contains(msg, "lowercase") {
		t.Errorf("lowercase requirement is met, should not be reported: %q", msg)
	}
}

func TestValidatePassword_SpecScenarios(t *testing.T) {
	t.Parallel()

	policy := DefaultPolicy()

	if err := policy.ValidatePassword("Abcdef123456"); err == nil {
		t.Error("password without special char should be rejected")
	}
	if err := policy.ValidatePassword("Abcdef123456!"); err != nil {
		t.Errorf("policy-valid password rejected: %v", err)
	}
}

func TestKindOf_NonCredentialError(t *testing.T) {
	t.Parallel()

	if got := KindOf(nil); got != "" {
		t.Errorf("KindOf(nil) = %q, want empty", got)
	}
}
