// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

package validation

import (
	"strings"
	"testing"
)

type loginPayload struct {
	Username string `validate:"required,min=3"`
	Password string `validate:"required"`
}

func TestValidateStruct_Passes(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&loginPayload{Username: "admin", Password: "x"})
	if err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestValidateStruct_CollectsAllFailures(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&loginPayload{Username: "ab", Password: ""})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Fields()) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %v", len(err.Fields()), err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "at least 3 characters") {
		t.Errorf("expected min-length message, got %q", msg)
	}
	if !strings.Contains(msg, "Password is required") {
		t.Errorf("expected required message, got %q", msg)
	}
}

func TestIsEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"a@b.com", true},
		{"user.name+tag@example.co.uk", true},
		{"not-an-email", false},
		{"missing@domain", false},
		{"@no-local.com", false},
		{"spaces in@local.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := IsEmail(tt.input); got != tt.want {
				t.Errorf("IsEmail(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
