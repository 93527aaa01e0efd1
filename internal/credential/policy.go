// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

// Package credential implements Guardian's credential policy: the structural
// and complexity rules a username/email/password tuple must satisfy before
// it may become (or update) an admin credential, plus the provisioning
// operations that turn an accepted password into a stored bcrypt hash.
//
// The same package backs both enforcement points — the inbound API surface
// and the offline password-reset tool — so the rules cannot drift between
// them.
package credential

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/xstar97/guardian/internal/validation"
)

// SpecialChars is the fixed set of characters that satisfy the
// special-character requirement.
const SpecialChars = `!@#$%^&*()_+-=[]{};:'",./<>?\|~`

// Policy defines the credential acceptance rules. The zero value is not
// usable; construct with DefaultPolicy.
type Policy struct {
	// MinUsernameLength is the minimum username length.
	MinUsernameLength int

	// MinPasswordLength and MaxPasswordLength bound the password length,
	// inclusive on both ends.
	MinPasswordLength int
	MaxPasswordLength int
}

// DefaultPolicy returns the production credential policy: usernames of 3+
// characters, passwords of 12-128 characters covering all four character
// classes (lowercase, uppercase, digit, special).
func DefaultPolicy() Policy {
	return Policy{
		MinUsernameLength: 3,
		MinPasswordLength: 12,
		MaxPasswordLength: 128,
	}
}

// ValidateUsername accepts any username of at least MinUsernameLength
// characters. Rejections carry KindUsernameTooShort.
func (p Policy) ValidateUsername(username string) error {
	if n := utf8.RuneCountInString(username); n < p.MinUsernameLength {
		return newError(KindUsernameTooShort,
			fmt.Sprintf("username must be at least %d characters (got %d)", p.MinUsernameLength, n))
	}
	return nil
}

// ValidateEmail accepts an absent or empty email (email is optional) and
// otherwise requires a syntactically valid address: local-part "@" domain
// with at least one dot in the domain. Rejections carry
// KindInvalidEmailFormat.
func (p Policy) ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if !validation.IsEmail(email) {
		return newError(KindInvalidEmailFormat,
			fmt.Sprintf("%q is not a valid email address", email))
	}
	return nil
}

// charClasses holds the results of character-class analysis.
type charClasses struct {
	hasLower   bool
	hasUpper   bool
	hasDigit   bool
	hasSpecial bool
}

// analyzeCharClasses reports which required character classes are present.
// The special class is the fixed SpecialChars set, not general punctuation.
func analyzeCharClasses(password string) charClasses {
	var cc charClasses
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			cc.hasLower = true
		case unicode.IsUpper(r):
			cc.hasUpper = true
		case unicode.IsDigit(r):
			cc.hasDigit = true
		case strings.ContainsRune(SpecialChars, r):
			cc.hasSpecial = true
		}
	}
	return cc
}

// ValidatePassword checks the password against the policy: length within
// [MinPasswordLength, MaxPasswordLength] and at least one character from
// each of the four classes. All unmet requirements are reported together in
// one message. The kind is KindPasswordTooShort or KindPasswordTooLong when
// the length bound fails, KindPasswordPolicyViolation otherwise.
func (p Policy) ValidatePassword(password string) error {
	var problems []string
	kind := KindPasswordPolicyViolation

	// Length bounds count characters, not bytes, so multibyte passwords are
	// measured the way the user typed them.
	switch n := utf8.RuneCountInString(password); {
	case n < p.MinPasswordLength:
		kind = KindPasswordTooShort
		problems = append(problems,
			fmt.Sprintf("password must be at least %d characters (got %d)", p.MinPasswordLength, n))
	case n > p.MaxPasswordLength:
		kind = KindPasswordTooLong
		problems = append(problems,
			fmt.Sprintf("password must be at most %d characters (got %d)", p.MaxPasswordLength, n))
	}

	cc := analyzeCharClasses(password)
	if !cc.hasLower {
		problems = append(problems, "password must contain at least one lowercase letter")
	}
	if !cc.hasUpper {
		problems = append(problems, "password must contain at least one uppercase letter")
	}
	if !cc.hasDigit {
		problems = append(problems, "password must contain at least one digit")
	}
	if !cc.hasSpecial {
		problems = append(problems,
			fmt.Sprintf("password must contain at least one special character (%s)", SpecialChars))
	}

	if len(problems) > 0 {
		return newError(kind, strings.Join(problems, "; "))
	}
	return nil
}
