// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

package credential

import "errors"

// Kind categorizes a credential operation failure. Validation kinds mean the
// input is bad and retrying the same input will never succeed; infrastructure
// kinds (HashingFailed, StorageUnavailable) are distinct so callers can
// decide whether a retry is worthwhile.
type Kind string

const (
	KindUsernameTooShort        Kind = "USERNAME_TOO_SHORT"
	KindInvalidEmailFormat      Kind = "INVALID_EMAIL_FORMAT"
	KindPasswordTooShort        Kind = "PASSWORD_TOO_SHORT"
	KindPasswordTooLong         Kind = "PASSWORD_TOO_LONG"
	KindPasswordPolicyViolation Kind = "PASSWORD_POLICY_VIOLATION"
	KindPasswordMismatch        Kind = "PASSWORD_MISMATCH"
	KindUserNotFound            Kind = "USER_NOT_FOUND"
	KindHashingFailed           Kind = "HASHING_FAILED"
	KindStorageUnavailable      Kind = "STORAGE_UNAVAILABLE"
)

// Error is a categorized credential failure. The message is safe to surface
// to the caller; it names the unmet requirement(s) without echoing secrets.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying infrastructure error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func wrapError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf returns the Kind carried by err, or the empty Kind when err is not
// a credential error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}
