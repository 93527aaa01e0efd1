// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

package api

import (
	"net/http"

	"github.com/xstar97/guardian/internal/credential"
)

// statusForKind maps a credential failure to its HTTP status. Validation
// failures are the caller's fault; hashing and storage failures are ours.
func statusForKind(kind credential.Kind) int {
	switch kind {
	case credential.KindUsernameTooShort,
		credential.KindInvalidEmailFormat,
		credential.KindPasswordTooShort,
		credential.KindPasswordTooLong,
		credential.KindPasswordPolicyViolation,
		credential.KindPasswordMismatch:
		return http.StatusBadRequest
	case credential.KindUserNotFound:
		return http.StatusNotFound
	case credential.KindStorageUnavailable:
		return http.StatusServiceUnavailable
	case credential.KindHashingFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// respondCredentialError translates a credential error into the API envelope,
// preserving the machine-readable failure kind as the error code.
func respondCredentialError(w http.ResponseWriter, err error) {
	kind := credential.KindOf(err)
	if kind == "" {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", err)
		return
	}
	respondError(w, statusForKind(kind), string(kind), err.Error(), nil)
}
