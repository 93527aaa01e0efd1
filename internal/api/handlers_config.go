// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/xstar97/guardian/internal/proxy"
)

// ConfigGet proxies the upstream configuration document to the frontend.
// An unreachable media server answers 502 so the UI can distinguish "Plex is
// down" from a Guardian fault.
func (h *Handler) ConfigGet(w http.ResponseWriter, r *http.Request) {
	if h.upstream == nil {
		respondError(w, http.StatusBadGateway, "UPSTREAM_UNREACHABLE", "No upstream media server configured", nil)
		return
	}

	doc, err := h.upstream.FetchConfig(r.Context())
	if err != nil {
		h.respondUpstreamError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, json.RawMessage(doc))
}

// ConfigPut forwards a replacement configuration document upstream. The body
// must be valid JSON; Guardian does not interpret its contents.
func (h *Handler) ConfigPut(w http.ResponseWriter, r *http.Request) {
	if h.upstream == nil {
		respondError(w, http.StatusBadGateway, "UPSTREAM_UNREACHABLE", "No upstream media server configured", nil)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Failed to read request body", err)
		return
	}
	if !json.Valid(body) {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Configuration document must be valid JSON", nil)
		return
	}

	if err := h.upstream.UpdateConfig(r.Context(), body); err != nil {
		h.respondUpstreamError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"status": "applied"})
}

func (h *Handler) respondUpstreamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, proxy.ErrUpstreamUnreachable), errors.Is(err, proxy.ErrNotConfigured):
		respondError(w, http.StatusBadGateway, "UPSTREAM_UNREACHABLE", "Upstream media server unreachable", err)
	default:
		respondError(w, http.StatusInternalServerError, "UPSTREAM_ERROR", "Upstream request failed", err)
	}
}
