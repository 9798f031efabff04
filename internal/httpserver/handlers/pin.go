package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/linkminder/linkminder/internal/httpserver/deps"
)

type pinStatusResponse struct {
	HasPin bool `json:"hasPin"`
}

type pinRequest struct {
	Pin string `json:"pin"`
}

type pinVerifyResponse struct {
	Valid bool `json:"valid"`
}

// PinStatus reports whether a private-view PIN is configured. The PIN
// itself is never returned.
func PinStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hasPin, err := d.Collection.HasPin(r.Context())
		if err != nil {
			writeCollectionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pinStatusResponse{HasPin: hasPin})
	}
}

// SetPin stores a new PIN; an empty PIN clears the gate. Changing an
// existing PIN requires the current one in the PIN header.
func SetPin(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid pin body")
			return
		}

		hasPin, err := d.Collection.HasPin(r.Context())
		if err != nil {
			writeCollectionError(w, err)
			return
		}
		if hasPin {
			if err := d.Collection.RequirePin(r.Context(), r.Header.Get(pinHeader)); err != nil {
				writeCollectionError(w, err)
				return
			}
		}

		if err := d.Collection.SetPin(r.Context(), req.Pin); err != nil {
			writeCollectionError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// VerifyPin checks a PIN attempt. A plain false, not an error; the
// client decides how to react.
func VerifyPin(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid pin body")
			return
		}
		valid, err := d.Collection.VerifyPin(r.Context(), req.Pin)
		if err != nil {
			writeCollectionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pinVerifyResponse{Valid: valid})
	}
}
