package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linkminder/linkminder/internal/collection"
	"github.com/linkminder/linkminder/internal/httpserver/deps"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeCollectionError maps the collection's sentinel errors onto HTTP
// statuses; anything unrecognized is a 500.
func writeCollectionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, collection.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, collection.ErrUnsavableTab):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, collection.ErrPinMismatch):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, collection.ErrInvalidRule), errors.Is(err, collection.ErrBadImport):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// pinHeader carries the private-view PIN on requests that need it.
const pinHeader = "X-Private-Pin"

// scopeFromQuery reads ?scope= and, for anything beyond the public
// view, checks the PIN header. Callers bail out when ok is false; the
// response has already been written.
func scopeFromQuery(w http.ResponseWriter, r *http.Request, d deps.Deps) (collection.Scope, bool) {
	scope := collection.ScopePublic
	switch r.URL.Query().Get("scope") {
	case "", "public":
	case "private":
		scope = collection.ScopePrivate
	case "all":
		scope = collection.ScopeAll
	default:
		writeError(w, http.StatusBadRequest, "scope must be public, private or all")
		return "", false
	}

	if scope != collection.ScopePublic {
		if err := d.Collection.RequirePin(r.Context(), r.Header.Get(pinHeader)); err != nil {
			writeCollectionError(w, err)
			return "", false
		}
	}
	return scope, true
}
