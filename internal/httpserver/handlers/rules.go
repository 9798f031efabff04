package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkminder/linkminder/internal/classify"
	"github.com/linkminder/linkminder/internal/domain"
	"github.com/linkminder/linkminder/internal/httpserver/deps"
)

type rulesResponse struct {
	Custom  []domain.Rule `json:"custom"`
	Default []domain.Rule `json:"default"`
}

// ListRules returns user-defined rules in declaration order plus the
// built-in defaults they are evaluated against.
func ListRules(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, rulesResponse{
			Custom:  d.Collection.CustomRules(),
			Default: classify.DefaultRules,
		})
	}
}

// UpsertRule creates or replaces a user-defined rule.
func UpsertRule(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rule domain.Rule
		if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
			writeError(w, http.StatusBadRequest, "invalid rule body")
			return
		}
		saved, err := d.Collection.UpsertRule(r.Context(), &rule)
		if err != nil {
			writeCollectionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, saved)
	}
}

// UpdateRule replaces the rule at the path ID regardless of any id in
// the body.
func UpdateRule(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rule domain.Rule
		if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
			writeError(w, http.StatusBadRequest, "invalid rule body")
			return
		}
		rule.ID = chi.URLParam(r, "id")
		saved, err := d.Collection.UpsertRule(r.Context(), &rule)
		if err != nil {
			writeCollectionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, saved)
	}
}

// DeleteRule removes a user-defined rule.
func DeleteRule(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Collection.DeleteRule(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeCollectionError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
