package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkminder/linkminder/internal/collection"
	"github.com/linkminder/linkminder/internal/httpserver/deps"
)

// SaveLink captures one tab into the collection.
func SaveLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req collection.SaveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid save request body")
			return
		}

		record, err := d.Collection.Save(r.Context(), req)
		if err != nil {
			writeCollectionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

// ListLinks returns the records visible in the requested scope,
// newest-first. ?archived=true|false narrows to one side of the
// archive flag; absent means both.
func ListLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFromQuery(w, r, d)
		if !ok {
			return
		}

		links := d.Collection.List(scope)
		switch r.URL.Query().Get("archived") {
		case "":
		case "true", "false":
			wantArchived := r.URL.Query().Get("archived") == "true"
			filtered := links[:0:0]
			for _, link := range links {
				if link.Archived == wantArchived {
					filtered = append(filtered, link)
				}
			}
			links = filtered
		default:
			writeError(w, http.StatusBadRequest, "archived must be true or false")
			return
		}
		writeJSON(w, http.StatusOK, links)
	}
}

// DeleteLink removes one record permanently.
func DeleteLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Collection.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeCollectionError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ToggleArchive flips the archived flag on one record.
func ToggleArchive(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := d.Collection.ToggleArchive(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeCollectionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

// TogglePrivate flips the private flag on one record.
func TogglePrivate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := d.Collection.TogglePrivate(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeCollectionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

type noteRequest struct {
	Note string `json:"note"`
}

// UpdateNote replaces the note on one record.
func UpdateNote(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req noteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid note body")
			return
		}
		record, err := d.Collection.UpdateNote(r.Context(), chi.URLParam(r, "id"), req.Note)
		if err != nil {
			writeCollectionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

// Tree returns the scoped records grouped by tag, time, domain or
// cluster.
func Tree(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFromQuery(w, r, d)
		if !ok {
			return
		}
		by := r.URL.Query().Get("by")
		switch by {
		case "", collection.GroupByTag:
			by = collection.GroupByTag
		case collection.GroupByTime, collection.GroupByDomain, collection.GroupByCluster:
		default:
			writeError(w, http.StatusBadRequest, "by must be tag, time, domain or cluster")
			return
		}
		writeJSON(w, http.StatusOK, d.Collection.Tree(scope, by))
	}
}

// Graph returns the cluster relation view for a scope.
func Graph(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFromQuery(w, r, d)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, d.Collection.ClusterGraph(scope))
	}
}
