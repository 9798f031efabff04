package handlers

import (
	"io"
	"net/http"

	"github.com/linkminder/linkminder/internal/httpserver/deps"
)

// maxImportBytes bounds how much of an import payload gets read.
const maxImportBytes = 32 << 20

// Export returns the scoped collection as a portable JSON document.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFromQuery(w, r, d)
		if !ok {
			return
		}
		w.Header().Set("Content-Disposition", `attachment; filename="linkminder-export.json"`)
		writeJSON(w, http.StatusOK, d.Collection.Export(scope))
	}
}

// Import merges an exported document into the collection. With
// ?private=true every imported record lands in the private view, which
// requires the PIN.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		private := r.URL.Query().Get("private") == "true"
		if private {
			if err := d.Collection.RequirePin(r.Context(), r.Header.Get(pinHeader)); err != nil {
				writeCollectionError(w, err)
				return
			}
		}

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read import payload")
			return
		}

		summary, err := d.Collection.Import(r.Context(), payload, private)
		if err != nil {
			writeCollectionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}
