package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/linkminder/linkminder/internal/classify"
	"github.com/linkminder/linkminder/internal/collection"
	"github.com/linkminder/linkminder/internal/domain"
	"github.com/linkminder/linkminder/internal/httpserver/deps"
	"github.com/linkminder/linkminder/internal/index"
	"github.com/linkminder/linkminder/internal/logger"
)

type memStore struct {
	links []*domain.LinkRecord
	byURL map[string]string
	rules []domain.Rule
	pin   string
}

func (s *memStore) ListLinks(ctx context.Context) ([]*domain.LinkRecord, error) {
	out := make([]*domain.LinkRecord, len(s.links))
	copy(out, s.links)
	return out, nil
}

func (s *memStore) FindLinkByURL(ctx context.Context, url string) (*domain.LinkRecord, error) {
	id, ok := s.byURL[url]
	if !ok {
		return nil, nil
	}
	for _, link := range s.links {
		if link.ID == id {
			return link, nil
		}
	}
	return nil, nil
}

func (s *memStore) InsertLink(ctx context.Context, record *domain.LinkRecord) error {
	s.links = append([]*domain.LinkRecord{record}, s.links...)
	s.byURL[record.URL] = record.ID
	return nil
}

func (s *memStore) UpdateLink(ctx context.Context, record *domain.LinkRecord) error {
	for i, link := range s.links {
		if link.ID == record.ID {
			s.links[i] = record
			return nil
		}
	}
	return nil
}

func (s *memStore) DeleteLink(ctx context.Context, id string) error {
	for i, link := range s.links {
		if link.ID == id {
			delete(s.byURL, link.URL)
			s.links = append(s.links[:i], s.links[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *memStore) ListRules(ctx context.Context) ([]domain.Rule, error) {
	return append([]domain.Rule{}, s.rules...), nil
}

func (s *memStore) UpsertRule(ctx context.Context, rule *domain.Rule) error {
	s.rules = append(s.rules, *rule)
	return nil
}

func (s *memStore) DeleteRule(ctx context.Context, id string) error { return nil }

func (s *memStore) GetPin(ctx context.Context) (string, error) { return s.pin, nil }

func (s *memStore) SetPin(ctx context.Context, pin string) error {
	s.pin = pin
	return nil
}

func testDeps(t *testing.T) deps.Deps {
	t.Helper()
	store := &memStore{byURL: make(map[string]string)}
	log := logger.New("error", false)
	idx := index.NewMemoryIndex()
	coll := collection.New(store, store, store, idx, classify.NewClassifier(log), log)
	return deps.Deps{
		Logger:      log,
		StartTime:   time.Now(),
		TimeNow:     time.Now,
		MemoryIndex: idx,
		Collection:  coll,
	}
}

func testRouter(d deps.Deps) chi.Router {
	r := chi.NewRouter()
	r.Post("/api/links", SaveLink(d))
	r.Get("/api/links", ListLinks(d))
	r.Get("/api/links/tree", Tree(d))
	r.Delete("/api/links/{id}", DeleteLink(d))
	r.Put("/api/links/{id}/note", UpdateNote(d))
	r.Put("/api/pin", SetPin(d))
	r.Post("/api/pin/verify", VerifyPin(d))
	r.Get("/api/export", Export(d))
	r.Post("/api/import", Import(d))
	return r
}

func doJSON(t *testing.T, r chi.Router, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSaveLinkEndpoint(t *testing.T) {
	r := testRouter(testDeps(t))

	rec := doJSON(t, r, http.MethodPost, "/api/links", `{"url":"https://github.com/foo/bar","title":"foo/bar"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var record domain.LinkRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if record.Category != domain.CategoryDev {
		t.Errorf("Category = %q", record.Category)
	}
	if record.ID == "" {
		t.Error("response record has no ID")
	}
}

func TestSaveLinkEndpointMakePrivateField(t *testing.T) {
	r := testRouter(testDeps(t))

	rec := doJSON(t, r, http.MethodPost, "/api/links", `{"url":"https://diary.example/x","makePrivate":true}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var record domain.LinkRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !record.Private {
		t.Error("makePrivate was not honored")
	}
}

func TestSaveLinkEndpointRejections(t *testing.T) {
	r := testRouter(testDeps(t))

	if rec := doJSON(t, r, http.MethodPost, "/api/links", `not json`, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("bad body status = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, r, http.MethodPost, "/api/links", `{"url":"chrome://settings"}`, nil); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("internal URL status = %d, want 422", rec.Code)
	}
}

func TestListLinksPinGate(t *testing.T) {
	d := testDeps(t)
	r := testRouter(d)
	ctx := context.Background()

	if err := d.Collection.SetPin(ctx, "1234"); err != nil {
		t.Fatalf("SetPin: %v", err)
	}
	if _, err := d.Collection.Save(ctx, collection.SaveRequest{URL: "https://secret.example/x", Private: true}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Public scope needs no PIN and hides the private record.
	rec := doJSON(t, r, http.MethodGet, "/api/links", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("public list status = %d", rec.Code)
	}
	if body := rec.Body.String(); strings.Contains(body, "secret.example") {
		t.Error("private record leaked into public listing")
	}

	// Private scope without the header is refused.
	if rec := doJSON(t, r, http.MethodGet, "/api/links?scope=private", "", nil); rec.Code != http.StatusForbidden {
		t.Errorf("ungated private list status = %d, want 403", rec.Code)
	}
	// Wrong PIN is refused.
	if rec := doJSON(t, r, http.MethodGet, "/api/links?scope=private", "", map[string]string{"X-Private-Pin": "0000"}); rec.Code != http.StatusForbidden {
		t.Errorf("wrong PIN status = %d, want 403", rec.Code)
	}
	// Correct PIN unlocks.
	rec = doJSON(t, r, http.MethodGet, "/api/links?scope=private", "", map[string]string{"X-Private-Pin": "1234"})
	if rec.Code != http.StatusOK {
		t.Fatalf("gated private list status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "secret.example") {
		t.Error("private record missing from unlocked listing")
	}
}

func TestUpdateNoteEndpointNotFound(t *testing.T) {
	r := testRouter(testDeps(t))

	rec := doJSON(t, r, http.MethodPut, "/api/links/missing/note", `{"note":"x"}`, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestTreeEndpointValidation(t *testing.T) {
	r := testRouter(testDeps(t))

	if rec := doJSON(t, r, http.MethodGet, "/api/links/tree?by=color", "", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("bad grouping status = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, r, http.MethodGet, "/api/links/tree?scope=everything", "", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("bad scope status = %d, want 400", rec.Code)
	}
}

func TestImportEndpointBadPayload(t *testing.T) {
	r := testRouter(testDeps(t))

	if rec := doJSON(t, r, http.MethodPost, "/api/import", `not json at all`, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("garbage import status = %d, want 400", rec.Code)
	}
}

func TestSetPinRequiresCurrentPin(t *testing.T) {
	d := testDeps(t)
	r := testRouter(d)

	if rec := doJSON(t, r, http.MethodPut, "/api/pin", `{"pin":"1111"}`, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("initial SetPin status = %d", rec.Code)
	}
	// Rotating without the current PIN fails.
	if rec := doJSON(t, r, http.MethodPut, "/api/pin", `{"pin":"2222"}`, nil); rec.Code != http.StatusForbidden {
		t.Errorf("unauthenticated rotation status = %d, want 403", rec.Code)
	}
	// Rotating with the current PIN succeeds.
	rec := doJSON(t, r, http.MethodPut, "/api/pin", `{"pin":"2222"}`, map[string]string{"X-Private-Pin": "1111"})
	if rec.Code != http.StatusNoContent {
		t.Errorf("authenticated rotation status = %d", rec.Code)
	}
	// And the new PIN verifies.
	rec = doJSON(t, r, http.MethodPost, "/api/pin/verify", `{"pin":"2222"}`, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "true") {
		t.Errorf("verify after rotation = %d %s", rec.Code, rec.Body.String())
	}
}
