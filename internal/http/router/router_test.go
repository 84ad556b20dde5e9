package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aanand-mishra/studentdb-api/internal/storage/sqlite"
	"github.com/aanand-mishra/studentdb-api/internal/types"
)

func newTestRouter(t *testing.T, staticDir string) http.Handler {
	t.Helper()

	store, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "students.db"))
	if err != nil {
		t.Fatalf("sqlite.New() err = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return New(store, zerolog.Nop(), Options{StaticDir: staticDir, AllowedOrigins: []string{"*"}})
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func create(t *testing.T, h http.Handler, req types.StudentRequest) int64 {
	t.Helper()

	rec := do(t, h, http.MethodPost, "/api/students", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	resp := decode[types.CreateResponse](t, rec)
	if !resp.Success {
		t.Fatalf("create success = false")
	}
	return resp.ID
}

func TestAliceScenario(t *testing.T) {
	h := newTestRouter(t, "")

	rec := do(t, h, http.MethodPost, "/api/students",
		`{"srn":"SRN001","name":"Alice","age":20,"dept":"CS","email":"a@x.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"success":true,"id":1}` {
		t.Fatalf("create body = %s", got)
	}

	rec = do(t, h, http.MethodGet, "/api/students/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	want := types.Student{ID: 1, SRN: "SRN001", Name: "Alice", Age: 20, Dept: "CS", Email: "a@x.com"}
	if got := decode[types.Student](t, rec); got != want {
		t.Fatalf("get = %+v, want %+v", got, want)
	}

	rec = do(t, h, http.MethodDelete, "/api/students/1", nil)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"success":true}` {
		t.Fatalf("delete = %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/students/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rec.Code)
	}
	if got := decode[map[string]string](t, rec); got["error"] != "Student not found" {
		t.Fatalf("get after delete error = %q", got["error"])
	}
}

func TestListAfterCreatesAndDeletes(t *testing.T) {
	h := newTestRouter(t, "")

	rec := do(t, h, http.MethodGet, "/api/students", nil)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty list = %d %s", rec.Code, rec.Body.String())
	}

	var ids []int64
	for _, srn := range []string{"S1", "S2", "S3", "S4", "S5"} {
		ids = append(ids, create(t, h, types.StudentRequest{SRN: srn, Name: "Student " + srn}))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Fatalf("ids not increasing: %v", ids)
		}
	}

	for _, id := range []int64{ids[0], ids[3]} {
		rec := do(t, h, http.MethodDelete, "/api/students/"+itoa(id), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("delete %d status = %d", id, rec.Code)
		}
	}

	list := decode[[]types.Student](t, do(t, h, http.MethodGet, "/api/students", nil))
	if len(list) != 3 {
		t.Fatalf("len(list) = %d, want 3", len(list))
	}
	wantOrder := []int64{ids[4], ids[2], ids[1]}
	for i, st := range list {
		if st.ID != wantOrder[i] {
			t.Fatalf("list[%d].ID = %d, want %d", i, st.ID, wantOrder[i])
		}
	}
}

func TestGetBySRN_CaseAndWhitespaceInsensitive(t *testing.T) {
	h := newTestRouter(t, "")
	id := create(t, h, types.StudentRequest{SRN: "AB12", Name: "Bob", Age: 19, Dept: "ME", Email: "bob@x.com"})

	for _, path := range []string{
		"/api/students/srn/AB12",
		"/api/students/srn/ab12",
		"/api/students/srn/%20ab12%20",
	} {
		rec := do(t, h, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d, body = %s", path, rec.Code, rec.Body.String())
		}
		if got := decode[types.Student](t, rec); got.ID != id || got.SRN != "AB12" {
			t.Fatalf("%s = %+v", path, got)
		}
	}

	rec := do(t, h, http.MethodGet, "/api/students/srn/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing srn status = %d", rec.Code)
	}
	if got := decode[map[string]string](t, rec); got["error"] != "SRN not found" {
		t.Fatalf("missing srn error = %q", got["error"])
	}
}

func TestUpdate(t *testing.T) {
	h := newTestRouter(t, "")
	id := create(t, h, types.StudentRequest{SRN: "U1", Name: "Before", Age: 18})

	upd := types.StudentRequest{SRN: "U1", Name: "After", Age: 19, Dept: "CS", Email: "after@x.com"}
	rec := do(t, h, http.MethodPut, "/api/students/"+itoa(id), upd)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"success":true}` {
		t.Fatalf("update = %d %s", rec.Code, rec.Body.String())
	}

	got := decode[types.Student](t, do(t, h, http.MethodGet, "/api/students/"+itoa(id), nil))
	want := types.Student{ID: id, SRN: "U1", Name: "After", Age: 19, Dept: "CS", Email: "after@x.com"}
	if got != want {
		t.Fatalf("after update = %+v, want %+v", got, want)
	}
}

func TestWritesToMissingIDSucceedWithoutSideEffects(t *testing.T) {
	h := newTestRouter(t, "")
	create(t, h, types.StudentRequest{SRN: "K1", Name: "Keep"})

	before := do(t, h, http.MethodGet, "/api/students", nil).Body.String()

	rec := do(t, h, http.MethodPut, "/api/students/999", types.StudentRequest{SRN: "Z9", Name: "Ghost"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update missing status = %d, body = %s", rec.Code, rec.Body.String())
	}
	rec = do(t, h, http.MethodDelete, "/api/students/999", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete missing status = %d", rec.Code)
	}

	if after := do(t, h, http.MethodGet, "/api/students", nil).Body.String(); after != before {
		t.Fatalf("list changed:\nbefore %s\nafter  %s", before, after)
	}
}

func TestWriteFailuresAreBadRequest(t *testing.T) {
	h := newTestRouter(t, "")
	create(t, h, types.StudentRequest{SRN: "DUP", Name: "First"})

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		errHas string
	}{
		{"duplicate srn", http.MethodPost, "/api/students", types.StudentRequest{SRN: "DUP", Name: "Second"}, ""},
		{"empty body", http.MethodPost, "/api/students", nil, "request body is empty"},
		{"malformed json", http.MethodPost, "/api/students", `{"srn":`, ""},
		{"wrong type", http.MethodPost, "/api/students", `{"srn":"X","name":"Y","age":"old"}`, ""},
		{"missing required", http.MethodPost, "/api/students", `{"age":20}`, "field srn is required, field name is required"},
		{"bad email", http.MethodPost, "/api/students", `{"srn":"E1","name":"E","email":"nope"}`, "field email must be a valid email address"},
		{"negative age", http.MethodPost, "/api/students", `{"srn":"E2","name":"E","age":-1}`, "field age must be at least 0"},
		{"update bad id", http.MethodPut, "/api/students/abc", types.StudentRequest{SRN: "X", Name: "Y"}, "invalid id"},
		{"delete bad id", http.MethodDelete, "/api/students/abc", nil, "invalid id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			got := decode[map[string]string](t, rec)
			if got["error"] == "" {
				t.Fatalf("missing error message: %s", rec.Body.String())
			}
			if tt.errHas != "" && !strings.Contains(got["error"], tt.errHas) {
				t.Fatalf("error = %q, want it to contain %q", got["error"], tt.errHas)
			}
		})
	}
}

func TestGetByID_NonIntegerIsNotFound(t *testing.T) {
	h := newTestRouter(t, "")

	rec := do(t, h, http.MethodGet, "/api/students/abc", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, "")

	rec := do(t, h, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[map[string]any](t, rec); got["status"] != "healthy" {
		t.Fatalf("status field = %v", got["status"])
	}
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>students</h1>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	h := newTestRouter(t, dir)

	rec := do(t, h, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "<h1>students</h1>") {
		t.Fatalf("static root = %d %q", rec.Code, rec.Body.String())
	}

	// API routes still win over the file server.
	rec = do(t, h, http.MethodGet, "/api/students", nil)
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("api behind static = %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodOptions, "/api/students", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
