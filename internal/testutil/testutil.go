package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// FakeSheet is an in-memory stand-in for the spreadsheet REST endpoint:
// GET returns the configured rows as a JSON array, POST records the
// submitted body. Failure modes can be forced per method.
type FakeSheet struct {
	*httptest.Server

	mu        sync.Mutex
	rows      []map[string]string
	submitted [][]byte

	GetStatus  int    // non-zero forces this status on GET
	PostStatus int    // non-zero forces this status on POST
	GetBody    string // non-empty overrides the JSON rows verbatim
}

func NewFakeSheet(rows ...map[string]string) *FakeSheet {
	fs := &FakeSheet{rows: rows}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.handle))
	return fs
}

func (fs *FakeSheet) handle(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	switch r.Method {
	case http.MethodGet:
		if fs.GetStatus != 0 {
			w.WriteHeader(fs.GetStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if fs.GetBody != "" {
			_, _ = io.WriteString(w, fs.GetBody)
			return
		}
		rows := fs.rows
		if rows == nil {
			rows = []map[string]string{}
		}
		_ = json.NewEncoder(w).Encode(rows)
	case http.MethodPost:
		body, _ := io.ReadAll(r.Body)
		fs.submitted = append(fs.submitted, body)
		if fs.PostStatus != 0 {
			w.WriteHeader(fs.PostStatus)
			return
		}
		w.WriteHeader(http.StatusCreated)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Append adds a row that subsequent GETs will include.
func (fs *FakeSheet) Append(row map[string]string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.rows = append(fs.rows, row)
}

// Submitted returns the raw bodies of every POST received so far.
func (fs *FakeSheet) Submitted() [][]byte {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([][]byte, len(fs.submitted))
	copy(out, fs.submitted)
	return out
}
