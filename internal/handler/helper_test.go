package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tag_tracker_go/internal/service"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doReq(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestMapServiceError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
		msg    string
	}{
		{"duplicate folder", service.ErrFolderAlreadyExists, http.StatusBadRequest, "validation", "A folder with that name already exists"},
		{"wrapped invalid input", fmt.Errorf("%w: scan_date", service.ErrInvalidInput), http.StatusBadRequest, "validation", "invalid input: scan_date"},
		{"folder not found", service.ErrFolderNotFound, http.StatusNotFound, "not_found", "Folder not found"},
		{"tag not found", service.ErrTagNotFound, http.StatusNotFound, "not_found", "Tag not found"},
		{"no image", service.ErrImageNotFound, http.StatusNotFound, "not_found", "Tag has no stored image"},
		{"upstream", fmt.Errorf("%w: timeout", service.ErrExtractionFailed), http.StatusInternalServerError, "upstream_failure", "extraction failed: timeout"},
		{"storage", errors.New("disk I/O error"), http.StatusInternalServerError, "storage_failure", "disk I/O error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, kind, msg := mapServiceError(tc.err)
			if status != tc.status || kind != tc.kind || msg != tc.msg {
				t.Fatalf("got (%d, %s, %q), want (%d, %s, %q)", status, kind, msg, tc.status, tc.kind, tc.msg)
			}
		})
	}
}

func TestParsePositiveID(t *testing.T) {
	cases := map[string]bool{"1": true, " 42 ": true, "0": false, "-1": false, "abc": false, "": false, "1.5": false}
	for raw, ok := range cases {
		if _, got := parsePositiveID(raw); got != ok {
			t.Fatalf("parsePositiveID(%q) ok = %v, want %v", raw, got, ok)
		}
	}
}
