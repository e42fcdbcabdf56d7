// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/0marJim/flyercatcher/internal/testutil"
)

// testUploadHandler is testHandler with the uploads dir exposed.
func testUploadHandler(t *testing.T) (*Handler, string) {
	t.Helper()

	db := testutil.TestDB(t)
	dir := t.TempDir()
	h := NewHandler(db, dir).WithClock(func() time.Time { return fixedNow })
	return h, dir
}

func doMultipart(t *testing.T, h *Handler, fields map[string]string, imageName string, imageData []byte) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartBody(t, fields, imageName, imageData)
	req := httptest.NewRequest(http.MethodPost, "/api?path=events", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	h.Dispatch(w, req)
	return w
}

func validFormFields() map[string]string {
	return map[string]string{
		"title":      "Street Food Festival",
		"location":   "Market Square",
		"event_date": "2025-08-09 11:00:00",
		"category":   "food",
	}
}

func uploadedFiles(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading uploads dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestCreateEventWithImage(t *testing.T) {
	h, dir := testUploadHandler(t)

	w := doMultipart(t, h, validFormFields(), "festival.jpg", jpegBytes(t))
	assertStatusCode(t, w, http.StatusCreated)

	created := decodeEvent(t, w)
	if created.ImageGradient != "" {
		t.Errorf("expected no gradient on an image event, got %q", created.ImageGradient)
	}
	if !strings.HasPrefix(created.ImageURL, "/uploads/") {
		t.Fatalf("expected an /uploads/ image url, got %q", created.ImageURL)
	}

	files := uploadedFiles(t, dir)
	if len(files) != 1 {
		t.Fatalf("expected 1 uploaded file, got %v", files)
	}
	if got := filepath.Base(created.ImageURL); got != files[0] {
		t.Errorf("image url %q does not match stored file %q", created.ImageURL, files[0])
	}
}

func TestCreateEventWithInvalidImage(t *testing.T) {
	h, dir := testUploadHandler(t)

	w := doMultipart(t, h, validFormFields(), "notes.pdf", []byte("%PDF-1.4 not an image"))
	assertStatusCode(t, w, http.StatusBadRequest)
	assertErrorResponse(t, w, "Invalid image type")

	if files := uploadedFiles(t, dir); len(files) != 0 {
		t.Errorf("expected no files written, got %v", files)
	}

	// The failed upload must not leave a row behind either.
	lw := doJSON(t, h, http.MethodGet, "/api?path=events", nil)
	if got := len(decodeEvents(t, lw)); got != 0 {
		t.Errorf("expected no events created, got %d", got)
	}
}

func TestCreateEventMultipartMissingImage(t *testing.T) {
	h, _ := testUploadHandler(t)

	w := doMultipart(t, h, validFormFields(), "", nil)
	assertStatusCode(t, w, http.StatusBadRequest)
	assertErrorResponse(t, w, "No valid image uploaded")
}

func TestCreateEventMultipartMissingTitleRemovesFile(t *testing.T) {
	h, dir := testUploadHandler(t)

	fields := validFormFields()
	delete(fields, "title")

	w := doMultipart(t, h, fields, "festival.jpg", jpegBytes(t))
	assertStatusCode(t, w, http.StatusBadRequest)
	assertErrorResponse(t, w, "Missing required field: title")

	if files := uploadedFiles(t, dir); len(files) != 0 {
		t.Errorf("expected the orphaned upload removed, got %v", files)
	}
}
