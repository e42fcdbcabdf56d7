// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"github.com/0marJim/flyercatcher/internal/testutil"
)

// fixedNow is the wall clock every test handler runs on.
var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// testHandler creates a handler on a migrated temp database with a frozen
// clock and an uploads dir under the test's temp dir.
func testHandler(t *testing.T) *Handler {
	t.Helper()

	db := testutil.TestDB(t)
	h := NewHandler(db, t.TempDir())
	return h.WithClock(func() time.Time { return fixedNow })
}

// doJSON runs a JSON request through Dispatch and records the response.
func doJSON(t *testing.T, h *Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.Dispatch(w, req)
	return w
}

// validJSONEvent is a create body that passes validation.
func validJSONEvent() map[string]string {
	return map[string]string{
		"title":      "Summer Jazz Night",
		"location":   "Riverside Park",
		"event_date": "2025-07-04 19:30:00",
		"category":   "music",
	}
}

// createEvent inserts an event through the API and returns its response.
func createEvent(t *testing.T, h *Handler, body map[string]string) EventResponse {
	t.Helper()

	w := doJSON(t, h, http.MethodPost, "/api?path=events", body)
	assertStatusCode(t, w, http.StatusCreated)
	return decodeEvent(t, w)
}

// decodeEvent unmarshals a single-event response body.
func decodeEvent(t *testing.T, w *httptest.ResponseRecorder) EventResponse {
	t.Helper()

	var resp EventResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return resp
}

// decodeEvents unmarshals a list response body.
func decodeEvents(t *testing.T, w *httptest.ResponseRecorder) []EventResponse {
	t.Helper()

	var resp []EventResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return resp
}

// decodeInto unmarshals a response body into the given value.
func decodeInto(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
}

// assertStatusCode checks that the response has the expected status code.
func assertStatusCode(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("expected status %d, got %d: %s", expected, w.Code, w.Body.String())
	}
}

// assertErrorResponse unmarshals and validates an error response body.
func assertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != expectedMessage {
		t.Errorf("expected error %q, got %q", expectedMessage, resp.Error)
	}
}

// jpegBytes renders a small solid JPEG for upload tests.
func jpegBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encoding test jpeg: %v", err)
	}
	return buf.Bytes()
}

// multipartBody builds a multipart form with the given fields and an
// optional image part.
func multipartBody(t *testing.T, fields map[string]string, imageName string, imageData []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("writing form field: %v", err)
		}
	}
	if imageName != "" {
		// CreateFormFile declares octet-stream; browsers send the real
		// type, so build the part header by hand.
		ph := textproto.MIMEHeader{}
		ph.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="image"; filename=%q`, imageName))
		if ct := mime.TypeByExtension(filepath.Ext(imageName)); ct != "" {
			ph.Set("Content-Type", ct)
		}
		part, err := mw.CreatePart(ph)
		if err != nil {
			t.Fatalf("creating form file: %v", err)
		}
		if _, err := part.Write(imageData); err != nil {
			t.Fatalf("writing form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}
