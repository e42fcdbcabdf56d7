// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/0marJim/flyercatcher/internal/testutil"
	"github.com/0marJim/flyercatcher/internal/version"
)

func TestHealthHealthy(t *testing.T) {
	db := testutil.TestDB(t)
	h := NewHealthHandler(db, version.Info{Version: "v1.2.3"})

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var status HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if status.Status != "healthy" {
		t.Errorf("expected status 'healthy', got %q", status.Status)
	}
	if status.Database != "healthy" {
		t.Errorf("expected database 'healthy', got %q", status.Database)
	}
	if status.Version != "v1.2.3" {
		t.Errorf("expected version 'v1.2.3', got %q", status.Version)
	}
}

func TestHealthDegradedOnClosedDB(t *testing.T) {
	db := testutil.TestDB(t)
	h := NewHealthHandler(db, version.Info{Version: "dev"})
	_ = db.Close()

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}

	var status HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if status.Status != "degraded" {
		t.Errorf("expected status 'degraded', got %q", status.Status)
	}
	if status.Database != "unreachable" {
		t.Errorf("expected database 'unreachable', got %q", status.Database)
	}
}
