// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/0marJim/flyercatcher/internal/imaging"
	"github.com/0marJim/flyercatcher/internal/model"
	"github.com/0marJim/flyercatcher/internal/util"
)

// MaxUploadSize is the upper bound for an uploaded image.
const MaxUploadSize = 10 << 20 // 10 MiB

// URLPrefix is the public path prefix under which stored files are served.
const URLPrefix = "/uploads/"

// Upload failure modes the handler layer maps to client-facing errors.
var (
	ErrNoImage       = errors.New("no valid image uploaded")
	ErrInvalidType   = errors.New("invalid image type")
	ErrImageTooLarge = errors.New("image exceeds maximum size")
)

// SavedImage describes a persisted upload.
type SavedImage struct {
	// URL is the public path stored in the event row ("/uploads/<name>").
	URL string
	// Path is the absolute location on disk.
	Path string
	Size int64
}

// UploadService persists validated event images into the uploads directory.
type UploadService struct {
	uploadDir string
}

// NewUploadService creates a new upload service rooted at uploadDir.
func NewUploadService(uploadDir string) *UploadService {
	return &UploadService{uploadDir: uploadDir}
}

// Save runs the upload pipeline: bind the file, verify the declared type,
// verify size, probe and re-encode the actual content, then persist under a
// fresh server-generated filename. Nothing is written to disk until every
// check has passed.
func (s *UploadService) Save(file multipart.File, header *multipart.FileHeader) (*SavedImage, error) {
	if file == nil || header == nil || header.Size == 0 {
		return nil, ErrNoImage
	}

	// Declared type first: cheap rejection before reading the body.
	declared := strings.TrimSpace(header.Header.Get("Content-Type"))
	if idx := strings.Index(declared, ";"); idx != -1 {
		declared = declared[:idx]
	}
	if declared != "" && !model.IsAllowedImageMimeType(declared) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidType, declared)
	}

	if header.Size > MaxUploadSize {
		return nil, ErrImageTooLarge
	}

	// Bound the read regardless of what the header claims.
	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	if int64(len(data)) > MaxUploadSize {
		return nil, ErrImageTooLarge
	}

	// Content probe and re-encode. The declared type is never trusted on
	// its own; the bytes must decode as an allowed image format.
	result, err := imaging.Process(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidType, err)
	}

	filename := s.freshFilename(header.Filename, result.Format)

	dest, err := util.SafeJoinPath(s.uploadDir, filename)
	if err != nil {
		return nil, fmt.Errorf("resolving upload path: %w", err)
	}

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}
	if err := os.WriteFile(dest, result.Data, 0644); err != nil {
		return nil, fmt.Errorf("writing upload: %w", err)
	}

	return &SavedImage{
		URL:  URLPrefix + filename,
		Path: dest,
		Size: int64(len(result.Data)),
	}, nil
}

// Remove deletes a previously saved upload by its public URL. Used to clean
// up when a later validation step fails.
func (s *UploadService) Remove(url string) error {
	name := strings.TrimPrefix(url, URLPrefix)
	if name == "" || name == url {
		return fmt.Errorf("not an upload url: %q", url)
	}

	target, err := util.SafeJoinPath(s.uploadDir, filepath.FromSlash(name))
	if err != nil {
		return fmt.Errorf("resolving upload path: %w", err)
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing upload: %w", err)
	}
	return nil
}

// freshFilename derives a unique stored name: uuid prefix, a slug of the
// client's base name for operator readability, and the extension of the
// detected format. The client name never reaches the filesystem unfiltered.
func (s *UploadService) freshFilename(clientName, format string) string {
	base := uuid.New().String()

	if clientName != "" {
		trimmed := strings.TrimSuffix(path.Base(clientName), path.Ext(clientName))
		if slug := util.Slugify(trimmed); slug != "" {
			if len(slug) > 48 {
				slug = slug[:48]
			}
			// SanitizeFilename enforces the stored-name allow-list on
			// whatever Slugify produced.
			if safe, err := util.SanitizeFilename(slug); err == nil {
				base += "-" + safe
			}
		}
	}

	return base + imaging.FormatExtension(format)
}
