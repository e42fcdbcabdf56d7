// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain entities shared by the store, service,
// and handler layers.
package model

import "time"

// Field defaults applied when a create request omits the optional fields.
const (
	DefaultCategory = "other"
	DefaultPostedBy = "Anonymous"
)

// CategoryAll is the filter sentinel meaning "no category filter".
const CategoryAll = "all"

// Supported MIME types for event image uploads
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// AllowedImageMimeTypes defines the image types that can be uploaded.
var AllowedImageMimeTypes = map[string]bool{
	MimeTypeJPEG: true,
	MimeTypePNG:  true,
	MimeTypeGIF:  true,
	MimeTypeWebP: true,
}

// IsAllowedImageMimeType reports whether mimeType may be uploaded.
func IsAllowedImageMimeType(mimeType string) bool {
	return AllowedImageMimeTypes[mimeType]
}

// Gradients is the fixed palette of CSS gradient placeholders assigned to
// events created without an image. The client renders these directly.
var Gradients = [8]string{
	"linear-gradient(45deg, #667eea, #764ba2)",
	"linear-gradient(45deg, #f093fb, #f5576c)",
	"linear-gradient(45deg, #4facfe, #00f2fe)",
	"linear-gradient(45deg, #43e97b, #38f9d7)",
	"linear-gradient(45deg, #fa709a, #fee140)",
	"linear-gradient(45deg, #a8edea, #fed6e3)",
	"linear-gradient(45deg, #ffecd2, #fcb69f)",
	"linear-gradient(45deg, #c3cfe2, #c3cfe2)",
}

// IsKnownGradient reports whether s is one of the palette entries.
func IsKnownGradient(s string) bool {
	for _, g := range Gradients {
		if g == s {
			return true
		}
	}
	return false
}

// Event represents a community event listing.
//
// EventDate is kept as the verbatim text the poster supplied; the only
// requirement is that it is parseable for display. Exactly one of
// ImageGradient and ImageURL is meaningfully set by the create paths.
type Event struct {
	ID            int64
	Title         string
	Description   string
	Location      string
	EventDate     string
	Category      string
	ImageGradient string
	ImageURL      string
	PostedBy      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
