// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

// encodeTestImage builds a small in-memory image in the given format.
func encodeTestImage(t *testing.T, format string, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		t.Fatalf("unknown test format %q", format)
	}
	if err != nil {
		t.Fatalf("encoding test %s: %v", format, err)
	}
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"jpeg", encodeTestImage(t, "jpeg", 4, 4), "jpeg"},
		{"png", encodeTestImage(t, "png", 4, 4), "png"},
		{"gif", encodeTestImage(t, "gif", 4, 4), "gif"},
		{"plain text", []byte("definitely not an image"), ""},
		{"empty", nil, ""},
		{"html", []byte("<html><body>x</body></html>"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.data); got != tt.want {
				t.Errorf("DetectFormat = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProcess(t *testing.T) {
	for _, format := range []string{"jpeg", "png", "gif"} {
		t.Run(format, func(t *testing.T) {
			data := encodeTestImage(t, format, 8, 6)

			result, err := Process(data)
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if result.Format != format {
				t.Errorf("Format = %q, want %q", result.Format, format)
			}
			if result.Width != 8 || result.Height != 6 {
				t.Errorf("dimensions = %dx%d, want 8x6", result.Width, result.Height)
			}
			if len(result.Data) == 0 {
				t.Error("processed data is empty")
			}

			// Output must itself be a decodable image
			if _, _, err := image.Decode(bytes.NewReader(result.Data)); err != nil {
				t.Errorf("re-encoded output does not decode: %v", err)
			}
		})
	}
}

func TestProcess_RejectsNonImage(t *testing.T) {
	// Declared-type lies are irrelevant here: Process only sees bytes.
	if _, err := Process([]byte("GIF89a but truncated and broken")); err == nil {
		t.Error("Process accepted corrupt image data")
	}
	if _, err := Process([]byte("plain text payload")); err == nil {
		t.Error("Process accepted non-image data")
	}
}

func TestDetectMimeType(t *testing.T) {
	if got := DetectMimeType(encodeTestImage(t, "png", 2, 2)); got != "image/png" {
		t.Errorf("DetectMimeType = %q, want image/png", got)
	}
	if got := DetectMimeType([]byte("hello")); got != "text/plain" {
		t.Errorf("DetectMimeType = %q, want text/plain", got)
	}
}

func TestFormatExtension(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"jpeg", ".jpg"},
		{"png", ".png"},
		{"gif", ".gif"},
		{"webp", ".jpg"},
		{"", ".jpg"},
	}
	for _, tt := range tests {
		if got := FormatExtension(tt.format); got != tt.want {
			t.Errorf("FormatExtension(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}
