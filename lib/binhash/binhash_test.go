// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"os"
	"path/filepath"
	"testing"
)

// BLAKE3 of the empty input.
const emptyDigest = "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"

func TestSumKnownVector(t *testing.T) {
	if got := Sum(nil).String(); got != emptyDigest {
		t.Errorf("Sum(nil) = %s, want %s", got, emptyDigest)
	}
	if got := Sum(nil).Short(); got != emptyDigest[:12] {
		t.Errorf("Short() = %s", got)
	}
}

func TestHashFileMatchesSum(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{"empty", nil},
		{"small", []byte("PVZP_SAVE4")},
		// Larger than the copy buffer, so the file is hashed in pieces.
		{"large", func() []byte {
			content := make([]byte, 256*1024)
			for i := range content {
				content[i] = byte(i % 251)
			}
			return content
		}()},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "save.v4")
			if err := os.WriteFile(path, test.content, 0644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			got, err := HashFile(path)
			if err != nil {
				t.Fatalf("HashFile: %v", err)
			}
			if want := Sum(test.content); got != want {
				t.Errorf("HashFile = %s, Sum = %s", got, want)
			}
		})
	}
}

func TestHashFileNonexistent(t *testing.T) {
	if _, err := HashFile(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Fatal("HashFile should fail for a nonexistent file")
	}
}

func TestDifferentContentDiffers(t *testing.T) {
	if Sum([]byte("content A")) == Sum([]byte("content B")) {
		t.Error("different buffers should produce different digests")
	}
}

func TestParseDigestRoundTrip(t *testing.T) {
	original := Sum([]byte("round-trip"))
	parsed, err := ParseDigest(original.String())
	if err != nil {
		t.Fatalf("ParseDigest: %v", err)
	}
	if parsed != original {
		t.Errorf("ParseDigest round trip: %s != %s", parsed, original)
	}
}

func TestParseDigestInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not hex", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"},
		{"too short", "abcd"},
		{"too long", emptyDigest + "aa"},
		{"empty", ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseDigest(test.input); err == nil {
				t.Errorf("ParseDigest(%q) should fail", test.input)
			}
		})
	}
}
