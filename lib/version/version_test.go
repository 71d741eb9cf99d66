// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	saved := []string{Version, GitCommit, GitDirty, BuildTime}
	t.Cleanup(func() {
		Version, GitCommit, GitDirty, BuildTime = saved[0], saved[1], saved[2], saved[3]
	})

	tests := []struct {
		dirty string
		want  string
	}{
		{"false", "1.2.3 (abc1234, 2026-10-01T00:00:00Z)"},
		{"true", "1.2.3 (abc1234-dirty, 2026-10-01T00:00:00Z)"},
	}
	for _, test := range tests {
		Version, GitCommit, GitDirty, BuildTime = "1.2.3", "abc1234", test.dirty, "2026-10-01T00:00:00Z"
		if got := Info(); got != test.want {
			t.Errorf("Info() with dirty=%s = %q, want %q", test.dirty, got, test.want)
		}
	}
	if got := Short(); got != "1.2.3" {
		t.Errorf("Short() = %q", got)
	}
	if full := Full(); !strings.HasPrefix(full, Info()) || !strings.Contains(full, "Go: go") {
		t.Errorf("Full() = %q", full)
	}
}

func TestLogAttr(t *testing.T) {
	attr := LogAttr()
	if attr.Key != "build" {
		t.Fatalf("key = %q, want build", attr.Key)
	}
	keys := map[string]bool{}
	for _, member := range attr.Value.Group() {
		keys[member.Key] = true
	}
	for _, want := range []string{"version", "commit", "go"} {
		if !keys[want] {
			t.Errorf("group lacks %q", want)
		}
	}
}
