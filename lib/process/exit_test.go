// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

type codedError struct{ code int }

func (e *codedError) Error() string { return fmt.Sprintf("exit %d", e.code) }
func (e *codedError) ExitCode() int { return e.code }

func TestExitCodeAndReport(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantReport string
	}{
		{"nil", nil, 0, ""},
		{"plain error", errors.New("no such save"), 1, "error: no such save\n"},
		{"coded error", &codedError{code: 3}, 3, ""},
		{"wrapped coded error", fmt.Errorf("verify: %w", &codedError{code: 1}), 1, ""},
		{"coded zero", &codedError{code: 0}, 0, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ExitCode(test.err); got != test.wantCode {
				t.Errorf("ExitCode = %d, want %d", got, test.wantCode)
			}
			var buffer bytes.Buffer
			Report(&buffer, test.err)
			if buffer.String() != test.wantReport {
				t.Errorf("Report wrote %q, want %q", buffer.String(), test.wantReport)
			}
		})
	}
}
