// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// exitCoder is implemented by errors that choose their own exit code.
type exitCoder interface {
	ExitCode() int
}

// ExitCode returns the process exit status for err: 0 for nil, the
// code of the first error in the chain with an ExitCode method, else 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

// Report writes "error: err" to w, unless err is nil or carries its
// own exit code.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	var coder exitCoder
	if errors.As(err, &coder) {
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}

// Exit reports err to stderr and exits with [ExitCode]. Call it from
// main with the result of run.
func Exit(err error) {
	Report(os.Stderr, err)
	os.Exit(ExitCode(err))
}
