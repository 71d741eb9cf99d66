// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package save

import (
	"fmt"
	"log/slog"
)

// DiagnosticCode classifies a non-fatal condition.
type DiagnosticCode string

const (
	// CodeVersionMismatch: the header version is not [savefile.FormatVersion].
	CodeVersionMismatch DiagnosticCode = "version_mismatch"
	// CodeChunkFallback: a chunk was kept as opaque bytes.
	CodeChunkFallback DiagnosticCode = "chunk_fallback"
	// CodeFieldFallback: a typed board field was kept as bytes.
	CodeFieldFallback DiagnosticCode = "field_fallback"
	// CodeEntityFallback: an active entity's tail was kept as _tail_raw.
	CodeEntityFallback DiagnosticCode = "entity_fallback"
	// CodeWaveRosterOpaque: wave expansion was requested but the roster
	// could not be expanded losslessly.
	CodeWaveRosterOpaque DiagnosticCode = "wave_roster_opaque"
	// CodeUnrecognizedEnum: an enum name was written as its fallback value.
	CodeUnrecognizedEnum DiagnosticCode = "unrecognized_enum"
	// CodeUnmappableField: a document field was dropped on write.
	CodeUnmappableField DiagnosticCode = "unmappable_field"
	// CodeDuplicateChunk: a chunk type occurred twice; the repeat and
	// everything after it were kept in the payload trailer.
	CodeDuplicateChunk DiagnosticCode = "duplicate_chunk"
	// CodeOrphanSection: document data for a chunk the chunk order does
	// not list was ignored.
	CodeOrphanSection DiagnosticCode = "orphan_section"
)

// Diagnostic is one non-fatal condition met while converting.
type Diagnostic struct {
	Code DiagnosticCode
	// Chunk is the chunk name, empty for container-level conditions.
	Chunk string
	// Path locates the affected value in the document tree.
	Path    string
	Message string
}

func (d Diagnostic) String() string {
	location := d.Path
	if location == "" {
		location = d.Chunk
	}
	if location == "" {
		return fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Code, location, d.Message)
}

// collector accumulates diagnostics and logs each as it arrives. A nil
// logger collects silently.
type collector struct {
	logger *slog.Logger
	list   []Diagnostic
}

func newCollector(logger *slog.Logger) *collector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &collector{logger: logger}
}

func (c *collector) add(diagnostic Diagnostic) {
	c.list = append(c.list, diagnostic)
	if c.logger != nil {
		c.logger.Warn(diagnostic.Message,
			"code", string(diagnostic.Code),
			"chunk", diagnostic.Chunk,
			"path", diagnostic.Path,
		)
	}
}

func (c *collector) addf(code DiagnosticCode, chunk, path, format string, args ...any) {
	c.add(Diagnostic{Code: code, Chunk: chunk, Path: path, Message: fmt.Sprintf(format, args...)})
}

// merge adds every diagnostic of other, logging them now.
func (c *collector) merge(other *collector) {
	for _, diagnostic := range other.list {
		c.add(diagnostic)
	}
}
