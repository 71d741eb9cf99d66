// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package save

import (
	"fmt"

	"github.com/pvzportable/pvzp-save/lib/document"
	"github.com/pvzportable/pvzp-save/lib/schema"
)

// FieldTypeError reports a document value of the wrong kind or out of
// range for the field at its path.
type FieldTypeError = document.TypeError

// UnmappableFieldError reports a document key that corresponds to no
// field id: not registered, not a synthesized "_unknown_<n>" or
// "_field_<n>" name, and not a tail field.
type UnmappableFieldError struct {
	Path string
}

func (e *UnmappableFieldError) Error() string {
	return fmt.Sprintf("%s: field does not map to any field id", e.Path)
}

// MissingChunkError reports a chunk type listed in the chunk order
// with neither an opaque blob nor a structured section to write.
type MissingChunkError struct {
	Chunk schema.ChunkType
}

func (e *MissingChunkError) Error() string {
	return fmt.Sprintf("chunk %s is listed in the chunk order but the document has no data for it", e.Chunk)
}
