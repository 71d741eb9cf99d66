// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package save converts PVZP_SAVE4 files to an editable [Document] and
// back without losing a byte.
//
// [Decode] parses the container and decodes each chunk it understands
// into a structured section: the board's field set, the four slotted
// game-object arrays, the seed bank, the seed packet list, and the
// challenge record. Every structured decode is checked by re-encoding
// it; a chunk whose structured form does not reproduce its bytes is
// kept opaque under its chunk name instead, and a [Diagnostic] says
// why. The same applies one level down: a board field or entity tail
// that cannot be reproduced keeps its bytes in place of typed values.
//
// [Document.Tree] renders a document as a [document.Value] tree for the
// YAML and CBOR serializers, and [FromTree] reads an edited tree back.
// [Encode] writes chunks in the document's chunk order and recomputes
// the payload length and checksum.
//
// Fatal container errors come from package savefile. Encode-side errors
// are [*UnmappableFieldError], [*MissingChunkError], and
// [*FieldTypeError]. Everything else is a non-fatal [Diagnostic],
// returned to the caller and logged at Warn on the configured logger.
//
// All functions are stateless and safe to call concurrently on
// different inputs.
package save
