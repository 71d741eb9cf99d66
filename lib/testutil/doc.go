// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil builds PVZP_SAVE4 fixtures byte by byte for tests.
//
// The builders write the wire format directly with encoding/binary
// rather than through the codec packages, so a test that decodes a
// fixture checks the codecs against an independent rendition of the
// format. [Sample] returns a small but complete save exercising every
// structured chunk, an opaque chunk, an unregistered chunk type, and an
// unregistered board field.
//
// This package has no internal dependencies.
package testutil
