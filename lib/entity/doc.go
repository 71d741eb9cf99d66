// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package entity decodes the per-object records stored in slotted
// arrays and sized blobs: the placement base (field 1) and the
// kind-specific tail (field 100).
//
// Tails are described by a [Layout], an ordered list of typed fields.
// Decoding a tail is verified by encoding the result again: a tail that
// does not reproduce its bytes exactly is kept opaque, so a structured
// record never loses information. Inactive slots always keep their tail
// opaque since its content is undefined.
package entity
