// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Floats shrink only when the
// narrower width is exact.
var encMode cbor.EncMode

// decMode is the CBOR decoder configured to accept standard CBOR.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Document maps always have text keys. Without this an any-typed
		// target decodes into map[interface{}]interface{}.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		// Byte strings stay []byte even inside any-typed targets, so
		// opaque save bytes are never confused with text.
		DefaultByteStringType: reflect.TypeOf([]byte(nil)),
		IndefLength:           cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v. Data must hold exactly one item.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// UnmarshalFirst decodes the first CBOR item in data into v and returns
// the bytes that follow it.
func UnmarshalFirst(data []byte, v any) ([]byte, error) {
	return decMode.UnmarshalFirst(data, v)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// Major types used by hand-framed containers.
const (
	MajorUnsigned byte = 0
	MajorNegative byte = 1
	MajorBytes    byte = 2
	MajorText     byte = 3
	MajorArray    byte = 4
	MajorMap      byte = 5
	MajorTag      byte = 6
	MajorSimple   byte = 7
)

// ErrMalformedHead is returned by [ReadHead] for truncated or
// indefinite-length item heads.
var ErrMalformedHead = errors.New("codec: malformed CBOR item head")

// AppendHead appends the shortest head for an item of the given major
// type and argument. Callers that need to emit arrays or maps in a
// specific order (the deterministic encoder sorts map keys) frame the
// container with AppendHead and append each element's [Marshal] output.
func AppendHead(buf []byte, major byte, argument uint64) []byte {
	initial := major << 5
	switch {
	case argument < 24:
		return append(buf, initial|byte(argument))
	case argument <= 0xff:
		return append(buf, initial|24, byte(argument))
	case argument <= 0xffff:
		return binary.BigEndian.AppendUint16(append(buf, initial|25), uint16(argument))
	case argument <= 0xffffffff:
		return binary.BigEndian.AppendUint32(append(buf, initial|26), uint32(argument))
	default:
		return binary.BigEndian.AppendUint64(append(buf, initial|27), argument)
	}
}

// ReadHead parses the head of the first item in data. It returns the
// major type, the head's argument, and the bytes following the head.
// For major type 7 the argument of a float is its raw bit pattern.
func ReadHead(data []byte) (major byte, argument uint64, rest []byte, err error) {
	if len(data) == 0 {
		return 0, 0, nil, ErrMalformedHead
	}
	major = data[0] >> 5
	info := data[0] & 0x1f
	data = data[1:]
	switch {
	case info < 24:
		return major, uint64(info), data, nil
	case info == 24 && len(data) >= 1:
		return major, uint64(data[0]), data[1:], nil
	case info == 25 && len(data) >= 2:
		return major, uint64(binary.BigEndian.Uint16(data)), data[2:], nil
	case info == 26 && len(data) >= 4:
		return major, uint64(binary.BigEndian.Uint32(data)), data[4:], nil
	case info == 27 && len(data) >= 8:
		return major, binary.BigEndian.Uint64(data), data[8:], nil
	case info == 31:
		return 0, 0, nil, fmt.Errorf("%w: indefinite length (major type %d)", ErrMalformedHead, major)
	default:
		return 0, 0, nil, fmt.Errorf("%w: additional info %d with %d bytes left", ErrMalformedHead, info, len(data))
	}
}
