// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	tagNull   = "!!null"
	tagBool   = "!!bool"
	tagInt    = "!!int"
	tagFloat  = "!!float"
	tagString = "!!str"
	tagBinary = "!!binary"

	tagTimestamp = "!!timestamp"
)

// MarshalYAML renders v as a YAML document.
func MarshalYAML(v Value) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(toNode(v)); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	return buffer.Bytes(), nil
}

// UnmarshalYAML parses one YAML document into a Value.
func UnmarshalYAML(data []byte) (Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Value{}, fmt.Errorf("parsing YAML: %w", err)
	}
	if root.Kind == 0 {
		return Value{}, nil
	}
	return fromNode(&root)
}

func toNode(v Value) *yaml.Node {
	switch v.kind {
	case KindBool:
		return scalar(tagBool, strconv.FormatBool(v.boolean))
	case KindInt:
		return scalar(tagInt, strconv.FormatInt(v.integer, 10))
	case KindFloat:
		return scalar(tagFloat, formatFloat(v.float))
	case KindString:
		return scalar(tagString, v.text)
	case KindBytes:
		return scalar(tagBinary, base64.StdEncoding.EncodeToString(v.raw))
	case KindSeq:
		node := &yaml.Node{Kind: yaml.SequenceNode}
		// Short scalar sequences (wave rosters, rects) read better on
		// one line.
		if len(v.seq) > 0 && len(v.seq) <= 64 && allNumbers(v.seq) {
			node.Style = yaml.FlowStyle
		}
		for _, item := range v.seq {
			node.Content = append(node.Content, toNode(item))
		}
		return node
	case KindMap:
		node := &yaml.Node{Kind: yaml.MappingNode}
		for key, value := range v.m.All() {
			node.Content = append(node.Content, scalar(tagString, key), toNode(value))
		}
		return node
	default:
		return scalar(tagNull, "null")
	}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func allNumbers(items []Value) bool {
	for _, item := range items {
		if item.kind != KindInt && item.kind != KindFloat {
			return false
		}
	}
	return true
}

// formatFloat renders f so that it parses back to the same float64 and
// always resolves as a YAML float, never an integer.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	text := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(text, ".e") {
		text += ".0"
	}
	return text
}

func fromNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Value{}, nil
		}
		return fromNode(node.Content[0])
	case yaml.AliasNode:
		return fromNode(node.Alias)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := fromNode(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Seq(items...), nil
	case yaml.MappingNode:
		m := NewMap(len(node.Content) / 2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
			}
			value, err := fromNode(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			m.Set(keyNode.Value, value)
		}
		return MapValue(m), nil
	case yaml.ScalarNode:
		return fromScalar(node)
	default:
		return Value{}, fmt.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
	}
}

func fromScalar(node *yaml.Node) (Value, error) {
	switch tag := node.ShortTag(); tag {
	case tagNull:
		return Null(), nil
	case tagBool:
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return Bool(b), nil
	case tagInt:
		var i int64
		if err := node.Decode(&i); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return Int(i), nil
	case tagFloat:
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return Float(f), nil
	case tagString, tagTimestamp:
		// Plain dates resolve as timestamps; documents only hold text.
		return String(node.Value), nil
	case tagBinary:
		raw, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(node.Value), ""))
		if err != nil {
			return Value{}, fmt.Errorf("line %d: invalid !!binary: %w", node.Line, err)
		}
		return Bytes(raw), nil
	default:
		return Value{}, fmt.Errorf("line %d: unsupported YAML tag %s", node.Line, tag)
	}
}
