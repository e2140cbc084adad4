package ast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMissingType is returned when a JSON object in node position has no type.
var ErrMissingType = errors.New("node without a type")

// skippedFields are ESTree properties that never hold child nodes.
//
//nolint:gochecknoglobals // Read-only lookup table.
var skippedFields = map[string]bool{
	"type":             true,
	"name":             true,
	"range":            true,
	"loc":              true,
	"start":            true,
	"end":              true,
	"parent":           true,
	"tokens":           true,
	"comments":         true,
	"leadingComments":  true,
	"trailingComments": true,
}

// rawToken mirrors the JSON shape of an ESTree token or comment.
type rawToken struct {
	Type  string          `json:"type"`
	Value string          `json:"value"`
	Range *[2]int         `json:"range"`
	Loc   *SourceLocation `json:"loc"`
}

// DecodeTree reads an ESTree program serialized as JSON, as emitted by
// JavaScript parsers run with range, loc, tokens and comment output enabled.
// Parent links are attached before returning. Ranges and columns are kept
// as the parser wrote them; Tree.ToByteOffsets converts them to bytes.
func DecodeTree(r io.Reader) (*Tree, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode estree: %w", err)
	}

	root, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}

	tree := &Tree{Root: root}

	if msg, ok := raw["tokens"]; ok && !isNull(msg) {
		if tree.Tokens, err = decodeTokens(msg); err != nil {
			return nil, fmt.Errorf("decode tokens: %w", err)
		}
	}
	if msg, ok := raw["comments"]; ok && !isNull(msg) {
		if tree.Comments, err = decodeTokens(msg); err != nil {
			return nil, fmt.Errorf("decode comments: %w", err)
		}
	}

	AttachParents(root)

	return tree, nil
}

func decodeNode(raw map[string]json.RawMessage) (*Node, error) {
	node := NewNode("")

	if err := json.Unmarshal(raw["type"], &node.Type); err != nil || node.Type == "" {
		return nil, ErrMissingType
	}

	if msg, ok := raw["name"]; ok {
		// JSX names are nodes, not strings; only keep string names.
		var name string
		if json.Unmarshal(msg, &name) == nil {
			node.Name = name
		}
	}

	for _, key := range []string{"kind", "sourceType"} {
		if msg, ok := raw[key]; ok && node.Kind == "" {
			var kind string
			if json.Unmarshal(msg, &kind) == nil {
				node.Kind = kind
			}
		}
	}

	if msg, ok := raw["range"]; ok && !isNull(msg) {
		var rng [2]int
		if err := json.Unmarshal(msg, &rng); err != nil {
			return nil, fmt.Errorf("decode %s range: %w", node.Type, err)
		}
		node.Range = Range{Start: rng[0], End: rng[1]}
	}

	if msg, ok := raw["loc"]; ok && !isNull(msg) {
		if err := json.Unmarshal(msg, &node.Loc); err != nil {
			return nil, fmt.Errorf("decode %s loc: %w", node.Type, err)
		}
	}

	for key, msg := range raw {
		if skippedFields[key] {
			continue
		}
		children, ok, err := decodeField(msg)
		if err != nil {
			return nil, fmt.Errorf("decode %s.%s: %w", node.Type, key, err)
		}
		if !ok {
			continue
		}
		if node.Fields == nil {
			node.Fields = make(map[string][]*Node)
		}
		node.Fields[key] = children
	}

	return node, nil
}

// decodeField decodes a property value holding a node or a sequence of
// nodes. It reports false for scalar properties and null values.
func decodeField(msg json.RawMessage) ([]*Node, bool, error) {
	trimmed := bytes.TrimSpace(msg)
	if len(trimmed) == 0 {
		return nil, false, nil
	}

	switch trimmed[0] {
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, false, err
		}
		if _, hasType := obj["type"]; !hasType {
			return nil, false, nil
		}
		child, err := decodeNode(obj)
		if err != nil {
			return nil, false, err
		}
		return []*Node{child}, true, nil

	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return nil, false, err
		}
		children := make([]*Node, 0, len(elems))
		for _, elem := range elems {
			if isNull(elem) {
				children = append(children, nil)
				continue
			}
			var obj map[string]json.RawMessage
			if json.Unmarshal(elem, &obj) != nil {
				// Not a node sequence (e.g. a list of numbers).
				return nil, false, nil
			}
			if _, hasType := obj["type"]; !hasType {
				return nil, false, nil
			}
			child, err := decodeNode(obj)
			if err != nil {
				return nil, false, err
			}
			children = append(children, child)
		}
		return children, true, nil

	default:
		return nil, false, nil
	}
}

func decodeTokens(msg json.RawMessage) ([]*Token, error) {
	var raws []rawToken
	if err := json.Unmarshal(msg, &raws); err != nil {
		return nil, err
	}

	tokens := make([]*Token, 0, len(raws))
	for _, raw := range raws {
		tok := &Token{
			Type:  TokenType(raw.Type),
			Value: raw.Value,
			Range: NoRange,
		}
		if raw.Range != nil {
			tok.Range = Range{Start: raw.Range[0], End: raw.Range[1]}
		}
		if raw.Loc != nil {
			tok.Loc = *raw.Loc
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func isNull(msg json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(msg), []byte("null"))
}
