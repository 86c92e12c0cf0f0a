package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMalformed indicates the input is not a valid payload in the requested encoding.
var ErrMalformed = errors.New("malformed payload")

// ParseJSON decodes a JSON document into a Node tree, preserving object key order.
// Trailing data after the document is rejected.
func ParseJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrMalformed)
	}
	return root, nil
}

type frame struct {
	node *Node
	key  string
	// expectKey is true while a mapping waits for its next key.
	expectKey bool
}

// decodeValue reads one value using an explicit stack of open containers.
func decodeValue(dec *json.Decoder) (*Node, error) {
	var stack []*frame
	var root *Node

	attach := func(n *Node) {
		if len(stack) == 0 {
			root = n
			return
		}
		top := stack[len(stack)-1]
		switch top.node.Kind {
		case Sequence:
			top.node.Items = append(top.node.Items, n)
		case Mapping:
			top.node.Entries = append(top.node.Entries, Entry{Key: top.key, Value: n})
			top.expectKey = true
		}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}

		if len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.node.Kind == Mapping && top.expectKey {
				if d, ok := tok.(json.Delim); ok && d == '}' {
					stack = stack[:len(stack)-1]
					attach(top.node)
					if len(stack) == 0 {
						return root, nil
					}
					continue
				}
				key, ok := tok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected token %v for object key", tok)
				}
				top.key = key
				top.expectKey = false
				continue
			}
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, &frame{node: &Node{Kind: Mapping}, expectKey: true})
				continue
			case '[':
				stack = append(stack, &frame{node: &Node{Kind: Sequence}})
				continue
			case ']':
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				attach(top.node)
			}
		case string:
			attach(NewString(v))
		case json.Number:
			attach(NewNumber(v.String()))
		case bool:
			attach(NewBool(v))
		case nil:
			attach(NewNull())
		}

		if len(stack) == 0 {
			return root, nil
		}
	}
}
