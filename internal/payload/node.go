package payload

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the tag of a Node.
type Kind int

// Node kinds.
const (
	Null Kind = iota
	Scalar
	Sequence
	Mapping
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Scalar:
		return "scalar"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value *Node
}

// Node is a decoded payload value.
type Node struct {
	Kind Kind

	// Value holds a Scalar: string, bool, or json.Number.
	Value any

	// Items holds the elements of a Sequence.
	Items []*Node

	// Entries holds the pairs of a Mapping in document order.
	Entries []Entry
}

// NewString returns a string scalar.
func NewString(s string) *Node { return &Node{Kind: Scalar, Value: s} }

// NewNumber returns a numeric scalar.
func NewNumber(n string) *Node { return &Node{Kind: Scalar, Value: json.Number(n)} }

// NewBool returns a boolean scalar.
func NewBool(b bool) *Node { return &Node{Kind: Scalar, Value: b} }

// NewNull returns a null node.
func NewNull() *Node { return &Node{Kind: Null} }

// IsContainer reports whether the node is a Sequence or Mapping.
func (n *Node) IsContainer() bool {
	return n != nil && (n.Kind == Sequence || n.Kind == Mapping)
}

// Get returns the value of the first entry with key in a Mapping.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != Mapping {
		return nil, false
	}
	for _, e := range n.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Text returns the scalar rendered as plain text.
// Booleans render as "1" and "" and null renders as "".
func (n *Node) Text() (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Kind {
	case Null:
		return "", true
	case Scalar:
		switch v := n.Value.(type) {
		case string:
			return v, true
		case json.Number:
			return v.String(), true
		case bool:
			if v {
				return "1", true
			}
			return "", true
		}
	}
	return "", false
}

// IsString reports whether the node is a string scalar.
func (n *Node) IsString() bool {
	if n == nil || n.Kind != Scalar {
		return false
	}
	_, ok := n.Value.(string)
	return ok
}

var numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Int returns the scalar as an integer if it is numeric.
// Numbers and numeric strings qualify; fractional values are truncated.
func (n *Node) Int() (int64, bool) {
	if n == nil || n.Kind != Scalar {
		return 0, false
	}
	var raw string
	switch v := n.Value.(type) {
	case json.Number:
		raw = v.String()
	case string:
		raw = strings.TrimSpace(v)
	default:
		return 0, false
	}
	if !numericPattern.MatchString(raw) {
		return 0, false
	}
	if i, err := strconv.ParseInt(strings.TrimPrefix(raw, "+"), 10, 64); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || math.Abs(f) >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
