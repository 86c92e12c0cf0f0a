package payload

import (
	"fmt"
	"strconv"
	"strings"
)

// maxSerializedDepth bounds array nesting in serialized payloads.
const maxSerializedDepth = 512

// Unserialize decodes the store's serialized-scalar encoding
// (strings, integers, floats, booleans, null and arrays).
// Arrays decode to Mappings whose keys are rendered as strings.
// Objects and references are rejected.
func Unserialize(s string) (*Node, error) {
	p := &serialParser{in: s}
	n, err := p.value(0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if p.pos != len(p.in) {
		return nil, fmt.Errorf("%w: trailing data at offset %d", ErrMalformed, p.pos)
	}
	return n, nil
}

// LooksSerialized reports whether s has the shape of a serialized value.
func LooksSerialized(s string) bool {
	s = strings.TrimSpace(s)
	if s == "N;" {
		return true
	}
	if len(s) < 4 || s[1] != ':' {
		return false
	}
	last := s[len(s)-1]
	if last != ';' && last != '}' {
		return false
	}
	switch s[0] {
	case 's', 'a', 'O', 'b', 'i', 'd':
		return true
	default:
		return false
	}
}

type serialParser struct {
	in  string
	pos int
}

func (p *serialParser) value(depth int) (*Node, error) {
	if depth > maxSerializedDepth {
		return nil, fmt.Errorf("nesting deeper than %d", maxSerializedDepth)
	}
	if p.pos >= len(p.in) {
		return nil, fmt.Errorf("unexpected end of input")
	}
	tag := p.in[p.pos]
	switch tag {
	case 'N':
		if err := p.expect("N;"); err != nil {
			return nil, err
		}
		return NewNull(), nil
	case 'b':
		raw, err := p.scalar("b:")
		if err != nil {
			return nil, err
		}
		switch raw {
		case "0":
			return NewBool(false), nil
		case "1":
			return NewBool(true), nil
		}
		return nil, fmt.Errorf("invalid boolean %q", raw)
	case 'i':
		raw, err := p.scalar("i:")
		if err != nil {
			return nil, err
		}
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		return NewNumber(raw), nil
	case 'd':
		raw, err := p.scalar("d:")
		if err != nil {
			return nil, err
		}
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return nil, fmt.Errorf("invalid float %q", raw)
		}
		return NewNumber(raw), nil
	case 's':
		str, err := p.str()
		if err != nil {
			return nil, err
		}
		return NewString(str), nil
	case 'a':
		return p.array(depth)
	default:
		return nil, fmt.Errorf("unsupported type %q at offset %d", tag, p.pos)
	}
}

func (p *serialParser) expect(lit string) error {
	if !strings.HasPrefix(p.in[p.pos:], lit) {
		return fmt.Errorf("expected %q at offset %d", lit, p.pos)
	}
	p.pos += len(lit)
	return nil
}

// scalar reads "<prefix><raw>;" and returns raw.
func (p *serialParser) scalar(prefix string) (string, error) {
	if err := p.expect(prefix); err != nil {
		return "", err
	}
	end := strings.IndexByte(p.in[p.pos:], ';')
	if end < 0 {
		return "", fmt.Errorf("unterminated value at offset %d", p.pos)
	}
	raw := p.in[p.pos : p.pos+end]
	p.pos += end + 1
	return raw, nil
}

// length reads "<n>:" and returns n.
func (p *serialParser) length() (int, error) {
	end := strings.IndexByte(p.in[p.pos:], ':')
	if end < 0 {
		return 0, fmt.Errorf("missing length at offset %d", p.pos)
	}
	n, err := strconv.Atoi(p.in[p.pos : p.pos+end])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid length at offset %d", p.pos)
	}
	p.pos += end + 1
	return n, nil
}

func (p *serialParser) str() (string, error) {
	if err := p.expect("s:"); err != nil {
		return "", err
	}
	n, err := p.length()
	if err != nil {
		return "", err
	}
	if err := p.expect(`"`); err != nil {
		return "", err
	}
	if n > len(p.in)-p.pos {
		return "", fmt.Errorf("string length %d exceeds input", n)
	}
	s := p.in[p.pos : p.pos+n]
	p.pos += n
	if err := p.expect(`";`); err != nil {
		return "", err
	}
	return s, nil
}

func (p *serialParser) array(depth int) (*Node, error) {
	if err := p.expect("a:"); err != nil {
		return nil, err
	}
	n, err := p.length()
	if err != nil {
		return nil, err
	}
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	node := &Node{Kind: Mapping, Entries: make([]Entry, 0, min(n, 64))}
	for i := 0; i < n; i++ {
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		val, err := p.value(depth + 1)
		if err != nil {
			return nil, err
		}
		node.Entries = append(node.Entries, Entry{Key: key, Value: val})
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *serialParser) key() (string, error) {
	if p.pos >= len(p.in) {
		return "", fmt.Errorf("unexpected end of input")
	}
	switch p.in[p.pos] {
	case 'i':
		raw, err := p.scalar("i:")
		if err != nil {
			return "", err
		}
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return "", fmt.Errorf("invalid integer key %q", raw)
		}
		return raw, nil
	case 's':
		return p.str()
	default:
		return "", fmt.Errorf("invalid array key at offset %d", p.pos)
	}
}
