package goquery

import (
	"errors"
	"io"
	"strings"

	"github.com/fwojciec/rssfixer"
	"github.com/go-json-experiment/json/jsontext"
)

// A decoded JSON value is one of nil, bool, string, Number, Object or
// Array. Objects keep their members in document order because the entry
// search walks keys in the order the page author wrote them.

// Number holds the literal text of a JSON number.
type Number string

// Member is one name/value pair of a JSON object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object whose members keep document order. A repeated
// name keeps the position of its first occurrence and the last value.
type Object []Member

// Get returns the value stored under key.
func (o Object) Get(key string) (any, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Array is a JSON array.
type Array []any

// DecodeJSON parses a single JSON document. Trailing data after the first
// value is an error.
func DecodeJSON(data string) (any, error) {
	dec := jsontext.NewDecoder(strings.NewReader(data),
		jsontext.AllowDuplicateNames(true),
		jsontext.AllowInvalidUTF8(true),
	)
	v, err := decodeValue(dec)
	if err != nil {
		return nil, rssfixer.Errorf(rssfixer.EJSON, "malformed JSON: %v", err)
	}
	if _, err := dec.ReadToken(); !errors.Is(err, io.EOF) {
		return nil, rssfixer.Errorf(rssfixer.EJSON, "malformed JSON: unexpected data after top-level value")
	}
	return v, nil
}

// decodeValue reads one value. Nesting is bounded by the decoder's own
// depth limit.
func decodeValue(dec *jsontext.Decoder) (any, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}
	switch tok.Kind() {
	case 'n':
		return nil, nil
	case 't', 'f':
		return tok.Bool(), nil
	case '"':
		return tok.String(), nil
	case '0':
		return Number(tok.String()), nil
	case '{':
		obj := Object{}
		index := make(map[string]int)
		for dec.PeekKind() != '}' {
			name, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			value, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			key := name.String()
			if i, ok := index[key]; ok {
				obj[i].Value = value
				continue
			}
			index[key] = len(obj)
			obj = append(obj, Member{Key: key, Value: value})
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := Array{}
		for dec.PeekKind() != ']' {
			value, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, value)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, rssfixer.Errorf(rssfixer.EJSON, "unexpected JSON token %q", tok.Kind())
	}
}

// FindList searches v depth-first for a member named key whose value is an
// array and returns the first one in pre-order: within an object a member
// is checked before its own value is searched, and both happen before the
// next member. A member named key holding anything other than an array does
// not match, but its value is still searched. The boolean is false when no
// such member exists, which is distinct from finding an empty array.
func FindList(v any, key string) (Array, bool) {
	type cursor struct {
		obj Object
		arr Array
		i   int
	}

	var stack []*cursor
	push := func(v any) {
		switch t := v.(type) {
		case Object:
			stack = append(stack, &cursor{obj: t})
		case Array:
			stack = append(stack, &cursor{arr: t})
		}
	}
	push(v)

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		switch {
		case top.obj != nil && top.i < len(top.obj):
			m := top.obj[top.i]
			top.i++
			if arr, ok := m.Value.(Array); ok && m.Key == key {
				return arr, true
			}
			push(m.Value)
		case top.arr != nil && top.i < len(top.arr):
			item := top.arr[top.i]
			top.i++
			push(item)
		default:
			stack = stack[:len(stack)-1]
		}
	}
	return nil, false
}
