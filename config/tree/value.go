package tree

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PathSeparator separates segments in a dotted path.
const PathSeparator = "."

// ErrEmptyPath is returned when a path has no segments.
var ErrEmptyPath = errors.New("empty path")

// ErrPathConflict is returned when an intermediate path segment already holds a leaf value.
var ErrPathConflict = errors.New("path conflict")

// Kind identifies the concrete type of a Value.
type Kind int

// Value kinds.
const (
	KindInvalid Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "mapping"
	case KindInvalid:
		return "invalid"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a node of a configuration tree.
type Value interface {
	Kind() Kind
	value()
}

type (
	// Bool is a boolean leaf.
	Bool bool
	// Number is a numeric leaf. Integers and floats share one representation.
	Number float64
	// String is a string leaf.
	String string
	// List is an ordered list of values. Elements may have different kinds.
	List []Value
	// Map is a mapping node. Keys are unique; order is irrelevant.
	Map map[string]Value
)

func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (List) Kind() Kind   { return KindList }
func (Map) Kind() Kind    { return KindMap }

func (Bool) value()   {}
func (Number) value() {}
func (String) value() {}
func (List) value()   {}
func (Map) value()    {}

// KindOf returns the kind of v, or KindInvalid for nil.
func KindOf(v Value) Kind {
	if v == nil {
		return KindInvalid
	}

	return v.Kind()
}

// SplitPath splits a dotted path into segments.
func SplitPath(path string) []string {
	return strings.Split(path, PathSeparator)
}

// JoinPath joins segments into a dotted path.
func JoinPath(segments []string) string {
	return strings.Join(segments, PathSeparator)
}

// Set places v at path, creating intermediate maps as needed and overwriting
// whatever the last segment held before. If an intermediate segment holds a
// leaf, Set returns ErrPathConflict and leaves m unchanged.
func (m Map) Set(path []string, v Value) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}

	parents := path[:len(path)-1]

	node := m
	for i, segment := range parents {
		next, exists := node[segment]
		if !exists {
			break
		}

		child, isMap := next.(Map)
		if !isMap {
			return fmt.Errorf("%w: %q holds a %s", ErrPathConflict, JoinPath(path[:i+1]), KindOf(next))
		}

		node = child
	}

	node = m
	for _, segment := range parents {
		child, isMap := node[segment].(Map)
		if !isMap || child == nil {
			child = Map{}
			node[segment] = child
		}

		node = child
	}

	node[path[len(path)-1]] = v

	return nil
}

// Get returns the value at path.
func (m Map) Get(path []string) (Value, bool) {
	if len(path) == 0 {
		return nil, false
	}

	var current Value = m

	for _, segment := range path {
		node, isMap := current.(Map)
		if !isMap {
			return nil, false
		}

		next, exists := node[segment]
		if !exists {
			return nil, false
		}

		current = next
	}

	return current, true
}

// Paths returns the dotted paths of every leaf and every empty map in m, sorted.
func (m Map) Paths() []string {
	var paths []string

	collectPaths(m, "", &paths)
	sort.Strings(paths)

	return paths
}

func collectPaths(m Map, prefix string, paths *[]string) {
	for key, val := range m {
		full := key
		if prefix != "" {
			full = prefix + PathSeparator + key
		}

		nested, isMap := val.(Map)
		if isMap && len(nested) > 0 {
			collectPaths(nested, full, paths)

			continue
		}

		*paths = append(*paths, full)
	}
}

// Clone returns a deep copy of m.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}

	out := make(Map, len(m))
	for key, val := range m {
		out[key] = Clone(val)
	}

	return out
}

// Clone returns a deep copy of v.
func Clone(v Value) Value {
	switch typed := v.(type) {
	case Map:
		return typed.Clone()
	case List:
		if typed == nil {
			return List(nil)
		}

		out := make(List, len(typed))
		for i, elem := range typed {
			out[i] = Clone(elem)
		}

		return out
	default:
		return v
	}
}
