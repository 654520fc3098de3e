package schema

import (
	"fmt"
	"strings"

	"github.com/0xalexb/bluecommit/config/tree"
)

// Policy selects how Validate treats a mistyped field.
type Policy int

const (
	// PolicyPartial replaces a mistyped field with its default and keeps going.
	PolicyPartial Policy = iota
	// PolicyStrict fails validation on any mistyped field.
	PolicyStrict
)

func (p Policy) String() string {
	switch p {
	case PolicyPartial:
		return "partial"
	case PolicyStrict:
		return "strict"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy parses "partial" or "strict", case-insensitively. Empty means partial.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "partial":
		return PolicyPartial, nil
	case "strict":
		return PolicyStrict, nil
	default:
		return PolicyPartial, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// Field declares one leaf of the schema.
type Field struct {
	Path        string
	Kind        tree.Kind
	Default     tree.Value
	Description string
}

// Schema is a closed, immutable set of fields.
type Schema struct {
	fields   []Field
	defaults tree.Map
}

// New builds a schema. Paths must be unique, non-empty, free of empty
// segments, and no path may nest under another; each default must have the
// declared kind.
func New(fields ...Field) (*Schema, error) {
	defaults := tree.Map{}
	seen := make(map[string]bool, len(fields))

	for _, field := range fields {
		err := checkField(field)
		if err != nil {
			return nil, err
		}

		if seen[field.Path] {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidSchema, field.Path)
		}

		for other := range seen {
			if nests(field.Path, other) || nests(other, field.Path) {
				return nil, fmt.Errorf("%w: fields %q and %q overlap", ErrInvalidSchema, other, field.Path)
			}
		}

		seen[field.Path] = true

		err = defaults.Set(tree.SplitPath(field.Path), tree.Clone(field.Default))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
		}
	}

	return &Schema{
		fields:   append([]Field(nil), fields...),
		defaults: defaults,
	}, nil
}

// MustNew is like New but panics on an invalid schema. It is meant for
// package-level schemas built from constants.
func MustNew(fields ...Field) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}

	return s
}

func checkField(field Field) error {
	if field.Path == "" {
		return fmt.Errorf("%w: empty field path", ErrInvalidSchema)
	}

	for _, segment := range tree.SplitPath(field.Path) {
		if segment == "" {
			return fmt.Errorf("%w: empty segment in %q", ErrInvalidSchema, field.Path)
		}
	}

	switch field.Kind {
	case tree.KindBool, tree.KindNumber, tree.KindString, tree.KindList:
	case tree.KindInvalid, tree.KindMap:
		return fmt.Errorf("%w: field %q has non-leaf kind %s", ErrInvalidSchema, field.Path, field.Kind)
	default:
		return fmt.Errorf("%w: field %q has unknown kind %s", ErrInvalidSchema, field.Path, field.Kind)
	}

	if tree.KindOf(field.Default) != field.Kind {
		return fmt.Errorf("%w: default of %q is %s, declared %s",
			ErrInvalidSchema, field.Path, tree.KindOf(field.Default), field.Kind)
	}

	return nil
}

// nests reports whether path lies strictly below parent.
func nests(path, parent string) bool {
	return strings.HasPrefix(path, parent+tree.PathSeparator)
}

// Fields returns a copy of the declared fields in declaration order.
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Defaults returns a fresh tree holding every field's default.
func (s *Schema) Defaults() tree.Map {
	return s.defaults.Clone()
}

// Declares reports whether path is a declared field.
func (s *Schema) Declares(path string) bool {
	for _, field := range s.fields {
		if field.Path == path {
			return true
		}
	}

	return false
}
