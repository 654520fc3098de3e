package schema

import (
	"fmt"

	"github.com/0xalexb/bluecommit/config/tree"
)

// Result is a validated configuration: one correctly typed value per declared field.
type Result struct {
	values map[string]tree.Value

	// Fallbacks lists the fields replaced by their default under PolicyPartial.
	Fallbacks []*FieldError
	// Unknown lists merged paths the schema does not declare. They are dropped.
	Unknown []string
}

// Value returns the validated value of a declared field.
func (r *Result) Value(path string) (tree.Value, bool) {
	val, ok := r.values[path]

	return tree.Clone(val), ok
}

// Bool returns a declared boolean field.
func (r *Result) Bool(path string) (bool, error) {
	val, ok := r.values[path]
	if !ok {
		return false, fmt.Errorf("%s: %w", path, ErrFieldMissing)
	}

	b, ok := val.(tree.Bool)
	if !ok {
		return false, fmt.Errorf("%s: %w: %s is not a boolean", path, ErrTypeMismatch, val.Kind())
	}

	return bool(b), nil
}

// Validate checks merged against the schema.
//
// A declared field that is missing fails validation under every policy; a
// tree merged with Defaults always has every field. A field with the wrong
// kind, or hidden below a leaf that replaced one of its parent maps, is
// replaced by its default under PolicyPartial and fails validation under
// PolicyStrict. The returned error is a *ValidationErrors.
func (s *Schema) Validate(merged tree.Map, policy Policy) (*Result, error) {
	result := &Result{
		values:    make(map[string]tree.Value, len(s.fields)),
		Fallbacks: nil,
		Unknown:   s.unknown(merged),
	}
	errs := &ValidationErrors{}

	for _, field := range s.fields {
		val, blockedAt, found := lookup(merged, tree.SplitPath(field.Path))
		if !found {
			errs.Add(&FieldError{
				Path:     field.Path,
				Expected: field.Kind,
				Got:      tree.KindInvalid,
				Value:    nil,
				At:       "",
				Err:      ErrFieldMissing,
			})

			continue
		}

		if blockedAt == "" && tree.KindOf(val) == field.Kind {
			result.values[field.Path] = tree.Clone(val)

			continue
		}

		mismatch := &FieldError{
			Path:     field.Path,
			Expected: field.Kind,
			Got:      tree.KindOf(val),
			Value:    tree.Clone(val),
			At:       blockedAt,
			Err:      ErrTypeMismatch,
		}

		if policy == PolicyStrict {
			errs.Add(mismatch)

			continue
		}

		result.Fallbacks = append(result.Fallbacks, mismatch)
		result.values[field.Path] = tree.Clone(field.Default)
	}

	err := errs.AsError()
	if err != nil {
		return nil, err
	}

	return result, nil
}

// lookup walks path. When a leaf sits where a map is needed it returns that
// leaf with its dotted path as blockedAt.
func lookup(m tree.Map, path []string) (tree.Value, string, bool) {
	var current tree.Value = m

	for i, segment := range path {
		node, isMap := current.(tree.Map)
		if !isMap {
			return current, tree.JoinPath(path[:i]), true
		}

		next, exists := node[segment]
		if !exists {
			return nil, "", false
		}

		current = next
	}

	return current, "", true
}

func (s *Schema) unknown(merged tree.Map) []string {
	var unknown []string

	for _, path := range merged.Paths() {
		if !s.related(path) {
			unknown = append(unknown, path)
		}
	}

	return unknown
}

// related reports whether path is a declared field, lies below one, or is a
// parent of one.
func (s *Schema) related(path string) bool {
	for _, field := range s.fields {
		if path == field.Path || nests(path, field.Path) || nests(field.Path, path) {
			return true
		}
	}

	return false
}
