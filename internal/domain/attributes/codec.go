package attributes

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	literalTrue  = "true"
	literalFalse = "false"
)

// Value is one decoded scalar.
type Value struct {
	Kind ScalarKind
	Int  int
	Bool bool
	Str  string
}

// IntValue wraps an integer.
func IntValue(v int) Value { return Value{Kind: KindInteger, Int: v} }

// BoolValue wraps a boolean.
func BoolValue(v bool) Value { return Value{Kind: KindBoolean, Bool: v} }

// StringValue wraps a string.
func StringValue(v string) Value { return Value{Kind: KindString, Str: v} }

// Record holds the decoded values of one entity, keyed by member name.
type Record map[string]Value

// Int returns the integer stored for member.
func (r Record) Int(member string) int {
	return r.must(member, KindInteger).Int
}

// Bool returns the boolean stored for member.
func (r Record) Bool(member string) bool {
	return r.must(member, KindBoolean).Bool
}

// String returns the string stored for member.
func (r Record) String(member string) string {
	return r.must(member, KindString).Str
}

func (r Record) must(member string, kind ScalarKind) Value {
	v, ok := r[member]
	if !ok {
		panic(fmt.Sprintf("attributes: record has no member %q", member))
	}
	if v.Kind != kind {
		panic(fmt.Sprintf("attributes: member %q is %s, not %s", member, v.Kind, kind))
	}
	return v
}

// Schema binds an entity type to its field table, its prefix generator and
// the conversions between the entity and a Record.
type Schema[T any] struct {
	Name     string
	Registry Registry
	// Arity is the number of indices the prefix generator takes.
	Arity  int
	Prefix func(indices ...int) string
	Encode func(T) Record
	Decode func(Record) T
}

// PrefixFor returns the prefix addressing the entity at the given indices.
// It panics when the number of indices does not match the schema's arity or
// an index is negative.
func (s Schema[T]) PrefixFor(indices ...int) string {
	if len(indices) != s.Arity {
		panic(fmt.Sprintf("attributes: %s prefix takes %d indices, got %d", s.Name, s.Arity, len(indices)))
	}
	for _, idx := range indices {
		if idx < 0 {
			panic(fmt.Sprintf("attributes: %s prefix index %d is negative", s.Name, idx))
		}
	}
	return s.Prefix(indices...)
}

// Serialize writes every mapped member of entity under prefix.
// A member missing from the encoded record, or encoded with the wrong kind,
// is a programming error and panics.
func Serialize[T any](store Store, schema Schema[T], entity T, prefix string) {
	rec := schema.Encode(entity)
	for _, f := range schema.Registry.fields {
		v, ok := rec[f.Member]
		if !ok {
			panic(fmt.Sprintf("attributes: %s encoder did not produce member %q", schema.Name, f.Member))
		}
		if v.Kind != f.Kind {
			panic(fmt.Sprintf("attributes: %s member %q encoded as %s, declared %s", schema.Name, f.Member, v.Kind, f.Kind))
		}
		store.Set(Key(prefix, f.Suffix), EncodeValue(v))
	}
}

// Deserialize reads every mapped member under prefix and builds the entity.
// It returns *MissingAttributeError when a key is absent and
// *TypeCoercionError when a value cannot be decoded; the entity is only
// constructed once all members decoded.
func Deserialize[T any](store Store, schema Schema[T], prefix string) (T, error) {
	var zero T

	rec := make(Record, schema.Registry.Len())
	for _, f := range schema.Registry.fields {
		key := Key(prefix, f.Suffix)
		raw, ok := store.Get(key)
		if !ok {
			return zero, &MissingAttributeError{Key: key}
		}
		v, err := DecodeValue(key, raw, f.Kind)
		if err != nil {
			return zero, err
		}
		rec[f.Member] = v
	}

	return schema.Decode(rec), nil
}

// EncodeValue renders a value in its wire form.
func EncodeValue(v Value) string {
	switch v.Kind {
	case KindInteger:
		return strconv.Itoa(v.Int)
	case KindBoolean:
		if v.Bool {
			return literalTrue
		}
		return literalFalse
	case KindString:
		return v.Str
	default:
		panic(fmt.Sprintf("attributes: cannot encode kind %d", v.Kind))
	}
}

// DecodeValue parses raw as the given kind. key is only used in errors.
func DecodeValue(key, raw string, kind ScalarKind) (Value, error) {
	switch kind {
	case KindInteger:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Value{}, &TypeCoercionError{Key: key, Raw: raw, Kind: kind}
		}
		return IntValue(n), nil
	case KindBoolean:
		switch strings.ToLower(raw) {
		case literalTrue:
			return BoolValue(true), nil
		case literalFalse:
			return BoolValue(false), nil
		}
		return Value{}, &TypeCoercionError{Key: key, Raw: raw, Kind: kind}
	case KindString:
		return StringValue(raw), nil
	default:
		return Value{}, &TypeCoercionError{Key: key, Raw: raw, Kind: kind}
	}
}
