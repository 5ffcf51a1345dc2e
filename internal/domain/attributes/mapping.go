package attributes

import "fmt"

// FieldMapping pairs an entity member with the attribute suffix that stores it.
type FieldMapping struct {
	Member string
	Suffix string
	Kind   ScalarKind
}

// Registry is the ordered, immutable field table of one entity type.
type Registry struct {
	fields []FieldMapping
	byName map[string]int
}

// NewRegistry builds a registry from the given rows, in order.
// It panics on an empty member or suffix, a duplicate member, a duplicate
// suffix or an unknown kind: registries are declared once at package init.
func NewRegistry(fields ...FieldMapping) Registry {
	r := Registry{
		fields: make([]FieldMapping, len(fields)),
		byName: make(map[string]int, len(fields)),
	}
	suffixes := make(map[string]string, len(fields))

	for i, f := range fields {
		if f.Member == "" || f.Suffix == "" {
			panic(fmt.Sprintf("attributes: field %d has an empty member or suffix", i))
		}
		if f.Kind < KindInteger || f.Kind > KindString {
			panic(fmt.Sprintf("attributes: field %q has unknown kind %d", f.Member, f.Kind))
		}
		if _, dup := r.byName[f.Member]; dup {
			panic(fmt.Sprintf("attributes: duplicate member %q", f.Member))
		}
		if owner, dup := suffixes[f.Suffix]; dup {
			panic(fmt.Sprintf("attributes: suffix %q used by both %q and %q", f.Suffix, owner, f.Member))
		}
		suffixes[f.Suffix] = f.Member
		r.byName[f.Member] = i
		r.fields[i] = f
	}

	return r
}

// Fields returns a copy of the field table in declaration order.
func (r Registry) Fields() []FieldMapping {
	out := make([]FieldMapping, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of mapped fields.
func (r Registry) Len() int {
	return len(r.fields)
}

// Lookup returns the mapping declared for member.
func (r Registry) Lookup(member string) (FieldMapping, bool) {
	i, ok := r.byName[member]
	if !ok {
		return FieldMapping{}, false
	}
	return r.fields[i], true
}

// Key joins an entity prefix and a field suffix into an attribute key.
func Key(prefix, suffix string) string {
	return prefix + "_" + suffix
}
