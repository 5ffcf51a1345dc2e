// Package attributes maps the flat, index-addressed attribute namespace of the
// telemetry file onto typed team and player records and back.
//
// Every entity type declares a Registry of (member, suffix, kind) rows and a
// prefix generator. The codec joins prefix and suffix into an attribute key,
// converts the raw string value into the declared scalar kind, and builds the
// entity from a complete Record in one step. The Enumerator discovers how many
// teams and players a snapshot holds by walking ascending indices.
package attributes

// ScalarKind is the wire encoding of a single attribute value.
type ScalarKind int

const (
	KindInteger ScalarKind = iota // base-10 integer
	KindBoolean                   // "true" / "false"
	KindString                    // passed through unchanged
)

// String returns a human-readable representation of the ScalarKind.
func (k ScalarKind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}
