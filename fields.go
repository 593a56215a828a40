package logplus

import (
	"fmt"
	"strings"
)

// Field is a single key/value pair of a structured payload.
type Field struct {
	Key   string
	Value any
}

// Fields is an insertion-ordered structured payload. Unlike a map, iterating
// a Fields value always yields keys in the order they were added, and the
// rendered form preserves that order.
type Fields []Field

// F constructs a single Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Get returns the value for key and whether it is present.
func (f Fields) Get(key string) (any, bool) {
	for _, kv := range f {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// String renders the payload as a brace-delimited list of quoted keys and
// values, e.g. {'result': 1, 'a': 'two', 'b': {'one': 'two'}}. String values
// are single-quoted, numbers and booleans are bare, nested Fields render
// recursively.
func (f Fields) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, kv := range f {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		b.WriteString(kv.Key)
		b.WriteString("': ")
		b.WriteString(renderValue(kv.Value))
	}
	b.WriteByte('}')
	return b.String()
}

func renderValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return "'" + t + "'"
	case Fields:
		return t.String()
	default:
		return safeFormat(v)
	}
}

// safeFormat renders an arbitrary value, substituting a type-name stand-in
// if formatting panics. A log call must never propagate a panic from a
// misbehaving Stringer to its caller.
func safeFormat(v any) (s string) {
	defer func() {
		if recover() != nil {
			s = fmt.Sprintf("<%T>", v)
		}
	}()
	return fmt.Sprintf("%v", v)
}

// bind returns a copy of base with extra applied on top: keys already
// present are overwritten in place, new keys are appended. base is never
// mutated.
func bind(base, extra Fields) Fields {
	merged := make(Fields, len(base), len(base)+len(extra))
	copy(merged, base)
next:
	for _, kv := range extra {
		for i := range merged {
			if merged[i].Key == kv.Key {
				merged[i].Value = kv.Value
				continue next
			}
		}
		merged = append(merged, kv)
	}
	return merged
}

// withDefaults returns payload extended with any defaults whose keys are not
// already present. Payload keys keep their position and win collisions.
func withDefaults(payload, defaults Fields) Fields {
	if len(defaults) == 0 {
		return payload
	}
	merged := make(Fields, len(payload), len(payload)+len(defaults))
	copy(merged, payload)
	for _, kv := range defaults {
		if _, ok := merged.Get(kv.Key); !ok {
			merged = append(merged, kv)
		}
	}
	return merged
}
