package models

import (
	"encoding/json"
	"fmt"
)

// ValueKind identifies which member of the Value union is set.
type ValueKind int

const (
	KindString ValueKind = iota
	KindBool
	KindInt
	KindList
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a single wizard selection value. It is a closed union over the
// value shapes the backend accepts: identifier string, boolean flag, integer
// count, or list of identifier strings. It marshals to the bare JSON value,
// not an envelope, so the wire form matches what the backend expects in the
// scope blob.
type Value struct {
	Kind ValueKind
	Str  string
	Bool bool
	Int  int
	List []string
}

// String creates a string Value
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Bool creates a boolean Value
func Bool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// Int creates an integer Value
func Int(i int) Value {
	return Value{Kind: KindInt, Int: i}
}

// List creates a string-list Value
func List(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{Kind: KindList, List: items}
}

// IsZero reports whether the value is the empty value of its kind. Used by
// step validation to detect unset required selections.
func (v Value) IsZero() bool {
	switch v.Kind {
	case KindString:
		return v.Str == ""
	case KindBool:
		return false // a false flag is still a deliberate choice
	case KindInt:
		return false
	case KindList:
		return len(v.List) == 0
	default:
		return true
	}
}

// Equal reports whether two values have the same kind and contents.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == other.Str
	case KindBool:
		return v.Bool == other.Bool
	case KindInt:
		return v.Int == other.Int
	case KindList:
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if v.List[i] != other.List[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// MarshalJSON encodes the bare underlying value.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindInt:
		return json.Marshal(v.Int)
	case KindList:
		if v.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.List)
	default:
		return nil, fmt.Errorf("cannot marshal value of kind %d", v.Kind)
	}
}

// UnmarshalJSON sniffs the JSON shape to recover the kind. Numbers are
// treated as integer counts since no tenant uses fractional values.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch t := raw.(type) {
	case string:
		*v = String(t)
	case bool:
		*v = Bool(t)
	case float64:
		*v = Int(int(t))
	case []any:
		items := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("list value contains non-string element %v", item)
			}
			items = append(items, s)
		}
		*v = List(items...)
	case nil:
		*v = String("")
	default:
		return fmt.Errorf("unsupported value type %T", raw)
	}

	return nil
}

// Display renders the value for human-facing output.
func (v Value) Display() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindBool:
		if v.Bool {
			return "yes"
		}
		return "no"
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindList:
		if len(v.List) == 0 {
			return "none"
		}
		out := v.List[0]
		for _, item := range v.List[1:] {
			out += ", " + item
		}
		return out
	default:
		return ""
	}
}

// Selections maps option keys to chosen values.
type Selections map[string]Value

// Clone returns a deep copy of the selections map.
func (s Selections) Clone() Selections {
	out := make(Selections, len(s))
	for key, value := range s {
		if value.Kind == KindList {
			list := make([]string, len(value.List))
			copy(list, value.List)
			value.List = list
		}
		out[key] = value
	}
	return out
}
