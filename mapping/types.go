package mapping

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Type is the type of a mapper attribute: one of the primitives below, a
// *Mapper, or a custom type registered with the generators.
type Type interface {
	// TypeName identifies the type in generated schemas and source.
	TypeName() string
	// Cast normalizes a raw value (typically a schema default) to the
	// type's canonical Go representation.
	Cast(v any) (any, error)
	// AsJSON renders a cast value as a JSON tree value.
	AsJSON(v any) any
	// AsXML renders a cast value as XML text.
	AsXML(v any) string
}

// Primitive is a built-in attribute type.
type Primitive string

// Built-in attribute types.
const (
	Value      Primitive = "Value"
	Boolean    Primitive = "Boolean"
	Integer    Primitive = "Integer"
	Float      Primitive = "Float"
	String     Primitive = "String"
	Date       Primitive = "Date"
	Time       Primitive = "Time"
	Enum       Primitive = "Enum"
	AnyOf      Primitive = "AnyOf"
	ObjectList Primitive = "ObjectList"
	Reference  Primitive = "Reference"
)

// Primitives lists the built-in types.
func Primitives() []Primitive {
	return []Primitive{Value, Boolean, Integer, Float, String, Date, Time, Enum, AnyOf, ObjectList, Reference}
}

// ParsePrimitive returns the built-in type with the given name.
func ParsePrimitive(name string) (Primitive, bool) {
	for _, p := range Primitives() {
		if strings.EqualFold(string(p), name) {
			return p, true
		}
	}
	return "", false
}

// TypeName implements Type.
func (p Primitive) TypeName() string { return string(p) }

const dateLayout = "2006-01-02"

// Cast implements Type. A nil value casts to nil.
func (p Primitive) Cast(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch p {
	case Boolean:
		return castBool(v)
	case Integer:
		return castInt(v)
	case Float:
		return castFloat(v)
	case String, Enum, ObjectList, Reference:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprint(v), nil
	case Date:
		t, err := castTime(v, dateLayout)
		if err != nil {
			return nil, err
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	case Time:
		return castTime(v, time.RFC3339Nano)
	default:
		return v, nil
	}
}

// AsJSON implements Type.
func (p Primitive) AsJSON(v any) any {
	switch p {
	case Date:
		if t, ok := v.(time.Time); ok {
			return t.Format(dateLayout)
		}
	case Time:
		if t, ok := v.(time.Time); ok {
			return t.Format(time.RFC3339)
		}
	}
	return v
}

// AsXML implements Type.
func (p Primitive) AsXML(v any) string {
	switch val := p.AsJSON(v).(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func castBool(v any) (any, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "t", "1", "yes", "on":
			return true, nil
		case "false", "f", "0", "no", "off", "":
			return false, nil
		}
	case int:
		return val != 0, nil
	case int64:
		return val != 0, nil
	case float64:
		return val != 0, nil
	}
	return nil, fmt.Errorf("cannot cast %T %v to Boolean", v, v)
}

func castInt(v any) (any, error) {
	switch val := v.(type) {
	case int:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case int64:
		return val, nil
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("cannot cast %v to Integer", val)
		}
		return int64(val), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot cast %q to Integer: %w", val, err)
		}
		return n, nil
	}
	return nil, fmt.Errorf("cannot cast %T %v to Integer", v, v)
}

func castFloat(v any) (any, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot cast %q to Float: %w", val, err)
		}
		return f, nil
	}
	return nil, fmt.Errorf("cannot cast %T %v to Float", v, v)
}

func castTime(v any, layout string) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case string:
		for _, l := range []string{layout, time.RFC3339Nano, dateLayout} {
			if t, err := time.Parse(l, val); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("cannot parse %q as a date or time", val)
	}
	return time.Time{}, fmt.Errorf("cannot cast %T %v to a date or time", v, v)
}
