package types

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Type validates and coerces attribute values.
type Type interface {
	Name() string
	Coerce(value any) (any, error)
}

// CoerceFunc adapts a function into the coercion half of a Type.
type CoerceFunc func(value any) (any, error)

type funcType struct {
	name   string
	coerce CoerceFunc
}

// New wraps a coercion function into a named Type. The function never
// receives nil.
func New(name string, coerce CoerceFunc) Type {
	return funcType{name: name, coerce: coerce}
}

func (t funcType) Name() string { return t.name }

func (t funcType) Coerce(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if t.coerce == nil {
		return value, nil
	}
	return t.coerce(value)
}

// Standard value types.
var (
	Any            = New("any", nil)
	String         = New("string", coerceString)
	Symbol         = New("symbol", coerceSymbol)
	Int            = New("int", coerceInt)
	Float          = New("float", coerceFloat)
	Bool           = New("bool", coerceBool)
	Map            = New("map", coerceMap)
	StringList     = New("string_list", coerceStringList)
	OptionsList    = New("options_list", coerceOptionsList)
	SelectionsList = New("selections_list", coerceSelectionsList)
	Function       = New("function", coerceFunction)
)

// Enum restricts base to the listed string values.
func Enum(base Type, values ...string) Type {
	allowed := make(map[string]struct{}, len(values))
	for _, value := range values {
		allowed[value] = struct{}{}
	}
	name := fmt.Sprintf("%s.enum(%s)", base.Name(), strings.Join(values, ", "))
	return New(name, func(value any) (any, error) {
		coerced, err := base.Coerce(value)
		if err != nil {
			return nil, err
		}
		key := fmt.Sprint(coerced)
		if _, ok := allowed[key]; !ok {
			return nil, fmt.Errorf("%q is not one of [%s]", key, strings.Join(values, ", "))
		}
		return coerced, nil
	})
}

func mismatch(expected string, value any) error {
	return fmt.Errorf("expected %s, got %T", expected, value)
}

func coerceString(value any) (any, error) {
	str, ok := value.(string)
	if !ok {
		return nil, mismatch("string", value)
	}
	return str, nil
}

func coerceSymbol(value any) (any, error) {
	str, ok := value.(string)
	if !ok {
		return nil, mismatch("symbol", value)
	}
	trimmed := strings.TrimSpace(str)
	if trimmed == "" {
		return nil, fmt.Errorf("symbol must not be empty")
	}
	return trimmed, nil
}

func coerceInt(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, fmt.Errorf("%d overflows int", v)
		}
		return int(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("%d overflows int", v)
		}
		return int(v), nil
	case float32:
		return integral(float64(v))
	case float64:
		return integral(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("%s is not an integer", v)
		}
		return int(n), nil
	default:
		return nil, mismatch("int", value)
	}
}

func integral(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not an integer", f)
	}
	return int(f), nil
}

func coerceFloat(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%s is not a number", v)
		}
		return f, nil
	}
	n, err := coerceInt(value)
	if err != nil {
		return nil, mismatch("float", value)
	}
	return float64(n.(int)), nil
}

func coerceBool(value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, mismatch("bool", value)
	}
	return b, nil
}

func coerceMap(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = item
		}
		return out, nil
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = item
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			str, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("map key %v is not a string", key)
			}
			out[str] = item
		}
		return out, nil
	default:
		return nil, mismatch("map", value)
	}
}

func coerceStringList(value any) (any, error) {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for idx, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d: %w", idx, mismatch("string", item))
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, mismatch("string list", value)
	}
}

func coerceOptionsList(value any) (any, error) {
	var items []any
	switch v := value.(type) {
	case [][]string:
		for _, item := range v {
			items = append(items, item)
		}
	case []any:
		items = v
	default:
		return nil, mismatch("options list", value)
	}

	out := make([][]string, 0, len(items))
	for idx, item := range items {
		pair, err := coerceStringList(item)
		if err != nil {
			return nil, fmt.Errorf("option %d: %w", idx, err)
		}
		option := pair.([]string)
		if len(option) != 2 {
			return nil, fmt.Errorf("option %d: expected [value, label], got %d items", idx, len(option))
		}
		out = append(out, option)
	}
	return out, nil
}

func coerceSelectionsList(value any) (any, error) {
	var items []any
	switch v := value.(type) {
	case []map[string]any:
		for _, item := range v {
			items = append(items, item)
		}
	case []any:
		items = v
	default:
		return nil, mismatch("selections list", value)
	}

	out := make([]map[string]any, 0, len(items))
	for idx, item := range items {
		selection, err := coerceMap(item)
		if err != nil {
			return nil, fmt.Errorf("selection %d: %w", idx, err)
		}
		out = append(out, selection.(map[string]any))
	}
	return out, nil
}

func coerceFunction(value any) (any, error) {
	if reflect.ValueOf(value).Kind() != reflect.Func {
		return nil, mismatch("function", value)
	}
	return value, nil
}
