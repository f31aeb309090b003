package utils

import "github.com/shopspring/decimal"

// Helpers for pulling typed values out of a generically-decoded JSON tree
// (map[string]interface{}/[]interface{}), which is what a job payload looks
// like after encoding/json.Unmarshal into interface{}.

// AsMap returns v as a string-keyed map, or an empty map if v is not one.
func AsMap(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

// AsSlice returns v as a slice, or nil if v is not one.
func AsSlice(v interface{}) []interface{} {
	if s, ok := v.([]interface{}); ok {
		return s
	}
	return nil
}

// AsString returns v as a string and whether the assertion succeeded.
func AsString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsFloat returns v as a float64, accepting JSON numbers (float64) and
// numeric strings (since week indices and scalar values may arrive either
// way on the wire). String values are parsed through shopspring/decimal
// rather than strconv.ParseFloat so a payload field like "12.10" round-trips
// exactly instead of picking up binary float noise before it ever reaches
// the solver's coefficient matrix.
func AsFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		if d, err := decimal.NewFromString(t); err == nil {
			f, _ := d.Float64()
			return f, true
		}
	}
	return 0, false
}

// AsInt returns v as an int, accepting JSON numbers and digit strings.
func AsInt(v interface{}) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case string:
		return ParseIntegerKey(t)
	}
	return 0, false
}

// AsBool returns v as a bool, accepting JSON booleans and the numeric 0/1
// encoding the availability map uses.
func AsBool(v interface{}) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case float64:
		if t == 0 {
			return false, true
		}
		if t == 1 {
			return true, true
		}
	}
	return false, false
}

// AsStringSlice returns v as a []string, skipping non-string elements.
func AsStringSlice(v interface{}) []string {
	raw := AsSlice(v)
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := AsString(e); ok {
			out = append(out, s)
		}
	}
	return out
}

// AsFloatMap returns v as a string-keyed float64 map, ignoring entries
// whose value cannot be coerced to a number.
func AsFloatMap(v interface{}) map[string]float64 {
	m := AsMap(v)
	out := make(map[string]float64, len(m))
	for k, raw := range m {
		if f, ok := AsFloat(raw); ok {
			out[k] = f
		}
	}
	return out
}

// AsIntMap returns v as a string-keyed int map.
func AsIntMap(v interface{}) map[string]int {
	m := AsMap(v)
	out := make(map[string]int, len(m))
	for k, raw := range m {
		if n, ok := AsInt(raw); ok {
			out[k] = n
		}
	}
	return out
}

// AsStringSliceMap returns v as a map of string to []string, as used by
// substitutes_can_replace.
func AsStringSliceMap(v interface{}) map[string][]string {
	m := AsMap(v)
	out := make(map[string][]string, len(m))
	for k, raw := range m {
		out[k] = AsStringSlice(raw)
	}
	return out
}
