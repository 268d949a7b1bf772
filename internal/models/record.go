// internal/models/record.go
package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is a loosely typed bag of extracted fields.
type Record map[string]interface{}

// Merge folds src into r. Lists concatenate, nested objects shallow-merge with
// src keys winning, and everything else is overwritten by src.
func (r Record) Merge(src Record) Record {
	if r == nil {
		r = Record{}
	}
	for key, incoming := range src {
		existing, ok := r[key]
		if !ok {
			r[key] = cloneValue(incoming)
			continue
		}

		if a, isList := asList(existing); isList {
			if b, isList := asList(incoming); isList {
				merged := make([]interface{}, 0, len(a)+len(b))
				merged = append(merged, a...)
				merged = append(merged, b...)
				r[key] = merged
				continue
			}
		}

		if a, isMap := asRecord(existing); isMap {
			if b, isMap := asRecord(incoming); isMap {
				merged := make(Record, len(a)+len(b))
				for k, v := range a {
					merged[k] = v
				}
				for k, v := range b {
					merged[k] = v
				}
				r[key] = merged
				continue
			}
		}

		r[key] = cloneValue(incoming)
	}
	return r
}

// Clone returns a shallow copy with nested records and lists copied one level down.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	if list, ok := asList(v); ok {
		return append([]interface{}(nil), list...)
	}
	if m, ok := asRecord(v); ok {
		out := make(Record, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out
	}
	return v
}

func asList(v interface{}) ([]interface{}, bool) {
	switch t := v.(type) {
	case []interface{}:
		return t, true
	case []string:
		out := make([]interface{}, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	case []Record:
		out := make([]interface{}, len(t))
		for i, rec := range t {
			out[i] = rec
		}
		return out, true
	case []map[string]interface{}:
		out := make([]interface{}, len(t))
		for i, m := range t {
			out[i] = Record(m)
		}
		return out, true
	}
	return nil, false
}

func asRecord(v interface{}) (Record, bool) {
	switch t := v.(type) {
	case Record:
		return t, true
	case map[string]interface{}:
		return Record(t), true
	}
	return nil, false
}

// Has reports whether key is set to a non-nil value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Float reads a numeric field. Strings like "1,200,000" are accepted.
func (r Record) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	return ToFloat(v)
}

func (r Record) Int(key string) (int, bool) {
	f, ok := r.Float(key)
	return int(f), ok
}

func (r Record) String(key string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}

func (r Record) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

// Strings returns the string elements of a list field.
func (r Record) Strings(key string) []string {
	list, ok := asList(r[key])
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Map returns a nested object, or an empty Record.
func (r Record) Map(key string) Record {
	if m, ok := asRecord(r[key]); ok {
		return m
	}
	return Record{}
}

func (r Record) List(key string) []interface{} {
	list, _ := asList(r[key])
	return list
}

// Records returns the object elements of a list field.
func (r Record) Records(key string) []Record {
	list, _ := asList(r[key])
	out := make([]Record, 0, len(list))
	for _, item := range list {
		if m, ok := asRecord(item); ok {
			out = append(out, m)
		}
	}
	return out
}

// ToFloat converts JSON-ish numeric values.
func ToFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(n, ",", ""))
		f, err := strconv.ParseFloat(cleaned, 64)
		return f, err == nil
	}
	return 0, false
}
