package i18n

import (
	"errors"
	"strconv"
)

// ErrNotObject is returned when a translation document is not a JSON object.
var ErrNotObject = errors.New("translation document must be a JSON object")

// ParseMessages decodes a translation document and flattens it into
// dotted keys.
func ParseMessages(data []byte) (map[string]string, error) {
	v, err := DecodeValue(data)
	if err != nil {
		return nil, err
	}
	return Flatten(v)
}

// Flatten converts a nested JSON object into a single-level map keyed by
// dot-joined paths: {"menu":{"file":"File"}} becomes {"menu.file":"File"}.
//
// Leaves are handled as follows:
//   - strings are kept as is
//   - numbers and booleans become their JSON literal ("42", "true")
//   - null produces no entry
//   - array elements are keyed by their zero-based index ("list.0")
//
// Members are visited in document order, so when two paths compose to the
// same key the later one wins.
func Flatten(v Value) (map[string]string, error) {
	if v.Kind != KindObject {
		return nil, ErrNotObject
	}

	result := make(map[string]string)
	flattenInto(result, "", v)
	return result, nil
}

func flattenInto(dst map[string]string, key string, v Value) {
	switch v.Kind {
	case KindString:
		dst[key] = v.Text
	case KindNumber:
		dst[key] = v.Text
	case KindBool:
		dst[key] = strconv.FormatBool(v.Bool)
	case KindNull:
		// no entry: lookups fall through to the fallback language
	case KindObject:
		for _, m := range v.Object {
			flattenInto(dst, joinKey(key, m.Key), m.Value)
		}
	case KindArray:
		for i, el := range v.Array {
			flattenInto(dst, joinKey(key, strconv.Itoa(i)), el)
		}
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
