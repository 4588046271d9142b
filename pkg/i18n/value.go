package i18n

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ValueKind identifies the variant held by a Value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

// Member is a single key/value pair of a JSON object, in document order.
type Member struct {
	Key   string
	Value Value
}

// Value is a decoded JSON value. Objects keep their members in document
// order, duplicates included, so flattening is deterministic.
type Value struct {
	// Text holds the string for KindString and the literal for KindNumber.
	Text   string
	Object []Member
	Array  []Value
	Bool   bool
	Kind   ValueKind
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeValue parses a single JSON document into a Value.
// A leading UTF-8 byte order mark is ignored. Trailing data after the
// top-level value is an error.
func DecodeValue(data []byte) (Value, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return Value{}, err
		}
		return Value{}, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
	}

	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q at offset %d", t, dec.InputOffset())
		}
	case string:
		return Value{Kind: KindString, Text: t}, nil
	case json.Number:
		return Value{Kind: KindNumber, Text: t.String()}, nil
	case bool:
		return Value{Kind: KindBool, Bool: t}, nil
	case nil:
		return Value{Kind: KindNull}, nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v at offset %d", tok, dec.InputOffset())
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := Value{Kind: KindObject, Object: []Member{}}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key must be a string at offset %d", dec.InputOffset())
		}

		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		obj.Object = append(obj.Object, Member{Key: key, Value: val})
	}

	if err := closeToken(dec); err != nil {
		return Value{}, err
	}

	return obj, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	arr := Value{Kind: KindArray, Array: []Value{}}

	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		arr.Array = append(arr.Array, val)
	}

	if err := closeToken(dec); err != nil {
		return Value{}, err
	}

	return arr, nil
}

// closeToken consumes the closing delimiter of an object or array.
func closeToken(dec *json.Decoder) error {
	if _, err := dec.Token(); err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}
