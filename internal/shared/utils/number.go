package utils

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// FlexInt decodes a JSON integer or a string holding one, e.g. 200 or "200".
type FlexInt int64

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	raw := string(b)
	if raw == "null" {
		return nil
	}

	s := raw
	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return typeError("string")
		}
		s = strings.TrimSpace(unquoted)
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return typeError(jsonKind(raw))
	}
	*n = FlexInt(v)
	return nil
}

func typeError(value string) error {
	return &json.UnmarshalTypeError{Value: value, Type: reflect.TypeOf(int64(0))}
}

func jsonKind(raw string) string {
	switch raw[0] {
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "number " + raw
	}
}
