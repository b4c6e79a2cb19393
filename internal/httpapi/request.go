package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hobbleabbas/bapu-gateway/internal/common"
)

// errBadBody covers bodies that are not a JSON object at all; per-field
// problems get a ValidationError naming the field instead.
var errBadBody = errors.New("request body must be a JSON object")

// requestBody holds the raw request fields so each can be validated
// individually, distinguishing "missing" from "wrong type".
type requestBody map[string]json.RawMessage

func decodeBody(r *http.Request) (requestBody, error) {
	var b requestBody
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		return nil, errBadBody
	}
	return b, nil
}

func (b requestBody) stringField(key string) (string, error) {
	raw, ok := b[key]
	if !ok {
		return "", common.MissingParam(key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", common.WrongType(key, "string")
	}
	return s, nil
}

func (b requestBody) boolField(key string) (bool, error) {
	raw, ok := b[key]
	if !ok {
		return false, common.MissingParam(key)
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, common.WrongType(key, "boolean")
	}
	return v, nil
}

// amountField accepts a JSON number or a numeric string.
func (b requestBody) amountField(key string) (float64, error) {
	raw, ok := b[key]
	if !ok {
		return 0, common.MissingParam(key)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, nil
		}
	}
	return 0, common.WrongType(key, "number")
}
