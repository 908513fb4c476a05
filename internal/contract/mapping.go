package contract

import (
	"encoding/json"
	"strings"

	"github.com/quarkw/constfit/schema"
)

// Field-name mapping, version 1. User-submitted JSON may use any alias for
// the canonical fields; the mapping is applied exactly once, here at the
// system boundary. The core only ever sees the canonical request shape.
var (
	expressionAliases  = []string{"expression", "expr", "formula"}
	targetAliases      = []string{"target", "target_value", "value", "computed", "result"}
	nameAliases        = []string{"target_name", "name", "constant"}
	descriptionAliases = []string{"description", "desc", "notes"}
)

// MapBatchPayload normalizes a raw batch payload into canonical requests.
// A payload that is not a JSON array is the single batch-fatal condition
// and is returned as an InputShapeError.
func MapBatchPayload(data []byte) ([]schema.EvaluationRequest, *schema.EvalError) {
	var rawItems []json.RawMessage
	if err := json.Unmarshal(data, &rawItems); err != nil {
		return nil, schema.NewEvalError(schema.InputShapeError,
			"batch payload must be a JSON array of items: %v", err)
	}
	items := make([]schema.EvaluationRequest, 0, len(rawItems))
	for _, raw := range rawItems {
		items = append(items, MapItem(raw))
	}
	return items, nil
}

// MapItem normalizes one raw batch item. Mapping never fails: an item that
// is not an object, or is missing fields, maps to a request with empty
// canonical fields, which the batch driver then records as a
// MissingFieldError at the item's index.
func MapItem(raw json.RawMessage) schema.EvaluationRequest {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return schema.EvaluationRequest{TargetName: "unknown"}
	}

	lower := make(map[string]json.RawMessage, len(obj))
	for k, v := range obj {
		lower[strings.ToLower(k)] = v
	}

	req := schema.EvaluationRequest{
		Expression:  firstString(lower, expressionAliases),
		TargetValue: firstNumeric(lower, targetAliases),
		TargetName:  firstString(lower, nameAliases),
		Description: firstString(lower, descriptionAliases),
	}
	if req.TargetName == "" {
		req.TargetName = "unknown"
	}
	if consts, ok := lower["constants"]; ok {
		_ = json.Unmarshal(consts, &req.Constants)
	}
	return req
}

func firstString(obj map[string]json.RawMessage, aliases []string) string {
	for _, key := range aliases {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}

// firstNumeric accepts either a JSON string or a JSON number for the
// target value and returns its decimal text.
func firstNumeric(obj map[string]json.RawMessage, aliases []string) string {
	for _, key := range aliases {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil && n.String() != "" {
			return n.String()
		}
	}
	return ""
}
