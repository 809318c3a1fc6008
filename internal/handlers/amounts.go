package handlers

import (
	"encoding/json"
	"math"

	"chaoscatering/internal/costing"
)

// amountFields are the numeric fields of the edit payloads with the value
// used when the text does not parse or parses to zero. Edit forms post these
// as typed text, so "12.50", "2x" and "abc" are all accepted.
var amountFields = map[string]float64{
	"quantity":         0,
	"menuPrice":        0,
	"buyingPrice":      0,
	"yieldAmount":      0,
	"yieldQuantity":    1,
	"cost":             0,
	"lastInvoicePrice": 0,
	"pricePerUnit":     0,
	"totalPrice":       0,
}

// amountMaps hold amounts in every value.
var amountMaps = map[string]float64{
	"overrides": 0,
}

// normalizeAmounts rewrites a raw JSON payload so that every amount field
// holds a number.
func normalizeAmounts(raw []byte) ([]byte, error) {
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}
	return json.Marshal(walkAmounts(tree))
}

func walkAmounts(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for key, field := range v {
			if fallback, ok := amountFields[key]; ok {
				v[key] = toAmount(field, fallback)
				continue
			}
			if fallback, ok := amountMaps[key]; ok {
				if values, isMap := field.(map[string]any); isMap {
					for k, item := range values {
						values[k] = toAmount(item, fallback)
					}
					continue
				}
			}
			v[key] = walkAmounts(field)
		}
		return v
	case []any:
		for i := range v {
			v[i] = walkAmounts(v[i])
		}
		return v
	default:
		return v
	}
}

// toAmount reads value the way a form field is read. Null stays null so
// optional fields remain absent.
func toAmount(value any, fallback float64) any {
	var parsed float64
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		parsed = v
	case string:
		parsed = costing.ParseAmount(v)
	default:
		return fallback
	}
	if parsed == 0 || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return fallback
	}
	return parsed
}
