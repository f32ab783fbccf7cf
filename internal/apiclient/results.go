package apiclient

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Results normalizes the two list shapes the backend serves: a raw JSON
// array, or a paginated envelope {"results": [...], "count": n}. Callers
// never branch on shape again past this boundary.
type Results[T any] struct {
	Items []T
	// TotalCount is the envelope's count when paginated, otherwise the
	// number of decoded items.
	TotalCount int
}

// DecodeResults decodes either list shape into a Results value.
func DecodeResults[T any](data []byte) (Results[T], error) {
	var out Results[T]
	if len(data) == 0 {
		return out, nil
	}

	if gjson.GetBytes(data, "results").IsArray() {
		var envelope struct {
			Results []T `json:"results"`
			Count   int `json:"count"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return out, fmt.Errorf("decode paginated results: %w", err)
		}
		out.Items = envelope.Results
		out.TotalCount = envelope.Count
		if out.TotalCount < len(out.Items) {
			out.TotalCount = len(out.Items)
		}
		return out, nil
	}

	if err := json.Unmarshal(data, &out.Items); err != nil {
		return out, fmt.Errorf("decode results: %w", err)
	}
	out.TotalCount = len(out.Items)
	return out, nil
}
