package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDUnmarshalNumberAndString(t *testing.T) {
	var line CartLine
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "quantity": 1}`), &line))
	assert.Equal(t, ID("42"), line.ID)
	assert.True(t, line.ID.IsNumeric())

	require.NoError(t, json.Unmarshal([]byte(`{"id": "guest-token", "quantity": 1}`), &line))
	assert.Equal(t, ID("guest-token"), line.ID)
	assert.False(t, line.ID.IsNumeric())
}

func TestIDMarshal(t *testing.T) {
	data, err := json.Marshal(ID("42"))
	require.NoError(t, err)
	assert.Equal(t, "42", string(data))

	data, err = json.Marshal(ID("guest-token"))
	require.NoError(t, err)
	assert.Equal(t, `"guest-token"`, string(data))
}

func TestMoneyUnmarshalDecimalString(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "price": "12.99"}`), &p))
	assert.InDelta(t, 12.99, float64(p.Price), 1e-9)

	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "price": 12.99}`), &p))
	assert.InDelta(t, 12.99, float64(p.Price), 1e-9)
}

func TestMoneyFormatRoundsForDisplayOnly(t *testing.T) {
	m := Money(49.19000000000001)
	assert.Equal(t, "49.19", m.Format())
}

func TestLineTotalMissingProductIsZero(t *testing.T) {
	line := CartLine{ID: "1", Quantity: 5}
	assert.Zero(t, float64(line.LineTotal()))

	line.Product = &Product{ID: "p", Price: 10}
	assert.InDelta(t, 50, float64(line.LineTotal()), 1e-9)
}

func TestProductQueryParams(t *testing.T) {
	min := 5.0
	q := ProductQuery{
		Page:     2,
		PageSize: 20,
		Category: "electronics",
		SortBy:   "price_low",
		Search:   "cable",
		MinPrice: &min,
	}
	params := q.Params()
	assert.Equal(t, "2", params["page"])
	assert.Equal(t, "20", params["page_size"])
	assert.Equal(t, "electronics", params["category"])
	assert.Equal(t, "price_low", params["sort_by"])
	assert.Equal(t, "cable", params["search"])
	assert.Equal(t, "5", params["min_price"])
	_, hasMax := params["max_price"]
	assert.False(t, hasMax)

	assert.Empty(t, ProductQuery{}.Params())
}
