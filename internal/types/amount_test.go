package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshalJSON(t *testing.T) {
	tests := []struct {
		body string
		want Amount
	}{
		{`{"price": 8}`, "8"},
		{`{"price": 8.00}`, "8.00"},
		{`{"price": "8.50"}`, "8.50"},
		{`{"price": " 12 "}`, "12"},
		{`{"price": -1}`, "-1"},
		{`{"price": "eight"}`, "eight"},
		{`{"price": null}`, ""},
		{`{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req CreateDishRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.Price)
		})
	}
}

func TestUpdateDishRequestDistinguishesOmittedPrice(t *testing.T) {
	var omitted UpdateDishRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Golgappa"}`), &omitted))
	assert.Nil(t, omitted.Price)

	var set UpdateDishRequest
	require.NoError(t, json.Unmarshal([]byte(`{"price":"9.25"}`), &set))
	require.NotNil(t, set.Price)
	assert.Equal(t, Amount("9.25"), *set.Price)
}
