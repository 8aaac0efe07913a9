package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePostInputTriState(t *testing.T) {
	var absent UpdatePostInput
	require.NoError(t, json.Unmarshal([]byte(`{"title":"New title"}`), &absent))
	assert.False(t, absent.PriceKRW.Set)
	assert.False(t, absent.LocationHint.Set)
	assert.Nil(t, absent.Tags)

	var cleared UpdatePostInput
	require.NoError(t, json.Unmarshal([]byte(`{"price_krw":null,"location_hint":null}`), &cleared))
	assert.True(t, cleared.PriceKRW.Set)
	assert.Nil(t, cleared.PriceKRW.Value)
	assert.True(t, cleared.LocationHint.Set)

	var set UpdatePostInput
	require.NoError(t, json.Unmarshal([]byte(`{"price_krw":15000,"tags":[]}`), &set))
	require.NotNil(t, set.PriceKRW.Value)
	assert.Equal(t, int64(15000), *set.PriceKRW.Value)
	assert.NotNil(t, set.Tags)
}

func TestNullableRejectsWrongType(t *testing.T) {
	var in UpdatePostInput
	assert.Error(t, json.Unmarshal([]byte(`{"price_krw":"cheap"}`), &in))
}

func TestMapList(t *testing.T) {
	in := ListResult[int]{Items: []int{1, 2}, Total: 5, Limit: 2, Offset: 0, HasMore: true}
	out := MapList(in, func(v int) string { return string(rune('a' + v)) })
	assert.Equal(t, []string{"b", "c"}, out.Items)
	assert.Equal(t, 5, out.Total)
	assert.True(t, out.HasMore)
}
