package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFlexTimeJSONString(t *testing.T) {
	var ft FlexTime
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-10T18:00:00Z"`), &ft))
	assert.True(t, ft.Valid())
	assert.Equal(t, time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC), ft.Time())
}

func TestFlexTimeJSONDateOnly(t *testing.T) {
	var ft FlexTime
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-05"`), &ft))
	assert.True(t, ft.Valid())
	assert.Equal(t, 2024, ft.Time().Year())
}

func TestFlexTimeJSONNull(t *testing.T) {
	var ft FlexTime
	require.NoError(t, json.Unmarshal([]byte(`null`), &ft))
	assert.True(t, ft.Absent())
	assert.False(t, ft.Valid())
	assert.Equal(t, int64(0), ft.UnixMilli())
}

func TestFlexTimeJSONGarbage(t *testing.T) {
	var ft FlexTime
	require.NoError(t, json.Unmarshal([]byte(`"not a date"`), &ft))
	assert.True(t, ft.Malformed())
	assert.False(t, ft.Valid())
}

func TestFlexTimeJSONEpochMillis(t *testing.T) {
	var ft FlexTime
	require.NoError(t, json.Unmarshal([]byte(`1704067200000`), &ft))
	assert.True(t, ft.Valid())
	assert.Equal(t, 2024, ft.Time().UTC().Year())
}

func TestFlexTimeBSONRoundTrip(t *testing.T) {
	type doc struct {
		When FlexTime `bson:"when"`
	}

	orig := doc{When: NewFlexTime(time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC))}
	raw, err := bson.Marshal(orig)
	require.NoError(t, err)

	var decoded doc
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.True(t, decoded.When.Valid())
	assert.Equal(t, orig.When.UnixMilli(), decoded.When.UnixMilli())
}

func TestFlexTimeBSONStringValue(t *testing.T) {
	type legacy struct {
		When string `bson:"when"`
	}
	type doc struct {
		When FlexTime `bson:"when"`
	}

	raw, err := bson.Marshal(legacy{When: "2024-01-10T18:00:00Z"})
	require.NoError(t, err)

	var decoded doc
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.True(t, decoded.When.Valid())
	assert.Equal(t, time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC), decoded.When.Time())
}

func TestFlexTimeBSONMissingField(t *testing.T) {
	type empty struct{}
	type doc struct {
		When FlexTime `bson:"when"`
	}

	raw, err := bson.Marshal(empty{})
	require.NoError(t, err)

	var decoded doc
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.True(t, decoded.When.Absent())
}
