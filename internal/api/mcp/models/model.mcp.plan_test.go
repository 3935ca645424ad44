package mcpmodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func decodePlan(t *testing.T, doc bson.M) VisitPlanEntry {
	t.Helper()
	data, err := bson.Marshal(doc)
	require.NoError(t, err)

	var entry VisitPlanEntry
	require.NoError(t, bson.Unmarshal(data, &entry))
	return entry
}

func TestVisitPlanEntry_UnmarshalBSON_DateFieldVariants(t *testing.T) {
	wantMs := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC).UnixMilli()

	cases := []struct {
		name string
		doc  bson.M
	}{
		{"field date kiểu datetime", bson.M{"date": primitive.NewDateTimeFromTime(time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC))}},
		{"field date kiểu UnixMilli", bson.M{"date": wantMs}},
		{"field Date viết hoa", bson.M{"Date": wantMs}},
		{"field visitDate", bson.M{"visitDate": wantMs}},
		{"field date kiểu chuỗi ISO", bson.M{"date": "2026-08-10"}},
		{"field date kiểu chuỗi dd/mm/yyyy", bson.M{"date": "10/08/2026"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.doc["username"] = "user1"
			tc.doc["storeCode"] = "100"
			entry := decodePlan(t, tc.doc)
			assert.Equal(t, wantMs, entry.Date)
		})
	}
}

func TestVisitPlanEntry_UnmarshalBSON_StoreCodeVariants(t *testing.T) {
	cases := []struct {
		name string
		raw  interface{}
		want string
	}{
		{"chuỗi", "ST-001", "ST-001"},
		{"chuỗi có khoảng trắng", "  100 ", "100"},
		{"int32", int32(100), "100"},
		{"int64", int64(100), "100"},
		{"double nguyên", float64(100), "100"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry := decodePlan(t, bson.M{"username": "user1", "storeCode": tc.raw, "date": int64(0)})
			assert.Equal(t, tc.want, entry.StoreCode)
		})
	}
}

func TestVisitPlanEntry_UnmarshalBSON_ValueAndUsername(t *testing.T) {
	entry := decodePlan(t, bson.M{
		"username":  "Nguyen.Van.A",
		"storeCode": "100",
		"date":      int64(0),
		"value":     int32(2),
	})
	assert.Equal(t, "Nguyen.Van.A", entry.Username)
	assert.Equal(t, 2.0, entry.Value)

	entry = decodePlan(t, bson.M{"user": "user1", "storeCode": "100", "value": "1.5"})
	assert.Equal(t, "user1", entry.Username)
	assert.Equal(t, 1.5, entry.Value)
}

func TestParseDateString(t *testing.T) {
	wantMs := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC).UnixMilli()

	cases := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"2026-08-10", wantMs, true},
		{"10/08/2026", wantMs, true},
		{"10/8/2026", wantMs, true},
		{"2026-08-10T07:30:00Z", wantMs, true},
		{"46244", wantMs, true}, // serial Excel của 2026-08-10
		{"", 0, false},
		{"không phải ngày", 0, false},
		{"-5", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := ParseDateString(tc.input)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
