package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeObjectIDs(t *testing.T) {
	oid := primitive.NewObjectID()
	nested := primitive.NewObjectID()

	doc := Normalize(bson.M{
		"_id":  oid,
		"name": "Aisha Khan",
		"ref":  bson.M{"_id": nested},
		"ids":  bson.A{oid, "plain"},
	})

	assert.Equal(t, oid.Hex(), doc["_id"])
	assert.Equal(t, "Aisha Khan", doc["name"])

	ref, ok := doc["ref"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, nested.Hex(), ref["_id"])

	ids, ok := doc["ids"].(bson.A)
	require.True(t, ok)
	assert.Equal(t, oid.Hex(), ids[0])
	assert.Equal(t, "plain", ids[1])
}

func TestNormalizeDates(t *testing.T) {
	born := time.Date(2003, 5, 12, 0, 0, 0, 0, time.UTC)
	doc := Normalize(bson.M{"dateOfBirth": primitive.NewDateTimeFromTime(born)})

	got, ok := doc["dateOfBirth"].(time.Time)
	require.True(t, ok)
	assert.True(t, born.Equal(got))
}

func TestNormalizeIdempotent(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := Normalize(Normalize(bson.M{"_id": oid, "n": int32(4)}))
	assert.Equal(t, oid.Hex(), doc["_id"])
	assert.Equal(t, int32(4), doc["n"])
}

func TestKeyString(t *testing.T) {
	oid := primitive.NewObjectID()

	s, ok := KeyString(oid)
	require.True(t, ok)
	assert.Equal(t, oid.Hex(), s)

	s, ok = KeyString("191CAC701T")
	require.True(t, ok)
	assert.Equal(t, "191CAC701T", s)

	_, ok = KeyString(nil)
	assert.False(t, ok)

	_, ok = KeyString(42)
	assert.False(t, ok)
}
