package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Normalize rewrites driver-native values into plain JSON-friendly ones:
// object ids become hex strings and stored instants become time values.
// It walks embedded documents and arrays, mutating the document in place,
// and returns it for chaining.
func Normalize(doc bson.M) bson.M {
	for k, v := range doc {
		doc[k] = normalizeValue(v)
	}
	return doc
}

func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC()
	case bson.M:
		return Normalize(val)
	case map[string]interface{}:
		return Normalize(bson.M(val))
	case bson.A:
		for i, item := range val {
			val[i] = normalizeValue(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = normalizeValue(item)
		}
		return val
	case bson.D:
		m := make(bson.M, len(val))
		for _, e := range val {
			m[e.Key] = normalizeValue(e.Value)
		}
		return m
	default:
		return v
	}
}
