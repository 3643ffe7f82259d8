package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLookupCanonicalNames(t *testing.T) {
	r := New()
	for _, name := range []string{"students", "faculties", "courses", "attendances", "leaverequests", "timetables"} {
		e, ok := r.Lookup(name)
		require.True(t, ok, "expected %s to be registered", name)
		assert.Equal(t, name, e.Name)
	}
}

func TestLookupAliases(t *testing.T) {
	r := New()

	e, ok := r.Lookup("leaves")
	require.True(t, ok)
	assert.Equal(t, "leaverequests", e.Name)

	e, ok = r.Lookup("timetable")
	require.True(t, ok)
	assert.Equal(t, "timetables", e.Name)
}

func TestLookupUnknown(t *testing.T) {
	r := New()

	_, ok := r.Lookup("grades")
	assert.False(t, ok)

	// Names are case sensitive.
	_, ok = r.Lookup("Students")
	assert.False(t, ok)
}

func TestNamesReturnsCopy(t *testing.T) {
	r := New()
	names := r.Names()
	require.Len(t, names, 6)
	names[0] = "mutated"
	assert.Equal(t, "students", r.Names()[0])
}

func TestFormatCourseFacultyName(t *testing.T) {
	e, ok := New().Lookup("courses")
	require.True(t, ok)

	doc := bson.M{"code": "191CAC701T", "facultyInCharge": bson.M{"fullName": "Dr.S.Vanaja"}}
	e.Format(doc)
	assert.Equal(t, "Dr.S.Vanaja", doc["facultyName"])

	// Dangling or absent reference degrades to the sentinel, never an error.
	doc = bson.M{"code": "COUN"}
	e.Format(doc)
	assert.Equal(t, NotAssigned, doc["facultyName"])

	doc = bson.M{"code": "PT", "facultyInCharge": nil}
	e.Format(doc)
	assert.Equal(t, NotAssigned, doc["facultyName"])
}

func TestFormatFacultySubjectsCount(t *testing.T) {
	e, ok := New().Lookup("faculties")
	require.True(t, ok)

	doc := bson.M{"subjects": bson.A{primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()}}
	e.Format(doc)
	assert.Equal(t, 3, doc["subjectsCount"])

	doc = bson.M{}
	e.Format(doc)
	assert.Equal(t, 0, doc["subjectsCount"])
}

func TestFormatAttendanceRounding(t *testing.T) {
	e, ok := New().Lookup("attendances")
	require.True(t, ok)

	doc := bson.M{"percentage": 87.666}
	e.Format(doc)
	assert.Equal(t, 87.67, doc["percentage"])

	doc = bson.M{"percentage": 87.664}
	e.Format(doc)
	assert.Equal(t, 87.66, doc["percentage"])
}

func TestFormatLeaveRequestDates(t *testing.T) {
	e, ok := New().Lookup("leaverequests")
	require.True(t, ok)

	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	doc := bson.M{
		"startDate": primitive.NewDateTimeFromTime(start),
		"endDate":   time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC),
		"reason":    "Medical - fever",
	}
	e.Format(doc)
	assert.Equal(t, "1/15/2024", doc["startDate"])
	assert.Equal(t, "1/17/2024", doc["endDate"])
	assert.Equal(t, "Medical - fever", doc["reason"])

	// Already-formatted strings pass through untouched, so formatting is
	// idempotent.
	e.Format(doc)
	assert.Equal(t, "1/15/2024", doc["startDate"])
}

func TestRoundPercentage(t *testing.T) {
	cases := map[float64]float64{
		87.666: 87.67,
		87.664: 87.66,
		0:      0,
		100:    100,
		99.999: 100,
	}
	for in, want := range cases {
		assert.InDelta(t, want, RoundPercentage(in), 1e-9, "rounding %v", in)
	}
}
