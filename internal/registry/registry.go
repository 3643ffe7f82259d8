// Package registry defines the per-collection read rules: which reference
// fields get resolved into embedded documents and which display transforms
// run on each record. The table is built once at startup and injected into
// the services that consult it; nothing mutates it afterwards.
package registry

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotAssigned is the sentinel substituted for derived display fields whose
// backing reference is null or dangling.
const NotAssigned = "Not Assigned"

// Reference declares one field that must be resolved into an embedded
// document when the collection is read. ForeignKey is the field matched in
// the target collection; empty means _id.
type Reference struct {
	Field      string
	Collection string
	ForeignKey string
	// As names the key the embedded document is written under. Empty
	// means the raw reference value is replaced in place.
	As string
	// InSlots marks references carried on timetable slot entries rather
	// than on the document root.
	InSlots bool
}

// FormatFunc transforms a single record for display after its references
// have been resolved. It mutates the record in place.
type FormatFunc func(doc bson.M)

// Entry holds the read rules for one collection.
type Entry struct {
	// Name is the canonical public collection name, identical to the
	// stored collection name.
	Name string
	// Sorted marks collections carrying creation timestamps; their pages
	// are served newest first. Static reference data keeps store order.
	Sorted     bool
	References []Reference
	Format     FormatFunc
}

// Registry is the immutable collection rules table.
type Registry struct {
	entries map[string]*Entry
	aliases map[string]string
	names   []string
}

// New builds the rules table for the six academic record collections.
func New() *Registry {
	entries := []*Entry{
		{
			Name:   "students",
			Sorted: true,
		},
		{
			Name:   "faculties",
			Sorted: true,
			Format: formatFaculty,
		},
		{
			Name:   "courses",
			Sorted: true,
			References: []Reference{
				{Field: "facultyInCharge", Collection: "faculties"},
			},
			Format: formatCourse,
		},
		{
			Name:   "attendances",
			Sorted: true,
			References: []Reference{
				{Field: "studentId", Collection: "students"},
			},
			Format: formatAttendance,
		},
		{
			Name:   "leaverequests",
			Sorted: true,
			References: []Reference{
				{Field: "studentId", Collection: "students"},
				{Field: "handledBy", Collection: "faculties"},
			},
			Format: formatLeaveRequest,
		},
		{
			Name: "timetables",
			References: []Reference{
				{Field: "courseCode", Collection: "courses", ForeignKey: "code", As: "course", InSlots: true},
				{Field: "facultyId", Collection: "faculties", As: "faculty", InSlots: true},
			},
		},
	}

	r := &Registry{
		entries: make(map[string]*Entry, len(entries)),
		aliases: map[string]string{
			"leaves":    "leaverequests",
			"timetable": "timetables",
		},
		names: make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		r.entries[e.Name] = e
		r.names = append(r.names, e.Name)
	}
	return r
}

// Lookup resolves a public collection name, including legacy aliases, to
// its rules entry. The second return reports whether the name is known.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	e, ok := r.entries[name]
	return e, ok
}

// Names returns the canonical collection names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func formatFaculty(doc bson.M) {
	count := 0
	if subjects, ok := doc["subjects"].(bson.A); ok {
		count = len(subjects)
	}
	doc["subjectsCount"] = count
}

func formatCourse(doc bson.M) {
	name := NotAssigned
	if faculty, ok := doc["facultyInCharge"].(bson.M); ok {
		if full, ok := faculty["fullName"].(string); ok && full != "" {
			name = full
		}
	}
	doc["facultyName"] = name
}

func formatAttendance(doc bson.M) {
	if p, ok := doc["percentage"].(float64); ok {
		doc["percentage"] = RoundPercentage(p)
	}
}

func formatLeaveRequest(doc bson.M) {
	for _, field := range []string{"startDate", "endDate"} {
		if s, ok := FormatDate(doc[field]); ok {
			doc[field] = s
		}
	}
}

// RoundPercentage rounds to two decimal places, halves away from zero:
// 87.666 becomes 87.67 and 87.664 becomes 87.66.
func RoundPercentage(p float64) float64 {
	return math.Round(p*100) / 100
}

// FormatDate renders a stored instant as a short M/D/YYYY calendar string.
// Values that are not instants are left alone.
func FormatDate(v interface{}) (string, bool) {
	var t time.Time
	switch d := v.(type) {
	case time.Time:
		t = d
	case primitive.DateTime:
		t = d.Time()
	default:
		return "", false
	}
	return t.UTC().Format("1/2/2006"), true
}
