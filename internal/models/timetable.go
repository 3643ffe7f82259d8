package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// TimetableDay represents one weekday's schedule in the timetable collection.
type TimetableDay struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	DayOfWeek string             `bson:"dayOfWeek" json:"dayOfWeek"`
	Slots     []TimetableSlot    `bson:"slots" json:"slots"`
}

// TimetableSlot is a single teaching period within a day. Break slots
// carry no course code, faculty, or room.
type TimetableSlot struct {
	Period     int                 `bson:"period" json:"period"`
	StartTime  string              `bson:"startTime" json:"startTime"`
	EndTime    string              `bson:"endTime" json:"endTime"`
	Type       string              `bson:"type" json:"type"`
	CourseCode string              `bson:"courseCode,omitempty" json:"courseCode,omitempty"`
	FacultyID  *primitive.ObjectID `bson:"facultyId,omitempty" json:"facultyId,omitempty"`
	Room       string              `bson:"room,omitempty" json:"room,omitempty"`
}

// IsBreak reports whether the slot is a non-teaching period.
func (s TimetableSlot) IsBreak() bool {
	return s.Type == "break"
}
