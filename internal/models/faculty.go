package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Faculty represents a teaching staff document in the faculties collection.
// Subjects holds references into the courses collection.
type Faculty struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	EmployeeID  string               `bson:"employeeId" json:"employeeId"`
	FullName    string               `bson:"fullName" json:"fullName"`
	Email       string               `bson:"email" json:"email"`
	Designation string               `bson:"designation" json:"designation"`
	Subjects    []primitive.ObjectID `bson:"subjects,omitempty" json:"subjects,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time            `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
