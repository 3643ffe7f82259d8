package repository

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tanush-em/QWERTY/internal/models"
)

// TimetableRepository serves typed reads over the timetable and faculty
// collections for the schedule tools.
type TimetableRepository struct {
	db *mongo.Database
}

// NewTimetableRepository instantiates a timetable repository.
func NewTimetableRepository(db *mongo.Database) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// Week returns every stored timetable day.
func (r *TimetableRepository) Week(ctx context.Context) ([]models.TimetableDay, error) {
	cursor, err := r.db.Collection("timetables").Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find timetables: %w", err)
	}
	defer cursor.Close(ctx)

	var days []models.TimetableDay
	if err := cursor.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("decode timetables: %w", err)
	}
	return days, nil
}

// Day returns one weekday's timetable, matched case-insensitively. A
// missing day returns nil with no error.
func (r *TimetableRepository) Day(ctx context.Context, dayOfWeek string) (*models.TimetableDay, error) {
	filter := bson.M{"dayOfWeek": bson.M{"$regex": "^" + strings.TrimSpace(dayOfWeek) + "$", "$options": "i"}}
	var day models.TimetableDay
	err := r.db.Collection("timetables").FindOne(ctx, filter).Decode(&day)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find timetable day: %w", err)
	}
	return &day, nil
}

// FacultyByID returns one faculty document by hex id, or nil when absent.
func (r *TimetableRepository) FacultyByID(ctx context.Context, id string) (*models.Faculty, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var faculty models.Faculty
	err = r.db.Collection("faculties").FindOne(ctx, bson.M{"_id": oid}).Decode(&faculty)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find faculty by id: %w", err)
	}
	return &faculty, nil
}
