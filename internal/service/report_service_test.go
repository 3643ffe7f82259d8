package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/tanush-em/QWERTY/internal/registry"
	appErrors "github.com/tanush-em/QWERTY/pkg/errors"
)

type fakeLister struct {
	records map[string][]bson.M
	gotName string
}

func (f *fakeLister) List(_ context.Context, name string, limit, skip int64) (*ListResult, error) {
	f.gotName = name
	records := f.records[name]
	return &ListResult{Records: records, Count: int64(len(records)), Limit: limit, Skip: skip}, nil
}

func newReportService(lister *fakeLister) *ReportService {
	return NewReportService(lister, registry.New(), zap.NewNop(), nil, nil)
}

func TestGenerateCSVRoster(t *testing.T) {
	lister := &fakeLister{records: map[string][]bson.M{
		"students": {
			{"roll": 1, "fullName": "Aisha Khan", "email": "aisha@college.edu", "phone": "+91-9876543210", "year": 4, "batch": 2024},
			{"roll": 2, "fullName": "Rajesh Kumar", "email": "rajesh@college.edu", "phone": "+91-9876543211", "year": 4, "batch": 2024},
		},
	}}
	svc := newReportService(lister)

	result, err := svc.Generate(context.Background(), "students", ReportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.Filename, "students-report-"))
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	lines := strings.Split(strings.TrimSpace(string(result.Payload)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Roll,Full Name,Email,Phone,Year,Batch", lines[0])
	assert.Contains(t, lines[1], "Aisha Khan")
	assert.Contains(t, lines[2], "Rajesh Kumar")
}

func TestGenerateCoursesRosterUsesDerivedFields(t *testing.T) {
	lister := &fakeLister{records: map[string][]bson.M{
		"courses": {
			{"code": "191CAC701T", "title": "Deep Learning (PE-III)", "credits": 3, "semester": 7, "facultyName": "Dr.S.Vanaja"},
			{"code": "COUN", "title": "Counseling", "credits": 0, "semester": 7, "facultyName": registry.NotAssigned},
		},
	}}
	svc := newReportService(lister)

	result, err := svc.Generate(context.Background(), "courses", ReportFormatCSV)
	require.NoError(t, err)
	assert.Contains(t, string(result.Payload), "Dr.S.Vanaja")
	assert.Contains(t, string(result.Payload), registry.NotAssigned)
}

func TestGeneratePDFRoster(t *testing.T) {
	lister := &fakeLister{records: map[string][]bson.M{
		"faculties": {
			{"employeeId": "FAC-01", "fullName": "Dr.S.Vanaja", "email": "s.vanaja@college.edu", "designation": "Associate Professor", "subjectsCount": 3},
		},
	}}
	svc := newReportService(lister)

	result, err := svc.Generate(context.Background(), "faculties", ReportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Payload), "%PDF"))
}

func TestGenerateResolvesAliases(t *testing.T) {
	lister := &fakeLister{records: map[string][]bson.M{"leaverequests": {}}}
	svc := newReportService(lister)

	_, err := svc.Generate(context.Background(), "leaves", ReportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "leaverequests", lister.gotName)
}

func TestGenerateRejectsUnknownCollection(t *testing.T) {
	svc := newReportService(&fakeLister{})

	_, err := svc.Generate(context.Background(), "grades", ReportFormatCSV)
	require.Error(t, err)
	assert.Equal(t, "UNKNOWN_COLLECTION", appErrors.FromError(err).Code)
}

func TestGenerateRejectsUnsupportedFormat(t *testing.T) {
	svc := newReportService(&fakeLister{records: map[string][]bson.M{"students": {}}})

	_, err := svc.Generate(context.Background(), "students", ReportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", appErrors.FromError(err).Code)
}

func TestGenerateTimetableRosterFlattensSlots(t *testing.T) {
	lister := &fakeLister{records: map[string][]bson.M{
		"timetables": {
			{
				"dayOfWeek": "Monday",
				"slots": bson.A{
					bson.M{
						"period": 1, "startTime": "09:00", "endTime": "09:50",
						"type": "theory", "courseCode": "191CAC701T", "room": "A-204",
						"faculty": bson.M{"fullName": "Dr.S.Vanaja"},
					},
					bson.M{
						"period": 2, "startTime": "09:50", "endTime": "10:10",
						"type": "break",
					},
				},
			},
			{
				"dayOfWeek": "Tuesday",
				"slots": bson.A{
					bson.M{
						"period": 1, "startTime": "09:00", "endTime": "09:50",
						"type": "lab", "courseCode": "191CAC702L", "room": "Lab-2",
						"faculty": bson.M{"fullName": "Dr.R.Mohan"},
					},
				},
			},
		},
	}}
	svc := newReportService(lister)

	result, err := svc.Generate(context.Background(), "timetables", ReportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.Filename, "timetables-report-"))

	lines := strings.Split(strings.TrimSpace(string(result.Payload)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Day,Period,Start Time,End Time,Type,Course,Faculty,Room", lines[0])
	assert.Equal(t, "Monday,1,09:00,09:50,theory,191CAC701T,Dr.S.Vanaja,A-204", lines[1])
	assert.Equal(t, "Monday,2,09:50,10:10,break,,,", lines[2])
	assert.Equal(t, "Tuesday,1,09:00,09:50,lab,191CAC702L,Dr.R.Mohan,Lab-2", lines[3])
}
