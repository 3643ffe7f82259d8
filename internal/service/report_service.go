package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/tanush-em/QWERTY/internal/registry"
	appErrors "github.com/tanush-em/QWERTY/pkg/errors"
	"github.com/tanush-em/QWERTY/pkg/export"
)

// ReportFormat selects the rendered output type.
type ReportFormat string

// Supported report formats.
const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// reportPageSize bounds how many records a roster export includes.
const reportPageSize = 1000

type collectionLister interface {
	List(ctx context.Context, name string, limit, skip int64) (*ListResult, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ReportResult is a rendered roster ready to stream to the client.
type ReportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ReportService renders collection rosters as CSV or PDF downloads. It
// reads through the formatted view path, so exports show the same derived
// fields the API serves.
type ReportService struct {
	reader   collectionLister
	registry *registry.Registry
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(reader collectionLister, reg *registry.Registry, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ReportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ReportService{reader: reader, registry: reg, csv: csv, pdf: pdf, logger: logger}
}

type reportColumn struct {
	header string
	value  func(doc bson.M) string
}

var reportColumns = map[string][]reportColumn{
	"students": {
		{"Roll", field("roll")},
		{"Full Name", field("fullName")},
		{"Email", field("email")},
		{"Phone", field("phone")},
		{"Year", field("year")},
		{"Batch", field("batch")},
	},
	"faculties": {
		{"Employee ID", field("employeeId")},
		{"Full Name", field("fullName")},
		{"Email", field("email")},
		{"Designation", field("designation")},
		{"Subjects", field("subjectsCount")},
	},
	"courses": {
		{"Code", field("code")},
		{"Title", field("title")},
		{"Credits", field("credits")},
		{"Semester", field("semester")},
		{"Faculty", field("facultyName")},
	},
	"attendances": {
		{"Student", embedded("studentId", "fullName")},
		{"Total Classes", field("totalClasses")},
		{"Attended", field("attended")},
		{"Percentage", field("percentage")},
	},
	"leaverequests": {
		{"Student", embedded("studentId", "fullName")},
		{"Start Date", field("startDate")},
		{"End Date", field("endDate")},
		{"Reason", field("reason")},
		{"Status", field("status")},
		{"Handled By", embedded("handledBy", "fullName")},
	},
}

// timetableSlotColumns render one row per period when a timetable roster is
// exported; the day column is prepended from the parent document.
var timetableSlotColumns = []reportColumn{
	{"Period", field("period")},
	{"Start Time", field("startTime")},
	{"End Time", field("endTime")},
	{"Type", field("type")},
	{"Course", field("courseCode")},
	{"Faculty", func(slot bson.M) string {
		if sub, ok := slot["faculty"].(bson.M); ok {
			return cell(sub["fullName"])
		}
		return ""
	}},
	{"Room", field("room")},
}

// Generate renders one collection's roster in the requested format.
func (s *ReportService) Generate(ctx context.Context, name string, format ReportFormat) (*ReportResult, error) {
	entry, ok := s.registry.Lookup(name)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnknownCollection, "unknown collection: "+name)
	}
	columns, tabular := reportColumns[entry.Name]
	if !tabular && entry.Name != "timetables" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no report defined for collection: "+entry.Name)
	}
	if format != ReportFormatCSV && format != ReportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported report format: "+string(format))
	}

	page, err := s.reader.List(ctx, entry.Name, reportPageSize, 0)
	if err != nil {
		return nil, err
	}

	var dataset export.Dataset
	if tabular {
		dataset = tabularDataset(columns, page.Records)
	} else {
		dataset = timetableDataset(page.Records)
	}

	result := &ReportResult{
		Filename: fmt.Sprintf("%s-report-%s.%s", entry.Name, uuid.NewString()[:8], format),
	}
	switch format {
	case ReportFormatCSV:
		result.ContentType = "text/csv"
		result.Payload, err = s.csv.Render(dataset)
	case ReportFormatPDF:
		result.ContentType = "application/pdf"
		result.Payload, err = s.pdf.Render(dataset, entry.Name+" report")
	}
	if err != nil {
		s.logger.Error("report rendering failed", zap.String("collection", entry.Name), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "report rendering failed")
	}
	return result, nil
}

func tabularDataset(columns []reportColumn, docs []bson.M) export.Dataset {
	dataset := export.Dataset{Headers: make([]string, len(columns))}
	for i, col := range columns {
		dataset.Headers[i] = col.header
	}
	for _, doc := range docs {
		row := make(map[string]string, len(columns))
		for _, col := range columns {
			row[col.header] = col.value(doc)
		}
		dataset.Rows = append(dataset.Rows, row)
	}
	return dataset
}

// timetableDataset flattens each day's slots into one row per period so the
// week exports as a single table.
func timetableDataset(docs []bson.M) export.Dataset {
	headers := make([]string, 0, len(timetableSlotColumns)+1)
	headers = append(headers, "Day")
	for _, col := range timetableSlotColumns {
		headers = append(headers, col.header)
	}
	dataset := export.Dataset{Headers: headers}
	for _, doc := range docs {
		day := cell(doc["dayOfWeek"])
		slots, _ := doc["slots"].(bson.A)
		for _, item := range slots {
			slot, ok := item.(bson.M)
			if !ok {
				continue
			}
			row := make(map[string]string, len(headers))
			row["Day"] = day
			for _, col := range timetableSlotColumns {
				row[col.header] = col.value(slot)
			}
			dataset.Rows = append(dataset.Rows, row)
		}
	}
	return dataset
}

func field(name string) func(doc bson.M) string {
	return func(doc bson.M) string {
		return cell(doc[name])
	}
}

func embedded(name, inner string) func(doc bson.M) string {
	return func(doc bson.M) string {
		if sub, ok := doc[name].(bson.M); ok {
			return cell(sub[inner])
		}
		return registry.NotAssigned
	}
}

func cell(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
