package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tanush-em/QWERTY/internal/models"
	appErrors "github.com/tanush-em/QWERTY/pkg/errors"
)

type timetableReader interface {
	Week(ctx context.Context) ([]models.TimetableDay, error)
	Day(ctx context.Context, dayOfWeek string) (*models.TimetableDay, error)
	FacultyByID(ctx context.Context, id string) (*models.Faculty, error)
}

// periodsPerDay bounds the free-period scan; the institution runs eight
// teaching periods.
const periodsPerDay = 8

// weekdayOrder lists the teaching days; the timetable runs Monday through
// Friday only.
var weekdayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// TimetableService answers schedule questions that go beyond the plain
// collection read path: per-faculty schedules, room availability, free
// periods, and double-booking detection.
type TimetableService struct {
	repo      timetableReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimetableService constructs a TimetableService.
func NewTimetableService(repo timetableReader, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &TimetableService{repo: repo, validator: validate, logger: logger}
	svc.validator.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return weekdayRank(fl.Field().String()) < len(weekdayOrder)
	})
	return svc
}

// RoomAvailabilityRequest describes a room availability query. The time
// window is optional but must be given whole.
type RoomAvailabilityRequest struct {
	Room      string `json:"room" validate:"required"`
	DayOfWeek string `json:"dayOfWeek" validate:"omitempty,weekday"`
	StartTime string `json:"startTime" validate:"required_with=EndTime"`
	EndTime   string `json:"endTime" validate:"required_with=StartTime"`
}

// FreePeriodsRequest describes a free-period query.
type FreePeriodsRequest struct {
	DayOfWeek string `json:"dayOfWeek" validate:"omitempty,weekday"`
	FacultyID string `json:"facultyId" validate:"omitempty,hexadecimal,len=24"`
	Room      string `json:"room"`
}

// FacultySchedule is one faculty member's slots across the week.
type FacultySchedule struct {
	Faculty  FacultyRef `json:"faculty"`
	Schedule []DaySlots `json:"schedule"`
}

// FacultyRef is the summary identification of a faculty member.
type FacultyRef struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	FullName   string `json:"fullName"`
}

// DaySlots groups slots under their weekday.
type DaySlots struct {
	DayOfWeek string                 `json:"dayOfWeek"`
	Slots     []models.TimetableSlot `json:"slots"`
}

// RoomSlot is one occupied slot of a room, tagged with its weekday.
type RoomSlot struct {
	DayOfWeek  string `json:"dayOfWeek"`
	Period     int    `json:"period"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Type       string `json:"type"`
	CourseCode string `json:"courseCode,omitempty"`
	Room       string `json:"room"`
}

// FreePeriod is one unoccupied period on a weekday.
type FreePeriod struct {
	DayOfWeek string `json:"dayOfWeek"`
	Period    int    `json:"period"`
}

// RoomAvailability reports a room's occupied slots and, when no time
// window was given, the periods still free.
type RoomAvailability struct {
	Room           string       `json:"room"`
	Conflicts      []RoomSlot   `json:"conflicts"`
	AvailableSlots []FreePeriod `json:"availableSlots"`
}

// RoomConflict is a pair of overlapping bookings of the same room.
type RoomConflict struct {
	DayOfWeek string   `json:"dayOfWeek"`
	Room      string   `json:"room"`
	First     RoomSlot `json:"first"`
	Second    RoomSlot `json:"second"`
}

// Weekly returns the full week's timetable in weekday order.
func (s *TimetableService) Weekly(ctx context.Context) ([]models.TimetableDay, error) {
	days, err := s.repo.Week(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	sort.SliceStable(days, func(i, j int) bool {
		return weekdayRank(days[i].DayOfWeek) < weekdayRank(days[j].DayOfWeek)
	})
	return days, nil
}

// ByDay returns one weekday's timetable.
func (s *TimetableService) ByDay(ctx context.Context, dayOfWeek string) (*models.TimetableDay, error) {
	if err := s.validator.Var(dayOfWeek, "weekday"); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown day of week: "+dayOfWeek)
	}
	day, err := s.repo.Day(ctx, dayOfWeek)
	if err != nil {
		return nil, storeError(err)
	}
	if day == nil {
		return nil, appErrors.ErrNotFound
	}
	return day, nil
}

// FacultySchedule collects every slot taught by one faculty member,
// grouped by weekday. Days without a matching slot are omitted.
func (s *TimetableService) FacultySchedule(ctx context.Context, facultyID string) (*FacultySchedule, error) {
	faculty, err := s.repo.FacultyByID(ctx, facultyID)
	if err != nil {
		return nil, storeError(err)
	}
	if faculty == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
	}

	days, err := s.repo.Week(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	schedule := &FacultySchedule{
		Faculty: FacultyRef{
			ID:         faculty.ID.Hex(),
			EmployeeID: faculty.EmployeeID,
			FullName:   faculty.FullName,
		},
		Schedule: []DaySlots{},
	}
	for _, day := range days {
		var slots []models.TimetableSlot
		for _, slot := range day.Slots {
			if slot.FacultyID != nil && slot.FacultyID.Hex() == faculty.ID.Hex() {
				slots = append(slots, slot)
			}
		}
		if len(slots) > 0 {
			schedule.Schedule = append(schedule.Schedule, DaySlots{DayOfWeek: day.DayOfWeek, Slots: slots})
		}
	}
	sort.SliceStable(schedule.Schedule, func(i, j int) bool {
		return weekdayRank(schedule.Schedule[i].DayOfWeek) < weekdayRank(schedule.Schedule[j].DayOfWeek)
	})
	return schedule, nil
}

// RoomAvailability lists the slots occupying a room, optionally narrowed
// to one weekday and a time window. Without a window it also reports the
// periods still free on each checked day.
func (s *TimetableService) RoomAvailability(ctx context.Context, req RoomAvailabilityRequest) (*RoomAvailability, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability query")
	}
	var window *timeWindow
	if req.StartTime != "" {
		w, err := parseWindow(req.StartTime, req.EndTime)
		if err != nil {
			return nil, err
		}
		window = w
	}

	days, err := s.repo.Week(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	out := &RoomAvailability{Room: req.Room, Conflicts: []RoomSlot{}, AvailableSlots: []FreePeriod{}}
	for _, day := range days {
		if req.DayOfWeek != "" && !strings.EqualFold(day.DayOfWeek, req.DayOfWeek) {
			continue
		}
		for _, slot := range day.Slots {
			if !strings.EqualFold(slot.Room, req.Room) {
				continue
			}
			if window != nil {
				sw, err := parseWindow(slot.StartTime, slot.EndTime)
				if err != nil {
					continue
				}
				if !window.overlaps(sw) {
					continue
				}
			}
			out.Conflicts = append(out.Conflicts, roomSlot(day.DayOfWeek, slot))
		}
	}

	if window == nil {
		for _, day := range days {
			if req.DayOfWeek != "" && !strings.EqualFold(day.DayOfWeek, req.DayOfWeek) {
				continue
			}
			occupied := make(map[int]bool)
			for _, slot := range day.Slots {
				if strings.EqualFold(slot.Room, req.Room) {
					occupied[slot.Period] = true
				}
			}
			for period := 1; period <= periodsPerDay; period++ {
				if !occupied[period] {
					out.AvailableSlots = append(out.AvailableSlots, FreePeriod{DayOfWeek: day.DayOfWeek, Period: period})
				}
			}
		}
	}
	return out, nil
}

// FreePeriods finds unoccupied periods across the week. With a faculty or
// room filter only that party's bookings count as occupied; otherwise any
// non-break slot does.
func (s *TimetableService) FreePeriods(ctx context.Context, req FreePeriodsRequest) ([]FreePeriod, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid free-period query")
	}
	days, err := s.repo.Week(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	free := []FreePeriod{}
	for _, day := range days {
		if req.DayOfWeek != "" && !strings.EqualFold(day.DayOfWeek, req.DayOfWeek) {
			continue
		}
		occupied := make(map[int]bool)
		for _, slot := range day.Slots {
			switch {
			case req.FacultyID != "":
				if slot.FacultyID != nil && slot.FacultyID.Hex() == req.FacultyID {
					occupied[slot.Period] = true
				}
			case req.Room != "":
				if strings.EqualFold(slot.Room, req.Room) {
					occupied[slot.Period] = true
				}
			default:
				if !slot.IsBreak() {
					occupied[slot.Period] = true
				}
			}
		}
		for period := 1; period <= periodsPerDay; period++ {
			if !occupied[period] {
				free = append(free, FreePeriod{DayOfWeek: day.DayOfWeek, Period: period})
			}
		}
	}
	sort.SliceStable(free, func(i, j int) bool {
		ri, rj := weekdayRank(free[i].DayOfWeek), weekdayRank(free[j].DayOfWeek)
		if ri != rj {
			return ri < rj
		}
		return free[i].Period < free[j].Period
	})
	return free, nil
}

// Conflicts detects double bookings: pairs of slots on the same day, in
// the same room, with overlapping times. Break slots carry no room and
// never conflict.
func (s *TimetableService) Conflicts(ctx context.Context) ([]RoomConflict, error) {
	days, err := s.repo.Week(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	conflicts := []RoomConflict{}
	for _, day := range days {
		for i := 0; i < len(day.Slots); i++ {
			a := day.Slots[i]
			if a.Room == "" {
				continue
			}
			wa, err := parseWindow(a.StartTime, a.EndTime)
			if err != nil {
				continue
			}
			for j := i + 1; j < len(day.Slots); j++ {
				b := day.Slots[j]
				if !strings.EqualFold(a.Room, b.Room) {
					continue
				}
				wb, err := parseWindow(b.StartTime, b.EndTime)
				if err != nil {
					continue
				}
				if wa.overlaps(wb) {
					conflicts = append(conflicts, RoomConflict{
						DayOfWeek: day.DayOfWeek,
						Room:      a.Room,
						First:     roomSlot(day.DayOfWeek, a),
						Second:    roomSlot(day.DayOfWeek, b),
					})
				}
			}
		}
	}
	return conflicts, nil
}

type timeWindow struct {
	start time.Time
	end   time.Time
}

// overlaps uses the half-open interval rule: two windows conflict when
// each starts before the other ends.
func (w *timeWindow) overlaps(other *timeWindow) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

func parseWindow(startTime, endTime string) (*timeWindow, error) {
	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid time, expected HH:MM: "+startTime)
	}
	end, err := time.Parse("15:04", endTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid time, expected HH:MM: "+endTime)
	}
	if !start.Before(end) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start time must precede end time")
	}
	return &timeWindow{start: start, end: end}, nil
}

func roomSlot(dayOfWeek string, slot models.TimetableSlot) RoomSlot {
	return RoomSlot{
		DayOfWeek:  dayOfWeek,
		Period:     slot.Period,
		StartTime:  slot.StartTime,
		EndTime:    slot.EndTime,
		Type:       slot.Type,
		CourseCode: slot.CourseCode,
		Room:       slot.Room,
	}
}

func weekdayRank(day string) int {
	for i, name := range weekdayOrder {
		if strings.EqualFold(name, day) {
			return i
		}
	}
	return len(weekdayOrder)
}
