package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/yeshua-high/school-site-api/internal/models"
	appErrors "github.com/yeshua-high/school-site-api/pkg/errors"
)

// academicCalendar holds the fixed dates of the school year. These change
// once a year and ship with the binary rather than living in the database.
var academicCalendar = []models.CalendarEntry{
	{Date: models.NewDate(2026, time.September, 7), Title: "First Term Resumption", Kind: models.CalendarEntryKindTerm},
	{Date: models.NewDate(2026, time.October, 26), Title: "Mid-Term Break", Kind: models.CalendarEntryKindHoliday},
	{Date: models.NewDate(2026, time.December, 7), Title: "First Term Examinations", Kind: models.CalendarEntryKindExam},
	{Date: models.NewDate(2026, time.December, 18), Title: "First Term Vacation", Kind: models.CalendarEntryKindHoliday},
	{Date: models.NewDate(2027, time.January, 11), Title: "Second Term Resumption", Kind: models.CalendarEntryKindTerm},
	{Date: models.NewDate(2027, time.February, 15), Title: "Mid-Term Break", Kind: models.CalendarEntryKindHoliday},
	{Date: models.NewDate(2027, time.March, 22), Title: "Second Term Examinations", Kind: models.CalendarEntryKindExam},
	{Date: models.NewDate(2027, time.April, 2), Title: "Second Term Vacation", Kind: models.CalendarEntryKindHoliday},
	{Date: models.NewDate(2027, time.April, 26), Title: "Third Term Resumption", Kind: models.CalendarEntryKindTerm},
	{Date: models.NewDate(2027, time.June, 28), Title: "Third Term Examinations", Kind: models.CalendarEntryKindExam},
	{Date: models.NewDate(2027, time.July, 23), Title: "Third Term Vacation", Kind: models.CalendarEntryKindHoliday},
}

type calendarEventLister interface {
	ListByMonth(ctx context.Context, year, month int) ([]models.Event, error)
}

// CalendarService assembles the public calendar from the fixed academic
// dates and the managed events table.
type CalendarService struct {
	events calendarEventLister
	static []models.CalendarEntry
	logger *zap.Logger
}

// NewCalendarService constructs a CalendarService.
func NewCalendarService(events calendarEventLister, logger *zap.Logger) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{events: events, static: academicCalendar, logger: logger}
}

// Month returns the merged calendar for one month, sorted by date then time.
func (s *CalendarService) Month(ctx context.Context, year, month int) (*models.CalendarMonth, error) {
	if month < 1 || month > 12 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "year is out of range")
	}

	entries := []models.CalendarEntry{}
	for _, entry := range s.static {
		if entry.Date.Year() == year && int(entry.Date.Month()) == month {
			entries = append(entries, entry)
		}
	}

	events, err := s.events.ListByMonth(ctx, year, month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load calendar events")
	}
	for _, event := range events {
		id := event.ID
		entries = append(entries, models.CalendarEntry{
			Date:     event.EventDate,
			Time:     event.EventTime,
			Title:    event.Title,
			Kind:     models.CalendarEntryKindEvent,
			Location: event.Location,
			EventID:  &id,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date.Time) {
			return entries[i].Date.Before(entries[j].Date.Time)
		}
		return entries[i].Time.Before(entries[j].Time.Time)
	})

	return &models.CalendarMonth{Year: year, Month: month, Entries: entries}, nil
}
