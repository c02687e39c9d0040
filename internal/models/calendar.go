package models

// CalendarEntryKind distinguishes fixed academic dates from managed events.
type CalendarEntryKind string

const (
	CalendarEntryKindTerm    CalendarEntryKind = "term"
	CalendarEntryKindHoliday CalendarEntryKind = "holiday"
	CalendarEntryKindExam    CalendarEntryKind = "exam"
	CalendarEntryKindEvent   CalendarEntryKind = "event"
)

// CalendarEntry is one row on the public calendar page. Entries come from
// two sources: the fixed academic calendar and the events table.
type CalendarEntry struct {
	Date     DateOnly          `json:"date"`
	Time     TimeOnly          `json:"time"`
	Title    string            `json:"title"`
	Kind     CalendarEntryKind `json:"kind"`
	Location *string           `json:"location,omitempty"`
	EventID  *int64            `json:"eventId,omitempty"`
}

// CalendarMonth is the calendar payload for one month.
type CalendarMonth struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Entries []CalendarEntry `json:"entries"`
}
