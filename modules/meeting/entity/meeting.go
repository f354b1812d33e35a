package entity

import "time"

// Meeting is one calendar event as persisted in the meetings table.
// event_id is the external identifier and the sole deduplication key.
type Meeting struct {
	ID                      int64     `db:"id" json:"id"`
	EventID                 string    `db:"event_id" json:"event_id"`
	CalendarID              string    `db:"calendar_id" json:"calendar_id"`
	OrganizerEmail          string    `db:"organizer_email" json:"organizer_email"`
	UserEmail               string    `db:"user_email" json:"user_email"`
	Department              string    `db:"department" json:"department"`
	Division                string    `db:"division" json:"division"`
	Subdepartment           string    `db:"subdepartment" json:"subdepartment"`
	IsManager               bool      `db:"is_manager" json:"is_manager"`
	StartTime               time.Time `db:"start_time" json:"start_time"`
	EndTime                 time.Time `db:"end_time" json:"end_time"`
	DurationMinutes         int       `db:"duration_minutes" json:"duration_minutes"`
	AttendeesCount          int       `db:"attendees_count" json:"attendees_count"`
	AttendeesAccepted       int       `db:"attendees_accepted" json:"attendees_accepted"`
	AttendeesDeclined       int       `db:"attendees_declined" json:"attendees_declined"`
	AttendeesTentative      int       `db:"attendees_tentative" json:"attendees_tentative"`
	AttendeesNeedsAction    int       `db:"attendees_needs_action" json:"attendees_needs_action"`
	AttendeesAcceptedEmails string    `db:"attendees_accepted_emails" json:"attendees_accepted_emails"`
	Summary                 string    `db:"summary" json:"summary"`
	MeetLink                string    `db:"meet_link" json:"meet_link"`
	HTMLLink                string    `db:"html_link" json:"html_link"`
	IsOneOnOne              bool      `db:"is_one_on_one" json:"is_one_on_one"`
	HasManagerAttendee      bool      `db:"has_manager_attendee" json:"has_manager_attendee"`
	UniqueDepartments       int       `db:"unique_departments" json:"unique_departments"`
	DepartmentsList         string    `db:"departments_list" json:"departments_list"`
	CreatedAt               time.Time `db:"created_at" json:"created_at"`
}

// StoreMode selects how a batch is applied to the meetings table.
type StoreMode string

const (
	// StoreModeHistorical clears the table first and replaces everything.
	StoreModeHistorical StoreMode = "historical"
	// StoreModeIncremental merges by event_id and never deletes.
	StoreModeIncremental StoreMode = "incremental"
)

// StoreResult aggregates the outcome of one stored batch.
type StoreResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}

type YearCount struct {
	Year  int `db:"year" json:"year"`
	Count int `db:"count" json:"count"`
}

type SummaryStats struct {
	TotalMeetings    int        `db:"total_meetings" json:"total_meetings"`
	TotalUsers       int        `db:"total_users" json:"total_users"`
	TotalDepartments int        `db:"total_departments" json:"total_departments"`
	AvgDuration      float64    `db:"avg_duration" json:"avg_duration"`
	AvgAttendees     float64    `db:"avg_attendees" json:"avg_attendees"`
	EarliestMeeting  *time.Time `db:"earliest_meeting" json:"earliest_meeting,omitempty"`
	LatestMeeting    *time.Time `db:"latest_meeting" json:"latest_meeting,omitempty"`
}
