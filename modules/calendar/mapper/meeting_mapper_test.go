package mapper

import (
	"testing"

	"calendar-insights/core/errors"
	"calendar-insights/modules/calendar/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timedEvent(id, start, end string) dto.GoogleCalendarEvent {
	return dto.GoogleCalendarEvent{
		ID:    id,
		Start: dto.EventTime{DateTime: start},
		End:   dto.EventTime{DateTime: end},
	}
}

func TestToMeetingBasic(t *testing.T) {
	event := timedEvent("abc123", "2024-01-01T09:00:00Z", "2024-01-01T09:30:00Z")
	event.Summary = "Weekly Sync"
	event.Organizer = dto.Organizer{Email: "a@x.com"}
	event.Attendees = []dto.Attendee{
		{Email: "a@x.com", ResponseStatus: "accepted"},
		{Email: "b@x.com", ResponseStatus: "declined"},
	}
	event.HTMLLink = "https://calendar.google.com/event?eid=abc123"

	meeting, err := ToMeeting(event, "primary")
	require.NoError(t, err)

	assert.Equal(t, "abc123", meeting.EventID)
	assert.Equal(t, "primary", meeting.CalendarID)
	assert.Equal(t, 30, meeting.DurationMinutes)
	assert.Equal(t, 2, meeting.AttendeesCount)
	assert.Equal(t, 1, meeting.AttendeesAccepted)
	assert.Equal(t, 1, meeting.AttendeesDeclined)
	assert.Equal(t, 0, meeting.AttendeesTentative)
	assert.Equal(t, 0, meeting.AttendeesNeedsAction)
	assert.Equal(t, "a@x.com", meeting.AttendeesAcceptedEmails)
	assert.True(t, meeting.IsOneOnOne)
	assert.Equal(t, "a@x.com", meeting.UserEmail)
}

func TestToMeetingDefaults(t *testing.T) {
	event := timedEvent("e1", "2024-03-05T10:00:00Z", "2024-03-05T11:00:00Z")

	meeting, err := ToMeeting(event, "primary")
	require.NoError(t, err)

	assert.Equal(t, "No Title", meeting.Summary)
	assert.Equal(t, "unknown@domain.com", meeting.OrganizerEmail)
	assert.Equal(t, "unknown@domain.com", meeting.UserEmail)
	assert.Equal(t, "Unknown", meeting.Department)
	assert.Equal(t, 1, meeting.UniqueDepartments)
	assert.False(t, meeting.HasManagerAttendee)
	assert.False(t, meeting.IsOneOnOne)
}

func TestToMeetingUnknownStatusCountsAsNeedsAction(t *testing.T) {
	event := timedEvent("e2", "2024-03-05T10:00:00Z", "2024-03-05T10:45:00Z")
	event.Attendees = []dto.Attendee{
		{Email: "a@x.com", ResponseStatus: "tentative"},
		{Email: "b@x.com", ResponseStatus: "needsAction"},
		{Email: "c@x.com", ResponseStatus: "delegated"},
		{Email: "d@x.com"},
	}

	meeting, err := ToMeeting(event, "primary")
	require.NoError(t, err)

	assert.Equal(t, 1, meeting.AttendeesTentative)
	assert.Equal(t, 3, meeting.AttendeesNeedsAction)
	assert.Equal(t, 0, meeting.AttendeesAccepted)
	assert.Equal(t, "", meeting.AttendeesAcceptedEmails)
}

func TestToMeetingMeetLinkFallback(t *testing.T) {
	event := timedEvent("e3", "2024-03-05T10:00:00Z", "2024-03-05T10:30:00Z")
	event.ConferenceData = &dto.ConferenceData{
		EntryPoints: []dto.EntryPoint{
			{EntryPointType: "phone", URI: "tel:+1-555-0100"},
			{EntryPointType: "video", URI: "https://meet.google.com/abc-def-ghi"},
		},
	}

	meeting, err := ToMeeting(event, "primary")
	require.NoError(t, err)
	assert.Equal(t, "https://meet.google.com/abc-def-ghi", meeting.MeetLink)

	event.HangoutLink = "https://meet.google.com/direct"
	meeting, err = ToMeeting(event, "primary")
	require.NoError(t, err)
	assert.Equal(t, "https://meet.google.com/direct", meeting.MeetLink)
}

func TestToMeetingAllDayEvent(t *testing.T) {
	event := dto.GoogleCalendarEvent{
		ID:    "e4",
		Start: dto.EventTime{Date: "2024-02-01"},
		End:   dto.EventTime{Date: "2024-02-02"},
	}

	meeting, err := ToMeeting(event, "primary")
	require.NoError(t, err)
	assert.Equal(t, 24*60, meeting.DurationMinutes)
}

func TestToMeetingRejectsMissingTimes(t *testing.T) {
	_, err := ToMeeting(dto.GoogleCalendarEvent{ID: "e5"}, "primary")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrRecordValidation))

	event := dto.GoogleCalendarEvent{
		ID:    "e6",
		Start: dto.EventTime{DateTime: "2024-01-01T09:00:00Z"},
	}
	_, err = ToMeeting(event, "primary")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrRecordValidation))
}

func TestToMeetingRejectsUnparseableTimes(t *testing.T) {
	event := timedEvent("e7", "not-a-time", "2024-01-01T10:00:00Z")
	_, err := ToMeeting(event, "primary")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrRecordValidation))
}

func TestToMeetingRejectsEndBeforeStart(t *testing.T) {
	event := timedEvent("e8", "2024-01-01T10:00:00Z", "2024-01-01T09:00:00Z")
	_, err := ToMeeting(event, "primary")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrRecordValidation))

	// Zero-length events are rejected too.
	event = timedEvent("e9", "2024-01-01T10:00:00Z", "2024-01-01T10:00:00Z")
	_, err = ToMeeting(event, "primary")
	require.Error(t, err)
}

func TestToMeetingTruncatesDuration(t *testing.T) {
	event := timedEvent("e10", "2024-01-01T09:00:00Z", "2024-01-01T09:25:30Z")
	meeting, err := ToMeeting(event, "primary")
	require.NoError(t, err)
	assert.Equal(t, 25, meeting.DurationMinutes)
}
