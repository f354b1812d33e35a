package mapper

import (
	"fmt"
	"strings"
	"time"

	"calendar-insights/core/errors"
	"calendar-insights/modules/calendar/dto"
	"calendar-insights/modules/meeting/entity"
)

const (
	defaultSummary        = "No Title"
	defaultOrganizerEmail = "unknown@domain.com"
	defaultDepartment     = "Unknown"
)

// ToMeeting normalizes one raw calendar event into a Meeting record.
// Validation failures return a RECORD_VALIDATION error; callers drop the
// record and continue with the rest of the batch.
func ToMeeting(event dto.GoogleCalendarEvent, calendarID string) (*entity.Meeting, error) {
	startRaw := eventTimeValue(event.Start)
	endRaw := eventTimeValue(event.End)
	if startRaw == "" || endRaw == "" {
		return nil, errors.NewAppError(errors.ErrRecordValidation,
			fmt.Sprintf("event %s has no usable start/end time", event.ID), nil)
	}

	startTime, err := parseEventTime(startRaw)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrRecordValidation,
			fmt.Sprintf("event %s has unparseable start time %q", event.ID, startRaw), err)
	}
	endTime, err := parseEventTime(endRaw)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrRecordValidation,
			fmt.Sprintf("event %s has unparseable end time %q", event.ID, endRaw), err)
	}

	if !endTime.After(startTime) {
		return nil, errors.NewAppError(errors.ErrRecordValidation,
			fmt.Sprintf("event %s ends at or before it starts", event.ID), nil)
	}

	// Always derived here, never trusted from upstream.
	durationMinutes := int(endTime.Sub(startTime).Minutes())

	accepted, declined, tentative, needsAction, acceptedEmails := countResponses(event.Attendees)

	organizerEmail := event.Organizer.Email
	if organizerEmail == "" {
		organizerEmail = defaultOrganizerEmail
	}

	summary := event.Summary
	if summary == "" {
		summary = defaultSummary
	}

	attendeesCount := len(event.Attendees)

	return &entity.Meeting{
		EventID:                 event.ID,
		CalendarID:              calendarID,
		OrganizerEmail:          organizerEmail,
		UserEmail:               organizerEmail,
		Department:              defaultDepartment,
		Division:                defaultDepartment,
		Subdepartment:           defaultDepartment,
		IsManager:               false,
		StartTime:               startTime,
		EndTime:                 endTime,
		DurationMinutes:         durationMinutes,
		AttendeesCount:          attendeesCount,
		AttendeesAccepted:       accepted,
		AttendeesDeclined:       declined,
		AttendeesTentative:      tentative,
		AttendeesNeedsAction:    needsAction,
		AttendeesAcceptedEmails: strings.Join(acceptedEmails, ","),
		Summary:                 summary,
		MeetLink:                extractMeetLink(event),
		HTMLLink:                event.HTMLLink,
		IsOneOnOne:              attendeesCount == 2,
		HasManagerAttendee:      false,
		UniqueDepartments:       1,
		DepartmentsList:         defaultDepartment,
	}, nil
}

func eventTimeValue(t dto.EventTime) string {
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}

// parseEventTime handles both timed events (RFC3339 dateTime) and all-day
// events (date only).
func parseEventTime(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.UTC(), nil
	}
	ts, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return ts.UTC(), nil
}

// countResponses splits attendees over the four Google response statuses.
// Missing or unrecognized statuses count as needsAction.
func countResponses(attendees []dto.Attendee) (accepted, declined, tentative, needsAction int, acceptedEmails []string) {
	for _, attendee := range attendees {
		switch attendee.ResponseStatus {
		case "accepted":
			accepted++
			if attendee.Email != "" {
				acceptedEmails = append(acceptedEmails, attendee.Email)
			}
		case "declined":
			declined++
		case "tentative":
			tentative++
		default:
			needsAction++
		}
	}
	return
}

// extractMeetLink prefers the direct hangout link and falls back to the
// first video entry point in the conference data.
func extractMeetLink(event dto.GoogleCalendarEvent) string {
	if event.HangoutLink != "" {
		return event.HangoutLink
	}
	if event.ConferenceData == nil {
		return ""
	}
	for _, entry := range event.ConferenceData.EntryPoints {
		if entry.EntryPointType == "video" {
			return entry.URI
		}
	}
	return ""
}
