package service

import (
	"context"
	"sort"
	"strings"

	"calendar-insights/core/logger"
	"calendar-insights/modules/directory/entity"
	meetingentity "calendar-insights/modules/meeting/entity"
)

// UserLookup is the directory read interface the enricher depends on.
type UserLookup interface {
	GetByEmails(ctx context.Context, emails []string) (map[string]entity.User, error)
}

// DirectoryService annotates meetings with org data from the users table.
// Enrichment is best effort: a missing directory entry or a lookup failure
// leaves the meeting with its defaults and never fails the pipeline.
type DirectoryService struct {
	users UserLookup
}

func NewDirectoryService(users UserLookup) *DirectoryService {
	return &DirectoryService{users: users}
}

// Enrich fills organizer org fields and the cross-department attendee stats
// for every meeting in the batch, in place.
func (s *DirectoryService) Enrich(ctx context.Context, meetings []meetingentity.Meeting) {
	if len(meetings) == 0 {
		return
	}

	emails := collectEmails(meetings)
	users, err := s.users.GetByEmails(ctx, emails)
	if err != nil {
		logger.Warn("DirectoryService:Enrich:LookupFailed", "emails", len(emails), "error", err)
		return
	}

	enriched := 0
	for i := range meetings {
		if s.enrichMeeting(&meetings[i], users) {
			enriched++
		}
	}
	logger.Info("DirectoryService:Enrich:Complete", "meetings", len(meetings), "enriched", enriched)
}

func (s *DirectoryService) enrichMeeting(meeting *meetingentity.Meeting, users map[string]entity.User) bool {
	matched := false

	if organizer, ok := users[meeting.OrganizerEmail]; ok {
		meeting.Department = organizer.Department
		meeting.Division = organizer.Division
		meeting.Subdepartment = organizer.Subdepartment
		meeting.IsManager = organizer.IsManager
		matched = true
	}

	departments := map[string]bool{}
	if meeting.Department != "" {
		departments[meeting.Department] = true
	}
	hasManager := false
	for _, email := range splitEmails(meeting.AttendeesAcceptedEmails) {
		attendee, ok := users[email]
		if !ok {
			continue
		}
		matched = true
		if attendee.Department != "" {
			departments[attendee.Department] = true
		}
		if attendee.IsManager {
			hasManager = true
		}
	}

	meeting.HasManagerAttendee = hasManager
	if len(departments) > 0 {
		meeting.UniqueDepartments = len(departments)
		meeting.DepartmentsList = joinSorted(departments)
	}
	return matched
}

func collectEmails(meetings []meetingentity.Meeting) []string {
	seen := map[string]bool{}
	var emails []string
	add := func(email string) {
		if email != "" && !seen[email] {
			seen[email] = true
			emails = append(emails, email)
		}
	}
	for i := range meetings {
		add(meetings[i].OrganizerEmail)
		for _, email := range splitEmails(meetings[i].AttendeesAcceptedEmails) {
			add(email)
		}
	}
	return emails
}

func splitEmails(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	emails := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			emails = append(emails, trimmed)
		}
	}
	return emails
}

func joinSorted(departments map[string]bool) string {
	names := make([]string, 0, len(departments))
	for name := range departments {
		names = append(names, name)
	}
	// Stable output keeps the stored value deterministic across runs.
	sort.Strings(names)
	return strings.Join(names, ",")
}
