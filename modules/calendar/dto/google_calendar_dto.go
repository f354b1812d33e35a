package dto

type GoogleCalendar struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	TimeZone    string `json:"timeZone"`
	AccessRole  string `json:"accessRole"`
}

type GoogleCalendarEvent struct {
	ID             string          `json:"id"`
	Summary        string          `json:"summary"`
	Description    string          `json:"description"`
	Start          EventTime       `json:"start"`
	End            EventTime       `json:"end"`
	Organizer      Organizer       `json:"organizer"`
	Attendees      []Attendee      `json:"attendees"`
	HangoutLink    string          `json:"hangoutLink"`
	ConferenceData *ConferenceData `json:"conferenceData,omitempty"`
	HTMLLink       string          `json:"htmlLink"`
	Location       string          `json:"location"`
	Status         string          `json:"status"`
}

type EventTime struct {
	DateTime string `json:"dateTime"`
	Date     string `json:"date"`
	TimeZone string `json:"timeZone"`
}

type Organizer struct {
	Email string `json:"email"`
	Self  bool   `json:"self"`
}

type Attendee struct {
	Email          string `json:"email"`
	ResponseStatus string `json:"responseStatus"`
}

type ConferenceData struct {
	EntryPoints []EntryPoint `json:"entryPoints"`
}

type EntryPoint struct {
	EntryPointType string `json:"entryPointType"`
	URI            string `json:"uri"`
}

type EventListResponse struct {
	Items         []GoogleCalendarEvent `json:"items"`
	NextPageToken string                `json:"nextPageToken"`
}

type CalendarListResponse struct {
	Items []GoogleCalendar `json:"items"`
}
