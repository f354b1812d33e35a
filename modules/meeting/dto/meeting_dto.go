package dto

import (
	"time"

	"calendar-insights/modules/meeting/entity"
)

// MeetingListRequest carries the optional query filters for GET /meetings.
type MeetingListRequest struct {
	StartDate  string `query:"start_date"`
	EndDate    string `query:"end_date"`
	Department string `query:"department"`
	UserEmail  string `query:"user_email"`
}

type FilterOptionsResponse struct {
	Departments []string `json:"departments"`
	Users       []string `json:"users"`
}

type SummaryStatsResponse struct {
	Stats       *entity.SummaryStats `json:"stats"`
	GeneratedAt time.Time            `json:"generated_at"`
}

type YearsResponse struct {
	Years []entity.YearCount `json:"years"`
	Total int                `json:"total"`
}

type FetchRunsResponse struct {
	Runs []entity.FetchRun `json:"runs"`
}
