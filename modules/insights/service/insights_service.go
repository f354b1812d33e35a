package service

import (
	"context"
	"fmt"
	"strings"

	"calendar-insights/core/errors"
	"calendar-insights/core/logger"
	"calendar-insights/modules/insights/dto"
	"calendar-insights/modules/meeting/entity"
	"calendar-insights/modules/meeting/repository"
)

// StatsProvider is the aggregate query surface the assistant answers from.
type StatsProvider interface {
	GetSummaryStats(ctx context.Context) (*entity.SummaryStats, error)
	CountFiltered(ctx context.Context, filter repository.MeetingFilter) (int, error)
	CountOneOnOne(ctx context.Context) (int, error)
	TopUsers(ctx context.Context, limit int) ([]repository.LabelCount, error)
	TopDepartments(ctx context.Context, limit int) ([]repository.LabelCount, error)
	PeakHour(ctx context.Context) (repository.LabelCount, error)
	DurationDistribution(ctx context.Context) (repository.DurationBuckets, error)
}

// InsightsService answers a fixed set of questions by keyword matching
// against a rule table. Rules are checked in order; the first rule whose
// keywords all appear in the question wins.
type InsightsService struct {
	stats StatsProvider
	rules []rule
}

type rule struct {
	name     string
	keywords [][]string
	handler  func(ctx context.Context) (string, any, error)
}

func NewInsightsService(stats StatsProvider) *InsightsService {
	s := &InsightsService{stats: stats}
	s.rules = []rule{
		{
			name:     "busiest_user",
			keywords: [][]string{{"who", "user", "person", "organizer"}, {"most", "busiest", "top"}},
			handler:  s.busiestUser,
		},
		{
			name:     "busiest_department",
			keywords: [][]string{{"department", "team"}, {"most", "busiest", "top"}},
			handler:  s.busiestDepartment,
		},
		{
			name:     "one_on_one_share",
			keywords: [][]string{{"one-on-one", "one on one", "1:1", "1-1"}},
			handler:  s.oneOnOneShare,
		},
		{
			name:     "peak_hour",
			keywords: [][]string{{"peak", "busiest time", "what time", "hour"}},
			handler:  s.peakHour,
		},
		{
			name:     "duration_distribution",
			keywords: [][]string{{"duration", "long", "length"}},
			handler:  s.durationDistribution,
		},
		{
			name:     "summary",
			keywords: [][]string{{"how many", "total", "summary", "overview"}},
			handler:  s.summary,
		},
	}
	return s
}

// Ask matches the question against the rule table and runs the first hit.
func (s *InsightsService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "question must not be empty", nil)
	}

	normalized := strings.ToLower(question)
	for _, r := range s.rules {
		if !matches(normalized, r.keywords) {
			continue
		}
		logger.Info("InsightsService:Ask:RuleMatched", "rule", r.name)

		answer, data, err := r.handler(ctx)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrDatabase, "failed to answer question", err)
		}
		return &dto.AskResponse{Question: question, Answer: answer, Data: data}, nil
	}

	logger.Info("InsightsService:Ask:NoRuleMatched")
	return &dto.AskResponse{
		Question: question,
		Answer: "I can answer questions about the busiest user or department, " +
			"one-on-one meetings, meeting durations, peak meeting hours and overall totals.",
	}, nil
}

// matches requires one keyword from every group to appear in the question.
func matches(question string, groups [][]string) bool {
	for _, group := range groups {
		found := false
		for _, keyword := range group {
			if strings.Contains(question, keyword) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s *InsightsService) busiestUser(ctx context.Context) (string, any, error) {
	top, err := s.stats.TopUsers(ctx, 1)
	if err != nil {
		return "", nil, err
	}
	if len(top) == 0 {
		return "No meetings recorded yet.", nil, nil
	}
	answer := fmt.Sprintf("%s organizes the most meetings with %d.", top[0].Label, top[0].Count)
	return answer, top[0], nil
}

func (s *InsightsService) busiestDepartment(ctx context.Context) (string, any, error) {
	top, err := s.stats.TopDepartments(ctx, 1)
	if err != nil {
		return "", nil, err
	}
	if len(top) == 0 {
		return "No meetings recorded yet.", nil, nil
	}
	answer := fmt.Sprintf("%s has the most meetings with %d.", top[0].Label, top[0].Count)
	return answer, top[0], nil
}

func (s *InsightsService) oneOnOneShare(ctx context.Context) (string, any, error) {
	oneOnOne, err := s.stats.CountOneOnOne(ctx)
	if err != nil {
		return "", nil, err
	}
	total, err := s.stats.CountFiltered(ctx, repository.MeetingFilter{})
	if err != nil {
		return "", nil, err
	}
	if total == 0 {
		return "No meetings recorded yet.", nil, nil
	}
	share := float64(oneOnOne) / float64(total) * 100
	answer := fmt.Sprintf("%d of %d meetings (%.1f%%) are one-on-ones.", oneOnOne, total, share)
	return answer, map[string]any{"one_on_one": oneOnOne, "total": total}, nil
}

func (s *InsightsService) peakHour(ctx context.Context) (string, any, error) {
	peak, err := s.stats.PeakHour(ctx)
	if err != nil {
		return "", nil, err
	}
	answer := fmt.Sprintf("Most meetings start at %s:00 (%d meetings).", peak.Label, peak.Count)
	return answer, peak, nil
}

func (s *InsightsService) durationDistribution(ctx context.Context) (string, any, error) {
	buckets, err := s.stats.DurationDistribution(ctx)
	if err != nil {
		return "", nil, err
	}
	answer := fmt.Sprintf("%d meetings run under 30 minutes, %d run 30-60 minutes and %d run over an hour.",
		buckets.Short, buckets.Medium, buckets.Long)
	return answer, buckets, nil
}

func (s *InsightsService) summary(ctx context.Context) (string, any, error) {
	stats, err := s.stats.GetSummaryStats(ctx)
	if err != nil {
		return "", nil, err
	}
	answer := fmt.Sprintf("In the last 30 days: %d meetings across %d users and %d departments, averaging %.0f minutes.",
		stats.TotalMeetings, stats.TotalUsers, stats.TotalDepartments, stats.AvgDuration)
	return answer, stats, nil
}
