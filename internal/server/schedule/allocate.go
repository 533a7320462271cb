package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/studyplanner/internal/common"
	"github.com/dmitrijs2005/studyplanner/internal/server/models"
)

const (
	MaxDailyHours = 24
	MaxTotalDays  = 365

	SlotTypeStudy = "study"
	ReviewGoal    = "Review previous topics"
	DateLayout    = "2006-01-02"
)

var ErrInvalidInput = errors.New("invalid schedule input")

// Input describes what to allocate. Start is the date of day 1.
type Input struct {
	Topics     []string
	TotalHours int
	DailyHours int
	TotalDays  int
	Start      time.Time
}

// Result is an allocated schedule. ScheduledHours+UnscheduledHours always
// equals the requested TotalHours.
type Result struct {
	Days             []models.DayPlan
	ScheduledHours   int
	UnscheduledHours int
}

func (in Input) validate() error {
	switch {
	case in.DailyHours < 1 || in.DailyHours > MaxDailyHours:
		return fmt.Errorf("%w: daily hours must be between 1 and %d", ErrInvalidInput, MaxDailyHours)
	case in.TotalDays < 1 || in.TotalDays > MaxTotalDays:
		return fmt.Errorf("%w: total days must be between 1 and %d", ErrInvalidInput, MaxTotalDays)
	case in.TotalHours < 0:
		return fmt.Errorf("%w: total hours must not be negative", ErrInvalidInput)
	case len(in.Topics) == 0:
		return fmt.Errorf("%w: at least one topic is required", ErrInvalidInput)
	}
	return nil
}

// Allocate splits TotalHours evenly across topics and fills the days in
// order, DailyHours at a time. Hours that do not fit in the window are
// reported as UnscheduledHours.
func Allocate(in Input) (Result, error) {
	if err := in.validate(); err != nil {
		return Result{}, err
	}

	remaining := topicBudgets(in.TotalHours, len(in.Topics))
	idx := 0
	scheduled := 0

	days := make([]models.DayPlan, 0, in.TotalDays)
	for d := 0; d < in.TotalDays; d++ {
		day := models.DayPlan{
			Day:    d + 1,
			Date:   in.Start.AddDate(0, 0, d).Format(DateLayout),
			Topics: []models.TopicSlot{},
			Goals:  []string{},
		}

		capacity := in.DailyHours
		for capacity > 0 && idx < len(in.Topics) {
			if remaining[idx] == 0 {
				idx++
				continue
			}
			h := min(capacity, remaining[idx])
			day.Topics = append(day.Topics, models.TopicSlot{Topic: in.Topics[idx], Hours: h, Type: SlotTypeStudy})
			capacity -= h
			remaining[idx] -= h
			scheduled += h
			if remaining[idx] == 0 {
				day.Goals = append(day.Goals, "Complete "+in.Topics[idx])
				idx++
			}
		}

		day.Hours = in.DailyHours - capacity
		if len(day.Topics) == 0 {
			day.Goals = append(day.Goals, ReviewGoal)
		}
		days = append(days, day)
	}

	return Result{
		Days:             days,
		ScheduledHours:   scheduled,
		UnscheduledHours: in.TotalHours - scheduled,
	}, nil
}

// topicBudgets gives each of n topics total/n hours, handing the remainder
// out one hour at a time from the first topic.
func topicBudgets(total, n int) []int {
	out := make([]int, n)
	base, extra := total/n, total%n
	for i := range out {
		out[i] = base
		if i < extra {
			out[i]++
		}
	}
	return out
}

// AdjustHours scales an estimate by the learner's level. The result is never
// negative.
func AdjustHours(estimated int, level string) int {
	switch level {
	case common.LevelBeginner:
		return max(0, int(float64(estimated)*1.2))
	case common.LevelAdvanced:
		return max(0, int(float64(estimated)*0.8))
	default:
		return max(0, estimated)
	}
}

// Summary renders the first n days as "Day 1: Topic A, Topic B".
func Summary(days []models.DayPlan, n int) []string {
	if n > len(days) {
		n = len(days)
	}
	out := make([]string, 0, max(n, 0))
	for _, d := range days[:max(n, 0)] {
		names := make([]string, 0, len(d.Topics))
		for _, t := range d.Topics {
			names = append(names, t.Topic)
		}
		if len(names) == 0 {
			names = append(names, ReviewGoal)
		}
		out = append(out, fmt.Sprintf("Day %d: %s", d.Day, strings.Join(names, ", ")))
	}
	return out
}
