package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/studyplanner/internal/server/models"
)

var start = time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC)

func TestAllocate_Validation(t *testing.T) {
	base := Input{Topics: []string{"A"}, TotalHours: 10, DailyHours: 2, TotalDays: 5, Start: start}

	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"zero daily", func(in *Input) { in.DailyHours = 0 }},
		{"too many daily", func(in *Input) { in.DailyHours = 25 }},
		{"zero days", func(in *Input) { in.TotalDays = 0 }},
		{"too many days", func(in *Input) { in.TotalDays = 366 }},
		{"negative total", func(in *Input) { in.TotalHours = -1 }},
		{"no topics", func(in *Input) { in.Topics = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			_, err := Allocate(in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestAllocate_SpreadsAcrossDays(t *testing.T) {
	res, err := Allocate(Input{
		Topics:     []string{"A", "B", "C"},
		TotalHours: 7,
		DailyHours: 3,
		TotalDays:  4,
		Start:      start,
	})
	require.NoError(t, err)

	// budgets: A=3, B=2, C=2
	assert.Equal(t, 7, res.ScheduledHours)
	assert.Equal(t, 0, res.UnscheduledHours)
	require.Len(t, res.Days, 4)

	assert.Equal(t, models.DayPlan{
		Day: 1, Date: "2025-03-30", Hours: 3,
		Topics: []models.TopicSlot{{Topic: "A", Hours: 3, Type: SlotTypeStudy}},
		Goals:  []string{"Complete A"},
	}, res.Days[0])

	assert.Equal(t, models.DayPlan{
		Day: 2, Date: "2025-03-31", Hours: 3,
		Topics: []models.TopicSlot{{Topic: "B", Hours: 2, Type: SlotTypeStudy}, {Topic: "C", Hours: 1, Type: SlotTypeStudy}},
		Goals:  []string{"Complete B"},
	}, res.Days[1])

	assert.Equal(t, 1, res.Days[2].Hours)
	assert.Equal(t, []string{"Complete C"}, res.Days[2].Goals)

	assert.Equal(t, 0, res.Days[3].Hours)
	assert.Empty(t, res.Days[3].Topics)
	assert.Equal(t, []string{ReviewGoal}, res.Days[3].Goals)
}

func TestAllocate_OverflowIsUnscheduled(t *testing.T) {
	res, err := Allocate(Input{Topics: []string{"A", "B"}, TotalHours: 30, DailyHours: 2, TotalDays: 7, Start: start})
	require.NoError(t, err)

	assert.Equal(t, 14, res.ScheduledHours)
	assert.Equal(t, 16, res.UnscheduledHours)
	for _, d := range res.Days {
		assert.Equal(t, 2, d.Hours)
	}
}

func TestAllocate_MoreTopicsThanHours(t *testing.T) {
	res, err := Allocate(Input{Topics: []string{"A", "B", "C", "D"}, TotalHours: 2, DailyHours: 1, TotalDays: 5, Start: start})
	require.NoError(t, err)

	assert.Equal(t, 2, res.ScheduledHours)
	assert.Equal(t, "A", res.Days[0].Topics[0].Topic)
	assert.Equal(t, "B", res.Days[1].Topics[0].Topic)
	assert.Empty(t, res.Days[2].Topics)
}

func TestAllocate_InvariantHolds(t *testing.T) {
	for total := 0; total <= 60; total += 7 {
		for daily := 1; daily <= 5; daily++ {
			for days := 1; days <= 10; days += 3 {
				for topics := 1; topics <= 6; topics++ {
					in := Input{TotalHours: total, DailyHours: daily, TotalDays: days, Start: start}
					for i := 0; i < topics; i++ {
						in.Topics = append(in.Topics, string(rune('A'+i)))
					}
					res, err := Allocate(in)
					require.NoError(t, err)

					sum := 0
					for _, d := range res.Days {
						dayHours := 0
						for _, s := range d.Topics {
							require.Positive(t, s.Hours)
							dayHours += s.Hours
						}
						require.Equal(t, dayHours, d.Hours)
						require.LessOrEqual(t, d.Hours, daily)
						sum += dayHours
					}
					require.Equal(t, res.ScheduledHours, sum)
					require.Equal(t, total, res.ScheduledHours+res.UnscheduledHours)
					require.GreaterOrEqual(t, res.UnscheduledHours, 0)
					require.LessOrEqual(t, res.ScheduledHours, daily*days)
				}
			}
		}
	}
}

func TestAdjustHours(t *testing.T) {
	assert.Equal(t, 24, AdjustHours(20, "beginner"))
	assert.Equal(t, 16, AdjustHours(20, "advanced"))
	assert.Equal(t, 20, AdjustHours(20, "intermediate"))
	assert.Equal(t, 20, AdjustHours(20, ""))

	for _, level := range []string{"beginner", "advanced", "intermediate"} {
		assert.Zero(t, AdjustHours(-5, level), level)
	}
}

func TestSummary(t *testing.T) {
	res, err := Allocate(Input{Topics: []string{"A", "B"}, TotalHours: 3, DailyHours: 3, TotalDays: 7, Start: start})
	require.NoError(t, err)

	assert.Equal(t, []string{"Day 1: A, B", "Day 2: " + ReviewGoal, "Day 3: " + ReviewGoal}, Summary(res.Days, 3))
	assert.Len(t, Summary(res.Days, 100), 7)
	assert.Empty(t, Summary(res.Days, 0))
}
