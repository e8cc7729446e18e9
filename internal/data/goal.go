package data

import (
	"math"
	"time"

	"github.com/aoideee/readinglog/internal/validator"
)

// Goal bounds.
const (
	MinGoalYear   = 1000
	MaxGoalYear   = 9999
	MaxGoalTarget = math.MaxInt32
)

// Goal is the target number of books to finish in one calendar month.
type Goal struct {
	Year        int `json:"year"`
	Month       int `json:"month"`
	TargetCount int `json:"target_count"`
}

// GoalProgress pairs a goal with the number of books completed in its month.
type GoalProgress struct {
	Goal
	CompletedCount int `json:"completed_count"`
	Percent        int `json:"percent"`
}

// MonthKey formats the goal's month as "YYYY-MM".
func (g Goal) MonthKey() string {
	return time.Date(g.Year, time.Month(g.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// NewGoalProgress computes the completion percentage, capped at 100.
func NewGoalProgress(g Goal, completed int) GoalProgress {
	p := GoalProgress{Goal: g, CompletedCount: completed}
	if g.TargetCount > 0 {
		p.Percent = min(100, completed*100/g.TargetCount)
	}
	return p
}

// ValidateYearMonth checks a year/month pair. Absent values fall back to the
// month containing now.
func ValidateYearMonth(v *validator.Validator, rawYear, rawMonth any, now time.Time) (year, month int) {
	year, month = now.Year(), int(now.Month())
	if y, ok := v.Int("year", rawYear, MinGoalYear, MaxGoalYear, false); ok {
		year = int(y)
	}
	if m, ok := v.Int("month", rawMonth, 1, 12, false); ok {
		month = int(m)
	}
	return year, month
}

// ValidateGoal checks a goal write payload. All three fields are required.
func ValidateGoal(v *validator.Validator, raw map[string]any) Goal {
	var g Goal
	if y, ok := v.Int("year", raw["year"], MinGoalYear, MaxGoalYear, true); ok {
		g.Year = int(y)
	}
	if m, ok := v.Int("month", raw["month"], 1, 12, true); ok {
		g.Month = int(m)
	}
	if t, ok := v.Int("target_count", raw["target_count"], 0, MaxGoalTarget, true); ok {
		g.TargetCount = int(t)
	}
	return g
}
