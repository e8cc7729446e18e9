package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GoalModel provides the queries for the reading_goals table.
type GoalModel struct {
	DB      *sql.DB
	Dialect Dialect
}

// Get returns the goal for year/month, or a zero-target goal when none has
// been set.
func (m GoalModel) Get(ctx context.Context, year, month int) (Goal, error) {
	g := Goal{Year: year, Month: month}

	query := m.Dialect.Rebind(`SELECT target_count FROM reading_goals WHERE year = ? AND month = ?`)
	err := m.DB.QueryRowContext(ctx, query, year, month).Scan(&g.TargetCount)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return g, nil
	case err != nil:
		return Goal{}, fmt.Errorf("get goal %04d-%02d: %w", year, month, err)
	}
	return g, nil
}

// Upsert stores g, replacing any existing target for the same month in one
// statement.
func (m GoalModel) Upsert(ctx context.Context, g Goal) error {
	query := m.Dialect.Rebind(`
		INSERT INTO reading_goals (year, month, target_count)
		VALUES (?, ?, ?)
		ON CONFLICT (year, month) DO UPDATE SET target_count = excluded.target_count`)

	if _, err := m.DB.ExecContext(ctx, query, g.Year, g.Month, g.TargetCount); err != nil {
		return fmt.Errorf("upsert goal %04d-%02d: %w", g.Year, g.Month, err)
	}
	return nil
}
