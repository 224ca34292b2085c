package services

import (
	"sort"

	"github.com/taskflow/taskflow-api/internal/models"
)

// ActiveOn reports whether a goal recurs on the given date.
// DAILY goals match when their weekday set is empty or contains the
// date's weekday; PUNCTUAL goals match their target date exactly.
// A row with no valid recurrence variant is never active.
func ActiveOn(g *models.Goal, date models.Date) bool {
	switch rec := g.Recurrence().(type) {
	case models.Daily:
		return len(rec.Days) == 0 || rec.Days.Contains(models.WeekdayOf(date))
	case models.Punctual:
		return rec.Date.Equal(date)
	default:
		return false
	}
}

// sortForDisplay orders goals by time-of-day ascending with untimed
// goals last. Ties break on creation time, then id, so the order is
// deterministic for goals sharing the same time.
func sortForDisplay(goals []models.Goal) {
	sort.SliceStable(goals, func(i, j int) bool {
		gi, gj := &goals[i], &goals[j]
		switch {
		case gi.Time == nil && gj.Time == nil:
			// fall through to tie-break
		case gi.Time == nil:
			return false
		case gj.Time == nil:
			return true
		case *gi.Time != *gj.Time:
			return gi.Time.Before(*gj.Time)
		}
		if !gi.CreatedAt.Equal(gj.CreatedAt) {
			return gi.CreatedAt.Before(gj.CreatedAt)
		}
		return gi.ID.String() < gj.ID.String()
	})
}
