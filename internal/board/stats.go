package board

import (
	"context"
	"sort"
	"time"

	"github.com/kanbandesk/kanbandesk/models"
)

// DayCount is the number of tasks completed on one calendar day.
type DayCount struct {
	Day   time.Time
	Count int
}

// WeeklyCompletions returns completion counts for the last seven days,
// oldest first, ending on the day containing ref. A task counts toward
// a day when it is currently done and its CompletedAt falls on that day
// in local time.
func (s *Service) WeeklyCompletions(ctx context.Context, ref time.Time) ([]DayCount, error) {
	tasks, err := s.store.ListTasksByStatus(ctx, models.StatusDone)
	if err != nil {
		return nil, err
	}

	days := make([]DayCount, 7)
	start := startOfDay(ref).AddDate(0, 0, -6)
	for i := range days {
		days[i].Day = start.AddDate(0, 0, i)
	}

	for _, t := range tasks {
		if t.CompletedAt == nil {
			continue
		}
		day := startOfDay(t.CompletedAt.In(ref.Location()))
		for i := range days {
			if days[i].Day.Equal(day) {
				days[i].Count++
				break
			}
		}
	}
	return days, nil
}

// History returns finished work: every done or cancelled task, most
// recently completed first. Tasks without a completion time (cancelled
// straight from another column) sort last.
func (s *Service) History(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	history := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == models.StatusDone || t.Status == models.StatusCancel {
			history = append(history, t)
		}
	}

	sort.SliceStable(history, func(i, j int) bool {
		ti, tj := history[i].CompletedAt, history[j].CompletedAt
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.After(*tj)
	})
	return history, nil
}

// ColumnCounts returns the number of tasks per column, keyed by status.
func (s *Service) ColumnCounts(ctx context.Context) (map[models.TaskStatus]int, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[models.TaskStatus]int, len(models.AllStatuses))
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
