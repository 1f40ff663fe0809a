package commands

import (
	"fmt"
	"strings"

	"linebell/metrics"
	"linebell/store"
)

// Executor applies parsed commands against the reminder store on behalf of a
// single user and produces the reply text shown to that user.
type Executor struct {
	store   *store.Store
	metrics *metrics.Collector
}

func NewExecutor(s *store.Store, m *metrics.Collector) *Executor {
	return &Executor{store: s, metrics: m}
}

// Execute runs a command scoped to userID. Every command is a single store
// mutation or read; the returned string is the exact user-facing reply.
func (e *Executor) Execute(userID string, cmd Command) (string, error) {
	switch c := cmd.(type) {
	case Add:
		r, err := e.store.CreateReminder(userID, c.FireAt, c.Message)
		if err != nil {
			return "", fmt.Errorf("create reminder: %w", err)
		}
		e.metrics.RecordReminderCreated("once")
		return fmt.Sprintf("已新增提醒: %s %s", r.FireAt, r.Message), nil

	case AddPeriodic:
		r, err := e.store.CreatePeriodicReminder(userID, c.Recurrence, c.FireAt, c.Message)
		if err != nil {
			return "", fmt.Errorf("create periodic reminder: %w", err)
		}
		e.metrics.RecordReminderCreated(r.Recurrence)
		return fmt.Sprintf("已新增 %s 提醒: %s %s", r.Recurrence, r.FireAt, r.Message), nil

	case Delete:
		deleted, err := e.store.DeleteReminder(c.ID, userID)
		if err != nil {
			return "", fmt.Errorf("delete reminder: %w", err)
		}
		if deleted {
			e.metrics.RecordReminderDeleted()
			return fmt.Sprintf("已刪除提醒 ID: %d", c.ID), nil
		}
		return fmt.Sprintf("找不到提醒 ID: %d", c.ID), nil

	case List:
		reminders, err := e.store.GetRemindersForUser(userID)
		if err != nil {
			return "", fmt.Errorf("list reminders: %w", err)
		}
		if len(reminders) == 0 {
			return "目前沒有任何提醒", nil
		}

		var b strings.Builder
		for i, r := range reminders {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "ID:%d 時間:%s 訊息:%s", r.ID, r.FireAt, r.Message)
			if r.Periodic {
				fmt.Fprintf(&b, " (週期:%s)", r.Recurrence)
			}
		}
		return b.String(), nil

	case Unrecognized:
		return c.Reply, nil
	}

	// Unreachable as long as Parse only produces the variants above.
	return "", fmt.Errorf("unknown command type %T", cmd)
}
