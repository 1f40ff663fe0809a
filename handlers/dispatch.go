package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"linebell/metrics"
	"linebell/models"
	"linebell/store"
)

// MessageSender pushes a message to a user with no originating request.
// Implemented by line.Client.
type MessageSender interface {
	PushText(to, text string) error
}

// DispatchResult identifies one delivered reminder.
type DispatchResult struct {
	ReminderID int64  `json:"reminder_id"`
	UserID     string `json:"user_id"`
}

// Dispatcher runs the periodic scan that matches the current minute against
// stored reminders and delivers the ones that fire.
type Dispatcher struct {
	store   *store.Store
	sender  MessageSender
	hub     *Hub
	metrics *metrics.Collector
}

func NewDispatcher(s *store.Store, sender MessageSender, hub *Hub, m *metrics.Collector) *Dispatcher {
	return &Dispatcher{store: s, sender: sender, hub: hub, metrics: m}
}

// RunScan delivers every reminder whose fire time matches now's HH:MM.
// One-shot reminders are deleted once delivered; periodic ones stay and are
// stamped with the minute key so a second scan in the same minute is a no-op.
// A failed delivery leaves the reminder untouched for the next scan.
func (d *Dispatcher) RunScan(now time.Time) ([]DispatchResult, error) {
	start := time.Now()
	minuteKey := now.Format("2006-01-02 15:04")
	fireAt := now.Format("15:04")

	due, err := d.store.GetDueReminders(fireAt, minuteKey)
	if err != nil {
		return nil, err
	}

	results := []DispatchResult{}
	for _, reminder := range due {
		if err := d.sender.PushText(reminder.UserID, reminder.Message); err != nil {
			log.Printf("Failed to deliver reminder %d to %s: %v", reminder.ID, reminder.UserID, err)
			d.metrics.RecordDispatchFailure()
			continue
		}

		if reminder.Periodic {
			if err := d.store.MarkReminderFired(reminder.ID, minuteKey); err != nil {
				log.Printf("Failed to mark reminder %d fired: %v", reminder.ID, err)
			}
		} else {
			// Delete-if-exists: the owner may have raced a delete in between.
			if _, err := d.store.DeleteReminder(reminder.ID, reminder.UserID); err != nil {
				log.Printf("Failed to delete fired reminder %d: %v", reminder.ID, err)
			}
		}

		d.metrics.RecordDispatchDelivered()
		d.hub.BroadcastDispatch(models.DispatchEvent{
			ReminderID: reminder.ID,
			UserID:     reminder.UserID,
			Periodic:   reminder.Periodic,
			FiredAt:    minuteKey,
		})
		results = append(results, DispatchResult{ReminderID: reminder.ID, UserID: reminder.UserID})
	}

	d.metrics.RecordScanDuration(time.Since(start))
	return results, nil
}

// StartScheduler runs RunScan on a fixed interval. The first scan waits for
// the next minute boundary so minute keys line up with the wall clock.
func (d *Dispatcher) StartScheduler(interval time.Duration) {
	go func() {
		time.Sleep(time.Until(time.Now().Truncate(time.Minute).Add(time.Minute)))
		d.scanAndLog()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			d.scanAndLog()
		}
	}()
}

func (d *Dispatcher) scanAndLog() {
	results, err := d.RunScan(time.Now())
	if err != nil {
		log.Printf("Dispatch scan failed: %v", err)
		return
	}
	if len(results) > 0 {
		log.Printf("Dispatch scan delivered %d reminder(s)", len(results))
	}
}

// Trigger is the HTTP surface for external schedulers: run one scan now and
// return the delivered (reminder id, owner) pairs.
func (d *Dispatcher) Trigger(w http.ResponseWriter, r *http.Request) {
	results, err := d.RunScan(time.Now())
	if err != nil {
		http.Error(w, "Dispatch scan failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}
