// Package notify runs the background loop that delivers due reminders.
package notify

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/QyongGin/learnkit/internal/service"
)

// Dispatcher periodically checks for due reminders and delivers them
type Dispatcher struct {
	scheduler *gocron.Scheduler
	reminders *service.ReminderService
	interval  time.Duration
}

// NewDispatcher creates a reminder dispatcher ticking at the given
// interval
func NewDispatcher(reminders *service.ReminderService, interval time.Duration) *Dispatcher {
	return &Dispatcher{
		scheduler: gocron.NewScheduler(time.UTC),
		reminders: reminders,
		interval:  interval,
	}
}

// Start begins the dispatch loop in the background
func (d *Dispatcher) Start() error {
	if _, err := d.scheduler.Every(d.interval).Do(d.tick); err != nil {
		return err
	}
	d.scheduler.StartAsync()
	log.Printf("Reminder dispatcher started: interval=%s", d.interval)
	return nil
}

// Stop terminates the dispatch loop
func (d *Dispatcher) Stop() {
	d.scheduler.Stop()
}

func (d *Dispatcher) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sent, err := d.reminders.DispatchDue(ctx, time.Now())
	if err != nil {
		log.Printf("Reminder dispatch failed: %v", err)
		return
	}
	if sent > 0 {
		log.Printf("Dispatched %d reminder(s)", sent)
	}
}
