package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"tasktracker/internal/repository"
)

// Reminder periodically scans for tasks due within the next 24 hours
// and emits a structured reminder per task. It runs independently of
// request handling.
type Reminder struct {
	tasks    repository.TaskRepository
	log      *logrus.Logger
	interval time.Duration
	window   time.Duration
}

// NewReminder creates the due-soon reminder job.
func NewReminder(tasks repository.TaskRepository, log *logrus.Logger, interval time.Duration) *Reminder {
	return &Reminder{
		tasks:    tasks,
		log:      log,
		interval: interval,
		window:   24 * time.Hour,
	}
}

// Run blocks until ctx is cancelled, scanning once per interval.
func (r *Reminder) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.scan()
		}
	}
}

func (r *Reminder) scan() {
	r.log.Info("starting due task scan")
	tasks, err := r.tasks.DueSoon(r.window)
	if err != nil {
		r.log.WithError(err).Error("due task scan failed")
		return
	}
	for i := range tasks {
		task := &tasks[i]
		r.log.WithFields(logrus.Fields{
			"task_id": task.ID,
			"user_id": task.UserID,
			"title":   task.Title,
			"event":   "reminder_sent",
		}).Info("task due soon")
	}
}
