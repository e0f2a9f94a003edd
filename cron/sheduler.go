package cron

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// StartCron schedules every registered job and starts the scheduler.
func StartCron() *cron.Cron {
	c, err := NewScheduler(Jobs())
	if err != nil {
		log.Fatalf("Failed to register job: %v", err)
	}
	c.Start()
	return c
}

// NewScheduler returns a stopped scheduler holding jobs.
func NewScheduler(jobs map[string]Job) (*cron.Cron, error) {
	c := cron.New()
	for name, j := range jobs {
		run := j.Run
		if _, err := c.AddFunc(j.Schedule, func() { run() }); err != nil {
			return nil, fmt.Errorf("job %s: %w", name, err)
		}
	}
	return c, nil
}
