package background

import (
	"context"
	"fmt"
	"log"
	"time"

	"bizdel/internal/models"
	"bizdel/internal/repositories"
	"bizdel/internal/services"

	"github.com/go-co-op/gocron/v2"
)

const reminderWindow = 7 * 24 * time.Hour

// JobScheduler manages recurring background jobs
type JobScheduler struct {
	scheduler       gocron.Scheduler
	complianceRepo  repositories.ComplianceRepository
	notificationSvc services.NotificationService
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(complianceRepo repositories.ComplianceRepository,
	notificationSvc services.NotificationService) (*JobScheduler, error) {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:       scheduler,
		complianceRepo:  complianceRepo,
		notificationSvc: notificationSvc,
	}

	js.registerJobs()

	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	// Compliance reminder sweep - every hour
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			if err := js.SweepComplianceReminders(context.Background(), time.Now()); err != nil {
				log.Printf("WARN: compliance reminder sweep failed: %v", err)
			}
		}),
		gocron.WithName("compliance-reminders"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create compliance reminder job: %v", err)
	}
}

// SweepComplianceReminders scans unfiled compliance items, notifies users of
// anything due within the reminder window, and flips past-due items to
// overdue. Each item gets at most one reminder.
func (js *JobScheduler) SweepComplianceReminders(ctx context.Context, now time.Time) error {
	items, err := js.complianceRepo.ListDueBefore(ctx, now.Add(reminderWindow))
	if err != nil {
		return err
	}

	for _, item := range items {
		overdue := item.NextDue.Before(now)

		if overdue && item.Status != models.ComplianceStatusOverdue {
			status := models.ComplianceStatusOverdue
			if _, err := js.complianceRepo.Update(ctx, item.ID, &models.ComplianceItemUpdate{Status: &status}); err != nil {
				log.Printf("WARN: failed to mark compliance item %s overdue: %v", item.ID, err)
				continue
			}
		}

		if item.ReminderSent {
			continue
		}

		notifType := models.NotificationTypeWarning
		message := fmt.Sprintf("%s is due on %s. File it on time to avoid penalties.",
			item.ItemName, item.NextDue.Format("02 Jan 2006"))
		if overdue {
			notifType = models.NotificationTypeUrgent
			message = fmt.Sprintf("%s was due on %s and is now overdue.",
				item.ItemName, item.NextDue.Format("02 Jan 2006"))
		}

		if _, err := js.notificationSvc.Create(ctx, &services.CreateNotificationRequest{
			UserID:  item.UserID,
			Title:   "Compliance Deadline Reminder",
			Message: message,
			Type:    notifType,
		}); err != nil {
			log.Printf("WARN: failed to create reminder notification for item %s: %v", item.ID, err)
			continue
		}

		sent := true
		if _, err := js.complianceRepo.Update(ctx, item.ID, &models.ComplianceItemUpdate{ReminderSent: &sent}); err != nil {
			log.Printf("WARN: failed to flag reminder for item %s: %v", item.ID, err)
		}
	}

	return nil
}
