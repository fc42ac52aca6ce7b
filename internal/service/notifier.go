package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/logger"
	"github.com/ezhulati/liftout-platform-sub000/internal/repository"
)

// notifyJob is one fan-out unit: a message for a set of recipients,
// delivered as in-app notification rows plus best-effort email and push.
type notifyJob struct {
	ID         string
	Recipients []domain.User
	Title      string
	Message    string
	Attributes map[string]string
	Email      func(ctx context.Context, recipient domain.User) error
}

// DispatchNotifier decouples the lifecycle services from delivery latency:
// enqueueing never blocks and never fails the caller. Delivery is
// at-most-once; a full queue drops the job with a warning.
type DispatchNotifier struct {
	noteRepo repository.NotificationRepository
	emailSvc EmailService
	pushSvc  PushService
	jobs     chan notifyJob
	workers  int
	timeout  time.Duration
}

func NewDispatchNotifier(noteRepo repository.NotificationRepository, emailSvc EmailService, pushSvc PushService, workers, queueSize int) *DispatchNotifier {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 256
	}
	return &DispatchNotifier{
		noteRepo: noteRepo,
		emailSvc: emailSvc,
		pushSvc:  pushSvc,
		jobs:     make(chan notifyJob, queueSize),
		workers:  workers,
		timeout:  15 * time.Second,
	}
}

// Start launches the worker pool. Workers exit when ctx is cancelled.
func (n *DispatchNotifier) Start(ctx context.Context) {
	for i := 0; i < n.workers; i++ {
		go n.worker(ctx, i)
	}
}

func (n *DispatchNotifier) worker(ctx context.Context, id int) {
	logger.Debug("Notification worker started", "worker", id)
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Notification worker stopping", "worker", id)
			return
		case job := <-n.jobs:
			n.process(job)
		}
	}
}

func (n *DispatchNotifier) process(job notifyJob) {
	// Delivery runs on its own deadline, detached from the request that
	// triggered it.
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	for _, recipient := range job.Recipients {
		note := &domain.Notification{
			UserID:     recipient.ID,
			Title:      job.Title,
			Message:    job.Message,
			Attributes: job.Attributes,
		}
		if err := n.noteRepo.Create(ctx, note); err != nil {
			logger.Error("Failed to store notification", "job_id", job.ID, "user_id", recipient.ID, "error", err)
		}

		if job.Email != nil && recipient.Email != "" {
			if err := job.Email(ctx, recipient); err != nil {
				logger.Error("Failed to send notification email", "job_id", job.ID, "user_id", recipient.ID, "error", err)
			}
		}

		if n.pushSvc != nil && recipient.DeviceToken != "" {
			if err := n.pushSvc.SendPush(ctx, recipient.DeviceToken, job.Title, job.Message); err != nil {
				logger.Error("Failed to send push notification", "job_id", job.ID, "user_id", recipient.ID, "error", err)
			}
		}
	}
}

func (n *DispatchNotifier) enqueue(job notifyJob) {
	select {
	case n.jobs <- job:
	default:
		logger.Warn("Notification queue full, dropping job", "job_id", job.ID, "title", job.Title)
	}
}

func (n *DispatchNotifier) NotifyApplicationStatus(recipients []domain.User, teamName, opportunityTitle, companyName string, status domain.ApplicationStatus, message string) {
	title := fmt.Sprintf("Application %s", statusLabel(status))
	body := fmt.Sprintf("%s's application to %s at %s is now %s.", teamName, opportunityTitle, companyName, statusLabel(status))
	if message != "" {
		body += " " + message
	}

	n.enqueue(notifyJob{
		ID:         uuid.NewString(),
		Recipients: recipients,
		Title:      title,
		Message:    body,
		Attributes: map[string]string{
			"type":   "APPLICATION_STATUS",
			"status": string(status),
		},
		Email: func(ctx context.Context, recipient domain.User) error {
			return n.emailSvc.SendApplicationStatusNotification(ctx, recipient.Email, recipient.Name, teamName, opportunityTitle, companyName, status, message)
		},
	})
}

func (n *DispatchNotifier) NotifyExpressionOfInterest(recipients []domain.User, interestedPartyName, targetName, message string, eoiID int32) {
	title := "New Expression of Interest"
	body := fmt.Sprintf("%s has expressed interest in %s.", interestedPartyName, targetName)
	if message != "" {
		body += " " + message
	}

	n.enqueue(notifyJob{
		ID:         uuid.NewString(),
		Recipients: recipients,
		Title:      title,
		Message:    body,
		Attributes: map[string]string{
			"type":   "EXPRESSION_OF_INTEREST",
			"eoi_id": fmt.Sprintf("%d", eoiID),
		},
		Email: func(ctx context.Context, recipient domain.User) error {
			return n.emailSvc.SendEOINotification(ctx, recipient.Email, recipient.Name, interestedPartyName, targetName, message)
		},
	})
}

func statusLabel(status domain.ApplicationStatus) string {
	switch status {
	case domain.ApplicationStatusSubmitted:
		return "Submitted"
	case domain.ApplicationStatusReviewing:
		return "Under Review"
	case domain.ApplicationStatusInterviewing:
		return "Interviewing"
	case domain.ApplicationStatusAccepted:
		return "Accepted"
	case domain.ApplicationStatusRejected:
		return "Rejected"
	default:
		return string(status)
	}
}
