package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/logger"
)

// SendDeadlineReminders nudges the hiring company about applications still
// in review past their response deadline.
func (jr *JobRunner) SendDeadlineReminders() {
	jr.runWithRecovery("SendDeadlineReminders", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Format(time.RFC3339)

		apps, err := jr.store.ApplicationRepository.ListReviewingPastDeadline(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to query applications past deadline", "error", err)
			return
		}

		count := 0
		for i := range apps {
			app := &apps[i]
			opp, err := jr.store.OpportunityRepository.GetByID(ctx, app.OpportunityID)
			if err != nil || opp == nil {
				logger.Error("Failed to load opportunity for reminder", "application_id", app.ID, "error", err)
				continue
			}
			members, err := jr.store.CompanyRepository.ListMembers(ctx, opp.CompanyID)
			if err != nil {
				logger.Error("Failed to list company members for reminder", "application_id", app.ID, "error", err)
				continue
			}

			var teamName string
			if team, err := jr.store.TeamRepository.GetByID(ctx, app.TeamID); err == nil && team != nil {
				teamName = team.Name
			}
			var companyName string
			if comp, err := jr.store.CompanyRepository.GetByID(ctx, opp.CompanyID); err == nil && comp != nil {
				companyName = comp.Name
			}

			message := fmt.Sprintf("The response deadline for this application has passed. Please review %s's application.", teamName)
			jr.notifier.NotifyApplicationStatus(members, teamName, opp.Title, companyName, app.Status, message)
			count++
		}
		logger.Info("Deadline reminders dispatched", "count", count)
	})
}

// ExpireStaleEOIs declines expressions of interest that have sat pending
// longer than the configured horizon.
func (jr *JobRunner) ExpireStaleEOIs() {
	jr.runWithRecovery("ExpireStaleEOIs", func() {
		ctx := context.Background()
		horizon := time.Duration(jr.config.Scheduler.EOIMaxPendingDays) * 24 * time.Hour
		cutoff := time.Now().UTC().Add(-horizon).Format(time.RFC3339)

		stale, err := jr.store.EOIRepository.ListPendingOlderThan(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to query stale expressions of interest", "error", err)
			return
		}

		count := 0
		for i := range stale {
			eoi := &stale[i]
			ts := time.Now().UTC().Format(time.RFC3339)
			eoi.Status = domain.EOIStatusDeclined
			eoi.RespondedAt = &ts
			if err := jr.store.EOIRepository.UpdateStatus(ctx, eoi, domain.EOIStatusPending); err != nil {
				// A concurrent response beat the expiry; that wins.
				logger.Warn("Skipping stale EOI, already resolved", "eoi_id", eoi.ID, "error", err)
				continue
			}
			count++
		}
		logger.Info("Stale expressions of interest expired", "count", count)
	})
}
