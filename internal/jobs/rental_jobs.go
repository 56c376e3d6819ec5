package jobs

import (
	"context"
	"time"

	"instrument-rental-backend/internal/logger"
)

// SendReturnReminders emails renters whose active rentals are past their
// end date. Rental status is never changed here; returns and refunds stay
// request-driven.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()

		query := `
			SELECT u.email, u.name, i.name, r.end_date
			FROM rentals r
			JOIN users u ON u.id = r.renter_id
			JOIN ownerships o ON o.id = r.ownership_id
			JOIN instruments i ON i.id = o.instrument_id
			WHERE r.status = 'active'
			  AND r.end_date < $1
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().Format("2006-01-02"))
		if err != nil {
			logger.Error("Failed to find overdue rentals", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var email, name, instrumentName string
			var endDate time.Time
			if err := rows.Scan(&email, &name, &instrumentName, &endDate); err != nil {
				logger.Error("Failed to scan overdue rental", "error", err)
				continue
			}

			if err := jr.emailSvc.SendReturnReminder(ctx, email, name, instrumentName, endDate.Format("2006-01-02")); err != nil {
				logger.Error("Failed to send return reminder", "email", email, "error", err)
				continue
			}
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue rentals", "error", err)
			return
		}

		logger.Info("Sent return reminders", "count", count)
	})
}
