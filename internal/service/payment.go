package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/logger"
	"instrument-rental-backend/internal/processor"
	"instrument-rental-backend/internal/repository"
	"instrument-rental-backend/internal/utils"
)

type paymentService struct {
	tx        repository.TxRunner
	repos     *repository.Repositories
	processor processor.PaymentProcessor
	emailSvc  EmailService
	feeRate   float64
	currency  string
}

func NewPaymentService(
	tx repository.TxRunner,
	repos *repository.Repositories,
	proc processor.PaymentProcessor,
	emailSvc EmailService,
	feeRate float64,
	currency string,
) PaymentService {
	return &paymentService{
		tx:        tx,
		repos:     repos,
		processor: proc,
		emailSvc:  emailSvc,
		feeRate:   feeRate,
		currency:  currency,
	}
}

// InitiatePayment creates (or reuses) a pending payment for the rental and
// opens a processor intent for the renter's total: amount plus platform fee.
// The owner's payout is amount minus fee, so the platform retains both
// sides of the fee.
func (s *paymentService) InitiatePayment(ctx context.Context, callerID, rentalID int32) (*PaymentInitiation, error) {
	rental, ownership, err := s.loadRentalForPayment(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.RenterID != callerID {
		return nil, domain.Forbiddenf("only the renter can pay for this rental")
	}
	switch rental.Status {
	case domain.RentalStatusPending, domain.RentalStatusActive:
	default:
		return nil, domain.InvalidOperationf("rental is %s and cannot be paid", rental.Status)
	}

	if completed, err := s.repos.Payments.GetByRentalAndStatus(ctx, rentalID, domain.PaymentStatusCompleted); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, domain.Internal(err)
	} else if completed != nil {
		return nil, domain.InvalidOperationf("rental is already paid")
	}

	amount := rental.TotalCost
	platformFee := utils.Round2(amount * s.feeRate)
	total := amount + platformFee
	ownerPayout := utils.Round2(amount - platformFee)

	payment, err := s.repos.Payments.GetByRentalAndStatus(ctx, rentalID, domain.PaymentStatusPending)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, domain.Internal(err)
	}
	if payment == nil {
		payment = &domain.Payment{
			RentalID:    rentalID,
			RenterID:    rental.RenterID,
			OwnerID:     ownership.UserID,
			Amount:      amount,
			PlatformFee: platformFee,
			OwnerPayout: ownerPayout,
			Status:      domain.PaymentStatusPending,
		}
		if err := s.repos.Payments.Create(ctx, payment); err != nil {
			return nil, domain.Internal(err)
		}
	}

	intent, err := s.processor.CreateIntent(ctx, utils.ToCents(total), s.currency, map[string]string{
		"rental_id":  fmt.Sprintf("%d", rentalID),
		"payment_id": fmt.Sprintf("%d", payment.ID),
	})
	if err != nil {
		payment.Status = domain.PaymentStatusFailed
		payment.ErrorMessage = err.Error()
		if uerr := s.repos.Payments.Update(ctx, payment); uerr != nil {
			logger.Error("failed to record payment failure", "payment_id", payment.ID, "error", uerr)
		}
		return nil, err
	}

	payment.ProcessorIntent = intent.ID
	if err := s.repos.Payments.Update(ctx, payment); err != nil {
		return nil, domain.Internal(err)
	}

	return &PaymentInitiation{
		Payment:      payment,
		ClientSecret: intent.ClientSecret,
		TotalAmount:  total,
		Currency:     s.currency,
	}, nil
}

// ConfirmPayment re-queries the processor for the intent's actual state
// rather than trusting the client's claim of success.
func (s *paymentService) ConfirmPayment(ctx context.Context, callerID, rentalID int32) (*domain.Payment, error) {
	rental, _, err := s.loadRentalForPayment(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.RenterID != callerID {
		return nil, domain.Forbiddenf("only the renter can confirm this payment")
	}

	if completed, err := s.repos.Payments.GetByRentalAndStatus(ctx, rentalID, domain.PaymentStatusCompleted); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, domain.Internal(err)
	} else if completed != nil {
		// Already applied; confirming twice is a no-op.
		return completed, nil
	}

	payment, err := s.repos.Payments.GetByRentalAndStatus(ctx, rentalID, domain.PaymentStatusPending)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("no pending payment for rental %d", rentalID)
		}
		return nil, domain.Internal(err)
	}
	if payment.ProcessorIntent == "" {
		return nil, domain.InvalidOperationf("payment was never initiated with the processor")
	}

	intent, err := s.processor.GetIntent(ctx, payment.ProcessorIntent)
	if err != nil {
		return nil, err
	}

	if intent.Status != processor.IntentStatusSucceeded {
		payment.Status = domain.PaymentStatusFailed
		payment.ErrorMessage = fmt.Sprintf("payment intent in state %q", intent.Status)
		if uerr := s.repos.Payments.Update(ctx, payment); uerr != nil {
			logger.Error("failed to record payment failure", "payment_id", payment.ID, "error", uerr)
		}
		return nil, domain.InvalidOperationf("payment has not succeeded: intent state is %s", intent.Status)
	}

	now := time.Now()
	err = s.tx.RunInTx(ctx, func(r *repository.Repositories) error {
		payment.Status = domain.PaymentStatusCompleted
		payment.ProcessorCharge = intent.ChargeID
		payment.CompletedOn = &now
		if err := r.Payments.Update(ctx, payment); err != nil {
			return domain.Internal(err)
		}

		rental.Status = domain.RentalStatusActive
		if err := r.Rentals.Update(ctx, rental); err != nil {
			return domain.Internal(err)
		}
		return r.Ownerships.SetAvailability(ctx, rental.OwnershipID, false)
	})
	if err != nil {
		return nil, err
	}

	s.sendReceipt(ctx, payment)
	return payment, nil
}

func (s *paymentService) RefundPayment(ctx context.Context, callerID, paymentID int32) (*domain.Payment, error) {
	payment, err := s.GetPayment(ctx, callerID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentStatusCompleted {
		return nil, domain.InvalidOperationf("only completed payments can be refunded")
	}
	if payment.ProcessorCharge == "" {
		return nil, domain.InvalidOperationf("payment has no charge to refund")
	}

	refundID, err := s.processor.RefundCharge(ctx, payment.ProcessorCharge, map[string]string{
		"payment_id": fmt.Sprintf("%d", payment.ID),
	})
	if err != nil {
		return nil, err
	}
	logger.Info("processor refund issued", "payment_id", payment.ID, "refund_id", refundID)

	err = s.tx.RunInTx(ctx, func(r *repository.Repositories) error {
		payment.Status = domain.PaymentStatusRefunded
		if err := r.Payments.Update(ctx, payment); err != nil {
			return domain.Internal(err)
		}

		rental, err := r.Rentals.GetByID(ctx, payment.RentalID)
		if err != nil {
			return domain.Internal(err)
		}
		rental.Status = domain.RentalStatusCancelled
		if err := r.Rentals.Update(ctx, rental); err != nil {
			return domain.Internal(err)
		}
		return r.Ownerships.SetAvailability(ctx, rental.OwnershipID, true)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) GetPayment(ctx context.Context, callerID, paymentID int32) (*domain.Payment, error) {
	payment, err := s.repos.Payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("payment %d not found", paymentID)
		}
		return nil, domain.Internal(err)
	}
	if payment.RenterID != callerID && payment.OwnerID != callerID {
		return nil, domain.Forbiddenf("payment %d does not involve you", paymentID)
	}
	return payment, nil
}

func (s *paymentService) ListMyPayments(ctx context.Context, userID int32) ([]domain.Payment, error) {
	payments, err := s.repos.Payments.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return payments, nil
}

func (s *paymentService) loadRentalForPayment(ctx context.Context, rentalID int32) (*domain.Rental, *domain.Ownership, error) {
	rental, err := s.repos.Rentals.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.NotFoundf("rental %d not found", rentalID)
		}
		return nil, nil, domain.Internal(err)
	}
	ownership, err := s.repos.Ownerships.GetByID(ctx, rental.OwnershipID)
	if err != nil {
		return nil, nil, domain.Internal(err)
	}
	return rental, ownership, nil
}

func (s *paymentService) sendReceipt(ctx context.Context, payment *domain.Payment) {
	renter, err := s.repos.Users.GetByID(ctx, payment.RenterID)
	if err != nil {
		return
	}
	rental, err := s.repos.Rentals.GetByID(ctx, payment.RentalID)
	if err != nil {
		return
	}
	ownership, err := s.repos.Ownerships.GetByID(ctx, rental.OwnershipID)
	if err != nil {
		return
	}
	instrument, err := s.repos.Instruments.GetByID(ctx, ownership.InstrumentID)
	if err != nil {
		return
	}
	total := payment.Amount + payment.PlatformFee
	if err := s.emailSvc.SendPaymentReceipt(ctx, renter.Email, instrument.Name, total); err != nil {
		logger.Warn("failed to send payment receipt", "payment_id", payment.ID, "error", err)
	}
}
