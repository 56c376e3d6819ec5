package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/processor"
	"instrument-rental-backend/internal/service"
)

func TestInitiatePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		m, repos := newRepoMocks()
		proc := new(MockProcessor)
		svc := service.NewPaymentService(&fakeTxRunner{repos: repos}, repos, proc, new(MockEmailService), 0.10, "usd")

		m.rentals.On("GetByID", ctx, int32(1)).Return(&domain.Rental{
			ID: 1, RenterID: 1, OwnershipID: 5, TotalCost: 150, Status: domain.RentalStatusPending,
		}, nil)
		m.ownerships.On("GetByID", ctx, int32(5)).Return(&domain.Ownership{ID: 5, UserID: 2}, nil)
		m.payments.On("GetByRentalAndStatus", ctx, int32(1), domain.PaymentStatusCompleted).Return(nil, sql.ErrNoRows)
		m.payments.On("GetByRentalAndStatus", ctx, int32(1), domain.PaymentStatusPending).Return(nil, sql.ErrNoRows)
		m.payments.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Payment).ID = 42
		})
		proc.On("CreateIntent", ctx, int64(16500), "usd", map[string]string{
			"rental_id": "1", "payment_id": "42",
		}).Return(&processor.Intent{ID: "pi_1", ClientSecret: "cs_1"}, nil)
		m.payments.On("Update", ctx, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.ProcessorIntent == "pi_1"
		})).Return(nil)

		init, err := svc.InitiatePayment(ctx, 1, 1)
		assert.NoError(t, err)
		assert.Equal(t, "cs_1", init.ClientSecret)
		assert.Equal(t, 165.0, init.TotalAmount) // renter pays amount plus fee
		assert.Equal(t, 150.0, init.Payment.Amount)
		assert.Equal(t, 15.0, init.Payment.PlatformFee)
		assert.Equal(t, 135.0, init.Payment.OwnerPayout) // owner receives amount minus fee
		proc.AssertExpectations(t)
	})

	t.Run("NotTheRenter", func(t *testing.T) {
		m, repos := newRepoMocks()
		svc := service.NewPaymentService(&fakeTxRunner{repos: repos}, repos, new(MockProcessor), new(MockEmailService), 0.10, "usd")
		m.rentals.On("GetByID", ctx, int32(1)).Return(&domain.Rental{ID: 1, RenterID: 1, OwnershipID: 5}, nil)
		m.ownerships.On("GetByID", ctx, int32(5)).Return(&domain.Ownership{ID: 5, UserID: 2}, nil)

		_, err := svc.InitiatePayment(ctx, 2, 1)
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	})

	t.Run("AlreadyPaid", func(t *testing.T) {
		m, repos := newRepoMocks()
		proc := new(MockProcessor)
		svc := service.NewPaymentService(&fakeTxRunner{repos: repos}, repos, proc, new(MockEmailService), 0.10, "usd")
		m.rentals.On("GetByID", ctx, int32(1)).Return(&domain.Rental{
			ID: 1, RenterID: 1, OwnershipID: 5, TotalCost: 150, Status: domain.RentalStatusActive,
		}, nil)
		m.ownerships.On("GetByID", ctx, int32(5)).Return(&domain.Ownership{ID: 5, UserID: 2}, nil)
		m.payments.On("GetByRentalAndStatus", ctx, int32(1), domain.PaymentStatusCompleted).
			Return(&domain.Payment{ID: 42, Status: domain.PaymentStatusCompleted}, nil)

		_, err := svc.InitiatePayment(ctx, 1, 1)
		assert.Equal(t, domain.KindInvalidOperation, domain.KindOf(err))
		proc.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CancelledRental", func(t *testing.T) {
		m, repos := newRepoMocks()
		svc := service.NewPaymentService(&fakeTxRunner{repos: repos}, repos, new(MockProcessor), new(MockEmailService), 0.10, "usd")
		m.rentals.On("GetByID", ctx, int32(1)).Return(&domain.Rental{
			ID: 1, RenterID: 1, OwnershipID: 5, Status: domain.RentalStatusCancelled,
		}, nil)
		m.ownerships.On("GetByID", ctx, int32(5)).Return(&domain.Ownership{ID: 5, UserID: 2}, nil)

		_, err := svc.InitiatePayment(ctx, 1, 1)
		assert.Equal(t, domain.KindInvalidOperation, domain.KindOf(err))
	})

	t.Run("ProcessorFailureMarksPaymentFailed", func(t *testing.T) {
		m, repos := newRepoMocks()
		proc := new(MockProcessor)
		svc := service.NewPaymentService(&fakeTxRunner{repos: repos}, repos, proc, new(MockEmailService), 0.10, "usd")

		m.rentals.On("GetByID", ctx, int32(1)).Return(&domain.Rental{
			ID: 1, RenterID: 1, OwnershipID: 5, TotalCost: 150, Status: domain.RentalStatusPending,
		}, nil)
		m.ownerships.On("GetByID", ctx, int32(5)).Return(&domain.Ownership{ID: 5, UserID: 2}, nil)
		m.payments.On("GetByRentalAndStatus", ctx, int32(1), domain.PaymentStatusCompleted).Return(nil, sql.ErrNoRows)
		m.payments.On("GetByRentalAndStatus", ctx, int32(1), domain.PaymentStatusPending).Return(nil, sql.ErrNoRows)
		m.payments.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)
		proc.On("CreateIntent", ctx, mock.AnythingOfType("int64"), "usd", mock.Anything).
			Return(nil, domain.PaymentFailed("card declined", nil))
		m.payments.On("Update", ctx, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.Status == domain.PaymentStatusFailed && p.ErrorMessage != ""
		})).Return(nil)

		_, err := svc.InitiatePayment(ctx, 1, 1)
		assert.Equal(t, domain.KindPayment, domain.KindOf(err))
		m.payments.AssertExpectations(t)
	})
}

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		m, repos := newRepoMocks()
		proc := new(MockProcessor)
		emailSvc := new(MockEmailService)
		svc := service.NewPaymentService(&fakeTxRunner{repos: repos}, repos, proc, emailSvc, 0.10, "usd")

		rental := &domain.Rental{ID: 1, RenterID: 1, OwnershipID: 5, TotalCost: 150, Status: domain.RentalStatusPending}
		m.rentals.On("GetByID", ctx, int32(1)).Return(rental, nil)
		ownership := &domain.Ownership{ID: 5, UserID: 2, InstrumentID: 7}
		m.ownerships.On("GetByID", ctx, int32(5)).Return(ownership, nil)
		m.payments.On("GetByRentalAndStatus", ctx, int32(1), domain.PaymentStatusCompleted).Return(nil, sql.ErrNoRows)
		pending := &domain.Payment{ID: 42, RentalID: 1, RenterID: 1, Amount: 150, PlatformFee: 15, Status: domain.PaymentStatusPending, ProcessorIntent: "pi_1"}
		m.payments.On("GetByRentalAndStatus", ctx, int32(1), domain.PaymentStatusPending).Return(pending, nil)
		proc.On("GetIntent", ctx, "pi_1").Return(&processor.Intent{ID: "pi_1", Status: processor.IntentStatusSucceeded, ChargeID: "ch_1"}, nil)
		m.payments.On("Update", ctx, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.Status == domain.PaymentStatusCompleted && p.ProcessorCharge == "ch_1" && p.CompletedOn != nil
		})).Return(nil)
		m.rentals.On("Update", ctx, mock.MatchedBy(func(r *domain.Rental) bool {
			return r.Status == domain.RentalStatusActive
		})).Return(nil)
		m.ownerships.On("SetAvailability", ctx, int32(5), false).Return(nil)

		m.users.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "renter@example.com"}, nil)
		m.instruments.On("GetByID", ctx, int32(7)).Return(&domain.Instrument{ID: 7, Name: "Upright Bass"}, nil)
		emailSvc.On("SendPaymentReceipt", ctx, "renter@example.com", "Upright Bass", 165.0).Return(nil)

		payment, err := svc.ConfirmPayment(ctx, 1, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusCompleted, payment.Status)
		emailSvc.AssertExpectations(t)
	})

	t.Run("AlreadyCompletedIsIdempotent", func(t *testing.T) {
		m, repos := newRepoMocks()
		proc := new(MockProcessor)
		svc := service.NewPaymentService(&fakeTxRunner{repos: repos}, repos, proc, new(MockEmailService), 0.10, "usd")

		m.rentals.On("GetByID", ctx, int32(1)).Return(&domain.Rental{ID: 1, RenterID: 1, OwnershipID: 5, Status: domain.RentalStatusActive}, nil)
		m.ownerships.On("GetByID", ctx, int32(5)).Return(&domain.Ownership{ID: 5, UserID: 2}, nil)
		completed := &domain.Payment{ID: 42, Status: domain.PaymentStatusCompleted}
		m.payments.On("GetByRentalAndStatus", ctx, int32(1), domain.PaymentStatusCompleted).Return(completed, nil)

		payment, err := svc.ConfirmPayment(ctx, 1, 1)
		assert.NoError(t, err)
		assert.Equal(t, completed, payment)
		proc.AssertNotCalled(t, "GetIntent", mock.Anything, mock.Anything)
		m.rentals.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("IntentNotSucceeded", func(t *testing.T) {
		m, repos := newRepoMocks()
		proc := new(MockProcessor)
		svc := service.NewPaymentService(&fakeTxRunner{repos: repos}, repos, proc, new(MockEmailService), 0.10, "usd")

		m.rentals.On("GetByID", ctx, int32(1)).Return(&domain.Rental{ID: 1, RenterID: 1, OwnershipID: 5, Status: domain.RentalStatusPending}, nil)
		m.ownerships.On("GetByID", ctx, int32(5)).Return(&domain.Ownership{ID: 5, UserID: 2}, nil)
		m.payments.On("GetByRentalAndStatus", ctx, int32(1), domain.PaymentStatusCompleted).Return(nil, sql.ErrNoRows)
		m.payments.On("GetByRentalAndStatus", ctx, int32(1), domain.PaymentStatusPending).
			Return(&domain.Payment{ID: 42, Status: domain.PaymentStatusPending, ProcessorIntent: "pi_1"}, nil)
		proc.On("GetIntent", ctx, "pi_1").Return(&processor.Intent{ID: "pi_1", Status: processor.IntentStatusRequiresPaymentMethod}, nil)
		m.payments.On("Update", ctx, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.Status == domain.PaymentStatusFailed
		})).Return(nil)

		_, err := svc.ConfirmPayment(ctx, 1, 1)
		assert.Equal(t, domain.KindInvalidOperation, domain.KindOf(err))
	})

	t.Run("NoPendingPayment", func(t *testing.T) {
		m, repos := newRepoMocks()
		svc := service.NewPaymentService(&fakeTxRunner{repos: repos}, repos, new(MockProcessor), new(MockEmailService), 0.10, "usd")

		m.rentals.On("GetByID", ctx, int32(1)).Return(&domain.Rental{ID: 1, RenterID: 1, OwnershipID: 5, Status: domain.RentalStatusPending}, nil)
		m.ownerships.On("GetByID", ctx, int32(5)).Return(&domain.Ownership{ID: 5, UserID: 2}, nil)
		m.payments.On("GetByRentalAndStatus", ctx, int32(1), mock.AnythingOfType("domain.PaymentStatus")).Return(nil, sql.ErrNoRows)

		_, err := svc.ConfirmPayment(ctx, 1, 1)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})
}

func TestRefundPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		m, repos := newRepoMocks()
		proc := new(MockProcessor)
		svc := service.NewPaymentService(&fakeTxRunner{repos: repos}, repos, proc, new(MockEmailService), 0.10, "usd")

		payment := &domain.Payment{ID: 42, RentalID: 1, RenterID: 1, OwnerID: 2, Status: domain.PaymentStatusCompleted, ProcessorCharge: "ch_1"}
		m.payments.On("GetByID", ctx, int32(42)).Return(payment, nil)
		proc.On("RefundCharge", ctx, "ch_1", map[string]string{"payment_id": "42"}).Return("re_1", nil)
		m.payments.On("Update", ctx, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.Status == domain.PaymentStatusRefunded
		})).Return(nil)
		m.rentals.On("GetByID", ctx, int32(1)).Return(&domain.Rental{ID: 1, OwnershipID: 5, Status: domain.RentalStatusActive}, nil)
		m.rentals.On("Update", ctx, mock.MatchedBy(func(r *domain.Rental) bool {
			return r.Status == domain.RentalStatusCancelled
		})).Return(nil)
		m.ownerships.On("SetAvailability", ctx, int32(5), true).Return(nil)

		refunded, err := svc.RefundPayment(ctx, 1, 42)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusRefunded, refunded.Status)
		m.ownerships.AssertCalled(t, "SetAvailability", ctx, int32(5), true)
	})

	t.Run("DoubleRefund", func(t *testing.T) {
		m, repos := newRepoMocks()
		proc := new(MockProcessor)
		svc := service.NewPaymentService(&fakeTxRunner{repos: repos}, repos, proc, new(MockEmailService), 0.10, "usd")
		m.payments.On("GetByID", ctx, int32(42)).Return(&domain.Payment{ID: 42, RenterID: 1, Status: domain.PaymentStatusRefunded}, nil)

		_, err := svc.RefundPayment(ctx, 1, 42)
		assert.Equal(t, domain.KindInvalidOperation, domain.KindOf(err))
		proc.AssertNotCalled(t, "RefundCharge", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UninvolvedCaller", func(t *testing.T) {
		m, repos := newRepoMocks()
		svc := service.NewPaymentService(&fakeTxRunner{repos: repos}, repos, new(MockProcessor), new(MockEmailService), 0.10, "usd")
		m.payments.On("GetByID", ctx, int32(42)).Return(&domain.Payment{ID: 42, RenterID: 1, OwnerID: 2, Status: domain.PaymentStatusCompleted}, nil)

		_, err := svc.RefundPayment(ctx, 9, 42)
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	})
}
