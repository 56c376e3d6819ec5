package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/security"
)

const testSecret = "handler-test-secret-0123456789abcdef"

func newTestRouter(rentalSvc *MockRentalService) (http.Handler, security.TokenManager) {
	tokens := security.NewTokenManager(testSecret, 15, 1440)
	h := Handlers{
		Auth:           NewAuthHandler(nil),
		Users:          NewUserHandler(nil),
		Instruments:    NewInstrumentHandler(nil),
		Ownerships:     NewOwnershipHandler(nil),
		Rentals:        NewRentalHandler(rentalSvc),
		Payments:       NewPaymentHandler(nil),
		Reviews:        NewReviewHandler(nil),
		Surveys:        NewSurveyHandler(nil),
		Recommendation: NewRecommendationHandler(nil),
		Chatbot:        NewChatbotHandler(nil),
		Dashboard:      NewDashboardHandler(nil),
	}
	return NewRouter(h, tokens), tokens
}

func authedRequest(t *testing.T, tokens security.TokenManager, method, target, body string) *http.Request {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	access, err := tokens.GenerateAccessToken(1, "renter@example.com", "renter")
	if err != nil {
		t.Fatalf("error generating token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+access)
	return req
}

func TestRentalHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		rentalSvc := new(MockRentalService)
		router, tokens := newTestRouter(rentalSvc)

		rental := &domain.Rental{ID: 10, RenterID: 1, OwnershipID: 5, TotalCost: 60, Status: domain.RentalStatusPending}
		rentalSvc.On("CreateRental", mock.Anything, int32(1), int32(5), "2026-03-01", "2026-03-03").Return(rental, nil)

		req := authedRequest(t, tokens, http.MethodPost, "/api/rentals",
			`{"ownership_id": 5, "start_date": "2026-03-01", "end_date": "2026-03-03"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var got domain.Rental
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int32(10), got.ID)
		assert.Equal(t, 60.0, got.TotalCost)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		rentalSvc := new(MockRentalService)
		router, tokens := newTestRouter(rentalSvc)

		req := authedRequest(t, tokens, http.MethodPost, "/api/rentals", `{"ownership_id": `)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		rentalSvc.AssertNotCalled(t, "CreateRental", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ConflictMapsTo409", func(t *testing.T) {
		rentalSvc := new(MockRentalService)
		router, tokens := newTestRouter(rentalSvc)
		rentalSvc.On("CreateRental", mock.Anything, int32(1), int32(5), "2026-03-01", "2026-03-03").
			Return(nil, domain.Conflictf("instrument is not available for rental"))

		req := authedRequest(t, tokens, http.MethodPost, "/api/rentals",
			`{"ownership_id": 5, "start_date": "2026-03-01", "end_date": "2026-03-03"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "not available")
	})

	t.Run("NoToken", func(t *testing.T) {
		rentalSvc := new(MockRentalService)
		router, _ := newTestRouter(rentalSvc)

		req := httptest.NewRequest(http.MethodPost, "/api/rentals", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("RefreshTokenRejected", func(t *testing.T) {
		rentalSvc := new(MockRentalService)
		router, tokens := newTestRouter(rentalSvc)

		refresh, err := tokens.GenerateRefreshToken(1, "renter@example.com")
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/rentals", strings.NewReader(`{}`))
		req.Header.Set("Authorization", "Bearer "+refresh)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRentalHandler_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		rentalSvc := new(MockRentalService)
		router, tokens := newTestRouter(rentalSvc)
		rentalSvc.On("GetRental", mock.Anything, int32(1), int32(10)).Return(&domain.Rental{ID: 10, RenterID: 1}, nil)

		req := authedRequest(t, tokens, http.MethodGet, "/api/rentals/10", "")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("NotFoundMapsTo404", func(t *testing.T) {
		rentalSvc := new(MockRentalService)
		router, tokens := newTestRouter(rentalSvc)
		rentalSvc.On("GetRental", mock.Anything, int32(1), int32(99)).Return(nil, domain.NotFoundf("rental 99 not found"))

		req := authedRequest(t, tokens, http.MethodGet, "/api/rentals/99", "")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("ForbiddenMapsTo403", func(t *testing.T) {
		rentalSvc := new(MockRentalService)
		router, tokens := newTestRouter(rentalSvc)
		rentalSvc.On("GetRental", mock.Anything, int32(1), int32(10)).Return(nil, domain.Forbiddenf("rental 10 does not involve you"))

		req := authedRequest(t, tokens, http.MethodGet, "/api/rentals/10", "")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRentalHandler_CancelAndReturn(t *testing.T) {
	t.Run("Cancel", func(t *testing.T) {
		rentalSvc := new(MockRentalService)
		router, tokens := newTestRouter(rentalSvc)
		rentalSvc.On("CancelRental", mock.Anything, int32(1), int32(10)).Return(nil)

		req := authedRequest(t, tokens, http.MethodDelete, "/api/rentals/10", "")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Return", func(t *testing.T) {
		rentalSvc := new(MockRentalService)
		router, tokens := newTestRouter(rentalSvc)
		returned := "2026-03-02"
		rentalSvc.On("ReturnRental", mock.Anything, int32(1), int32(10)).
			Return(&domain.Rental{ID: 10, Status: domain.RentalStatusCompleted, ActualReturnDate: &returned}, nil)

		req := authedRequest(t, tokens, http.MethodPost, "/api/rentals/10/return", "")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"completed"`)
	})

	t.Run("InvalidOperationMapsTo400", func(t *testing.T) {
		rentalSvc := new(MockRentalService)
		router, tokens := newTestRouter(rentalSvc)
		rentalSvc.On("CancelRental", mock.Anything, int32(1), int32(10)).
			Return(domain.InvalidOperationf("only pending rentals can be cancelled"))

		req := authedRequest(t, tokens, http.MethodDelete, "/api/rentals/10", "")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(new(MockRentalService))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}
