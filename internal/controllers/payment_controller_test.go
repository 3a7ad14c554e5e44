package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudstay/rental-service/internal/constants"
	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/models"
	"github.com/cloudstay/rental-service/internal/repositories"
	"github.com/cloudstay/rental-service/internal/services"
	"github.com/cloudstay/rental-service/internal/utils"
)

/* ------------------------------------------------------------------
   Stubs. Only the paths the payment endpoints exercise do real work.
------------------------------------------------------------------ */

type stubBookings struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]*models.Booking
	byIntent map[string]*models.Booking
}

func newStubBookings() *stubBookings {
	return &stubBookings{
		byID:     make(map[uuid.UUID]*models.Booking),
		byIntent: make(map[string]*models.Booking),
	}
}

func (s *stubBookings) Create(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.PaymentIntentID != nil {
		if _, exists := s.byIntent[*b.PaymentIntentID]; exists {
			return &pgconn.PgError{Code: "23505"}
		}
		s.byIntent[*b.PaymentIntentID] = b
	}
	s.byID[b.ID] = b
	return nil
}

func (s *stubBookings) GetByID(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byID[id], nil
}

func (s *stubBookings) GetByPaymentIntentID(_ context.Context, intentID string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byIntent[intentID], nil
}

func (s *stubBookings) ListAll(context.Context) ([]*models.Booking, error) { return nil, nil }
func (s *stubBookings) ListByUserID(context.Context, uuid.UUID) ([]*models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) ListByPropertyID(context.Context, uuid.UUID) ([]*models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) ListActiveWithBedrooms(context.Context) ([]*models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) Count(context.Context) (int64, error) { return 0, nil }
func (s *stubBookings) UpdateStatus(context.Context, uuid.UUID, models.BookingStatusType) (*models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) UpdatePaymentStatus(context.Context, uuid.UUID, models.PaymentStatusType) error {
	return pgx.ErrNoRows
}
func (s *stubBookings) UpdateIfVersion(context.Context, *models.Booking, int64) (pgconn.CommandTag, error) {
	return pgconn.CommandTag("UPDATE 1"), nil
}
func (s *stubBookings) UpdateWithRetry(context.Context, uuid.UUID, func(*models.Booking) error) error {
	return nil
}
func (s *stubBookings) Delete(context.Context, uuid.UUID) error { return nil }

var _ repositories.BookingRepository = (*stubBookings)(nil)

type stubRevenues struct{}

func (stubRevenues) Create(context.Context, *models.Revenue) error        { return nil }
func (stubRevenues) ListAll(context.Context) ([]*models.Revenue, error)   { return nil, nil }
func (stubRevenues) Total(context.Context) (float64, error)               { return 0, nil }
func (stubRevenues) MonthlyTotals(context.Context) ([]*models.MonthlyRevenue, error) {
	return nil, nil
}

type stubNotifier struct{}

func (stubNotifier) BookingConfirmed(context.Context, *models.Booking)     {}
func (stubNotifier) BookingCancelled(context.Context, *models.Booking)     {}
func (stubNotifier) EnquiryReceived(context.Context, *models.Enquiry)      {}
func (stubNotifier) EnquiryStatusChanged(context.Context, *models.Enquiry) {}

type stubGateway struct {
	mu      sync.Mutex
	intents map[string]*services.PaymentIntent

	verifyEvent *services.WebhookEvent
	verifyErr   error
}

func newStubGateway() *stubGateway {
	return &stubGateway{intents: make(map[string]*services.PaymentIntent)}
}

func (g *stubGateway) CreateIntent(_ context.Context, amount float64, currency string, metadata map[string]string) (*services.PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := fmt.Sprintf("pi_stub_%d", len(g.intents)+1)
	in := &services.PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret",
		Status:       "requires_payment_method",
		Amount:       services.ToMinorUnits(amount, currency),
		Currency:     strings.ToLower(currency),
		Metadata:     metadata,
	}
	g.intents[id] = in
	return in, nil
}

func (g *stubGateway) RetrieveIntent(_ context.Context, id string) (*services.PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	in, ok := g.intents[id]
	if !ok {
		return nil, utils.ErrIntentNotFound
	}
	return in, nil
}

func (g *stubGateway) VerifyWebhook([]byte, string) (*services.WebhookEvent, error) {
	return g.verifyEvent, g.verifyErr
}

/* ------------------------------------------------------------------
   Fixture
------------------------------------------------------------------ */

type paymentFixture struct {
	gateway    *stubGateway
	bookings   *stubBookings
	controller *PaymentController
	webhooks   *StripeWebhookController
}

func newPaymentFixture() *paymentFixture {
	gateway := newStubGateway()
	bookings := newStubBookings()
	reconciler := services.NewBookingReconciler(gateway, bookings, nil, nil, stubRevenues{}, stubNotifier{})
	bookingService := services.NewBookingService(bookings, nil, nil, stubNotifier{})
	return &paymentFixture{
		gateway:    gateway,
		bookings:   bookings,
		controller: NewPaymentController(reconciler, bookingService),
		webhooks:   NewStripeWebhookController(gateway, reconciler),
	}
}

// succeededIntent registers a paid intent for a bedroom-less booking so the
// reconcile path stays inside the stubbed repositories.
func (f *paymentFixture) succeededIntent(t *testing.T) *services.PaymentIntent {
	t.Helper()
	payload, err := services.EncodeBookingPayload(dtos.BookingForm{
		UserID:     uuid.New().String(),
		Name:       "Asha Patel",
		Email:      "asha@example.com",
		Phone:      "+447700900123",
		PropertyID: uuid.New().String(),
		Price:      750,
		Currency:   "GBP",
	})
	require.NoError(t, err)

	f.gateway.mu.Lock()
	defer f.gateway.mu.Unlock()
	id := fmt.Sprintf("pi_stub_%d", len(f.gateway.intents)+1)
	in := &services.PaymentIntent{
		ID:       id,
		Status:   services.IntentStatusSucceeded,
		Amount:   75000,
		Currency: "gbp",
		Metadata: map[string]string{constants.MetadataBookingDetailsKey: payload},
	}
	f.gateway.intents[id] = in
	return in
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

/* ------------------------------------------------------------------
   Tests
------------------------------------------------------------------ */

func TestConfirmPaymentCreatesThenReplays(t *testing.T) {
	f := newPaymentFixture()
	intent := f.succeededIntent(t)
	body := dtos.ConfirmPaymentRequest{PaymentIntentID: intent.ID}

	rec := postJSON(t, f.controller.ConfirmPaymentHandler, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var first dtos.ConfirmPaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.False(t, first.AlreadyProcessed)
	assert.Equal(t, string(models.BookingStatusConfirmed), first.Status)
	assert.Equal(t, string(models.PaymentStatusCompleted), first.PaymentStatus)

	// Same intent again: the original booking comes back, nothing new.
	rec = postJSON(t, f.controller.ConfirmPaymentHandler, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var second dtos.ConfirmPaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.True(t, second.AlreadyProcessed)
	assert.Equal(t, first.BookingID, second.BookingID)
}

func TestConfirmPaymentUnpaidIntent(t *testing.T) {
	f := newPaymentFixture()
	intent, err := f.gateway.CreateIntent(context.Background(), 750, "GBP", map[string]string{})
	require.NoError(t, err)

	rec := postJSON(t, f.controller.ConfirmPaymentHandler, dtos.ConfirmPaymentRequest{PaymentIntentID: intent.ID})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, utils.ErrCodePaymentIncomplete, decodeError(t, rec).Code)
}

func TestConfirmPaymentUnknownIntent(t *testing.T) {
	f := newPaymentFixture()

	rec := postJSON(t, f.controller.ConfirmPaymentHandler, dtos.ConfirmPaymentRequest{PaymentIntentID: "pi_missing"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, utils.ErrCodeNotFound, decodeError(t, rec).Code)
}

func TestConfirmPaymentCorruptMetadata(t *testing.T) {
	f := newPaymentFixture()
	intent := f.succeededIntent(t)
	f.gateway.intents[intent.ID].Metadata = map[string]string{
		constants.MetadataBookingDetailsKey: "{not-json",
	}

	// The charge went through, so the client gets a 500, not a 400.
	rec := postJSON(t, f.controller.ConfirmPaymentHandler, dtos.ConfirmPaymentRequest{PaymentIntentID: intent.ID})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, utils.ErrCodeInternal, decodeError(t, rec).Code)
}

func TestConfirmPaymentValidation(t *testing.T) {
	f := newPaymentFixture()

	rec := postJSON(t, f.controller.ConfirmPaymentHandler, map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, utils.ErrCodeValidation, decodeError(t, rec).Code)
}

func TestCreatePaymentIntentValidation(t *testing.T) {
	f := newPaymentFixture()

	// Negative amount and a half-empty booking form.
	rec := postJSON(t, f.controller.CreatePaymentIntentHandler, dtos.CreatePaymentIntentRequest{
		Amount:   -5,
		Currency: "GBP",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, utils.ErrCodeValidation, decodeError(t, rec).Code)
}

func TestPaymentStatusHandler(t *testing.T) {
	f := newPaymentFixture()
	intent := f.succeededIntent(t)
	rec := postJSON(t, f.controller.ConfirmPaymentHandler, dtos.ConfirmPaymentRequest{PaymentIntentID: intent.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created dtos.ConfirmPaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, "/api/payment/status/"+created.BookingID, nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": created.BookingID})
	statusRec := httptest.NewRecorder()
	f.controller.PaymentStatusHandler(statusRec, req)
	require.Equal(t, http.StatusOK, statusRec.Code, statusRec.Body.String())

	var status dtos.PaymentStatusResponse
	require.NoError(t, json.Unmarshal(statusRec.Body.Bytes(), &status))
	assert.Equal(t, created.BookingID, status.BookingID)
	assert.Equal(t, intent.ID, status.PaymentIntentID)
	assert.Equal(t, string(models.PaymentStatusCompleted), status.PaymentStatus)
	assert.Equal(t, 750.0, status.PaymentAmount)
	assert.Equal(t, "GBP", strings.ToUpper(status.Currency))
	assert.NotNil(t, status.PaymentDate)
}

func TestPaymentStatusUnknownBooking(t *testing.T) {
	f := newPaymentFixture()
	id := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, "/api/payment/status/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": id})
	rec := httptest.NewRecorder()
	f.controller.PaymentStatusHandler(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebhookHandlerMissingSignature(t *testing.T) {
	f := newPaymentFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	f.webhooks.WebhookHandler(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, utils.ErrCodeInvalidPayload, decodeError(t, rec).Code)
}

func TestWebhookHandlerBadSignature(t *testing.T) {
	f := newPaymentFixture()
	f.gateway.verifyErr = fmt.Errorf("%w: bad signature", utils.ErrSignatureInvalid)

	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", strings.NewReader("{}"))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	rec := httptest.NewRecorder()
	f.webhooks.WebhookHandler(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, utils.ErrCodeSignatureInvalid, decodeError(t, rec).Code)
}

func TestWebhookHandlerReconcilesSucceededIntent(t *testing.T) {
	f := newPaymentFixture()
	intent := f.succeededIntent(t)
	f.gateway.verifyEvent = &services.WebhookEvent{
		ID:     "evt_1",
		Type:   services.EventPaymentIntentSucceeded,
		Intent: intent,
	}

	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", strings.NewReader("{}"))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	rec := httptest.NewRecorder()
	f.webhooks.WebhookHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	b, err := f.bookings.GetByPaymentIntentID(context.Background(), intent.ID)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
}

func TestRespondServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", utils.ErrNotFound, http.StatusNotFound, utils.ErrCodeNotFound},
		{"intent not found", utils.ErrIntentNotFound, http.StatusNotFound, utils.ErrCodeNotFound},
		{"invalid payload", utils.ErrInvalidPayload, http.StatusBadRequest, utils.ErrCodeInvalidPayload},
		{"payload corrupt", utils.ErrPayloadCorrupt, http.StatusInternalServerError, utils.ErrCodeInternal},
		{"payment incomplete", utils.ErrPaymentIncomplete, http.StatusBadRequest, utils.ErrCodePaymentIncomplete},
		{"bedroom unavailable", utils.ErrBedroomUnavailable, http.StatusConflict, utils.ErrCodeConflict},
		{"duplicate favorite", utils.ErrDuplicateFavorite, http.StatusConflict, utils.ErrCodeConflict},
		{"row version conflict", utils.ErrRowVersionConflict, http.StatusConflict, utils.ErrCodeRowVersionConflict},
		{"external failure", utils.ErrExternalServiceFailure, http.StatusBadGateway, utils.ErrCodeExternalServiceFailure},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, utils.ErrCodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondServiceError(rec, fmt.Errorf("wrapped: %w", tc.err), "test message")
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantCode, decodeError(t, rec).Code)
		})
	}
}
