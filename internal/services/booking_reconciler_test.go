package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudstay/rental-service/internal/constants"
	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/models"
	"github.com/cloudstay/rental-service/internal/repositories"
	"github.com/cloudstay/rental-service/internal/utils"
)

/* ------------------------------------------------------------------
   In-memory fakes. Thread safe so the race tests mean something.
------------------------------------------------------------------ */

type fakeBookings struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]*models.Booking
	byIntent map[string]*models.Booking

	// When set, the first Create reports a unique violation and installs
	// raceWinner as the booking for that intent, mimicking a concurrent
	// reconcile winning the insert.
	raceWinner *models.Booking
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{
		byID:     make(map[uuid.UUID]*models.Booking),
		byIntent: make(map[string]*models.Booking),
	}
}

func (f *fakeBookings) Create(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.raceWinner != nil {
		winner := f.raceWinner
		f.raceWinner = nil
		f.byID[winner.ID] = winner
		f.byIntent[*winner.PaymentIntentID] = winner
		return &pgconn.PgError{Code: "23505"}
	}
	if b.PaymentIntentID != nil {
		if _, exists := f.byIntent[*b.PaymentIntentID]; exists {
			return &pgconn.PgError{Code: "23505"}
		}
		f.byIntent[*b.PaymentIntentID] = b
	}
	f.byID[b.ID] = b
	return nil
}

func (f *fakeBookings) GetByID(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id], nil
}

func (f *fakeBookings) GetByPaymentIntentID(_ context.Context, intentID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byIntent[intentID], nil
}

func (f *fakeBookings) ListAll(context.Context) ([]*models.Booking, error) { return nil, nil }
func (f *fakeBookings) ListByUserID(context.Context, uuid.UUID) ([]*models.Booking, error) {
	return nil, nil
}
func (f *fakeBookings) ListByPropertyID(context.Context, uuid.UUID) ([]*models.Booking, error) {
	return nil, nil
}

func (f *fakeBookings) ListActiveWithBedrooms(context.Context) ([]*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Booking
	for _, b := range f.byID {
		if b.Status != models.BookingStatusCancelled && b.BedroomID != nil {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byID)), nil
}

func (f *fakeBookings) UpdateStatus(_ context.Context, id uuid.UUID, status models.BookingStatusType) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.byID[id]
	if b == nil {
		return nil, nil
	}
	b.Status = status
	return b, nil
}

func (f *fakeBookings) UpdatePaymentStatus(_ context.Context, id uuid.UUID, status models.PaymentStatusType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.byID[id]
	if b == nil {
		return pgx.ErrNoRows
	}
	b.PaymentStatus = status
	return nil
}

func (f *fakeBookings) UpdateIfVersion(context.Context, *models.Booking, int64) (pgconn.CommandTag, error) {
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (f *fakeBookings) UpdateWithRetry(context.Context, uuid.UUID, func(*models.Booking) error) error {
	return nil
}

func (f *fakeBookings) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

type fakeBedrooms struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*models.Bedroom
}

func newFakeBedrooms() *fakeBedrooms {
	return &fakeBedrooms{byID: make(map[uuid.UUID]*models.Bedroom)}
}

func (f *fakeBedrooms) Create(_ context.Context, b *models.Bedroom) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[b.ID] = b
	return nil
}

func (f *fakeBedrooms) CreateMany(ctx context.Context, list []models.Bedroom) error {
	for i := range list {
		if err := f.Create(ctx, &list[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeBedrooms) GetByID(_ context.Context, id uuid.UUID) (*models.Bedroom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.byID[id]
	if b == nil {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBedrooms) ListByPropertyID(_ context.Context, propID uuid.UUID) ([]*models.Bedroom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Bedroom
	for _, b := range f.byID {
		if b.PropertyID == propID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBedrooms) ListBooked(context.Context) ([]*models.Bedroom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Bedroom
	for _, b := range f.byID {
		if b.Status == models.BedroomStatusBooked {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBedrooms) MarkBooked(_ context.Context, propID, bedroomID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.byID[bedroomID]
	if b == nil || b.PropertyID != propID {
		return pgx.ErrNoRows
	}
	if b.Status != models.BedroomStatusAvailable {
		return utils.ErrBedroomUnavailable
	}
	b.Status = models.BedroomStatusBooked
	return nil
}

func (f *fakeBedrooms) MarkAvailable(_ context.Context, propID, bedroomID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.byID[bedroomID]
	if b != nil && b.PropertyID == propID {
		b.Status = models.BedroomStatusAvailable
	}
	return nil
}

func (f *fakeBedrooms) DeleteByPropertyID(_ context.Context, propID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, b := range f.byID {
		if b.PropertyID == propID {
			delete(f.byID, id)
		}
	}
	return nil
}

type fakeProperties struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*models.Property
}

func newFakeProperties() *fakeProperties {
	return &fakeProperties{byID: make(map[uuid.UUID]*models.Property)}
}

func (f *fakeProperties) Create(_ context.Context, p *models.Property) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProperties) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id], nil
}

func (f *fakeProperties) Search(context.Context, repositories.PropertyFilter) ([]*models.Property, error) {
	return nil, nil
}
func (f *fakeProperties) Count(context.Context) (int64, error) { return 0, nil }
func (f *fakeProperties) Update(context.Context, *models.Property) error {
	return nil
}
func (f *fakeProperties) UpdateIfVersion(context.Context, *models.Property, int64) (pgconn.CommandTag, error) {
	return pgconn.CommandTag("UPDATE 1"), nil
}
func (f *fakeProperties) UpdateWithRetry(context.Context, uuid.UUID, func(*models.Property) error) error {
	return nil
}
func (f *fakeProperties) Delete(context.Context, uuid.UUID) error { return nil }

type fakeRevenues struct {
	mu      sync.Mutex
	entries []*models.Revenue
}

func (f *fakeRevenues) Create(_ context.Context, rev *models.Revenue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, rev)
	return nil
}

func (f *fakeRevenues) ListAll(context.Context) ([]*models.Revenue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries, nil
}

func (f *fakeRevenues) Total(context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total float64
	for _, e := range f.entries {
		total += e.Amount
	}
	return total, nil
}

func (f *fakeRevenues) MonthlyTotals(context.Context) ([]*models.MonthlyRevenue, error) {
	return nil, nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	confirmed int
	cancelled int
}

func (f *fakeNotifier) BookingConfirmed(context.Context, *models.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmed++
}

func (f *fakeNotifier) BookingCancelled(context.Context, *models.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled++
}

func (f *fakeNotifier) EnquiryReceived(context.Context, *models.Enquiry)      {}
func (f *fakeNotifier) EnquiryStatusChanged(context.Context, *models.Enquiry) {}

func (f *fakeNotifier) confirmedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirmed
}

type fakeGateway struct {
	mu      sync.Mutex
	intents map[string]*PaymentIntent
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{intents: make(map[string]*PaymentIntent)}
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount float64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := fmt.Sprintf("pi_fake_%d", len(g.intents)+1)
	in := &PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret",
		Status:       "requires_payment_method",
		Amount:       ToMinorUnits(amount, currency),
		Currency:     strings.ToLower(currency),
		Metadata:     metadata,
	}
	g.intents[id] = in
	return in, nil
}

func (g *fakeGateway) RetrieveIntent(_ context.Context, id string) (*PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	in, ok := g.intents[id]
	if !ok {
		return nil, utils.ErrIntentNotFound
	}
	return in, nil
}

func (g *fakeGateway) VerifyWebhook([]byte, string) (*WebhookEvent, error) {
	return nil, errors.New("not used")
}

// succeededIntent registers an already-paid intent carrying the form.
func (g *fakeGateway) succeededIntent(t *testing.T, form dtos.BookingForm) *PaymentIntent {
	t.Helper()
	payload, err := EncodeBookingPayload(form)
	require.NoError(t, err)

	g.mu.Lock()
	defer g.mu.Unlock()
	id := fmt.Sprintf("pi_fake_%d", len(g.intents)+1)
	in := &PaymentIntent{
		ID:            id,
		Status:        IntentStatusSucceeded,
		Amount:        ToMinorUnits(form.Price, form.Currency),
		Currency:      strings.ToLower(form.Currency),
		PaymentMethod: "pm_card_visa",
		Metadata:      map[string]string{constants.MetadataBookingDetailsKey: payload},
	}
	g.intents[id] = in
	return in
}

/* ------------------------------------------------------------------
   Fixture
------------------------------------------------------------------ */

type reconcilerFixture struct {
	reconciler *BookingReconciler
	gateway    *fakeGateway
	bookings   *fakeBookings
	bedrooms   *fakeBedrooms
	properties *fakeProperties
	revenues   *fakeRevenues
	notifier   *fakeNotifier

	property *models.Property
	bedroom  *models.Bedroom
}

func newReconcilerFixture(t *testing.T) *reconcilerFixture {
	t.Helper()
	f := &reconcilerFixture{
		gateway:    newFakeGateway(),
		bookings:   newFakeBookings(),
		bedrooms:   newFakeBedrooms(),
		properties: newFakeProperties(),
		revenues:   &fakeRevenues{},
		notifier:   &fakeNotifier{},
	}
	f.reconciler = NewBookingReconciler(f.gateway, f.bookings, f.bedrooms, f.properties, f.revenues, f.notifier)

	f.property = &models.Property{
		ID:       uuid.New(),
		Title:    "Riverside Studios",
		Price:    750,
		Currency: "GBP",
		City:     "Manchester",
	}
	require.NoError(t, f.properties.Create(context.Background(), f.property))

	f.bedroom = &models.Bedroom{
		ID:         uuid.New(),
		PropertyID: f.property.ID,
		Name:       "Room A",
		Rent:       750,
		Status:     models.BedroomStatusAvailable,
	}
	require.NoError(t, f.bedrooms.Create(context.Background(), f.bedroom))
	return f
}

func (f *reconcilerFixture) bookingForm() dtos.BookingForm {
	return dtos.BookingForm{
		UserID:     uuid.New().String(),
		Name:       "Asha Patel",
		Email:      "asha@example.com",
		Phone:      "+447700900123",
		PropertyID: f.property.ID.String(),
		BedroomID:  f.bedroom.ID.String(),
		MoveInDate: "2026-09-01",
		Price:      750,
		Currency:   "GBP",
	}
}

/* ------------------------------------------------------------------
   Tests
------------------------------------------------------------------ */

func TestReconcileCreatesExactlyOneBooking(t *testing.T) {
	f := newReconcilerFixture(t)
	ctx := context.Background()
	intent := f.gateway.succeededIntent(t, f.bookingForm())

	booking, created, err := f.reconciler.Reconcile(ctx, intent.ID)
	require.NoError(t, err)
	require.NotNil(t, booking)
	assert.True(t, created)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, models.PaymentStatusCompleted, booking.PaymentStatus)
	assert.Equal(t, 750.0, booking.PaymentAmount)

	room, err := f.bedrooms.GetByID(ctx, f.bedroom.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BedroomStatusBooked, room.Status)

	revs, err := f.revenues.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, revs, 1)
	assert.Equal(t, booking.ID, revs[0].BookingID)
	assert.Equal(t, 750.0, revs[0].Amount)
	assert.Equal(t, 1, f.notifier.confirmedCount())

	// A repeat confirmation is a read, not a second booking.
	again, created, err := f.reconciler.Reconcile(ctx, intent.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, booking.ID, again.ID)
	assert.Equal(t, 1, f.notifier.confirmedCount())

	revs, _ = f.revenues.ListAll(ctx)
	assert.Len(t, revs, 1)
}

func TestReconcileConcurrentConfirmations(t *testing.T) {
	f := newReconcilerFixture(t)
	ctx := context.Background()
	intent := f.gateway.succeededIntent(t, f.bookingForm())

	const callers = 10
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		createdCount int
		bookingIDs   = make(map[uuid.UUID]struct{})
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, created, err := f.reconciler.Reconcile(ctx, intent.ID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// A caller can transiently lose the bedroom to a sibling that
				// has claimed it but not yet inserted. Nothing else is
				// acceptable.
				assert.ErrorIs(t, err, utils.ErrBedroomUnavailable)
				return
			}
			if created {
				createdCount++
			}
			bookingIDs[b.ID] = struct{}{}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, createdCount, "exactly one caller creates the booking")
	assert.Len(t, bookingIDs, 1, "every successful caller sees the same booking")
	assert.Equal(t, 1, f.notifier.confirmedCount())

	n, err := f.bookings.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	room, err := f.bedrooms.GetByID(ctx, f.bedroom.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BedroomStatusBooked, room.Status)
}

func TestReconcileRejectsUnpaidIntent(t *testing.T) {
	f := newReconcilerFixture(t)
	ctx := context.Background()

	intent, err := f.gateway.CreateIntent(ctx, 750, "GBP", map[string]string{})
	require.NoError(t, err)

	_, _, err = f.reconciler.Reconcile(ctx, intent.ID)
	assert.ErrorIs(t, err, utils.ErrPaymentIncomplete)
	assert.Equal(t, 0, f.notifier.confirmedCount())
}

func TestReconcileUnknownIntent(t *testing.T) {
	f := newReconcilerFixture(t)

	_, _, err := f.reconciler.Reconcile(context.Background(), "pi_missing")
	assert.ErrorIs(t, err, utils.ErrIntentNotFound)
}

func TestReconcileCorruptMetadata(t *testing.T) {
	f := newReconcilerFixture(t)
	ctx := context.Background()

	// The payment succeeded, so unusable metadata is an internal failure,
	// not a bad request.
	cases := map[string]map[string]string{
		"missing":     {},
		"not json":    {constants.MetadataBookingDetailsKey: "{not-json"},
		"bad version": {constants.MetadataBookingDetailsKey: `{"version":99,"booking":{}}`},
	}
	for name, metadata := range cases {
		t.Run(name, func(t *testing.T) {
			intent := f.gateway.succeededIntent(t, f.bookingForm())
			f.gateway.intents[intent.ID].Metadata = metadata

			_, _, err := f.reconciler.Reconcile(ctx, intent.ID)
			assert.ErrorIs(t, err, utils.ErrPayloadCorrupt)
			assert.NotErrorIs(t, err, utils.ErrInvalidPayload)
		})
	}

	n, _ := f.bookings.Count(ctx)
	assert.Zero(t, n)
}

func TestReconcileBedroomTakenByOtherRenter(t *testing.T) {
	f := newReconcilerFixture(t)
	ctx := context.Background()

	// Someone else's confirmed booking already holds the room.
	require.NoError(t, f.bedrooms.MarkBooked(ctx, f.property.ID, f.bedroom.ID))

	intent := f.gateway.succeededIntent(t, f.bookingForm())
	_, _, err := f.reconciler.Reconcile(ctx, intent.ID)
	assert.ErrorIs(t, err, utils.ErrBedroomUnavailable)

	n, _ := f.bookings.Count(ctx)
	assert.Zero(t, n)
	assert.Equal(t, 0, f.notifier.confirmedCount())
}

func TestReconcileLosesInsertRaceReturnsWinner(t *testing.T) {
	f := newReconcilerFixture(t)
	ctx := context.Background()

	intent := f.gateway.succeededIntent(t, f.bookingForm())

	winner := &models.Booking{
		ID:              uuid.New(),
		PropertyID:      f.property.ID,
		Status:          models.BookingStatusConfirmed,
		PaymentStatus:   models.PaymentStatusCompleted,
		PaymentIntentID: &intent.ID,
	}
	f.bookings.raceWinner = winner

	got, created, err := f.reconciler.Reconcile(ctx, intent.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.ID, got.ID)

	// The loser must hand the claimed bedroom back.
	room, err := f.bedrooms.GetByID(ctx, f.bedroom.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BedroomStatusAvailable, room.Status)
}

func TestCreateIntentEmbedsBookingPayload(t *testing.T) {
	f := newReconcilerFixture(t)
	ctx := context.Background()
	form := f.bookingForm()

	resp, err := f.reconciler.CreateIntent(ctx, &dtos.CreatePaymentIntentRequest{
		Amount:   750,
		Currency: "GBP",
		Booking:  form,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.PaymentIntentID)
	assert.NotEmpty(t, resp.ClientSecret)

	stored, err := f.gateway.RetrieveIntent(ctx, resp.PaymentIntentID)
	require.NoError(t, err)
	decoded, err := DecodeBookingPayload(stored.Metadata[constants.MetadataBookingDetailsKey])
	require.NoError(t, err)
	assert.Equal(t, form, decoded.Booking)
}

func TestCreateIntentUnknownProperty(t *testing.T) {
	f := newReconcilerFixture(t)
	form := f.bookingForm()
	form.PropertyID = uuid.New().String()

	_, err := f.reconciler.CreateIntent(context.Background(), &dtos.CreatePaymentIntentRequest{
		Amount:   750,
		Currency: "GBP",
		Booking:  form,
	})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestCreateIntentBedroomAlreadyBooked(t *testing.T) {
	f := newReconcilerFixture(t)
	ctx := context.Background()
	require.NoError(t, f.bedrooms.MarkBooked(ctx, f.property.ID, f.bedroom.ID))

	_, err := f.reconciler.CreateIntent(ctx, &dtos.CreatePaymentIntentRequest{
		Amount:   750,
		Currency: "GBP",
		Booking:  f.bookingForm(),
	})
	assert.ErrorIs(t, err, utils.ErrBedroomUnavailable)
}

func TestAuditInventoryHealsDrift(t *testing.T) {
	f := newReconcilerFixture(t)
	ctx := context.Background()

	intent := f.gateway.succeededIntent(t, f.bookingForm())
	_, created, err := f.reconciler.Reconcile(ctx, intent.ID)
	require.NoError(t, err)
	require.True(t, created)

	// Simulate drift: the room flipped back while its booking stands.
	require.NoError(t, f.bedrooms.MarkAvailable(ctx, f.property.ID, f.bedroom.ID))

	require.NoError(t, f.reconciler.AuditInventory(ctx))

	room, err := f.bedrooms.GetByID(ctx, f.bedroom.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BedroomStatusBooked, room.Status)
}

func TestAuditInventoryReleasesStrandedClaim(t *testing.T) {
	f := newReconcilerFixture(t)
	ctx := context.Background()

	// A crash after the bedroom claim but before the booking insert leaves
	// the room booked with nothing holding it.
	intent := f.gateway.succeededIntent(t, f.bookingForm())
	require.NoError(t, f.bedrooms.MarkBooked(ctx, f.property.ID, f.bedroom.ID))

	// While stranded, the paid intent cannot reconcile.
	_, _, err := f.reconciler.Reconcile(ctx, intent.ID)
	require.ErrorIs(t, err, utils.ErrBedroomUnavailable)

	require.NoError(t, f.reconciler.AuditInventory(ctx))

	room, err := f.bedrooms.GetByID(ctx, f.bedroom.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BedroomStatusAvailable, room.Status)

	// The next replay of the confirmation now succeeds.
	booking, created, err := f.reconciler.Reconcile(ctx, intent.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
}

func TestAuditInventoryKeepsActiveHolds(t *testing.T) {
	f := newReconcilerFixture(t)
	ctx := context.Background()

	// A pending hold (enquiry approval) legitimately keeps its room.
	hold := &models.Booking{
		ID:         uuid.New(),
		PropertyID: f.property.ID,
		BedroomID:  &f.bedroom.ID,
		Status:     models.BookingStatusPending,
	}
	require.NoError(t, f.bookings.Create(ctx, hold))
	require.NoError(t, f.bedrooms.MarkBooked(ctx, f.property.ID, f.bedroom.ID))

	require.NoError(t, f.reconciler.AuditInventory(ctx))

	room, err := f.bedrooms.GetByID(ctx, f.bedroom.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BedroomStatusBooked, room.Status)
}

func TestHandleWebhookEventReconciles(t *testing.T) {
	f := newReconcilerFixture(t)
	ctx := context.Background()
	intent := f.gateway.succeededIntent(t, f.bookingForm())

	f.reconciler.HandleWebhookEvent(ctx, &WebhookEvent{
		ID:     "evt_1",
		Type:   EventPaymentIntentSucceeded,
		Intent: intent,
	})

	got, err := f.bookings.GetByPaymentIntentID(ctx, intent.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.BookingStatusConfirmed, got.Status)

	// Irrelevant event types are ignored without side effects.
	f.reconciler.HandleWebhookEvent(ctx, &WebhookEvent{ID: "evt_2", Type: "charge.refunded"})
	n, _ := f.bookings.Count(ctx)
	assert.Equal(t, int64(1), n)
}
