package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	bookingRepo "vendora/database/repository/booking"
	serviceRepo "vendora/database/repository/service"
	userRepo "vendora/database/repository/user"
	"vendora/models"
	"vendora/services/payment"
)

// fakeBookingRepo is an in-memory BookingRequestRepository. Error fields let
// tests inject storage faults on specific lookups.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.BookingRequest

	getByPaymentIntentErr   error
	updateErr               error
	getByPaymentIntentCalls int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.BookingRequest)}
}

func cloneBooking(b *models.BookingRequest) *models.BookingRequest {
	c := *b
	return &c
}

func (r *fakeBookingRepo) Create(booking *models.BookingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.BookingRequest, error) {
	return r.GetByIDLean(id)
}

func (r *fakeBookingRepo) GetByIDLean(id string) (*models.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		return cloneBooking(b), nil
	}
	return nil, bookingRepo.ErrNotFound
}

func (r *fakeBookingRepo) GetBySetupIntentID(setupIntentID string) (*models.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.StripeSetupIntentID == setupIntentID {
			return cloneBooking(b), nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (r *fakeBookingRepo) GetByPaymentIntentID(paymentIntentID string) (*models.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getByPaymentIntentCalls++
	if r.getByPaymentIntentErr != nil {
		return nil, r.getByPaymentIntentErr
	}
	for _, b := range r.bookings {
		if b.StripePaymentIntentID == paymentIntentID {
			return cloneBooking(b), nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (r *fakeBookingRepo) ListByClientID(clientID, status string) ([]models.BookingRequest, error) {
	return r.list(func(b *models.BookingRequest) bool {
		return b.ClientID == clientID && (status == "" || b.Status == status)
	})
}

func (r *fakeBookingRepo) ListByVendorID(vendorID, status string) ([]models.BookingRequest, error) {
	return r.list(func(b *models.BookingRequest) bool {
		return b.VendorID == vendorID && (status == "" || b.Status == status)
	})
}

func (r *fakeBookingRepo) ListAll(filter models.BookingRequestListFilter, limit, skip int64) ([]models.BookingRequest, error) {
	return r.list(func(b *models.BookingRequest) bool {
		return matchesFilter(b, filter)
	})
}

func (r *fakeBookingRepo) Count(filter models.BookingRequestListFilter) (int64, error) {
	out, _ := r.list(func(b *models.BookingRequest) bool {
		return matchesFilter(b, filter)
	})
	return int64(len(out)), nil
}

func matchesFilter(b *models.BookingRequest, filter models.BookingRequestListFilter) bool {
	if filter.ServiceID != "" && b.ServiceID != filter.ServiceID {
		return false
	}
	if filter.VendorID != "" && b.VendorID != filter.VendorID {
		return false
	}
	if filter.ClientID != "" && b.ClientID != filter.ClientID {
		return false
	}
	if filter.Status != "" && b.Status != filter.Status {
		return false
	}
	return true
}

func (r *fakeBookingRepo) list(match func(*models.BookingRequest) bool) ([]models.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.BookingRequest
	for _, b := range r.bookings {
		if match(b) {
			out = append(out, *cloneBooking(b))
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateByID(id string, patch models.BookingRequestPatch) (*models.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	if patch.Status != nil {
		b.Status = *patch.Status
	}
	if patch.StripePaymentMethodID != nil {
		b.StripePaymentMethodID = *patch.StripePaymentMethodID
	}
	if patch.StripePaymentIntentID != nil {
		b.StripePaymentIntentID = *patch.StripePaymentIntentID
	}
	if patch.RejectionReason != nil {
		b.RejectionReason = *patch.RejectionReason
	}
	b.UpdatedAt = time.Now().UTC()
	return cloneBooking(b), nil
}

func (r *fakeBookingRepo) HasConflict(serviceID string, start, end time.Time, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ServiceID != serviceID || b.ID == excludeID || !b.IsReserving() {
			continue
		}
		if b.BookingStart.Before(end) && b.BookingEnd.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) GetPaymentPendingOverlap(clientID, serviceID string, start, end time.Time) (*models.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ClientID != clientID || b.ServiceID != serviceID || b.Status != models.BookingStatusPaymentPending {
			continue
		}
		if b.BookingStart.Before(end) && b.BookingEnd.After(start) {
			return cloneBooking(b), nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		c := *u
		r.users[u.ID] = &c
	}
	return r
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, userRepo.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (r *fakeUserRepo) SetStripeCustomerID(id, stripeCustomerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return userRepo.ErrNotFound
	}
	u.StripeCustomerID = stripeCustomerID
	return nil
}

type fakeServiceRepo struct {
	services map[string]*models.Service
}

func newFakeServiceRepo(services ...*models.Service) *fakeServiceRepo {
	r := &fakeServiceRepo{services: make(map[string]*models.Service)}
	for _, s := range services {
		c := *s
		r.services[s.ID] = &c
	}
	return r
}

func (r *fakeServiceRepo) GetByID(id string) (*models.Service, error) {
	if s, ok := r.services[id]; ok {
		c := *s
		return &c, nil
	}
	return nil, serviceRepo.ErrNotFound
}

// fakeGateway is an in-memory payment.Gateway. Intent statuses and error
// outcomes are configurable per test.
type fakeGateway struct {
	mu  sync.Mutex
	seq int

	customers      map[string]*payment.CustomerRef
	setupIntents   map[string]*payment.SetupIntentRef
	paymentIntents map[string]*payment.PaymentIntentRef

	retrieveCustomerErr    error
	createPaymentIntentErr error
	paymentIntentStatus    string

	createPaymentIntentCalls int
	createCustomerCalls      int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		customers:           make(map[string]*payment.CustomerRef),
		setupIntents:        make(map[string]*payment.SetupIntentRef),
		paymentIntents:      make(map[string]*payment.PaymentIntentRef),
		paymentIntentStatus: payment.IntentStatusSucceeded,
	}
}

func (g *fakeGateway) CreateOrRetrieveCustomer(ctx context.Context, email, name string, metadata map[string]string) (*payment.CustomerRef, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.customers {
		if c.Email == email {
			return c, nil
		}
	}
	g.createCustomerCalls++
	g.seq++
	c := &payment.CustomerRef{ID: fmt.Sprintf("cus_%d", g.seq), Email: email}
	g.customers[c.ID] = c
	return c, nil
}

func (g *fakeGateway) RetrieveCustomer(ctx context.Context, customerID string) (*payment.CustomerRef, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.retrieveCustomerErr != nil {
		return nil, g.retrieveCustomerErr
	}
	if c, ok := g.customers[customerID]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("no such customer: %s", customerID)
}

func (g *fakeGateway) CreateSetupIntent(ctx context.Context, customerID string, metadata map[string]string) (*payment.SetupIntentRef, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	si := &payment.SetupIntentRef{
		ID:           fmt.Sprintf("seti_%d", g.seq),
		ClientSecret: fmt.Sprintf("seti_%d_secret", g.seq),
		Status:       payment.IntentStatusRequiresPaymentMethod,
	}
	g.setupIntents[si.ID] = si
	return si, nil
}

func (g *fakeGateway) RetrieveSetupIntent(ctx context.Context, setupIntentID string) (*payment.SetupIntentRef, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if si, ok := g.setupIntents[setupIntentID]; ok {
		return si, nil
	}
	return nil, fmt.Errorf("no such setup intent: %s", setupIntentID)
}

// completeSetupIntent simulates the cardholder finishing card entry.
func (g *fakeGateway) completeSetupIntent(setupIntentID, paymentMethodID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if si, ok := g.setupIntents[setupIntentID]; ok {
		si.Status = payment.IntentStatusSucceeded
		si.PaymentMethodID = paymentMethodID
	}
}

func (g *fakeGateway) CreatePaymentIntent(ctx context.Context, params payment.CreatePaymentIntentParams) (*payment.PaymentIntentRef, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createPaymentIntentCalls++
	if g.createPaymentIntentErr != nil {
		return nil, g.createPaymentIntentErr
	}
	g.seq++
	pi := &payment.PaymentIntentRef{
		ID:           fmt.Sprintf("pi_%d", g.seq),
		Status:       g.paymentIntentStatus,
		ClientSecret: fmt.Sprintf("pi_%d_secret", g.seq),
	}
	g.paymentIntents[pi.ID] = pi
	return pi, nil
}

func (g *fakeGateway) RetrievePaymentIntent(ctx context.Context, paymentIntentID string) (*payment.PaymentIntentRef, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if pi, ok := g.paymentIntents[paymentIntentID]; ok {
		return pi, nil
	}
	return nil, fmt.Errorf("no such payment intent: %s", paymentIntentID)
}

func (g *fakeGateway) ConfirmPaymentIntent(ctx context.Context, paymentIntentID string) (*payment.PaymentIntentRef, error) {
	return g.RetrievePaymentIntent(ctx, paymentIntentID)
}
