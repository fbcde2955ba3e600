package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// StripeGateway implements Gateway against the Stripe API using an
// explicitly constructed client rather than the package-level key.
type StripeGateway struct {
	api    *client.API
	logger *zap.Logger
}

// NewStripeGateway creates a gateway bound to the given secret key.
func NewStripeGateway(secretKey string, logger *zap.Logger) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api, logger: logger}
}

// CreateOrRetrieveCustomer looks up an existing customer by email before
// creating one. The first match wins, so repeated calls for the same email
// keep resolving to the same customer.
func (g *StripeGateway) CreateOrRetrieveCustomer(ctx context.Context, email, name string, metadata map[string]string) (*CustomerRef, error) {
	listParams := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	listParams.Context = ctx
	listParams.Limit = stripe.Int64(1)

	iter := g.api.Customers.List(listParams)
	if iter.Next() {
		existing := iter.Customer()
		return &CustomerRef{ID: existing.ID, Email: existing.Email}, nil
	}
	if err := iter.Err(); err != nil {
		return nil, classifyError(fmt.Errorf("failed to list customers: %w", err))
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	created, err := g.api.Customers.New(params)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to create customer: %w", err))
	}
	g.logger.Info("created stripe customer", zap.String("customerId", created.ID))
	return &CustomerRef{ID: created.ID, Email: created.Email}, nil
}

// RetrieveCustomer fetches a customer by id.
func (g *StripeGateway) RetrieveCustomer(ctx context.Context, customerID string) (*CustomerRef, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx

	cust, err := g.api.Customers.Get(customerID, params)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to retrieve customer %s: %w", customerID, err))
	}
	if cust.Deleted {
		return nil, fmt.Errorf("customer %s is deleted", customerID)
	}
	return &CustomerRef{ID: cust.ID, Email: cust.Email}, nil
}

// CreateSetupIntent creates a setup intent scoped to the customer with
// off-session future usage.
func (g *StripeGateway) CreateSetupIntent(ctx context.Context, customerID string, metadata map[string]string) (*SetupIntentRef, error) {
	params := &stripe.SetupIntentParams{
		Customer: stripe.String(customerID),
		Usage:    stripe.String("off_session"),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	si, err := g.api.SetupIntents.New(params)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to create setup intent: %w", err))
	}
	return setupIntentRef(si), nil
}

// RetrieveSetupIntent fetches a setup intent by id.
func (g *StripeGateway) RetrieveSetupIntent(ctx context.Context, setupIntentID string) (*SetupIntentRef, error) {
	params := &stripe.SetupIntentParams{}
	params.Context = ctx

	si, err := g.api.SetupIntents.Get(setupIntentID, params)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to retrieve setup intent %s: %w", setupIntentID, err))
	}
	return setupIntentRef(si), nil
}

// CreatePaymentIntent creates (and optionally auto-confirms) an off-session
// charge against a previously saved payment method.
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, p CreatePaymentIntentParams) (*PaymentIntentRef, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(p.Amount),
		Currency:      stripe.String(p.Currency),
		Customer:      stripe.String(p.CustomerID),
		PaymentMethod: stripe.String(p.PaymentMethodID),
		OffSession:    stripe.Bool(true),
		Confirm:       stripe.Bool(p.Confirm),
	}
	params.Context = ctx
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to create payment intent: %w", err))
	}
	g.logger.Info("created payment intent",
		zap.String("paymentIntentId", pi.ID),
		zap.Int64("amount", p.Amount),
		zap.String("status", string(pi.Status)),
	)
	return paymentIntentRef(pi), nil
}

// RetrievePaymentIntent fetches a payment intent by id.
func (g *StripeGateway) RetrievePaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntentRef, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(paymentIntentID, params)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to retrieve payment intent %s: %w", paymentIntentID, err))
	}
	return paymentIntentRef(pi), nil
}

// ConfirmPaymentIntent confirms a payment intent after asynchronous
// authentication has completed.
func (g *StripeGateway) ConfirmPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntentRef, error) {
	params := &stripe.PaymentIntentConfirmParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Confirm(paymentIntentID, params)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to confirm payment intent %s: %w", paymentIntentID, err))
	}
	return paymentIntentRef(pi), nil
}

func setupIntentRef(si *stripe.SetupIntent) *SetupIntentRef {
	ref := &SetupIntentRef{
		ID:           si.ID,
		ClientSecret: si.ClientSecret,
		Status:       string(si.Status),
	}
	if si.PaymentMethod != nil {
		ref.PaymentMethodID = si.PaymentMethod.ID
	}
	return ref
}

func paymentIntentRef(pi *stripe.PaymentIntent) *PaymentIntentRef {
	return &PaymentIntentRef{
		ID:           pi.ID,
		Status:       string(pi.Status),
		ClientSecret: pi.ClientSecret,
	}
}
