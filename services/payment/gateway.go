package payment

import "context"

// CustomerRef identifies a processor customer.
type CustomerRef struct {
	ID    string
	Email string
}

// SetupIntentRef is the slice of a processor setup intent the booking core
// cares about.
type SetupIntentRef struct {
	ID              string
	ClientSecret    string
	Status          string
	PaymentMethodID string
}

// PaymentIntentRef is the slice of a processor payment intent the booking
// core cares about.
type PaymentIntentRef struct {
	ID           string
	Status       string
	ClientSecret string
}

// Processor-side intent statuses the orchestrator maps onto booking statuses.
const (
	IntentStatusSucceeded             = "succeeded"
	IntentStatusRequiresAction        = "requires_action"
	IntentStatusRequiresPaymentMethod = "requires_payment_method"
	IntentStatusCanceled              = "canceled"
)

// CreatePaymentIntentParams describes an off-session charge against a saved
// payment method.
type CreatePaymentIntentParams struct {
	Amount          int64
	Currency        string
	CustomerID      string
	PaymentMethodID string
	Metadata        map[string]string
	Confirm         bool
}

// Gateway wraps the card processor's customer, setup-intent and
// payment-intent primitives. It is constructed once and injected wherever a
// processor call is needed; there is no process-wide client singleton.
type Gateway interface {
	// CreateOrRetrieveCustomer looks up an existing customer by email before
	// creating one, returning the first match if found.
	CreateOrRetrieveCustomer(ctx context.Context, email, name string, metadata map[string]string) (*CustomerRef, error)
	RetrieveCustomer(ctx context.Context, customerID string) (*CustomerRef, error)

	// CreateSetupIntent is configured for off-session future usage so the
	// saved payment method can be charged later without the cardholder present.
	CreateSetupIntent(ctx context.Context, customerID string, metadata map[string]string) (*SetupIntentRef, error)
	RetrieveSetupIntent(ctx context.Context, setupIntentID string) (*SetupIntentRef, error)

	CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntentRef, error)
	RetrievePaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntentRef, error)
	ConfirmPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntentRef, error)
}
