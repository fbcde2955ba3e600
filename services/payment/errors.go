package payment

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v76"
)

// Failure kinds surfaced by the gateway. Callers branch on these with
// errors.Is; the underlying processor error stays in the chain.
var (
	ErrCardDeclined           = errors.New("card declined")
	ErrAuthenticationRequired = errors.New("card authentication required")
	ErrProcessorAuth          = errors.New("processor authentication error")
	ErrProcessorAPI           = errors.New("processor api error")
)

// classifyError maps a stripe error onto one of the gateway failure kinds.
// Errors that are not stripe errors pass through unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var sErr *stripe.Error
	if !errors.As(err, &sErr) {
		return err
	}

	if sErr.HTTPStatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrProcessorAuth, sErr.Msg)
	}

	switch sErr.Type {
	case stripe.ErrorTypeCard:
		if sErr.Code == stripe.ErrorCodeAuthenticationRequired {
			return fmt.Errorf("%w: %s", ErrAuthenticationRequired, sErr.Msg)
		}
		return fmt.Errorf("%w: %s", ErrCardDeclined, sErr.Msg)
	case stripe.ErrorTypeAPI:
		return fmt.Errorf("%w: %s", ErrProcessorAPI, sErr.Msg)
	default:
		return err
	}
}
