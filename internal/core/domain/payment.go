package domain

import "errors"

// ErrPaymentVerification covers any network or parse failure while talking
// to the payment gateway. The raw cause is logged server-side only.
var ErrPaymentVerification = errors.New("failed to verify payment")
