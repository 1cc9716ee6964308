// file: internals/features/finance/invoices/service/errors.go
package service

import (
	"errors"
	"fmt"
)

// Taksonomi error subsistem billing. Controller memetakan sentinel →
// HTTP status; pesan manusiawi dibawa lewat wrapping.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrNothingToPay = errors.New("nothing to pay")
	ErrTransaction  = errors.New("transaction failure")
)

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func unauthorizedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}

// wrapTx membungkus error store mentah jadi TransactionFailure;
// error domain (sentinel di atas) diteruskan apa adanya.
func wrapTx(err error) error {
	if err == nil {
		return nil
	}
	for _, domain := range []error{ErrNotFound, ErrUnauthorized, ErrInvalidInput, ErrNothingToPay, ErrTransaction} {
		if errors.Is(err, domain) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrTransaction, err)
}
