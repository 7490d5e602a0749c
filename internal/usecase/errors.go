package usecase

import (
	"errors"

	"ingressos_checkout/internal/domain/entities"
)

var (
	ErrPreferenceNotRegenerable = errors.New("preference already has a terminal status")
	ErrRepositoryNotConfigured  = errors.New("preference repository not configured")
	ErrGatewayNotConfigured     = errors.New("payment gateway not configured")

	// ErrAmountMismatch is an input error: errors.Is(err, entities.ErrInvalidInput) holds.
	ErrAmountMismatch = &entities.InputError{Field: "total_amount", Reason: "does not match ticket price times quantity"}
	ErrEventNotOnSale = &entities.InputError{Field: "event_id", Reason: "event is not on sale"}
	ErrBatchNotOnSale = &entities.InputError{Field: "batch_id", Reason: "batch is not on sale"}
	ErrTotalNotSplit  = &entities.InputError{Field: "total_amount", Reason: "does not split into equal ticket prices"}
)

func asGatewayError(err error) error {
	if err == nil || errors.Is(err, entities.ErrGateway) {
		return err
	}
	return &entities.GatewayError{Message: err.Error(), Cause: err}
}
