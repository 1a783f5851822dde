package payment

import (
	"context"

	"futsal/models"
)

// Gateway is the synchronous contract with the mobile-money processor. The
// core never retries a charge and never assumes a repeated call with the same
// invoice id is idempotent; every invocation is a fresh, possibly-costly
// attempt, which is why callers compensate by deleting their pending record
// instead of retrying.
type Gateway interface {
	Charge(ctx context.Context, req models.ChargeRequest) (*models.ChargeResult, error)
}
