package quota

import (
	"errors"
	"fmt"
)

// Domain errors for quota operations.
var (
	ErrQuotaExceeded      = errors.New("quota.errors.limit_exceeded")
	ErrInvalidResource    = errors.New("quota.errors.invalid_resource")
	ErrFailedToCountUsage = errors.New("quota.errors.failed_to_count_usage")
	ErrInvalidTierFile    = errors.New("quota.errors.invalid_tier_file")
)

// ExceededError is returned by Enforce when a create would pass the tier
// limit. It carries the full quota check so handlers can build an
// upgrade-required response without re-querying.
type ExceededError struct {
	Check Check
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("%s limit exceeded: %d of %d used on %s", e.Check.Type, e.Check.Current, e.Check.Limit, e.Check.Tier)
}

func (e *ExceededError) Unwrap() error {
	return ErrQuotaExceeded
}

// ErrorResponse is the payload shape handlers return for quota failures.
type ErrorResponse struct {
	Error           string `json:"error"`
	Message         string `json:"message"`
	Code            string `json:"code"`
	Quota           *Check `json:"quota,omitempty"`
	UpgradeRequired bool   `json:"upgradeRequired,omitempty"`
}

// FormatQuotaError converts an error from Enforce into a response payload.
// Quota-exceeded errors become an upgrade-required response; anything else is
// reported as an internal error.
func FormatQuotaError(err error) ErrorResponse {
	var exceeded *ExceededError
	if errors.As(err, &exceeded) {
		return ErrorResponse{
			Error:           "Quota exceeded",
			Message:         exceeded.Error(),
			Code:            "QUOTA_EXCEEDED",
			Quota:           &exceeded.Check,
			UpgradeRequired: true,
		}
	}

	return ErrorResponse{
		Error:   "Internal error",
		Message: err.Error(),
		Code:    "INTERNAL_ERROR",
	}
}
