// Package metrics exposes account operation outcomes to Prometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dtroode/account-auth/internal/model"
)

const (
	OutcomeOK       = "ok"
	OutcomeInternal = "internal"
)

var outcomes = []struct {
	err   error
	label string
}{
	{model.ErrDuplicateIdentity, "duplicate_identity"},
	{model.ErrInvalidCredentials, "invalid_credentials"},
	{model.ErrNotVerified, "not_verified"},
	{model.ErrInvalidOrExpiredCode, "invalid_or_expired_code"},
	{model.ErrAlreadyVerified, "already_verified"},
	{model.ErrDeliveryFailed, "delivery_failed"},
	{model.ErrInvalidArgument, "invalid_argument"},
	{model.ErrNotFound, "not_found"},
	{model.ErrTokenExpired, "token_expired"},
	{model.ErrTokenRevoked, "token_revoked"},
	{model.ErrTokenInvalid, "token_invalid"},
}

// Outcome maps an operation error to a low-cardinality label value.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	for _, o := range outcomes {
		if errors.Is(err, o.err) {
			return o.label
		}
	}
	return OutcomeInternal
}

// Metrics holds the account service collectors.
type Metrics struct {
	OperationsTotal *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "account_operations_total",
				Help: "Total number of account operations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
	}

	reg.MustRegister(m.OperationsTotal)

	return m
}

// Observe records one finished operation.
func (m *Metrics) Observe(operation string, err error) {
	m.OperationsTotal.WithLabelValues(operation, Outcome(err)).Inc()
}
