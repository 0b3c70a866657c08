package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/savemypet/storefront/internal/api/metrics"
	"github.com/savemypet/storefront/internal/core/ports"
)

// PaymentService proxies transaction verification to the gateway. It keeps
// the secret credential server-side and passes the gateway's response back
// untouched; it does not gate order creation — the checkout flow decides
// what the returned status means.
type PaymentService struct {
	gateway ports.PaymentGateway
	log     zerolog.Logger
}

func NewPaymentService(gateway ports.PaymentGateway, log zerolog.Logger) *PaymentService {
	return &PaymentService{gateway: gateway, log: log}
}

func (s *PaymentService) Verify(ctx context.Context, reference string) (json.RawMessage, error) {
	raw, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		metrics.PaymentVerificationsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("reference", reference).Msg("payment verification failed")
		return nil, err
	}

	metrics.PaymentVerificationsTotal.WithLabelValues(transactionStatus(raw)).Inc()
	s.log.Info().Str("reference", reference).Msg("payment verification proxied")
	return raw, nil
}

// transactionStatus pulls data.status out of the gateway body for the
// metric label, without touching the payload that flows to the client.
func transactionStatus(raw json.RawMessage) string {
	var probe struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.Data.Status == "" {
		return "unknown"
	}
	return probe.Data.Status
}
