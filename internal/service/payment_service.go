package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appErrors "github.com/studyhive-labs/studyhive-api/pkg/errors"
)

// PaymentGateway is the external payment collaborator. Given a positive
// amount it returns an opaque client-side secret for completing the charge.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// CreateIntentRequest is the payload for opening a payment intent. Amount is
// in minor units.
type CreateIntentRequest struct {
	Amount int64 `json:"amount" validate:"required,gte=1"`
}

// IntentResponse returns the gateway's client secret.
type IntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

// PaymentService validates payment input before delegating to the gateway.
type PaymentService struct {
	gateway   PaymentGateway
	validator *validator.Validate
	logger    *zap.Logger
	currency  string
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(gateway PaymentGateway, validate *validator.Validate, logger *zap.Logger, currency string) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if currency == "" {
		currency = "usd"
	}
	return &PaymentService{gateway: gateway, validator: validate, logger: logger, currency: currency}
}

// CreateIntent validates the amount and delegates to the collaborator.
func (s *PaymentService) CreateIntent(ctx context.Context, req CreateIntentRequest) (*IntentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "amount must be at least 1")
	}

	secret, err := s.gateway.CreateIntent(ctx, req.Amount, s.currency)
	if err != nil {
		s.logger.Error("payment intent failed", zap.Int64("amount", req.Amount), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrPaymentFailed.Code, appErrors.ErrPaymentFailed.Status, appErrors.ErrPaymentFailed.Message)
	}

	return &IntentResponse{ClientSecret: secret}, nil
}
