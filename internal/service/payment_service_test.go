package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/studyhive-labs/studyhive-api/pkg/errors"
)

type fakeGateway struct {
	secret       string
	err          error
	lastAmount   int64
	lastCurrency string
}

func (f *fakeGateway) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	f.lastAmount = amount
	f.lastCurrency = currency
	if f.err != nil {
		return "", f.err
	}
	return f.secret, nil
}

func TestPaymentServiceCreateIntent(t *testing.T) {
	gateway := &fakeGateway{secret: "pi_secret_123"}
	svc := NewPaymentService(gateway, nil, nil, "usd")

	intent, err := svc.CreateIntent(context.Background(), CreateIntentRequest{Amount: 4500})
	require.NoError(t, err)
	assert.Equal(t, "pi_secret_123", intent.ClientSecret)
	assert.Equal(t, int64(4500), gateway.lastAmount)
	assert.Equal(t, "usd", gateway.lastCurrency)
}

func TestPaymentServiceRejectsNonPositiveAmount(t *testing.T) {
	gateway := &fakeGateway{}
	svc := NewPaymentService(gateway, nil, nil, "usd")

	_, err := svc.CreateIntent(context.Background(), CreateIntentRequest{Amount: 0})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, gateway.lastAmount)
}

func TestPaymentServiceGatewayFailure(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("card declined")}
	svc := NewPaymentService(gateway, nil, nil, "usd")

	_, err := svc.CreateIntent(context.Background(), CreateIntentRequest{Amount: 100})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPaymentFailed.Code, appErr.Code)
	assert.Equal(t, appErrors.ErrPaymentFailed.Status, appErr.Status)
}
