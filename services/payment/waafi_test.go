package payment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"futsal/config"
	"futsal/models"
	"futsal/services/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGateway(t *testing.T, handler http.HandlerFunc) *payment.WaafiGateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config.AppConfig.WaafiAPIURL = server.URL
	config.AppConfig.PaymentCurrency = "USD"
	config.AppConfig.MerchantUID = "M123"
	config.AppConfig.MerchantAPIUserID = "U456"
	config.AppConfig.MerchantAPIKey = "K789"

	return payment.NewWaafiGateway(zap.NewNop())
}

func TestChargeApproved(t *testing.T) {
	var captured map[string]any
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"responseCode":"2001","responseMsg":"RCS_SUCCESS","params":{"transactionId":"TXN-42"}}`))
	})

	result, err := gw.Charge(context.Background(), models.ChargeRequest{
		AccountNo:   "252611111111",
		Amount:      25.5,
		InvoiceID:   "booking-1",
		Description: "Futsal Slot Booking",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "TXN-42", result.TransactionID)
	assert.Equal(t, "RCS_SUCCESS", result.ResponseMsg)
	assert.True(t, strings.HasPrefix(result.ReferenceID, "booking-1-"))

	// Wire shape expected by WaafiPay.
	assert.Equal(t, "1.0", captured["schemaVersion"])
	assert.Equal(t, "WEB", captured["channelName"])
	assert.Equal(t, "API_PURCHASE", captured["serviceName"])
	assert.NotEmpty(t, captured["requestId"])

	params := captured["serviceParams"].(map[string]any)
	assert.Equal(t, "M123", params["merchantUid"])
	assert.Equal(t, "U456", params["apiUserId"])
	assert.Equal(t, "K789", params["apiKey"])
	assert.Equal(t, "MWALLET_ACCOUNT", params["paymentMethod"])

	payer := params["payerInfo"].(map[string]any)
	assert.Equal(t, "252611111111", payer["accountNo"])

	txn := params["transactionInfo"].(map[string]any)
	assert.Equal(t, "booking-1", txn["invoiceId"])
	assert.Equal(t, "25.50", txn["amount"])
	assert.Equal(t, "USD", txn["currency"])
	assert.Equal(t, result.ReferenceID, txn["referenceId"])
}

func TestChargeDeclined(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"responseCode":"5310","responseMsg":"Payment Failed [insufficient balance]"}`))
	})

	result, err := gw.Charge(context.Background(), models.ChargeRequest{
		AccountNo: "2526", Amount: 10, InvoiceID: "booking-2",
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.ResponseMsg, "insufficient balance")
}

func TestChargeTransportError(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {})
	// Point at a closed port.
	config.AppConfig.WaafiAPIURL = "http://127.0.0.1:1"
	gw = payment.NewWaafiGateway(zap.NewNop())

	_, err := gw.Charge(context.Background(), models.ChargeRequest{
		AccountNo: "2526", Amount: 10, InvoiceID: "booking-3",
	})
	assert.Error(t, err)
}

func TestChargeMalformedResponse(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := gw.Charge(context.Background(), models.ChargeRequest{
		AccountNo: "2526", Amount: 10, InvoiceID: "booking-4",
	})
	assert.Error(t, err)
}
