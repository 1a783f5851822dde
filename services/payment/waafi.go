package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"futsal/config"
	"futsal/models"
)

// responseCode returned by WaafiPay on an approved purchase.
const waafiApproved = "2001"

// WaafiGateway charges mobile-money wallets through the WaafiPay API.
type WaafiGateway struct {
	logger   *zap.Logger
	client   *http.Client
	apiURL   string
	currency string
}

// NewWaafiGateway constructs a gateway from the loaded configuration.
func NewWaafiGateway(logger *zap.Logger) *WaafiGateway {
	return &WaafiGateway{
		logger:   logger,
		client:   &http.Client{Timeout: 60 * time.Second},
		apiURL:   config.AppConfig.WaafiAPIURL,
		currency: config.AppConfig.PaymentCurrency,
	}
}

type waafiRequest struct {
	SchemaVersion string        `json:"schemaVersion"`
	RequestID     string        `json:"requestId"`
	Timestamp     string        `json:"timestamp"`
	ChannelName   string        `json:"channelName"`
	ServiceName   string        `json:"serviceName"`
	ServiceParams serviceParams `json:"serviceParams"`
}

type serviceParams struct {
	MerchantUID     string          `json:"merchantUid"`
	APIUserID       string          `json:"apiUserId"`
	APIKey          string          `json:"apiKey"`
	PaymentMethod   string          `json:"paymentMethod"`
	PayerInfo       payerInfo       `json:"payerInfo"`
	TransactionInfo transactionInfo `json:"transactionInfo"`
}

type payerInfo struct {
	AccountNo string `json:"accountNo"`
}

type transactionInfo struct {
	ReferenceID string `json:"referenceId"`
	InvoiceID   string `json:"invoiceId"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

type waafiResponse struct {
	ResponseCode string `json:"responseCode"`
	ResponseMsg  string `json:"responseMsg"`
	Params       struct {
		OrderID       string `json:"orderId"`
		TransactionID string `json:"transactionId"`
	} `json:"params"`
}

// Charge initiates a synchronous wallet purchase. The returned reference id
// is unique per attempt, derived from the caller's invoice id.
func (g *WaafiGateway) Charge(ctx context.Context, req models.ChargeRequest) (*models.ChargeResult, error) {
	referenceID := fmt.Sprintf("%s-%d", req.InvoiceID, time.Now().UnixMilli())

	body := waafiRequest{
		SchemaVersion: "1.0",
		RequestID:     uuid.New().String(),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		ChannelName:   "WEB",
		ServiceName:   "API_PURCHASE",
		ServiceParams: serviceParams{
			MerchantUID:   config.AppConfig.MerchantUID,
			APIUserID:     config.AppConfig.MerchantAPIUserID,
			APIKey:        config.AppConfig.MerchantAPIKey,
			PaymentMethod: "MWALLET_ACCOUNT",
			PayerInfo:     payerInfo{AccountNo: req.AccountNo},
			TransactionInfo: transactionInfo{
				ReferenceID: referenceID,
				InvoiceID:   req.InvoiceID,
				Amount:      fmt.Sprintf("%.2f", req.Amount),
				Currency:    g.currency,
				Description: req.Description,
			},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build payment request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	var result waafiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}

	success := result.ResponseCode == waafiApproved
	g.logger.Info("waafi charge completed",
		zap.String("referenceId", referenceID),
		zap.String("responseCode", result.ResponseCode),
		zap.Bool("success", success),
	)

	transactionID := result.Params.TransactionID
	if transactionID == "" {
		transactionID = result.Params.OrderID
	}

	return &models.ChargeResult{
		Success:       success,
		ReferenceID:   referenceID,
		TransactionID: transactionID,
		ResponseMsg:   result.ResponseMsg,
	}, nil
}
