package models

// ChargeRequest is the input contract for the payment gateway adapter.
type ChargeRequest struct {
	AccountNo   string  // payer mobile-money account (phone number)
	Amount      float64 // decimal, 2 places
	InvoiceID   string  // caller-supplied correlation id (booking/subscription id)
	Description string
}

// ChargeResult is the synchronous outcome of a gateway charge attempt.
type ChargeResult struct {
	Success       bool   `json:"success"`
	ReferenceID   string `json:"referenceId"`
	TransactionID string `json:"transactionId,omitempty"`
	ResponseMsg   string `json:"responseMsg,omitempty"`
}
