package dto

import "time"

type CheckoutRequest struct {
	ProfessorId int64     `json:"professor_id" validate:"required,gt=0"`
	BeginsAt    time.Time `json:"begins_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required"`
	GrossAmount int64     `json:"gross_amount" validate:"required,gt=0"`
}

type CheckoutResponse struct {
	OrderId    string `json:"order_id"`
	ClassId    int64  `json:"class_id"`
	PaymentUrl string `json:"payment_url,omitempty"`
}

// MidtransWebhookRequest mirrors the gateway's notification payload. Only the
// fields the signature check and status mapping need are declared.
type MidtransWebhookRequest struct {
	OrderId           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionId     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
}
