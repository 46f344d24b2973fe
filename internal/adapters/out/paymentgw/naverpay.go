package paymentgw

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/ports"

	"github.com/shopspring/decimal"
)

const DefaultNaverPayBaseURL = "https://dev.apis.naver.com/naverpay-partner"

var _ ports.PaymentProvider = (*NaverPay)(nil)

type NaverPayConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
}

// NaverPay talks to the NaverPay partner API. Webhooks are authenticated locally by
// an HMAC over the payment id, the merchant key and the admission time.
type NaverPay struct {
	cfg    NaverPayConfig
	client *http.Client
	clock  kernel.Clock
}

func NewNaverPay(cfg NaverPayConfig, client *http.Client, clock kernel.Clock) *NaverPay {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultNaverPayBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &NaverPay{cfg: cfg, client: defaultHTTPClient(client), clock: clock}
}

func (p *NaverPay) Name() string {
	return payment.NaverPay
}

func (p *NaverPay) header() http.Header {
	h := http.Header{}
	h.Set("X-Naver-Client-Id", p.cfg.ClientID)
	h.Set("X-Naver-Client-Secret", p.cfg.ClientSecret)
	return h
}

func (p *NaverPay) CreatePayment(ctx context.Context, req payment.Request) (payment.Session, error) {
	userKey := req.CustomerPhone
	if userKey == "" {
		userKey = req.OrderID
	}
	in := map[string]any{
		"merchantPayKey":  req.OrderID,
		"productName":     req.ProductName,
		"totalPayAmount":  json.Number(req.Amount.String()),
		"returnUrl":       req.ReturnURL,
		"merchantUserKey": userKey,
	}

	var out struct {
		Body struct {
			PaymentURL string `json:"paymentUrl"`
			PaymentID  string `json:"paymentId"`
		} `json:"body"`
	}
	if err := postJSON(ctx, p.client, p.cfg.BaseURL+"/payments/v2.0/reserve", p.header(), in, &out); err != nil {
		return payment.Session{}, fmt.Errorf("naverpay reserve: %w", err)
	}

	return payment.Session{
		PaymentURL:    out.Body.PaymentURL,
		TransactionID: out.Body.PaymentID,
		ExpiresAt:     p.clock.Now().Add(sessionLifetime),
	}, nil
}

// VerifyCallback recomputes the signature from the raw webhook body. It never
// returns an error: a callback is either signed correctly or it is not.
func (p *NaverPay) VerifyCallback(_ context.Context, cb payment.Callback) (bool, error) {
	if cb.Signature == "" {
		return false, nil
	}
	expected := Sign(p.cfg.ClientSecret, cb.Raw("paymentId"), cb.Raw("merchantPayKey"), cb.Raw("admissionYmdt"))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(cb.Signature))), nil
}

// Sign returns the hex HMAC-SHA256 NaverPay puts in the X-NaverPay-Signature header.
func Sign(secret, paymentID, merchantPayKey, admissionYmdt string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(paymentID + merchantPayKey + admissionYmdt))
	return hex.EncodeToString(mac.Sum(nil))
}

func (p *NaverPay) CancelPayment(ctx context.Context, transactionID string, amount decimal.Decimal) (payment.Refund, error) {
	in := map[string]any{
		"paymentId":    transactionID,
		"cancelAmount": json.Number(amount.String()),
		"cancelReason": "Customer requested cancellation",
	}

	var out struct {
		Body struct {
			PayHistID      string          `json:"payHistId"`
			CancelAmount   decimal.Decimal `json:"cancelAmount"`
			AdmissionState string          `json:"admissionState"`
		} `json:"body"`
	}
	if err := postJSON(ctx, p.client, p.cfg.BaseURL+"/payments/v2.0/cancel", p.header(), in, &out); err != nil {
		return payment.Refund{}, fmt.Errorf("naverpay cancel: %w", err)
	}

	return payment.Refund{
		RefundID:    out.Body.PayHistID,
		Amount:      out.Body.CancelAmount,
		Succeeded:   out.Body.AdmissionState == "SUCCESS",
		ProcessedAt: p.clock.Now(),
	}, nil
}
