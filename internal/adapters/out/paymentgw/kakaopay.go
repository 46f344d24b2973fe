package paymentgw

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/ports"

	"github.com/shopspring/decimal"
)

const DefaultKakaoPayBaseURL = "https://kapi.kakao.com"

// kakaoPaid is the order status KakaoPay reports for a settled payment.
const kakaoPaid = "SUCCESS_PAYMENT"

var _ ports.PaymentProvider = (*KakaoPay)(nil)

type KakaoPayConfig struct {
	CID       string
	SecretKey string
	BaseURL   string
}

// KakaoPay talks to the KakaoPay API. KakaoPay webhooks carry no signature, so a
// callback is authenticated by asking KakaoPay for the payment's status.
type KakaoPay struct {
	cfg    KakaoPayConfig
	client *http.Client
	clock  kernel.Clock
}

func NewKakaoPay(cfg KakaoPayConfig, client *http.Client, clock kernel.Clock) *KakaoPay {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultKakaoPayBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &KakaoPay{cfg: cfg, client: defaultHTTPClient(client), clock: clock}
}

func (p *KakaoPay) Name() string {
	return payment.KakaoPay
}

func (p *KakaoPay) header() http.Header {
	h := http.Header{}
	h.Set("Authorization", "KakaoAK "+p.cfg.SecretKey)
	return h
}

// won renders an amount as whole won, the only unit KakaoPay accepts.
func won(amount decimal.Decimal) string {
	return amount.Round(0).String()
}

func (p *KakaoPay) CreatePayment(ctx context.Context, req payment.Request) (payment.Session, error) {
	userID := req.CustomerPhone
	if userID == "" {
		userID = req.OrderID
	}
	form := url.Values{
		"cid":              {p.cfg.CID},
		"partner_order_id": {req.OrderID},
		"partner_user_id":  {userID},
		"item_name":        {req.ProductName},
		"quantity":         {"1"},
		"total_amount":     {won(req.Amount)},
		"tax_free_amount":  {"0"},
		"approval_url":     {req.ReturnURL},
		"cancel_url":       {req.CancelURL},
		"fail_url":         {req.CancelURL},
	}

	var out struct {
		TID         string `json:"tid"`
		RedirectURL string `json:"next_redirect_pc_url"`
	}
	if err := postForm(ctx, p.client, p.cfg.BaseURL+"/v1/payment/ready", p.header(), form, &out); err != nil {
		return payment.Session{}, fmt.Errorf("kakaopay ready: %w", err)
	}

	return payment.Session{
		PaymentURL:    out.RedirectURL,
		TransactionID: out.TID,
		ExpiresAt:     p.clock.Now().Add(sessionLifetime),
	}, nil
}

// VerifyCallback reports true only if KakaoPay itself says the payment settled.
// Failing to reach KakaoPay is returned as an error.
func (p *KakaoPay) VerifyCallback(ctx context.Context, cb payment.Callback) (bool, error) {
	tid := cb.Raw("tid")
	if tid == "" {
		tid = cb.TransactionID
	}
	userID := cb.Raw("partner_user_id")
	if userID == "" {
		userID = cb.OrderID
	}
	form := url.Values{
		"cid":              {p.cfg.CID},
		"tid":              {tid},
		"partner_order_id": {cb.OrderID},
		"partner_user_id":  {userID},
	}

	var out struct {
		Status string `json:"status"`
	}
	if err := postForm(ctx, p.client, p.cfg.BaseURL+"/v1/payment/order", p.header(), form, &out); err != nil {
		return false, fmt.Errorf("kakaopay order lookup: %w", err)
	}
	return out.Status == kakaoPaid, nil
}

func (p *KakaoPay) CancelPayment(ctx context.Context, transactionID string, amount decimal.Decimal) (payment.Refund, error) {
	form := url.Values{
		"cid":                    {p.cfg.CID},
		"tid":                    {transactionID},
		"cancel_amount":          {won(amount)},
		"cancel_tax_free_amount": {"0"},
	}

	var out struct {
		TID            string `json:"tid"`
		CanceledAmount struct {
			Total decimal.Decimal `json:"total"`
		} `json:"canceled_amount"`
		CanceledAt string `json:"canceled_at"`
	}
	if err := postForm(ctx, p.client, p.cfg.BaseURL+"/v1/payment/cancel", p.header(), form, &out); err != nil {
		return payment.Refund{}, fmt.Errorf("kakaopay cancel: %w", err)
	}

	processedAt := p.clock.Now()
	if t, err := time.Parse(time.RFC3339, out.CanceledAt); err == nil {
		processedAt = t
	}
	return payment.Refund{
		RefundID:    out.TID,
		Amount:      out.CanceledAmount.Total,
		Succeeded:   true,
		ProcessedAt: processedAt,
	}, nil
}
