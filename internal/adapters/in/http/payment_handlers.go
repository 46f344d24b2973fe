package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// NaverPaySignatureHeader carries the HMAC NaverPay signs its webhooks with.
const NaverPaySignatureHeader = "X-NaverPay-Signature"

// kst is the zone provider timestamps without an offset are written in.
var kst = time.FixedZone("KST", 9*60*60)

// callbackAdapter normalizes one provider's raw webhook body.
type callbackAdapter func(ctx echo.Context, raw map[string]any, now time.Time) (payment.Callback, error)

var callbackAdapters = map[string]callbackAdapter{
	payment.NaverPay: naverPayCallback,
	payment.KakaoPay: kakaoPayCallback,
}

// PaymentCallback handles POST /payment/callback/:provider.
func (s *Server) PaymentCallback(ctx echo.Context) error {
	provider := ctx.Param("provider")
	adapt, ok := callbackAdapters[provider]
	if !ok {
		return writeProblem(ctx, newProblem(http.StatusNotFound, "The requested resource was not found"))
	}

	raw, err := decodeRawBody(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cb, err := adapt(ctx, raw, time.Now().UTC())
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewReconcilePaymentCommand(cb)
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.h.Reconcile.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PaymentCallbackResponse{
		Success: true,
		OrderID: res.OrderID,
		Status:  string(res.Status),
	})
}

// decodeRawBody keeps numbers as json.Number so signed fields are reproduced exactly.
func decodeRawBody(ctx echo.Context) (map[string]any, error) {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errs.NewValueIsRequiredError("request body")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw map[string]any
	if err = dec.Decode(&raw); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return raw, nil
}

func naverPayCallback(ctx echo.Context, raw map[string]any, now time.Time) (payment.Callback, error) {
	cb := payment.Callback{
		OrderID:       stringField(raw, "merchantPayKey"),
		TransactionID: stringField(raw, "paymentId"),
		Amount:        decimalField(raw["totalPayAmount"]),
		Status:        payment.CallbackFailed,
		Timestamp:     parseTimestamp(stringField(raw, "admissionYmdt"), now),
		Signature:     ctx.Request().Header.Get(NaverPaySignatureHeader),
		Provider:      payment.NaverPay,
		RawData:       raw,
	}
	if cb.OrderID == "" {
		return payment.Callback{}, errs.NewValueIsRequiredError("Order ID (merchantPayKey)")
	}
	if stringField(raw, "admissionState") == "SUCCESS" {
		cb.Status = payment.CallbackSuccess
	}
	return cb, nil
}

func kakaoPayCallback(_ echo.Context, raw map[string]any, now time.Time) (payment.Callback, error) {
	var amount decimal.Decimal
	if a, ok := raw["amount"].(map[string]any); ok {
		amount = decimalField(a["total"])
	}

	approvedAt := stringField(raw, "approved_at")
	stamp := approvedAt
	if stamp == "" {
		stamp = stringField(raw, "created_at")
	}

	cb := payment.Callback{
		OrderID:       stringField(raw, "partner_order_id"),
		TransactionID: stringField(raw, "tid"),
		Amount:        amount,
		Status:        payment.CallbackFailed,
		Timestamp:     parseTimestamp(stamp, now),
		Provider:      payment.KakaoPay,
		RawData:       raw,
	}
	if cb.OrderID == "" {
		return payment.Callback{}, errs.NewValueIsRequiredError("Order ID (partner_order_id)")
	}
	if approvedAt != "" {
		cb.Status = payment.CallbackSuccess
	}
	return cb, nil
}

func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func decimalField(v any) decimal.Decimal {
	var s string
	switch n := v.(type) {
	case json.Number:
		s = n.String()
	case string:
		s = n
	default:
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseTimestamp accepts RFC 3339, ISO local time and NaverPay's yyyyMMddHHmmss;
// zone-less values are read as KST. Anything else falls back to now.
func parseTimestamp(s string, now time.Time) time.Time {
	if s == "" {
		return now
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "20060102150405"} {
		if t, err := time.ParseInLocation(layout, s, kst); err == nil {
			return t.UTC()
		}
	}
	return now
}
