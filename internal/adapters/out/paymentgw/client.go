// Package paymentgw implements ports.PaymentProvider for the NaverPay and KakaoPay
// partner APIs and the closed registry the application resolves providers from.
package paymentgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// sessionLifetime is how long a freshly opened checkout page stays valid.
const sessionLifetime = 30 * time.Minute

const defaultTimeout = 10 * time.Second

func defaultHTTPClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: defaultTimeout}
}

// httpStatusError is returned for any non-2xx provider response.
type httpStatusError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Endpoint, e.Status, e.Body)
}

func postJSON(ctx context.Context, client *http.Client, endpoint string, header http.Header, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header = header.Clone()
	req.Header.Set("Content-Type", "application/json")
	return do(client, req, out)
}

func postForm(ctx context.Context, client *http.Client, endpoint string, header http.Header, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header = header.Clone()
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(client, req, out)
}

func do(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &httpStatusError{Endpoint: req.URL.Path, Status: resp.StatusCode, Body: string(data)}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
