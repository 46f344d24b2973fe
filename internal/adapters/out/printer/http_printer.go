package printer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"ordering/internal/core/ports"
)

var (
	_ ports.Printer = (*HTTPPrinter)(nil)
	_ ports.Printer = (*LogPrinter)(nil)
)

// HTTPPrinter POSTs raw ESC/POS bytes to a network print server.
type HTTPPrinter struct {
	endpoint string
	client   *http.Client
}

func NewHTTPPrinter(endpoint string, client *http.Client) *HTTPPrinter {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPPrinter{endpoint: endpoint, client: client}
}

func (p *HTTPPrinter) Print(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("X-Print-Type", "ESCPOS")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("POS printer request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("POS printer request failed: %s", resp.Status)
	}
	return nil
}

// LogPrinter stands in when no printer endpoint is configured: documents are
// written to the log instead.
type LogPrinter struct {
	logger *slog.Logger
}

func NewLogPrinter(logger *slog.Logger) *LogPrinter {
	return &LogPrinter{logger: logger.With("component", "pos_printer")}
}

func (p *LogPrinter) Print(ctx context.Context, payload []byte) error {
	p.logger.InfoContext(ctx, "no POS printer endpoint configured, printing to log",
		"bytes", len(payload), "document", string(payload))
	return nil
}
