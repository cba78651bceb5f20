// Package sheets appends rows to Google Sheets through the values:append
// endpoint of the Sheets v4 REST API.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gaubit/respirabot/core/logger"
)

// DefaultAPIBase is the production Sheets endpoint; tests point it at a
// local server.
const DefaultAPIBase = "https://sheets.googleapis.com"

// Client appends value rows to spreadsheets. It satisfies the record
// pipeline's Appender contract.
type Client struct {
	http  *http.Client
	base  string
	token string
}

// NewClient builds a sheets client on top of the given HTTP client. An empty
// base falls back to DefaultAPIBase.
func NewClient(httpClient *http.Client, base, token string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if base == "" {
		base = DefaultAPIBase
	}
	return &Client{http: httpClient, base: base, token: token}
}

type appendRequest struct {
	Values [][]string `json:"values"`
}

type appendResponse struct {
	Updates struct {
		UpdatedRange string `json:"updatedRange"`
		UpdatedRows  int    `json:"updatedRows"`
	} `json:"updates"`
}

// Append adds one row at the bottom of the named sheet. Values go through
// USER_ENTERED input so hyperlink formulas render as links.
func (c *Client) Append(ctx context.Context, spreadsheet, sheet string, row []string) error {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s:append?valueInputOption=USER_ENTERED&insertDataOption=INSERT_ROWS",
		c.base, url.PathEscape(spreadsheet), url.PathEscape(sheet))

	body, err := json.Marshal(appendRequest{Values: [][]string{row}})
	if err != nil {
		return fmt.Errorf("encode append request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build append request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("append to %s!%s: %w", spreadsheet, sheet, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("append to %s!%s: status %d: %s", spreadsheet, sheet, resp.StatusCode, logger.Sanitize(string(snippet)))
	}

	var parsed appendResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		// The append succeeded; a malformed body is only worth a log line.
		logger.Warn(ctx, "sheets", "append.decode_failed", slog.String("err", err.Error()))
		return nil
	}

	logger.Debug(ctx, "sheets", "append.ok",
		slog.String("range", parsed.Updates.UpdatedRange),
		slog.Int("rows", parsed.Updates.UpdatedRows),
		slog.Duration("took", logger.Took(started)),
	)
	return nil
}
