// Package client implements the REST client the questioning engine
// reconciles through. It is the only consumer-side knowledge of the wire
// contract; the engine sees just the Backend interface.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sorakaya/balloonlog/internal/domain"
)

// Client talks to a balloonlog server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the server at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// ─── engine.Backend ─────────────────────────────────────────────────────────

// AnsweredSlots fetches the answered slot labels for a logical day.
func (c *Client) AnsweredSlots(ctx context.Context, date string) ([]string, error) {
	var slots []string
	path := "/answered_slots?date=" + url.QueryEscape(date)
	if err := c.get(ctx, path, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// BonusStatus fetches today's remote bonus flag.
func (c *Client) BonusStatus(ctx context.Context) (bool, error) {
	var resp struct {
		BonusGiven bool `json:"bonusGiven"`
	}
	if err := c.get(ctx, "/bonus_status", &resp); err != nil {
		return false, err
	}
	return resp.BonusGiven, nil
}

// SubmitAnswer records one answer (or one bonus prompt under the
// sentinel marker).
func (c *Client) SubmitAnswer(ctx context.Context, date, slot, action string, delta int) error {
	return c.post(ctx, "/log", map[string]interface{}{
		"date":   date,
		"slot":   slot,
		"action": action,
		"delta":  delta,
	}, nil)
}

// ApplyBonus records the day's bonus outcome.
func (c *Client) ApplyBonus(ctx context.Context, bonus int, q1, q2 bool) error {
	return c.post(ctx, "/apply_bonus", map[string]interface{}{
		"bonus": bonus,
		"q1":    q1,
		"q2":    q2,
	}, nil)
}

// CurrentAltitude fetches the authoritative altitude total.
func (c *Client) CurrentAltitude(ctx context.Context) (int, error) {
	var resp struct {
		Altitude int `json:"altitude"`
	}
	if err := c.get(ctx, "/current_altitude", &resp); err != nil {
		return 0, err
	}
	return resp.Altitude, nil
}

// ─── History & Export ───────────────────────────────────────────────────────

// Summary fetches the current day's aggregated row.
// ok is false when the day has no records yet.
func (c *Client) Summary(ctx context.Context) (domain.DailySummary, bool, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/summary", nil)
	if err != nil {
		return domain.DailySummary{}, false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.DailySummary{}, false, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.DailySummary{}, false, err
	}
	if resp.StatusCode != http.StatusOK {
		return domain.DailySummary{}, false, apiError(resp.StatusCode, body)
	}

	// The no-records day answers with a different shape.
	var none struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(body, &none); err == nil && none.Summary != "" {
		return domain.DailySummary{}, false, nil
	}

	var s domain.DailySummary
	if err := json.Unmarshal(body, &s); err != nil {
		return domain.DailySummary{}, false, fmt.Errorf("decode summary: %w", err)
	}
	return s, true, nil
}

// SummaryAll fetches every day's row, newest first.
func (c *Client) SummaryAll(ctx context.Context) ([]domain.DailySummary, error) {
	var rows []domain.DailySummary
	if err := c.get(ctx, "/summary_all", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// BonusStats fetches the per-prompt success counts.
func (c *Client) BonusStats(ctx context.Context) (map[string]domain.BonusStat, error) {
	var stats map[string]domain.BonusStat
	if err := c.get(ctx, "/bonus_stats", &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Download saves a server-side backup snapshot into path.
func (c *Client) Download(ctx context.Context, path string) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/backup_now", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return apiError(resp.StatusCode, body)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// ─── Plumbing ───────────────────────────────────────────────────────────────

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return apiError(resp.StatusCode, body)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return apiError(resp.StatusCode, body)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return nil
}

// apiError turns a non-200 response into an error, surfacing the server's
// message when one is present.
func apiError(status int, body []byte) error {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		if status == http.StatusConflict && e.Message == domain.ErrBonusAlreadyGiven.Error() {
			return domain.ErrBonusAlreadyGiven
		}
		return fmt.Errorf("server returned %d: %s", status, e.Message)
	}
	return fmt.Errorf("server returned %d", status)
}
