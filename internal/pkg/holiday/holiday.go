package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrUnexpectedStatus = errors.New("holiday provider returned unexpected status")
	ErrMalformedPayload = errors.New("holiday provider returned malformed payload")
)

// Holiday is one national holiday date.
type Holiday struct {
	Date time.Time
	Name string
}

// Provider supplies national holidays of a year.
type Provider interface {
	Holidays(ctx context.Context, year int) ([]Holiday, error)
}

// entry mirrors the provider payload. Some deployments name the date field
// holiday_date, others date.
type entry struct {
	Date              string `json:"date"`
	HolidayDate       string `json:"holiday_date"`
	HolidayName       string `json:"holiday_name"`
	IsNationalHoliday bool   `json:"is_national_holiday"`
}

// Client calls the holiday calendar HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Holidays fetches the national holidays of year. Entries with unparseable
// dates or outside the year are skipped; only a failed call or an undecodable
// body is an error.
func (c *Client) Holidays(ctx context.Context, year int) ([]Holiday, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid holiday api url: %w", err)
	}
	q := u.Query()
	q.Set("year", strconv.Itoa(year))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build holiday request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays for %d: %w", year, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var entries []entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	holidays := make([]Holiday, 0, len(entries))
	for _, e := range entries {
		if !e.IsNationalHoliday {
			continue
		}
		raw := e.Date
		if raw == "" {
			raw = e.HolidayDate
		}
		// "2006-1-2" also accepts zero-padded months and days.
		date, err := time.Parse("2006-1-2", strings.TrimSpace(raw))
		if err != nil {
			slog.Debug("Skipping holiday entry with invalid date", "date", raw, "name", e.HolidayName)
			continue
		}
		if date.Year() != year {
			continue
		}
		holidays = append(holidays, Holiday{Date: date, Name: e.HolidayName})
	}

	return holidays, nil
}

// IsNationalHoliday reports whether day's calendar date is among the provider's holidays.
func IsNationalHoliday(ctx context.Context, p Provider, day time.Time) (bool, error) {
	holidays, err := p.Holidays(ctx, day.Year())
	if err != nil {
		return false, err
	}
	key := DateKey(day)
	for _, h := range holidays {
		if DateKey(h.Date) == key {
			return true, nil
		}
	}
	return false, nil
}

// DateKey formats the calendar date of t in t's own location.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
