// Package attendanceapi talks to the remote Attendance API that owns all
// attendance business logic.
package attendanceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"Presensi-QR-Karyawan/models"
	"Presensi-QR-Karyawan/pkg/qrtoken"
	util "Presensi-QR-Karyawan/pkg/utils"
)

const maxBodySize = 1 << 20

// ErrBadResponse marks a 2xx response whose body could not be understood.
var ErrBadResponse = errors.New("respons attendance API tidak valid")

// APIError is a non-2xx answer from the Attendance API.
type APIError struct {
	StatusCode int
	Message    string
	RetryAfter string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("attendance API %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) HTTPStatus() int          { return e.StatusCode }
func (e *APIError) RetryAfterHeader() string { return e.RetryAfter }

var _ qrtoken.StatusError = (*APIError)(nil)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithToken returns a copy of the client that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// IssueToken requests a fresh attendance QR token.
func (c *Client) IssueToken(ctx context.Context) (*qrtoken.Token, error) {
	var data models.QRTokenData
	if _, err := c.do(ctx, http.MethodGet, "/api/attendance/my-qr", nil, &data); err != nil {
		if errors.Is(err, ErrBadResponse) {
			return nil, fmt.Errorf("%w: %v", qrtoken.ErrInvalidToken, err)
		}
		return nil, err
	}
	if errs := util.ValidateStruct(data); errs != nil {
		return nil, fmt.Errorf("%w: %s", qrtoken.ErrInvalidToken, errs[0].Msg)
	}
	return &qrtoken.Token{
		Value:      data.QR,
		IssuedAt:   time.Now(),
		TTLSeconds: int(data.ExpiresInMs / 1000),
	}, nil
}

// TodayStatus returns today's record, or nil when there is none.
func (c *Client) TodayStatus(ctx context.Context) (*models.TodayAttendance, error) {
	var rec *models.TodayAttendance
	if _, err := c.do(ctx, http.MethodGet, "/api/attendance/today", nil, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (c *Client) History(ctx context.Context, page, pageSize int) (*models.AttendanceHistory, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))

	var data struct {
		Items []models.AttendanceItem `json:"items"`
	}
	env, err := c.do(ctx, http.MethodGet, "/api/attendance/me?"+q.Encode(), nil, &data)
	if err != nil {
		return nil, err
	}
	history := &models.AttendanceHistory{Items: data.Items}
	if history.Items == nil {
		history.Items = []models.AttendanceItem{}
	}
	if env.Meta != nil {
		history.Meta = *env.Meta
	}
	return history, nil
}

// SubmitScan hands a scanned QR value to the Attendance API.
func (c *Client) SubmitScan(ctx context.Context, qr string) (*models.ScanResult, error) {
	var result models.ScanResult
	if _, err := c.do(ctx, http.MethodPost, "/api/security/scan-attendance", models.QRCodeScanPayload{QR: qr}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Login(ctx context.Context, payload models.UserLoginPayload) (*models.LoginData, error) {
	var data models.LoginData
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", payload, &data); err != nil {
		return nil, err
	}
	if data.Token == "" {
		return nil, fmt.Errorf("%w: token kosong", ErrBadResponse)
	}
	return &data, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if _, err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (*models.APIEnvelope, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("gagal encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gagal menghubungi attendance API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("gagal membaca respons attendance API: %w", err)
	}

	var env models.APIEnvelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			RetryAfter: resp.Header.Get("Retry-After"),
		}
		if decodeErr == nil && env.Message != "" {
			apiErr.Message = env.Message
		}
		return nil, apiErr
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, decodeErr)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
	}
	return &env, nil
}

// StatusOf returns the HTTP status carried by err, or 0 when the request
// never got a response.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
