package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/ruth8415/TeamTasks/logging"
	"github.com/ruth8415/TeamTasks/utils"
)

const maxErrorBody = 64 << 10

// Client performs JSON requests against the TeamTasks REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	session    *Session
}

// NewClient builds a Client. session may be nil for unauthenticated use.
func NewClient(baseURL string, httpClient *http.Client, breaker *gobreaker.CircuitBreaker, session *Session) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		breaker:    breaker,
		session:    session,
	}
}

// NewBreaker returns the circuit breaker guarding calls to the API. It opens after
// more than maxFailures consecutive transport errors or 5xx responses.
func NewBreaker(name string, maxFailures uint32, timeout time.Duration) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
}

func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

type rawResponse struct {
	status int
	body   []byte
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
	}

	requestID := uuid.New().String()
	log := logging.Logger.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"request_id": requestID,
	})

	send := func() (interface{}, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return nil, fmt.Errorf("error creating request to %s: %w", path, err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", requestID)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("error sending request to %s: %w", path, err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("error reading response from %s: %w", path, err)
		}
		// 5xx counts against the breaker, 4xx is the caller's problem
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, utils.NewAPIError(resp.StatusCode, truncate(data))
		}
		return &rawResponse{status: resp.StatusCode, body: data}, nil
	}

	var (
		result interface{}
		err    error
	)
	if c.breaker != nil {
		result, err = c.breaker.Execute(send)
	} else {
		result, err = send()
	}
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			log.Warnf("Event ID: API_CIRCUIT_OPEN, Description: Request to %s rejected by circuit breaker", path)
		} else {
			log.Errorf("Event ID: API_REQUEST_FAILED, Description: %s %s failed: %v", method, path, err)
		}
		return err
	}

	resp := result.(*rawResponse)
	log = log.WithField("status", resp.status)

	if resp.status >= http.StatusBadRequest {
		if resp.status == http.StatusUnauthorized && c.session != nil {
			log.Warn("Event ID: API_UNAUTHORIZED, Description: Session rejected by the API, clearing stored token")
			if clearErr := c.session.Clear(); clearErr != nil {
				log.Errorf("Event ID: SESSION_CLEAR_FAILED, Description: %v", clearErr)
			}
		} else {
			log.Warnf("Event ID: API_REQUEST_REJECTED, Description: %s %s returned %d", method, path, resp.status)
		}
		return utils.NewAPIError(resp.status, truncate(resp.body))
	}

	log.Debugf("Event ID: API_REQUEST_OK, Description: %s %s", method, path)

	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func truncate(body []byte) []byte {
	if len(body) > maxErrorBody {
		return body[:maxErrorBody]
	}
	return body
}
