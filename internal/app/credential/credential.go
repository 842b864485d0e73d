/*
Package credential exchanges a participant label and a room name for a signed session
credential at the token endpoint, and classifies every way that exchange can fail.

Failure kinds (all *errs.CustomError):

	ErrTokenEndpointMissing  markup response: the endpoint is absent or misrouted
	ErrTokenServer           non-success status with a JSON error message
	ErrTokenHTTP             non-success status without a usable message
	ErrTokenMissing          success status but no token in the body
	ErrTokenNetwork          the request could not be completed

No failure is retried.
*/
package credential

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"gatherly/internal/pkg/errs"
	"gatherly/internal/pkg/logx"
)

// Credential is the result of one successful exchange.
type Credential struct {
	Token     string
	Identity  string
	RoomName  string
	ServerURL string
}

// Requester is the capability the meeting workflow depends on.
type Requester interface {
	RequestToken(ctx context.Context, identity, roomName string) (*Credential, error)
}

// Client calls the token endpoint over HTTP.
type Client struct {
	endpoint   *url.URL
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient validates endpoint and builds a client whose requests time out after timeout.
func NewClient(endpoint string, timeout time.Duration) (*Client, error) {
	return NewClientWithHTTP(endpoint, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP is NewClient with a caller-supplied *http.Client.
func NewClientWithHTTP(endpoint string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid token endpoint %q: %w", endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("token endpoint %q must be absolute", endpoint)
	}

	return &Client{
		endpoint:   u,
		httpClient: httpClient,
		logger:     logx.Component("CredentialClient"),
	}, nil
}

// RequestToken performs GET <endpoint>?identity=..&roomName=.. and classifies the answer.
// If ctx ends before the answer arrives, ctx.Err() is returned unclassified.
func (c *Client) RequestToken(ctx context.Context, identity, roomName string) (*Credential, error) {
	u := *c.endpoint
	q := u.Query()
	q.Set("identity", identity)
	q.Set("roomName", roomName)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrTokenNetwork, err, err.Error())
	}
	req.Header.Set("Accept", "application/json")

	logger := c.logger.With().Str("identity", identity).Str("room_name", roomName).Logger()
	logger.Debug().Msg("Requesting session credential.")

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Info().Err(ctxErr).Msg("Credential request abandoned.")
			return nil, ctxErr
		}

		var urlErr *url.Error
		message := err.Error()
		if errors.As(err, &urlErr) {
			message = urlErr.Err.Error()
		}

		logger.Warn().Err(err).Msg("Credential request failed to complete.")
		return nil, errs.Wrap(errs.ErrTokenNetwork, err, message)
	}
	defer res.Body.Close()

	cred, err := Classify(res)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Warn().
			Err(err).
			Int("status", res.StatusCode).
			Str("content_type", res.Header.Get("Content-Type")).
			Dur("latency", time.Since(start)).
			Msg("Credential request rejected.")
		return nil, err
	}

	logger.Info().Dur("latency", time.Since(start)).Msg("Session credential issued.")
	return cred, nil
}
