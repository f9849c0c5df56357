package random

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/mealmax/internal/platform/errors"
	"github.com/louisbranch/mealmax/internal/platform/timeouts"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

// DefaultURL asks random.org for one two-digit decimal fraction as plain text.
const DefaultURL = "https://www.random.org/decimal-fractions/?num=1&dec=2&col=1&format=plain&rnd=new"

// maxBodyBytes bounds how much of a response is read; a single fraction is a
// handful of bytes.
const maxBodyBytes = 64

var (
	// ErrUnavailable indicates the remote service could not produce a value in
	// time. Callers may retry.
	ErrUnavailable = apperrors.New(apperrors.CodeRandomUnavailable, "random number service unavailable")
	// ErrOutOfRange indicates the service answered with a value outside [0,1).
	ErrOutOfRange = apperrors.New(apperrors.CodeRandomOutOfRange, "random number out of range")
)

var tracer = otel.Tracer("github.com/louisbranch/mealmax/internal/random")

// Remote fetches random values from an HTTP endpoint that answers with a
// single plain-text decimal fraction.
type Remote struct {
	url     string
	client  *http.Client
	timeout time.Duration
}

// RemoteOption customizes a Remote.
type RemoteOption func(*Remote)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(r *Remote) {
		if client != nil {
			r.client = client
		}
	}
}

// WithTimeout bounds every NextRandom call. Non-positive values keep the
// default.
func WithTimeout(timeout time.Duration) RemoteOption {
	return func(r *Remote) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// NewRemote builds a client for url, or DefaultURL when url is blank.
func NewRemote(url string, opts ...RemoteOption) *Remote {
	url = strings.TrimSpace(url)
	if url == "" {
		url = DefaultURL
	}
	r := &Remote{
		url:     url,
		client:  http.DefaultClient,
		timeout: timeouts.RandomFetch,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NextRandom fetches one value in [0,1).
//
// Transport failures, non-2xx answers, unparsable bodies and timeouts all
// surface as ErrUnavailable with the cause attached. A parsed value outside
// [0,1) is ErrOutOfRange.
func (r *Remote) NextRandom(ctx context.Context) (value float64, err error) {
	ctx, span := tracer.Start(ctx, "random.Remote.NextRandom")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Float64("random.value", value))
		}
		span.End()
	}()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return 0, fmt.Errorf("build random request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeRandomUnavailable, "fetch random number", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, apperrors.Wrap(apperrors.CodeRandomUnavailable, "fetch random number",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeRandomUnavailable, "read random number", err)
	}
	text := strings.TrimSpace(string(body))
	value, err = strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeRandomUnavailable, "parse random number", err)
	}
	if math.IsNaN(value) || value < 0 || value >= 1 {
		return 0, apperrors.WithMetadata(apperrors.CodeRandomOutOfRange,
			fmt.Sprintf("random number %s out of range [0,1)", text),
			map[string]string{"Value": text})
	}
	return value, nil
}
