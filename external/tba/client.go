package tba

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/champsline/bracket-league/internal/domain/scoring"
	"github.com/champsline/bracket-league/internal/domain/team"
	"github.com/champsline/bracket-league/internal/platform/logging"
	"github.com/champsline/bracket-league/internal/platform/resilience"
	"github.com/champsline/bracket-league/internal/usecase"
)

const defaultBaseURL = "https://www.thebluealliance.com/api/v3"

var errTBATransient = crerr.New("tba transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	AuthKey        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to The Blue Alliance read API. Concurrent fetches of the same
// path are collapsed through a single flight group, and repeated provider
// failures trip a circuit breaker so scoring runs fail fast.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	authKey        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		authKey:        strings.TrimSpace(cfg.AuthKey),
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// EventPlayoffMatches fetches an event's matches and keeps the completed
// playoff rounds in canonical form.
func (c *Client) EventPlayoffMatches(ctx context.Context, eventKey string) ([]scoring.PlayoffMatch, error) {
	var matches []matchSimple
	if err := c.doJSON(ctx, fmt.Sprintf("/event/%s/matches/simple", eventKey), &matches); err != nil {
		return nil, fmt.Errorf("fetch matches event=%s: %w", eventKey, err)
	}
	return toPlayoffMatches(matches), nil
}

// EventRankings fetches an event's qualification rankings in canonical form.
func (c *Client) EventRankings(ctx context.Context, eventKey string) ([]scoring.Ranking, error) {
	var envelope rankingsEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/event/%s/rankings", eventKey), &envelope); err != nil {
		return nil, fmt.Errorf("fetch rankings event=%s: %w", eventKey, err)
	}
	return toRankings(envelope.Rankings), nil
}

// EventAlliances fetches an event's playoff alliances in canonical form.
func (c *Client) EventAlliances(ctx context.Context, eventKey string) ([]scoring.AllianceResult, error) {
	var alliances []allianceRow
	if err := c.doJSON(ctx, fmt.Sprintf("/event/%s/alliances", eventKey), &alliances); err != nil {
		return nil, fmt.Errorf("fetch alliances event=%s: %w", eventKey, err)
	}
	return toAllianceResults(alliances), nil
}

// EventTeamKeys fetches the keys of every team attending an event.
func (c *Client) EventTeamKeys(ctx context.Context, eventKey string) ([]string, error) {
	var keys []string
	if err := c.doJSON(ctx, fmt.Sprintf("/event/%s/teams/keys", eventKey), &keys); err != nil {
		return nil, fmt.Errorf("fetch team keys event=%s: %w", eventKey, err)
	}
	return keys, nil
}

// Teams fetches one page of the provider's team directory. Pages are empty
// past the end of the directory.
func (c *Client) Teams(ctx context.Context, page int) ([]team.Team, error) {
	if page < 0 {
		return nil, fmt.Errorf("page must not be negative")
	}
	var rows []teamRow
	if err := c.doJSON(ctx, fmt.Sprintf("/teams/%d", page), &rows); err != nil {
		return nil, fmt.Errorf("fetch teams page=%d: %w", page, err)
	}
	return toTeams(rows), nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "tba circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: competition data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, c.baseURL+path)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errTBATransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("X-TBA-Auth-Key", c.authKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errTBATransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTBATransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errTBATransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "tba request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
