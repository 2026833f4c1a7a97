package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"taskmanager/logging"
)

const defaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

type captchaResponse struct {
	Success     bool     `json:"success"`
	ChallengeTs string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// CaptchaVerifier checks reCAPTCHA tokens against Google's verify endpoint.
// The call goes through a circuit breaker so a slow or failing upstream does
// not drag registration down with it.
type CaptchaVerifier struct {
	secret    string
	verifyURL string
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker
}

// NewCaptchaVerifier returns nil when no secret is configured, which disables
// captcha checks entirely.
func NewCaptchaVerifier(secret string, client *http.Client) *CaptchaVerifier {
	if secret == "" {
		return nil
	}
	if client == nil {
		client = NewHTTPClient()
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "CaptchaVerifyCB",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
	return &CaptchaVerifier{
		secret:    secret,
		verifyURL: defaultVerifyURL,
		client:    client,
		breaker:   breaker,
	}
}

// Verify reports whether the token passed the challenge.
func (v *CaptchaVerifier) Verify(ctx context.Context, token string) (bool, error) {
	result, err := v.breaker.Execute(func() (interface{}, error) {
		data := url.Values{}
		data.Set("secret", v.secret)
		data.Set("response", token)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(data.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := v.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("captcha verify request: %w", err)
		}
		defer resp.Body.Close()

		var captchaResp captchaResponse
		if err := json.NewDecoder(resp.Body).Decode(&captchaResp); err != nil {
			return nil, fmt.Errorf("decode captcha response: %w", err)
		}
		return captchaResp, nil
	})
	if err != nil {
		return false, err
	}

	captchaResp := result.(captchaResponse)
	if !captchaResp.Success {
		logging.Logger.Warnf("Event ID: CAPTCHA_FAILED, Description: reCAPTCHA verification failed, error codes: %v", captchaResp.ErrorCodes)
	}
	return captchaResp.Success, nil
}
