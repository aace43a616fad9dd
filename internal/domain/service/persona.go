package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PersonaVerifier checks assertions against a remote verifier service.
type PersonaVerifier struct {
	endpoint string
	client   *http.Client
}

func NewPersonaVerifier(endpoint string) *PersonaVerifier {
	return &PersonaVerifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *PersonaVerifier) Verify(ctx context.Context, assertion, audience string) (*VerificationResult, error) {
	form := url.Values{}
	form.Set("assertion", assertion)
	form.Set("audience", audience)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body struct {
		Status string `json:"status"`
		Email  string `json:"email"`
		Reason string `json:"reason"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	if body.Status != "okay" {
		return nil, fmt.Errorf("assertion verification failed: %s", body.Reason)
	}

	return &VerificationResult{Email: body.Email}, nil
}
