package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"invisifeed/pkg/config"
	"invisifeed/pkg/utils"
)

// GSTINVerifier checks an Indian GST identification number against the
// configured lookup API. Format validation happens locally first so
// obviously bad input never hits the upstream.
type GSTINVerifier interface {
	Verify(ctx context.Context, gstin string) (bool, error)
}

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

func ValidGSTINFormat(gstin string) bool {
	return gstinPattern.MatchString(gstin)
}

type gstinService struct {
	verifyURL string
	apiKey    string
	client    *http.Client
}

func NewGSTINVerifier(cfg *config.Config) GSTINVerifier {
	return &gstinService{
		verifyURL: cfg.GSTIN.VerifyURL,
		apiKey:    cfg.GSTIN.ApiKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type gstinLookupResponse struct {
	Valid  bool   `json:"valid"`
	Status string `json:"sts"`
}

func (g *gstinService) Verify(ctx context.Context, gstin string) (bool, error) {
	if !ValidGSTINFormat(gstin) {
		return false, nil
	}
	if g.verifyURL == "" {
		// No lookup API configured; format check is the best we can do.
		return false, nil
	}

	url := fmt.Sprintf("%s/%s", g.verifyURL, gstin)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return false, utils.ErrUpstreamFailure
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, utils.ErrUpstreamFailure
	}

	var out gstinLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, utils.ErrUpstreamFailure
	}
	return out.Valid || out.Status == "Active", nil
}
