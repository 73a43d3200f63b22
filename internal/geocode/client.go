package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shenikar/hydrant_inspection_system/internal/config"
	"github.com/shenikar/hydrant_inspection_system/internal/models"
	"github.com/sirupsen/logrus"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleClient - клиент обратного геокодирования через Google Maps Geocoding API
type GoogleClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewGoogleClient создает новый клиент обратного геокодирования
func NewGoogleClient(cfg *config.Config, logger *logrus.Logger) *GoogleClient {
	return &GoogleClient{
		apiKey:  cfg.GoogleMapsAPIKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.GeocodeTimeout,
		},
		logger: logger,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
}

// ResolveAddress возвращает нормализованный японский адрес точки.
// Любой сбой (сеть, статус не OK, пустой список) сворачивается в
// ErrAddressResolutionFailed - вызывающий переходит к ручному вводу.
func (c *GoogleClient) ResolveAddress(ctx context.Context, lat, lon float64) (string, error) {
	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", lat, lon))
	params.Set("language", "ja")
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Error("Reverse geocoding request failed")
		return "", fmt.Errorf("geocode request: %w", models.ErrAddressResolutionFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithField("status_code", resp.StatusCode).Error("Reverse geocoding returned non-OK status")
		return "", fmt.Errorf("geocode status %d: %w", resp.StatusCode, models.ErrAddressResolutionFailed)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.WithError(err).Error("Failed to decode geocode response")
		return "", fmt.Errorf("geocode decode: %w", models.ErrAddressResolutionFailed)
	}
	if body.Status != "OK" || len(body.Results) == 0 {
		c.logger.WithField("api_status", body.Status).Warn("Reverse geocoding found no address")
		return "", fmt.Errorf("geocode api status %q: %w", body.Status, models.ErrAddressResolutionFailed)
	}

	return NormalizeAddress(body.Results[0].FormattedAddress), nil
}

// WithBaseURL переопределяет адрес API (используется в тестах)
func (c *GoogleClient) WithBaseURL(baseURL string) *GoogleClient {
	c.baseURL = baseURL
	return c
}
