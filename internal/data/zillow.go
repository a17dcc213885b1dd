package data

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"str-underwriter/internal/model"
)

const (
	defaultZillowBaseURL = "https://zillow-com1.p.rapidapi.com"
	zillowRapidAPIHost   = "zillow-com1.p.rapidapi.com"
)

// ErrNoZPID is returned when a listing URL carries no Zillow property id.
var ErrNoZPID = errors.New("could not extract zpid from url")

var zpidPattern = regexp.MustCompile(`/([0-9]+)_zpid`)

// ExtractZPID pulls the numeric property id out of a Zillow listing URL,
// e.g. https://www.zillow.com/homedetails/123-Main-St/2077829465_zpid/.
func ExtractZPID(listingURL string) (string, error) {
	m := zpidPattern.FindStringSubmatch(listingURL)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrNoZPID, listingURL)
	}
	return m[1], nil
}

// ZillowClient looks up listings through the RapidAPI Zillow endpoint.
type ZillowClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// NewZillowClient creates a new lookup client.
// If baseURL is empty, defaults to the RapidAPI host.
func NewZillowClient(apiKey string, baseURL string) *ZillowClient {
	if baseURL == "" {
		baseURL = defaultZillowBaseURL
	}
	return &ZillowClient{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// LookupError is a non-success answer from the property-data service.
type LookupError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
}

func (e *LookupError) Error() string {
	return e.Message
}

// zillowProperty is the wire shape; address arrives either as a string or
// as an object depending on the endpoint version.
type zillowProperty struct {
	ZPID             json.RawMessage `json:"zpid"`
	Address          json.RawMessage `json:"address"`
	Price            float64         `json:"price"`
	Bedrooms         float64         `json:"bedrooms"`
	Bathrooms        float64         `json:"bathrooms"`
	LivingArea       float64         `json:"livingArea"`
	PropertyTaxRate  float64         `json:"propertyTaxRate"`
	HOAFee           *float64        `json:"hoaFee"`
	TaxAssessedValue float64         `json:"taxAssessedValue"`
}

type zillowAddress struct {
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zipcode       string `json:"zipcode"`
}

func (z zillowProperty) toModel() model.Property {
	p := model.Property{
		ZPID:             strings.Trim(string(z.ZPID), `"`),
		Price:            z.Price,
		Bedrooms:         z.Bedrooms,
		Bathrooms:        z.Bathrooms,
		LivingArea:       z.LivingArea,
		PropertyTaxRate:  z.PropertyTaxRate,
		TaxAssessedValue: z.TaxAssessedValue,
	}
	if z.HOAFee != nil {
		p.HOAFee = *z.HOAFee
	}
	p.Address = decodeAddress(z.Address)
	return p
}

func decodeAddress(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var a zillowAddress
	if err := json.Unmarshal(raw, &a); err != nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, v := range []string{a.StreetAddress, a.City, strings.TrimSpace(a.State + " " + a.Zipcode)} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

// DecodeProperty parses a listing payload in the lookup service's format.
func DecodeProperty(raw []byte) (*model.Property, error) {
	var z zillowProperty
	if err := json.Unmarshal(raw, &z); err != nil {
		return nil, err
	}
	p := z.toModel()
	return &p, nil
}

// FetchProperty fetches one listing by zpid. Failures are not retried.
//
// If caching is enabled (ENABLE_PROPERTY_CACHE=true), responses may be served
// from the in-memory cache. Caching is for local development only.
func (c *ZillowClient) FetchProperty(ctx context.Context, zpid string) (*model.Property, error) {
	if err := c.validateAPIKey(); err != nil {
		return nil, err
	}
	if zpid == "" {
		return nil, fmt.Errorf("zpid is required")
	}

	cacheKey := lookupCacheKey(c.APIKey, zpid)
	cache := GetCache()
	if cache != nil {
		if cached, found := cache.Get(cacheKey); found {
			log.Printf("[Zillow] Cache hit: zpid=%s", zpid)
			return cached, nil
		}
	}

	u, err := url.Parse(c.BaseURL + "/property")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("zpid", zpid)
	u.RawQuery = q.Encode()

	log.Printf("[Zillow] Request: GET %s (zpid=%s)", u.Path, zpid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.APIKey)
	req.Header.Set("X-RapidAPI-Host", zillowRapidAPIHost)
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		log.Printf("[Zillow] Request failed: %v (duration: %v)", err, duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[Zillow] Response: %s (duration: %v, zpid=%s)", resp.Status, duration, zpid)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden:
		return nil, &LookupError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_API_KEY",
			Message:    "Invalid API key or insufficient permissions",
		}
	case http.StatusUnauthorized:
		return nil, &LookupError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "Unauthorized: Invalid API key",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		log.Printf("[Zillow] Error: 429 Rate Limit Exceeded - Retry after: %s (zpid=%s)", retryAfter, zpid)
		return nil, &LookupError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	case http.StatusNotFound:
		return nil, &LookupError{
			StatusCode: resp.StatusCode,
			Code:       "PROPERTY_NOT_FOUND",
			Message:    fmt.Sprintf("No property found for zpid %s", zpid),
		}
	default:
		log.Printf("[Zillow] Error: %s (zpid=%s)", resp.Status, zpid)
		return nil, &LookupError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var wire zillowProperty
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		log.Printf("[Zillow] Error decoding response: %v (zpid=%s)", err, zpid)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	result := wire.toModel()
	if result.ZPID == "" {
		result.ZPID = zpid
	}

	if cache != nil {
		cache.Set(cacheKey, &result)
	}

	return &result, nil
}

// lookupCacheKey scopes cached listings to the key that fetched them, so a
// different key never reads another key's responses.
func lookupCacheKey(apiKey, zpid string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:8]) + ":" + zpid
}

// FetchByURL extracts the zpid from listingURL and fetches it.
func (c *ZillowClient) FetchByURL(ctx context.Context, listingURL string) (*model.Property, error) {
	zpid, err := ExtractZPID(listingURL)
	if err != nil {
		return nil, err
	}
	return c.FetchProperty(ctx, zpid)
}

func (c *ZillowClient) validateAPIKey() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return &LookupError{
			StatusCode: 0,
			Code:       "MISSING_API_KEY",
			Message:    "API key is required",
		}
	}
	return nil
}
