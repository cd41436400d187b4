// Package datagov implements the impact source against the data.gov.in
// open-data API. Each sector tag maps to one published resource; all
// sectors share a single API key and rate limit.
package datagov

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driven"
)

const (
	// DefaultBaseURL is the data.gov.in resource API root.
	DefaultBaseURL = "https://api.data.gov.in"

	// DefaultRecordLimit caps the records fetched per sector.
	DefaultRecordLimit = 50

	// maxAttempts is how many times one sector fetch is tried before
	// giving up. Some ministry datasets are slow and flaky.
	maxAttempts = 3

	retryDelay     = 3 * time.Second
	requestTimeout = 60 * time.Second
)

// DefaultResources maps sector tags to data.gov.in resource IDs.
// Some are 36-character UUIDs, others are legacy slug identifiers;
// the API accepts both forms.
var DefaultResources = map[string]string{
	// Agriculture
	"Agri_Mandi_Prices":        "current-daily-price-various-commodities-various-markets-mandi",
	"PM_KISAN_Beneficiaries":   "39439683-eb37-49f1-b2e4-0919cf1c7360",
	"Fertilizer_Usage_State":   "state-ut-wise-consumption-fertilizers-nitrogen-phosphate-potash",
	"Agri_Infrastructure_Fund": "Starred-Question-Reply-28-03-2025",
	"PM_Fasal_Bima_Claims":     "state-ut-wise-details-claims-paid-under-pmfby",

	// Healthcare
	"Health_Infra_PMABHIM":      "e6d8e391-2f91-4d41-8ea9-4a17286a089d",
	"HMIS_Monthly_Indicators":   "performance-key-health-management-information-system-hmis-indicators",
	"Health_Staff_Availability": "state-ut-wise-availability-doctors-specialists-community-health-centres",
	"Hospital_Beds_Public":      "state-ut-wise-number-government-hospitals-and-beds-rural-and-urban",
	"Maternal_Health_Stats":     "state-ut-wise-details-maternal-mortality-ratio-mmr",

	// Energy
	"Renewable_Implementation": "823f4b46-48d4-4cff-b3ba-2656fcf7383b",
	"Solar_Rooftop_Growth":     "state-ut-wise-physical-progress-solar-rooftop-programme",
	"Power_Supply_Peak":        "state-ut-wise-power-supply-position-energy-and-peak",
	"Village_Electrification":  "state-ut-wise-details-villages-electrified-under-deendayal-upadhyaya-gram-jyoti-yojana",

	// Finance
	"State_Revenue_Receipts":  "state-wise-total-revenue-receipt-percentage-gsdp",
	"MSME_Daily_Udyam":        "social-category-wise-total-micro-small-and-medium-enterprises-msmes",
	"PM_Jan_Dhan_Accounts":    "state-ut-wise-number-jan-dhan-accounts-and-deposits",
	"Social_Sector_Spending":  "social-allocation-ratio-social-sector-expenditure",
	"Digital_Payments_Volume": "state-ut-wise-digital-transactions-volume-and-value",

	// Education
	"Gross_Enrollment_Ratio": "09731bbd-b62d-42f5-8604-bc56625e84e3",
	"Tribal_Edu_Funds_EMRS":  "year-wise-details-fund-allocation-under-eklavya-model-residential-school-emrs-scheme",
	"Higher_Edu_AISHE":       "state-ut-wise-enrolment-higher-education-aishe",
	"School_Teacher_UDISE":   "Teachers-by-Gender-Academic-Qualification-UDISE",

	// Infrastructure
	"Smart_City_Financials": "smart-cities-mission-physical-and-financial-progress",
	"Housing_PMAY_Urban":    "aaa29e12-76da-4419-88a1-9641da587cef",
	"Water_Sanitation_JJM":  "state-ut-wise-central-fund-allocated-jjm",
	"Road_Accident_Deaths":  "state-ut-city-wise-and-place-occurrence-wise-road-accident-deaths",
}

// Config holds data.gov.in source configuration.
type Config struct {
	BaseURL string
	APIKey  string

	// Resources maps sector tags to resource IDs. Empty uses
	// DefaultResources.
	Resources map[string]string

	// Limit caps the records fetched per sector. Zero uses
	// DefaultRecordLimit.
	Limit int

	HTTPClient *http.Client
}

// Source is a data.gov.in implementation of driven.ImpactSource.
type Source struct {
	baseURL   string
	apiKey    string
	resources map[string]string
	limit     int
	client    *http.Client
	limiter   *rate.Limiter
	sleep     func(ctx context.Context, d time.Duration) error
}

// Ensure Source implements the interface.
var _ driven.ImpactSource = (*Source)(nil)

// NewSource creates a data.gov.in impact source.
func NewSource(cfg Config) *Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Resources == nil {
		cfg.Resources = DefaultResources
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultRecordLimit
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: requestTimeout}
	}

	return &Source{
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		resources: cfg.Resources,
		limit:     cfg.Limit,
		client:    cfg.HTTPClient,
		// The portal throttles aggressive clients; one request per
		// second keeps a full sync well under its quota.
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		sleep:   sleepCtx,
	}
}

// Sectors returns the configured sector tags, sorted for stable
// iteration order.
func (s *Source) Sectors() []string {
	sectors := make([]string, 0, len(s.resources))
	for sector := range s.resources {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)
	return sectors
}

// Fetch returns the outcome records for one sector, retrying transient
// failures before giving up.
func (s *Source) Fetch(ctx context.Context, sector string) ([]domain.ImpactRecord, error) {
	resourceID, ok := s.resources[sector]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sector %q", domain.ErrInvalidInput, sector)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		records, err := s.fetchOnce(ctx, sector, resourceID)
		if err == nil {
			return records, nil
		}
		lastErr = err

		if attempt < maxAttempts {
			if err := s.sleep(ctx, retryDelay); err != nil {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("fetching %s after %d attempts: %w", sector, maxAttempts, lastErr)
}

func (s *Source) fetchOnce(ctx context.Context, sector, resourceID string) ([]domain.ImpactRecord, error) {
	endpoint := fmt.Sprintf("%s/resource/%s", s.baseURL, url.PathEscape(resourceID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	q := req.URL.Query()
	q.Set("api-key", s.apiKey)
	q.Set("format", "json")
	q.Set("limit", fmt.Sprintf("%d", s.limit))
	req.URL.RawQuery = q.Encode()

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling data.gov.in: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("data.gov.in returned %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Records []map[string]any `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	records := make([]domain.ImpactRecord, 0, len(payload.Records))
	for _, raw := range payload.Records {
		records = append(records, domain.ImpactRecord{
			Sector: sector,
			Region: stateFrom(raw),
			Raw:    raw,
		})
	}
	return records, nil
}

// stateFrom extracts the state from a raw record. Different ministries
// publish the field under different names.
func stateFrom(raw map[string]any) string {
	for _, field := range []string{"state", "state_name", "state_ut"} {
		if v, ok := raw[field].(string); ok && v != "" {
			return v
		}
	}
	return domain.ScopeNational
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
