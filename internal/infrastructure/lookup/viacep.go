package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/softhouse/customers/internal/domain/customer"
	"github.com/softhouse/customers/internal/infrastructure/config"
)

const maxResponseSize = 1 << 20 // 1MB

// ViaCEPClient queries the ViaCEP postal code service.
type ViaCEPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewViaCEPClient creates a ViaCEP client from the lookup configuration
func NewViaCEPClient(cfg *config.LookupConfig) *ViaCEPClient {
	return &ViaCEPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// viaCEPResponse is the wire format returned by the service. Unknown
// postal codes come back as 200 with {"erro": true}.
type viaCEPResponse struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	StateCode    string `json:"uf"`
	CityCode     string `json:"ibge"`
	GeoAreaCode  string `json:"gia"`
	DialCode     string `json:"ddd"`
	TaxRegion    string `json:"siafi"`
	Erro         bool   `json:"erro"`
}

// QueryPostalCode fetches the address for a postal code. A postal code
// the service does not know yields ErrUnknownPostalCode; transport and
// decoding failures are returned as-is for the caller to classify.
func (c *ViaCEPClient) QueryPostalCode(ctx context.Context, postalCode string) (*customer.Address, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, postalCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	// ViaCEP answers 400 for malformed postal codes
	if resp.StatusCode == http.StatusBadRequest {
		return nil, customer.ErrUnknownPostalCode
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lookup service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read lookup response: %w", err)
	}

	var payload viaCEPResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode lookup response: %w", err)
	}
	if payload.Erro {
		return nil, customer.ErrUnknownPostalCode
	}

	// The requested code is kept as the identity so cache and store
	// lookups by the same code always hit.
	return &customer.Address{
		PostalCode:    postalCode,
		Street:        payload.Street,
		Complement:    payload.Complement,
		Neighborhood:  payload.Neighborhood,
		City:          payload.City,
		StateCode:     payload.StateCode,
		CityCode:      payload.CityCode,
		GeoAreaCode:   payload.GeoAreaCode,
		DialCode:      payload.DialCode,
		TaxRegionCode: payload.TaxRegion,
		CreatedAt:     time.Now(),
	}, nil
}

// Ensure ViaCEPClient implements PostalLookup
var _ customer.PostalLookup = (*ViaCEPClient)(nil)
