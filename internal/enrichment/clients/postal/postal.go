// Package postal resolves Brazilian postal codes (CEP) through a
// ViaCEP-compatible API.
package postal

import (
	"context"
	"net/http"

	"unibus/internal/enrichment/clients/adapter"
	"unibus/internal/enrichment/ports"
	"unibus/internal/enrichment/tracer"
	"unibus/pkg/validation"
)

const ProviderID = "postal"

// DefaultBaseURL is the public ViaCEP endpoint.
const DefaultBaseURL = "https://viacep.com.br/ws"

// viaCEPResponse mirrors the ViaCEP JSON body. Erro is set for unknown codes.
type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	IBGE       string `json:"ibge"`
	Erro       any    `json:"erro"`
}

type Client struct {
	http   *adapter.Adapter
	tracer tracer.Tracer
}

type Option func(*Client)

func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// New builds a client over a. The adapter must pass 400 through, since
// ViaCEP answers 400 for malformed codes; NewAdapterConfig does that.
func New(a *adapter.Adapter, opts ...Option) *Client {
	if a == nil {
		panic("postal.New: adapter is required")
	}
	c := &Client{http: a, tracer: tracer.NewNoop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewAdapterConfig returns the adapter configuration the postal client expects.
func NewAdapterConfig(cfg adapter.Config) adapter.Config {
	cfg.ID = ProviderID
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.PassStatuses = []int{http.StatusBadRequest}
	return cfg
}

// Lookup resolves a postal code. Codes that are not 8 digits once separators
// are removed are rejected without a network call.
func (c *Client) Lookup(ctx context.Context, code string) ports.PostalResolution {
	code = validation.NormalizePostalCode(code)
	if !validation.IsNormalizedPostalCode(code) {
		return ports.PostalResolution{Reason: ports.ReasonPostalMalformed}
	}

	ctx, span := c.tracer.Start(ctx, tracer.SpanPostalLookup, tracer.String(tracer.AttrPostalCode, code))
	resp, err := c.http.Get(ctx, "/"+code+"/json/")
	if err != nil {
		span.SetAttributes(tracer.Bool(tracer.AttrServiceReachable, false))
		span.End(err)
		return ports.PostalResolution{Reason: ports.ReasonPostalUnavailable}
	}
	defer span.End(nil)

	if resp.StatusCode == http.StatusBadRequest {
		span.SetAttributes(tracer.Bool(tracer.AttrPostalValid, false))
		return ports.PostalResolution{Reason: ports.ReasonPostalNotFound}
	}

	var body viaCEPResponse
	if err := resp.DecodeJSON(ProviderID, &body); err != nil {
		_ = c.http.Fail(ctx, err)
		span.SetAttributes(tracer.Bool(tracer.AttrServiceReachable, false))
		return ports.PostalResolution{Reason: ports.ReasonPostalUnavailable}
	}
	if isErro(body.Erro) {
		span.SetAttributes(tracer.Bool(tracer.AttrPostalValid, false))
		return ports.PostalResolution{Reason: ports.ReasonPostalNotFound}
	}
	if body.Localidade == "" {
		_ = c.http.Fail(ctx, adapter.NewProviderError(adapter.ErrorContractMismatch, ProviderID, "response missing locality", nil))
		span.SetAttributes(tracer.Bool(tracer.AttrServiceReachable, false))
		return ports.PostalResolution{Reason: ports.ReasonPostalUnavailable}
	}

	span.SetAttributes(tracer.Bool(tracer.AttrPostalValid, true))
	postalCode := body.CEP
	if postalCode == "" {
		postalCode = code
	}
	return ports.PostalResolution{
		Valid:        true,
		Locality:     body.Localidade,
		RegionCode:   body.IBGE,
		State:        body.UF,
		Neighborhood: body.Bairro,
		Street:       body.Logradouro,
		PostalCode:   postalCode,
	}
}

// isErro accepts both `"erro": true` and the older `"erro": "true"`.
func isErro(v any) bool {
	switch e := v.(type) {
	case bool:
		return e
	case string:
		return e == "true"
	default:
		return false
	}
}

var _ ports.PostalLookup = (*Client)(nil)
