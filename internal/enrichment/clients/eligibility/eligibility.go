// Package eligibility calls the institutional student validation service.
package eligibility

import (
	"context"

	"unibus/internal/enrichment/clients/adapter"
	"unibus/internal/enrichment/ports"
	"unibus/internal/enrichment/tracer"
)

const ProviderID = "eligibility"

type validateRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Registration string `json:"registration"`
}

type validateResponse struct {
	Eligible *bool  `json:"eligible"`
	Reason   string `json:"reason"`
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

func New(a *adapter.Adapter, opts ...Option) *Client {
	if a == nil {
		panic("eligibility.New: adapter is required")
	}
	c := &Client{http: a, tracer: tracer.NewNoop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate asks the service whether the person is an eligible student.
// Any failure, including a body without the eligible flag, yields
// ServiceReachable=false.
func (c *Client) Validate(ctx context.Context, name, email, token string) ports.EligibilityVerdict {
	ctx, span := c.tracer.Start(ctx, tracer.SpanEligibilityCall,
		tracer.String(tracer.AttrEmailHash, tracer.HashEmail(email)),
	)

	resp, err := c.http.PostJSON(ctx, "/validate", validateRequest{
		Name:         name,
		Email:        email,
		Registration: token,
	})
	if err != nil {
		span.SetAttributes(tracer.Bool(tracer.AttrServiceReachable, false))
		span.End(err)
		return ports.EligibilityVerdict{}
	}

	var body validateResponse
	if err := resp.DecodeJSON(ProviderID, &body); err != nil {
		span.End(c.http.Fail(ctx, err))
		return ports.EligibilityVerdict{}
	}
	if body.Eligible == nil {
		err := c.http.Fail(ctx, adapter.NewProviderError(adapter.ErrorContractMismatch, ProviderID, "response missing eligible flag", nil))
		span.End(err)
		return ports.EligibilityVerdict{}
	}

	span.SetAttributes(
		tracer.Bool(tracer.AttrServiceReachable, true),
		tracer.Bool(tracer.AttrEligible, *body.Eligible),
	)
	span.End(nil)
	return ports.EligibilityVerdict{
		Eligible:         *body.Eligible,
		Reason:           body.Reason,
		ServiceReachable: true,
	}
}

var _ ports.EligibilityValidator = (*Client)(nil)
