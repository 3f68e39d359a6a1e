package templates

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/letterkit/letterkit/pkg/blob"
	"github.com/letterkit/letterkit/pkg/email"
	"github.com/letterkit/letterkit/pkg/quota"
	"github.com/letterkit/letterkit/pkg/render"
	"github.com/letterkit/letterkit/pkg/store"
)

// TierResolver reports the subscription tier of a tenant. Deployments wire
// this to their billing system; the default treats everyone as free tier.
type TierResolver func(ctx context.Context, tenantID uuid.UUID) quota.Tier

// Service holds the collaborators behind the template API.
type Service struct {
	docs     store.DocumentStore
	blobs    blob.Store
	renderer *render.Engine
	quotas   *quota.Service
	mailer   email.Sender
	tiers    TierResolver
	log      *slog.Logger
}

type Option func(*Service)

// WithMailer enables test email delivery on template previews. Without it,
// preview requests asking for a test email are rejected.
func WithMailer(sender email.Sender) Option {
	return func(s *Service) {
		s.mailer = sender
	}
}

// WithTierResolver sets the billing lookup for tenant tiers.
func WithTierResolver(resolver TierResolver) Option {
	return func(s *Service) {
		if resolver != nil {
			s.tiers = resolver
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func New(docs store.DocumentStore, blobs blob.Store, renderer *render.Engine, quotas *quota.Service, opts ...Option) *Service {
	s := &Service{
		docs:     docs,
		blobs:    blobs,
		renderer: renderer,
		quotas:   quotas,
		tiers: func(context.Context, uuid.UUID) quota.Tier {
			return quota.TierFree
		},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func templateContentKey(tenantID, id uuid.UUID) string {
	return fmt.Sprintf("tenants/%s/templates/%s.hbs", tenantID, id)
}

func snippetContentKey(tenantID, id uuid.UUID) string {
	return fmt.Sprintf("tenants/%s/snippets/%s.hbs", tenantID, id)
}
