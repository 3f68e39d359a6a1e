package quota

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
)

// Resource identifies a quota-limited resource type.
type Resource string

const (
	ResourceTemplate Resource = "template"
	ResourceSnippet  Resource = "snippet"
)

// UsageCounter counts existing documents per tenant. *store.MemoryStore,
// *store.PostgresStore and *store.MongoStore all satisfy it.
type UsageCounter interface {
	CountTemplates(ctx context.Context, tenantID uuid.UUID) (int64, error)
	CountSnippets(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// Usage is the current per-tenant document counts.
type Usage struct {
	Templates int64 `json:"templates"`
	Snippets  int64 `json:"snippets"`
}

// Check is the outcome of a single can-create decision.
type Check struct {
	Allowed   bool     `json:"allowed"`
	Current   int64    `json:"current"`
	Limit     int64    `json:"limit"`
	Remaining int64    `json:"remaining"`
	Type      Resource `json:"type"`
	Tier      Tier     `json:"tier"`
}

// ResourceStatus is the per-resource slice of a quota status report.
type ResourceStatus struct {
	Current    int64 `json:"current"`
	Limit      int64 `json:"limit"`
	Remaining  int64 `json:"remaining"`
	Percentage int   `json:"percentage"`
	CanCreate  bool  `json:"canCreate"`
}

// Overall summarizes a tenant's standing across both resources. NearLimit
// only trips at full saturation (100%), not at an earlier threshold.
type Overall struct {
	WithinLimits bool `json:"withinLimits"`
	NearLimit    bool `json:"nearLimit"`
}

// Status is the full quota report for a tenant.
type Status struct {
	Tier      Tier           `json:"tier"`
	Templates ResourceStatus `json:"templates"`
	Snippets  ResourceStatus `json:"snippets"`
	Overall   Overall        `json:"overall"`
}

// Suggestion proposes a tier upgrade with the limiting resource as reason.
type Suggestion struct {
	SuggestedTier Tier   `json:"suggestedTier"`
	Reason        string `json:"reason"`
}

// UpgradeOptions is the result of an upgrade-suggestion query.
type UpgradeOptions struct {
	HasUpgradeOptions bool         `json:"hasUpgradeOptions"`
	Suggestions       []Suggestion `json:"suggestions"`
}

// Upgrade reasons.
const (
	ReasonTemplateLimit  = "template_limit"
	ReasonSnippetLimit   = "snippet_limit"
	ReasonMultipleLimits = "multiple_limits"
)

// Service makes quota decisions for tenants.
type Service struct {
	counter UsageCounter
	limits  map[Tier]Limits
	cache   Cache
	log     *slog.Logger
}

// Option configures the quota service.
type Option func(*Service)

// WithTierLimits replaces the built-in tier table, e.g. with one loaded via
// LoadTierLimits.
func WithTierLimits(limits map[Tier]Limits) Option {
	return func(s *Service) {
		if len(limits) > 0 {
			s.limits = limits
		}
	}
}

// WithCache enables usage-count caching.
func WithCache(cache Cache) Option {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a quota service counting usage through counter.
func New(counter UsageCounter, opts ...Option) *Service {
	s := &Service{
		counter: counter,
		limits:  DefaultTierLimits(),
		cache:   NoopCache{},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TierLimits returns the limits for a tier, falling back to free-tier for
// unknown tiers.
func (s *Service) TierLimits(tier Tier) Limits {
	if limits, ok := s.limits[tier]; ok {
		return limits
	}
	return s.limits[TierFree]
}

// Usage returns current per-tenant document counts, consulting the cache
// first. Cache write failures are logged and ignored; the decision proceeds
// on the fresh counts.
func (s *Service) Usage(ctx context.Context, tenantID uuid.UUID) (Usage, error) {
	if usage, ok := s.cache.GetUsage(ctx, tenantID); ok {
		return usage, nil
	}

	templates, err := s.counter.CountTemplates(ctx, tenantID)
	if err != nil {
		return Usage{}, errors.Join(ErrFailedToCountUsage, err)
	}
	snippets, err := s.counter.CountSnippets(ctx, tenantID)
	if err != nil {
		return Usage{}, errors.Join(ErrFailedToCountUsage, err)
	}

	usage := Usage{Templates: templates, Snippets: snippets}
	if err := s.cache.SetUsage(ctx, tenantID, usage); err != nil {
		s.log.WarnContext(ctx, "failed to cache quota usage",
			slog.String("tenant_id", tenantID.String()),
			slog.Any("error", err),
		)
	}
	return usage, nil
}

// Invalidate drops cached usage for a tenant. Called after creates so the
// next check sees fresh counts.
func (s *Service) Invalidate(ctx context.Context, tenantID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, tenantID); err != nil {
		s.log.WarnContext(ctx, "failed to invalidate quota usage cache",
			slog.String("tenant_id", tenantID.String()),
			slog.Any("error", err),
		)
	}
}

// CanCreateTemplate checks whether the tenant may create another template.
func (s *Service) CanCreateTemplate(ctx context.Context, tenantID uuid.UUID, tier Tier) (Check, error) {
	return s.canCreate(ctx, tenantID, tier, ResourceTemplate)
}

// CanCreateSnippet checks whether the tenant may create another snippet.
func (s *Service) CanCreateSnippet(ctx context.Context, tenantID uuid.UUID, tier Tier) (Check, error) {
	return s.canCreate(ctx, tenantID, tier, ResourceSnippet)
}

func (s *Service) canCreate(ctx context.Context, tenantID uuid.UUID, tier Tier, res Resource) (Check, error) {
	usage, err := s.Usage(ctx, tenantID)
	if err != nil {
		return Check{}, err
	}

	limits := s.TierLimits(tier)

	var current, limit int64
	switch res {
	case ResourceTemplate:
		current, limit = usage.Templates, limits.Templates
	case ResourceSnippet:
		current, limit = usage.Snippets, limits.Snippets
	default:
		return Check{}, fmt.Errorf("%w: %q", ErrInvalidResource, res)
	}

	return Check{
		Allowed:   current < limit,
		Current:   current,
		Limit:     limit,
		Remaining: max(limit-current, 0),
		Type:      res,
		Tier:      tier,
	}, nil
}

// Enforce fails with an *ExceededError when the tenant is at the limit for
// the resource, and with ErrInvalidResource for unknown resource types.
//
// The check reads current usage and then decides; there is no
// compare-and-swap against the store, so concurrent creates at the boundary
// can both pass. Known race, accepted.
func (s *Service) Enforce(ctx context.Context, tenantID uuid.UUID, tier Tier, res Resource) error {
	if res != ResourceTemplate && res != ResourceSnippet {
		return fmt.Errorf("%w: %q", ErrInvalidResource, res)
	}

	check, err := s.canCreate(ctx, tenantID, tier, res)
	if err != nil {
		return err
	}
	if !check.Allowed {
		return &ExceededError{Check: check}
	}
	return nil
}

// Status reports full quota standing for a tenant.
func (s *Service) Status(ctx context.Context, tenantID uuid.UUID, tier Tier) (Status, error) {
	usage, err := s.Usage(ctx, tenantID)
	if err != nil {
		return Status{}, err
	}

	limits := s.TierLimits(tier)
	templates := resourceStatus(usage.Templates, limits.Templates)
	snippets := resourceStatus(usage.Snippets, limits.Snippets)

	return Status{
		Tier:      tier,
		Templates: templates,
		Snippets:  snippets,
		Overall: Overall{
			WithinLimits: usage.Templates <= limits.Templates && usage.Snippets <= limits.Snippets,
			NearLimit:    templates.Percentage >= 100 || snippets.Percentage >= 100,
		},
	}, nil
}

func resourceStatus(current, limit int64) ResourceStatus {
	percentage := 100
	if limit > 0 {
		percentage = int(math.Round(float64(current) / float64(limit) * 100))
	}

	return ResourceStatus{
		Current:    current,
		Limit:      limit,
		Remaining:  max(limit-current, 0),
		Percentage: percentage,
		CanCreate:  current < limit,
	}
}

// UpgradeSuggestions proposes the next tier up when the tenant is at one or
// both resource limits. Pro-tier tenants never get suggestions.
func (s *Service) UpgradeSuggestions(ctx context.Context, tenantID uuid.UUID, tier Tier) (UpgradeOptions, error) {
	none := UpgradeOptions{Suggestions: []Suggestion{}}

	if tier == TierPro {
		return none, nil
	}

	usage, err := s.Usage(ctx, tenantID)
	if err != nil {
		return UpgradeOptions{}, err
	}

	limits := s.TierLimits(tier)
	templatesAtLimit := usage.Templates >= limits.Templates
	snippetsAtLimit := usage.Snippets >= limits.Snippets

	if !templatesAtLimit && !snippetsAtLimit {
		return none, nil
	}

	reason := ReasonTemplateLimit
	switch {
	case templatesAtLimit && snippetsAtLimit:
		reason = ReasonMultipleLimits
	case snippetsAtLimit:
		reason = ReasonSnippetLimit
	}

	next, ok := NextTier(tier)
	if !ok {
		return none, nil
	}

	return UpgradeOptions{
		HasUpgradeOptions: true,
		Suggestions: []Suggestion{
			{SuggestedTier: next, Reason: reason},
		},
	}, nil
}
