package templates

import (
	"net/http"

	"github.com/letterkit/letterkit/svc/tenant"
)

func (s *Service) getQuota(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := tenant.MustIDFromContext(ctx)

	status, err := s.quotas.Status(ctx, tenantID, s.tiers(ctx, tenantID))
	if err != nil {
		s.writeQuotaError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Service) getUpgradeOptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := tenant.MustIDFromContext(ctx)

	opts, err := s.quotas.UpgradeSuggestions(ctx, tenantID, s.tiers(ctx, tenantID))
	if err != nil {
		s.writeQuotaError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}
