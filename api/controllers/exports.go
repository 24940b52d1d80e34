package controllers

import (
	"net/http"

	"github.com/lucasmedina/adbridge-backend/api/middleware"
	"github.com/lucasmedina/adbridge-backend/api/responses"
	"github.com/lucasmedina/adbridge-backend/internal/exports"
	pkgerrors "github.com/lucasmedina/adbridge-backend/pkg/errors"
	"github.com/lucasmedina/adbridge-backend/pkg/logger"
)

// ExportCampaigns mails the sponsor a CSV of their campaigns.
func ExportCampaigns(svc exports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "export service unavailable"))
			return
		}

		actorID, _ := middleware.ActorFromContext(r.Context())
		if err := svc.ExportCampaigns(r.Context(), actorID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "sent"})
	}
}
