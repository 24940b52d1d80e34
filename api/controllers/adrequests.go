package controllers

import (
	"net/http"

	"github.com/lucasmedina/adbridge-backend/api/middleware"
	"github.com/lucasmedina/adbridge-backend/api/responses"
	"github.com/lucasmedina/adbridge-backend/api/validators"
	"github.com/lucasmedina/adbridge-backend/internal/adrequests"
	pkgerrors "github.com/lucasmedina/adbridge-backend/pkg/errors"
	"github.com/lucasmedina/adbridge-backend/pkg/logger"
)

// AdRequestCreate opens a negotiation against one of the sponsor's campaigns.
func AdRequestCreate(svc adrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ad request service unavailable"))
			return
		}

		var body adrequests.CreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID, actorRole := middleware.ActorFromContext(r.Context())
		result, err := svc.Create(r.Context(), actorID, actorRole, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AdRequestAccept finalizes a request at the current offer.
func AdRequestAccept(svc adrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ad request service unavailable"))
			return
		}

		requestID, err := validators.ParseUUIDParam(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID, _ := middleware.ActorFromContext(r.Context())
		result, err := svc.Accept(r.Context(), actorID, requestID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdRequestReject declines a request permanently.
func AdRequestReject(svc adrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ad request service unavailable"))
			return
		}

		requestID, err := validators.ParseUUIDParam(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID, _ := middleware.ActorFromContext(r.Context())
		result, err := svc.Reject(r.Context(), actorID, requestID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdRequestNegotiate proposes a new payment amount.
func AdRequestNegotiate(svc adrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ad request service unavailable"))
			return
		}

		requestID, err := validators.ParseUUIDParam(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body adrequests.NegotiateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID, _ := middleware.ActorFromContext(r.Context())
		result, err := svc.Negotiate(r.Context(), actorID, requestID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdRequestInbox lists the authenticated influencer's incoming requests.
func AdRequestInbox(svc adrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ad request service unavailable"))
			return
		}

		actorID, _ := middleware.ActorFromContext(r.Context())
		result, err := svc.ListForInfluencer(r.Context(), actorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdRequestsForCampaign lists requests against a campaign the actor owns.
func AdRequestsForCampaign(svc adrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ad request service unavailable"))
			return
		}

		campaignID, err := validators.ParseUUIDParam(r, "campaignId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID, _ := middleware.ActorFromContext(r.Context())
		result, err := svc.ListForCampaign(r.Context(), actorID, campaignID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
