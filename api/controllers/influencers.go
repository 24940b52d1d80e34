package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/lucasmedina/adbridge-backend/api/responses"
	"github.com/lucasmedina/adbridge-backend/internal/accounts"
	"github.com/lucasmedina/adbridge-backend/pkg/db/models"
	"github.com/lucasmedina/adbridge-backend/pkg/enums"
	pkgerrors "github.com/lucasmedina/adbridge-backend/pkg/errors"
	"github.com/lucasmedina/adbridge-backend/pkg/logger"
	"github.com/lucasmedina/adbridge-backend/pkg/pagination"
)

type rolePageLister interface {
	ListByRolePage(ctx context.Context, role enums.AccountRole, params pagination.Params) ([]models.User, string, error)
}

type influencerPage struct {
	Items      []accounts.UserDTO `json:"items"`
	NextCursor string             `json:"next_cursor,omitempty"`
}

// InfluencerDirectory lists influencer profiles for sponsors to browse,
// one cursor page at a time.
func InfluencerDirectory(repo rolePageLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "accounts repository unavailable"))
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		params := pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		}
		if _, err := pagination.ParseCursor(params.Cursor); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
			return
		}

		rows, next, err := repo.ListByRolePage(r.Context(), enums.AccountRoleInfluencer, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list influencers"))
			return
		}

		page := influencerPage{Items: make([]accounts.UserDTO, 0, len(rows))}
		for i := range rows {
			page.Items = append(page.Items, *accounts.FromModel(&rows[i]))
		}
		page.NextCursor = next
		responses.WriteSuccess(w, page)
	}
}
