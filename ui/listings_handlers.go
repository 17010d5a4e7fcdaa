package ui

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"modboard/domain/core"
	"modboard/domain/moderation"
)

func (a *App) handleListListings(w http.ResponseWriter, r *http.Request) {
	query, err := moderation.ParseListingQuery(r.URL.Query())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	page, err := a.svc.Listings.Search(r.Context(), query)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func listingID(r *http.Request) (core.ListingID, error) {
	return core.ParseListingID(chi.URLParam(r, "id"))
}

func (a *App) handleGetListing(w http.ResponseWriter, r *http.Request) {
	id, err := listingID(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	ad, err := a.svc.Moderation.Get(r.Context(), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ad)
}

func (a *App) handleViewListing(w http.ResponseWriter, r *http.Request) {
	id, err := listingID(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	view, err := a.svc.Moderation.View(r.Context(), id, a.svc.Now())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *App) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, err := listingID(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	ad, err := a.svc.Moderation.Approve(r.Context(), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ad)
}

func (a *App) handleReject(w http.ResponseWriter, r *http.Request) {
	a.handleDecision(w, r, a.svc.Moderation.Reject)
}

func (a *App) handleRequestChanges(w http.ResponseWriter, r *http.Request) {
	a.handleDecision(w, r, a.svc.Moderation.RequestChanges)
}

type decideFunc func(ctx context.Context, id core.ListingID, input moderation.FormInput) (*moderation.Advertisement, error)

func (a *App) handleDecision(w http.ResponseWriter, r *http.Request, decide decideFunc) {
	id, err := listingID(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var input moderation.FormInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&input); err != nil {
		a.writeError(w, r, core.NewValidationError("body", err.Error()))
		return
	}

	ad, err := decide(r.Context(), id, input)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ad)
}

func (a *App) handleReasons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, moderation.Reasons())
}

func (a *App) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, moderation.Categories())
}
