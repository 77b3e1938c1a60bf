package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	models "github.com/tayotravel/tourbook/internal"
	"github.com/tayotravel/tourbook/internal/ports"
	"github.com/tayotravel/tourbook/internal/utils"
	"github.com/tayotravel/tourbook/internal/validator"
)

type ReviewHandler struct {
	reviews  ports.ReviewService
	validate *validator.CustomValidator
	log      *logrus.Logger
}

func NewReviewHandler(reviews ports.ReviewService, log *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews:  reviews,
		validate: validator.NewCustomValidator(),
		log:      log,
	}
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := CurrentClaims(r)
	if !ok {
		renderError(w, models.ErrForbidden)
		return
	}

	tourID, err := pathUUID(r, "tourID")
	if err != nil {
		renderError(w, err)
		return
	}

	var request models.ReviewRequest
	if err := utils.JsonDecodeBody(r, &request); err != nil {
		ae := utils.NewBadRequest("error json decoding body")
		utils.RenderJson(w, ae.StatusCode, ae)
		return
	}
	if err := h.validate.Validate(request); err != nil {
		ae := utils.NewBadRequest(err.Error())
		utils.RenderJson(w, ae.StatusCode, ae)
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), claims.UserID, tourID, &request)
	if err != nil {
		renderError(w, err)
		return
	}
	utils.RenderJson(w, http.StatusCreated, review)
}

func (h *ReviewHandler) ListByTour(w http.ResponseWriter, r *http.Request) {
	tourID, err := pathUUID(r, "tourID")
	if err != nil {
		renderError(w, err)
		return
	}

	reviews, err := h.reviews.TourReviews(r.Context(), tourID)
	if err != nil {
		renderError(w, err)
		return
	}
	utils.RenderJson(w, http.StatusOK, map[string]interface{}{"reviews": reviews})
}

func (h *ReviewHandler) Stats(w http.ResponseWriter, r *http.Request) {
	tourID, err := pathUUID(r, "tourID")
	if err != nil {
		renderError(w, err)
		return
	}

	stats, err := h.reviews.TourReviewStats(r.Context(), tourID)
	if err != nil {
		renderError(w, err)
		return
	}
	utils.RenderJson(w, http.StatusOK, stats)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	review, err := h.ownedReview(r)
	if err != nil {
		renderError(w, err)
		return
	}

	var update models.ReviewUpdate
	if err := utils.JsonDecodeBody(r, &update); err != nil {
		ae := utils.NewBadRequest("error json decoding body")
		utils.RenderJson(w, ae.StatusCode, ae)
		return
	}
	if err := h.validate.Validate(update); err != nil {
		ae := utils.NewBadRequest(err.Error())
		utils.RenderJson(w, ae.StatusCode, ae)
		return
	}

	updated, err := h.reviews.UpdateReview(r.Context(), review.ID, update)
	if err != nil {
		renderError(w, err)
		return
	}
	utils.RenderJson(w, http.StatusOK, updated)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	review, err := h.ownedReview(r)
	if err != nil {
		renderError(w, err)
		return
	}
	if err := h.reviews.DeleteReview(r.Context(), review.ID); err != nil {
		renderError(w, err)
		return
	}
	utils.RenderJson(w, http.StatusNoContent, nil)
}

func (h *ReviewHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.reviews.ApproveReview)
}

func (h *ReviewHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.reviews.RejectReview)
}

func (h *ReviewHandler) moderate(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id uuid.UUID) error) {
	id, err := pathUUID(r, "id")
	if err != nil {
		renderError(w, err)
		return
	}
	if err := op(r.Context(), id); err != nil {
		renderError(w, err)
		return
	}
	utils.RenderJson(w, http.StatusNoContent, nil)
}

// ownedReview loads the review from the path id and enforces
// author-or-admin access.
func (h *ReviewHandler) ownedReview(r *http.Request) (*models.Review, error) {
	claims, ok := CurrentClaims(r)
	if !ok {
		return nil, models.ErrForbidden
	}

	id, err := pathUUID(r, "id")
	if err != nil {
		return nil, err
	}

	review, err := h.reviews.GetReview(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if review.UserID != claims.UserID && !claims.IsAdmin() {
		return nil, models.ErrForbidden
	}
	return review, nil
}
