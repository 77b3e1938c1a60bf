package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	models "github.com/tayotravel/tourbook/internal"
	"github.com/tayotravel/tourbook/internal/mocks"
)

func TestReviewCreate(t *testing.T) {
	userID := uuid.New()
	tourID := uuid.New()
	body := models.ReviewRequest{Rating: 5, Content: "Great guide, great day."}

	post := func(h *ReviewHandler, payload interface{}) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/v1/tours/%s/reviews", tourID), jsonBody(t, payload))
		r.SetPathValue("tourID", tourID.String())
		w := httptest.NewRecorder()
		h.Create(w, withClaims(r, customerClaims(userID)))
		return w
	}

	t.Run("created", func(t *testing.T) {
		mockSvc := new(mocks.MockReviewService)
		h := NewReviewHandler(mockSvc, testLogger())

		mockSvc.On("CreateReview", mock.Anything, userID, tourID, mock.AnythingOfType("*models.ReviewRequest")).
			Return(&models.Review{ID: uuid.New(), Rating: 5, Approved: true}, nil)

		w := post(h, body)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("second review conflicts", func(t *testing.T) {
		mockSvc := new(mocks.MockReviewService)
		h := NewReviewHandler(mockSvc, testLogger())

		mockSvc.On("CreateReview", mock.Anything, userID, tourID, mock.AnythingOfType("*models.ReviewRequest")).
			Return(nil, models.ErrDuplicateReview)

		w := post(h, body)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("rating out of range rejected", func(t *testing.T) {
		mockSvc := new(mocks.MockReviewService)
		h := NewReviewHandler(mockSvc, testLogger())

		w := post(h, models.ReviewRequest{Rating: 6, Content: "x"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertNotCalled(t, "CreateReview")
	})
}

func TestReviewDelete(t *testing.T) {
	author := uuid.New()
	review := &models.Review{ID: uuid.New(), TourID: uuid.New(), UserID: author}

	del := func(h *ReviewHandler, claims *models.AuthClaims) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/v1/reviews/%s", review.ID), nil)
		r.SetPathValue("id", review.ID.String())
		w := httptest.NewRecorder()
		h.Delete(w, withClaims(r, claims))
		return w
	}

	t.Run("author can delete", func(t *testing.T) {
		mockSvc := new(mocks.MockReviewService)
		h := NewReviewHandler(mockSvc, testLogger())

		mockSvc.On("GetReview", mock.Anything, review.ID).Return(review, nil)
		mockSvc.On("DeleteReview", mock.Anything, review.ID).Return(nil)

		w := del(h, customerClaims(author))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		mockSvc := new(mocks.MockReviewService)
		h := NewReviewHandler(mockSvc, testLogger())

		mockSvc.On("GetReview", mock.Anything, review.ID).Return(review, nil)

		w := del(h, customerClaims(uuid.New()))

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockSvc.AssertNotCalled(t, "DeleteReview")
	})

	t.Run("admin can delete", func(t *testing.T) {
		mockSvc := new(mocks.MockReviewService)
		h := NewReviewHandler(mockSvc, testLogger())

		mockSvc.On("GetReview", mock.Anything, review.ID).Return(review, nil)
		mockSvc.On("DeleteReview", mock.Anything, review.ID).Return(nil)

		w := del(h, adminClaims())

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestReviewModeration(t *testing.T) {
	reviewID := uuid.New()

	t.Run("approve", func(t *testing.T) {
		mockSvc := new(mocks.MockReviewService)
		h := NewReviewHandler(mockSvc, testLogger())

		mockSvc.On("ApproveReview", mock.Anything, reviewID).Return(nil)

		r := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/v1/reviews/%s/approve", reviewID), nil)
		r.SetPathValue("id", reviewID.String())
		w := httptest.NewRecorder()
		h.Approve(w, withClaims(r, adminClaims()))

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("reject unknown review", func(t *testing.T) {
		mockSvc := new(mocks.MockReviewService)
		h := NewReviewHandler(mockSvc, testLogger())

		mockSvc.On("RejectReview", mock.Anything, reviewID).Return(models.ErrReviewNotFound)

		r := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/v1/reviews/%s/reject", reviewID), nil)
		r.SetPathValue("id", reviewID.String())
		w := httptest.NewRecorder()
		h.Reject(w, withClaims(r, adminClaims()))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestReviewStats(t *testing.T) {
	tourID := uuid.New()
	mockSvc := new(mocks.MockReviewService)
	h := NewReviewHandler(mockSvc, testLogger())

	mockSvc.On("TourReviewStats", mock.Anything, tourID).Return(&models.ReviewStats{
		AverageRating: 4.4,
		TotalReviews:  5,
		Distribution:  map[int]int{1: 0, 2: 0, 3: 1, 4: 1, 5: 3},
	}, nil)

	r := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/tours/%s/reviews/stats", tourID), nil)
	r.SetPathValue("tourID", tourID.String())
	w := httptest.NewRecorder()
	h.Stats(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"average_rating":4.4`)
}
