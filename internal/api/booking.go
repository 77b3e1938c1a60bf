package api

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	models "github.com/tayotravel/tourbook/internal"
	"github.com/tayotravel/tourbook/internal/ports"
	"github.com/tayotravel/tourbook/internal/utils"
	"github.com/tayotravel/tourbook/internal/validator"
)

type BookingHandler struct {
	bookings ports.BookingService
	vouchers ports.VoucherService
	validate *validator.CustomValidator
	log      *logrus.Logger
}

func NewBookingHandler(bookings ports.BookingService, vouchers ports.VoucherService, log *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		vouchers: vouchers,
		validate: validator.NewCustomValidator(),
		log:      log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := CurrentClaims(r)
	if !ok {
		renderError(w, models.ErrForbidden)
		return
	}

	var request models.BookingRequest
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

	booking, err := h.bookings.CreateBooking(r.Context(), claims.UserID, &request)
	if err != nil {
		renderError(w, err)
		return
	}

	// Voucher generation is best-effort here: the booking stands even
	// when the document pipeline fails, and the download endpoint
	// regenerates on demand.
	if _, err := h.vouchers.Persist(r.Context(), booking.ID); err != nil {
		h.log.WithError(err).WithField("booking_id", booking.ID).Error("voucher generation failed after booking creation")
	} else if fresh, err := h.bookings.GetBooking(r.Context(), booking.ID); err == nil {
		booking = fresh
	}

	utils.RenderJson(w, http.StatusCreated, booking)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := models.BookingFilters{
		Status: models.BookingStatus(r.URL.Query().Get("status")),
	}
	if v := r.URL.Query().Get("user_id"); v != "" {
		id, err := pathParseUUID(v)
		if err != nil {
			renderError(w, err)
			return
		}
		filters.UserID = id
	}
	if v := r.URL.Query().Get("tour_id"); v != "" {
		id, err := pathParseUUID(v)
		if err != nil {
			renderError(w, err)
			return
		}
		filters.TourID = id
	}

	bookings, err := h.bookings.AllBookings(r.Context(), filters)
	if err != nil {
		renderError(w, err)
		return
	}
	utils.RenderJson(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := CurrentClaims(r)
	if !ok {
		renderError(w, models.ErrForbidden)
		return
	}

	bookings, err := h.bookings.BookingsByUser(r.Context(), claims.UserID)
	if err != nil {
		renderError(w, err)
		return
	}
	utils.RenderJson(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	booking, err := h.ownedBooking(r)
	if err != nil {
		renderError(w, err)
		return
	}
	utils.RenderJson(w, http.StatusOK, booking)
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		renderError(w, err)
		return
	}

	var request models.StatusUpdateRequest
	if err := utils.JsonDecodeBody(r, &request); err != nil {
		ae := utils.NewBadRequest("error json decoding body")
		utils.RenderJson(w, ae.StatusCode, ae)
		return
	}

	if err := h.bookings.UpdateStatus(r.Context(), id, request.Status); err != nil {
		renderError(w, err)
		return
	}
	utils.RenderJson(w, http.StatusNoContent, nil)
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		renderError(w, err)
		return
	}

	var update models.BookingUpdate
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

	booking, err := h.bookings.UpdateBooking(r.Context(), id, update)
	if err != nil {
		renderError(w, err)
		return
	}
	utils.RenderJson(w, http.StatusOK, booking)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		renderError(w, err)
		return
	}
	if err := h.bookings.DeleteBooking(r.Context(), id); err != nil {
		renderError(w, err)
		return
	}
	utils.RenderJson(w, http.StatusNoContent, nil)
}

func (h *BookingHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.bookings.Stats(r.Context())
	if err != nil {
		renderError(w, err)
		return
	}
	utils.RenderJson(w, http.StatusOK, stats)
}

// DownloadVoucher streams the booking's voucher PDF. Only the purchaser
// or an administrator may read it.
func (h *BookingHandler) DownloadVoucher(w http.ResponseWriter, r *http.Request) {
	booking, err := h.ownedBooking(r)
	if err != nil {
		renderError(w, err)
		return
	}

	buf, err := h.vouchers.Fetch(r.Context(), booking.ID)
	if err != nil {
		ae := utils.NewInternalServerError(fmt.Sprintf("could not produce voucher: %s", err))
		utils.RenderJson(w, ae.StatusCode, ae)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=voucher-%s.pdf", booking.Reference))
	w.WriteHeader(http.StatusOK)
	w.Write(buf)
}

// ownedBooking loads the booking from the path id and enforces
// purchaser-or-admin access.
func (h *BookingHandler) ownedBooking(r *http.Request) (*models.Booking, error) {
	claims, ok := CurrentClaims(r)
	if !ok {
		return nil, models.ErrForbidden
	}

	id, err := pathUUID(r, "id")
	if err != nil {
		return nil, err
	}

	booking, err := h.bookings.GetBooking(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if booking.User.ID != claims.UserID && !claims.IsAdmin() {
		return nil, models.ErrForbidden
	}
	return booking, nil
}
