package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	models "github.com/tayotravel/tourbook/internal"
	"github.com/tayotravel/tourbook/internal/ports"
	"github.com/tayotravel/tourbook/internal/utils"
	"github.com/tayotravel/tourbook/internal/validator"
)

type AuthHandler struct {
	auth     ports.AuthService
	validate *validator.CustomValidator
	log      *logrus.Logger
}

func NewAuthHandler(auth ports.AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		validate: validator.NewCustomValidator(),
		log:      log,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := utils.JsonDecodeBody(r, &creds); err != nil {
		ae := utils.NewBadRequest("error json decoding body")
		utils.RenderJson(w, ae.StatusCode, ae)
		return
	}
	if err := h.validate.Validate(creds); err != nil {
		ae := utils.NewBadRequest(err.Error())
		utils.RenderJson(w, ae.StatusCode, ae)
		return
	}

	token, err := h.auth.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		renderError(w, err)
		return
	}
	utils.RenderJson(w, http.StatusOK, token)
}

func (h *AuthHandler) RequestPasswordCode(w http.ResponseWriter, r *http.Request) {
	var request models.PasswordCodeRequest
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

	if err := h.auth.RequestPasswordChange(r.Context(), request.Email); err != nil {
		renderError(w, err)
		return
	}
	utils.RenderJson(w, http.StatusNoContent, nil)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var request models.PasswordChangeRequest
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

	if err := h.auth.ChangePassword(r.Context(), request.Email, request.Code, request.NewPassword); err != nil {
		renderError(w, err)
		return
	}
	utils.RenderJson(w, http.StatusNoContent, nil)
}
