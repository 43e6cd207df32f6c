package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	errs "memgame/internal/errors"
	"memgame/internal/httpresponse"
	userUC "memgame/internal/usecase/user"
	"memgame/internal/utils"
	"memgame/internal/validation"
)

type UserHandler struct {
	usecaseHandler *userUC.UserUsecaseHandler
	log            *zap.SugaredLogger
}

type UpdateRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

func NewUserHandler(usecaseHandler *userUC.UserUsecaseHandler, log *zap.SugaredLogger) *UserHandler {
	return &UserHandler{
		usecaseHandler: usecaseHandler,
		log:            log,
	}
}

// Update godoc
// @Summary Update a user profile
// @Description Applies the provided fields; a new password is re-hashed
// @Tags user
// @Accept json
// @Produce json
// @Param id path string true "user id"
// @Param update body UpdateRequest true "fields to change"
// @Success 200 {object} user.User
// @Failure 400 {object} httpresponse.ValidationErrorResponse
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /api/users/{id} [put]
func (u *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req UpdateRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		u.log.Error("Update: malformed JSON: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	updated, err := u.usecaseHandler.UpdateUser(r.Context(), userID, userUC.UpdateRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var vErrs validation.Errors
		switch {
		case errors.As(err, &vErrs):
			httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
				httpresponse.ValidationErrorResponse{Errors: vErrs})
		case errors.Is(err, errs.ErrUserNotFound):
			httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
				httpresponse.ErrorResponse{ErrorDescription: "User not found"})
		case errors.Is(err, errs.ErrEmailExists):
			httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
				httpresponse.ErrorResponse{ErrorDescription: "Email already exists"})
		default:
			u.log.Errorf("Update: failed to update user %s: %v", userID, err)
			httpresponse.WriteInternalErrorResponse(w)
		}
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a user
// @Tags user
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} httpresponse.MessageResponse
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /api/users/{id} [delete]
func (u *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	if err := u.usecaseHandler.DeleteUser(r.Context(), userID); err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
				httpresponse.ErrorResponse{ErrorDescription: "User not found"})
			return
		}
		u.log.Errorf("Delete: failed to delete user %s: %v", userID, err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK,
		httpresponse.MessageResponse{Message: "User deleted successfully"})
}
