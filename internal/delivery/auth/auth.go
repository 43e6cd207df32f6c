package auth

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	errs "memgame/internal/errors"
	"memgame/internal/httpresponse"
	"memgame/internal/middleware"
	authUC "memgame/internal/usecase/auth"
	"memgame/internal/utils"
	"memgame/internal/validation"
)

type AuthHandler struct {
	usecaseHandler *authUC.AuthUsecaseHandler
	log            *zap.SugaredLogger
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(usecaseHandler *authUC.AuthUsecaseHandler, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		usecaseHandler: usecaseHandler,
		log:            log,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user and returns a signed session token
// @Tags auth
// @Accept json
// @Produce json
// @Param register body RegisterRequest true "registration data"
// @Success 201 {object} httpresponse.TokenResponse
// @Failure 400 {object} httpresponse.ValidationErrorResponse
// @Failure 500 {object} httpresponse.ErrorResponse
// @Router /api/users [post]
func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var registerData RegisterRequest
	if err := utils.DecodeJSONRequest(r, &registerData); err != nil {
		a.log.Error("Register: malformed JSON: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	tokenString, err := a.usecaseHandler.RegisterUser(r.Context(), registerData.Name, registerData.Email, registerData.Password)
	if err != nil {
		var vErrs validation.Errors
		switch {
		case errors.As(err, &vErrs):
			httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
				httpresponse.ValidationErrorResponse{Errors: vErrs})
		case errors.Is(err, errs.ErrEmailExists):
			a.log.Errorf("Register: email already registered: %s", registerData.Email)
			httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
				httpresponse.ErrorResponse{ErrorDescription: "Email already exists"})
		default:
			a.log.Error("Register: internal error: ", err)
			httpresponse.WriteInternalErrorResponse(w)
		}
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusCreated,
		httpresponse.TokenResponse{Token: tokenString})
}

// Login godoc
// @Summary Sign a user in
// @Description Checks the email/password pair and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "credentials"
// @Success 200 {object} httpresponse.TokenResponse
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 500 {object} httpresponse.ErrorResponse
// @Router /api/auth [post]
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginData LoginRequest
	if err := utils.DecodeJSONRequest(r, &loginData); err != nil {
		a.log.Error("Login: malformed JSON: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	tokenString, err := a.usecaseHandler.LoginUser(r.Context(), loginData.Email, loginData.Password)
	if err != nil {
		var vErrs validation.Errors
		switch {
		case errors.As(err, &vErrs):
			httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
				httpresponse.ValidationErrorResponse{Errors: vErrs})
		case errors.Is(err, errs.ErrInvalidCredentials):
			// one message for unknown email and wrong password
			httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
				httpresponse.ErrorResponse{ErrorDescription: "Invalid credentials"})
		default:
			a.log.Error("Login: internal error: ", err)
			httpresponse.WriteInternalErrorResponse(w)
		}
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK,
		httpresponse.TokenResponse{Token: tokenString})
}

// Me godoc
// @Summary Get the logged-in user
// @Description Returns the authenticated user, password excluded
// @Tags auth
// @Produce json
// @Success 200 {object} user.User
// @Failure 401 {object} httpresponse.ErrorResponse
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /api/auth [get]
func (a *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httpresponse.WriteResponseWithStatus(w, http.StatusUnauthorized,
			httpresponse.ErrorResponse{ErrorDescription: "No token, authorization denied"})
		return
	}

	foundUser, err := a.usecaseHandler.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
				httpresponse.ErrorResponse{ErrorDescription: "User not found"})
			return
		}
		a.log.Error("Me: internal error: ", err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, foundUser)
}
