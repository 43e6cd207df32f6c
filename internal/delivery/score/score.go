package score

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	userDomain "memgame/internal/domain/user"
	errs "memgame/internal/errors"
	"memgame/internal/httpresponse"
	"memgame/internal/middleware"
	"memgame/internal/statuses"
	scoreUC "memgame/internal/usecase/score"
	"memgame/internal/utils"
	"memgame/internal/validation"
)

// UserResolver maps a token identity to its profile, used to derive
// the username for GET requests that omit the query parameter.
type UserResolver interface {
	GetUserByID(ctx context.Context, id string) (userDomain.User, error)
}

type ScoreHandler struct {
	usecaseHandler *scoreUC.ScoreUseCase
	users          UserResolver
	log            *zap.SugaredLogger
}

type SubmitRequest struct {
	Username string `json:"username"`
	Moves    *int   `json:"moves"`
	Level    string `json:"level"`
}

func NewScoreHandler(usecaseHandler *scoreUC.ScoreUseCase, users UserResolver, log *zap.SugaredLogger) *ScoreHandler {
	return &ScoreHandler{
		usecaseHandler: usecaseHandler,
		users:          users,
		log:            log,
	}
}

// Submit godoc
// @Summary Submit a score for reconciliation
// @Description Creates the record on first submission, replaces it when the move count is strictly lower, otherwise leaves it unchanged
// @Tags highscore
// @Accept json
// @Produce json
// @Param score body SubmitRequest true "submission"
// @Success 200 {object} httpresponse.MessageResponse
// @Success 201 {object} httpresponse.MessageResponse
// @Failure 400 {object} httpresponse.ValidationErrorResponse
// @Failure 500 {object} httpresponse.ErrorResponse
// @Router /api/highscore [post]
func (s *ScoreHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		s.log.Error("Submit: malformed JSON: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	if req.Moves == nil {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "Missing required fields"})
		return
	}

	outcome, err := s.usecaseHandler.Submit(r.Context(), req.Username, req.Level, *req.Moves)
	if err != nil {
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
				httpresponse.ValidationErrorResponse{Errors: vErrs})
			return
		}
		s.log.Errorf("Submit: failed for %s/%s: %v", req.Username, req.Level, err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}

	switch outcome {
	case statuses.ScoreCreated:
		httpresponse.WriteResponseWithStatus(w, http.StatusCreated,
			httpresponse.MessageResponse{Message: "New high score created for user"})
	case statuses.ScoreUpdated:
		httpresponse.WriteResponseWithStatus(w, http.StatusOK,
			httpresponse.MessageResponse{Message: "High score updated successfully"})
	default:
		httpresponse.WriteResponseWithStatus(w, http.StatusOK,
			httpresponse.MessageResponse{Message: "High score not updated because an existing high score is lower or equal"})
	}
}

// GetBest godoc
// @Summary Get the best score for a level
// @Description The username comes from the query parameter, falling back to the token identity on protected deployments
// @Tags highscore
// @Produce json
// @Param level path string true "level id"
// @Param username query string false "username"
// @Success 200 {object} score.HighScore
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /api/highscore/{level} [get]
func (s *ScoreHandler) GetBest(w http.ResponseWriter, r *http.Request) {
	level := chi.URLParam(r, "level")
	username := r.URL.Query().Get("username")
	if username == "" {
		// older clients send the account email instead
		username = r.URL.Query().Get("email")
	}

	if username == "" {
		resolved, ok := s.resolveUsername(r)
		if !ok {
			httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
				httpresponse.ErrorResponse{ErrorDescription: "Missing username"})
			return
		}
		username = resolved
	}

	best, err := s.usecaseHandler.GetBest(r.Context(), username, level)
	if err != nil {
		var vErrs validation.Errors
		switch {
		case errors.As(err, &vErrs):
			httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
				httpresponse.ValidationErrorResponse{Errors: vErrs})
		case errors.Is(err, errs.ErrScoreNotFound):
			httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
				httpresponse.ErrorResponse{ErrorDescription: "No high score yet"})
		default:
			s.log.Errorf("GetBest: failed for %s/%s: %v", username, level, err)
			httpresponse.WriteInternalErrorResponse(w)
		}
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, best)
}

func (s *ScoreHandler) resolveUsername(r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return "", false
	}
	foundUser, err := s.users.GetUserByID(r.Context(), userID)
	if err != nil {
		return "", false
	}
	return foundUser.Name, true
}
