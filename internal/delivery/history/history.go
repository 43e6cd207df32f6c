package history

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"memgame/internal/httpresponse"
	"memgame/internal/middleware"
	historyUC "memgame/internal/usecase/history"
	"memgame/internal/utils"
	"memgame/internal/validation"
)

type HistoryHandler struct {
	usecaseHandler *historyUC.HistoryUseCase
	log            *zap.SugaredLogger
}

type AppendRequest struct {
	GameLevel  string `json:"gameLevel"`
	NumOfMoves *int   `json:"numOfMoves"`
}

func NewHistoryHandler(usecaseHandler *historyUC.HistoryUseCase, log *zap.SugaredLogger) *HistoryHandler {
	return &HistoryHandler{
		usecaseHandler: usecaseHandler,
		log:            log,
	}
}

// List godoc
// @Summary List the user's game history
// @Description Records come back newest first
// @Tags history
// @Produce json
// @Success 200 {array} history.GameRecord
// @Failure 401 {object} httpresponse.ErrorResponse
// @Failure 500 {object} httpresponse.ErrorResponse
// @Router /api/history [get]
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httpresponse.WriteResponseWithStatus(w, http.StatusUnauthorized,
			httpresponse.ErrorResponse{ErrorDescription: "No token, authorization denied"})
		return
	}

	records, err := h.usecaseHandler.ListFor(r.Context(), userID)
	if err != nil {
		h.log.Errorf("List: failed for user %s: %v", userID, err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, records)
}

// Append godoc
// @Summary Record a completed game
// @Tags history
// @Accept json
// @Produce json
// @Param record body AppendRequest true "completed game"
// @Success 200 {object} history.GameRecord
// @Failure 400 {object} httpresponse.ValidationErrorResponse
// @Failure 401 {object} httpresponse.ErrorResponse
// @Router /api/history [post]
func (h *HistoryHandler) Append(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httpresponse.WriteResponseWithStatus(w, http.StatusUnauthorized,
			httpresponse.ErrorResponse{ErrorDescription: "No token, authorization denied"})
		return
	}

	var req AppendRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("Append: malformed JSON: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	numOfMoves := 0
	if req.NumOfMoves != nil {
		numOfMoves = *req.NumOfMoves
	}

	record, err := h.usecaseHandler.Append(r.Context(), userID, req.GameLevel, numOfMoves)
	if err != nil {
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
				httpresponse.ValidationErrorResponse{Errors: vErrs})
			return
		}
		h.log.Errorf("Append: failed for user %s: %v", userID, err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, record)
}

// Clear godoc
// @Summary Delete all of the user's history
// @Description Idempotent; clearing an empty history succeeds
// @Tags history
// @Produce json
// @Success 200 {object} httpresponse.MessageResponse
// @Failure 401 {object} httpresponse.ErrorResponse
// @Failure 500 {object} httpresponse.ErrorResponse
// @Router /api/history [delete]
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httpresponse.WriteResponseWithStatus(w, http.StatusUnauthorized,
			httpresponse.ErrorResponse{ErrorDescription: "No token, authorization denied"})
		return
	}

	if err := h.usecaseHandler.ClearFor(r.Context(), userID); err != nil {
		h.log.Errorf("Clear: failed for user %s: %v", userID, err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK,
		httpresponse.MessageResponse{Message: "User history cleared successfully"})
}
