package httpresponse

import (
	"encoding/json"
	"fmt"
	"net/http"

	"memgame/internal/validation"
)

type ErrorResponse struct {
	ErrorDescription string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ValidationErrorResponse struct {
	Errors validation.Errors `json:"errors"`
}

const INTERNALERRORJSON = "{\"message\": \"Something went wrong on the server\"}"

const MALFORMEDJSON_errorDesc = "json unmarshalling error"

func WriteResponseWithStatus(w http.ResponseWriter, status int, body any) {
	jsonByte, err := json.Marshal(body)
	if err != nil {
		WriteInternalErrorResponse(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(jsonByte)
	if err != nil {
		return
	}
}

func WriteInternalErrorResponse(w http.ResponseWriter) {
	// implementation similar to http.Error, only difference is the Content-type
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(500)
	_, _ = fmt.Fprintln(w, INTERNALERRORJSON)
}
