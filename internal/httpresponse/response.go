package httpresponse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	errs "gamey/internal/errors"
)

// ErrorResponse is the body of every rejected request.
type ErrorResponse struct {
	Message    string `json:"message"`
	ApiVersion string `json:"api_version,omitempty"`
	BotID      string `json:"bot_id,omitempty"`
}

const INTERNALERRORJSON = "{\"message\": \"Internal server error\"}"

const MALFORMEDJSON_errorDesc = "json unmarshalling error"

func WriteResponseWithStatus(w http.ResponseWriter, status int, body any) {
	jsonByte, err := json.Marshal(body)
	if err != nil {
		WriteInternalErrorResponse(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(jsonByte)
}

func WriteError(w http.ResponseWriter, status int, resp ErrorResponse) {
	WriteResponseWithStatus(w, status, resp)
}

func WriteInternalErrorResponse(w http.ResponseWriter) {
	// implementation similar to http.Error, only difference is the Content-type
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintln(w, INTERNALERRORJSON)
}

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrBotNotFound),
		errors.Is(err, errs.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrGameAlreadyFinished),
		errors.Is(err, errs.ErrNoLegalMoves),
		errors.Is(err, errs.ErrSessionConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errs.ErrInvalidCoordinate),
		errors.Is(err, errs.ErrCellOutOfBounds),
		errors.Is(err, errs.ErrCellOccupied),
		errors.Is(err, errs.ErrMalformedLayout),
		errors.Is(err, errs.ErrUnsupportedVersion),
		errors.Is(err, errs.ErrInvalidMode),
		errors.Is(err, errs.ErrUsernameRequired),
		errors.Is(err, errs.ErrUserExists):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteDomainError writes err with the status StatusFor picks. Internal
// errors are logged and hidden from the client.
func WriteDomainError(w http.ResponseWriter, log *zap.SugaredLogger, err error, resp ErrorResponse) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Errorw("request failed", "error", err)
		resp.Message = "Internal server error"
	} else {
		resp.Message = err.Error()
	}
	WriteError(w, status, resp)
}

// WriteDecodeError reports a request body that could not be read or parsed:
// 413 when it exceeded the size limit, 400 otherwise.
func WriteDecodeError(w http.ResponseWriter, err error, resp ErrorResponse) {
	status := http.StatusBadRequest
	if errors.Is(err, errs.ErrBodyTooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	resp.Message = err.Error()
	WriteError(w, status, resp)
}
