package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	errs "gamey/internal/errors"
)

// maxBodyBytes bounds request bodies; a size 100 board is well below it.
const maxBodyBytes = 1 << 20

func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body, err := ReadRequestBody(w, r)
	if err != nil {
		return err
	}
	return DecodeJSON(body, dst)
}

// DecodeOptionalJSONRequest leaves dst untouched when the body is empty.
func DecodeOptionalJSONRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body, err := ReadRequestBody(w, r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return DecodeJSON(body, dst)
}

func DecodeJSON(body []byte, dst interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// ReadRequestBody reads at most maxBodyBytes. A longer body yields
// ErrBodyTooLarge instead of a silently truncated read.
func ReadRequestBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: limit is %d bytes", errs.ErrBodyTooLarge, tooLarge.Limit)
		}
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return body, nil
}
