package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"bmg-store/internal/validation"
)

// maxBodyBytes bounds request payloads; every storefront payload is tiny
const maxBodyBytes = 1 << 20

// ErrInvalidBody is returned when the payload is not well-formed JSON of the expected types
var ErrInvalidBody = errors.New("invalid request body")

// DecodeAndValidate decodes JSON request body and validates it
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrInvalidBody
		}
		return errors.Join(ErrInvalidBody, err)
	}
	return validation.Struct(v)
}

// RespondWithDecodeError maps a DecodeAndValidate failure to a 400 response
func RespondWithDecodeError(w http.ResponseWriter, err error) {
	if fields := validation.FieldErrors(err); len(fields) > 0 {
		RespondWithValidationErrors(w, fields)
		return
	}
	RespondWithError(w, http.StatusBadRequest, ErrInvalidBody.Error())
}
