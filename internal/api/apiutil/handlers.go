package apiutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteSuccess emits the {"success": true} envelope the booking UI expects,
// merged with any extra fields.
func WriteSuccess(w http.ResponseWriter, extra map[string]any) error {
	payload := map[string]any{"success": true}
	for k, v := range extra {
		payload[k] = v
	}
	return WriteJSON(w, http.StatusOK, payload)
}

// WriteFailure emits the {"success": false, "message": ...} envelope.
func WriteFailure(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

// HandleError maps an error onto the JSON failure envelope. HandlerError
// picks its own status; FieldError and other validation failures become
// 400s with the error text as the user-facing message.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.Ctx(r.Context())

	var handlerErr HandlerError
	if errors.As(err, &handlerErr) {
		if handlerErr.Status >= http.StatusInternalServerError {
			logger.Error().Err(handlerErr.Err).Msg(handlerErr.Message)
		}
		WriteFailure(w, handlerErr.Status, handlerErr.Message)
		return
	}

	var fieldErr FieldError
	if errors.As(err, &fieldErr) {
		WriteFailure(w, http.StatusBadRequest, fieldErr.Error())
		return
	}

	WriteFailure(w, http.StatusBadRequest, err.Error())
}
