package web

import (
	"context"
	"encoding/json"
	"net/http"
)

// Respond converts a Go value to JSON and sends it to the client.
func Respond(ctx context.Context, w http.ResponseWriter, data any, statusCode int) error {
	if err := setStatusCode(ctx, statusCode); err != nil {
		return err
	}

	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if _, err := w.Write(jsonData); err != nil {
		return err
	}
	return nil
}

// StatusError is the behavior a business-level error needs to carry its
// own HTTP status and, optionally, field-level validation detail back
// through RespondError without foundation/web importing business code.
type StatusError interface {
	error
	HTTPStatus() int
	HTTPFields() map[string]string
}

// RespondError knows how to handle errors going back to the client.
func RespondError(ctx context.Context, w http.ResponseWriter, err error) error {
	if se, ok := err.(StatusError); ok {
		er := struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields,omitempty"`
		}{
			Error:  se.Error(),
			Fields: se.HTTPFields(),
		}
		return Respond(ctx, w, er, se.HTTPStatus())
	}

	er := struct {
		Error string `json:"error"`
	}{
		Error: "internal server error",
	}
	return Respond(ctx, w, er, http.StatusInternalServerError)
}
