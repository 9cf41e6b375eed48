package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/central-square/centralsquare/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs the error with a message and returns it unchanged. It ensures
// that errors crossing a boundary are recorded with their goerr context.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	return err
}

// HandleHTTP logs the error and writes a JSON error response. The message
// written to the client is the given public message, not the internal error,
// so store and backend details never leak to API consumers.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int, publicMsg string) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp := map[string]string{"error": publicMsg}
	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		logger.Error("failed to write error response", "error", encErr.Error())
	}
}
