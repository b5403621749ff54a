package toolapi

import (
	"context"
	"errors"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/ferreiralabs/soccergraph/internal/graph"
	"github.com/ferreiralabs/soccergraph/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const internalErrorMessage = "internal server error"

type successEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "toolapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"`+internalErrorMessage+`"}`+"\n")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "toolapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, successEnvelope{Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "toolapi.writeError")
	defer span.End()

	status := mapError(ctx, err)
	writeJSON(ctx, w, status, errorEnvelope{Error: externalMessage(ctx, err, status)})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "toolapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, errorEnvelope{Error: internalErrorMessage})
}

func mapError(ctx context.Context, err error) int {
	ctx, span := startSpan(ctx, "toolapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrDependencyUnavailable),
		errors.Is(err, graph.ErrUnavailable),
		errors.Is(err, graph.ErrNotConnected):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Query text and parameters stay in the logs; clients only ever see a
// generic message for backend failures.
func externalMessage(ctx context.Context, err error, status int) string {
	ctx, span := startSpan(ctx, "toolapi.externalMessage")
	defer span.End()

	if status == http.StatusInternalServerError {
		return internalErrorMessage
	}
	var queryErr *graph.QueryError
	if errors.As(err, &queryErr) {
		if status == http.StatusServiceUnavailable {
			return "graph backend unavailable"
		}
		return internalErrorMessage
	}
	return err.Error()
}
