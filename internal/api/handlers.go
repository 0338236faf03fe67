package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"airport-booking/skyport/internal/auth"
	"airport-booking/skyport/internal/common"
	"airport-booking/skyport/internal/constants"
	"airport-booking/skyport/internal/db/repositories"
	"airport-booking/skyport/internal/logging"
	"airport-booking/skyport/internal/models/dtos"
	"airport-booking/skyport/internal/services"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// respondServiceError maps service and repository errors onto HTTP statuses
func respondServiceError(w http.ResponseWriter, r *http.Request, initTime time.Time, err error) {
	var orderErr *services.OrderValidationError
	var fieldErr *services.ValidationError

	switch {
	case errors.As(err, &orderErr):
		message := constants.MsgInvalidOrder
		if orderErr.Message != "" {
			message = orderErr.Message
		}
		common.RespondValidationError(w, initTime, message, orderErr.Details())
	case errors.As(err, &fieldErr):
		common.RespondValidationError(w, initTime, constants.MsgValidationFailed, fieldErr.Fields)
	case errors.Is(err, repositories.ErrNotFound):
		common.RespondError(w, initTime, nil, constants.MsgNotFound, http.StatusNotFound)
	case errors.Is(err, repositories.ErrProtected):
		common.RespondError(w, initTime, nil, constants.MsgProtected, http.StatusConflict)
	case errors.Is(err, services.ErrAlreadyExists), errors.Is(err, services.ErrEmailTaken):
		common.RespondError(w, initTime, err, "", http.StatusConflict)
	case errors.Is(err, services.ErrInvalidCredentials):
		common.RespondError(w, initTime, err, "", http.StatusUnauthorized)
	default:
		logging.Error("Request failed",
			"request_id", auth.GetRequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		common.RespondError(w, initTime, nil, constants.MsgInternalError, http.StatusInternalServerError)
	}
}

// decodeJSON reads a size limited JSON body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%s: %w", constants.MsgInvalidPayload, err)
	}
	return nil
}

// idParam parses the {id} route parameter
func idParam(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", chi.URLParam(r, "id"))
	}
	return uint(id), nil
}

// paginationParams reads ?page= and ?page_size=, clamping bad values
func paginationParams(r *http.Request) services.Pagination {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	return services.NewPagination(page, size)
}

func listHandler[T any](list func(context.Context, services.Pagination) (*dtos.Page[T], error), message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		page, err := list(r.Context(), paginationParams(r))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, message, page)
	}
}

func getHandler[T any](get func(context.Context, uint) (*T, error), message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := idParam(r)
		if err != nil {
			common.RespondError(w, initTime, nil, constants.MsgNotFound, http.StatusNotFound)
			return
		}

		item, err := get(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, message, item)
	}
}

func createHandler[Req any, T any](create func(context.Context, Req) (*T, error), message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req Req
		if err := decodeJSON(w, r, &req); err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		item, err := create(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, message, item, http.StatusCreated)
	}
}

func updateHandler[Req any, T any](update func(context.Context, uint, Req) (*T, error), message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := idParam(r)
		if err != nil {
			common.RespondError(w, initTime, nil, constants.MsgNotFound, http.StatusNotFound)
			return
		}

		var req Req
		if err := decodeJSON(w, r, &req); err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		item, err := update(r.Context(), id, req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, message, item)
	}
}

func deleteHandler(del func(context.Context, uint) error, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := idParam(r)
		if err != nil {
			common.RespondError(w, initTime, nil, constants.MsgNotFound, http.StatusNotFound)
			return
		}

		if err := del(r.Context(), id); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, message, nil)
	}
}
