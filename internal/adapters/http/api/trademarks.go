package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okian/trademarks/internal/domain/model"
	"github.com/okian/trademarks/pkg/logger"
)

const maxBodyBytes = 1 << 20

// TrademarksHandler serves the trademark CRUD and search routes.
//
// Every failure of an operation maps to one fixed status: 404 for get and
// 400 for everything else. The cause is only visible in the message.
type TrademarksHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewTrademarksHandler creates a new trademarks handler.
func NewTrademarksHandler(deps Dependencies, log logger.Logger) *TrademarksHandler {
	return &TrademarksHandler{deps: deps, logger: log}
}

// HandleCreate handles POST /trademarks.
func (h *TrademarksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_trademark"
	ctx := detach(r)

	var req model.CreateRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.fail(ctx, w, op, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(ctx, w, op, http.StatusBadRequest, err)
		return
	}

	tm, err := h.deps.CreateTrademark(ctx, req)
	if err != nil {
		h.fail(ctx, w, op, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, tm)
}

// HandleGet handles GET /trademarks/{id}.
func (h *TrademarksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_trademark"
	ctx := detach(r)

	id, err := pathID(r)
	if err != nil {
		h.fail(ctx, w, op, http.StatusNotFound, err)
		return
	}

	tm, err := h.deps.GetTrademark(ctx, id)
	if err != nil {
		h.fail(ctx, w, op, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, tm)
}

// HandleSearch handles GET /trademarks/search?query=...&year=...
func (h *TrademarksHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	const op = "api.search_trademarks"
	ctx := detach(r)

	params := r.URL.Query()
	if !params.Has("query") {
		h.fail(ctx, w, op, http.StatusBadRequest, fmt.Errorf("%w: missing query", ErrBadRequest))
		return
	}

	var year *int
	if raw := params.Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			h.fail(ctx, w, op, http.StatusBadRequest, fmt.Errorf("%w: year must be an integer", ErrBadRequest))
			return
		}
		year = &y
	}

	tms, err := h.deps.SearchTrademarks(ctx, params.Get("query"), year)
	if err != nil {
		h.fail(ctx, w, op, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, tms)
}

// HandleUpdate handles PUT /trademarks/{id}.
func (h *TrademarksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_trademark"
	ctx := detach(r)

	id, err := pathID(r)
	if err != nil {
		h.fail(ctx, w, op, http.StatusBadRequest, err)
		return
	}

	var req model.UpdateRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.fail(ctx, w, op, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(ctx, w, op, http.StatusBadRequest, err)
		return
	}

	tm, err := h.deps.UpdateTrademark(ctx, id, req)
	if err != nil {
		h.fail(ctx, w, op, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, tm)
}

// HandleDelete handles DELETE /trademarks/{id}.
func (h *TrademarksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_trademark"
	ctx := detach(r)

	id, err := pathID(r)
	if err != nil {
		h.fail(ctx, w, op, http.StatusBadRequest, err)
		return
	}

	if err := h.deps.DeleteTrademark(ctx, id); err != nil {
		h.fail(ctx, w, op, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Trademark %s has been deleted", id)})
}

func (h *TrademarksHandler) fail(ctx context.Context, w http.ResponseWriter, op string, status int, err error) {
	h.logger.Warn(ctx, "request failed", logger.String("op", op), logger.Int("status", status), logger.Error(err))
	code := "bad_request"
	if status == http.StatusNotFound {
		code = "not_found"
	}
	writeError(w, status, code, err)
}

// detach keeps request values but drops cancellation so a client hanging
// up does not abort a registry call already in flight.
func detach(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func pathID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	// chi matches on the raw path when one exists, leaving the param escaped.
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(id); err == nil {
			id = unescaped
		}
	}
	if id == "" {
		return "", ErrMissingID
	}
	return id, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %w", ErrBadRequest, err)
	}
	return nil
}
