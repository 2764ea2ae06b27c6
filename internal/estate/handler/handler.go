// Package handler is the thin HTTP layer over the will and query services.
// It owns request decoding, identifier parsing, and the error envelope;
// business logic stays in the services.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"testament/internal/estate/query"
	"testament/internal/estate/service"
	"testament/internal/platform/metrics"
	"testament/internal/platform/middleware"
	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
)

// Handler wires HTTP endpoints to the estate services.
type Handler struct {
	wills   *service.Service
	queries *query.Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs a Handler.
func New(wills *service.Service, queries *query.Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		wills:   wills,
		queries: queries,
		logger:  logger,
		metrics: m,
	}
}

// Register mounts the estate routes with the shared middleware chain.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.Latency(h.metrics))

	router.Post("/users", h.handleCreateUser)
	router.Get("/users", h.handleListUsers)
	router.Get("/users/{userID}", h.handleGetUser)

	router.Post("/executors", h.handleCreateExecutor)
	router.Get("/executors", h.handleListExecutors)
	router.Get("/executors/{executorID}", h.handleGetExecutor)

	router.Post("/wills", h.handleCreateWill)
	router.Get("/wills", h.handleListWills)
	router.Get("/wills/{willID}", h.handleGetWill)
	router.Post("/wills/{willID}/assets", h.handleAddAsset)
	router.Post("/wills/{willID}/beneficiaries", h.handleAddBeneficiary)
	router.Put("/wills/{willID}/executor", h.handleAssignExecutor)

	router.Get("/assets/{assetID}", h.handleGetAsset)
	router.Get("/beneficiaries/{beneficiaryID}", h.handleGetBeneficiary)

	r.Mount("/", router)
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type createExecutorRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type createWillRequest struct {
	UserID     string `json:"user_id"`
	ExecutorID string `json:"executor_id"`
}

type addAssetRequest struct {
	Name  string `json:"name"`
	Value uint64 `json:"value"`
}

type addBeneficiaryRequest struct {
	Name  string `json:"name"`
	Share uint64 `json:"share"`
}

type assignExecutorRequest struct {
	ExecutorID string `json:"executor_id"`
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !h.decode(w, r, &req) {
		return
	}
	user, err := h.wills.CreateUser(r.Context(), req.Name, req.Email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) handleCreateExecutor(w http.ResponseWriter, r *http.Request) {
	var req createExecutorRequest
	if !h.decode(w, r, &req) {
		return
	}
	executor, err := h.wills.CreateExecutor(r.Context(), req.Name, req.Contact)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, executor)
}

func (h *Handler) handleCreateWill(w http.ResponseWriter, r *http.Request) {
	var req createWillRequest
	if !h.decode(w, r, &req) {
		return
	}
	userID, err := id.ParseUserID(req.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	executorID, err := id.ParseExecutorID(req.ExecutorID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	will, err := h.wills.CreateWill(r.Context(), userID, executorID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, will)
}

func (h *Handler) handleAddAsset(w http.ResponseWriter, r *http.Request) {
	willID, err := id.ParseWillID(chi.URLParam(r, "willID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req addAssetRequest
	if !h.decode(w, r, &req) {
		return
	}
	will, err := h.wills.AddAsset(r.Context(), willID, req.Name, req.Value)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, will)
}

func (h *Handler) handleAddBeneficiary(w http.ResponseWriter, r *http.Request) {
	willID, err := id.ParseWillID(chi.URLParam(r, "willID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req addBeneficiaryRequest
	if !h.decode(w, r, &req) {
		return
	}
	will, err := h.wills.AddBeneficiary(r.Context(), willID, req.Name, req.Share)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, will)
}

func (h *Handler) handleAssignExecutor(w http.ResponseWriter, r *http.Request) {
	willID, err := id.ParseWillID(chi.URLParam(r, "willID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req assignExecutorRequest
	if !h.decode(w, r, &req) {
		return
	}
	executorID, err := id.ParseExecutorID(req.ExecutorID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	will, err := h.wills.AssignExecutor(r.Context(), willID, executorID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, will)
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := h.queries.GetUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) handleGetExecutor(w http.ResponseWriter, r *http.Request) {
	executorID, err := id.ParseExecutorID(chi.URLParam(r, "executorID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	executor, err := h.queries.GetExecutor(r.Context(), executorID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, executor)
}

func (h *Handler) handleGetWill(w http.ResponseWriter, r *http.Request) {
	willID, err := id.ParseWillID(chi.URLParam(r, "willID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	will, err := h.queries.GetWill(r.Context(), willID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, will)
}

func (h *Handler) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := id.ParseAssetID(chi.URLParam(r, "assetID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	asset, err := h.queries.GetAsset(r.Context(), assetID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, asset)
}

func (h *Handler) handleGetBeneficiary(w http.ResponseWriter, r *http.Request) {
	beneficiaryID, err := id.ParseBeneficiaryID(chi.URLParam(r, "beneficiaryID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	beneficiary, err := h.queries.GetBeneficiary(r.Context(), beneficiaryID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, beneficiary)
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, users)
}

func (h *Handler) handleListExecutors(w http.ResponseWriter, r *http.Request) {
	executors, err := h.queries.ListExecutors(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, executors)
}

func (h *Handler) handleListWills(w http.ResponseWriter, r *http.Request) {
	wills, err := h.queries.ListWills(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, wills)
}

// decode reads a JSON body, writing a BAD_REQUEST envelope on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError centralizes domain error translation to HTTP responses so every
// route shares one JSON error envelope.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   string(code),
		"message": err.Error(),
	})
}
