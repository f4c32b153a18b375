package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/challenge45/internal/auth"
	"github.com/2beens/challenge45/internal/plan"
	"github.com/2beens/challenge45/internal/profiles"
	"github.com/2beens/challenge45/internal/telemetry/tracing"
	"github.com/2beens/challenge45/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=challenge_test

type challengeService interface {
	Today(ctx context.Context, identity auth.Identity, userID uuid.UUID) (*Dashboard, error)
	Complete(ctx context.Context, identity auth.Identity, userID uuid.UUID, req CompleteRequest) (*CompleteResult, error)
	Reset(ctx context.Context, identity auth.Identity, userID uuid.UUID) error
	Profile(ctx context.Context, identity auth.Identity, userID uuid.UUID) (*ProfileView, error)
	UpdateWeight(ctx context.Context, identity auth.Identity, userID uuid.UUID, weight float64) (*ProfileView, error)
	WeeklySummary(ctx context.Context, identity auth.Identity, userID uuid.UUID) (*WeeklySummary, error)
	Certificate(ctx context.Context, identity auth.Identity, userID uuid.UUID) (*Certificate, error)
	SharePreview(ctx context.Context, userID uuid.UUID) (*SharePreview, error)
}

type UpdateWeightRequest struct {
	Weight float64 `json:"weight"`
}

type Handler struct {
	service challengeService
}

func NewHandler(service challengeService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	usersRouter := r.PathPrefix("/users/{id}").Subrouter()
	usersRouter.HandleFunc("/challenge/today", handler.HandleToday).Methods("GET", "OPTIONS").Name("challenge-today")
	usersRouter.HandleFunc("/challenge/complete", handler.HandleComplete).Methods("POST", "OPTIONS").Name("challenge-complete")
	usersRouter.HandleFunc("/challenge/reset", handler.HandleReset).Methods("POST", "OPTIONS").Name("challenge-reset")
	usersRouter.HandleFunc("/profile", handler.HandleProfile).Methods("GET", "OPTIONS").Name("profile")
	usersRouter.HandleFunc("/profile/weight", handler.HandleUpdateWeight).Methods("PUT", "OPTIONS").Name("profile-weight")
	usersRouter.HandleFunc("/summary/weekly", handler.HandleWeeklySummary).Methods("GET", "OPTIONS").Name("summary-weekly")
	usersRouter.HandleFunc("/certificate", handler.HandleCertificate).Methods("GET", "OPTIONS").Name("certificate")

	r.HandleFunc("/share/{id}", handler.HandleShare).Methods("GET").Name("share")
}

// request extracts the caller identity and the target user id.
func request(w http.ResponseWriter, r *http.Request) (auth.Identity, uuid.UUID, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return auth.Identity{}, uuid.Nil, false
	}
	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, invalid user id", http.StatusBadRequest)
		return auth.Identity{}, uuid.Nil, false
	}
	return identity, userID, true
}

// writeError maps service errors to status codes.
func writeError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrCertificateLocked):
		http.Error(w, "certificate locked", http.StatusForbidden)
	case errors.Is(err, profiles.ErrProfileNotFound):
		http.Error(w, "profile unavailable", http.StatusNotFound)
	case errors.Is(err, plan.ErrPlanUnavailable):
		log.Errorf("%s: %s", action, err)
		http.Error(w, "plan unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, ErrDayNotComplete):
		http.Error(w, "complete every set first", http.StatusBadRequest)
	case errors.Is(err, ErrInvalidSubmission), errors.Is(err, ErrInvalidWeight):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrAlreadyCompleted):
		http.Error(w, "today already completed", http.StatusConflict)
	case errors.Is(err, ErrChallengeFinished):
		http.Error(w, "challenge already finished", http.StatusConflict)
	default:
		log.Errorf("%s: %s", action, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (handler *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenge.today")
	defer span.End()

	identity, userID, ok := request(w, r)
	if !ok {
		return
	}

	dashboard, err := handler.service.Today(ctx, identity, userID)
	if err != nil {
		writeError(w, "today", err)
		return
	}

	pkg.WriteJSONOK(w, dashboard)
}

func (handler *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenge.complete")
	defer span.End()

	identity, userID, ok := request(w, r)
	if !ok {
		return
	}

	var req CompleteRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Debugf("complete day, unmarshal json params: %s", err)
			http.Error(w, "error, invalid request body", http.StatusBadRequest)
			return
		}
	}

	result, err := handler.service.Complete(ctx, identity, userID, req)
	if err != nil {
		writeError(w, "complete day", err)
		return
	}

	pkg.WriteJSONOK(w, result)
}

func (handler *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenge.reset")
	defer span.End()

	identity, userID, ok := request(w, r)
	if !ok {
		return
	}

	if err := handler.service.Reset(ctx, identity, userID); err != nil {
		writeError(w, "reset", err)
		return
	}

	pkg.WriteTextResponseOK(w, "reset")
}

func (handler *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenge.profile")
	defer span.End()

	identity, userID, ok := request(w, r)
	if !ok {
		return
	}

	profile, err := handler.service.Profile(ctx, identity, userID)
	if err != nil {
		writeError(w, "profile", err)
		return
	}

	pkg.WriteJSONOK(w, profile)
}

func (handler *Handler) HandleUpdateWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenge.update_weight")
	defer span.End()

	identity, userID, ok := request(w, r)
	if !ok {
		return
	}

	var req UpdateWeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "error, invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := handler.service.UpdateWeight(ctx, identity, userID, req.Weight)
	if err != nil {
		writeError(w, "update weight", err)
		return
	}

	pkg.WriteJSONOK(w, profile)
}

func (handler *Handler) HandleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenge.weekly_summary")
	defer span.End()

	identity, userID, ok := request(w, r)
	if !ok {
		return
	}

	summary, err := handler.service.WeeklySummary(ctx, identity, userID)
	if err != nil {
		writeError(w, "weekly summary", err)
		return
	}

	pkg.WriteJSONOK(w, summary)
}

func (handler *Handler) HandleCertificate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenge.certificate")
	defer span.End()

	identity, userID, ok := request(w, r)
	if !ok {
		return
	}

	certificate, err := handler.service.Certificate(ctx, identity, userID)
	if err != nil {
		writeError(w, "certificate", err)
		return
	}

	pkg.WriteJSONOK(w, certificate)
}

func (handler *Handler) HandleShare(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenge.share")
	defer span.End()

	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, invalid user id", http.StatusBadRequest)
		return
	}

	preview, err := handler.service.SharePreview(ctx, userID)
	if err != nil {
		writeError(w, "share preview", err)
		return
	}

	pkg.WriteJSONOK(w, preview)
}
