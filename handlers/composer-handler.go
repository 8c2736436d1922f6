package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sony/gobreaker"

	"github.com/ruth8415/TeamTasks/config"
	"github.com/ruth8415/TeamTasks/logging"
	"github.com/ruth8415/TeamTasks/models"
	"github.com/ruth8415/TeamTasks/services"
	"github.com/ruth8415/TeamTasks/utils"
	"github.com/ruth8415/TeamTasks/views"
)

// ServicesFactory builds a fresh set of services that call the API with token.
type ServicesFactory func(token string) *services.Services

type BoardColumn struct {
	Status models.TaskStatus `json:"status"`
	Label  string            `json:"label"`
	Tasks  []models.Task     `json:"tasks"`
}

type BoardResponse struct {
	ProjectID  int64         `json:"projectId,omitempty"`
	TeamID     int64         `json:"teamId,omitempty"`
	BackTarget string        `json:"backTarget,omitempty"`
	Columns    []BoardColumn `json:"columns"`
}

// ComposerHandler serves enriched views assembled from several API calls.
// Every request uses the caller's own Authorization header upstream.
type ComposerHandler struct {
	newServices ServicesFactory
}

func NewComposerHandler(factory ServicesFactory) *ComposerHandler {
	return &ComposerHandler{newServices: factory}
}

// NewServicesFactory shares one HTTP client and one breaker across requests,
// only the session differs per caller.
func NewServicesFactory(cfg config.Config) ServicesFactory {
	httpClient := utils.NewHTTPClient(cfg.HTTPTimeout)
	breaker := services.NewBreaker("TeamTasksComposer", cfg.BreakerFailures, cfg.BreakerTimeout)
	return func(token string) *services.Services {
		return services.New(services.NewClient(cfg.BaseURL(), httpClient, breaker, services.StaticSession(token)))
	}
}

// bearerToken accepts only "Bearer <token>" headers.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader || strings.TrimSpace(token) == "" {
		return "", false
	}
	return token, true
}

func (h *ComposerHandler) authed(w http.ResponseWriter, r *http.Request) (*services.Services, bool) {
	token, ok := bearerToken(r)
	if !ok {
		msg := "Missing Authorization header"
		if r.Header.Get("Authorization") != "" {
			msg = "Invalid Authorization header"
		}
		logging.Logger.Warnf("Event ID: COMPOSER_MISSING_AUTH, Description: %s for %s %s", msg, r.Method, r.URL.Path)
		writeError(w, http.StatusUnauthorized, msg)
		return nil, false
	}
	return h.newServices(token), true
}

func queryInt(r *http.Request, key string) (int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, &views.ValidationError{Fields: map[string]string{key: "must be a positive integer"}}
	}
	return id, nil
}

func (h *ComposerHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	token, _ := bearerToken(r)
	health, err := h.newServices(token).Health.Check(r.Context())
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, health)
}

func (h *ComposerHandler) GetTeams(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.authed(w, r)
	if !ok {
		return
	}
	list := views.NewTeamsList(svc)
	if err := list.Load(r.Context()); err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list.Teams())
}

func (h *ComposerHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	teamID, err := queryInt(r, "teamId")
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	svc, ok := h.authed(w, r)
	if !ok {
		return
	}
	list := views.NewProjectsList(svc, teamID)
	if err := list.Load(r.Context()); err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list.Projects())
}

func (h *ComposerHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	projectID, err := queryInt(r, "projectId")
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	svc, ok := h.authed(w, r)
	if !ok {
		return
	}
	board := views.NewTasksBoard(svc, projectID)
	if err := board.Load(r.Context()); err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	resp := BoardResponse{
		ProjectID:  projectID,
		TeamID:     board.TeamID(),
		BackTarget: board.BackTarget(),
	}
	for _, col := range board.Columns() {
		tasks := col.Tasks
		// the all-tasks board is enriched by Load; a project board only has its projects
		if projectID != 0 {
			tasks = services.EnrichTasks(tasks, svc.Projects.Projects.Items(), svc.Teams.Teams.Items())
		}
		resp.Columns = append(resp.Columns, BoardColumn{Status: col.Status, Label: col.Label, Tasks: tasks})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ComposerHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	taskID, err := strconv.ParseInt(mux.Vars(r)["taskId"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}
	svc, ok := h.authed(w, r)
	if !ok {
		return
	}
	section := views.NewCommentsSection(svc, taskID)
	if err := section.Load(r.Context()); err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, section.Comments())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger.Errorf("Event ID: COMPOSER_ENCODE_FAILED, Description: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeUpstreamError passes API status codes through and maps everything else
// to 400 (bad input), 503 (breaker open) or 502.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		apiErr *utils.APIError
		valErr *views.ValidationError
	)
	switch {
	case errors.As(err, &valErr):
		writeError(w, http.StatusBadRequest, valErr.Error())
	case errors.As(err, &apiErr):
		writeError(w, apiErr.StatusCode, apiErr.Message)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		writeError(w, http.StatusServiceUnavailable, "Upstream API is unavailable")
	default:
		logging.Logger.Errorf("Event ID: COMPOSER_UPSTREAM_FAILED, Description: %s %s failed: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusBadGateway, "Upstream API request failed")
	}
}
