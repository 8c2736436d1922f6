package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ruth8415/TeamTasks/logging"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.Logger.Debugf("Event ID: COMPOSER_REQUEST, Description: %s %s took %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// NewRouter wires the composer routes.
func NewRouter(h *ComposerHandler) http.Handler {
	r := mux.NewRouter()
	r.Use(logRequests)

	r.HandleFunc("/api/health", h.GetHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/teams", h.GetTeams).Methods(http.MethodGet)
	r.HandleFunc("/api/projects", h.GetProjects).Methods(http.MethodGet)
	r.HandleFunc("/api/board", h.GetBoard).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/{taskId}/comments", h.GetComments).Methods(http.MethodGet)

	return enableCORS(r)
}
