package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruth8415/TeamTasks/apitest"
	"github.com/ruth8415/TeamTasks/config"
	"github.com/ruth8415/TeamTasks/models"
)

func newComposer(t *testing.T) (*apitest.Server, http.Handler, string) {
	t.Helper()
	api := apitest.New(t)
	token := api.AddUser("Ana", "ana@example.com", "secret1")

	api.Mu.Lock()
	api.Teams = []models.Team{{ID: 1, Name: "Platform"}, {ID: 2, Name: "Mobile"}}
	api.Projects = []models.Project{
		{ID: 10, Name: "API", TeamID: 1},
		{ID: 11, Name: "iOS", TeamID: 2},
	}
	api.Tasks = []models.Task{
		{ID: 20, Title: "Design schema", Status: models.StatusTodo, Priority: models.PriorityHigh, ProjectID: 10},
		{ID: 21, Title: "Write handlers", Status: models.StatusInProgress, Priority: models.PriorityNormal, ProjectID: 10},
		{ID: 22, Title: "Login screen", Status: models.StatusDone, Priority: models.PriorityLow, ProjectID: 11},
	}
	api.Comments = []models.Comment{{ID: 30, TaskID: 20, Body: "Looks good", CreatedAt: time.Now()}}
	api.Mu.Unlock()

	cfg := config.Default()
	cfg.APIURL = api.BaseURL()
	cfg.HTTPTimeout = 5 * time.Second
	return api, NewRouter(NewComposerHandler(NewServicesFactory(cfg))), token
}

func get(t *testing.T, h http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthDoesNotNeedToken(t *testing.T) {
	_, h, _ := newComposer(t)

	rec := get(t, h, "/api/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody[models.Health](t, rec).Status)
}

func TestMissingAuthorization(t *testing.T) {
	api, h, _ := newComposer(t)

	rec := get(t, h, "/api/teams", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing Authorization header", decodeBody[map[string]string](t, rec)["message"])
	assert.Zero(t, api.Count("GET /api/teams"))
}

func TestRejectsNonBearerAuthorization(t *testing.T) {
	api, h, _ := newComposer(t)

	for _, header := range []string{"Basic YW5hOnNlY3JldA==", "Bearer ", "token-without-scheme"} {
		req := httptest.NewRequest(http.MethodGet, "/api/teams", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.Equal(t, "Invalid Authorization header", decodeBody[map[string]string](t, rec)["message"], header)
	}
	assert.Zero(t, api.Count("GET /api/teams"))
}

func TestGetBoardAllTasksEnrichesEveryColumn(t *testing.T) {
	api, h, token := newComposer(t)
	api.Mu.Lock()
	api.Tasks[0].Status = models.StatusDone
	api.Mu.Unlock()

	rec := get(t, h, "/api/board", token)

	require.Equal(t, http.StatusOK, rec.Code)
	board := decodeBody[BoardResponse](t, rec)
	require.Len(t, board.Columns[2].Tasks, 2)
	for _, task := range board.Columns[2].Tasks {
		assert.NotEmpty(t, task.ProjectName, "task %d", task.ID)
		assert.NotEmpty(t, task.TeamName, "task %d", task.ID)
	}
}

func TestForwardsUpstreamStatus(t *testing.T) {
	_, h, _ := newComposer(t)

	rec := get(t, h, "/api/teams", "not-a-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", decodeBody[map[string]string](t, rec)["message"])
}

func TestGetTeams(t *testing.T) {
	_, h, token := newComposer(t)

	rec := get(t, h, "/api/teams", token)

	require.Equal(t, http.StatusOK, rec.Code)
	teams := decodeBody[[]models.Team](t, rec)
	require.Len(t, teams, 2)
	assert.Equal(t, "Platform", teams[0].Name)
}

func TestGetProjectsEnrichedWithTeamNames(t *testing.T) {
	_, h, token := newComposer(t)

	rec := get(t, h, "/api/projects", token)

	require.Equal(t, http.StatusOK, rec.Code)
	projects := decodeBody[[]models.Project](t, rec)
	require.Len(t, projects, 2)
	assert.Equal(t, "Platform", projects[0].TeamName)
	assert.Equal(t, "Mobile", projects[1].TeamName)
}

func TestGetProjectsForTeam(t *testing.T) {
	_, h, token := newComposer(t)

	rec := get(t, h, "/api/projects?teamId=2", token)

	require.Equal(t, http.StatusOK, rec.Code)
	projects := decodeBody[[]models.Project](t, rec)
	require.Len(t, projects, 1)
	assert.Equal(t, "iOS", projects[0].Name)
}

func TestGetProjectsRejectsBadTeamID(t *testing.T) {
	api, h, token := newComposer(t)

	rec := get(t, h, "/api/projects?teamId=abc", token)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody[map[string]string](t, rec)["message"], "teamId")
	assert.Zero(t, api.Count("GET /api/projects"))
}

func TestGetBoardAllTasks(t *testing.T) {
	_, h, token := newComposer(t)

	rec := get(t, h, "/api/board", token)

	require.Equal(t, http.StatusOK, rec.Code)
	board := decodeBody[BoardResponse](t, rec)
	assert.Empty(t, board.BackTarget)
	require.Len(t, board.Columns, 3)
	assert.Equal(t, models.StatusTodo, board.Columns[0].Status)
	assert.Equal(t, "To Do", board.Columns[0].Label)
	require.Len(t, board.Columns[2].Tasks, 1)
	done := board.Columns[2].Tasks[0]
	assert.Equal(t, "iOS", done.ProjectName)
	assert.Equal(t, "Mobile", done.TeamName)
}

func TestGetBoardForProject(t *testing.T) {
	_, h, token := newComposer(t)

	rec := get(t, h, "/api/board?projectId=10", token)

	require.Equal(t, http.StatusOK, rec.Code)
	board := decodeBody[BoardResponse](t, rec)
	assert.Equal(t, int64(10), board.ProjectID)
	assert.Equal(t, int64(1), board.TeamID)
	assert.Equal(t, "/projects/1", board.BackTarget)
	require.Len(t, board.Columns, 3)
	assert.Len(t, board.Columns[0].Tasks, 1)
	assert.Len(t, board.Columns[1].Tasks, 1)
	assert.Empty(t, board.Columns[2].Tasks)
	assert.Equal(t, "API", board.Columns[0].Tasks[0].ProjectName)
}

func TestGetBoardUpstreamFailure(t *testing.T) {
	api, h, token := newComposer(t)
	api.FailNext("GET /api/tasks", http.StatusInternalServerError)

	rec := get(t, h, "/api/board", token)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetComments(t *testing.T) {
	_, h, token := newComposer(t)

	rec := get(t, h, "/api/tasks/20/comments", token)

	require.Equal(t, http.StatusOK, rec.Code)
	comments := decodeBody[[]models.Comment](t, rec)
	require.Len(t, comments, 1)
	assert.Equal(t, "Looks good", comments[0].Body)
}

func TestGetCommentsInvalidTaskID(t *testing.T) {
	_, h, token := newComposer(t)

	rec := get(t, h, "/api/tasks/abc/comments", token)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	_, h, _ := newComposer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/teams", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
