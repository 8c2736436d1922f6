package services

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruth8415/TeamTasks/apitest"
	"github.com/ruth8415/TeamTasks/models"
	"github.com/ruth8415/TeamTasks/utils"
)

func newTestServices(t *testing.T, api *apitest.Server, token string) *Services {
	t.Helper()
	session := NewSession("")
	if token != "" {
		require.NoError(t, session.Save(models.AuthResponse{Token: token, User: models.User{ID: 1, Name: "Ana", Email: "ana@example.com"}}))
	}
	client := NewClient(api.BaseURL(), utils.NewHTTPClient(5*time.Second), NewBreaker("test", 3, time.Second), session)
	return New(client)
}

func seed(api *apitest.Server) {
	api.Mu.Lock()
	defer api.Mu.Unlock()
	api.Teams = []models.Team{{ID: 1, Name: "Platform"}, {ID: 2, Name: "Mobile"}}
	api.Projects = []models.Project{
		{ID: 10, Name: "API", TeamID: 1},
		{ID: 11, Name: "iOS", TeamID: 2},
		{ID: 12, Name: "Orphan", TeamID: 99},
	}
	api.Tasks = []models.Task{
		{ID: 20, Title: "Design schema", Status: models.StatusTodo, Priority: models.PriorityHigh, ProjectID: 10},
		{ID: 21, Title: "Login screen", Status: models.StatusInProgress, Priority: models.PriorityNormal, ProjectID: 11},
		{ID: 22, Title: "Lost task", Status: models.StatusDone, Priority: models.PriorityLow, ProjectID: 404},
	}
}

func TestAuthService_LoginPersistsSession(t *testing.T) {
	api := apitest.New(t)
	api.AddUser("Ana", "ana@example.com", "secret1")

	path := filepath.Join(t.TempDir(), "session.json")
	session := NewSession(path)
	svc := New(NewClient(api.BaseURL(), nil, nil, session))
	ctx := context.Background()

	user, err := svc.Auth.Login(ctx, models.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
	assert.True(t, svc.Auth.IsAuthenticated(time.Now()))

	current, ok := session.CurrentUser.Get()
	require.True(t, ok)
	assert.Equal(t, "ana@example.com", current.Email)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	restored := NewSession(path)
	require.NoError(t, restored.Load())
	assert.Equal(t, session.Token(), restored.Token())

	me, err := New(NewClient(api.BaseURL(), nil, nil, restored)).Auth.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)

	require.NoError(t, svc.Auth.Logout())
	assert.False(t, svc.Auth.IsAuthenticated(time.Now()))
	assert.NoFileExists(t, path)
}

func TestAuthService_LoginRejected(t *testing.T) {
	api := apitest.New(t)
	api.AddUser("Ana", "ana@example.com", "secret1")
	svc := newTestServices(t, api, "")

	_, err := svc.Auth.Login(context.Background(), models.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, utils.IsUnauthorized(err))
	assert.Equal(t, "Invalid credentials", utils.ErrorMessage(err))
}

func TestAuthService_Register(t *testing.T) {
	api := apitest.New(t)
	svc := newTestServices(t, api, "")

	user, err := svc.Auth.Register(context.Background(), models.RegisterRequest{Name: "Dan", Email: "dan@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Dan", user.Name)
	assert.NotEmpty(t, svc.Client.Session().Token())

	_, err = svc.Auth.Me(context.Background())
	require.NoError(t, err)
}

func TestAuthService_MeWithoutToken(t *testing.T) {
	api := apitest.New(t)
	svc := newTestServices(t, api, "")

	_, err := svc.Auth.Me(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	api := apitest.New(t)
	svc := newTestServices(t, api, "stale-token")

	_, err := svc.Teams.Load(context.Background())
	require.Error(t, err)
	assert.True(t, utils.IsUnauthorized(err))
	assert.Empty(t, svc.Client.Session().Token())
	_, ok := svc.Client.Session().CurrentUser.Get()
	assert.False(t, ok)
}

func TestTeamsService_CreateReloads(t *testing.T) {
	api := apitest.New(t)
	token := api.AddUser("Ana", "ana@example.com", "secret1")
	svc := newTestServices(t, api, token)
	ctx := context.Background()

	var notified [][]models.Team
	cancel := svc.Teams.Teams.Subscribe(func(teams []models.Team) { notified = append(notified, teams) })
	defer cancel()

	team, err := svc.Teams.Create(ctx, models.CreateTeamRequest{Name: "Core", Description: "core team"})
	require.NoError(t, err)
	assert.Equal(t, "Core", team.Name)

	require.Len(t, notified, 1)
	assert.Equal(t, []models.Team{*team}, svc.Teams.Teams.Items())
	assert.Equal(t, 1, api.Count("GET /api/teams"))
}

func TestTeamsService_Members(t *testing.T) {
	api := apitest.New(t)
	token := api.AddUser("Ana", "ana@example.com", "secret1")
	api.AddUser("Ben", "ben@example.com", "secret1")
	svc := newTestServices(t, api, token)
	ctx := context.Background()

	team, err := svc.Teams.Create(ctx, models.CreateTeamRequest{Name: "Core"})
	require.NoError(t, err)

	require.NoError(t, svc.Teams.AddMember(ctx, team.ID, "ben@example.com"))
	members, err := svc.Teams.Members(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Ben", members[0].Name)

	loaded, ok := svc.Teams.Get(team.ID)
	require.True(t, ok)
	assert.Len(t, loaded.Members, 1)

	err = svc.Teams.AddMember(ctx, team.ID, "nobody@example.com")
	assert.True(t, utils.IsNotFound(err))

	require.NoError(t, svc.Teams.RemoveMember(ctx, team.ID, members[0].ID))
	members, err = svc.Teams.Members(ctx, team.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestProjectsService_ReloadKeepsScope(t *testing.T) {
	api := apitest.New(t)
	token := api.AddUser("Ana", "ana@example.com", "secret1")
	seed(api)
	svc := newTestServices(t, api, token)
	ctx := context.Background()

	projects, err := svc.Projects.Load(ctx, 1)
	require.NoError(t, err)
	require.Len(t, projects, 1)

	_, err = svc.Projects.Create(ctx, models.CreateProjectRequest{Name: "Billing", TeamID: 1})
	require.NoError(t, err)

	assert.Len(t, svc.Projects.Projects.Items(), 2)
	assert.Equal(t, 2, api.Count("GET /api/projects?teamId=1"))
}

func TestProjectsService_DeleteConflict(t *testing.T) {
	api := apitest.New(t)
	token := api.AddUser("Ana", "ana@example.com", "secret1")
	seed(api)
	svc := newTestServices(t, api, token)

	err := svc.Projects.Delete(context.Background(), 10)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, utils.StatusCode(err))
	assert.Equal(t, "Project has tasks", utils.ErrorMessage(err))
}

func TestTasksService_UpdateAndDelete(t *testing.T) {
	api := apitest.New(t)
	token := api.AddUser("Ana", "ana@example.com", "secret1")
	seed(api)
	svc := newTestServices(t, api, token)
	ctx := context.Background()

	_, err := svc.Tasks.Load(ctx, 10)
	require.NoError(t, err)

	done := models.StatusDone
	task, err := svc.Tasks.Update(ctx, 20, models.UpdateTaskRequest{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, task.Status)
	assert.Equal(t, "Design schema", task.Title, "partial update must keep other fields")

	loaded, ok := svc.Tasks.Get(20)
	require.True(t, ok)
	assert.Equal(t, models.StatusDone, loaded.Status)

	require.NoError(t, svc.Tasks.Delete(ctx, 20))
	assert.Empty(t, svc.Tasks.Tasks.Items())
	assert.Equal(t, 3, api.Count("GET /api/tasks?projectId=10"))
}

func TestTasksService_ReloadFailureKeepsMutationResult(t *testing.T) {
	api := apitest.New(t)
	token := api.AddUser("Ana", "ana@example.com", "secret1")
	seed(api)
	svc := newTestServices(t, api, token)
	ctx := context.Background()

	api.FailNext("GET /api/tasks", http.StatusServiceUnavailable)
	task, err := svc.Tasks.Create(ctx, models.CreateTaskRequest{Title: "New", Status: models.StatusTodo, Priority: models.PriorityNormal, ProjectID: 10})
	require.NoError(t, err)
	assert.Equal(t, "New", task.Title)
	assert.False(t, svc.Tasks.Tasks.Loading())
}

func TestCommentsService(t *testing.T) {
	api := apitest.New(t)
	token := api.AddUser("Ana", "ana@example.com", "secret1")
	seed(api)
	svc := newTestServices(t, api, token)
	ctx := context.Background()

	comments, err := svc.Comments.Load(ctx, 20)
	require.NoError(t, err)
	assert.Empty(t, comments)

	c, err := svc.Comments.Create(ctx, models.CreateCommentRequest{TaskID: 20, Body: "Looks good"})
	require.NoError(t, err)
	require.Len(t, svc.Comments.Comments.Items(), 1)

	require.NoError(t, svc.Comments.Delete(ctx, c.ID))
	assert.Empty(t, svc.Comments.Comments.Items())
}

func TestHealthService(t *testing.T) {
	api := apitest.New(t)
	svc := newTestServices(t, api, "")

	health, err := svc.Health.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	api := apitest.New(t)
	svc := New(NewClient(api.BaseURL(), nil, NewBreaker("test", 1, time.Minute), nil))
	ctx := context.Background()

	api.FailNext("GET /api/health", 500, 500)
	for i := 0; i < 2; i++ {
		_, err := svc.Health.Check(ctx)
		require.Error(t, err)
		assert.Equal(t, 500, utils.StatusCode(err))
	}

	_, err := svc.Health.Check(ctx)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, api.Count("GET /api/health"))
}

func TestClient_ClientErrorsDoNotTripBreaker(t *testing.T) {
	api := apitest.New(t)
	svc := New(NewClient(api.BaseURL(), nil, NewBreaker("test", 1, time.Minute), nil))
	ctx := context.Background()

	api.FailNext("GET /api/health", 404, 404, 404)
	for i := 0; i < 3; i++ {
		_, err := svc.Health.Check(ctx)
		assert.True(t, utils.IsNotFound(err))
	}

	_, err := svc.Health.Check(ctx)
	assert.NoError(t, err)
}

func TestEnrichProjects(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "Platform"}}
	projects := []models.Project{{ID: 10, Name: "API", TeamID: 1}, {ID: 11, Name: "Ghost", TeamID: 7}}

	enriched := EnrichProjects(projects, teams)
	assert.Equal(t, "Platform", enriched[0].TeamName)
	assert.Empty(t, enriched[1].TeamName)
	assert.Empty(t, projects[0].TeamName, "input must not be modified")
}

func TestEnrichTasks(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "Platform"}}
	projects := []models.Project{{ID: 10, Name: "API", TeamID: 1}, {ID: 11, Name: "Ghost", TeamID: 7}}
	tasks := []models.Task{
		{ID: 1, ProjectID: 10},
		{ID: 2, ProjectID: 11},
		{ID: 3, ProjectID: 12, ProjectName: "stale", TeamName: "stale"},
	}

	enriched := EnrichTasks(tasks, projects, teams)
	assert.Equal(t, "API", enriched[0].ProjectName)
	assert.Equal(t, "Platform", enriched[0].TeamName)
	assert.Equal(t, "Ghost", enriched[1].ProjectName)
	assert.Empty(t, enriched[1].TeamName)
	assert.Empty(t, enriched[2].ProjectName)
	assert.Empty(t, enriched[2].TeamName)
}

func TestCurrentTeam(t *testing.T) {
	ct := NewCurrentTeam()
	assert.Equal(t, int64(0), ct.ID())
	ct.SetCurrentTeam(3)
	assert.Equal(t, int64(3), ct.ID())
	ct.SetCurrentTeam(0)
	_, ok := ct.Get()
	assert.False(t, ok)
}

func TestSession_SaveRestrictsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	session := NewSession(path)
	require.NoError(t, session.Save(models.AuthResponse{Token: "t", User: models.User{ID: 1}}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestTasksService_FetchLeavesCollection(t *testing.T) {
	api := apitest.New(t)
	seed(api)
	svc := newTestServices(t, api, api.AddUser("Ana", "ana@example.com", "secret1"))
	ctx := context.Background()

	tasks, err := svc.Tasks.Fetch(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Empty(t, svc.Tasks.Tasks.Items())
	assert.Equal(t, 1, api.Count("GET /api/tasks?projectId=10"))
}

func TestTasksService_ReloadWithReplacesDefaultReload(t *testing.T) {
	api := apitest.New(t)
	seed(api)
	svc := newTestServices(t, api, api.AddUser("Ana", "ana@example.com", "secret1"))
	ctx := context.Background()

	_, err := svc.Tasks.Load(ctx, 10)
	require.NoError(t, err)
	hooked := 0
	svc.Tasks.ReloadWith(func(context.Context) error {
		hooked++
		return nil
	})

	status := models.StatusDone
	_, err = svc.Tasks.Update(ctx, 20, models.UpdateTaskRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 1, hooked)
	assert.Equal(t, 1, api.Count("GET /api/tasks"))

	// a plain Load drops the hook again
	_, err = svc.Tasks.Load(ctx, 10)
	require.NoError(t, err)
	require.NoError(t, svc.Tasks.Delete(ctx, 20))
	assert.Equal(t, 1, hooked)
	assert.Equal(t, 3, api.Count("GET /api/tasks?projectId=10"))
}

func TestProjectsService_ReloadWithReplacesDefaultReload(t *testing.T) {
	api := apitest.New(t)
	seed(api)
	svc := newTestServices(t, api, api.AddUser("Ana", "ana@example.com", "secret1"))
	ctx := context.Background()

	hooked := 0
	svc.Projects.ReloadWith(func(context.Context) error {
		hooked++
		return nil
	})
	_, err := svc.Projects.Create(ctx, models.CreateProjectRequest{Name: "Billing", TeamID: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, hooked)
	assert.Zero(t, api.Count("GET /api/projects"))
}
