package apitest

import (
	"net/http"
	"strings"
	"time"

	"github.com/ruth8415/TeamTasks/models"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Health{Status: "ok"})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if _, exists := s.accounts[req.Email]; exists {
		writeError(w, http.StatusConflict, "Email already registered")
		return
	}
	user := models.User{ID: s.id(), Name: req.Name, Email: req.Email}
	s.accounts[req.Email] = account{password: req.Password, user: user}
	writeJSON(w, http.StatusCreated, models.AuthResponse{Token: s.issueToken(user), User: user})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	s.Mu.Lock()
	defer s.Mu.Unlock()
	acc, ok := s.accounts[req.Email]
	if !ok || acc.password != req.Password {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, models.AuthResponse{Token: s.issueToken(acc.user), User: acc.user})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.Mu.Lock()
	user := s.tokens[token]
	s.Mu.Unlock()
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) listTeams(w http.ResponseWriter, r *http.Request) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	teams := make([]models.Team, 0, len(s.Teams))
	for _, t := range s.Teams {
		t.Members = s.Members[t.ID]
		teams = append(teams, t)
	}
	writeJSON(w, http.StatusOK, teams)
}

func (s *Server) createTeam(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTeamRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Team name is required")
		return
	}
	s.Mu.Lock()
	defer s.Mu.Unlock()
	team := models.Team{ID: s.id(), Name: req.Name, Description: req.Description}
	s.Teams = append(s.Teams, team)
	writeJSON(w, http.StatusCreated, team)
}

func (s *Server) updateTeam(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTeamRequest
	if !decode(w, r, &req) {
		return
	}
	id := pathID(r, "id")
	s.Mu.Lock()
	defer s.Mu.Unlock()
	for i := range s.Teams {
		if s.Teams[i].ID != id {
			continue
		}
		if req.Name != nil {
			s.Teams[i].Name = *req.Name
		}
		if req.Description != nil {
			s.Teams[i].Description = *req.Description
		}
		writeJSON(w, http.StatusOK, s.Teams[i])
		return
	}
	writeError(w, http.StatusNotFound, "Team not found")
}

func (s *Server) deleteTeam(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	s.Mu.Lock()
	defer s.Mu.Unlock()
	for i, t := range s.Teams {
		if t.ID == id {
			s.Teams = append(s.Teams[:i], s.Teams[i+1:]...)
			delete(s.Members, id)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Team not found")
}

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	members := s.Members[pathID(r, "id")]
	if members == nil {
		members = []models.Member{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (s *Server) addMember(w http.ResponseWriter, r *http.Request) {
	var req models.AddMemberRequest
	if !decode(w, r, &req) {
		return
	}
	teamID := pathID(r, "id")
	s.Mu.Lock()
	defer s.Mu.Unlock()
	acc, ok := s.accounts[req.Email]
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	for _, m := range s.Members[teamID] {
		if m.ID == acc.user.ID {
			writeError(w, http.StatusConflict, "User is already a member")
			return
		}
	}
	s.Members[teamID] = append(s.Members[teamID], models.Member{ID: acc.user.ID, Name: acc.user.Name, Email: acc.user.Email})
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Member added"})
}

func (s *Server) removeMember(w http.ResponseWriter, r *http.Request) {
	teamID, userID := pathID(r, "id"), pathID(r, "userId")
	s.Mu.Lock()
	defer s.Mu.Unlock()
	members := s.Members[teamID]
	for i, m := range members {
		if m.ID == userID {
			s.Members[teamID] = append(members[:i], members[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Member not found")
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	teamID := queryID(r, "teamId")
	s.Mu.Lock()
	defer s.Mu.Unlock()
	projects := make([]models.Project, 0, len(s.Projects))
	for _, p := range s.Projects {
		if teamID == 0 || p.TeamID == teamID {
			projects = append(projects, p)
		}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if !decode(w, r, &req) {
		return
	}
	s.Mu.Lock()
	defer s.Mu.Unlock()
	now := time.Now()
	project := models.Project{ID: s.id(), Name: req.Name, Description: req.Description, TeamID: req.TeamID, CreatedAt: &now}
	s.Projects = append(s.Projects, project)
	writeJSON(w, http.StatusCreated, project)
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProjectRequest
	if !decode(w, r, &req) {
		return
	}
	id := pathID(r, "id")
	s.Mu.Lock()
	defer s.Mu.Unlock()
	for i := range s.Projects {
		if s.Projects[i].ID != id {
			continue
		}
		if req.Name != nil {
			s.Projects[i].Name = *req.Name
		}
		if req.Description != nil {
			s.Projects[i].Description = *req.Description
		}
		writeJSON(w, http.StatusOK, s.Projects[i])
		return
	}
	writeError(w, http.StatusNotFound, "Project not found")
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	s.Mu.Lock()
	defer s.Mu.Unlock()
	for _, t := range s.Tasks {
		if t.ProjectID == id {
			writeError(w, http.StatusConflict, "Project has tasks")
			return
		}
	}
	for i, p := range s.Projects {
		if p.ID == id {
			s.Projects = append(s.Projects[:i], s.Projects[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Project not found")
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	projectID := queryID(r, "projectId")
	s.Mu.Lock()
	defer s.Mu.Unlock()
	tasks := make([]models.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if projectID == 0 || t.ProjectID == projectID {
			tasks = append(tasks, t)
		}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTaskRequest
	if !decode(w, r, &req) {
		return
	}
	s.Mu.Lock()
	defer s.Mu.Unlock()
	now := time.Now()
	task := models.Task{
		ID:          s.id(),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		ProjectID:   req.ProjectID,
		CreatedAt:   &now,
	}
	s.Tasks = append(s.Tasks, task)
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTaskRequest
	if !decode(w, r, &req) {
		return
	}
	id := pathID(r, "id")
	s.Mu.Lock()
	defer s.Mu.Unlock()
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if t.ID != id {
			continue
		}
		if req.Title != nil {
			t.Title = *req.Title
		}
		if req.Description != nil {
			t.Description = *req.Description
		}
		if req.Status != nil {
			t.Status = *req.Status
		}
		if req.Priority != nil {
			t.Priority = *req.Priority
		}
		writeJSON(w, http.StatusOK, *t)
		return
	}
	writeError(w, http.StatusNotFound, "Task not found")
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	s.Mu.Lock()
	defer s.Mu.Unlock()
	for i, t := range s.Tasks {
		if t.ID == id {
			s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Task not found")
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	taskID := queryID(r, "taskId")
	s.Mu.Lock()
	defer s.Mu.Unlock()
	comments := make([]models.Comment, 0)
	for _, c := range s.Comments {
		if c.TaskID == taskID {
			comments = append(comments, c)
		}
	}
	writeJSON(w, http.StatusOK, comments)
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCommentRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		writeError(w, http.StatusBadRequest, "Comment body is required")
		return
	}
	s.Mu.Lock()
	defer s.Mu.Unlock()
	comment := models.Comment{ID: s.id(), TaskID: req.TaskID, Body: req.Body, CreatedAt: time.Now()}
	s.Comments = append(s.Comments, comment)
	writeJSON(w, http.StatusCreated, comment)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	s.Mu.Lock()
	defer s.Mu.Unlock()
	for i, c := range s.Comments {
		if c.ID == id {
			s.Comments = append(s.Comments[:i], s.Comments[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Comment not found")
}
