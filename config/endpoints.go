package config

// Endpoints are the API paths relative to the base URL.
var Endpoints = struct {
	Register string
	Login    string
	Me       string
	Health   string
	Teams    string
	Projects string
	Tasks    string
	Comments string
}{
	Register: "/auth/register",
	Login:    "/auth/login",
	Me:       "/auth/me",
	Health:   "/health",
	Teams:    "/teams",
	Projects: "/projects",
	Tasks:    "/tasks",
	Comments: "/comments",
}
