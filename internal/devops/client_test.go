package devops

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inovacc/azpanel/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(&model.Credentials{
		OrganizationURL: srv.URL,
		AccessToken:     "test-pat",
	}, Options{})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	return client, srv
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name  string
		creds model.Credentials
	}{
		{name: "missing url", creds: model.Credentials{AccessToken: "pat"}},
		{name: "missing token", creds: model.Credentials{OrganizationURL: "https://dev.azure.com/acme"}},
		{name: "both missing", creds: model.Credentials{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewClient(&tt.creds, Options{}); err == nil {
				t.Error("NewClient() should reject incomplete credentials")
			}
		})
	}
}

func TestNormalizeOrganizationURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://dev.azure.com/acme", "https://dev.azure.com/acme"},
		{"https://dev.azure.com/acme/", "https://dev.azure.com/acme"},
		{"acme", "https://dev.azure.com/acme"},
		{" https://acme.visualstudio.com/ ", "https://acme.visualstudio.com"},
	}

	for _, tt := range tests {
		if got := normalizeOrganizationURL(tt.in); got != tt.want {
			t.Errorf("normalizeOrganizationURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestListProjects(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/_apis/projects" {
			t.Errorf("path = %q, want /_apis/projects", r.URL.Path)
		}

		if got := r.URL.Query().Get("api-version"); got != "7.0" {
			t.Errorf("api-version = %q, want 7.0", got)
		}

		wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte(":test-pat"))
		if got := r.Header.Get("Authorization"); got != wantAuth {
			t.Errorf("Authorization = %q, want %q", got, wantAuth)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":2,"value":[
			{"id":"p1","name":"Alpha","description":"first"},
			{"id":"p2","name":"Beta"}
		]}`))
	}))

	projects, err := client.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}

	if len(projects) != 2 {
		t.Fatalf("len(projects) = %d, want 2", len(projects))
	}

	if projects[0].ID != "p1" || projects[0].Name != "Alpha" || projects[0].Description != "first" {
		t.Errorf("projects[0] = %+v", projects[0])
	}

	// API response order must be preserved
	if projects[1].ID != "p2" {
		t.Errorf("projects[1].ID = %q, want p2", projects[1].ID)
	}
}

func TestListProjects_NonSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.ListProjects(context.Background())
	if err == nil {
		t.Fatal("ListProjects() should return an error on non-success status")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *FetchError", err)
	}

	if fe.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want %d", fe.StatusCode, http.StatusUnauthorized)
	}
}

func TestListProjects_NetworkError(t *testing.T) {
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := client.ListProjects(context.Background())
	if err == nil {
		t.Fatal("ListProjects() should return an error when the server is unreachable")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *FetchError", err)
	}

	if fe.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for network failure", fe.StatusCode)
	}
}

func TestListRepositories(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// project names with spaces must be path-escaped
		if r.URL.EscapedPath() != "/My%20Proj/_apis/git/repositories" {
			t.Errorf("path = %q, want /My%%20Proj/_apis/git/repositories", r.URL.EscapedPath())
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":1,"value":[
			{"id":"r1","name":"core","defaultBranch":"refs/heads/main","size":2048}
		]}`))
	}))

	repos, err := client.ListRepositories(context.Background(), "p1", "My Proj")
	if err != nil {
		t.Fatalf("ListRepositories() error = %v", err)
	}

	if len(repos) != 1 {
		t.Fatalf("len(repos) = %d, want 1", len(repos))
	}

	want := model.Repository{ID: "r1", Name: "core", DefaultBranch: "refs/heads/main", SizeBytes: 2048}
	if repos[0] != want {
		t.Errorf("repos[0] = %+v, want %+v", repos[0], want)
	}
}

func TestListRepositories_FailureIsTyped(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.ListRepositories(context.Background(), "p1", "Gone")

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *FetchError", err)
	}

	if fe.Resource != "repositories/p1" {
		t.Errorf("Resource = %q, want repositories/p1", fe.Resource)
	}
}
