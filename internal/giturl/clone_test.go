package giturl

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "multi-tenant", url: "https://dev.azure.com/acme", want: "acme"},
		{name: "multi-tenant trailing slash", url: "https://dev.azure.com/acme/", want: "acme"},
		{name: "multi-tenant encoded segment", url: "https://dev.azure.com/acme%20corp", want: "acme corp"},
		{name: "single-tenant", url: "https://acme.visualstudio.com", want: "acme"},
		{name: "single-tenant with path", url: "https://acme.visualstudio.com/whatever", want: "acme"},
		{name: "bare visualstudio host falls back to path", url: "https://visualstudio.com/acme", want: "acme"},
		{name: "unknown host uses first path segment", url: "https://git.example.com/acme/stuff", want: "acme"},
		{name: "unknown host without path", url: "https://git.example.com", want: ""},
		{name: "unparseable", url: "://not a url", want: ""},
		{name: "empty", url: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.url); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		orgURL  string
		project string
		repo    string
		want    string
	}{
		{
			name:    "https multi-tenant",
			kind:    KindHTTPS,
			orgURL:  "https://dev.azure.com/acme",
			project: "My Proj",
			repo:    "core",
			want:    "https://acme@dev.azure.com/acme/My%20Proj/_git/core",
		},
		{
			name:    "ssh multi-tenant",
			kind:    KindSSH,
			orgURL:  "https://dev.azure.com/acme",
			project: "My Proj",
			repo:    "core",
			want:    "git@ssh.dev.azure.com:v3/acme/My%20Proj/core",
		},
		{
			name:    "https single-tenant",
			kind:    KindHTTPS,
			orgURL:  "https://acme.visualstudio.com",
			project: "My Proj",
			repo:    "core",
			want:    "https://acme.visualstudio.com/My%20Proj/_git/core",
		},
		{
			name:    "ssh single-tenant",
			kind:    KindSSH,
			orgURL:  "https://acme.visualstudio.com",
			project: "My Proj",
			repo:    "core",
			want:    "git@ssh.dev.azure.com:v3/acme/My%20Proj/core",
		},
		{
			name:    "https unknown host falls back to multi-tenant form",
			kind:    KindHTTPS,
			orgURL:  "https://git.example.com/acme",
			project: "proj",
			repo:    "repo",
			want:    "https://acme@dev.azure.com/acme/proj/_git/repo",
		},
		{
			name:    "https unparseable still yields a url",
			kind:    KindHTTPS,
			orgURL:  "://not a url",
			project: "proj",
			repo:    "repo",
			want:    "https://@dev.azure.com//proj/_git/repo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.kind, tt.orgURL, tt.project, tt.repo); got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCloneCommand(t *testing.T) {
	got := CloneCommand(KindHTTPS, "https://dev.azure.com/acme", "proj", "repo")
	want := "git clone https://acme@dev.azure.com/acme/proj/_git/repo"

	if got != want {
		t.Errorf("CloneCommand() = %q, want %q", got, want)
	}
}
