// Package giturl derives organization slugs and canonical clone URLs from
// Azure DevOps organization URLs.
//
// Organization URLs in the wild come in three shapes: the multi-tenant host
// (dev.azure.com/<org>), the legacy single-tenant host
// (<org>.visualstudio.com), and anything else (self-hosted or malformed).
// The builder always produces some URL rather than fail.
package giturl

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// MultiTenantHost is the canonical Azure DevOps host.
	MultiTenantHost = "dev.azure.com"

	// SingleTenantSuffix matches legacy <org>.visualstudio.com hosts.
	SingleTenantSuffix = ".visualstudio.com"

	// SSHHost is the SSH endpoint, shared by all host shapes.
	SSHHost = "ssh.dev.azure.com"
)

// Kind selects the clone URL flavor.
type Kind string

const (
	KindHTTPS Kind = "https"
	KindSSH   Kind = "ssh"
)

// Slug extracts the short organization identifier from an organization URL.
// A URL that cannot be parsed yields an empty slug, never an error.
func Slug(organizationURL string) string {
	u, err := url.Parse(strings.TrimSpace(organizationURL))
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())

	switch {
	case host == MultiTenantHost:
		return firstPathSegment(u)
	case strings.HasSuffix(host, SingleTenantSuffix) && host != strings.TrimPrefix(SingleTenantSuffix, "."):
		return strings.SplitN(host, ".", 2)[0]
	default:
		return firstPathSegment(u)
	}
}

// firstPathSegment returns the first path segment, percent-decoded.
func firstPathSegment(u *url.URL) string {
	trimmed := strings.Trim(u.EscapedPath(), "/")
	if trimmed == "" {
		return ""
	}

	segment := strings.SplitN(trimmed, "/", 2)[0]

	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return segment
	}

	return decoded
}

// Build returns the clone URL of the given kind for a project/repository
// pair under the organization. Project and repository names are escaped for
// path embedding; a malformed organization URL falls back to the
// multi-tenant template with whatever slug could be derived.
func Build(kind Kind, organizationURL, projectName, repoName string) string {
	project := url.PathEscape(projectName)
	repo := url.PathEscape(repoName)
	slug := Slug(organizationURL)

	if kind == KindSSH {
		// SSH is independent of the organization host shape.
		return fmt.Sprintf("git@%s:v3/%s/%s/%s", SSHHost, slug, project, repo)
	}

	host := ""

	if u, err := url.Parse(strings.TrimSpace(organizationURL)); err == nil {
		host = strings.ToLower(u.Hostname())
	}

	if strings.HasSuffix(host, SingleTenantSuffix) && host != strings.TrimPrefix(SingleTenantSuffix, ".") {
		return fmt.Sprintf("https://%s/%s/_git/%s", host, project, repo)
	}

	// Multi-tenant form doubles as the fallback for unrecognized hosts.
	return fmt.Sprintf("https://%s@%s/%s/%s/_git/%s", slug, MultiTenantHost, slug, project, repo)
}

// CloneCommand returns the ready-to-paste git clone invocation.
func CloneCommand(kind Kind, organizationURL, projectName, repoName string) string {
	return "git clone " + Build(kind, organizationURL, projectName, repoName)
}
