package model

// Credentials is the organization URL / personal access token pair that
// attaches a remote Azure DevOps organization.
type Credentials struct {
	// OrganizationURL is the base URL of the organization,
	// e.g. https://dev.azure.com/acme or https://acme.visualstudio.com
	OrganizationURL string `json:"organization_url"`

	// AccessToken is the personal access token sent as the password half
	// of HTTP Basic auth. Never used as username.
	AccessToken string `json:"access_token"`
}

// Valid reports whether both credential fields are non-empty.
// That is the sole validity invariant; the token is not checked remotely.
func (c *Credentials) Valid() bool {
	return c != nil && c.OrganizationURL != "" && c.AccessToken != ""
}

// Project is an Azure DevOps team project as returned by the projects API.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Repository is a Git repository owned by exactly one project.
type Repository struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	DefaultBranch string `json:"defaultBranch,omitempty"`
	SizeBytes     int64  `json:"size,omitempty"`
}
