package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"github.com/inovacc/azpanel/internal/devops"
	"github.com/inovacc/azpanel/internal/giturl"
	"github.com/inovacc/azpanel/internal/model"
	"github.com/inovacc/azpanel/internal/store"
)

// DefaultFeedbackDuration is how long a "copied" acknowledgment stays live.
const DefaultFeedbackDuration = 2 * time.Second

// CopyFeedback acknowledges that a clone command was placed on the
// clipboard. At most one instance is live at a time.
type CopyFeedback struct {
	RepositoryID string
	Kind         giturl.Kind
}

// Clipboard abstracts the system clipboard for testability.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// PanelOptions configures the panel controller.
type PanelOptions struct {
	Logger    *slog.Logger
	Clipboard Clipboard

	// NewLister builds the remote client for a credential pair. Defaults
	// to the devops REST client; tests substitute fakes.
	NewLister func(creds *model.Credentials) (Lister, error)

	// FeedbackDuration overrides DefaultFeedbackDuration when positive.
	FeedbackDuration time.Duration
}

// Panel owns the whole connect/browse/copy state of the organization
// panel: credentials, the fetched hierarchy, the expanded set, the search
// query, and the single-slot copy feedback. All mutable state lives here;
// there are no package-level singletons.
type Panel struct {
	mu sync.Mutex

	store     store.Store
	logger    *slog.Logger
	clipboard Clipboard
	newLister func(creds *model.Credentials) (Lister, error)
	feedback  time.Duration

	connected  bool
	creds      *model.Credentials
	loading    bool
	generation int
	hierarchy  Hierarchy
	expanded   map[string]struct{}
	query      string

	copyFeedback  *CopyFeedback
	feedbackTimer *time.Timer
}

// NewPanel creates a panel controller over the given credential store.
func NewPanel(st store.Store, opts PanelOptions) *Panel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cb := opts.Clipboard
	if cb == nil {
		cb = systemClipboard{}
	}

	newLister := opts.NewLister
	if newLister == nil {
		newLister = func(creds *model.Credentials) (Lister, error) {
			return devops.NewClient(creds, devops.Options{Logger: logger})
		}
	}

	duration := opts.FeedbackDuration
	if duration <= 0 {
		duration = DefaultFeedbackDuration
	}

	return &Panel{
		store:     st,
		logger:    logger,
		clipboard: cb,
		newLister: newLister,
		feedback:  duration,
		hierarchy: EmptyHierarchy(),
		expanded:  map[string]struct{}{},
	}
}

// Hydrate restores the connection state from the credential store. It is
// meant to be called exactly once at startup; storage is the sole source of
// truth across restarts.
func (p *Panel) Hydrate() error {
	creds, err := p.store.LoadCredentials()
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if creds != nil {
		p.creds = creds
		p.connected = true
	}

	return nil
}

// Connect persists the credentials, marks the panel connected, and fetches
// the hierarchy.
func (p *Panel) Connect(ctx context.Context, creds *model.Credentials) error {
	if !creds.Valid() {
		return fmt.Errorf("organization URL and access token are required")
	}

	if err := p.store.SaveCredentials(creds); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	p.mu.Lock()
	c := *creds
	p.creds = &c
	p.connected = true
	p.mu.Unlock()

	return p.Refresh(ctx)
}

// Disconnect clears the credentials and resets every piece of derived
// state: hierarchy, expanded set, query, and copy feedback. A refresh still
// in flight is invalidated via the generation counter, so its result is
// discarded rather than written into the reset cache.
func (p *Panel) Disconnect() error {
	if err := p.store.ClearCredentials(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.generation++
	p.connected = false
	p.creds = nil
	p.loading = false
	p.hierarchy = EmptyHierarchy()
	p.expanded = map[string]struct{}{}
	p.query = ""
	p.clearFeedbackLocked()

	return nil
}

// Refresh re-fetches the whole hierarchy. The loading flag is true from the
// start of the project fetch until every project's repository fetch has
// completed. Stale results from a refresh that raced a disconnect (or a
// newer refresh) are dropped.
func (p *Panel) Refresh(ctx context.Context) error {
	p.mu.Lock()

	if !p.connected || p.creds == nil {
		p.mu.Unlock()

		return fmt.Errorf("not connected")
	}

	creds := *p.creds
	gen := p.generation
	p.loading = true
	p.mu.Unlock()

	lister, err := p.newLister(&creds)
	if err != nil {
		p.mu.Lock()
		p.loading = false
		p.mu.Unlock()

		return err
	}

	h := FetchHierarchy(ctx, lister, p.logger)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.generation != gen {
		p.logger.Debug("discarding stale refresh result")

		return nil
	}

	p.hierarchy = h
	p.loading = false

	return nil
}

// ToggleExpanded flips a project's membership in the expanded set.
func (p *Panel) ToggleExpanded(projectID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.expanded[projectID]; ok {
		delete(p.expanded, projectID)
	} else {
		p.expanded[projectID] = struct{}{}
	}
}

// IsExpanded reports whether a project is currently expanded.
func (p *Panel) IsExpanded(projectID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.expanded[projectID]

	return ok
}

// SetQuery replaces the active search query.
func (p *Panel) SetQuery(query string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.query = query
}

// Query returns the active search query.
func (p *Panel) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.query
}

// View computes the filtered hierarchy for the active query.
func (p *Panel) View() FilteredView {
	p.mu.Lock()
	defer p.mu.Unlock()

	return ComputeFilteredView(p.query, p.hierarchy.Projects, p.hierarchy.Repositories)
}

// Hierarchy returns the unfiltered hierarchy.
func (p *Panel) Hierarchy() Hierarchy {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.hierarchy
}

// Connected reports the connection state.
func (p *Panel) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.connected
}

// Loading reports whether a hierarchy fetch is in flight.
func (p *Panel) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.loading
}

// Credentials returns a copy of the active credentials, or nil.
func (p *Panel) Credentials() *model.Credentials {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.creds == nil {
		return nil
	}

	c := *p.creds

	return &c
}

// Copy builds the git clone command for the repository, writes it to the
// clipboard, and arms the copy feedback. A clipboard failure is logged and
// swallowed; the feedback is set either way. Issuing a new copy always
// replaces the previous feedback and cancels its pending expiry, so exactly
// one timer is ever armed.
func (p *Panel) Copy(kind giturl.Kind, projectName, repoName, repositoryID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.creds == nil {
		return
	}

	command := giturl.CloneCommand(kind, p.creds.OrganizationURL, projectName, repoName)

	if err := p.clipboard.WriteAll(command); err != nil {
		p.logger.Warn("clipboard write failed", slog.Any("error", err))
	}

	p.clearFeedbackLocked()

	fb := &CopyFeedback{RepositoryID: repositoryID, Kind: kind}
	p.copyFeedback = fb
	p.feedbackTimer = time.AfterFunc(p.feedback, func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		// Only expire the feedback this timer was armed for.
		if p.copyFeedback == fb {
			p.copyFeedback = nil
			p.feedbackTimer = nil
		}
	})
}

// Feedback returns a copy of the live copy feedback, or nil.
func (p *Panel) Feedback() *CopyFeedback {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.copyFeedback == nil {
		return nil
	}

	fb := *p.copyFeedback

	return &fb
}

func (p *Panel) clearFeedbackLocked() {
	if p.feedbackTimer != nil {
		p.feedbackTimer.Stop()
		p.feedbackTimer = nil
	}

	p.copyFeedback = nil
}
