// Package workspace keeps the per-browser-session view state: which page is on
// screen, the sidebar, and which tables have search and export controls. The
// state round-trips through a gorilla session cookie between requests.
package workspace

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/konnectpro/konnectpro-gds/internal/ui/controls"
	"github.com/konnectpro/konnectpro-gds/internal/ui/nav"
)

const (
	sessionName = "konnectpro"
	sessionKey  = "workspace"
)

// Workspace is the view state of one browser session.
type Workspace struct {
	// ID identifies the browser session in update broadcasts.
	ID       string
	Router   *nav.Router
	Controls *controls.Injector

	session *sessions.Session
}

type snapshot struct {
	ID       string             `json:"id"`
	Router   nav.State          `json:"router"`
	Bindings []controls.Binding `json:"bindings,omitempty"`
}

// Manager loads and saves workspaces.
type Manager struct {
	sessions sessions.Store
	logger   *slog.Logger
}

// NewManager creates a Manager backed by store.
func NewManager(store sessions.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{sessions: store, logger: logger}
}

// New returns a workspace that has entered the dashboard, detached from any session.
func (m *Manager) New() *Workspace {
	ws := m.build()
	ws.Router.Start()
	return ws
}

func (m *Manager) build() *Workspace {
	injector := controls.NewInjector(Sections{}, m.logger)
	router := nav.NewRouter(m.logger, nav.NewTableLoader(injector))
	return &Workspace{ID: uuid.NewString(), Router: router, Controls: injector}
}

// Load returns the workspace of the request's session. A session without a
// workspace, or one that cannot be decoded, starts fresh on the dashboard.
func (m *Manager) Load(r *http.Request) *Workspace {
	sess, err := m.sessions.Get(r, sessionName)
	if err != nil {
		// gorilla still hands back a usable new session.
		m.logger.Warn("discarding unreadable session", "error", err)
	}

	ws := m.build()
	ws.session = sess

	raw, ok := sess.Values[sessionKey].(string)
	if !ok {
		ws.Router.Start()
		return ws
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		m.logger.Warn("discarding malformed workspace", "error", err)
		ws.Router.Start()
		return ws
	}

	if snap.ID != "" {
		ws.ID = snap.ID
	}
	ws.Router.Restore(snap.Router)
	ws.Controls.Restore(snap.Bindings)
	return ws
}

// Save writes the workspace back to its session. It must run before anything
// is written to w.
func (ws *Workspace) Save(w http.ResponseWriter, r *http.Request) error {
	if ws.session == nil {
		return fmt.Errorf("workspace has no session")
	}

	data, err := json.Marshal(snapshot{
		ID:       ws.ID,
		Router:   ws.Router.State(),
		Bindings: ws.Controls.Bindings(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode workspace: %w", err)
	}

	ws.session.Values[sessionKey] = string(data)
	if err := ws.session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
