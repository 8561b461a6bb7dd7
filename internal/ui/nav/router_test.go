package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konnectpro/konnectpro-gds/internal/testutil"
)

type recordingLoader struct {
	calls []string
}

func (l *recordingLoader) Load(id string) { l.calls = append(l.calls, id) }

func newTestRouter(t *testing.T) (*Router, *recordingLoader) {
	t.Helper()
	loader := &recordingLoader{}
	r := NewRouter(testutil.NewTestLogger(t), loader)
	r.Start()
	return r, loader
}

func visiblePages(r *Router) []PageID {
	var ids []PageID
	for _, p := range r.Pages() {
		if r.Visible(p.ID) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func activeItems(r *Router) []PageID {
	var ids []PageID
	for _, item := range r.MenuItems() {
		if item.Active {
			ids = append(ids, item.Page.ID)
		}
	}
	return ids
}

func TestRouter_StartsOnDashboard(t *testing.T) {
	r, loader := newTestRouter(t)

	assert.Equal(t, PageDashboard, r.CurrentPage())
	assert.Equal(t, []PageID{PageDashboard}, visiblePages(r))
	assert.Equal(t, []string{"dashboard"}, loader.calls)
	assert.False(t, r.IsSidebarOpen())
}

func TestRouter_Exclusivity(t *testing.T) {
	sequence := []PageID{
		PageDestinations,
		PageBoardingStages,
		PageBoardingStages,
		PageDestinationMappings,
		PageDashboard,
		PageBoardingMappings,
	}

	r, _ := newTestRouter(t)
	for _, id := range sequence {
		require.True(t, r.ShowPage(string(id)))
		assert.Equal(t, []PageID{id}, visiblePages(r), "after showing %s", id)
		assert.Equal(t, []PageID{id}, activeItems(r))
	}
}

func TestRouter_UnknownPage(t *testing.T) {
	for _, id := range []string{"", "unknown", "main", "DESTINATIONS"} {
		t.Run("id="+id, func(t *testing.T) {
			r, loader := newTestRouter(t)
			r.ShowPage(string(PageDestinations))
			r.OpenSidebar()

			assert.NotPanics(t, func() {
				assert.False(t, r.ShowPage(id))
			})

			assert.Equal(t, PageDestinations, r.CurrentPage())
			assert.Equal(t, []PageID{PageDestinations}, visiblePages(r))
			assert.Empty(t, activeItems(r), "no menu entry matches an unknown id")
			assert.False(t, r.IsSidebarOpen())
			assert.Equal(t, id, loader.calls[len(loader.calls)-1], "hook runs even for unknown ids")
		})
	}
}

func TestRouter_SidebarClosesOnEveryNavigation(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{name: "known page", page: string(PageBoardingStages)},
		{name: "same page", page: string(PageDashboard)},
		{name: "unknown page", page: "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRouter(t)
			r.ToggleSidebar()
			require.True(t, r.IsSidebarOpen())

			r.ShowPage(tt.page)
			assert.False(t, r.IsSidebarOpen())
		})
	}
}

func TestRouter_SidebarMachine(t *testing.T) {
	r, _ := newTestRouter(t)
	assert.Equal(t, IconSidebarClosed, r.SidebarIcon())

	r.ToggleSidebar()
	assert.True(t, r.IsSidebarOpen())
	assert.Equal(t, IconSidebarOpen, r.SidebarIcon())

	r.PointerDown(true, false)
	assert.True(t, r.IsSidebarOpen(), "click inside keeps it open")

	r.PointerDown(false, true)
	assert.True(t, r.IsSidebarOpen(), "click on toggle keeps it open")

	r.PointerDown(false, false)
	assert.False(t, r.IsSidebarOpen(), "click outside closes")

	r.OpenSidebar()
	r.CloseSidebar()
	assert.False(t, r.IsSidebarOpen())

	r.ToggleSidebar()
	r.ToggleSidebar()
	assert.False(t, r.IsSidebarOpen())
}

func TestRouter_StateRoundTrip(t *testing.T) {
	r, _ := newTestRouter(t)
	r.ShowPage(string(PageBoardingMappings))
	r.OpenSidebar()

	loader := &recordingLoader{}
	restored := NewRouter(testutil.NewTestLogger(t), loader)
	restored.Restore(r.State())

	assert.Equal(t, PageBoardingMappings, restored.CurrentPage())
	assert.True(t, restored.IsSidebarOpen())
	assert.Equal(t, []PageID{PageBoardingMappings}, activeItems(restored))
	assert.Empty(t, loader.calls, "restore does not dispatch the hook")
}

func TestRouter_RestoreUnknownFallsBack(t *testing.T) {
	r := NewRouter(testutil.NewTestLogger(t), nil)
	r.Restore(State{Page: "gone", Highlight: "gone"})

	assert.Equal(t, PageDashboard, r.CurrentPage())
	assert.Equal(t, []PageID{PageDashboard}, visiblePages(r))
	assert.Equal(t, []PageID{PageDashboard}, activeItems(r))
}

func TestRouter_Lookup(t *testing.T) {
	r, _ := newTestRouter(t)

	p, ok := r.Lookup("boarding-stages")
	require.True(t, ok)
	assert.Equal(t, "boarding-stages-content", p.ContainerID())

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}
