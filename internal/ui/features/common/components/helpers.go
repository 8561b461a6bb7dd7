package components

import (
	"github.com/google/uuid"

	"github.com/konnectpro/konnectpro-gds/internal/ui/nav"
)

const (
	datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"
	remixIcons     = "https://cdn.jsdelivr.net/npm/remixicon@4.2.0/fonts/remixicon.css"
	tailwindScript = "https://cdn.tailwindcss.com"
)

// ToastsID is the container toasts are appended to.
const ToastsID = "toasts"

// ModalsID is the container modals are rendered into.
const ModalsID = "modals"

// StatsID is the id of the dashboard counters.
const StatsID = "dashboardStats"

// ToastDuration is how long a toast stays on screen, in milliseconds.
const ToastDuration = 3000

// sidebarPointer closes the sidebar on any pointer press outside of it.
const sidebarPointer = "$sidebarOpen && @post('/sidebar/pointerdown?inside=' + !!evt.target.closest('#sidebar') + '&toggle=' + !!evt.target.closest('#sidebarToggle'))"

var toastColors = map[Severity]string{
	SeverityInfo:    "bg-primary",
	SeveritySuccess: "bg-green-600",
	SeverityWarning: "bg-yellow-600",
	SeverityError:   "bg-red-600",
}

var toastIcons = map[Severity]string{
	SeverityInfo:    "ri-information-line",
	SeveritySuccess: "ri-check-line",
	SeverityWarning: "ri-alert-triangle-line",
	SeverityError:   "ri-error-warning-line",
}

// NewToast creates a toast with a fresh id. Unknown severities render as info.
func NewToast(message string, severity Severity) ToastData {
	if _, ok := toastColors[severity]; !ok {
		severity = SeverityInfo
	}
	return ToastData{
		ID:       "toast-" + uuid.NewString(),
		Message:  message,
		Severity: severity,
	}
}

// HeaderID returns the id of a table's header region.
func HeaderID(tableID string) string {
	return tableID + "Header"
}

// BodyID returns the id of a table's body.
func BodyID(tableID string) string {
	return tableID + "Body"
}

// CloseModalAction returns the Datastar action closing modal id.
func CloseModalAction(id string) string {
	return "@post('/modals/" + id + "/close')"
}

func openModalAction(id string) string {
	return "@post('/modals/" + id + "/open')"
}

func navAction(page nav.PageID) string {
	return "@post('/nav/" + string(page) + "')"
}

type statCard struct {
	label string
	value int
	icon  string
	page  nav.PageID
}

func statCards(stats DashboardStats) []statCard {
	return []statCard{
		{"Destinos", stats.Destinations, "ri-map-pin-line", nav.PageDestinations},
		{"Mapeos de Destinos", stats.DestinationMappings, "ri-route-line", nav.PageDestinationMappings},
		{"Etapas de Embarque", stats.BoardingStages, "ri-bus-line", nav.PageBoardingStages},
		{"Mapeos de Etapas", stats.BoardingMappings, "ri-git-merge-line", nav.PageBoardingMappings},
	}
}
