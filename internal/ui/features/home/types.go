// Package home provides the dashboard page, page navigation and the sidebar.
package home

// TicketSignals are the dashboard ticket search inputs.
type TicketSignals struct {
	TicketNumber string `json:"ticketNumber"`
	History      bool   `json:"history"`
}

// RouteSignals are the dashboard route search inputs.
type RouteSignals struct {
	Origin      string `json:"routeOrigin"`
	Destination string `json:"routeDestination"`
}
