// Package resources serves the dashboard's stylesheet and keyboard shortcut
// script under /static/.
package resources

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// Asset names referenced by the page layout.
const (
	Stylesheet = "app.css"
	Script     = "app.js"
)
