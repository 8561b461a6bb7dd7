package nav

// TableRef names the managed table shown on a data page.
type TableRef struct {
	TableID string
	Label   string
}

var pageTables = map[PageID]TableRef{
	PageDestinations:        {TableID: "destinationsTable", Label: "Destinos"},
	PageDestinationMappings: {TableID: "destinationMappingsTable", Label: "Mapeo de Destinos"},
	PageBoardingStages:      {TableID: "boardingStagesTable", Label: "Etapas de Abordaje"},
	PageBoardingMappings:    {TableID: "boardingMappingsTable", Label: "Mapeo de Etapas"},
}

// TableFor returns the table shown on page id. Pages without a table, and
// unknown ids, report false.
func TableFor(id string) (TableRef, bool) {
	ref, ok := pageTables[PageID(id)]
	return ref, ok
}

// PageForTable returns the page that shows tableID.
func PageForTable(tableID string) (PageID, bool) {
	for id, ref := range pageTables {
		if ref.TableID == tableID {
			return id, true
		}
	}
	return "", false
}

// Ensurer attaches table controls to a table.
type Ensurer interface {
	Ensure(tableID, label string) bool
}

// TableLoader is the Loader that attaches search and export controls to the
// table of every data page. It performs no table mutation itself.
type TableLoader struct {
	controls Ensurer
}

// NewTableLoader creates a TableLoader dispatching to controls.
func NewTableLoader(controls Ensurer) *TableLoader {
	return &TableLoader{controls: controls}
}

// Load ensures controls for the table of page id. It is a no-op for pages
// without a table.
func (l *TableLoader) Load(id string) {
	ref, ok := TableFor(id)
	if !ok {
		return
	}
	l.controls.Ensure(ref.TableID, ref.Label)
}
