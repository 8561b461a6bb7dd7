package workspace

import (
	"github.com/konnectpro/konnectpro-gds/internal/catalog"
	"github.com/konnectpro/konnectpro-gds/internal/ui/controls"
)

var tableKinds = map[string]catalog.Kind{
	"destinationsTable":        catalog.KindDestination,
	"destinationMappingsTable": catalog.KindDestinationMapping,
	"boardingStagesTable":      catalog.KindBoardingStage,
	"boardingMappingsTable":    catalog.KindBoardingMapping,
}

var createLabels = map[catalog.Kind]string{
	catalog.KindDestination:        "Crear Nuevo Destino",
	catalog.KindDestinationMapping: "Crear Nuevo Mapeo",
	catalog.KindBoardingStage:      "Crear Nueva Etapa",
	catalog.KindBoardingMapping:    "Crear Nuevo Mapeo",
}

// KindForTable returns the record kind listed in tableID.
func KindForTable(tableID string) (catalog.Kind, bool) {
	k, ok := tableKinds[tableID]
	return k, ok
}

// TableForKind returns the id of the table listing kind.
func TableForKind(kind catalog.Kind) (string, bool) {
	for id, k := range tableKinds {
		if k == kind {
			return id, true
		}
	}
	return "", false
}

// CreateModalID returns the id of the create modal of kind, e.g. "destinationCreateModal".
func CreateModalID(kind catalog.Kind) string { return kind.DOMName() + "CreateModal" }

// EditModalID returns the id of the edit modal of kind.
func EditModalID(kind catalog.Kind) string { return kind.DOMName() + "EditModal" }

// SearchModalID returns the id of the advanced search modal of kind.
func SearchModalID(kind catalog.Kind) string { return kind.DOMName() + "SearchModal" }

// CreateButtonID returns the id of the "create new" button of kind, e.g. "createBoardingStage".
func CreateButtonID(kind catalog.Kind) string {
	name := kind.DOMName()
	return "create" + upperFirst(name)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// Sections is the SectionSource of the catalog pages. Every catalog table has a
// header region with its schema title and a create button.
type Sections struct{}

// Section implements controls.SectionSource.
func (Sections) Section(tableID string) (controls.Section, bool) {
	kind, ok := tableKinds[tableID]
	if !ok {
		return controls.Section{}, false
	}
	schema, _ := catalog.SchemaFor(kind)

	return controls.Section{
		TableID: tableID,
		Header: &controls.HeaderRegion{
			Title: schema.Title,
			Create: &controls.Action{
				ID:    CreateButtonID(kind),
				Label: createLabels[kind],
				Icon:  "ri-add-line",
				URL:   "/modals/" + CreateModalID(kind) + "/open",
				Kind:  controls.ActionRequest,
			},
		},
	}, true
}
