// Package records provides the catalog data pages: live table search, CSV
// export, the create/edit/detail/search modals and record mutations.
package records

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/konnectpro/konnectpro-gds/internal/catalog"
	"github.com/konnectpro/konnectpro-gds/internal/ui/controls"
)

// ModalType distinguishes the modals of a record kind.
type ModalType string

// Modal types, matching the suffix of the modal id.
const (
	ModalCreate ModalType = "CreateModal"
	ModalEdit   ModalType = "EditModal"
	ModalSearch ModalType = "SearchModal"
	ModalDetail ModalType = "DetailModal"
)

var modalTypes = []ModalType{ModalCreate, ModalEdit, ModalSearch, ModalDetail}

// ModalRef is a parsed modal id such as "boardingStageCreateModal".
type ModalRef struct {
	Kind catalog.Kind
	Type ModalType
}

// ID returns the modal's DOM id.
func (m ModalRef) ID() string {
	return m.Kind.DOMName() + string(m.Type)
}

// ParseModalID resolves a modal id.
func ParseModalID(id string) (ModalRef, bool) {
	for _, kind := range catalog.Kinds() {
		rest, ok := strings.CutPrefix(id, kind.DOMName())
		if !ok {
			continue
		}
		for _, t := range modalTypes {
			if rest == string(t) {
				return ModalRef{Kind: kind, Type: t}, true
			}
		}
	}
	return ModalRef{}, false
}

// titles are the display names used in modal titles.
var titles = map[catalog.Kind]string{
	catalog.KindDestination:        "Destino",
	catalog.KindDestinationMapping: "Mapeo de Destino",
	catalog.KindBoardingStage:      "Etapa de Embarque",
	catalog.KindBoardingMapping:    "Mapeo de Embarque",
}

// Signals is the full Datastar signal set sent with a request.
type Signals map[string]any

// String returns a top-level string signal, or "".
func (s Signals) String(name string) string {
	return stringValue(s[name])
}

// Object returns a nested signal object with its values as strings.
func (s Signals) Object(name string) map[string]string {
	obj, ok := s[name].(map[string]any)
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		out[k] = stringValue(v)
	}
	return out
}

// SearchTerm returns the live search term of tableID.
func (s Signals) SearchTerm(tableID string) string {
	return s.String(controls.SearchInputID(tableID))
}

func stringValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
