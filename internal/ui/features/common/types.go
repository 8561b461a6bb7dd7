// Package common provides shared view assembly and SSE helpers for UI features.
package common

import (
	"github.com/konnectpro/konnectpro-gds/internal/catalog"
	"github.com/konnectpro/konnectpro-gds/internal/ui/nav"
)

// searchButtons are the ids of the advanced search buttons of each data page.
var searchButtons = map[catalog.Kind]string{
	catalog.KindDestination:        "searchDestinations",
	catalog.KindDestinationMapping: "searchDestinationMappings",
	catalog.KindBoardingStage:      "searchBoardingStages",
	catalog.KindBoardingMapping:    "searchBoardingMappings",
}

// searchTitles are the titles of the advanced search modals.
var searchTitles = map[catalog.Kind]string{
	catalog.KindDestination:        "Búsqueda de Destinos",
	catalog.KindDestinationMapping: "Búsqueda de Mapeos de Destinos",
	catalog.KindBoardingStage:      "Búsqueda de Etapas de Embarque",
	catalog.KindBoardingMapping:    "Búsqueda de Mapeos de Embarque",
}

// SearchTitle returns the title of the advanced search modal of kind.
func SearchTitle(kind catalog.Kind) string {
	return searchTitles[kind]
}

// PageKind returns the record kind listed on page.
func PageKind(page nav.PageID) (catalog.Kind, bool) {
	switch page {
	case nav.PageDestinations:
		return catalog.KindDestination, true
	case nav.PageDestinationMappings:
		return catalog.KindDestinationMapping, true
	case nav.PageBoardingStages:
		return catalog.KindBoardingStage, true
	case nav.PageBoardingMappings:
		return catalog.KindBoardingMapping, true
	default:
		return "", false
	}
}
