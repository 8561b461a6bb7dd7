package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingEnsurer struct {
	calls []TableRef
}

func (e *recordingEnsurer) Ensure(tableID, label string) bool {
	e.calls = append(e.calls, TableRef{TableID: tableID, Label: label})
	return true
}

func TestTableLoader(t *testing.T) {
	tests := []struct {
		page string
		want []TableRef
	}{
		{page: "destinations", want: []TableRef{{"destinationsTable", "Destinos"}}},
		{page: "destination-mappings", want: []TableRef{{"destinationMappingsTable", "Mapeo de Destinos"}}},
		{page: "boarding-stages", want: []TableRef{{"boardingStagesTable", "Etapas de Abordaje"}}},
		{page: "boarding-mappings", want: []TableRef{{"boardingMappingsTable", "Mapeo de Etapas"}}},
		{page: "dashboard", want: nil},
		{page: "unknown", want: nil},
		{page: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			e := &recordingEnsurer{}
			NewTableLoader(e).Load(tt.page)
			assert.Equal(t, tt.want, e.calls)
		})
	}
}

func TestPageForTable(t *testing.T) {
	id, ok := PageForTable("boardingStagesTable")
	assert.True(t, ok)
	assert.Equal(t, PageBoardingStages, id)

	_, ok = PageForTable("nope")
	assert.False(t, ok)
}
