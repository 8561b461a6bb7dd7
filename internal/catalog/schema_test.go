package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("ticket")
	assert.Error(t, err)
}

func TestKind_Noun(t *testing.T) {
	tests := map[Kind]string{
		KindDestination:        "destino",
		KindDestinationMapping: "mapeo de destino",
		KindBoardingStage:      "etapa de embarque",
		KindBoardingMapping:    "mapeo de embarque",
		Kind("other"):          "elemento",
	}
	for kind, want := range tests {
		assert.Equal(t, want, kind.Noun(), "kind %s", kind)
	}
}

func TestSchemas_CoverEveryKind(t *testing.T) {
	all := Schemas()
	require.Len(t, all, len(Kinds()))
	for i, k := range Kinds() {
		assert.Equal(t, k, all[i].Kind)
		assert.NotEmpty(t, all[i].Fields)
	}
}

func TestSchema_Validate(t *testing.T) {
	schema, ok := SchemaFor(KindDestinationMapping)
	require.True(t, ok)

	tests := []struct {
		name   string
		values map[string]string
		want   []string
	}{
		{name: "all missing", values: nil, want: []string{"travel", "apiCity", "ourCity"}},
		{name: "blank counts as missing", values: map[string]string{"travel": "Turbus", "apiCity": "  ", "ourCity": "x"}, want: []string{"apiCity"}},
		{name: "complete", values: map[string]string{"travel": "Turbus", "apiCity": "A", "ourCity": "B"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schema.Validate(tt.values))
		})
	}
}

func TestSchema_Lookup(t *testing.T) {
	schema, _ := SchemaFor(KindBoardingStage)

	f, ok := schema.Field("terminal")
	require.True(t, ok)
	assert.Equal(t, "Terminal/Ubicación", f.Label)
	assert.Equal(t, 3, schema.Index("terminal"))
	assert.Equal(t, -1, schema.Index("nope"))
}
