package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeed(t *testing.T) {
	seed := DefaultSeed()

	assert.NotEmpty(t, seed.Destinations)
	assert.NotEmpty(t, seed.DestinationMappings)
	assert.NotEmpty(t, seed.BoardingStages)
	assert.NotEmpty(t, seed.BoardingMappings)

	first := seed.Destinations[0]
	assert.Equal(t, int64(1638), first.ID)
	assert.Equal(t, "Santiago", first.Values["city"])
	assert.NotContains(t, first.Values, "id")
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
		want    int
	}{
		{
			name: "all kinds",
			doc: `
destinations:
  - {id: 1, country: Chile, city: Santiago}
destination_mappings:
  - {travel: Turbus, apiCity: STGO, ourCity: Santiago}
boarding_stages:
  - {country: Chile, city: Temuco, terminal: Rodoviario, latitude: -38.73}
boarding_mappings:
  - {travel: Turbus, ourStage: Sur, apiStage: TS}
`,
			want: 4,
		},
		{name: "empty document", doc: "{}", want: 0},
		{name: "unknown section", doc: "tickets: []", wantErr: true},
		{name: "malformed yaml", doc: "destinations: [", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed, err := ParseSeed([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, seed.Records(), tt.want)
		})
	}
}

func TestSeed_RecordsNormalizeToSchema(t *testing.T) {
	seed, err := ParseSeed([]byte(`
boarding_stages:
  - id: 7
    city: "  Temuco "
    latitude: -38.73
    bogus: "dropped"
`))
	require.NoError(t, err)

	recs := seed.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, KindBoardingStage, recs[0].Kind)
	assert.Equal(t, int64(7), recs[0].ID)
	assert.Equal(t, "Temuco", recs[0].Value("city"))
	assert.Equal(t, "-38.73", recs[0].Value("latitude"))
	assert.NotContains(t, recs[0].Values, "bogus")
	assert.Contains(t, recs[0].Values, "terminal", "every schema field is present")
}

func TestSeed_Apply(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, DefaultSeed().Apply(context.Background(), store))

	seed := DefaultSeed()
	want := map[Kind]int{
		KindDestination:        len(seed.Destinations),
		KindDestinationMapping: len(seed.DestinationMappings),
		KindBoardingStage:      len(seed.BoardingStages),
		KindBoardingMapping:    len(seed.BoardingMappings),
	}
	for kind, count := range want {
		n, err := store.Count(context.Background(), kind)
		require.NoError(t, err)
		assert.Equal(t, count, n, kind)
	}

	stage, err := store.Get(context.Background(), KindBoardingStage, 1)
	require.NoError(t, err)
	assert.Equal(t, KindBoardingStage, stage.Kind)

	// Applying twice replaces rather than duplicates.
	require.NoError(t, seed.Apply(context.Background(), store))
	n, err := store.Count(context.Background(), KindBoardingMapping)
	require.NoError(t, err)
	assert.Equal(t, len(seed.BoardingMappings), n)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("destinations:\n  - {city: Arica}\n"), 0o600))

	seed, err := LoadSeedFile(path)
	require.NoError(t, err)
	assert.Len(t, seed.Destinations, 1)

	_, err = LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
