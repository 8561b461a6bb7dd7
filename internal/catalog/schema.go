package catalog

import "strings"

// FieldType controls how a field is edited.
type FieldType string

// Field types.
const (
	FieldText   FieldType = "text"
	FieldSelect FieldType = "select"
)

// Field is one attribute of a record kind.
type Field struct {
	Name       string
	Label      string
	Type       FieldType
	Options    []string
	Required   bool
	Searchable bool // offered in the advanced search modal
}

// Schema describes the fields of a record kind in column order.
type Schema struct {
	Kind   Kind
	Title  string // section title
	Fields []Field
	ShowID bool // render the record id as the first column
}

// Field returns the named field.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Index returns the position of the named field, or -1.
func (s Schema) Index(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

var operators = []string{"Gama Bus", "Turbus", "Pullman Bus"}

var schemas = map[Kind]Schema{
	KindDestination: {
		Kind:   KindDestination,
		Title:  "Destinos",
		ShowID: true,
		Fields: []Field{
			{Name: "country", Label: "País", Type: FieldSelect, Options: []string{"Chile", "México"}, Required: true, Searchable: true},
			{Name: "state", Label: "Estado", Type: FieldText, Required: true},
			{Name: "city", Label: "Ciudad", Type: FieldText, Required: true, Searchable: true},
			{Name: "status", Label: "Estado del Registro", Type: FieldSelect, Options: []string{"Activo", "Inactivo"}, Required: true, Searchable: true},
			{Name: "wikipedia", Label: "Nombre Wikipedia", Type: FieldText},
			{Name: "aliases", Label: "Aliases", Type: FieldText},
			{Name: "priority", Label: "Es Prioritario", Type: FieldSelect, Options: []string{"YES", "NO"}, Searchable: true},
			{Name: "region", Label: "Región", Type: FieldText},
		},
	},
	KindDestinationMapping: {
		Kind:   KindDestinationMapping,
		Title:  "Mapeo de Destinos",
		ShowID: true,
		Fields: []Field{
			{Name: "travel", Label: "Operador", Type: FieldSelect, Options: operators, Required: true, Searchable: true},
			{Name: "apiCity", Label: "Ciudad API", Type: FieldText, Required: true, Searchable: true},
			{Name: "ourCity", Label: "Nuestra Ciudad", Type: FieldText, Required: true, Searchable: true},
		},
	},
	KindBoardingStage: {
		Kind:  KindBoardingStage,
		Title: "Etapas de Embarque",
		Fields: []Field{
			{Name: "country", Label: "País", Type: FieldSelect, Options: []string{"México", "Chile"}, Required: true, Searchable: true},
			{Name: "state", Label: "Estado", Type: FieldText},
			{Name: "city", Label: "Ciudad", Type: FieldText, Required: true, Searchable: true},
			{Name: "terminal", Label: "Terminal/Ubicación", Type: FieldText, Required: true, Searchable: true},
			{Name: "cityName", Label: "Nombre de Ciudad", Type: FieldText},
			{Name: "latitude", Label: "Latitud", Type: FieldText},
			{Name: "longitude", Label: "Longitud", Type: FieldText},
			{Name: "areaName", Label: "Nombre de Área", Type: FieldText},
		},
	},
	KindBoardingMapping: {
		Kind:   KindBoardingMapping,
		Title:  "Mapeo de Etapas",
		ShowID: true,
		Fields: []Field{
			{Name: "travel", Label: "Operador", Type: FieldSelect, Options: operators, Required: true, Searchable: true},
			{Name: "ourStage", Label: "Nuestra Etapa", Type: FieldText, Required: true, Searchable: true},
			{Name: "apiStage", Label: "Etapa API", Type: FieldText, Required: true, Searchable: true},
		},
	},
}

// SchemaFor returns the schema of kind.
func SchemaFor(kind Kind) (Schema, bool) {
	s, ok := schemas[kind]
	return s, ok
}

// Schemas returns every schema in display order.
func Schemas() []Schema {
	out := make([]Schema, 0, len(schemas))
	for _, k := range Kinds() {
		out = append(out, schemas[k])
	}
	return out
}

// Normalize keeps only the schema's fields and trims their values.
func (s Schema) Normalize(values map[string]string) map[string]string {
	out := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Name] = strings.TrimSpace(values[f.Name])
	}
	return out
}

// Validate returns the names of required fields with blank values, in schema order.
func (s Schema) Validate(values map[string]string) []string {
	var missing []string
	for _, f := range s.Fields {
		if f.Required && strings.TrimSpace(values[f.Name]) == "" {
			missing = append(missing, f.Name)
		}
	}
	return missing
}
