package importer

import "fmt"

// Transform selects the canonicalization applied to a raw cell value.
type Transform int

const (
	TransformText Transform = iota
	TransformIdentifier
	TransformVAT
	TransformDate
	TransformMoney
	TransformEmail
	TransformPhone
)

// FormatRule selects the format validation applied after transformation.
type FormatRule int

const (
	FormatNone FormatRule = iota
	FormatEmail
	FormatVAT
	FormatFiscalCode
	FormatPhone
	FormatNonNegative
)

// FieldSpec describes one canonical field of an importable entity.
type FieldSpec struct {
	Key       string
	Label     string
	Required  bool
	Synonyms  []string
	Transform Transform
	Format    FormatRule
}

// EntityTypeSpec is the static field dictionary for one entity type,
// resolved once at process start.
type EntityTypeSpec struct {
	Type  EntityType
	Label string
	Fields []FieldSpec

	// NaturalKey lists the field keys whose normalized values identify a
	// real-world record; composite keys are joined in order.
	NaturalKey []string

	// BlockingDuplicates escalates duplicate matches from informational
	// to blocking: matched rows are skipped instead of imported.
	BlockingDuplicates bool

	// LabelFields build the display label of an imported row.
	LabelFields []string

	// Examples are the sample rows written into generated templates.
	Examples [][]interface{}
}

// Field returns the field definition for the given key.
func (s *EntityTypeSpec) Field(key string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}

var specs = buildSpecs()

// Spec returns the field dictionary for an entity type.
func Spec(t EntityType) (*EntityTypeSpec, error) {
	s, ok := specs[t]
	if !ok {
		return nil, fmt.Errorf("unknown entity type: %s", t)
	}
	return s, nil
}

// Specs returns every registered entity spec, for template listing.
func Specs() []*EntityTypeSpec {
	return []*EntityTypeSpec{
		specs[EntityCompanies],
		specs[EntityStudents],
		specs[EntityRegistrations],
	}
}

func buildSpecs() map[EntityType]*EntityTypeSpec {
	companies := &EntityTypeSpec{
		Type:  EntityCompanies,
		Label: "Aziende",
		Fields: []FieldSpec{
			{Key: "name", Label: "Ragione Sociale", Required: true,
				Synonyms: []string{"Ragione Sociale", "Azienda", "Denominazione", "Company Name"}},
			{Key: "vatNumber", Label: "Partita IVA", Required: true,
				Synonyms:  []string{"Partita IVA", "P.IVA", "PIVA", "VAT", "VAT Number"},
				Transform: TransformVAT, Format: FormatVAT},
			{Key: "fiscalCode", Label: "Codice Fiscale",
				Synonyms:  []string{"Codice Fiscale", "CF", "Cod. Fiscale"},
				Transform: TransformIdentifier},
			{Key: "address", Label: "Indirizzo",
				Synonyms: []string{"Indirizzo", "Sede Legale", "Via"}},
			{Key: "city", Label: "Città",
				Synonyms: []string{"Città", "Citta", "Comune"}},
			{Key: "province", Label: "Provincia",
				Synonyms:  []string{"Provincia", "Prov"},
				Transform: TransformIdentifier},
			{Key: "zipCode", Label: "CAP",
				Synonyms: []string{"CAP", "Codice Postale", "ZIP"}},
			{Key: "email", Label: "Email",
				Synonyms:  []string{"Email", "E-mail", "Mail", "Posta Elettronica"},
				Transform: TransformEmail, Format: FormatEmail},
			{Key: "phone", Label: "Telefono",
				Synonyms:  []string{"Telefono", "Tel", "Phone"},
				Transform: TransformPhone, Format: FormatPhone},
		},
		NaturalKey:         []string{"vatNumber"},
		BlockingDuplicates: true,
		LabelFields:        []string{"name"},
		Examples: [][]interface{}{
			{"Edilizia Rossi Srl", "01234567890", "01234567890", "Via Roma 1", "Milano", "MI", "20121", "info@edilrossi.it", "02 1234567"},
			{"Impianti Bianchi Spa", "09876543210", "", "Corso Italia 42", "Torino", "TO", "10121", "amministrazione@bianchi.it", "011 7654321"},
		},
	}

	students := &EntityTypeSpec{
		Type:  EntityStudents,
		Label: "Allievi",
		Fields: []FieldSpec{
			{Key: "firstName", Label: "Nome", Required: true,
				Synonyms: []string{"Nome", "First Name"}},
			{Key: "lastName", Label: "Cognome", Required: true,
				Synonyms: []string{"Cognome", "Last Name"}},
			{Key: "fiscalCode", Label: "Codice Fiscale", Required: true,
				Synonyms:  []string{"Codice Fiscale", "CF", "Cod. Fiscale", "Fiscal Code"},
				Transform: TransformIdentifier, Format: FormatFiscalCode},
			{Key: "email", Label: "Email",
				Synonyms:  []string{"Email", "E-mail", "Mail", "Posta Elettronica"},
				Transform: TransformEmail, Format: FormatEmail},
			{Key: "phone", Label: "Telefono",
				Synonyms:  []string{"Telefono", "Tel", "Cellulare", "Phone"},
				Transform: TransformPhone, Format: FormatPhone},
			{Key: "birthDate", Label: "Data di Nascita",
				Synonyms:  []string{"Data di Nascita", "Data Nascita", "Nato il"},
				Transform: TransformDate},
			{Key: "birthPlace", Label: "Luogo di Nascita",
				Synonyms: []string{"Luogo di Nascita", "Comune di Nascita", "Nato a"}},
		},
		NaturalKey:         []string{"fiscalCode"},
		BlockingDuplicates: true,
		LabelFields:        []string{"firstName", "lastName"},
		Examples: [][]interface{}{
			{"Mario", "Rossi", "RSSMRA80A01H501Z", "mario.rossi@example.it", "333 1234567", "01/01/1980", "Roma"},
			{"Lucia", "Bianchi", "BNCLCU85M41F205X", "lucia.bianchi@example.it", "347 7654321", "01/08/1985", "Milano"},
		},
	}

	registrations := &EntityTypeSpec{
		Type:  EntityRegistrations,
		Label: "Iscrizioni",
		Fields: []FieldSpec{
			{Key: "studentFiscalCode", Label: "Codice Fiscale", Required: true,
				Synonyms:  []string{"Codice Fiscale", "CF", "Codice Fiscale Allievo"},
				Transform: TransformIdentifier, Format: FormatFiscalCode},
			{Key: "editionCode", Label: "Codice Edizione", Required: true,
				Synonyms:  []string{"Codice Edizione", "Edizione", "Cod. Edizione", "Corso"},
				Transform: TransformIdentifier},
			{Key: "registrationDate", Label: "Data Iscrizione",
				Synonyms:  []string{"Data Iscrizione", "Iscritto il", "Data"},
				Transform: TransformDate},
			{Key: "price", Label: "Quota",
				Synonyms:  []string{"Quota", "Prezzo", "Importo", "Quota di Iscrizione", "Price"},
				Transform: TransformMoney, Format: FormatNonNegative},
			{Key: "notes", Label: "Note",
				Synonyms: []string{"Note", "Annotazioni", "Notes"}},
		},
		NaturalKey:  []string{"studentFiscalCode", "editionCode"},
		LabelFields: []string{"studentFiscalCode", "editionCode"},
		Examples: [][]interface{}{
			{"RSSMRA80A01H501Z", "SIC-2024-01", "15/01/2024", "150.00", ""},
			{"BNCLCU85M41F205X", "SIC-2024-01", "16/01/2024", "150.00", "pagamento in due rate"},
		},
	}

	return map[EntityType]*EntityTypeSpec{
		EntityCompanies:     companies,
		EntityStudents:      students,
		EntityRegistrations: registrations,
	}
}
