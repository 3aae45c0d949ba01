package importer

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		date1904 bool
		want     string
		wantErr  bool
	}{
		{name: "slash format", raw: "01/02/1980", want: "1980-02-01"},
		{name: "dash format", raw: "15-01-2024", want: "2024-01-15"},
		{name: "single digit day and month", raw: "1/8/1985", want: "1985-08-01"},
		{name: "two digit year past century", raw: "01/02/80", want: "1980-02-01"},
		{name: "two digit year current century", raw: "01/02/30", want: "2030-02-01"},
		{name: "serial 1900 epoch", raw: "29221", want: "1980-01-01"},
		{name: "serial first valid 1900", raw: "61", want: "1900-03-01"},
		{name: "serial in lotus bug window", raw: "59", wantErr: true},
		{name: "serial 1904 epoch", raw: "1", date1904: true, want: "1904-01-02"},
		{name: "impossible calendar date", raw: "31/02/2020", wantErr: true},
		{name: "day out of range", raw: "32/01/2020", wantErr: true},
		{name: "mixed separators tolerated", raw: "01/02-1980", want: "1980-02-01"},
		{name: "garbage", raw: "gennaio", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeDate(tt.raw, tt.date1904)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("normalizeDate(%q) = %q, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeDate(%q) error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("normalizeDate(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeMoney(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "150.00", want: 15000},
		{raw: "150,50", want: 15050},
		{raw: "150", want: 15000},
		{raw: "1.234,56", want: 123456},
		{raw: "1,234.56", want: 123456},
		{raw: "€ 150,00", want: 15000},
		{raw: "1.234.567", want: 123456700},
		{raw: "-1", want: -100},
		{raw: "0", want: 0},
		{raw: "abc", wantErr: true},
		{raw: "€", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeMoney(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("normalizeMoney(%q) = %d, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeMoney(%q) error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("normalizeMoney(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTransformIdentifiers(t *testing.T) {
	if got, _ := transform("rssmra80a01h501z", TransformIdentifier, false); got != "RSSMRA80A01H501Z" {
		t.Errorf("identifier transform = %v", got)
	}
	if got, _ := transform(" RSS MRA 80A01 H501Z ", TransformIdentifier, false); got != "RSSMRA80A01H501Z" {
		t.Errorf("identifier transform with spaces = %v", got)
	}
	if got, _ := transform("IT 01234567890", TransformVAT, false); got != "01234567890" {
		t.Errorf("vat transform = %v", got)
	}
	if got, _ := transform("Mario.Rossi@Example.IT", TransformEmail, false); got != "mario.rossi@example.it" {
		t.Errorf("email transform = %v", got)
	}
	if got, _ := transform("+39 333 123-4567", TransformPhone, false); got != "+393331234567" {
		t.Errorf("phone transform = %v", got)
	}
}

func TestNormalizeRow(t *testing.T) {
	spec, err := Spec(EntityStudents)
	if err != nil {
		t.Fatal(err)
	}

	m := MappedRow{Number: 3, Values: map[string]string{
		"firstName":  "Mario",
		"lastName":   "Rossi",
		"fiscalCode": "rssmra80a01h501z",
		"birthDate":  "01/01/1980",
		"email":      "",
	}}

	row, issues := NormalizeRow(m, spec, false)
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %+v", issues)
	}
	if got := row.String("fiscalCode"); got != "RSSMRA80A01H501Z" {
		t.Errorf("fiscalCode = %q", got)
	}
	if got := row.String("birthDate"); got != "1980-01-01" {
		t.Errorf("birthDate = %q", got)
	}
	if row["email"] != nil {
		t.Errorf("blank email should normalize to nil, got %v", row["email"])
	}
}

func TestNormalizeRowBadDate(t *testing.T) {
	spec, err := Spec(EntityStudents)
	if err != nil {
		t.Fatal(err)
	}

	m := MappedRow{Number: 5, Values: map[string]string{"birthDate": "31/02/1980"}}
	row, issues := NormalizeRow(m, spec, false)
	if len(issues) != 1 {
		t.Fatalf("want 1 issue, got %d", len(issues))
	}
	if issues[0].Row != 5 || issues[0].Field != "birthDate" || issues[0].Severity != SeverityError {
		t.Errorf("issue = %+v", issues[0])
	}
	if row["birthDate"] != nil {
		t.Errorf("failed transform should leave field nil, got %v", row["birthDate"])
	}
}
