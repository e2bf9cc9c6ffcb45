package types_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/types"
)

func sampleRequest() types.VisitorPassRequest {
	return types.VisitorPassRequest{
		Type:    types.RequestTypeIndividual,
		Dates:   types.Validity{Start: types.NewDate(2026, 10, 17), End: types.NewDate(2026, 10, 18)},
		Purpose: "Переговоры",
		Host:    types.Host{Department: "ИТ-отдел", Employee: "Сидоров С.С."},
		Visitor: types.Visitor{
			LastName:     "Сидоров",
			FirstName:    "Иван",
			MiddleName:   "Петрович",
			Phone:        "+7 (999) 123-45-67",
			Email:        "i.s@example.com",
			Organization: "ООО \"Ромашка\" & Co <west>",
			BirthDate:    types.NewDate(1990, 5, 1),
			Passport:     types.Passport{Series: "1234", Number: "567890"},
		},
		Documents: types.Documents{PassportScan: "passport_scan_20261016_103000.jpg"},
		CreatedAt: types.NewTimestamp(time.Date(2026, 10, 16, 10, 30, 0, 0, time.Local)),
		CreatedBy: "Петров П.П.",
	}
}

func TestVisitorPassRequest_RoundTrip(t *testing.T) {
	in := sampleRequest()

	first, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out types.VisitorPassRequest
	if err := json.Unmarshal(first, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	second, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("round trip changed encoding:\n%s\n%s", first, second)
	}

	if out.Visitor.LastName != "Сидоров" || out.CreatedBy != "Петров П.П." {
		t.Errorf("cyrillic fields lost: %+v", out.Visitor)
	}
	if !out.Dates.Start.Equal(in.Dates.Start) || !out.Visitor.BirthDate.Equal(in.Visitor.BirthDate) {
		t.Errorf("dates changed: %v %v", out.Dates.Start, out.Visitor.BirthDate)
	}
	if !out.CreatedAt.Time().Equal(in.CreatedAt.Time()) {
		t.Errorf("created_at changed: %v vs %v", out.CreatedAt, in.CreatedAt)
	}
}

func TestVisitorPassRequest_WireShape(t *testing.T) {
	b, err := json.Marshal(sampleRequest())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if raw["type"] != "individual" {
		t.Errorf("expected type=individual, got %v", raw["type"])
	}
	dates := raw["dates"].(map[string]any)
	if dates["start"] != "2026-10-17" || dates["end"] != "2026-10-18" {
		t.Errorf("unexpected dates %v", dates)
	}
	if raw["created_at"] != "2026-10-16 10:30:00" {
		t.Errorf("unexpected created_at %v", raw["created_at"])
	}
	docs := raw["documents"].(map[string]any)
	if _, ok := docs["photo"]; ok {
		t.Error("photo should be omitted when no photo was attached")
	}
}

func TestDate_EmptyString(t *testing.T) {
	var d types.Date
	if err := json.Unmarshal([]byte(`""`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !d.IsZero() {
		t.Error("expected zero date")
	}
	if err := json.Unmarshal([]byte(`"17.10.2026"`), &d); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestRequestID(t *testing.T) {
	id := types.RequestID(time.Date(2026, 10, 16, 9, 5, 7, 0, time.Local))
	if id != "request_20261016_090507.json" {
		t.Errorf("unexpected id %q", id)
	}
	if !types.ValidRequestID(id) {
		t.Error("generated id should be valid")
	}
	for _, bad := range []string{"", "../config.json", "request_2026.json", "request_20261016_090507.json/x"} {
		if types.ValidRequestID(bad) {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want types.Role
	}{
		{in: "access_admin", want: types.RoleAccessAdmin},
		{in: "security_officer", want: types.RoleSecurityOfficer},
		{in: "Администратор доступа", want: types.RoleAccessAdmin},
		{in: " Сотрудник службы безопасности", want: types.RoleSecurityOfficer},
	}
	for _, tc := range cases {
		got, ok := types.ParseRole(tc.in)
		if !ok || got != tc.want {
			t.Errorf("ParseRole(%q) = %q, %v", tc.in, got, ok)
		}
	}
	if _, ok := types.ParseRole("root"); ok {
		t.Error("expected unknown role to be rejected")
	}
}
