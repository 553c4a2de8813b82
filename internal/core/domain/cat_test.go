package domain

import (
	"errors"
	"testing"
)

func TestNewCat(t *testing.T) {
	first, err := NewEncounter("1/15/2026", "", "", "/photos/a.jpg")
	if err != nil {
		t.Fatalf("NewEncounter() error = %v", err)
	}

	cat, err := NewCat("Whiskers", "green", "tabby", "shy", "/photos/a.jpg", first)
	if err != nil {
		t.Fatalf("NewCat() error = %v", err)
	}

	if cat.ID == "" {
		t.Error("cat id should be assigned")
	}
	if len(cat.Encounters) != 1 {
		t.Fatalf("encounters = %d, want 1", len(cat.Encounters))
	}
	if cat.Encounters[0].Label != 1 {
		t.Errorf("first encounter label = %d, want 1", cat.Encounters[0].Label)
	}
	if cat.NextEncounterNumber != 2 {
		t.Errorf("NextEncounterNumber = %d, want 2", cat.NextEncounterNumber)
	}
}

func TestNewCat_Validation(t *testing.T) {
	first, _ := NewEncounter("1/15/2026", "", "", "/photos/a.jpg")

	tests := []struct {
		name     string
		catName  string
		imageURI string
	}{
		{"missing name", "", "/photos/a.jpg"},
		{"whitespace name", "   ", "/photos/a.jpg"},
		{"missing photo", "Whiskers", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCat(tt.catName, "", "", "", tt.imageURI, first)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("NewCat() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestNewEncounter_SentinelDefaults(t *testing.T) {
	tests := []struct {
		name         string
		location     string
		details      string
		wantLocation string
		wantDetails  string
	}{
		{"both blank", "", "", DefaultLocation, DefaultDetails},
		{"whitespace only", "  ", " ", DefaultLocation, DefaultDetails},
		{"location given", "Porch", "", "Porch", DefaultDetails},
		{"both given", "Porch", "Sleeping", "Porch", "Sleeping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEncounter("1/15/2026", tt.location, tt.details, "/photos/b.jpg")
			if err != nil {
				t.Fatalf("NewEncounter() error = %v", err)
			}
			if e.Location != tt.wantLocation {
				t.Errorf("Location = %q, want %q", e.Location, tt.wantLocation)
			}
			if e.Details != tt.wantDetails {
				t.Errorf("Details = %q, want %q", e.Details, tt.wantDetails)
			}
		})
	}
}

func TestNewEncounter_RequiresPhoto(t *testing.T) {
	if _, err := NewEncounter("1/15/2026", "Porch", "", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("NewEncounter() error = %v, want ErrValidation", err)
	}
}

func TestCat_AppendEncounter_LabelsStrictlyIncrease(t *testing.T) {
	first, _ := NewEncounter("1/15/2026", "", "", "/photos/a.jpg")
	cat, err := NewCat("Mochi", "", "", "", "/photos/a.jpg", first)
	if err != nil {
		t.Fatal(err)
	}

	prev := cat.Encounters[0].Label
	for i := 0; i < 5; i++ {
		e, _ := NewEncounter("1/16/2026", "", "", "/photos/b.jpg")
		label := cat.AppendEncounter(e)
		if label <= prev {
			t.Fatalf("label %d not strictly greater than previous %d", label, prev)
		}
		if cat.NextEncounterNumber <= cat.MaxEncounterLabel() {
			t.Fatalf("counter %d not above max label %d", cat.NextEncounterNumber, cat.MaxEncounterLabel())
		}
		prev = label
	}
}

func TestCat_AppendEncounter_ExplicitLabelAdvancesCounter(t *testing.T) {
	first, _ := NewEncounter("1/15/2026", "", "", "/photos/a.jpg")
	cat, _ := NewCat("Mochi", "", "", "", "/photos/a.jpg", first)

	e, _ := NewEncounter("1/16/2026", "", "", "/photos/b.jpg")
	e.Label = 9
	cat.AppendEncounter(e)

	if cat.NextEncounterNumber != 10 {
		t.Errorf("NextEncounterNumber = %d, want 10", cat.NextEncounterNumber)
	}

	// A lower explicit label must not move the counter backwards.
	e2, _ := NewEncounter("1/17/2026", "", "", "/photos/c.jpg")
	e2.Label = 3
	cat.AppendEncounter(e2)

	if cat.NextEncounterNumber != 10 {
		t.Errorf("NextEncounterNumber = %d after lower label, want 10", cat.NextEncounterNumber)
	}
}

func TestCat_AppendEncounter_MissingCounter(t *testing.T) {
	// Simulates a record loaded from a blob written before counters existed.
	cat := Cat{
		ID:       "1",
		Name:     "Ash",
		ImageURI: "/photos/a.jpg",
		Encounters: []Encounter{
			{ID: "e1", Photo: "/photos/a.jpg", Label: 4},
		},
	}

	e, _ := NewEncounter("1/16/2026", "", "", "/photos/b.jpg")
	label := cat.AppendEncounter(e)

	if label != 5 {
		t.Errorf("label = %d, want max+1 = 5", label)
	}
	if cat.NextEncounterNumber != 6 {
		t.Errorf("NextEncounterNumber = %d, want 6", cat.NextEncounterNumber)
	}
}

func TestCat_Normalize(t *testing.T) {
	cat := Cat{
		ID:       "1",
		Name:     "Ash",
		ImageURI: "/photos/a.jpg",
		Encounters: []Encounter{
			{Photo: "/photos/a.jpg"},
			{Photo: "/photos/b.jpg"},
		},
	}

	cat.Normalize()

	if cat.Encounters[0].Label != 1 || cat.Encounters[1].Label != 2 {
		t.Errorf("labels = %d,%d, want positional 1,2", cat.Encounters[0].Label, cat.Encounters[1].Label)
	}
	if cat.Encounters[0].ID == "" || cat.Encounters[1].ID == "" {
		t.Error("missing encounter ids should be assigned")
	}
	if cat.NextEncounterNumber != 3 {
		t.Errorf("NextEncounterNumber = %d, want 3", cat.NextEncounterNumber)
	}
}

func TestCat_FindEncounter(t *testing.T) {
	cat := Cat{
		Encounters: []Encounter{
			{ID: "e1"}, {ID: "e2"},
		},
	}

	if idx := cat.FindEncounter("e2"); idx != 1 {
		t.Errorf("FindEncounter(e2) = %d, want 1", idx)
	}
	if idx := cat.FindEncounter("missing"); idx != -1 {
		t.Errorf("FindEncounter(missing) = %d, want -1", idx)
	}
}

func TestCat_PhotoReferences(t *testing.T) {
	cat := Cat{
		ImageURI: "/photos/profile.jpg",
		Encounters: []Encounter{
			{ID: "e1", Photo: "/photos/one.jpg"},
			{ID: "e2", Photo: ""},
			{ID: "e3", Photo: "/photos/three.jpg"},
		},
	}

	refs := cat.PhotoReferences()
	want := []string{"/photos/profile.jpg", "/photos/one.jpg", "/photos/three.jpg"}
	if len(refs) != len(want) {
		t.Fatalf("got %d references, want %d", len(refs), len(want))
	}
	for i, r := range want {
		if refs[i] != r {
			t.Errorf("refs[%d] = %q, want %q", i, refs[i], r)
		}
	}
}
