package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default sentinel text for encounter fields left blank by the user.
const (
	DefaultLocation = "Unknown"
	DefaultDetails  = "No details provided"
)

// Cat represents one identified animal and its full sighting history.
// JSON keys match the persisted collection format, so older blobs load
// unchanged; fields introduced later (label, nextEncounterNumber) are
// defaulted at read time instead of migrated.
type Cat struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	EyeColor   string      `json:"eye,omitempty"`
	FurColor   string      `json:"color,omitempty"`
	Behavior   string      `json:"behavior,omitempty"`
	ImageURI   string      `json:"imageUri"`
	Encounters []Encounter `json:"encounters"`

	// NextEncounterNumber is always strictly greater than the highest
	// label among existing encounters.
	NextEncounterNumber int `json:"nextEncounterNumber,omitempty"`
}

// Encounter represents one recorded sighting of a cat.
type Encounter struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Details  string `json:"details"`
	Photo    string `json:"photo"`

	// Label is the display sequence number ("Encounter #N"),
	// assigned once and immutable thereafter.
	Label int `json:"label,omitempty"`
}

// NewCatID derives a collection-unique id from the current clock.
func NewCatID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// NewEncounterID returns an id unique within the parent cat.
func NewEncounterID() string {
	return uuid.NewString()
}

// NewCat builds a cat with its required first encounter, labeled 1.
func NewCat(name, eyeColor, furColor, behavior, imageURI string, first Encounter) (*Cat, error) {
	if err := ValidateCat(name, imageURI); err != nil {
		return nil, err
	}

	first.Label = 1
	return &Cat{
		ID:                  NewCatID(),
		Name:                name,
		EyeColor:            eyeColor,
		FurColor:            furColor,
		Behavior:            behavior,
		ImageURI:            imageURI,
		Encounters:          []Encounter{first},
		NextEncounterNumber: 2,
	}, nil
}

// NewEncounter builds an encounter, applying the sentinel defaults for
// blank optional fields. The label is assigned by the owning cat.
func NewEncounter(date, location, details, photo string) (Encounter, error) {
	if err := ValidateEncounter(photo); err != nil {
		return Encounter{}, err
	}

	if strings.TrimSpace(location) == "" {
		location = DefaultLocation
	}
	if strings.TrimSpace(details) == "" {
		details = DefaultDetails
	}

	return Encounter{
		ID:       NewEncounterID(),
		Date:     date,
		Location: location,
		Details:  details,
		Photo:    photo,
	}, nil
}

// ValidateCat checks the fields required before a cat may be created.
func ValidateCat(name, imageURI string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: cat name is required", ErrValidation)
	}
	if strings.TrimSpace(imageURI) == "" {
		return fmt.Errorf("%w: profile photo is required", ErrValidation)
	}
	return nil
}

// ValidateEncounter checks the fields required before an encounter may
// be recorded.
func ValidateEncounter(photo string) error {
	if strings.TrimSpace(photo) == "" {
		return fmt.Errorf("%w: encounter photo is required", ErrValidation)
	}
	return nil
}

// MaxEncounterLabel returns the highest label among existing encounters,
// or 0 when there are none.
func (c *Cat) MaxEncounterLabel() int {
	max := 0
	for _, e := range c.Encounters {
		if e.Label > max {
			max = e.Label
		}
	}
	return max
}

// AppendEncounter adds an encounter to the cat's history, assigning a
// label when the draft has none, and advances the counter so it stays
// strictly above every assigned label. Returns the assigned label.
func (c *Cat) AppendEncounter(e Encounter) int {
	if e.Label == 0 {
		if c.NextEncounterNumber > 0 {
			e.Label = c.NextEncounterNumber
		} else {
			e.Label = c.MaxEncounterLabel() + 1
		}
	}

	c.Encounters = append(c.Encounters, e)
	if e.Label+1 > c.NextEncounterNumber {
		c.NextEncounterNumber = e.Label + 1
	}
	return e.Label
}

// FindEncounter returns the index of the encounter with the given id,
// or -1 when absent.
func (c *Cat) FindEncounter(encounterID string) int {
	for i, e := range c.Encounters {
		if e.ID == encounterID {
			return i
		}
	}
	return -1
}

// Normalize repairs records loaded from blobs written before labels and
// counters existed: missing labels get their insertion position, missing
// counters become one past the highest label.
func (c *Cat) Normalize() {
	for i := range c.Encounters {
		if c.Encounters[i].Label == 0 {
			c.Encounters[i].Label = i + 1
		}
		if c.Encounters[i].ID == "" {
			c.Encounters[i].ID = NewEncounterID()
		}
	}
	if max := c.MaxEncounterLabel(); c.NextEncounterNumber <= max {
		c.NextEncounterNumber = max + 1
	}
}

// PhotoReferences returns every photo reference held by this cat: the
// profile image plus each encounter photo.
func (c *Cat) PhotoReferences() []string {
	refs := make([]string, 0, len(c.Encounters)+1)
	if c.ImageURI != "" {
		refs = append(refs, c.ImageURI)
	}
	for _, e := range c.Encounters {
		if e.Photo != "" {
			refs = append(refs, e.Photo)
		}
	}
	return refs
}
