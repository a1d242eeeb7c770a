package zone

import (
	"errors"
	"strings"
	"time"

	"github.com/dukerupert/zonetasks/internal/idgen"
	"github.com/dukerupert/zonetasks/internal/model"
)

var (
	ErrNameRequired      = errors.New("zone name is required")
	ErrWeekdaysRequired  = errors.New("select at least one weekday for the cadence")
	ErrTemplatesRequired = errors.New("add at least one task to the zone")
)

// Draft carries the user-editable fields of a zone before it is committed.
type Draft struct {
	Name            string               `json:"name"`
	PerTaskPoints   model.Points         `json:"perTaskPoints"`
	CompletionBonus model.Points         `json:"completionBonus"`
	Penalty         model.Points         `json:"penalty"`
	PenaltyMode     model.PenaltyMode    `json:"penaltyMode,omitempty"`
	Cadence         model.Cadence        `json:"cadence"`
	TaskTemplates   []model.TaskTemplate `json:"taskTemplates"`
}

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	return nil
}

func ValidateCadence(c model.Cadence) error {
	if c.Type == model.CadenceWeekly && len(c.Days) == 0 {
		return ErrWeekdaysRequired
	}
	return nil
}

func ValidateTemplates(templates []model.TaskTemplate) error {
	for _, t := range templates {
		if strings.TrimSpace(t.Name) != "" {
			return nil
		}
	}
	return ErrTemplatesRequired
}

// Validate runs the commit checks in the order the user sees them and
// returns the first violation.
func (d Draft) Validate() error {
	if err := ValidateName(d.Name); err != nil {
		return err
	}
	if err := ValidateCadence(d.Cadence); err != nil {
		return err
	}
	return ValidateTemplates(d.TaskTemplates)
}

// clean trims names, drops blank templates and normalizes the cadence.
func (d Draft) clean() Draft {
	d.Name = strings.TrimSpace(d.Name)
	if d.PenaltyMode != model.PenaltyIncomplete {
		d.PenaltyMode = model.PenaltySkipped
	}
	d.Cadence = d.Cadence.Normalized()
	templates := make([]model.TaskTemplate, 0, len(d.TaskTemplates))
	for _, t := range d.TaskTemplates {
		t.Name = strings.TrimSpace(t.Name)
		if t.Name == "" {
			continue
		}
		templates = append(templates, t)
	}
	d.TaskTemplates = templates
	return d
}

// New builds a zone from a draft with today's instances already generated.
// Callers still run Refresh, which clears them when the cadence does not
// match today.
func New(d Draft, today time.Time, ids idgen.Generator) (model.Zone, error) {
	d = d.clean()
	if err := d.Validate(); err != nil {
		return model.Zone{}, err
	}
	z := model.Zone{ID: ids.NewID("zone")}
	return apply(z, d, today, ids), nil
}

// Edit replaces the rules and templates of z and regenerates its instances.
// On a validation error z is returned unchanged.
func Edit(z model.Zone, d Draft, today time.Time, ids idgen.Generator) (model.Zone, error) {
	d = d.clean()
	if err := d.Validate(); err != nil {
		return z, err
	}
	return apply(z.Clone(), d, today, ids), nil
}

// Reset regenerates today's instances for z, discarding their statuses.
func Reset(z model.Zone, today time.Time, ids idgen.Generator) model.Zone {
	z = z.Clone()
	z.Tasks = Generate(z.TaskTemplates, ids)
	return Refresh(z, today, ids)
}

func apply(z model.Zone, d Draft, today time.Time, ids idgen.Generator) model.Zone {
	for i := range d.TaskTemplates {
		if d.TaskTemplates[i].ID == "" {
			d.TaskTemplates[i].ID = ids.NewID("tmpl")
		}
	}
	z.Name = d.Name
	z.PerTaskPoints = d.PerTaskPoints
	z.CompletionBonus = d.CompletionBonus
	z.Penalty = d.Penalty
	z.PenaltyMode = d.PenaltyMode
	z.Cadence = d.Cadence
	z.TaskTemplates = d.TaskTemplates
	z.ActiveDate = model.DateKey(today)
	z.Tasks = Generate(z.TaskTemplates, ids)
	return z
}
