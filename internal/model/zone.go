package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateLayout is the layout of Zone.ActiveDate and other day keys.
const DateLayout = "2006-01-02"

// DateKey returns the day key for t in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

var ErrInvalidStatus = errors.New("invalid task status")

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
)

// ParseStatus accepts one of the known status names.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusCompleted, StatusSkipped:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

type CadenceType string

const (
	CadenceDaily  CadenceType = "daily"
	CadenceWeekly CadenceType = "weekly"
)

// Cadence decides on which days a zone has tasks. Days is only meaningful
// for weekly cadences and uses time.Weekday numbering (Sunday = 0).
type Cadence struct {
	Type CadenceType    `json:"type"`
	Days []time.Weekday `json:"days,omitempty"`
}

func Daily() Cadence {
	return Cadence{Type: CadenceDaily}
}

func Weekly(days ...time.Weekday) Cadence {
	return Cadence{Type: CadenceWeekly, Days: days}
}

func (c *Cadence) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type string            `json:"type"`
		Days []json.RawMessage `json:"days"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Type = CadenceType(raw.Type)
	c.Days = nil
	for _, d := range raw.Days {
		c.Days = append(c.Days, CoerceWeekday(d))
	}
	*c = c.Normalized()
	return nil
}

// Normalized drops out-of-range or repeated weekdays, keeping the stored
// order. A missing type means daily. Any other type that is not daily is
// read as weekly on its listed days, so without days it is never due.
func (c Cadence) Normalized() Cadence {
	if c.Type == "" || c.Type == CadenceDaily {
		return Daily()
	}
	seen := make(map[time.Weekday]bool, len(c.Days))
	days := make([]time.Weekday, 0, len(c.Days))
	for _, d := range c.Days {
		if d < time.Sunday || d > time.Saturday || seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	return Cadence{Type: CadenceWeekly, Days: days}
}

type TaskTemplate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TaskInstance is one day's occurrence of a template.
type TaskInstance struct {
	ID         string `json:"id"`
	TemplateID string `json:"templateId,omitempty"`
	Name       string `json:"name"`
	Status     Status `json:"status"`
}

// UnmarshalJSON also accepts the boolean "completed" shape written by the
// single-list variant and folds it into Status.
func (t *TaskInstance) UnmarshalJSON(data []byte) error {
	type plain TaskInstance
	var raw struct {
		plain
		Text      string `json:"text"`
		Completed *bool  `json:"completed"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = TaskInstance(raw.plain)
	if t.Name == "" {
		t.Name = raw.Text
	}
	if _, err := ParseStatus(string(t.Status)); err != nil {
		t.Status = StatusPending
		if raw.Completed != nil && *raw.Completed {
			t.Status = StatusCompleted
		}
	}
	return nil
}

type PenaltyMode string

const (
	// PenaltySkipped charges the penalty for each skipped task.
	PenaltySkipped PenaltyMode = "skipped"
	// PenaltyIncomplete charges it for every task not completed.
	PenaltyIncomplete PenaltyMode = "incomplete"
)

type Zone struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	PerTaskPoints   Points         `json:"perTaskPoints"`
	CompletionBonus Points         `json:"completionBonus"`
	Penalty         Points         `json:"penalty"`
	PenaltyMode     PenaltyMode    `json:"penaltyMode,omitempty"`
	Cadence         Cadence        `json:"cadence"`
	TaskTemplates   []TaskTemplate `json:"taskTemplates"`
	ActiveDate      string         `json:"activeDate,omitempty"`
	// Tasks is nil until the zone has been refreshed at least once.
	Tasks []TaskInstance `json:"tasks"`
}

// Normalize applies the defaulting rules for records read from storage.
func (z *Zone) Normalize() {
	z.Cadence = z.Cadence.Normalized()
	if z.PenaltyMode != PenaltyIncomplete {
		z.PenaltyMode = PenaltySkipped
	}
	if z.TaskTemplates == nil {
		z.TaskTemplates = []TaskTemplate{}
	}
}

// Clone returns a deep copy. A nil Tasks slice stays nil.
func (z Zone) Clone() Zone {
	c := z
	c.Cadence.Days = append([]time.Weekday(nil), z.Cadence.Days...)
	c.TaskTemplates = append([]TaskTemplate{}, z.TaskTemplates...)
	if z.Tasks != nil {
		c.Tasks = append([]TaskInstance{}, z.Tasks...)
	}
	return c
}

// FindTask returns the index of the task instance with the given id, or -1.
func (z *Zone) FindTask(id string) int {
	for i := range z.Tasks {
		if z.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}
