package model

// StateVersion is written with every saved zone collection.
const StateVersion = 2

// State is the whole application state for one player.
type State struct {
	Version    int          `json:"version"`
	PlayerName string       `json:"playerName"`
	Zones      []Zone       `json:"zones"`
	History    []ScoreEntry `json:"history"`
}

func NewState() State {
	return State{
		Version: StateVersion,
		Zones:   []Zone{},
		History: []ScoreEntry{},
	}
}

// Normalize applies defaulting rules after decoding.
func (s *State) Normalize() {
	s.Version = StateVersion
	if s.Zones == nil {
		s.Zones = []Zone{}
	}
	if s.History == nil {
		s.History = []ScoreEntry{}
	}
	for i := range s.Zones {
		s.Zones[i].Normalize()
	}
	for i := range s.History {
		if s.History[i].Zones == nil {
			s.History[i].Zones = []ZoneResult{}
		}
	}
}

func (s State) Clone() State {
	c := s
	c.Zones = make([]Zone, len(s.Zones))
	for i, z := range s.Zones {
		c.Zones[i] = z.Clone()
	}
	c.History = make([]ScoreEntry, len(s.History))
	for i, e := range s.History {
		c.History[i] = e.Clone()
	}
	return c
}

// FindZone returns the index of the zone with the given id, or -1.
func (s *State) FindZone(id string) int {
	for i := range s.Zones {
		if s.Zones[i].ID == id {
			return i
		}
	}
	return -1
}
