package io

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/derive"
)

type document struct {
	Shape       derive.Shape        `json:"shape"`
	Depth       int                 `json:"depth"`
	LowMemory   bool                `json:"low_memory,omitempty"`
	Strings     []string            `json:"strings,omitempty"`
	Counts      map[string]uint64   `json:"counts,omitempty"`
	Derivations map[string][][]step `json:"derivations,omitempty"`
	Stats       *stats              `json:"stats,omitempty"`
}

// step is one derivation record. A nil Pos marks a low-memory record, which
// is encoded as a bare string.
type step struct {
	Pos        *int
	Production string
}

type fullStep struct {
	Pos        int    `json:"pos"`
	Production string `json:"production"`
}

func (s step) MarshalJSON() ([]byte, error) {
	if s.Pos == nil {
		return json.Marshal(s.Production)
	}
	return json.Marshal(fullStep{Pos: *s.Pos, Production: s.Production})
}

func (s *step) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		*s = step{}
		return json.Unmarshal(data, &s.Production)
	}
	var fs fullStep
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fs); err != nil {
		return fmt.Errorf("derivation step: %w", err)
	}
	*s = step{Pos: &fs.Pos, Production: fs.Production}
	return nil
}

type stats struct {
	Rewrites   int `json:"rewrites"`
	Successors int `json:"successors"`
	Merged     int `json:"merged"`
	Discarded  int `json:"discarded"`
	Abandoned  int `json:"abandoned"`
	Peak       int `json:"peak"`
}

func fromStats(st derive.Stats) *stats {
	if st == (derive.Stats{}) {
		return nil
	}
	s := stats(st)
	return &s
}

func (s *stats) engine() derive.Stats {
	if s == nil {
		return derive.Stats{}
	}
	return derive.Stats(*s)
}
