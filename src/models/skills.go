package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// SkillsKind tells which shape a skills field arrived in.
type SkillsKind int

const (
	SkillsAbsent SkillsKind = iota
	SkillsSingle
	SkillsSequence
	SkillsInvalid
)

// SkillsInput accepts either "a, b" or ["a", "b"] on the wire.
type SkillsInput struct {
	Kind     SkillsKind
	Single   string
	Sequence []string
	// BadIndex is the first rejected element of an invalid sequence, -1 otherwise.
	BadIndex int
	// EmptyElement is set when that element was "" rather than a non-string.
	EmptyElement bool
}

func SingleSkills(s string) SkillsInput {
	return SkillsInput{Kind: SkillsSingle, Single: s, BadIndex: -1}
}

func SkillSequence(items ...string) SkillsInput {
	return SkillsInput{Kind: SkillsSequence, Sequence: items, BadIndex: -1}
}

// UnmarshalJSON never fails on a wrong shape: it records SkillsInvalid so the
// validator can report it together with every other field violation.
func (s *SkillsInput) UnmarshalJSON(data []byte) error {
	*s = SkillsInput{BadIndex: -1}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		s.Kind = SkillsSingle
		s.Single = single
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.Kind = SkillsInvalid
		return nil
	}

	items := make([]string, 0, len(raw))
	for i, r := range raw {
		var item string
		if bytes.Equal(bytes.TrimSpace(r), []byte("null")) || json.Unmarshal(r, &item) != nil {
			s.Kind = SkillsInvalid
			s.BadIndex = i
			return nil
		}
		if item == "" {
			s.Kind = SkillsInvalid
			s.BadIndex = i
			s.EmptyElement = true
			return nil
		}
		items = append(items, item)
	}
	s.Kind = SkillsSequence
	s.Sequence = items
	return nil
}

func (s SkillsInput) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case SkillsSingle:
		return json.Marshal(s.Single)
	case SkillsSequence:
		return json.Marshal(s.Sequence)
	default:
		return []byte("null"), nil
	}
}

func (s SkillsInput) Valid() bool {
	return s.Kind != SkillsInvalid
}

// Resolve returns the canonical sequence to store. A single string is split
// on commas with every piece trimmed and empty pieces dropped; a sequence is
// returned unchanged.
func (s SkillsInput) Resolve() []string {
	switch s.Kind {
	case SkillsSingle:
		out := []string{}
		for _, piece := range strings.Split(s.Single, ",") {
			if piece = strings.TrimSpace(piece); piece != "" {
				out = append(out, piece)
			}
		}
		return out
	case SkillsSequence:
		out := make([]string, len(s.Sequence))
		copy(out, s.Sequence)
		return out
	default:
		return []string{}
	}
}
