package sompyler

import (
	"fmt"
	"iter"
	"strconv"

	"gopkg.in/yaml.v3"
)

type (
	// Score is the authored document: an ordered list of measures, each
	// mapping voice names to chords. The order of measures, voices and chords
	// is kept as written, since it determines the order of the events.
	//
	//	title: Example
	//	measures:
	//	  - _meta: {stress_pattern: "4,1,2,1", ticks_per_minute: 240}
	//	    melody:
	//	      0: C4 2
	//	      2: [E4, G4]
	Score struct {
		Title    string         `yaml:"title,omitempty"`
		Measures []ScoreMeasure `yaml:"measures"`
	}

	// ScoreMeasure is one measure of a Score, before resolution.
	ScoreMeasure struct {
		Config MeasureConfig
		Voices []ScoreVoice
	}

	// ScoreVoice is the chords of one voice in one measure.
	ScoreVoice struct {
		Name   string
		Config VoiceConfig
		Chords []Chord
	}

	// Arrangement is a resolved Score: the chained measures and the voice
	// timelines in authored order.
	Arrangement struct {
		Title     string
		Measures  []*Measure
		Timelines []*Timeline
	}
)

const metaKey = "_meta"

// LoadScore parses a YAML (or JSON) score.
func LoadScore(data []byte) (*Score, error) {
	var s Score
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("could not parse score: %w", err)
	}
	return &s, nil
}

func (m *ScoreMeasure) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: measure must be a mapping of voices", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if key.Value == metaKey {
			if err := val.Decode(&m.Config); err != nil {
				return err
			}
			continue
		}
		v := ScoreVoice{Name: key.Value}
		if err := v.decode(val); err != nil {
			return err
		}
		m.Voices = append(m.Voices, v)
	}
	return nil
}

func (v *ScoreVoice) decode(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: voice %v must map tick offsets to chords", value.Line, v.Name)
	}
	seen := map[int]bool{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if key.Value == metaKey {
			if err := val.Decode(&v.Config); err != nil {
				return err
			}
			continue
		}
		offset, err := strconv.Atoi(key.Value)
		if err != nil {
			return fmt.Errorf("line %d: voice %v: tick offset %q is not an integer", key.Line, v.Name, key.Value)
		}
		if offset < 0 {
			return fmt.Errorf("line %d: %w: voice %v: tick offset %d is negative", key.Line, ErrRange, v.Name, offset)
		}
		if seen[offset] {
			return fmt.Errorf("line %d: %w: voice %v: tick offset %d given twice", key.Line, ErrConfiguration, v.Name, offset)
		}
		seen[offset] = true
		c := Chord{Offset: offset}
		switch val.Kind {
		case yaml.ScalarNode:
			c.Notes = []string{val.Value}
		case yaml.SequenceNode:
			if err := val.Decode(&c.Notes); err != nil {
				return err
			}
		default:
			return fmt.Errorf("line %d: voice %v: chord must be a note or a list of notes", val.Line, v.Name)
		}
		v.Chords = append(v.Chords, c)
	}
	return nil
}

func (m ScoreMeasure) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value interface{}) error {
		var val yaml.Node
		if err := val.Encode(value); err != nil {
			return err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, &val)
		return nil
	}
	if err := add(metaKey, m.Config); err != nil {
		return nil, err
	}
	for _, v := range m.Voices {
		voice := &yaml.Node{Kind: yaml.MappingNode}
		if v.Config != (VoiceConfig{}) {
			var meta yaml.Node
			if err := meta.Encode(v.Config); err != nil {
				return nil, err
			}
			voice.Content = append(voice.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: metaKey}, &meta)
		}
		for _, c := range v.Chords {
			var notes yaml.Node
			if err := notes.Encode(c.Notes); err != nil {
				return nil, err
			}
			notes.Style = yaml.FlowStyle
			voice.Content = append(voice.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(c.Offset)}, &notes)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: v.Name}, voice)
	}
	return node, nil
}

// Arrange chains the measures of the score and binds the voices to them.
func (s *Score) Arrange() (*Arrangement, error) {
	ret := &Arrangement{Title: s.Title}
	var prev *Measure
	for i, sm := range s.Measures {
		m, err := NewMeasure(prev, sm.Config)
		if err != nil {
			return nil, fmt.Errorf("measure %d: %w", i+1, err)
		}
		ret.Measures = append(ret.Measures, m)
		for _, v := range sm.Voices {
			t, err := NewTimeline(m, v.Name, v.Chords, v.Config)
			if err != nil {
				return nil, fmt.Errorf("measure %d: %w", i+1, err)
			}
			ret.Timelines = append(ret.Timelines, t)
		}
		prev = m
	}
	return ret, nil
}

// Events yields the events of all timelines, measure by measure.
func (a *Arrangement) Events() iter.Seq[NoteEvent] {
	return func(yield func(NoteEvent) bool) {
		for _, t := range a.Timelines {
			for e := range t.Events() {
				if !yield(e) {
					return
				}
			}
		}
	}
}

// Notes resolves every event of the arrangement.
func (a *Arrangement) Notes() ([]ResolvedNote, error) {
	var ret []ResolvedNote
	for e := range a.Events() {
		n, err := e.Resolve()
		if err != nil {
			return nil, err
		}
		ret = append(ret, n)
	}
	return ret, nil
}

// Duration returns the end of the last measure in seconds.
func (a *Arrangement) Duration() float64 {
	if len(a.Measures) == 0 {
		return 0
	}
	return a.Measures[len(a.Measures)-1].End()
}

// Voices returns the distinct voice names in order of first appearance.
func (a *Arrangement) Voices() []string {
	var ret []string
	seen := map[string]bool{}
	for _, t := range a.Timelines {
		if !seen[t.Voice] {
			seen[t.Voice] = true
			ret = append(ret, t.Voice)
		}
	}
	return ret
}
