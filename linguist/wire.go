package linguist

import (
	"fmt"

	"github.com/kbukum/linguist/transcript"
)

// Wire shapes use pointers so that presence, not zero-ness, is validated.

type transcriptionWire struct {
	Language *string       `json:"language" validate:"required"`
	Meta     *metaWire     `json:"meta" validate:"required"`
	Segments []segmentWire `json:"segments" validate:"required,dive"`
}

type metaWire struct {
	WordCount      *int    `json:"wordCount" validate:"required,gte=0"`
	EstimatedLevel *string `json:"estimatedLevel" validate:"required"`
	Speed          *string `json:"speed" validate:"required"`
}

type segmentWire struct {
	Start            *float64 `json:"start" validate:"required,gte=0"`
	End              *float64 `json:"end" validate:"required,gte=0"`
	Text             *string  `json:"text" validate:"required"`
	Translation      *string  `json:"translation" validate:"required"`
	Idiomatic        *string  `json:"idiomatic" validate:"required"`
	IdiomExplanation *string  `json:"idiomExplanation" validate:"required"`
}

func (w transcriptionWire) result() (transcript.Result, error) {
	segs := make([]transcript.Segment, 0, len(w.Segments))
	for i, s := range w.Segments {
		if *s.End < *s.Start {
			return transcript.Result{}, fmt.Errorf("segments[%d]: end %.3f before start %.3f", i, *s.End, *s.Start)
		}
		if i > 0 && *s.Start < segs[i-1].Start {
			return transcript.Result{}, fmt.Errorf("segments[%d]: start %.3f before previous start %.3f", i, *s.Start, segs[i-1].Start)
		}
		segs = append(segs, transcript.Segment{
			Start:            *s.Start,
			End:              *s.End,
			Text:             *s.Text,
			Translation:      *s.Translation,
			Idiomatic:        *s.Idiomatic,
			IdiomExplanation: *s.IdiomExplanation,
		})
	}
	return transcript.Result{
		Language: *w.Language,
		Meta: transcript.Meta{
			WordCount:      *w.Meta.WordCount,
			EstimatedLevel: *w.Meta.EstimatedLevel,
			Speed:          *w.Meta.Speed,
		},
		Segments: segs,
	}, nil
}

type scoreWire struct {
	Score    *int    `json:"score" validate:"required,gte=0,lte=100"`
	Feedback *string `json:"feedback" validate:"required"`
	Accuracy *string `json:"accuracy" validate:"required,oneof=good average poor"`
}

func (w scoreWire) score() PronunciationScore {
	return PronunciationScore{Score: *w.Score, Feedback: *w.Feedback, Accuracy: Accuracy(*w.Accuracy)}
}

type definitionWire struct {
	Word       *string `json:"word" validate:"required"`
	Definition *string `json:"definition" validate:"required"`
	Example    *string `json:"example" validate:"required"`
	Phonetic   *string `json:"phonetic"`
}

func (w definitionWire) definition() WordDefinition {
	d := WordDefinition{Word: *w.Word, Definition: *w.Definition, Example: *w.Example}
	if w.Phonetic != nil {
		d.Phonetic = *w.Phonetic
	}
	return d
}
