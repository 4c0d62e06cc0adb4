package linguist

import "github.com/kbukum/linguist/gemini"

func str() *gemini.Schema { return &gemini.Schema{Type: gemini.TypeString} }

func num() *gemini.Schema { return &gemini.Schema{Type: gemini.TypeNumber} }

func integer() *gemini.Schema { return &gemini.Schema{Type: gemini.TypeInteger} }

var transcriptionSchema = &gemini.Schema{
	Type: gemini.TypeObject,
	Properties: map[string]*gemini.Schema{
		"language": str(),
		"meta": {
			Type: gemini.TypeObject,
			Properties: map[string]*gemini.Schema{
				"wordCount":      integer(),
				"estimatedLevel": str(),
				"speed":          str(),
			},
			Required: []string{"wordCount", "estimatedLevel", "speed"},
		},
		"segments": {
			Type: gemini.TypeArray,
			Items: &gemini.Schema{
				Type: gemini.TypeObject,
				Properties: map[string]*gemini.Schema{
					"start":            num(),
					"end":              num(),
					"text":             str(),
					"translation":      str(),
					"idiomatic":        str(),
					"idiomExplanation": str(),
				},
				Required: []string{"start", "end", "text", "translation", "idiomatic", "idiomExplanation"},
			},
		},
	},
	Required: []string{"language", "meta", "segments"},
}

var pronunciationSchema = &gemini.Schema{
	Type: gemini.TypeObject,
	Properties: map[string]*gemini.Schema{
		"score":    integer(),
		"feedback": str(),
		"accuracy": {Type: gemini.TypeString, Enum: []string{string(AccuracyGood), string(AccuracyAverage), string(AccuracyPoor)}},
	},
	Required: []string{"score", "feedback", "accuracy"},
}

var definitionSchema = &gemini.Schema{
	Type: gemini.TypeObject,
	Properties: map[string]*gemini.Schema{
		"word":       str(),
		"definition": str(),
		"example":    str(),
		"phonetic":   str(),
	},
	Required: []string{"word", "definition", "example"},
}
