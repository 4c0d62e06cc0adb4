// Package linguist orchestrates the linguistic analysis of recorded speech.
//
// A Router exposes four tasks backed by a multimodal provider: Transcribe,
// SynthesizeSpeech, ScorePronunciation and DefineWord. Every provider call is
// retried on server-side failures, and every textual reply is normalized into
// a strict typed record. DefineWord alone may fall back to a text-only
// provider when the primary fails and a fallback key is configured.
//
//	router := linguist.NewRouter(linguist.Config{
//	    Credentials: linguist.Credentials{PrimaryKey: key},
//	}, geminiClient, nil)
//	result, err := router.Transcribe(ctx, linguist.AudioInput{Data: data, Filename: "clip.m4a"})
package linguist
