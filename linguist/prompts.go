package linguist

import "fmt"

const transcribeSystem = `You are an expert linguist and language teacher.
Listen to the audio and transcribe it exactly as spoken, split into natural
sentence-level segments with start and end times in seconds.
For every segment provide a faithful translation into %[1]s, a more idiomatic
native-sounding rewrite of the original sentence, and a short explanation in
%[1]s of any idiom, slang or notable expression (empty string when there is none).
Also report the spoken language, the total word count, the estimated CEFR
level of the speech (A1 to C2) and the speaking speed (slow, normal or fast).`

const transcribeUser = "Transcribe and analyze this recording."

const scoreSystem = `You are a pronunciation coach. Compare the learner's recording
with the reference sentence. Score the pronunciation from 0 to 100, give one or
two sentences of concrete feedback in %s, and classify overall accuracy as
good, average or poor.`

const defineSystem = `You are a concise dictionary. Explain the given word as it is
used in the given sentence. Answer in %s with the word, a one-sentence
definition, a short example sentence and, when known, the IPA phonetic spelling.`

const defineFallbackSystem = defineSystem + `
Respond with a JSON object with the keys "word", "definition", "example" and
optionally "phonetic".`

func transcribeInstruction(lang string) string {
	return fmt.Sprintf(transcribeSystem, lang)
}

func scoreInstruction(lang string) string {
	return fmt.Sprintf(scoreSystem, lang)
}

func scoreUser(reference string) string {
	return fmt.Sprintf("Reference sentence: %q", reference)
}

func defineInstruction(lang string) string {
	return fmt.Sprintf(defineSystem, lang)
}

func defineFallbackInstruction(lang string) string {
	return fmt.Sprintf(defineFallbackSystem, lang)
}

func defineUser(word, sentence string) string {
	if sentence == "" {
		return fmt.Sprintf("Word: %q", word)
	}
	return fmt.Sprintf("Word: %q\nSentence: %q", word, sentence)
}

func speechUser(text string) string {
	return "Say clearly and naturally: " + text
}
