// Package textproc implements the small text preprocessing pipeline used by
// resource search, subject cleanup and the text analysis endpoint.
package textproc

import (
	"strings"
	"unicode"
)

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {},
	"for": {}, "from": {}, "has": {}, "he": {}, "in": {}, "is": {}, "it": {}, "its": {},
	"of": {}, "on": {}, "that": {}, "the": {}, "to": {}, "was": {}, "will": {}, "with": {},
	"i": {}, "am": {}, "my": {}, "me": {}, "we": {}, "our": {}, "you": {}, "your": {},
	"they": {}, "them": {}, "their": {}, "this": {}, "these": {}, "those": {},
}

// suffixes are tried in order; the first match wins.
var suffixes = []string{
	"ing", "ed", "er", "est", "ly", "ion", "tion", "ness", "ment", "able", "ible", "al",
	"ful", "less", "ous", "ive", "ant", "ent", "ism", "ist", "ity", "ize", "ise", "ate",
}

var lemmas = map[string]string{
	"running": "run", "ran": "run", "runs": "run",
	"programming": "program", "coded": "code", "coding": "code",
	"learning": "learn", "learned": "learn", "learnt": "learn",
	"studying": "study", "studied": "study", "studies": "study",
	"feeling": "feel", "felt": "feel", "feels": "feel",
	"thinking": "think", "thought": "think", "thinks": "think",
	"working": "work", "worked": "work", "works": "work",
	"trying": "try", "tried": "try", "tries": "try",
	"struggling": "struggle", "struggled": "struggle",
	"overwhelmed": "overwhelm", "overwhelming": "overwhelm",
	"motivated": "motivate", "motivating": "motivate",
	"excited": "excite", "exciting": "excite",
	"frustrated": "frustrate", "frustrating": "frustrate",
}

var emotionWords = map[string]struct{}{
	"struggle": {}, "difficult": {}, "hard": {}, "easy": {}, "excited": {}, "motivate": {},
	"tire": {}, "exhaust": {}, "overwhelm": {}, "confuse": {}, "understand": {},
	"love": {}, "hate": {}, "like": {}, "enjoy": {}, "bore": {}, "interest": {},
	"stress": {}, "anxious": {}, "calm": {}, "relax": {}, "worry": {}, "concern": {},
}

// Normalize lowercases s and replaces punctuation and symbols with spaces.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return ' '
		}
		return unicode.ToLower(r)
	}, s)
}

// Tokenize splits the normalized text on whitespace.
func Tokenize(s string) []string {
	return strings.Fields(Normalize(s))
}

// IsStopword reports whether token is in the stopword set.
func IsStopword(token string) bool {
	_, ok := stopwords[strings.ToLower(token)]
	return ok
}

// RemoveStopwords returns tokens without stopwords, preserving order.
func RemoveStopwords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !IsStopword(t) {
			out = append(out, t)
		}
	}
	return out
}

// Stem strips the first matching suffix, provided at least three
// characters of the word remain.
func Stem(token string) string {
	for _, suffix := range suffixes {
		if strings.HasSuffix(token, suffix) && len(token) > len(suffix)+2 {
			return token[:len(token)-len(suffix)]
		}
	}
	return token
}

// Lemmatize maps known inflections to their dictionary form.
func Lemmatize(token string) string {
	if lemma, ok := lemmas[strings.ToLower(token)]; ok {
		return lemma
	}
	return token
}

// Analysis is the step-by-step output of the pipeline.
type Analysis struct {
	Original    string   `json:"original_text"`
	Normalized  string   `json:"normalized"`
	Tokens      []string `json:"tokens"`
	NoStopwords []string `json:"no_stopwords"`
	Stems       []string `json:"stemmed"`
	Lemmas      []string `json:"lemmatized"`
	TokenCount  int      `json:"token_count"`
	Removed     int      `json:"stopwords_removed"`
}

// Analyze runs the whole pipeline. Stemming and lemmatization both work
// on the stopword-free tokens.
func Analyze(text string) Analysis {
	tokens := Tokenize(text)
	content := RemoveStopwords(tokens)

	stems := make([]string, len(content))
	lemmasOut := make([]string, len(content))
	for i, t := range content {
		stems[i] = Stem(t)
		lemmasOut[i] = Lemmatize(t)
	}

	return Analysis{
		Original:    text,
		Normalized:  strings.Join(tokens, " "),
		Tokens:      tokens,
		NoStopwords: content,
		Stems:       stems,
		Lemmas:      lemmasOut,
		TokenCount:  len(tokens),
		Removed:     len(tokens) - len(content),
	}
}

// CleanSubject tidies free-form subject input: "learn the GUITAR!" becomes
// "Learn Guitar".
func CleanSubject(subject string) string {
	words := RemoveStopwords(Tokenize(subject))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// SentimentKeywords returns the emotion-bearing lemmas found in text.
func SentimentKeywords(text string) []string {
	var out []string
	for _, lemma := range Analyze(text).Lemmas {
		if _, ok := emotionWords[lemma]; ok {
			out = append(out, lemma)
		}
	}
	return out
}
