// Package intent decides whether a message is a farming question and, if so,
// which kind of advice it needs.
package intent

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type matcher func(msg string) bool

type rule struct {
	category Category
	match    matcher
}

// Classifier evaluates an ordered list of rules; the first match wins and
// anything that passes every rule is GeneralFarming.
type Classifier struct {
	rules []rule
}

func NewClassifier(v *Vocabulary) *Classifier {
	if v == nil {
		v = DefaultVocabulary()
	}

	greeting := greetingMatcher(v.Greetings)
	farming := containsAny(v.Farming)
	nonFarming := containsAny(v.NonFarming)

	return &Classifier{rules: []rule{
		{Greeting, greeting},
		// Only rejected when nothing farming-related is present.
		{NonFarming, func(m string) bool { return !farming(m) && nonFarming(m) }},
		{CropRecommendation, both(containsAny(v.CropAction), either(containsAny(v.CropPlace), containsAny(v.CropSoil)))},
		{Weather, containsAny(v.Weather)},
		{UpdateNews, both(containsAny(v.Update), farming)},
		{MandiPrice, containsAny(v.Mandi)},
		{Scheme, containsAny(v.Scheme)},
		{Soil, containsAny(v.Soil)},
		{Economics, containsAny(v.Economics)},
	}}
}

func (c *Classifier) Classify(message string) Category {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return NonFarming
	}
	for _, r := range c.rules {
		if r.match(msg) {
			return r.category
		}
	}
	return GeneralFarming
}

var latinWord = regexp.MustCompile(`^[a-z]+$`)

func greetingMatcher(terms []string) matcher {
	var words, phrases []string
	for _, t := range terms {
		if latinWord.MatchString(t) {
			words = append(words, t)
			continue
		}
		phrases = append(phrases, t)
	}
	hasPhrase := containsAny(phrases)
	return func(m string) bool {
		for _, w := range words {
			if containsWord(m, w) {
				return true
			}
		}
		return hasPhrase(m)
	}
}

// containsWord reports whether w occurs in m with no letter, digit or
// underscore of any script directly before or after it.
func containsWord(m, w string) bool {
	for start := 0; start <= len(m)-len(w); {
		i := strings.Index(m[start:], w)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(w)
		before, _ := utf8.DecodeLastRuneInString(m[:i])
		after, _ := utf8.DecodeRuneInString(m[end:])
		if (i == 0 || !isWordRune(before)) && (end == len(m) || !isWordRune(after)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(m[i:])
		start = i + size
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func containsAny(terms []string) matcher {
	return func(m string) bool {
		for _, t := range terms {
			if t != "" && strings.Contains(m, t) {
				return true
			}
		}
		return false
	}
}

func both(a, b matcher) matcher {
	return func(m string) bool { return a(m) && b(m) }
}

func either(a, b matcher) matcher {
	return func(m string) bool { return a(m) || b(m) }
}
