package conversation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DefaultGuestCount is used when no count can be read from an utterance.
const DefaultGuestCount = 2

// HumanDateLayout renders dates the way they are read back to the caller.
const HumanDateLayout = "Mon Jan 02 2006"

// NumberWord maps a spoken word to a guest count.
type NumberWord struct {
	Word  string
	Value int
}

// NumberWords is checked in order by substring after digit runs.
var NumberWords = []NumberWord{
	{Word: "two", Value: 2},
	{Word: "three", Value: 3},
	{Word: "four", Value: 4},
	{Word: "five", Value: 5},
}

// DateRule offsets today when Keyword appears in the utterance.
type DateRule struct {
	Keyword   string
	DaysAhead int
}

// DateRules is checked in order; the first match wins and no match means today.
var DateRules = []DateRule{
	{Keyword: "day after", DaysAhead: 2},
	{Keyword: "tomorrow", DaysAhead: 1},
	{Keyword: "today", DaysAhead: 0},
}

var digitRun = regexp.MustCompile(`[0-9]+`)

// NormalizeUtterance trims and lowercases a raw transcript.
func NormalizeUtterance(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ExtractGuestCount never fails: anything unreadable yields DefaultGuestCount.
func ExtractGuestCount(utterance string) int {
	if run := digitRun.FindString(utterance); run != "" {
		n, err := strconv.Atoi(run)
		if err != nil || n < 1 {
			return DefaultGuestCount
		}
		return n
	}
	for _, w := range NumberWords {
		if strings.Contains(utterance, w.Word) {
			return w.Value
		}
	}
	return DefaultGuestCount
}

// ResolvedDate carries one instant in both stored and spoken forms.
type ResolvedDate struct {
	ISO   time.Time
	Human string
}

func ResolveDate(now time.Time, utterance string) ResolvedDate {
	days := 0
	for _, rule := range DateRules {
		if strings.Contains(utterance, rule.Keyword) {
			days = rule.DaysAhead
			break
		}
	}
	d := now.AddDate(0, 0, days)
	return ResolvedDate{ISO: d, Human: d.Format(HumanDateLayout)}
}

// Capitalize upper-cases the first letter of every space separated word and
// leaves the rest untouched.
func Capitalize(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func NormalizeSpecialRequests(utterance string) string {
	if utterance == "no" {
		return "None"
	}
	return utterance
}
