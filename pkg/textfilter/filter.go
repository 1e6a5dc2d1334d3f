package textfilter

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Words filtered out of generated text for PG13 and milder ratings.
var swearWords = []string{
	"fuck", "shit", "damn", "hell", "ass", "bitch", "bastard", "crap",
	"piss", "cock", "dick", "pussy", "tits", "boobs", "whore", "slut",
	"fag", "retard", "nigger", "nigga", "spic", "chink", "kike",
	"motherfucker", "goddamn", "jesus christ", "christ", "asshole",
	"dumbass", "jackass", "smartass", "badass", "bullshit", "horseshit",
	"dipshit", "shithead", "dickhead", "prick", "douche", "douchebag",
}

// Family-friendly stand-ins, keyed by the lowercase word.
var swearWordReplacements = map[string]string{
	"fuck":         "fudge",
	"shit":         "shoot",
	"damn":         "dang",
	"hell":         "heck",
	"ass":          "butt",
	"bitch":        "jerk",
	"bastard":      "jerk",
	"crap":         "crud",
	"piss":         "ticked",
	"cock":         "[censored]",
	"dick":         "jerk",
	"pussy":        "[censored]",
	"tits":         "[censored]",
	"boobs":        "[censored]",
	"whore":        "[censored]",
	"slut":         "[censored]",
	"fag":          "[censored]",
	"retard":       "[censored]",
	"nigger":       "[censored]",
	"nigga":        "[censored]",
	"spic":         "[censored]",
	"chink":        "[censored]",
	"kike":         "[censored]",
	"motherfucker": "mother-trucker",
	"goddamn":      "gosh-dang",
	"jesus christ": "jeez",
	"christ":       "crikey",
	"asshole":      "jerk",
	"dumbass":      "dummy",
	"jackass":      "jerk",
	"smartass":     "smarty",
	"badass":       "tough",
	"bullshit":     "baloney",
	"horseshit":    "nonsense",
	"dipshit":      "dummy",
	"shithead":     "jerk",
	"dickhead":     "jerk",
	"prick":        "jerk",
	"douche":       "jerk",
	"douchebag":    "jerk",
}

// ProfanityFilter swaps profanity for milder words, keeping the case and
// plural of the original.
type ProfanityFilter struct {
	pattern *regexp.Regexp
}

// NewProfanityFilter compiles the word list into one case-insensitive pattern.
func NewProfanityFilter() *ProfanityFilter {
	words := make([]string, len(swearWords))
	copy(words, swearWords)
	// Longer words first so "asshole" wins over "ass".
	sort.SliceStable(words, func(i, j int) bool { return len(words[i]) > len(words[j]) })

	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return &ProfanityFilter{
		pattern: regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)(s?)\b`),
	}
}

// FilterText replaces profanity in text.
func (pf *ProfanityFilter) FilterText(text string) string {
	return pf.pattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := pf.pattern.FindStringSubmatch(match)
		if groups == nil {
			return match
		}
		word, plural := groups[1], groups[2]
		replacement, ok := swearWordReplacements[strings.ToLower(word)]
		if !ok {
			return match
		}
		out := preserveCase(word, replacement)
		if plural != "" && !strings.HasPrefix(replacement, "[") {
			out += plural
		}
		return out
	})
}

// ContainsProfanity reports whether text holds any listed word.
func (pf *ProfanityFilter) ContainsProfanity(text string) bool {
	return pf.pattern.MatchString(text)
}

// preserveCase applies the case pattern of original to replacement.
func preserveCase(original, replacement string) string {
	if original == "" {
		return replacement
	}
	if strings.ToUpper(original) == original {
		return strings.ToUpper(replacement)
	}
	if strings.ToLower(original) == original {
		return strings.ToLower(replacement)
	}

	titleCaser := cases.Title(language.English)
	if titleCaser.String(strings.ToLower(original)) == original {
		return titleCaser.String(replacement)
	}

	// Mixed case: copy the pattern rune by rune, lowercase past the end.
	orig := []rune(original)
	out := make([]rune, 0, len(replacement))
	for i, r := range []rune(replacement) {
		if i < len(orig) && unicode.IsUpper(orig[i]) {
			out = append(out, unicode.ToUpper(r))
		} else {
			out = append(out, unicode.ToLower(r))
		}
	}
	return string(out)
}
