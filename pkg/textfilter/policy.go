package textfilter

import "strings"

// Content ratings accepted in configuration.
const (
	RatingG    = "G"
	RatingPG   = "PG"
	RatingPG13 = "PG13"
	RatingR    = "R"
)

const (
	guidanceG    = "Write content suitable for young children. Avoid violence, romance and scary elements."
	guidancePG   = "Write content suitable for children and families. Mild peril is okay, but avoid strong language, explicit violence, or dark themes."
	guidancePG13 = "Write content appropriate for teenagers. Mild swearing and action are okay, but avoid explicit adult situations and graphic violence."
	guidanceR    = "Write with full freedom for adult audiences."
)

// NormalizeRating maps loose spellings ("pg-13", " pg ") onto a rating
// constant. Unknown or empty input yields "".
func NormalizeRating(rating string) string {
	r := strings.ToUpper(strings.TrimSpace(rating))
	r = strings.ReplaceAll(r, "-", "")
	switch r {
	case RatingG, RatingPG, RatingPG13, RatingR:
		return r
	default:
		return ""
	}
}

// ShouldFilterContent determines if content should be filtered based on rating
func ShouldFilterContent(rating string) bool {
	switch NormalizeRating(rating) {
	case RatingG, RatingPG, RatingPG13:
		return true
	default:
		return false
	}
}

// Policy is the content-safety policy applied to generated text.
// A nil *Policy allows everything.
type Policy struct {
	rating string
	filter *ProfanityFilter
}

// NewPolicy builds the policy for a rating. Unknown ratings give a policy
// that never rewrites text.
func NewPolicy(rating string) *Policy {
	p := &Policy{rating: NormalizeRating(rating)}
	if ShouldFilterContent(p.rating) {
		p.filter = NewProfanityFilter()
	}
	return p
}

// Rating returns the normalized rating, or "" when none applies.
func (p *Policy) Rating() string {
	if p == nil {
		return ""
	}
	return p.rating
}

// Apply filters text according to the rating.
func (p *Policy) Apply(text string) string {
	if p == nil || p.filter == nil || !p.filter.ContainsProfanity(text) {
		return text
	}
	return p.filter.FilterText(text)
}

// Guidance returns a one-line instruction describing the rating, for use in
// prompts.
func (p *Policy) Guidance() string {
	switch p.Rating() {
	case RatingG:
		return guidanceG
	case RatingPG:
		return guidancePG
	case RatingPG13:
		return guidancePG13
	case RatingR:
		return guidanceR
	default:
		return ""
	}
}
