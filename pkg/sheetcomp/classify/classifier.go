package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// rule pairs a category with the pattern that recognises it.
type rule struct {
	category Category
	patterns []*regexp.Regexp
}

// rules is evaluated top to bottom; the first match wins. Empty is handled
// before the chain and Text is the fallback after it.
var rules = []rule{
	{Year, compile(`^(19|20|21)\d{2}$`)},
	{Email, compile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)},
	{Percentage, compile(`^-?\d+\.?\d*%$`)},
	{Currency, compile(`^[$£€¥₹][\s\p{Zs}]*-?\d{1,3}(,\d{3})*(\.\d{2})?$`)},
	{ScientificNotation, compile(`^-?\d+\.?\d*[eE][+-]?\d+$`)},
	{Date, compile(
		`^\d{4}[-/]\d{1,2}[-/]\d{1,2}$`,
		`^\d{1,2}[-/]\d{1,2}[-/]\d{4}$`,
		`^\d{1,2}[-/]\d{1,2}[-/]\d{2}$`,
	)},
	{Time, compile(`(?i)^\d{1,2}:\d{2}(:\d{2})?([\s\p{Zs}]*(AM|PM))?$`)},
	{Float, compile(`^-?\d+\.\d+$`)},
	{Integer, compile(`^-?\d+$`)},
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// Classify returns the category of a cell value. Surrounding whitespace is
// ignored. Digits are matched as ASCII 0-9; inner spacing may be any Unicode
// space.
func Classify(value string) Category {
	v := strings.TrimSpace(value)
	if v == "" {
		return Empty
	}

	for _, r := range rules {
		for _, p := range r.patterns {
			if p.MatchString(v) {
				return r.category
			}
		}
	}
	return Text
}

// ClassifyOptional classifies a possibly absent value; nil is Empty.
func ClassifyOptional(value *string) Category {
	if value == nil {
		return Empty
	}
	return Classify(*value)
}

// GroupKey identifies an aggregation group. Typed categories share one key
// per category; Text values are keyed by their literal value.
type GroupKey struct {
	Category Category
	Literal  string // set only for Text
}

// Key classifies value and returns its aggregation key.
func Key(value string) GroupKey {
	c := Classify(value)
	if c == Text {
		return GroupKey{Category: Text, Literal: value}
	}
	return GroupKey{Category: c}
}

// String renders typed keys by category name and text keys as a quoted literal.
func (k GroupKey) String() string {
	if k.Category == Text {
		return strconv.Quote(k.Literal)
	}
	return k.Category.String()
}
