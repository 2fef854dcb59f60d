// Package valueobject contains domain value objects for the SparkEd authentication system.
package valueobject

import (
	"regexp"
	"strconv"
	"unicode/utf8"
)

// MinPasswordLength is the minimum number of characters a password needs to satisfy
// the length requirement.
const MinPasswordLength = 8

// MaxStrengthScore is the highest score a password can reach.
const MaxStrengthScore = 4

// Indicator colors reported per requirement.
const (
	ColorSatisfied   = "#28a745"
	ColorUnsatisfied = "#F7567C"
)

var (
	lowercaseRe = regexp.MustCompile(`[a-z]`)
	uppercaseRe = regexp.MustCompile(`[A-Z]`)
	digitRe     = regexp.MustCompile(`\d`)
	specialRe   = regexp.MustCompile(`[!@#$%^&*]`)
)

// Requirement identifies a single password predicate.
type Requirement string

const (
	RequirementLowercase Requirement = "lowercase"
	RequirementUppercase Requirement = "uppercase"
	RequirementDigit     Requirement = "digit"
	RequirementSpecial   Requirement = "special"
	RequirementMinLength Requirement = "min_length"
)

// RequirementGroup is a unit that counts toward the strength score.
// Lowercase and uppercase form one group.
type RequirementGroup string

const (
	GroupMixedCase RequirementGroup = "lower_upper"
	GroupDigit     RequirementGroup = "number"
	GroupSpecial   RequirementGroup = "special"
	GroupLength    RequirementGroup = "length"
)

// scoreGroups lists the groups in display order.
var scoreGroups = []RequirementGroup{GroupMixedCase, GroupDigit, GroupSpecial, GroupLength}

// Check tests a single requirement against a password.
func (r Requirement) Check(password string) bool {
	switch r {
	case RequirementLowercase:
		return lowercaseRe.MatchString(password)
	case RequirementUppercase:
		return uppercaseRe.MatchString(password)
	case RequirementDigit:
		return digitRe.MatchString(password)
	case RequirementSpecial:
		return specialRe.MatchString(password)
	case RequirementMinLength:
		return utf8.RuneCountInString(password) >= MinPasswordLength
	default:
		return false
	}
}

// GroupIndicator reports whether a requirement group is satisfied and the color
// used to render it.
type GroupIndicator struct {
	Group     RequirementGroup
	Satisfied bool
	Color     string
}

// PasswordEvaluation is the result of evaluating a password.
type PasswordEvaluation struct {
	HasLowercase bool
	HasUppercase bool
	HasDigit     bool
	HasSpecial   bool
	HasMinLength bool
	Score        int
}

// EvaluatePassword runs every requirement against the password and computes the
// grouped score. It never fails; the empty string scores 0.
func EvaluatePassword(password string) PasswordEvaluation {
	e := PasswordEvaluation{
		HasLowercase: RequirementLowercase.Check(password),
		HasUppercase: RequirementUppercase.Check(password),
		HasDigit:     RequirementDigit.Check(password),
		HasSpecial:   RequirementSpecial.Check(password),
		HasMinLength: RequirementMinLength.Check(password),
	}
	for _, g := range scoreGroups {
		if e.groupSatisfied(g) {
			e.Score++
		}
	}
	return e
}

// IsStrong reports whether every requirement group is satisfied.
func (e PasswordEvaluation) IsStrong() bool {
	return e.Score == MaxStrengthScore
}

// Level classifies the evaluation's score.
func (e PasswordEvaluation) Level() StrengthLevel {
	return ClassifyScore(e.Score)
}

// Indicators returns one indicator per requirement group in display order.
func (e PasswordEvaluation) Indicators() []GroupIndicator {
	out := make([]GroupIndicator, 0, len(scoreGroups))
	for _, g := range scoreGroups {
		ok := e.groupSatisfied(g)
		color := ColorUnsatisfied
		if ok {
			color = ColorSatisfied
		}
		out = append(out, GroupIndicator{Group: g, Satisfied: ok, Color: color})
	}
	return out
}

func (e PasswordEvaluation) groupSatisfied(g RequirementGroup) bool {
	switch g {
	case GroupMixedCase:
		return e.HasLowercase && e.HasUppercase
	case GroupDigit:
		return e.HasDigit
	case GroupSpecial:
		return e.HasSpecial
	case GroupLength:
		return e.HasMinLength
	default:
		return false
	}
}

// StrengthLevel is the display classification of a strength score.
type StrengthLevel struct {
	Score  int
	Label  string
	Weight int // bar width, percent
	Color  string
}

// WeightPercent formats the weight the way the strength bar consumes it.
func (l StrengthLevel) WeightPercent() string {
	return strconv.Itoa(l.Weight) + "%"
}

// strengthLevels is indexed by score and has exactly MaxStrengthScore+1 entries.
var strengthLevels = [MaxStrengthScore + 1]StrengthLevel{
	{Score: 0, Label: "Very Weak", Weight: 10, Color: "#F7567C"},
	{Score: 1, Label: "Weak", Weight: 40, Color: "#FFA500"},
	{Score: 2, Label: "Medium", Weight: 70, Color: "#FFD700"},
	{Score: 3, Label: "Good", Weight: 85, Color: "#9ACD32"},
	{Score: 4, Label: "Strong", Weight: 100, Color: "#28a745"},
}

// ClassifyScore maps a score to its level. Scores outside [0,4] are clamped.
func ClassifyScore(score int) StrengthLevel {
	if score < 0 {
		score = 0
	}
	if score > MaxStrengthScore {
		score = MaxStrengthScore
	}
	return strengthLevels[score]
}
