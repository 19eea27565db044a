package hackerrank

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// Query keys for each filter dimension, as in filters[<dim>][]=<value>.
const (
	kDimStatus     = "status"
	kDimDifficulty = "difficulty"
	kDimTopics     = "subdomains"
	kDimSkills     = "skills"
)

// FilterValue is one tag of a filter dimension.
//
// String returns the Go-side name (e.g. "AdvancedSelect"); Param returns the
// form the endpoint expects in the query string.
type FilterValue interface {
	comparable
	fmt.Stringer
	Param() string
}

// Status filters by whether the current user has solved a challenge.
type Status int

const (
	StatusSolved Status = iota + 1
	StatusUnsolved
)

var statusNames = [...]string{StatusSolved: "Solved", StatusUnsolved: "Unsolved"}

func (s Status) String() string { return enumName("Status", int(s), statusNames[:]) }
func (s Status) Param() string  { return strcase.ToKebab(s.String()) }

// AllStatuses returns every Status in declaration order.
func AllStatuses() []Status { return []Status{StatusSolved, StatusUnsolved} }

// Difficulty is the challenge difficulty tier.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota + 1
	DifficultyMedium
	DifficultyHard
)

var difficultyNames = [...]string{DifficultyEasy: "Easy", DifficultyMedium: "Medium", DifficultyHard: "Hard"}

func (d Difficulty) String() string { return enumName("Difficulty", int(d), difficultyNames[:]) }
func (d Difficulty) Param() string  { return strcase.ToKebab(d.String()) }

func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// TopicArea is the SQL track subdomain a challenge belongs to.
type TopicArea int

const (
	TopicSelect TopicArea = iota + 1
	TopicAdvancedSelect
	TopicAggregation
	TopicJoin
	TopicAdvancedJoin
)

var topicNames = [...]string{
	TopicSelect:         "Select",
	TopicAdvancedSelect: "AdvancedSelect",
	TopicAggregation:    "Aggregation",
	TopicJoin:           "Join",
	TopicAdvancedJoin:   "AdvancedJoin",
}

func (t TopicArea) String() string { return enumName("TopicArea", int(t), topicNames[:]) }
func (t TopicArea) Param() string  { return strcase.ToKebab(t.String()) }

func AllTopicAreas() []TopicArea {
	return []TopicArea{TopicSelect, TopicAdvancedSelect, TopicAggregation, TopicJoin, TopicAdvancedJoin}
}

// SkillLevel is the skill certification tier a challenge counts towards.
type SkillLevel int

const (
	SkillBasic SkillLevel = iota + 1
	SkillIntermediate
	SkillAdvanced
)

var skillNames = [...]string{SkillBasic: "Basic", SkillIntermediate: "Intermediate", SkillAdvanced: "Advanced"}

// The endpoint matches skills by their display label, so these are fixed
// literals rather than derived from the Go name.
var skillParams = [...]string{
	SkillBasic:        "SQL (Basic)",
	SkillIntermediate: "SQL (Intermediate)",
	SkillAdvanced:     "SQL (Advanced)",
}

func (s SkillLevel) String() string { return enumName("SkillLevel", int(s), skillNames[:]) }

func (s SkillLevel) Param() string {
	if s <= 0 || int(s) >= len(skillParams) {
		return s.String()
	}
	return skillParams[s]
}

func AllSkillLevels() []SkillLevel { return []SkillLevel{SkillBasic, SkillIntermediate, SkillAdvanced} }

func enumName(typ string, v int, names []string) string {
	if v <= 0 || v >= len(names) {
		return fmt.Sprintf("%s(%d)", typ, v)
	}
	return names[v]
}

// FilterSet narrows the catalog along four independent dimensions.
//
// An empty dimension means "no constraint on this dimension": the key is left
// out of the query and the endpoint returns challenges with any value for it.
// It never means "match nothing". Within a dimension each element is sent once
// per occurrence, in slice order.
type FilterSet struct {
	Status     []Status     `validate:"dive,min=1,max=2"`
	Difficulty []Difficulty `validate:"dive,min=1,max=3"`
	Topics     []TopicArea  `validate:"dive,min=1,max=5"`
	Skills     []SkillLevel `validate:"dive,min=1,max=3"`
}

// IsEmpty reports whether no dimension is constrained.
func (f FilterSet) IsEmpty() bool {
	return len(f.Status) == 0 && len(f.Difficulty) == 0 && len(f.Topics) == 0 && len(f.Skills) == 0
}

// clone copies every dimension so the result shares no backing arrays with f.
func (f FilterSet) clone() FilterSet {
	return FilterSet{
		Status:     cloneSlice(f.Status),
		Difficulty: cloneSlice(f.Difficulty),
		Topics:     cloneSlice(f.Topics),
		Skills:     cloneSlice(f.Skills),
	}
}

func cloneSlice[T any](in []T) []T {
	if len(in) == 0 {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// ParseStatus accepts either the Go name or the query form, case-insensitively
// (e.g. "Unsolved", "unsolved").
func ParseStatus(s string) (Status, error) { return parseValue(kDimStatus, s, AllStatuses()) }

func ParseDifficulty(s string) (Difficulty, error) {
	return parseValue(kDimDifficulty, s, AllDifficulties())
}

// ParseTopicArea accepts e.g. "AdvancedSelect" or "advanced-select".
func ParseTopicArea(s string) (TopicArea, error) { return parseValue("topic", s, AllTopicAreas()) }

// ParseSkillLevel accepts e.g. "Basic" or "SQL (Basic)".
func ParseSkillLevel(s string) (SkillLevel, error) { return parseValue("skill", s, AllSkillLevels()) }

func parseValue[T FilterValue](dim string, s string, all []T) (T, error) {
	s = strings.TrimSpace(s)
	for _, v := range all {
		if strings.EqualFold(s, v.String()) || strings.EqualFold(s, v.Param()) {
			return v, nil
		}
	}
	var zero T
	names := make([]string, 0, len(all))
	for _, v := range all {
		names = append(names, v.Param())
	}
	return zero, fmt.Errorf("unknown %s %q (expected one of: %s)", dim, s, strings.Join(names, ", "))
}
