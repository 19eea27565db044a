package hackerrank

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"hrsql/internal/validation"
)

const (
	kDefaultOffset = 0
	kDefaultLimit  = 100
)

// Preset names accepted by PresetByName.
const (
	PresetAll       = "all"
	PresetNoFilters = "none"
	PresetEasy      = "easy"
)

// ErrInvalidSettings is returned when QuerySettings break offset >= 0,
// limit > 0, or carry an unknown filter value.
var ErrInvalidSettings = errors.New("invalid query settings")

// QuerySettings selects one page of the challenge catalog.
//
// Build values with NewQuerySettings or one of the presets. Both hand out
// fresh slices, so a value can be passed around without aliasing another
// caller's filters.
type QuerySettings struct {
	Offset     int `validate:"gte=0"`
	Limit      int `validate:"gt=0"`
	TrackLogin bool
	Filters    FilterSet
}

// NewQuerySettings validates its arguments and returns settings that own a
// copy of filters. No upper bound is placed on limit; the endpoint may cap it.
func NewQuerySettings(offset, limit int, trackLogin bool, filters FilterSet) (QuerySettings, error) {
	s := QuerySettings{
		Offset:     offset,
		Limit:      limit,
		TrackLogin: trackLogin,
		Filters:    filters.clone(),
	}
	if err := s.Validate(); err != nil {
		return QuerySettings{}, err
	}
	return s, nil
}

// AllChallenges lists every value of every dimension explicitly.
func AllChallenges() QuerySettings {
	return QuerySettings{
		Offset:     kDefaultOffset,
		Limit:      kDefaultLimit,
		TrackLogin: true,
		Filters: FilterSet{
			Status:     AllStatuses(),
			Difficulty: AllDifficulties(),
			Topics:     AllTopicAreas(),
			Skills:     AllSkillLevels(),
		},
	}
}

// NoFilters leaves every dimension empty, which the endpoint reads as "all".
func NoFilters() QuerySettings {
	return QuerySettings{
		Offset:     kDefaultOffset,
		Limit:      kDefaultLimit,
		TrackLogin: true,
	}
}

// EasyOnly constrains difficulty to Easy and leaves the rest unconstrained.
func EasyOnly() QuerySettings {
	return QuerySettings{
		Offset:     kDefaultOffset,
		Limit:      kDefaultLimit,
		TrackLogin: true,
		Filters: FilterSet{
			Difficulty: []Difficulty{DifficultyEasy},
		},
	}
}

// PresetNames lists the names PresetByName understands.
func PresetNames() []string { return []string{PresetAll, PresetNoFilters, PresetEasy} }

func PresetByName(name string) (QuerySettings, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PresetAll:
		return AllChallenges(), nil
	case PresetNoFilters:
		return NoFilters(), nil
	case PresetEasy:
		return EasyOnly(), nil
	default:
		return QuerySettings{}, fmt.Errorf("unknown preset %q (expected one of: %s)", name, strings.Join(PresetNames(), ", "))
	}
}

func (s QuerySettings) Validate() error {
	if err := validation.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

// RenderQuery returns the query string (without the leading "?") for s.
//
// offset, limit and track_login always come first. Each non-empty dimension
// then contributes one filters[<dim>][]=<value> pair per element, in order.
// Values are percent-encoded; keys are written verbatim.
func (s QuerySettings) RenderQuery() string {
	var b strings.Builder
	b.WriteString("offset=")
	b.WriteString(strconv.Itoa(s.Offset))
	b.WriteString("&limit=")
	b.WriteString(strconv.Itoa(s.Limit))
	b.WriteString("&track_login=")
	b.WriteString(strconv.FormatBool(s.TrackLogin))

	writeFilter(&b, kDimStatus, s.Filters.Status)
	writeFilter(&b, kDimDifficulty, s.Filters.Difficulty)
	writeFilter(&b, kDimTopics, s.Filters.Topics)
	writeFilter(&b, kDimSkills, s.Filters.Skills)
	return b.String()
}

// RenderQuery is shorthand for s.RenderQuery().
func RenderQuery(s QuerySettings) string { return s.RenderQuery() }

func writeFilter[T FilterValue](b *strings.Builder, dim string, values []T) {
	for _, v := range values {
		b.WriteString("&filters[")
		b.WriteString(dim)
		b.WriteString("][]=")
		b.WriteString(url.PathEscape(v.Param()))
	}
}
