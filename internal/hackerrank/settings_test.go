package hackerrank

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseRendered(t *testing.T, s QuerySettings) url.Values {
	t.Helper()
	v, err := url.ParseQuery(s.RenderQuery())
	require.NoError(t, err, "rendered query must parse: %q", s.RenderQuery())
	return v
}

func params[T FilterValue](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.Param())
	}
	return out
}

func TestPresets_Shape(t *testing.T) {
	t.Parallel()

	for name, s := range map[string]QuerySettings{
		"all":  AllChallenges(),
		"none": NoFilters(),
		"easy": EasyOnly(),
	} {
		assert.Equal(t, 0, s.Offset, name)
		assert.Equal(t, 100, s.Limit, name)
		assert.True(t, s.TrackLogin, name)
		assert.NoError(t, s.Validate(), name)
	}

	assert.True(t, NoFilters().Filters.IsEmpty())

	easy := EasyOnly().Filters
	assert.Equal(t, []Difficulty{DifficultyEasy}, easy.Difficulty)
	assert.Empty(t, easy.Status)
	assert.Empty(t, easy.Topics)
	assert.Empty(t, easy.Skills)

	all := AllChallenges().Filters
	assert.Equal(t, AllStatuses(), all.Status)
	assert.Equal(t, AllDifficulties(), all.Difficulty)
	assert.Equal(t, AllTopicAreas(), all.Topics)
	assert.Equal(t, AllSkillLevels(), all.Skills)
}

func TestPresets_DoNotShareSlices(t *testing.T) {
	t.Parallel()

	a := AllChallenges()
	a.Filters.Difficulty[0] = DifficultyHard

	b := AllChallenges()
	assert.Equal(t, DifficultyEasy, b.Filters.Difficulty[0])
}

func TestRenderQuery_NoFilters_HasNoFilterKeys(t *testing.T) {
	t.Parallel()

	q := NoFilters().RenderQuery()
	assert.Equal(t, "offset=0&limit=100&track_login=true", q)
	assert.NotContains(t, q, "filters[")
}

func TestRenderQuery_EasyOnly(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "offset=0&limit=100&track_login=true&filters[difficulty][]=easy", EasyOnly().RenderQuery())
}

func TestRenderQuery_AllChallenges_EveryValueOnce(t *testing.T) {
	t.Parallel()

	v := parseRendered(t, AllChallenges())

	assert.Equal(t, []string{"solved", "unsolved"}, v["filters[status][]"])
	assert.Equal(t, []string{"easy", "medium", "hard"}, v["filters[difficulty][]"])
	assert.Equal(t,
		[]string{"select", "advanced-select", "aggregation", "join", "advanced-join"},
		v["filters[subdomains][]"],
	)
	assert.Equal(t, []string{"SQL (Basic)", "SQL (Intermediate)", "SQL (Advanced)"}, v["filters[skills][]"])
}

func TestRenderQuery_OnePairPerElementInOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		filters FilterSet
	}{
		{
			name:    "single dimension",
			filters: FilterSet{Topics: []TopicArea{TopicJoin, TopicSelect}},
		},
		{
			name: "duplicates kept",
			filters: FilterSet{
				Difficulty: []Difficulty{DifficultyHard, DifficultyHard, DifficultyEasy},
			},
		},
		{
			name: "mixed dimensions",
			filters: FilterSet{
				Status: []Status{StatusUnsolved},
				Skills: []SkillLevel{SkillAdvanced, SkillBasic},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewQuerySettings(20, 10, false, tt.filters)
			require.NoError(t, err)

			v := parseRendered(t, s)
			assert.Equal(t, []string{"20"}, v["offset"])
			assert.Equal(t, []string{"10"}, v["limit"])
			assert.Equal(t, []string{"false"}, v["track_login"])

			checkDim := func(key string, want []string) {
				if len(want) == 0 {
					_, present := v[key]
					assert.False(t, present, "%s should be absent", key)
					return
				}
				assert.Equal(t, want, v[key], key)
			}
			checkDim("filters[status][]", params(tt.filters.Status))
			checkDim("filters[difficulty][]", params(tt.filters.Difficulty))
			checkDim("filters[subdomains][]", params(tt.filters.Topics))
			checkDim("filters[skills][]", params(tt.filters.Skills))
		})
	}
}

func TestRenderQuery_KeyOrder(t *testing.T) {
	t.Parallel()

	s, err := NewQuerySettings(0, 5, true, FilterSet{
		Skills: []SkillLevel{SkillBasic},
		Status: []Status{StatusSolved},
	})
	require.NoError(t, err)

	q := s.RenderQuery()
	assert.True(t, strings.HasPrefix(q, "offset=0&limit=5&track_login=true&"), q)
	assert.Less(t, strings.Index(q, "filters[status]"), strings.Index(q, "filters[skills]"))
	assert.Contains(t, q, "filters[skills][]=SQL%20%28Basic%29")
}

func TestFilterValues_Params(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "advanced-select", TopicAdvancedSelect.Param())
	assert.Equal(t, "advanced-join", TopicAdvancedJoin.Param())
	assert.Equal(t, "unsolved", StatusUnsolved.Param())
	assert.Equal(t, "medium", DifficultyMedium.Param())

	// Skill levels are fixed labels, not a transform of the name.
	assert.Equal(t, "SQL (Basic)", SkillBasic.Param())
	assert.Equal(t, "SQL (Intermediate)", SkillIntermediate.Param())
	assert.Equal(t, "SQL (Advanced)", SkillAdvanced.Param())
	assert.Equal(t, "Advanced", SkillAdvanced.String())
}

func TestParseFilterValues(t *testing.T) {
	t.Parallel()

	topic, err := ParseTopicArea("advanced-select")
	require.NoError(t, err)
	assert.Equal(t, TopicAdvancedSelect, topic)

	topic, err = ParseTopicArea("AdvancedJoin")
	require.NoError(t, err)
	assert.Equal(t, TopicAdvancedJoin, topic)

	skill, err := ParseSkillLevel("sql (intermediate)")
	require.NoError(t, err)
	assert.Equal(t, SkillIntermediate, skill)

	skill, err = ParseSkillLevel(" basic ")
	require.NoError(t, err)
	assert.Equal(t, SkillBasic, skill)

	st, err := ParseStatus("SOLVED")
	require.NoError(t, err)
	assert.Equal(t, StatusSolved, st)

	_, err = ParseDifficulty("insane")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "easy, medium, hard")
}

func TestNewQuerySettings_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		offset  int
		limit   int
		filters FilterSet
		wantMsg string
	}{
		{name: "negative offset", offset: -1, limit: 10, wantMsg: "offset"},
		{name: "zero limit", offset: 0, limit: 0, wantMsg: "limit"},
		{name: "unknown status", limit: 10, filters: FilterSet{Status: []Status{Status(7)}}, wantMsg: "status[0]"},
		{name: "zero skill", limit: 10, filters: FilterSet{Skills: []SkillLevel{SkillBasic, 0}}, wantMsg: "skills[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuerySettings(tt.offset, tt.limit, true, tt.filters)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSettings), "err = %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestNewQuerySettings_CopiesFilters(t *testing.T) {
	t.Parallel()

	topics := []TopicArea{TopicJoin}
	s, err := NewQuerySettings(0, 1000, true, FilterSet{Topics: topics})
	require.NoError(t, err)

	topics[0] = TopicSelect
	assert.Equal(t, []TopicArea{TopicJoin}, s.Filters.Topics)
	assert.Equal(t, 1000, s.Limit, "no upper bound on limit")
}

func TestPresetByName(t *testing.T) {
	t.Parallel()

	s, err := PresetByName("Easy")
	require.NoError(t, err)
	assert.Equal(t, EasyOnly(), s)

	s, err = PresetByName("none")
	require.NoError(t, err)
	assert.True(t, s.Filters.IsEmpty())

	_, err = PresetByName("medium")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all, none, easy")
}

func TestChallenge_Link(t *testing.T) {
	t.Parallel()

	c := Challenge{Slug: "select-all"}
	assert.Equal(t, kChallengeLinkPrefix+"select-all"+kChallengeLinkSuffix, c.Link())
	assert.Equal(t, "https://www.hackerrank.com/challenges/select-all/problem?isFullScreen=true", c.Link())
}
