package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Levels []int `yaml:"levels" validate:"dive,min=1,max=3"`
}

type sample struct {
	Name   string `yaml:"name" validate:"required"`
	Count  int    `yaml:"count" validate:"min=1"`
	Offset int    `yaml:"offset" validate:"gte=0"`
	Limit  int    `yaml:"limit" validate:"gt=0"`
	Mode   string `yaml:"mode,omitempty" validate:"oneof=fast slow"`
	Inner  inner  `yaml:"inner"`
}

func valid() sample {
	return sample{Name: "x", Count: 1, Limit: 1, Mode: "fast", Inner: inner{Levels: []int{1, 3}}}
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(valid()))
}

func TestStruct_Messages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sample)
		want   string
	}{
		{name: "required", mutate: func(s *sample) { s.Name = "" }, want: "name is required"},
		{name: "min", mutate: func(s *sample) { s.Count = 0 }, want: "count must be at least 1"},
		{name: "gte", mutate: func(s *sample) { s.Offset = -1 }, want: "offset must be at least 0"},
		{name: "gt", mutate: func(s *sample) { s.Limit = 0 }, want: "limit must be greater than 0"},
		{name: "oneof", mutate: func(s *sample) { s.Mode = "medium" }, want: "mode must be one of: fast slow"},
		{name: "slice element", mutate: func(s *sample) { s.Inner.Levels = []int{2, 9} }, want: "inner.levels[1] is not a known value (9)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			err := Struct(s)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestStruct_JoinsAllFailures(t *testing.T) {
	s := valid()
	s.Name = ""
	s.Limit = 0

	err := Struct(s)
	require.Error(t, err)
	assert.Equal(t, "name is required; limit must be greater than 0", err.Error())
}
