// Copyright 2025 David Stotijn
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nass

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseParamKey(t *testing.T) {
	tests := []struct {
		key       string
		wantField string
		wantOp    Operator
	}{
		{"year", "year", ""},
		{"year__LE", "year", OpLessOrEqual},
		{"year__LT", "year", OpLessThan},
		{"year__GT", "year", OpGreaterThan},
		{"year__GE", "year", OpGreaterOrEqual},
		{"commodity_desc__LIKE", "commodity_desc", OpLike},
		{"commodity_desc__NOT_LIKE", "commodity_desc", OpNotLike},
		{"state_alpha__NE", "state_alpha", OpNotEqual},
		// No recognized suffix: the whole key is the field.
		{"year__FOO", "year__FOO", ""},
		{"not_a_field", "not_a_field", ""},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			field, op := parseParamKey(tc.key)
			assert.Equal(t, tc.wantField, field)
			assert.Equal(t, tc.wantOp, op)
		})
	}
}

func TestConditionKey(t *testing.T) {
	assert.Equal(t, "year", Condition{Field: "year"}.Key())
	assert.Equal(t, "year__GE", Condition{Field: "year", Op: OpGreaterOrEqual}.Key())
}

func TestFilterFromMap(t *testing.T) {
	filter := FilterFromMap(map[string]string{
		"state_name":       "IOWA",
		"agg_level_desc":   "STATE",
		"state_alpha__NE":  "NE",
		"county_name":      "STORY",
		"state_fips_code":  "19",
		"zip_5":            "50010",
		"watershed_code":   "07080105",
		"region_desc__NE":  "X",
		"location_desc":    "IOWA",
		"not_a_location":   "04",
	})

	// Conditions come out in catalog order regardless of map iteration
	// order; unknown keys sort last by name.
	var fields []string
	for _, c := range filter {
		fields = append(fields, c.Key())
	}
	assert.Equal(t, []string{
		"agg_level_desc",
		"state_fips_code",
		"state_alpha__NE",
		"state_name",
		"county_name",
		"region_desc__NE",
		"zip_5",
		"watershed_code",
		"location_desc",
		"not_a_location",
	}, fields)
}

func TestFilterFromMapDeterministic(t *testing.T) {
	section := map[string]string{
		"state_alpha":    "IA",
		"county_name":    "STORY",
		"agg_level_desc": "COUNTY",
		"state_ansi":     "19",
	}
	first := FilterFromMap(section)
	for range 50 {
		assert.Equal(t, first, FilterFromMap(section))
	}
}

func TestFilterFromMapEmpty(t *testing.T) {
	assert.Nil(t, FilterFromMap(nil))
	assert.Nil(t, FilterFromMap(map[string]string{}))
}
