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
	"sort"
	"strings"
)

// Condition is a single query constraint: a base parameter name, an optional
// relational operator, and the value to compare against. The operator suffix
// only exists on the wire; within the model field and operator stay separate.
type Condition struct {
	Field string
	Op    Operator // empty for equality
	Value string
}

// Key returns the wire form of the condition's parameter name, with the
// operator suffix appended when present.
func (c Condition) Key() string {
	return c.Field + string(c.Op)
}

// Filter is an ordered list of conditions belonging to one query section.
// Order is preserved through compilation.
type Filter []Condition

// Query is a complete Quick Stats query: one commodity section, one location
// section, and one time section. The location section may be empty.
type Query struct {
	Commodity Filter
	Location  Filter
	Time      Filter
}

// operatorsBySuffixLength holds the operator catalog sorted longest suffix
// first, so suffix matching never truncates a longer operator into a
// shorter one.
var operatorsBySuffixLength = func() []Operator {
	ops := make([]Operator, len(operatorCatalog))
	copy(ops, operatorCatalog)
	sort.SliceStable(ops, func(i, j int) bool {
		return len(ops[i]) > len(ops[j])
	})
	return ops
}()

// parseParamKey splits a raw wire key into its base parameter name and
// operator suffix. A key without a recognized suffix is an equality filter
// on the whole key.
func parseParamKey(key string) (field string, op Operator) {
	for _, o := range operatorsBySuffixLength {
		if base, ok := strings.CutSuffix(key, string(o)); ok {
			return base, o
		}
	}
	return key, ""
}

// FilterFromMap converts a raw section mapping, as received at the tool
// boundary, into an ordered Filter. Go maps carry no insertion order, so
// conditions are canonicalized: catalog order of the base parameter, then
// catalog order of the operator. Equal input maps always produce equal
// filters, which keeps compilation deterministic.
func FilterFromMap(section map[string]string) Filter {
	if len(section) == 0 {
		return nil
	}
	filter := make(Filter, 0, len(section))
	for key, value := range section {
		field, op := parseParamKey(key)
		filter = append(filter, Condition{Field: field, Op: op, Value: value})
	}
	sort.SliceStable(filter, func(i, j int) bool {
		pi, iOK := parameterIndex[filter[i].Field]
		pj, jOK := parameterIndex[filter[j].Field]
		// Unknown fields sort last, by name, so validation reports them
		// in a stable order.
		switch {
		case iOK != jOK:
			return iOK
		case !iOK:
			return filter[i].Field < filter[j].Field
		case pi != pj:
			return pi < pj
		}
		return operatorIndex[filter[i].Op] < operatorIndex[filter[j].Op]
	})
	return filter
}

// QueryFromMaps assembles a Query from the three raw section mappings of a
// tool call.
func QueryFromMaps(commodity, location, timeSection map[string]string) Query {
	return Query{
		Commodity: FilterFromMap(commodity),
		Location:  FilterFromMap(location),
		Time:      FilterFromMap(timeSection),
	}
}
