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
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// CompiledRequest is the flattened, insertion-ordered parameter mapping sent
// to the Quick Stats API: format selector (when the endpoint honors one),
// access credential, then every filter condition in section order. It is
// built once per tool call and not mutated afterwards.
type CompiledRequest struct {
	params *orderedmap.OrderedMap[string, string]
}

func newCompiledRequest() *CompiledRequest {
	return &CompiledRequest{params: orderedmap.New[string, string]()}
}

func (r *CompiledRequest) set(key, value string) {
	r.params.Set(key, value)
}

// Get returns the value for a parameter key and whether it is present.
func (r *CompiledRequest) Get(key string) (string, bool) {
	return r.params.Get(key)
}

// Len returns the number of parameters.
func (r *CompiledRequest) Len() int {
	return r.params.Len()
}

// Keys returns the parameter keys in insertion order.
func (r *CompiledRequest) Keys() []string {
	keys := make([]string, 0, r.params.Len())
	for pair := r.params.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Encode serializes the request as a URL query string, preserving insertion
// order. url.Values is not used because its Encode sorts keys alphabetically
// and would break the deterministic section ordering.
func (r *CompiledRequest) Encode() string {
	var b strings.Builder
	for pair := r.params.Oldest(); pair != nil; pair = pair.Next() {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(pair.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pair.Value))
	}
	return b.String()
}

// timeShape is one of the three mutually exclusive structures the time
// section may take. A valid time section uses fields from a single shape
// and includes all of that shape's required fields.
type timeShape struct {
	name     string
	required []string
	optional []string
}

var timeShapes = []timeShape{
	{name: "year", required: []string{"year"}},
	{name: "load time", required: []string{"load_time"}},
	{
		name:     "period",
		required: []string{"freq_desc", "begin_code", "end_code"},
		optional: []string{"reference_period_desc", "week_ending"},
	},
}

// Compile validates a query and flattens it into the parameter set for the
// full-data endpoint, including the configured output format.
func Compile(q Query, cfg Config) (*CompiledRequest, error) {
	return compile(q, cfg, true)
}

// CompileCount is Compile for the record-count endpoint, which ignores the
// output format and always answers JSON.
func CompileCount(q Query, cfg Config) (*CompiledRequest, error) {
	return compile(q, cfg, false)
}

func compile(q Query, cfg Config, includeFormat bool) (*CompiledRequest, error) {
	sections := []struct {
		name     string
		category Category
		filter   Filter
	}{
		{"commodity", CategoryCommodity, q.Commodity},
		{"location", CategoryLocation, q.Location},
		{"time", CategoryTime, q.Time},
	}

	// Base field names seen so far, across all sections. Operator-suffixed
	// and bare forms both claim the base name: whether the API accepts
	// paired range operators on one field is undocumented, so repeats are
	// rejected outright.
	seen := make(map[string]string, len(q.Commodity)+len(q.Location)+len(q.Time))

	for _, s := range sections {
		for _, c := range s.filter {
			cat, ok := ParameterCategory(c.Field)
			if !ok {
				return nil, errors.Wrapf(ErrUnknownParameter, "%q in %s filter", c.Key(), s.name)
			}
			if cat != s.category {
				return nil, errors.Wrapf(ErrCategoryMismatch, "%q is a %s parameter, used in %s filter", c.Field, cat, s.name)
			}
			if prev, dup := seen[c.Field]; dup {
				return nil, errors.Wrapf(ErrDuplicateField, "%q used in %s filter and %s filter", c.Field, prev, s.name)
			}
			seen[c.Field] = s.name
		}
	}

	if err := validateCommodity(q.Commodity); err != nil {
		return nil, err
	}
	if err := validateTimeShape(q.Time); err != nil {
		return nil, err
	}

	req := newCompiledRequest()
	if includeFormat {
		req.set("format", string(cfg.Format))
	}
	req.set("key", cfg.APIKey)
	for _, s := range sections {
		for _, c := range s.filter {
			req.set(c.Key(), c.Value)
		}
	}
	return req, nil
}

// validateCommodity checks the required commodity_desc anchor. An operator
// form (e.g. commodity_desc__LIKE) satisfies the requirement.
func validateCommodity(f Filter) error {
	for _, c := range f {
		if c.Field == "commodity_desc" {
			return nil
		}
	}
	return errors.WithStack(ErrMissingCommodity)
}

func validateTimeShape(f Filter) error {
	if len(f) == 0 {
		return errors.Wrap(ErrInvalidTimeShape, "time filter is empty")
	}

	fields := make(map[string]bool, len(f))
	for _, c := range f {
		fields[c.Field] = true
	}

	for _, shape := range timeShapes {
		if matchesShape(fields, shape) {
			return nil
		}
	}
	return errors.Wrapf(ErrInvalidTimeShape, "fields %s match no single time shape (by year, by load time, or by period)", strings.Join(sortedFieldNames(fields), ", "))
}

func matchesShape(fields map[string]bool, shape timeShape) bool {
	for _, req := range shape.required {
		if !fields[req] {
			return false
		}
	}
	allowed := make(map[string]bool, len(shape.required)+len(shape.optional))
	for _, name := range shape.required {
		allowed[name] = true
	}
	for _, name := range shape.optional {
		allowed[name] = true
	}
	for name := range fields {
		if !allowed[name] {
			return false
		}
	}
	return true
}

// sortedFieldNames lists base names in catalog order for error messages.
func sortedFieldNames(fields map[string]bool) []string {
	var names []string
	for _, p := range parameterCatalog {
		if fields[p.Name] {
			names = append(names, p.Name)
		}
	}
	return names
}
