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

import "github.com/cockroachdb/errors"

// Validation errors returned by the query compiler. They carry field-level
// context via wrapping; discriminate with errors.Is. A query that fails
// validation never reaches the network.
var (
	// ErrUnknownParameter means a filter key's base name is not in the
	// parameter catalog.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrCategoryMismatch means a known parameter was used in the wrong
	// query section, e.g. a location parameter inside the commodity filter.
	ErrCategoryMismatch = errors.New("parameter category mismatch")

	// ErrInvalidTimeShape means the time filter does not match exactly one
	// of the three recognized shapes (by year, by load time, or by period).
	ErrInvalidTimeShape = errors.New("invalid time filter shape")

	// ErrDuplicateField means the same base parameter name appears more
	// than once across the query, counting operator-suffixed and bare
	// forms as the same field.
	ErrDuplicateField = errors.New("duplicate field")

	// ErrMissingCommodity means the commodity filter lacks its required
	// commodity_desc anchor.
	ErrMissingCommodity = errors.New("missing required commodity_desc")
)
