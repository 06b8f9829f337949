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
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Format is the output format requested from the Quick Stats API. CSV is the
// default: it is the most token-efficient for agent consumption.
type Format string

const (
	FormatJSON Format = "JSON"
	FormatCSV  Format = "CSV"
	FormatXML  Format = "XML"
)

// Config is the immutable process-wide configuration. It is validated once
// at startup and passed explicitly into the compiler and client; core logic
// never reads the environment.
type Config struct {
	APIKey string `validate:"required"`
	Format Format `validate:"required,oneof=JSON CSV XML"`
}

// ConfigFromEnv reads configuration from NASS_API_KEY and NASS_API_FORMAT.
// A missing key or unrecognized format is a startup error.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		APIKey: os.Getenv("NASS_API_KEY"),
		Format: FormatCSV,
	}
	if format := os.Getenv("NASS_API_FORMAT"); format != "" {
		cfg.Format = Format(format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}
