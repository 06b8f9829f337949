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

// Package nass bridges the USDA NASS Quick Stats API to MCP tools. It holds
// the parameter catalog, the typed query model, the query compiler, and the
// HTTP client that executes compiled requests.
package nass

// Category is the semantic group a query parameter belongs to. Every
// parameter of the Quick Stats API falls in exactly one category, and a
// query section may only carry parameters of its own category.
type Category string

const (
	CategoryCommodity Category = "commodity"
	CategoryLocation  Category = "location"
	CategoryTime      Category = "time"
)

// parameterDef describes one Quick Stats query parameter.
type parameterDef struct {
	Name        string
	Category    Category
	Description string
}

// parameterCatalog lists every query parameter the Quick Stats API accepts,
// in catalog order: commodity parameters first, then location, then time.
// This ordering is part of the compiled-request contract; do not reorder.
var parameterCatalog = []parameterDef{
	{"source_desc", CategoryCommodity, "Source of data (CENSUS or SURVEY)."},
	{"sector_desc", CategoryCommodity, "Five high level categories: Crops, Animals & Products, Economics, Demographics, and Environmental."},
	{"group_desc", CategoryCommodity, "Subsets within sector (e.g., under Crops: Field Crops, Fruit & Tree Nuts, Horticulture, Vegetables)."},
	{"commodity_desc", CategoryCommodity, "The primary subject of interest (e.g., CORN, CATTLE, LABOR, TRACTORS, OPERATORS)."},
	{"class_desc", CategoryCommodity, "Generally a physical attribute (e.g., variety, size, color, gender) of the commodity."},
	{"prodn_practice_desc", CategoryCommodity, "A method of production or action taken on the commodity (e.g., IRRIGATED, ORGANIC, ON FEED)."},
	{"util_practice_desc", CategoryCommodity, "Utilizations (e.g., GRAIN, FROZEN, SLAUGHTER) or marketing channels (e.g., FRESH MARKET, PROCESSING, RETAIL)."},
	{"statisticcat_desc", CategoryCommodity, "The aspect of a commodity being measured (e.g., AREA HARVESTED, PRICE RECEIVED, INVENTORY, SALES)."},
	{"unit_desc", CategoryCommodity, "The unit associated with the statistic category (e.g., ACRES, $ / LB, HEAD, $, OPERATIONS)."},
	{"short_desc", CategoryCommodity, "A concatenation of six columns: commodity_desc, class_desc, prodn_practice_desc, util_practice_desc, statisticcat_desc, and unit_desc."},
	{"domain_desc", CategoryCommodity, "Another characteristic of operations that produce a particular commodity (e.g., ECONOMIC CLASS, AREA OPERATED, NAICS CLASSIFICATION, SALES)."},
	{"domaincat_desc", CategoryCommodity, "Categories or partitions within a domain (e.g., under domain = Sales: $1,000 TO $9,999, $10,000 TO $19,999, etc)."},
	{"agg_level_desc", CategoryLocation, "Aggregation level or geographic granularity of the data (e.g., State, Ag District, County, Region, Zip Code)."},
	{"state_ansi", CategoryLocation, "American National Standards Institute (ANSI) standard 2-digit state codes."},
	{"state_fips_code", CategoryLocation, "NASS 2-digit state codes; include 99 and 98 for US TOTAL and OTHER STATES, respectively."},
	{"state_alpha", CategoryLocation, "State abbreviation, 2-character alpha code."},
	{"state_name", CategoryLocation, "State full name."},
	{"asd_code", CategoryLocation, "NASS defined county groups, unique within a state, 2-digit ag statistics district code."},
	{"asd_desc", CategoryLocation, "Ag statistics district name."},
	{"county_ansi", CategoryLocation, "ANSI standard 3-digit county codes."},
	{"county_code", CategoryLocation, "NASS 3-digit county codes; includes 998 for OTHER (COMBINED) COUNTIES and Alaska county codes."},
	{"county_name", CategoryLocation, "County name."},
	{"region_desc", CategoryLocation, "NASS defined geographic entities not readily defined by other standard geographic levels."},
	{"zip_5", CategoryLocation, "US Postal Service 5-digit zip code."},
	{"watershed_code", CategoryLocation, "US Geological Survey (USGS) 8-digit Hydrologic Unit Code (HUC) for watersheds."},
	{"watershed_desc", CategoryLocation, "Name assigned to the HUC."},
	{"congr_district_code", CategoryLocation, "US Congressional District 2-digit code."},
	{"country_code", CategoryLocation, "US Census Bureau, Foreign Trade Division 4-digit country code, as of April, 2007."},
	{"country_name", CategoryLocation, "Country name."},
	{"location_desc", CategoryLocation, "Full description for the location dimension."},
	{"year", CategoryTime, "The numeric year of the data."},
	{"freq_desc", CategoryTime, "Length of time covered (Annual, Season, Monthly, Weekly, Point in Time)."},
	{"begin_code", CategoryTime, "If applicable, a 2-digit code corresponding to the beginning of the reference period."},
	{"end_code", CategoryTime, "If applicable, a 2-digit code corresponding to the end of the reference period."},
	{"reference_period_desc", CategoryTime, "The specific time frame, within a freq_desc."},
	{"week_ending", CategoryTime, "Week ending date, used when freq_desc = Weekly."},
	{"load_time", CategoryTime, "Date and time indicating when the record was inserted into the Quick Stats database."},
}

// parameterIndex maps a parameter name to its position in the catalog.
var parameterIndex = func() map[string]int {
	m := make(map[string]int, len(parameterCatalog))
	for i, p := range parameterCatalog {
		m[p.Name] = i
	}
	return m
}()

// ParameterNames returns every known query parameter name in catalog order.
func ParameterNames() []string {
	names := make([]string, len(parameterCatalog))
	for i, p := range parameterCatalog {
		names[i] = p.Name
	}
	return names
}

// ParameterCategory returns the category a parameter belongs to. The second
// return value is false when the name is not in the catalog.
func ParameterCategory(name string) (Category, bool) {
	i, ok := parameterIndex[name]
	if !ok {
		return "", false
	}
	return parameterCatalog[i].Category, true
}

// ParameterDescription returns the one-line description of a parameter, or
// an empty string for an unknown name.
func ParameterDescription(name string) string {
	i, ok := parameterIndex[name]
	if !ok {
		return ""
	}
	return parameterCatalog[i].Description
}

// Operator is a relational comparison suffix. Appending it to a parameter
// name turns the equality filter into the corresponding comparison, e.g.
// "year__GE" matches years greater than or equal to the value. Operators are
// never used standalone.
type Operator string

const (
	OpLessOrEqual    Operator = "__LE"
	OpLessThan       Operator = "__LT"
	OpGreaterThan    Operator = "__GT"
	OpGreaterOrEqual Operator = "__GE"
	OpLike           Operator = "__LIKE"
	OpNotLike        Operator = "__NOT_LIKE"
	OpNotEqual       Operator = "__NE"
)

// operatorCatalog lists the recognized operator suffixes in catalog order.
var operatorCatalog = []Operator{
	OpLessOrEqual,
	OpLessThan,
	OpGreaterThan,
	OpGreaterOrEqual,
	OpLike,
	OpNotLike,
	OpNotEqual,
}

// operatorIndex maps an operator to its position in the catalog.
var operatorIndex = func() map[Operator]int {
	m := make(map[Operator]int, len(operatorCatalog))
	for i, op := range operatorCatalog {
		m[op] = i
	}
	return m
}()

// OperatorNames returns every recognized operator suffix in catalog order.
func OperatorNames() []string {
	names := make([]string, len(operatorCatalog))
	for i, op := range operatorCatalog {
		names[i] = string(op)
	}
	return names
}
