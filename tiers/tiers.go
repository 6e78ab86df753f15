// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tiers classifies reporting countries into high, medium and
// low tiers by GDP, development and population.
//
// A tier configuration is a YAML document of the form
//
//	gdp:
//	  high: [USA, DEU, JPN]
//	  medium: [TUR, MEX]
//	  low: [EGY, NGA]
//	development:
//	  ...
//	population:
//	  ...
//
// Countries are named by their three-letter ISO codes. A country may
// be missing from a kind, in which case it has no level of that kind.
package tiers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/go-playground/validator/v10"
	"github.com/tradelens/tradeviz/trade"
	"gopkg.in/yaml.v2"
)

// A Level is a tier level.
type Level string

const (
	High   Level = "high"
	Medium Level = "medium"
	Low    Level = "low"
)

// Levels lists the levels from high to low.
var Levels = []Level{High, Medium, Low}

// A Kind is a dimension countries are tiered by.
type Kind string

const (
	GDP         Kind = "gdp"
	Development Kind = "development"
	Population  Kind = "population"
)

// Kinds lists every kind.
var Kinds = []Kind{GDP, Development, Population}

// Field returns the dataset column that holds the level of kind k.
func (k Kind) Field() string {
	switch k {
	case GDP:
		return trade.GDPLevel
	case Development:
		return trade.DevelopmentLevel
	case Population:
		return trade.PopulationLevel
	}
	return ""
}

// Lists holds the countries at each level of one kind.
type Lists struct {
	High   []string `yaml:"high" validate:"dive,len=3,alpha,uppercase"`
	Medium []string `yaml:"medium" validate:"dive,len=3,alpha,uppercase"`
	Low    []string `yaml:"low" validate:"dive,len=3,alpha,uppercase"`
}

func (l *Lists) at(lv Level) []string {
	switch lv {
	case High:
		return l.High
	case Medium:
		return l.Medium
	case Low:
		return l.Low
	}
	return nil
}

// Config is a tier configuration. A Config must be created by
// Default, Load or Parse, which validate and index it. It is not
// modified after creation.
type Config struct {
	GDP         Lists `yaml:"gdp"`
	Development Lists `yaml:"development"`
	Population  Lists `yaml:"population"`

	index map[Kind]map[string]Level
}

func (c *Config) lists(k Kind) *Lists {
	switch k {
	case GDP:
		return &c.GDP
	case Development:
		return &c.Development
	case Population:
		return &c.Population
	}
	return nil
}

// Default returns the built-in tier configuration.
func Default() *Config {
	c := &Config{
		GDP: Lists{
			High:   []string{"USA", "DEU", "JPN", "HKG", "KOR"},
			Medium: []string{"TUR", "MEX", "BRA", "CHN", "THA"},
			Low:    []string{"EGY", "NGA", "VNM", "IND", "PAK"},
		},
		Development: Lists{
			High:   []string{"GER", "JPN", "KOR", "USA"},
			Medium: []string{"BRA", "MEX", "THA", "TUR"},
			Low:    []string{"EGY", "NGA", "PAK", "VNM"},
		},
		Population: Lists{
			High:   []string{"CHN", "IND", "USA", "BRA"},
			Medium: []string{"PAK", "NGA", "JPN", "MEX"},
			Low:    []string{"VNM", "GER", "EGY", "TUR", "THA", "KOR", "HKG"},
		},
	}
	if err := c.init(); err != nil {
		panic("bad default tiers: " + err.Error())
	}
	return c
}

// Load reads a tier configuration from the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse parses a YAML tier configuration.
func Parse(data []byte) (*Config, error) {
	c := new(Config)
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, err
	}
	if err := c.init(); err != nil {
		return nil, err
	}
	return c, nil
}

// init validates c and builds its index.
func (c *Config) init() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	c.index = make(map[Kind]map[string]Level, len(Kinds))
	for _, k := range Kinds {
		idx := map[string]Level{}
		for _, lv := range Levels {
			for _, iso := range c.lists(k).at(lv) {
				if prev, ok := idx[iso]; ok {
					return fmt.Errorf("%s: %s listed as both %s and %s", k, iso, prev, lv)
				}
				idx[iso] = lv
			}
		}
		c.index[k] = idx
	}
	return nil
}

// Level returns the level of country iso for kind k. ok is false if
// the country is not tiered for k.
func (c *Config) Level(k Kind, iso string) (lv Level, ok bool) {
	lv, ok = c.index[k][iso]
	return
}

// Countries returns the countries at level lv of kind k.
func (c *Config) Countries(k Kind, lv Level) []string {
	l := c.lists(k)
	if l == nil {
		return nil
	}
	return append([]string(nil), l.at(lv)...)
}

// Annotate returns a copy of d with the GDP, development and
// population level columns set from each record's reporter.
// Reporters without a tier get an empty level.
func (c *Config) Annotate(d *trade.Dataset) (*trade.Dataset, error) {
	if err := d.Require(trade.ReporterISO); err != nil {
		return nil, err
	}
	nd := d.WithColumns(trade.GDPLevel, trade.DevelopmentLevel, trade.PopulationLevel)
	for i := range nd.Records {
		r := &nd.Records[i]
		for _, k := range Kinds {
			lv, _ := c.Level(k, r.ReporterISO)
			if err := r.SetKey(k.Field(), string(lv)); err != nil {
				return nil, err
			}
		}
	}
	return nd, nil
}

// Members returns the records of d whose reporter is at level lv of
// kind k.
func (c *Config) Members(d *trade.Dataset, k Kind, lv Level) (*trade.Dataset, error) {
	return d.Filter(trade.ReporterISO, c.Countries(k, lv)...)
}

// Table returns c as a table of kind, level and country.
func (c *Config) Table() *table.Table {
	var kinds, levels, countries []string
	for _, k := range Kinds {
		for _, lv := range Levels {
			for _, iso := range c.lists(k).at(lv) {
				kinds = append(kinds, string(k))
				levels = append(levels, string(lv))
				countries = append(countries, iso)
			}
		}
	}
	return new(table.Builder).
		Add("kind", kinds).
		Add("level", levels).
		Add(trade.ReporterISO, countries).
		Done()
}

// WriteYAML writes c to w in the form Load reads.
func (c *Config) WriteYAML(w io.Writer) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ParseSelector parses a tier selector of the form "kind=level", such
// as "gdp=high".
func ParseSelector(s string) (Kind, Level, error) {
	ks, ls, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", fmt.Errorf("bad tier selector %q: want kind=level", s)
	}
	k, lv := Kind(strings.ToLower(ks)), Level(strings.ToLower(ls))
	if k.Field() == "" {
		return "", "", fmt.Errorf("bad tier selector %q: unknown kind %q", s, ks)
	}
	switch lv {
	case High, Medium, Low:
	default:
		return "", "", fmt.Errorf("bad tier selector %q: unknown level %q", s, ls)
	}
	return k, lv, nil
}
