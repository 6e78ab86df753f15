// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trade reads international trade records and holds them in
// memory for analysis.
//
// A record is one row of a bilateral trade table: a reporting
// country, a partner country, a commodity category, a year, a flow
// direction and the traded value. The column names follow the UN
// Comtrade export format, e.g. "Reporter ISO" and "Trade Value (US$)".
package trade

import (
	"strconv"
)

// Column names recognized in input tables.
const (
	Year             = "Year"
	Reporter         = "Reporter"
	ReporterISO      = "Reporter ISO"
	Partner          = "Partner"
	PartnerISO       = "Partner ISO"
	Category         = "Category"
	CategoryCode     = "Category Code"
	TradeFlow        = "Trade Flow"
	TradeValue       = "Trade Value (US$)"
	ValuePerCapita   = "Trade Value per capita"
	GDPLevel         = "GDP Level"
	DevelopmentLevel = "Development Level"
	PopulationLevel  = "Population Level"
)

// aliases maps alternative header spellings to a canonical column.
var aliases = map[string]string{
	"Time": Year,
}

// Canonical returns the canonical column name for header, or "" if
// header is not a recognized column.
func Canonical(header string) string {
	if a, ok := aliases[header]; ok {
		return a
	}
	if _, ok := keyFields[header]; ok {
		return header
	}
	if _, ok := numFields[header]; ok {
		return header
	}
	return ""
}

// Flow is the direction of a trade transaction, as seen by the
// reporter.
type Flow string

const (
	Import Flow = "Import"
	Export Flow = "Export"
)

// Flows lists the flow directions in the order reports use them.
var Flows = []Flow{Import, Export}

// Record is a single trade transaction.
type Record struct {
	Year         int
	Reporter     string
	ReporterISO  string
	Partner      string
	PartnerISO   string
	Category     string
	CategoryCode string
	Flow         Flow

	// Value is the trade value in US dollars.
	Value float64

	// PerCapita is the trade value divided by the reporter's
	// population.
	PerCapita float64

	// Tier levels of the reporter. These are usually filled in by
	// package tiers rather than read from input.
	GDPLevel         string
	DevelopmentLevel string
	PopulationLevel  string
}

var keyFields = map[string]func(r *Record) *string{
	Reporter:         func(r *Record) *string { return &r.Reporter },
	ReporterISO:      func(r *Record) *string { return &r.ReporterISO },
	Partner:          func(r *Record) *string { return &r.Partner },
	PartnerISO:       func(r *Record) *string { return &r.PartnerISO },
	Category:         func(r *Record) *string { return &r.Category },
	CategoryCode:     func(r *Record) *string { return &r.CategoryCode },
	TradeFlow:        func(r *Record) *string { return (*string)(&r.Flow) },
	GDPLevel:         func(r *Record) *string { return &r.GDPLevel },
	DevelopmentLevel: func(r *Record) *string { return &r.DevelopmentLevel },
	PopulationLevel:  func(r *Record) *string { return &r.PopulationLevel },
	Year:             nil, // Formatted from Record.Year.
}

var numFields = map[string]func(r *Record) *float64{
	TradeValue:     func(r *Record) *float64 { return &r.Value },
	ValuePerCapita: func(r *Record) *float64 { return &r.PerCapita },
}

// IsKey reports whether field is a categorical column that can be
// used in a grouping key.
func IsKey(field string) bool {
	_, ok := keyFields[field]
	return ok
}

// IsNumeric reports whether field is a numeric value column.
func IsNumeric(field string) bool {
	_, ok := numFields[field]
	return ok
}

// Key returns the value of the categorical field of r as a string.
// Year is formatted in decimal. ok is false if field is not a
// categorical column.
func (r *Record) Key(field string) (val string, ok bool) {
	if field == Year {
		return strconv.Itoa(r.Year), true
	}
	f, ok := keyFields[field]
	if !ok {
		return "", false
	}
	return *f(r), true
}

// Num returns the value of the numeric field of r. ok is false if
// field is not a numeric column.
func (r *Record) Num(field string) (val float64, ok bool) {
	f, ok := numFields[field]
	if !ok {
		return 0, false
	}
	return *f(r), true
}

// SetNum sets the numeric field of r. It reports whether field is a
// numeric column.
func (r *Record) SetNum(field string, v float64) bool {
	f, ok := numFields[field]
	if !ok {
		return false
	}
	*f(r) = v
	return true
}

// SetKey sets the categorical field of r from its string form. Year
// must parse as an integer.
func (r *Record) SetKey(field, v string) error {
	if field == Year {
		y, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		r.Year = y
		return nil
	}
	f, ok := keyFields[field]
	if !ok {
		return &MissingFieldError{Field: field}
	}
	*f(r) = v
	return nil
}
