// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

// Package assumptions ships the hand-authored distribution tables as embedded
// CSV resources. They load through the same schema-validated path as the
// data-derived tables, so the sampler never distinguishes an assumption from
// a measurement.
package assumptions

import (
	"embed"
	"fmt"
	"path"

	"github.com/PricingFrontier/synthetic-insurance-data/tables"
)

//go:embed data/*.csv
var dataFS embed.FS

// Read parses the embedded table described by [schema].
func Read(schema tables.Schema) (*tables.Table, tables.LoadReport, error) {
	f, err := dataFS.Open(path.Join("data", schema.Filename()))
	if err != nil {
		return nil, tables.LoadReport{Table: schema.Name}, fmt.Errorf("%w: %s: %s", tables.ErrConstruction, schema.Name, err)
	}
	defer f.Close()
	return tables.Read(f, schema)
}

// All returns every embedded schema. Used by tests to prove each shipped
// table parses cleanly.
func All() []tables.Schema {
	return []tables.Schema{
		Addons,
		Adjustments,
		BodyDoors,
		BodySeats,
		BodyTypes,
		BreakdownLevels,
		Channels,
		ClaimAmounts,
		ClaimFault,
		ClaimTypes,
		ConvictionCodes,
		ConvictionCounts,
		CoverTypes,
		EmploymentByAge,
		EngineSizes,
		HomeownerRates,
		MedicalRates,
		ModificationTypes,
		ParkingDaytime,
		ParkingOvernight,
		PaymentFrequencies,
		PreviousInsurers,
		RegionCities,
		SecurityRates,
		StreetNames,
		Surnames,
		Titles,
		UsageByEmployment,
		VehicleAges,
		VehicleValues,
		VoluntaryExcess,
	}
}
