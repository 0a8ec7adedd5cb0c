// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package tables

// The canonical tables produced by the process stage. The generator refuses
// to start without them, so schema changes must bump the version and rerun
// processing.
var (
	Postcodes = Schema{
		Name:    "postcodes",
		Version: 1,
		Columns: []Column{
			StringColumn("postcode"),
			StringColumn("region"),
			StringColumn("area_kind"),
		},
	}

	DriverAgeSex = Schema{
		Name:    "driver_age_sex",
		Version: 1,
		Columns: []Column{
			IntColumn("age"),
			FloatColumn("male"),
			FloatColumn("female"),
		},
	}

	MaritalStatus = Schema{
		Name:    "marital_status",
		Version: 1,
		Columns: []Column{
			StringColumn("sex"),
			IntColumn("age_low"),
			IntColumn("age_high"),
			StringColumn("category"),
			FloatColumn("weight"),
		},
	}

	Occupations = Schema{
		Name:    "occupations",
		Version: 1,
		Columns: []Column{
			StringColumn("sex"),
			StringColumn("soc_code"),
			StringColumn("occupation"),
			FloatColumn("weight"),
		},
	}

	FirstNames = Schema{
		Name:    "first_names",
		Version: 1,
		Columns: []Column{
			StringColumn("sex"),
			StringColumn("name"),
			IntColumn("rank"),
			FloatColumn("count"),
		},
	}

	VehicleFleet = Schema{
		Name:    "vehicle_fleet",
		Version: 1,
		Columns: []Column{
			StringColumn("make"),
			StringColumn("gen_model"),
			StringColumn("model"),
			StringColumn("fuel"),
			FloatColumn("count"),
		},
	}

	ClaimRates = Schema{
		Name:    "claim_rates",
		Version: 1,
		Columns: []Column{
			IntColumn("age_low"),
			IntColumn("age_high"),
			FloatColumn("rate"),
		},
	}

	MileageByAge = Schema{
		Name:    "mileage_by_age",
		Version: 1,
		Columns: []Column{
			IntColumn("vehicle_age"),
			FloatColumn("location"),
			FloatColumn("scale"),
		},
	}

	AnnualMileageByAge = Schema{
		Name:    "annual_mileage_by_age",
		Version: 1,
		Columns: []Column{
			IntColumn("vehicle_age"),
			FloatColumn("location"),
			FloatColumn("scale"),
		},
	}
)
