// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package assumptions

import "github.com/PricingFrontier/synthetic-insurance-data/tables"

// One schema per embedded table. Each Name matches the CSV under data/.
var (
	// Quote channel market shares. Aggregator channels carry the reference
	// prefix used when building quote references; direct channels leave it
	// empty.
	Channels = tables.Schema{
		Name:    "channels",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("channel"),
			tables.FloatColumn("weight"),
			tables.StringColumn("prefix"),
		},
	}

	CoverTypes = tables.Schema{
		Name:    "cover_types",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("category"),
			tables.FloatColumn("weight"),
		},
	}

	PaymentFrequencies = tables.Schema{
		Name:    "payment_frequencies",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("category"),
			tables.FloatColumn("weight"),
		},
	}

	VoluntaryExcess = tables.Schema{
		Name:    "voluntary_excess",
		Version: 1,
		Columns: []tables.Column{
			tables.IntColumn("amount"),
			tables.FloatColumn("weight"),
		},
	}

	EmploymentByAge = tables.Schema{
		Name:    "employment_by_age",
		Version: 1,
		Columns: []tables.Column{
			tables.IntColumn("age_low"),
			tables.IntColumn("age_high"),
			tables.StringColumn("category"),
			tables.FloatColumn("weight"),
		},
	}

	HomeownerRates = tables.Schema{
		Name:    "homeowner_rates",
		Version: 1,
		Columns: []tables.Column{
			tables.IntColumn("age_low"),
			tables.IntColumn("age_high"),
			tables.FloatColumn("rate"),
		},
	}

	MedicalRates = tables.Schema{
		Name:    "medical_rates",
		Version: 1,
		Columns: []tables.Column{
			tables.IntColumn("age_low"),
			tables.IntColumn("age_high"),
			tables.FloatColumn("rate"),
		},
	}

	Titles = tables.Schema{
		Name:    "titles",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("sex"),
			tables.StringColumn("marital_status"),
			tables.StringColumn("category"),
			tables.FloatColumn("weight"),
		},
	}

	// Rank-weighted common surnames.
	Surnames = tables.Schema{
		Name:    "surnames",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("name"),
			tables.IntColumn("rank"),
			tables.FloatColumn("weight"),
		},
	}

	StreetNames = tables.Schema{
		Name:    "street_names",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("category"),
			tables.FloatColumn("weight"),
		},
	}

	PreviousInsurers = tables.Schema{
		Name:    "previous_insurers",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("category"),
			tables.FloatColumn("weight"),
		},
	}

	// DVLA endorsement codes with their points span, typical fine, and ban
	// months span. A zero ban span means the offence carries no ban.
	ConvictionCodes = tables.Schema{
		Name:    "conviction_codes",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("code"),
			tables.StringColumn("description"),
			tables.IntColumn("min_points"),
			tables.IntColumn("max_points"),
			tables.IntColumn("typical_fine"),
			tables.IntColumn("ban_low"),
			tables.IntColumn("ban_high"),
			tables.FloatColumn("weight"),
		},
	}

	ConvictionCounts = tables.Schema{
		Name:    "conviction_counts",
		Version: 1,
		Columns: []tables.Column{
			tables.IntColumn("count"),
			tables.FloatColumn("weight"),
		},
	}

	ClaimTypes = tables.Schema{
		Name:    "claim_types",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("category"),
			tables.FloatColumn("weight"),
		},
	}

	ClaimFault = tables.Schema{
		Name:    "claim_fault",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("claim_type"),
			tables.StringColumn("category"),
			tables.FloatColumn("weight"),
		},
	}

	// Log-normal parameters per claim type. Locations are chosen so the
	// distribution mean matches the intended average amount.
	ClaimAmounts = tables.Schema{
		Name:    "claim_amounts",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("claim_type"),
			tables.FloatColumn("location"),
			tables.FloatColumn("scale"),
		},
	}

	Addons = tables.Schema{
		Name:    "addons",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("addon"),
			tables.FloatColumn("rate"),
		},
	}

	BreakdownLevels = tables.Schema{
		Name:    "breakdown_levels",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("category"),
			tables.FloatColumn("weight"),
		},
	}

	BodyTypes = tables.Schema{
		Name:    "body_types",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("category"),
			tables.FloatColumn("weight"),
		},
	}

	// Door and seat counts conditioned on body type. Counts are stored as
	// categories so both tables stay on the canonical conditional shape.
	BodyDoors = tables.Schema{
		Name:    "body_doors",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("body_type"),
			tables.StringColumn("category"),
			tables.FloatColumn("weight"),
		},
	}

	BodySeats = tables.Schema{
		Name:    "body_seats",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("body_type"),
			tables.StringColumn("category"),
			tables.FloatColumn("weight"),
		},
	}

	ParkingOvernight = tables.Schema{
		Name:    "parking_overnight",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("area_kind"),
			tables.StringColumn("category"),
			tables.FloatColumn("weight"),
		},
	}

	ParkingDaytime = tables.Schema{
		Name:    "parking_daytime",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("commuting"),
			tables.StringColumn("category"),
			tables.FloatColumn("weight"),
		},
	}

	SecurityRates = tables.Schema{
		Name:    "security_rates",
		Version: 1,
		Columns: []tables.Column{
			tables.IntColumn("age_low"),
			tables.IntColumn("age_high"),
			tables.FloatColumn("alarm_rate"),
			tables.FloatColumn("immobiliser_rate"),
		},
	}

	ModificationTypes = tables.Schema{
		Name:    "modification_types",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("category"),
			tables.FloatColumn("weight"),
		},
	}

	// Scalar rates that are not distributions: the living-with-partner
	// adjustment and the any-modification rate.
	Adjustments = tables.Schema{
		Name:    "adjustments",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("key"),
			tables.FloatColumn("rate"),
		},
	}

	EngineSizes = tables.Schema{
		Name:    "engine_sizes",
		Version: 1,
		Columns: []tables.Column{
			tables.IntColumn("size_cc"),
			tables.FloatColumn("weight"),
		},
	}

	VehicleAges = tables.Schema{
		Name:    "vehicle_ages",
		Version: 1,
		Columns: []tables.Column{
			tables.IntColumn("age"),
			tables.FloatColumn("weight"),
		},
	}

	VehicleValues = tables.Schema{
		Name:    "vehicle_values",
		Version: 1,
		Columns: []tables.Column{
			tables.IntColumn("vehicle_age"),
			tables.FloatColumn("location"),
			tables.FloatColumn("scale"),
		},
	}

	UsageByEmployment = tables.Schema{
		Name:    "usage_by_employment",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("employment"),
			tables.StringColumn("category"),
			tables.FloatColumn("weight"),
		},
	}

	RegionCities = tables.Schema{
		Name:    "region_cities",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("region"),
			tables.StringColumn("city"),
		},
	}
)
