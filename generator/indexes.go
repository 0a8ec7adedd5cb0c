// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package generator

import (
	"fmt"
	"path/filepath"

	"github.com/PricingFrontier/synthetic-insurance-data/assumptions"
	"github.com/PricingFrontier/synthetic-insurance-data/distribution"
	"github.com/PricingFrontier/synthetic-insurance-data/metrics"
	"github.com/PricingFrontier/synthetic-insurance-data/tables"
	"github.com/PricingFrontier/synthetic-insurance-data/utils/logging"
	"github.com/PricingFrontier/synthetic-insurance-data/utils/wrappers"
)

// indexes is every sampler-ready structure the composer reads. It is built
// once and never mutated, so all workers share it without locks.
type indexes struct {
	// Measured tables from ProcessedDir.
	postcodeTbl   *tables.Table
	postcodes     *distribution.Subsets
	ageSexTbl     *tables.Table
	maleAges      *distribution.Weighted
	femaleAges    *distribution.Weighted
	pMale         float64
	marital       *distribution.Conditional
	occupations   *distribution.Conditional
	occAll        *distribution.Marginal
	occCodes      map[string]string
	firstNames    *distribution.Conditional
	fleetTbl      *tables.Table
	fleet         *distribution.Weighted
	claimRates    *distribution.Rates
	odometer      *distribution.Banded
	annualMileage *distribution.Banded

	// Embedded assumption tables.
	surnames      *distribution.Marginal
	streets       *distribution.Marginal
	titles        *distribution.Conditional
	employment    *distribution.Conditional
	usage         *distribution.Conditional
	homeowner     *distribution.Rates
	medical       *distribution.Rates
	partnerRate   float64
	modRate       float64
	coverTypes    *distribution.Marginal
	payFreq       *distribution.Marginal
	excessTbl     *tables.Table
	excess        *distribution.Weighted
	prevInsurers  *distribution.Marginal
	claimTypes    *distribution.Marginal
	claimFault    *distribution.Conditional
	claimAmounts  *distribution.ParamSet
	convCodesTbl  *tables.Table
	convCodes     *distribution.Weighted
	convCountsTbl *tables.Table
	convCounts    *distribution.Weighted
	addons        *distribution.RateSet
	breakdown     *distribution.Marginal
	bodyTypes     *distribution.Marginal
	bodyDoors     *distribution.Conditional
	bodySeats     *distribution.Conditional
	parkOvernight *distribution.Conditional
	parkDaytime   *distribution.Conditional
	alarmRates    *distribution.Rates
	immobRates    *distribution.Rates
	modTypes      *distribution.Marginal
	engineTbl     *tables.Table
	engines       *distribution.Weighted
	vehicleAgeTbl *tables.Table
	vehicleAges   *distribution.Weighted
	vehicleValues *distribution.Banded
	channels      *distribution.Marginal
	channelPrefix map[string]string
	cityTbl       *tables.Table
	cities        *distribution.Subsets
}

// builder accumulates the first construction error and keeps row-skip
// accounting in one place. Once errored, every helper becomes a no-op so the
// build reads as straight-line wiring.
type builder struct {
	dir  string
	log  logging.Logger
	mtr  *metrics.Metrics
	errs wrappers.Errs
}

func (b *builder) loaded(schema tables.Schema) *tables.Table {
	if b.errs.Errored() {
		return nil
	}
	tbl, report, err := tables.Load(filepath.Join(b.dir, schema.Filename()), schema)
	if err != nil {
		b.errs.Add(err)
		return nil
	}
	report.Warn(b.log)
	b.mtr.RowsSkipped(schema.Name, report.Skipped)
	return tbl
}

func (b *builder) embedded(schema tables.Schema) *tables.Table {
	if b.errs.Errored() {
		return nil
	}
	tbl, report, err := assumptions.Read(schema)
	if err != nil {
		b.errs.Add(err)
		return nil
	}
	report.Warn(b.log)
	b.mtr.RowsSkipped(schema.Name, report.Skipped)
	return tbl
}

func (b *builder) index(report *distribution.Report, err error) bool {
	if err != nil {
		b.errs.Add(err)
		return false
	}
	report.Warn(b.log)
	b.mtr.RowsSkipped(report.Table, report.Skipped)
	return true
}

func (b *builder) marginal(tbl *tables.Table, categoryCol, weightCol string) *distribution.Marginal {
	if b.errs.Errored() {
		return nil
	}
	m, report, err := distribution.NewMarginal(tbl, categoryCol, weightCol)
	if !b.index(report, err) {
		return nil
	}
	return m
}

func (b *builder) weighted(tbl *tables.Table, weightCol string) *distribution.Weighted {
	if b.errs.Errored() {
		return nil
	}
	w, report, err := distribution.NewWeighted(tbl, weightCol)
	if !b.index(report, err) {
		return nil
	}
	return w
}

func (b *builder) conditional(tbl *tables.Table, cols distribution.ConditionalColumns) *distribution.Conditional {
	if b.errs.Errored() {
		return nil
	}
	c, report, err := distribution.NewConditional(tbl, cols)
	if !b.index(report, err) {
		return nil
	}
	return c
}

func (b *builder) rates(tbl *tables.Table, lowCol, highCol, rateCol string) *distribution.Rates {
	if b.errs.Errored() {
		return nil
	}
	r, report, err := distribution.NewRates(tbl, lowCol, highCol, rateCol)
	if !b.index(report, err) {
		return nil
	}
	return r
}

func (b *builder) rateSet(tbl *tables.Table, keyCol, rateCol string) *distribution.RateSet {
	if b.errs.Errored() {
		return nil
	}
	r, report, err := distribution.NewRateSet(tbl, keyCol, rateCol)
	if !b.index(report, err) {
		return nil
	}
	return r
}

func (b *builder) paramSet(tbl *tables.Table, keyCol, locCol, scaleCol string) *distribution.ParamSet {
	if b.errs.Errored() {
		return nil
	}
	p, report, err := distribution.NewParamSet(tbl, keyCol, locCol, scaleCol)
	if !b.index(report, err) {
		return nil
	}
	return p
}

func (b *builder) banded(tbl *tables.Table, bandCol, locCol, scaleCol string) *distribution.Banded {
	if b.errs.Errored() {
		return nil
	}
	bd, report, err := distribution.NewBanded(tbl, bandCol, locCol, scaleCol)
	if !b.index(report, err) {
		return nil
	}
	return bd
}

func (b *builder) subsets(tbl *tables.Table, keyCol string) *distribution.Subsets {
	if b.errs.Errored() {
		return nil
	}
	s, report, err := distribution.NewSubsets(tbl, keyCol)
	if !b.index(report, err) {
		return nil
	}
	return s
}

func (b *builder) rate(rs *distribution.RateSet, key string) float64 {
	if b.errs.Errored() {
		return 0
	}
	rate, ok := rs.Get(key)
	if !ok {
		b.errs.Add(fmt.Errorf("%w: adjustments: missing key %q", tables.ErrConstruction, key))
		return 0
	}
	return rate
}

func buildIndexes(dir string, log logging.Logger, mtr *metrics.Metrics) (*indexes, error) {
	b := &builder{dir: dir, log: log, mtr: mtr}
	idx := &indexes{}

	// Measured tables.
	idx.postcodeTbl = b.loaded(tables.Postcodes)
	idx.postcodes = b.subsets(idx.postcodeTbl, "region")

	idx.ageSexTbl = b.loaded(tables.DriverAgeSex)
	idx.maleAges = b.weighted(idx.ageSexTbl, "male")
	idx.femaleAges = b.weighted(idx.ageSexTbl, "female")
	if !b.errs.Errored() {
		total := idx.maleAges.Total() + idx.femaleAges.Total()
		idx.pMale = idx.maleAges.Total() / total
	}

	idx.marital = b.conditional(b.loaded(tables.MaritalStatus), distribution.ConditionalColumns{
		Groups:   []string{"sex"},
		Low:      "age_low",
		High:     "age_high",
		Category: "category",
		Weight:   "weight",
	})

	occTbl := b.loaded(tables.Occupations)
	idx.occupations = b.conditional(occTbl, distribution.ConditionalColumns{
		Groups:   []string{"sex"},
		Category: "occupation",
		Weight:   "weight",
	})
	if !b.errs.Errored() {
		names := occTbl.Strings("occupation")
		codes := occTbl.Strings("soc_code")
		idx.occCodes = make(map[string]string, len(names))
		for row, name := range names {
			idx.occCodes[name] = codes[row]
		}
		all, ok := idx.occupations.Get(distribution.Key{Group: "all"})
		if !ok {
			b.errs.Add(fmt.Errorf("%w: %s: no rows for sex %q", tables.ErrConstruction, tables.Occupations.Name, "all"))
		}
		idx.occAll = all
	}

	idx.firstNames = b.conditional(b.loaded(tables.FirstNames), distribution.ConditionalColumns{
		Groups:   []string{"sex"},
		Category: "name",
		Weight:   "count",
	})

	idx.fleetTbl = b.loaded(tables.VehicleFleet)
	idx.fleet = b.weighted(idx.fleetTbl, "count")

	idx.claimRates = b.rates(b.loaded(tables.ClaimRates), "age_low", "age_high", "rate")
	idx.odometer = b.banded(b.loaded(tables.MileageByAge), "vehicle_age", "location", "scale")
	idx.annualMileage = b.banded(b.loaded(tables.AnnualMileageByAge), "vehicle_age", "location", "scale")

	// Assumption tables.
	idx.surnames = b.marginal(b.embedded(assumptions.Surnames), "name", "weight")
	idx.streets = b.marginal(b.embedded(assumptions.StreetNames), "category", "weight")

	idx.titles = b.conditional(b.embedded(assumptions.Titles), distribution.ConditionalColumns{
		Groups:   []string{"sex", "marital_status"},
		Category: "category",
		Weight:   "weight",
	})
	idx.employment = b.conditional(b.embedded(assumptions.EmploymentByAge), distribution.ConditionalColumns{
		Low:      "age_low",
		High:     "age_high",
		Category: "category",
		Weight:   "weight",
	})
	idx.usage = b.conditional(b.embedded(assumptions.UsageByEmployment), distribution.ConditionalColumns{
		Groups:   []string{"employment"},
		Category: "category",
		Weight:   "weight",
	})

	idx.homeowner = b.rates(b.embedded(assumptions.HomeownerRates), "age_low", "age_high", "rate")
	idx.medical = b.rates(b.embedded(assumptions.MedicalRates), "age_low", "age_high", "rate")

	adjustments := b.rateSet(b.embedded(assumptions.Adjustments), "key", "rate")
	idx.partnerRate = b.rate(adjustments, "living_with_partner")
	idx.modRate = b.rate(adjustments, "modification")

	idx.coverTypes = b.marginal(b.embedded(assumptions.CoverTypes), "category", "weight")
	idx.payFreq = b.marginal(b.embedded(assumptions.PaymentFrequencies), "category", "weight")

	idx.excessTbl = b.embedded(assumptions.VoluntaryExcess)
	idx.excess = b.weighted(idx.excessTbl, "weight")

	idx.prevInsurers = b.marginal(b.embedded(assumptions.PreviousInsurers), "category", "weight")

	idx.claimTypes = b.marginal(b.embedded(assumptions.ClaimTypes), "category", "weight")
	idx.claimFault = b.conditional(b.embedded(assumptions.ClaimFault), distribution.ConditionalColumns{
		Groups:   []string{"claim_type"},
		Category: "category",
		Weight:   "weight",
	})
	idx.claimAmounts = b.paramSet(b.embedded(assumptions.ClaimAmounts), "claim_type", "location", "scale")

	idx.convCodesTbl = b.embedded(assumptions.ConvictionCodes)
	idx.convCodes = b.weighted(idx.convCodesTbl, "weight")
	idx.convCountsTbl = b.embedded(assumptions.ConvictionCounts)
	idx.convCounts = b.weighted(idx.convCountsTbl, "weight")

	idx.addons = b.rateSet(b.embedded(assumptions.Addons), "addon", "rate")
	idx.breakdown = b.marginal(b.embedded(assumptions.BreakdownLevels), "category", "weight")

	idx.bodyTypes = b.marginal(b.embedded(assumptions.BodyTypes), "category", "weight")
	idx.bodyDoors = b.conditional(b.embedded(assumptions.BodyDoors), distribution.ConditionalColumns{
		Groups:   []string{"body_type"},
		Category: "category",
		Weight:   "weight",
	})
	idx.bodySeats = b.conditional(b.embedded(assumptions.BodySeats), distribution.ConditionalColumns{
		Groups:   []string{"body_type"},
		Category: "category",
		Weight:   "weight",
	})

	idx.parkOvernight = b.conditional(b.embedded(assumptions.ParkingOvernight), distribution.ConditionalColumns{
		Groups:   []string{"area_kind"},
		Category: "category",
		Weight:   "weight",
	})
	idx.parkDaytime = b.conditional(b.embedded(assumptions.ParkingDaytime), distribution.ConditionalColumns{
		Groups:   []string{"commuting"},
		Category: "category",
		Weight:   "weight",
	})

	securityTbl := b.embedded(assumptions.SecurityRates)
	idx.alarmRates = b.rates(securityTbl, "age_low", "age_high", "alarm_rate")
	idx.immobRates = b.rates(securityTbl, "age_low", "age_high", "immobiliser_rate")

	idx.modTypes = b.marginal(b.embedded(assumptions.ModificationTypes), "category", "weight")

	idx.engineTbl = b.embedded(assumptions.EngineSizes)
	idx.engines = b.weighted(idx.engineTbl, "weight")

	idx.vehicleAgeTbl = b.embedded(assumptions.VehicleAges)
	idx.vehicleAges = b.weighted(idx.vehicleAgeTbl, "weight")
	idx.vehicleValues = b.banded(b.embedded(assumptions.VehicleValues), "vehicle_age", "location", "scale")

	channelsTbl := b.embedded(assumptions.Channels)
	idx.channels = b.marginal(channelsTbl, "channel", "weight")
	if !b.errs.Errored() {
		names := channelsTbl.Strings("channel")
		prefixes := channelsTbl.Strings("prefix")
		idx.channelPrefix = make(map[string]string, len(names))
		for row, name := range names {
			idx.channelPrefix[name] = prefixes[row]
		}
	}

	idx.cityTbl = b.embedded(assumptions.RegionCities)
	idx.cities = b.subsets(idx.cityTbl, "region")

	if err := b.errs.Err; err != nil {
		return nil, err
	}

	// Cross-table check: every claim type the marginal can produce must have
	// amount parameters and a fault distribution, so claim composition never
	// misses mid-batch.
	for _, claimType := range idx.claimTypes.Categories() {
		if _, ok := idx.claimAmounts.Get(claimType); !ok {
			return nil, fmt.Errorf("%w: %s: no amount parameters for claim type %q",
				tables.ErrConstruction, assumptions.ClaimAmounts.Name, claimType)
		}
		if _, ok := idx.claimFault.Get(distribution.Key{Group: claimType}); !ok {
			return nil, fmt.Errorf("%w: %s: no fault distribution for claim type %q",
				tables.ErrConstruction, assumptions.ClaimFault.Name, claimType)
		}
	}
	return idx, nil
}
