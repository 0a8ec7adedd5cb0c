// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package generator

import (
	"fmt"
	"math"
	"strconv"

	"github.com/PricingFrontier/synthetic-insurance-data/distribution"
	"github.com/PricingFrontier/synthetic-insurance-data/quote"
	"github.com/PricingFrontier/synthetic-insurance-data/sampler"
	safemath "github.com/PricingFrontier/synthetic-insurance-data/utils/math"
)

// The draw order below is the conditioning graph: each attribute may only
// depend on attributes drawn before it. Reordering calls changes every
// seeded batch, so treat the sequence as part of the output contract.
func (g *Generator) generateOne(s *sampler.Stream) quote.Quote {
	idx := g.idx

	// Person.
	sex, age := g.sampleSexAge(s)
	marital := g.sampleMarital(s, sex, age)
	title := g.draw("title", idx.titles,
		distribution.Key{Group: distribution.JoinKey(sex, marital)},
		sampler.DefaultTo(defaultTitle(sex)), s)
	employment := g.draw("employment_status", idx.employment,
		distribution.Key{Point: age},
		sampler.DefaultTo("employed").Widened(), s)
	occupation := g.draw("occupation", idx.occupations,
		distribution.Key{Group: sex},
		sampler.DelegateTo(idx.occAll), s)
	firstName := g.draw("first_name", idx.firstNames,
		distribution.Key{Group: sex},
		sampler.DefaultTo(defaultFirstName(sex)), s)
	surname := sampler.Categorical(idx.surnames, s)

	address, areaKind := g.sampleAddress(s)
	homeowner := s.Bernoulli(idx.homeowner.At(age))
	medical := s.Bernoulli(idx.medical.At(age))

	// Vehicle.
	vehicle, vehicleAge := g.sampleVehicle(s)

	// Licence and usage.
	licence := sampleLicence(s, age)
	usage := g.draw("usage", idx.usage,
		distribution.Key{Group: employment},
		sampler.DefaultTo("social_domestic_pleasure"), s)
	vehicle.Usage = usage
	vehicle.OvernightParking = g.draw("overnight_parking", idx.parkOvernight,
		distribution.Key{Group: areaKind},
		sampler.DefaultTo("street_near_home"), s)
	vehicle.DaytimeParking = g.draw("daytime_parking", idx.parkDaytime,
		distribution.Key{Group: commutingKey(usage)},
		sampler.DefaultTo("at_home"), s)

	// History.
	claims := g.sampleClaims(s, age)
	convictions := g.sampleConvictions(s)
	ncd := noClaimsYears(licence.YearsHeld, claims)

	// Cover.
	cover := g.sampleCover(s)
	previousInsurer := ""
	if licence.YearsHeld >= 1 {
		previousInsurer = sampler.Categorical(idx.prevInsurers, s)
	}

	// Mileage.
	annual := int(math.Round(sampler.Banded(idx.annualMileage, vehicleAge, sampler.FlooredNormal, s)))
	odometer := int(math.Round(sampler.Banded(idx.odometer, vehicleAge, sampler.FlooredNormal, s)))
	odometer = safemath.Max(odometer, annual)
	vehicle.AnnualMileage = annual
	vehicle.Odometer = odometer

	// Quote metadata.
	channel := sampler.Categorical(idx.channels, s)

	return quote.Quote{
		Reference:       g.reference(channel, s),
		Channel:         channel,
		PolicyStartDate: g.cfg.ReferenceDate.AddDate(0, 0, s.IntN(31)).Format(quote.DateLayout),
		Proposer: quote.Proposer{
			Title:             title,
			FirstName:         firstName,
			Surname:           surname,
			Sex:               sex,
			DateOfBirth:       g.dateOfBirth(age, s),
			Age:               age,
			MaritalStatus:     marital,
			Employment:        employment,
			Occupation:        occupation,
			OccupationCode:    idx.occCodes[occupation],
			Homeowner:         homeowner,
			MedicalConditions: medical,
			Address:           address,
			Licence:           licence,
			Claims:            claims,
			Convictions:       convictions,
			NoClaimsYears:     ncd,
			PreviousInsurer:   previousInsurer,
		},
		Vehicle: vehicle,
		Cover:   cover,
	}
}

// draw wraps sampler.Conditional so every applied fallback is counted per
// attribute.
func (g *Generator) draw(attribute string, c *distribution.Conditional, k distribution.Key, f sampler.Fallback, s *sampler.Stream) string {
	v, fellBack := sampler.Conditional(c, k, f, s)
	if fellBack {
		g.metrics.FallbackApplied(attribute)
	}
	return v
}

func (g *Generator) sampleSexAge(s *sampler.Stream) (string, int) {
	ages := g.idx.ageSexTbl.Ints("age")
	if s.Bernoulli(g.idx.pMale) {
		return "male", ages[sampler.Row(g.idx.maleAges, s)]
	}
	return "female", ages[sampler.Row(g.idx.femaleAges, s)]
}

func (g *Generator) sampleMarital(s *sampler.Stream, sex string, age int) string {
	marital := g.draw("marital_status", g.idx.marital,
		distribution.Key{Group: sex, Point: age},
		sampler.DefaultTo("single").Widened(), s)
	// The census categories lack cohabiting couples, so a slice of singles
	// is relabelled.
	if marital == "single" && age >= 20 && s.Bernoulli(g.idx.partnerRate) {
		return "living_with_partner"
	}
	return marital
}

func (g *Generator) sampleAddress(s *sampler.Stream) (quote.Address, string) {
	var (
		row      int
		fellBack bool
	)
	if g.cfg.Region != "" {
		row, fellBack = sampler.WithinSubset(g.idx.postcodes, g.cfg.Region, s)
		if fellBack {
			g.metrics.FallbackApplied("postcode_region")
		}
	} else {
		all := g.idx.postcodes.All()
		row = all[s.IntN(len(all))]
	}
	postcode := g.idx.postcodeTbl.Strings("postcode")[row]
	region := g.idx.postcodeTbl.Strings("region")[row]
	areaKind := g.idx.postcodeTbl.Strings("area_kind")[row]

	cityRow, fellBack := sampler.WithinSubset(g.idx.cities, region, s)
	if fellBack {
		g.metrics.FallbackApplied("city_region")
	}

	return quote.Address{
		HouseNumber: s.IntRange(1, 199),
		Street:      sampler.Categorical(g.idx.streets, s),
		City:        g.idx.cityTbl.Strings("city")[cityRow],
		Postcode:    postcode,
		Region:      region,
	}, areaKind
}

func (g *Generator) sampleVehicle(s *sampler.Stream) (quote.Vehicle, int) {
	idx := g.idx

	row := sampler.Row(idx.fleet, s)
	fuel := idx.fleetTbl.Strings("fuel")[row]

	vehicleAge := idx.vehicleAgeTbl.Ints("age")[sampler.Row(idx.vehicleAges, s)]

	engineCC := 0
	if fuel == "petrol" || fuel == "diesel" {
		engineCC = idx.engineTbl.Ints("size_cc")[sampler.Row(idx.engines, s)]
	}

	value := int(math.Round(sampler.Banded(idx.vehicleValues, vehicleAge, sampler.LogNormal, s)))

	bodyType := sampler.Categorical(idx.bodyTypes, s)
	doors := atoiOr(g.draw("doors", idx.bodyDoors,
		distribution.Key{Group: bodyType}, sampler.DefaultTo("5"), s), 5)
	seats := atoiOr(g.draw("seats", idx.bodySeats,
		distribution.Key{Group: bodyType}, sampler.DefaultTo("5"), s), 5)

	alarm := s.Bernoulli(idx.alarmRates.At(vehicleAge))
	immobiliser := s.Bernoulli(idx.immobRates.At(vehicleAge))

	var modifications []string
	if s.Bernoulli(idx.modRate) {
		modifications = []string{sampler.Categorical(idx.modTypes, s)}
	}

	return quote.Vehicle{
		Make:             idx.fleetTbl.Strings("make")[row],
		GenModel:         idx.fleetTbl.Strings("gen_model")[row],
		Model:            idx.fleetTbl.Strings("model")[row],
		Fuel:             fuel,
		RegistrationYear: g.cfg.ReferenceDate.Year() - vehicleAge,
		EngineSizeCC:     engineCC,
		Value:            value,
		RatingGroup:      ratingGroup(value, engineCC, fuel),
		BodyType:         bodyType,
		Doors:            doors,
		Seats:            seats,
		Alarm:            alarm,
		Immobiliser:      immobiliser,
		Modifications:    modifications,
	}, vehicleAge
}

// claimWindowYears is how far back the declared claim history reaches.
const claimWindowYears = 5

func (g *Generator) sampleClaims(s *sampler.Stream, age int) []quote.Claim {
	rate := g.idx.claimRates.At(age)

	var claims []quote.Claim
	for yearsAgo := 1; yearsAgo <= claimWindowYears; yearsAgo++ {
		if !s.Bernoulli(rate) {
			continue
		}
		claimType := sampler.Categorical(g.idx.claimTypes, s)
		fault := g.draw("claim_fault", g.idx.claimFault,
			distribution.Key{Group: claimType},
			sampler.DefaultTo("not_at_fault"), s)
		// Parameters exist for every producible type; buildIndexes checked.
		params, _ := g.idx.claimAmounts.Get(claimType)
		amount := int(math.Round(sampler.Continuous(params, sampler.LogNormal, s)))
		claims = append(claims, quote.Claim{
			Type:     claimType,
			Fault:    fault,
			Amount:   amount,
			YearsAgo: yearsAgo,
		})
	}
	return claims
}

func (g *Generator) sampleConvictions(s *sampler.Stream) []quote.Conviction {
	idx := g.idx
	count := idx.convCountsTbl.Ints("count")[sampler.Row(idx.convCounts, s)]
	if count == 0 {
		return nil
	}

	minPoints := idx.convCodesTbl.Ints("min_points")
	maxPoints := idx.convCodesTbl.Ints("max_points")
	fines := idx.convCodesTbl.Ints("typical_fine")
	banLow := idx.convCodesTbl.Ints("ban_low")
	banHigh := idx.convCodesTbl.Ints("ban_high")

	var (
		convictions []quote.Conviction
		totalPoints int
	)
	for i := 0; i < count; i++ {
		row := sampler.Row(idx.convCodes, s)
		points := s.IntRange(minPoints[row], maxPoints[row])
		if totalPoints+points > quote.MaxLicencePoints {
			// A fuller history would mean a revoked licence; stop here.
			break
		}
		totalPoints += points

		banMonths := 0
		if banHigh[row] > 0 {
			banMonths = s.IntRange(banLow[row], banHigh[row])
		}
		convictions = append(convictions, quote.Conviction{
			Code:      idx.convCodesTbl.Strings("code")[row],
			Points:    points,
			Fine:      fines[row],
			BanMonths: banMonths,
			YearsAgo:  s.IntRange(1, claimWindowYears),
		})
	}
	return convictions
}

func (g *Generator) sampleCover(s *sampler.Stream) quote.Cover {
	idx := g.idx

	var addons []string
	for _, addon := range idx.addons.Keys() {
		rate, _ := idx.addons.Get(addon)
		if s.Bernoulli(rate) {
			addons = append(addons, addon)
		}
	}
	breakdownLevel := ""
	for _, addon := range addons {
		if addon == "breakdown_cover" {
			breakdownLevel = sampler.Categorical(idx.breakdown, s)
			break
		}
	}

	return quote.Cover{
		Type:             sampler.Categorical(idx.coverTypes, s),
		PaymentFrequency: sampler.Categorical(idx.payFreq, s),
		VoluntaryExcess:  idx.excessTbl.Ints("amount")[sampler.Row(idx.excess, s)],
		Addons:           addons,
		BreakdownLevel:   breakdownLevel,
	}
}

func (g *Generator) reference(channel string, s *sampler.Stream) string {
	prefix := g.idx.channelPrefix[channel]
	if prefix == "" {
		prefix = "QTE"
	}
	return fmt.Sprintf("%s%08d", prefix, s.IntN(100_000_000))
}

// dateOfBirth picks a birth date that yields exactly [age] at the reference
// date: the span below stays inside the single year where that holds.
func (g *Generator) dateOfBirth(age int, s *sampler.Stream) string {
	exact := g.cfg.ReferenceDate.AddDate(-age, 0, 0)
	return exact.AddDate(0, 0, -s.IntN(364)).Format(quote.DateLayout)
}

func sampleLicence(s *sampler.Stream, age int) quote.Licence {
	years := age - 17 - s.IntN(6)
	return quote.Licence{
		Type:      "full_uk",
		YearsHeld: safemath.Max(years, 0),
	}
}

func noClaimsYears(licenceYears int, claims []quote.Claim) int {
	atFault := 0
	for _, c := range claims {
		if c.Fault == "at_fault" {
			atFault++
		}
	}
	return safemath.Clamp(licenceYears-2*atFault, 0, 9)
}

func commutingKey(usage string) string {
	if usage == "social_domestic_pleasure" {
		return "non_commuting"
	}
	return "commuting"
}

func defaultTitle(sex string) string {
	if sex == "male" {
		return "mr"
	}
	return "ms"
}

func defaultFirstName(sex string) string {
	if sex == "male" {
		return "John"
	}
	return "Sarah"
}

// atoiOr keeps count parsing total; shipped categories are validated, so the
// default only covers data drift.
func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
