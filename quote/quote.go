// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

// Package quote defines the synthetic quote request record. Records are
// plain values with JSON tags; composing them is the generator's job and
// serializing them is the output package's job.
package quote

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is how the record renders dates.
const DateLayout = "2006-01-02"

// MaxLicencePoints is the DVLA totting-up threshold. Generated records never
// carry more active points than this.
const MaxLicencePoints = 12

var (
	errNoReference      = errors.New("missing quote reference")
	errNoChannel        = errors.New("missing channel")
	errBadStartDate     = errors.New("unparseable policy start date")
	errBadDateOfBirth   = errors.New("unparseable date of birth")
	errAgeOutOfRange    = errors.New("proposer age outside 17..100")
	errBadSex           = errors.New("sex must be male or female")
	errNoSurname        = errors.New("missing surname")
	errNoPostcode       = errors.New("missing postcode")
	errNoVehicle        = errors.New("missing vehicle make or model")
	errBadRatingGroup   = errors.New("rating group outside 1..50")
	errBadDoors         = errors.New("doors outside 2..7")
	errBadSeats         = errors.New("seats outside 2..9")
	errNegativeMileage  = errors.New("negative mileage")
	errBadClaim         = errors.New("claim missing type or fault")
	errTooManyPoints    = errors.New("conviction points exceed the licence cap")
	errNegativeNCD      = errors.New("negative no-claims discount years")
	errBadLicenceYears  = errors.New("licence years exceed driving age span")
	errNoCoverType      = errors.New("missing cover type")
	errBadExcess        = errors.New("negative voluntary excess")
	errBreakdownWithout = errors.New("breakdown level without breakdown cover addon")
)

type Quote struct {
	Reference       string   `json:"quote_reference"`
	Channel         string   `json:"channel"`
	PolicyStartDate string   `json:"policy_start_date"`
	Proposer        Proposer `json:"proposer"`
	Vehicle         Vehicle  `json:"vehicle"`
	Cover           Cover    `json:"cover"`
}

type Proposer struct {
	Title             string       `json:"title"`
	FirstName         string       `json:"first_name"`
	Surname           string       `json:"surname"`
	Sex               string       `json:"sex"`
	DateOfBirth       string       `json:"date_of_birth"`
	Age               int          `json:"age"`
	MaritalStatus     string       `json:"marital_status"`
	Employment        string       `json:"employment_status"`
	Occupation        string       `json:"occupation,omitempty"`
	OccupationCode    string       `json:"occupation_code,omitempty"`
	Homeowner         bool         `json:"homeowner"`
	MedicalConditions bool         `json:"medical_conditions"`
	Address           Address      `json:"address"`
	Licence           Licence      `json:"licence"`
	Claims            []Claim      `json:"claims"`
	Convictions       []Conviction `json:"convictions"`
	NoClaimsYears     int          `json:"no_claims_discount_years"`
	PreviousInsurer   string       `json:"previous_insurer,omitempty"`
}

type Address struct {
	HouseNumber int    `json:"house_number"`
	Street      string `json:"street"`
	City        string `json:"city"`
	Postcode    string `json:"postcode"`
	Region      string `json:"region"`
}

type Licence struct {
	Type      string `json:"type"`
	YearsHeld int    `json:"years_held"`
}

type Vehicle struct {
	Make             string   `json:"make"`
	GenModel         string   `json:"gen_model"`
	Model            string   `json:"model"`
	Fuel             string   `json:"fuel"`
	RegistrationYear int      `json:"registration_year"`
	EngineSizeCC     int      `json:"engine_size_cc,omitempty"`
	Value            int      `json:"estimated_value"`
	RatingGroup      int      `json:"rating_group"`
	BodyType         string   `json:"body_type"`
	Doors            int      `json:"doors"`
	Seats            int      `json:"seats"`
	Alarm            bool     `json:"alarm"`
	Immobiliser      bool     `json:"immobiliser"`
	Modifications    []string `json:"modifications,omitempty"`
	Usage            string   `json:"usage"`
	AnnualMileage    int      `json:"annual_mileage"`
	Odometer         int      `json:"odometer_miles"`
	OvernightParking string   `json:"overnight_parking"`
	DaytimeParking   string   `json:"daytime_parking"`
}

type Claim struct {
	Type     string `json:"type"`
	Fault    string `json:"fault"`
	Amount   int    `json:"amount"`
	YearsAgo int    `json:"years_ago"`
}

type Conviction struct {
	Code      string `json:"code"`
	Points    int    `json:"points"`
	Fine      int    `json:"fine"`
	BanMonths int    `json:"ban_months,omitempty"`
	YearsAgo  int    `json:"years_ago"`
}

type Cover struct {
	Type             string   `json:"type"`
	PaymentFrequency string   `json:"payment_frequency"`
	VoluntaryExcess  int      `json:"voluntary_excess"`
	Addons           []string `json:"addons,omitempty"`
	BreakdownLevel   string   `json:"breakdown_level,omitempty"`
}

// Verify checks the structural consistency of a composed record. It covers
// shape, not statistics: fields that must be present, dates that must parse,
// and cross-field rules like the licence points cap.
func (q *Quote) Verify() error {
	switch {
	case q.Reference == "":
		return errNoReference
	case q.Channel == "":
		return errNoChannel
	}
	if _, err := time.Parse(DateLayout, q.PolicyStartDate); err != nil {
		return fmt.Errorf("%w: %q", errBadStartDate, q.PolicyStartDate)
	}
	if err := q.Proposer.verify(); err != nil {
		return err
	}
	if err := q.Vehicle.verify(); err != nil {
		return err
	}
	return q.Cover.verify()
}

func (p *Proposer) verify() error {
	switch {
	case p.Sex != "male" && p.Sex != "female":
		return fmt.Errorf("%w: %q", errBadSex, p.Sex)
	case p.Age < 17 || p.Age > 100:
		return fmt.Errorf("%w: %d", errAgeOutOfRange, p.Age)
	case p.Surname == "":
		return errNoSurname
	case p.Address.Postcode == "":
		return errNoPostcode
	case p.NoClaimsYears < 0:
		return errNegativeNCD
	case p.Licence.YearsHeld < 0 || p.Licence.YearsHeld > p.Age-16:
		return fmt.Errorf("%w: %d held at age %d", errBadLicenceYears, p.Licence.YearsHeld, p.Age)
	}
	if _, err := time.Parse(DateLayout, p.DateOfBirth); err != nil {
		return fmt.Errorf("%w: %q", errBadDateOfBirth, p.DateOfBirth)
	}
	for _, c := range p.Claims {
		if c.Type == "" || c.Fault == "" {
			return errBadClaim
		}
	}
	points := 0
	for _, c := range p.Convictions {
		points += c.Points
	}
	if points > MaxLicencePoints {
		return fmt.Errorf("%w: %d", errTooManyPoints, points)
	}
	return nil
}

func (v *Vehicle) verify() error {
	switch {
	case v.Make == "" || v.Model == "":
		return errNoVehicle
	case v.RatingGroup < 1 || v.RatingGroup > 50:
		return fmt.Errorf("%w: %d", errBadRatingGroup, v.RatingGroup)
	case v.Doors < 2 || v.Doors > 7:
		return fmt.Errorf("%w: %d", errBadDoors, v.Doors)
	case v.Seats < 2 || v.Seats > 9:
		return fmt.Errorf("%w: %d", errBadSeats, v.Seats)
	case v.AnnualMileage < 0 || v.Odometer < 0:
		return errNegativeMileage
	}
	return nil
}

func (c *Cover) verify() error {
	switch {
	case c.Type == "":
		return errNoCoverType
	case c.VoluntaryExcess < 0:
		return errBadExcess
	}
	if c.BreakdownLevel != "" {
		for _, addon := range c.Addons {
			if addon == "breakdown_cover" {
				return nil
			}
		}
		return errBreakdownWithout
	}
	return nil
}
