// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package generator

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/PricingFrontier/synthetic-insurance-data/metrics"
	"github.com/PricingFrontier/synthetic-insurance-data/tables"
	"github.com/PricingFrontier/synthetic-insurance-data/utils/logging"
)

func defaultRows() map[string][][]string {
	return map[string][][]string{
		tables.Postcodes.Name: {
			{"CF10 1AA", "wales", "urban"},
			{"CF24 3BB", "wales", "urban"},
			{"LL11 1AA", "wales", "rural"},
			{"SW1A 1AA", "london", "urban"},
			{"E1 6AN", "london", "urban"},
			{"M1 1AE", "north_west", "urban"},
			{"LS1 4AP", "yorkshire_and_the_humber", "urban"},
			{"BS1 4ST", "south_west", "rural"},
		},
		tables.DriverAgeSex.Name: {
			{"20", "100", "100"},
			{"30", "100", "100"},
			{"40", "100", "100"},
			{"50", "100", "100"},
			{"60", "100", "100"},
			{"70", "100", "100"},
		},
		tables.MaritalStatus.Name: {
			{"male", "17", "39", "single", "60"},
			{"male", "17", "39", "married", "40"},
			{"male", "40", "100", "married", "70"},
			{"male", "40", "100", "single", "30"},
			{"female", "17", "39", "single", "55"},
			{"female", "17", "39", "married", "45"},
			{"female", "40", "100", "married", "65"},
			{"female", "40", "100", "single", "35"},
		},
		tables.Occupations.Name: {
			{"all", "2136", "software_engineer", "50"},
			{"all", "2211", "doctor", "20"},
			{"all", "6145", "care_worker", "30"},
			{"male", "2136", "software_engineer", "60"},
			{"male", "5315", "carpenter", "40"},
			{"female", "2211", "doctor", "50"},
			{"female", "6145", "care_worker", "50"},
		},
		tables.FirstNames.Name: {
			{"male", "Oliver", "1", "5000"},
			{"male", "George", "2", "4000"},
			{"female", "Olivia", "1", "5100"},
			{"female", "Amelia", "2", "3900"},
		},
		tables.VehicleFleet.Name: {
			{"Ford", "Focus", "Focus Zetec", "petrol", "900"},
			{"Ford", "Fiesta", "Fiesta ST", "petrol", "800"},
			{"Volkswagen", "Golf", "Golf GTD", "diesel", "700"},
			{"Tesla", "Model 3", "Model 3 Long Range", "electric", "300"},
			{"Toyota", "Prius", "Prius Excel", "hybrid", "200"},
		},
		tables.ClaimRates.Name: {
			{"17", "24", "0.20"},
			{"25", "49", "0.10"},
			{"50", "100", "0.08"},
		},
		tables.MileageByAge.Name: {
			{"0", "6000", "1500"},
			{"5", "40000", "8000"},
			{"10", "80000", "15000"},
			{"16", "120000", "20000"},
		},
		tables.AnnualMileageByAge.Name: {
			{"0", "9000", "2000"},
			{"5", "8000", "2000"},
			{"10", "7000", "1800"},
			{"16", "6000", "1500"},
		},
	}
}

var schemaByName = map[string]tables.Schema{
	tables.Postcodes.Name:          tables.Postcodes,
	tables.DriverAgeSex.Name:       tables.DriverAgeSex,
	tables.MaritalStatus.Name:      tables.MaritalStatus,
	tables.Occupations.Name:        tables.Occupations,
	tables.FirstNames.Name:         tables.FirstNames,
	tables.VehicleFleet.Name:       tables.VehicleFleet,
	tables.ClaimRates.Name:         tables.ClaimRates,
	tables.MileageByAge.Name:       tables.MileageByAge,
	tables.AnnualMileageByAge.Name: tables.AnnualMileageByAge,
}

// writeTables writes the default fixture tables, with [overrides] replacing
// whole tables by name, and returns the directory.
func writeTables(t *testing.T, overrides map[string][][]string) string {
	t.Helper()

	dir := t.TempDir()
	rows := defaultRows()
	for name, override := range overrides {
		rows[name] = override
	}
	for name, tableRows := range rows {
		schema := schemaByName[name]
		path := filepath.Join(dir, schema.Filename())
		require.NoError(t, tables.WriteCSV(path, schema, tableRows))
	}
	return dir
}

func testConfig(dir string) Config {
	return Config{
		ProcessedDir:  dir,
		Seed:          42,
		ReferenceDate: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		Workers:       4,
	}
}

func newTestGenerator(t *testing.T, cfg Config) (*Generator, *prometheus.Registry) {
	t.Helper()

	reg := prometheus.NewRegistry()
	mtr, err := metrics.New("synthq", reg)
	require.NoError(t, err)
	gen, err := New(cfg, logging.NoLog{}, mtr)
	require.NoError(t, err)
	return gen, reg
}

func TestNewMissingTables(t *testing.T) {
	require := require.New(t)

	reg := prometheus.NewRegistry()
	mtr, err := metrics.New("synthq", reg)
	require.NoError(err)

	_, err = New(testConfig(t.TempDir()), logging.NoLog{}, mtr)
	require.ErrorIs(err, tables.ErrConstruction)
}

func TestNewZeroReferenceDate(t *testing.T) {
	require := require.New(t)

	cfg := testConfig(writeTables(t, nil))
	cfg.ReferenceDate = time.Time{}

	reg := prometheus.NewRegistry()
	mtr, err := metrics.New("synthq", reg)
	require.NoError(err)

	_, err = New(cfg, logging.NoLog{}, mtr)
	require.ErrorIs(err, errNoReferenceDate)
}

func TestNewUnknownRegion(t *testing.T) {
	require := require.New(t)

	cfg := testConfig(writeTables(t, nil))
	cfg.Region = "atlantis"

	reg := prometheus.NewRegistry()
	mtr, err := metrics.New("synthq", reg)
	require.NoError(err)

	_, err = New(cfg, logging.NoLog{}, mtr)
	require.ErrorIs(err, errUnknownRegion)
}

func TestGenerateCountGuards(t *testing.T) {
	require := require.New(t)

	cfg := testConfig(writeTables(t, nil))
	cfg.MaxCount = 10
	gen, _ := newTestGenerator(t, cfg)

	_, err := gen.Generate(context.Background(), 0)
	require.ErrorIs(err, errCountNotPositive)

	_, err = gen.Generate(context.Background(), -3)
	require.ErrorIs(err, errCountNotPositive)

	_, err = gen.Generate(context.Background(), 11)
	require.ErrorIs(err, errCountExceedsMax)

	quotes, err := gen.Generate(context.Background(), 10)
	require.NoError(err)
	require.Len(quotes, 10)
}

func TestGenerateCancelled(t *testing.T) {
	require := require.New(t)

	gen, _ := newTestGenerator(t, testConfig(writeTables(t, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := gen.Generate(ctx, 50)
	require.ErrorIs(err, context.Canceled)
}

func TestGenerateDeterministic(t *testing.T) {
	require := require.New(t)

	dir := writeTables(t, nil)

	first, _ := newTestGenerator(t, testConfig(dir))
	second, _ := newTestGenerator(t, testConfig(dir))

	a, err := first.Generate(context.Background(), 200)
	require.NoError(err)
	b, err := second.Generate(context.Background(), 200)
	require.NoError(err)
	require.Equal(a, b)

	differentSeed := testConfig(dir)
	differentSeed.Seed = 43
	third, _ := newTestGenerator(t, differentSeed)
	c, err := third.Generate(context.Background(), 200)
	require.NoError(err)
	require.NotEqual(a, c)
}

func TestGenerateWorkerInvariance(t *testing.T) {
	require := require.New(t)

	dir := writeTables(t, nil)

	serial := testConfig(dir)
	serial.Workers = 1
	parallel := testConfig(dir)
	parallel.Workers = 7

	one, _ := newTestGenerator(t, serial)
	many, _ := newTestGenerator(t, parallel)

	a, err := one.Generate(context.Background(), 150)
	require.NoError(err)
	b, err := many.Generate(context.Background(), 150)
	require.NoError(err)
	require.Equal(a, b)
}

func TestGenerateRecordsValid(t *testing.T) {
	require := require.New(t)

	gen, _ := newTestGenerator(t, testConfig(writeTables(t, nil)))

	quotes, err := gen.Generate(context.Background(), 500)
	require.NoError(err)
	require.Len(quotes, 500)

	fixtureAges := map[int]bool{20: true, 30: true, 40: true, 50: true, 60: true, 70: true}
	for _, q := range quotes {
		require.NoError(q.Verify())
		require.True(fixtureAges[q.Proposer.Age], "age %d not in fixture", q.Proposer.Age)

		regYear := q.Vehicle.RegistrationYear
		require.GreaterOrEqual(regYear, 2010)
		require.LessOrEqual(regYear, 2026)
		require.GreaterOrEqual(q.Vehicle.Odometer, q.Vehicle.AnnualMileage)

		for _, c := range q.Proposer.Claims {
			require.GreaterOrEqual(c.YearsAgo, 1)
			require.LessOrEqual(c.YearsAgo, 5)
			require.Positive(c.Amount)
		}
	}
}

func TestGenerateSexRatio(t *testing.T) {
	require := require.New(t)

	gen, _ := newTestGenerator(t, testConfig(writeTables(t, nil)))

	quotes, err := gen.Generate(context.Background(), 2000)
	require.NoError(err)

	males := 0
	for _, q := range quotes {
		if q.Proposer.Sex == "male" {
			males++
		}
	}
	// The fixture weights the sexes evenly.
	require.InDelta(0.5, float64(males)/float64(len(quotes)), 0.05)
}

func TestGenerateRegionFilter(t *testing.T) {
	require := require.New(t)

	cfg := testConfig(writeTables(t, nil))
	cfg.Region = "wales"
	gen, _ := newTestGenerator(t, cfg)

	welsh := map[string]bool{"CF10 1AA": true, "CF24 3BB": true, "LL11 1AA": true}
	quotes, err := gen.Generate(context.Background(), 200)
	require.NoError(err)
	for _, q := range quotes {
		require.Equal("wales", q.Proposer.Address.Region)
		require.True(welsh[q.Proposer.Address.Postcode], "postcode %q not welsh", q.Proposer.Address.Postcode)
	}
}

func TestGenerateBirthDatesMatchAge(t *testing.T) {
	require := require.New(t)

	cfg := testConfig(writeTables(t, nil))
	gen, _ := newTestGenerator(t, cfg)

	quotes, err := gen.Generate(context.Background(), 300)
	require.NoError(err)
	for _, q := range quotes {
		dob, err := time.Parse("2006-01-02", q.Proposer.DateOfBirth)
		require.NoError(err)
		// Integer age at the reference date must equal the stated age.
		turned := dob.AddDate(q.Proposer.Age, 0, 0)
		require.False(turned.After(cfg.ReferenceDate))
		require.True(dob.AddDate(q.Proposer.Age+1, 0, 0).After(cfg.ReferenceDate))
	}
}

func TestGenerateFallbacksCounted(t *testing.T) {
	require := require.New(t)

	// Every driver is 60 but the marital table only covers ages up to 25, so
	// each record widens to the nearest band and the fallback is counted.
	dir := writeTables(t, map[string][][]string{
		tables.DriverAgeSex.Name: {
			{"60", "100", "100"},
		},
		tables.MaritalStatus.Name: {
			{"male", "17", "25", "single", "80"},
			{"male", "17", "25", "married", "20"},
			{"female", "17", "25", "single", "80"},
			{"female", "17", "25", "married", "20"},
		},
	})
	gen, reg := newTestGenerator(t, testConfig(dir))

	quotes, err := gen.Generate(context.Background(), 50)
	require.NoError(err)
	for _, q := range quotes {
		require.Contains([]string{"single", "married", "living_with_partner"}, q.Proposer.MaritalStatus)
	}

	families, err := reg.Gather()
	require.NoError(err)

	var counted float64
	for _, family := range families {
		if family.GetName() != "synthq_fallbacks_applied" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "attribute" && label.GetValue() == "marital_status" {
					counted = metric.GetCounter().GetValue()
				}
			}
		}
	}
	require.Equal(float64(len(quotes)), counted)
}

func BenchmarkGenerate(b *testing.B) {
	rows := defaultRows()
	dir := b.TempDir()
	for name, tableRows := range rows {
		schema := schemaByName[name]
		if err := tables.WriteCSV(filepath.Join(dir, schema.Filename()), schema, tableRows); err != nil {
			b.Fatal(err)
		}
	}

	reg := prometheus.NewRegistry()
	mtr, err := metrics.New("synthq", reg)
	if err != nil {
		b.Fatal(err)
	}
	gen, err := New(testConfig(dir), logging.NoLog{}, mtr)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gen.Generate(context.Background(), 1000); err != nil {
			b.Fatal(err)
		}
	}
}
