// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package datasets

// Source is one public release the processing stage can consume.
type Source struct {
	// Name is the registry key used by the fetch command.
	Name string

	// URL is the direct download location. Publishers rotate asset URLs
	// between releases, so a failed fetch usually means the link moved.
	URL string

	// Filename is the name the download is stored under in the raw
	// directory; processors look files up by this name.
	Filename string

	Description string

	// Manual marks sources that sit behind a registration wall and must be
	// downloaded by hand into the raw directory.
	Manual bool
}

// Sources returns the registry in fetch order.
func Sources() []Source {
	return []Source{
		{
			Name:        "fremtpl2_freq",
			URL:         "https://www.openml.org/data/download/20649148/freMTPL2freq.arff",
			Filename:    "freMTPL2freq.arff",
			Description: "French motor TPL claim frequency, 678k policies",
		},
		{
			Name:        "fremtpl2_sev",
			URL:         "https://www.openml.org/data/download/20649149/freMTPL2sev.arff",
			Filename:    "freMTPL2sev.arff",
			Description: "French motor TPL claim severity",
		},
		{
			Name:        "veh0120_uk",
			URL:         "https://assets.publishing.service.gov.uk/media/6966489999fbdc498faecd9d/df_VEH0120_UK.csv",
			Filename:    "df_VEH0120_UK.csv",
			Description: "Licensed vehicles by make/model/fuel, UK quarterly (37 MB)",
		},
		{
			Name:        "veh0220",
			URL:         "https://assets.publishing.service.gov.uk/media/68ed09a42adc28a81b4acfec/df_VEH0220.csv",
			Filename:    "df_VEH0220.csv",
			Description: "Licensed vehicles by make/model/fuel/engine size, UK annual (38 MB)",
		},
		{
			Name:        "veh1107",
			URL:         "https://assets.publishing.service.gov.uk/media/68ecf5a582670806f9d5dfbc/veh1107.ods",
			Filename:    "veh1107.ods",
			Description: "Licensed vehicles by body type and years since first use",
		},
		{
			Name:        "veh1103",
			URL:         "https://assets.publishing.service.gov.uk/media/696641a696e60a090ce2000a/veh1103.ods",
			Filename:    "veh1103.ods",
			Description: "Licensed vehicles by body type and fuel type, quarterly",
		},
		{
			Name:        "dvla_licences",
			URL:         "https://data.dft.gov.uk/driving-licence-data/driving-licence-data-nov-2025.xlsx",
			Filename:    "driving-licence-data-nov-2025.xlsx",
			Description: "GB driving licence holders by age, gender, licence type",
		},
		{
			Name:        "nts0201",
			URL:         "https://assets.publishing.service.gov.uk/media/66ce14751aaf41b21139cf8e/nts0201.ods",
			Filename:    "nts0201.ods",
			Description: "Full car driving licence holders by age and sex, England",
		},
		{
			Name:        "moj_outcomes_by_offence",
			URL:         "https://assets.publishing.service.gov.uk/media/68878445be2291b14d11affa/Outcomes-by-offence-tool-2017-2024.xlsx",
			Filename:    "Outcomes-by-offence-tool-2017-2024.xlsx",
			Description: "MoJ outcomes by offence 2017-2024, includes motoring convictions",
		},
		{
			Name:        "nomis_aps_occupation",
			URL:         "https://www.nomisweb.co.uk/api/v01/dataset/NM_218_1.data.csv?geography=2092957697&c_sex=0,1,2&measures=20100&time=latest&select=date_name,c_sex_name,soc2020_full_name,obs_value",
			Filename:    "nomis_aps_occupation_national.csv",
			Description: "APS employment by occupation (SOC2020), Great Britain",
		},
		{
			Name:        "ons_baby_names_boys",
			URL:         "https://www.ons.gov.uk/file?uri=/peoplepopulationandcommunity/birthsdeathsandmarriages/livebirths/datasets/babynamesenglandandwalesbabynamesstatisticsboys/2024/boysnames2024.xlsx",
			Filename:    "boysnames2024.xlsx",
			Description: "ONS baby names, boys, England & Wales (2024 edition)",
		},
		{
			Name:        "ons_baby_names_girls",
			URL:         "https://www.ons.gov.uk/file?uri=/peoplepopulationandcommunity/birthsdeathsandmarriages/livebirths/datasets/babynamesenglandandwalesbabynamesstatisticsgirls/2024/girlsnames2024.xlsx",
			Filename:    "girlsnames2024.xlsx",
			Description: "ONS baby names, girls, England & Wales (2024 edition)",
		},
		{
			Name:        "ons_marital_status",
			URL:         "https://www.ons.gov.uk/file?uri=/peoplepopulationandcommunity/populationandmigration/populationestimates/datasets/maritalstatusandlivingarrangements/2022/maritalstatus2022.xlsx",
			Filename:    "maritalstatus2022.xlsx",
			Description: "ONS population by marital status, sex and age, England & Wales",
		},
		{
			// ONSPD sits behind a free registration at
			// https://geoportal.statistics.gov.uk, so it cannot be fetched
			// directly. Download the archive by hand and extract it under
			// onspd/ in the raw directory; the processor reads the
			// Data/multi_csv split.
			Name:        "onspd",
			Filename:    "ONSPD_NOV_2024_UK.zip",
			Description: "ONS Postcode Directory (manual download, registration required)",
			Manual:      true,
		},
		{
			// The anonymised MOT results run to several GB per year, so they
			// are not fetched automatically. Extract the yearly archive under
			// mot/ in the raw directory.
			Name:        "mot_results",
			Filename:    "dft_test_result_2024.zip",
			Description: "DfT anonymised MOT test results 2024 (manual download, several GB)",
			Manual:      true,
		},
	}
}

// Get returns the source registered under [name].
func Get(name string) (Source, bool) {
	for _, s := range Sources() {
		if s.Name == name {
			return s, true
		}
	}
	return Source{}, false
}

// Filename returns the raw filename a source is stored under, so processors
// and the fetcher agree on names. Unregistered names return "".
func Filename(name string) string {
	s, _ := Get(name)
	return s.Filename
}
