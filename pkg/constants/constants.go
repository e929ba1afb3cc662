// Package constants provides shared constants for the serviceability toolkit.
package constants

// Calendar constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// WeeksPerYear is the number of weeks used to annualise weekly amounts
	WeeksPerYear = 52

	// FortnightsPerYear is the number of fortnights in a year
	FortnightsPerYear = 26

	// QuartersPerYear is the number of quarters in a year
	QuartersPerYear = 4

	// FinancialYearStartMonth is the month (July) an Australian financial year begins
	FinancialYearStartMonth = 7
)

// Money and precision constants
const (
	// CentsPerDollar converts between dollars and integer cents
	CentsPerDollar = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DecimalPrecision is the number of fractional digits kept in intermediate
	// divisions and powers before the final cent rounding
	DecimalPrecision = 24
)

// Serviceability policy constants
const (
	// DefaultAPRABuffer is the serviceability buffer added to the nominal rate
	DefaultAPRABuffer = 3.0

	// DefaultDepositPercent applies when neither a deposit amount nor a percent is given
	DefaultDepositPercent = 20.0

	// CreditCardAssessmentPercent is the monthly commitment assumed per dollar of card limit
	CreditCardAssessmentPercent = 3.0

	// MaxBorrowingPrecisionCents is the search window at which the borrowing search stops ($100)
	MaxBorrowingPrecisionCents int64 = 10000

	// MaxBorrowingIterations bounds the borrowing search regardless of precision
	MaxBorrowingIterations = 200

	// NoLMIMaxLVR is the loan-to-value ratio at or below which no LMI is charged
	NoLMIMaxLVR = 80.0

	// DSRGreenMax and DSRAmberMax bound the debt service ratio statuses
	DSRGreenMax = 35.0
	DSRAmberMax = 50.0

	// LSRGreenMax and LSRAmberMax bound the loan service ratio statuses
	LSRGreenMax = 28.0
	LSRAmberMax = 35.0

	// DTIGreenMax and DTIAmberMax bound the debt-to-income ratio statuses
	DTIGreenMax = 5.0
	DTIAmberMax = 6.0

	// StressAmberFloorCents is the monthly shortfall tolerated before a stress scenario is red (-$500)
	StressAmberFloorCents int64 = -50000
)

// StressRateIncreases are the percentage-point rises applied by stress tests.
var StressRateIncreases = []float64{1.0, 2.0, 3.0}

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// MaxScheduleYears bounds the term of a schedule returned in one response
	MaxScheduleYears = 40
)
