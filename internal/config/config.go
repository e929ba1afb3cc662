// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/iwvelando/serviceability/pkg/validation"
)

// Configuration holds all configuration for serviceability.
type Configuration struct {
	Logging       LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty"`
	Output        OutputConfig  `yaml:"output,omitempty" json:"output,omitempty"`
	FinancialYear string        `yaml:"financialYear,omitempty" json:"financialYear,omitempty"`
	Assessments   []Assessment  `yaml:"assessments" json:"assessments"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" json:"level,omitempty"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" json:"format,omitempty"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" json:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" json:"format,omitempty"` // pretty, csv, json
}

// Assessment is one borrowing scenario. Amounts are dollars; they become
// cents when the assessment is converted into engine inputs.
type Assessment struct {
	Name                string   `yaml:"name" json:"name"`
	Borrower            Borrower `yaml:"borrower" json:"borrower"`
	Debts               []Debt   `yaml:"debts,omitempty" json:"debts,omitempty"`
	PurchasePrice       *float64 `yaml:"purchasePrice,omitempty" json:"purchasePrice,omitempty"`
	DepositAmount       *float64 `yaml:"depositAmount,omitempty" json:"depositAmount,omitempty"`
	DepositPercent      *float64 `yaml:"depositPercent,omitempty" json:"depositPercent,omitempty"`
	InterestRate        float64  `yaml:"interestRate" json:"interestRate"`
	APRABuffer          *float64 `yaml:"apraBuffer,omitempty" json:"apraBuffer,omitempty"`
	LoanTermYears       int      `yaml:"loanTermYears" json:"loanTermYears"`
	InterestOnly        bool     `yaml:"interestOnly,omitempty" json:"interestOnly,omitempty"`
	ExpectedWeeklyRent  *float64 `yaml:"expectedWeeklyRent,omitempty" json:"expectedWeeklyRent,omitempty"`
	FinancialYear       string   `yaml:"financialYear,omitempty" json:"financialYear,omitempty"`
	State               string   `yaml:"state,omitempty" json:"state,omitempty"`
	FirstHomeBuyer      bool     `yaml:"firstHomeBuyer,omitempty" json:"firstHomeBuyer,omitempty"`
	Investment          bool     `yaml:"investment,omitempty" json:"investment,omitempty"`
	NewBuild            bool     `yaml:"newBuild,omitempty" json:"newBuild,omitempty"`
	VacantLand          bool     `yaml:"vacantLand,omitempty" json:"vacantLand,omitempty"`
	OffThePlan          bool     `yaml:"offThePlan,omitempty" json:"offThePlan,omitempty"`
	ConstructionPercent float64  `yaml:"constructionPercent,omitempty" json:"constructionPercent,omitempty"`
	StressTest          bool     `yaml:"stressTest,omitempty" json:"stressTest,omitempty"`
	Risk                *Risk    `yaml:"risk,omitempty" json:"risk,omitempty"`
}

// Borrower describes the applicants. A partner is present whenever
// partnerGrossIncome is set, even to zero.
type Borrower struct {
	GrossAnnualIncome      float64  `yaml:"grossAnnualIncome" json:"grossAnnualIncome"`
	PartnerGrossIncome     *float64 `yaml:"partnerGrossIncome,omitempty" json:"partnerGrossIncome,omitempty"`
	Dependents             int      `yaml:"dependents,omitempty" json:"dependents,omitempty"`
	LivingExpensesType     string   `yaml:"livingExpensesType,omitempty" json:"livingExpensesType,omitempty"`
	DeclaredLivingExpenses *float64 `yaml:"declaredLivingExpenses,omitempty" json:"declaredLivingExpenses,omitempty"`
}

// Debt is an existing commitment.
type Debt struct {
	Type             string   `yaml:"type" json:"type"`
	Owner            string   `yaml:"owner,omitempty" json:"owner,omitempty"`
	CreditLimit      *float64 `yaml:"creditLimit,omitempty" json:"creditLimit,omitempty"`
	CurrentBalance   float64  `yaml:"currentBalance,omitempty" json:"currentBalance,omitempty"`
	MonthlyRepayment *float64 `yaml:"monthlyRepayment,omitempty" json:"monthlyRepayment,omitempty"`
	InterestRate     *float64 `yaml:"interestRate,omitempty" json:"interestRate,omitempty"`
}

// Risk holds the investment assumptions that enable risk metrics.
type Risk struct {
	MonthlyPropertyExpenses float64 `yaml:"monthlyPropertyExpenses" json:"monthlyPropertyExpenses"`
	CashBuffer              float64 `yaml:"cashBuffer" json:"cashBuffer"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return unmarshal(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r,
// such as an uploaded file.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	validator := validation.ConfigValidator{FinancialYear: c.FinancialYear}
	for _, a := range c.Assessments {
		validator.Assessments = append(validator.Assessments, validation.AssessmentConfig{
			Name:               a.Name,
			PurchasePrice:      a.PurchasePrice,
			DepositAmount:      a.DepositAmount,
			DepositPercent:     a.DepositPercent,
			ExpectedWeeklyRent: a.ExpectedWeeklyRent,
			InterestRate:       a.InterestRate,
			LoanTermYears:      a.LoanTermYears,
			FinancialYear:      a.FinancialYear,
			State:              a.State,
			FirstHomeBuyer:     a.FirstHomeBuyer,
			Investment:         a.Investment,
			HasRisk:            a.Risk != nil,
		})
	}
	return validator.ValidateAll()
}
