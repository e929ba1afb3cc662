package main

import (
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/iwvelando/serviceability/internal/affordability"
	"github.com/iwvelando/serviceability/internal/config"
	"github.com/iwvelando/serviceability/internal/logging"
	"github.com/iwvelando/serviceability/pkg/constants"
	"github.com/iwvelando/serviceability/pkg/output"
	"github.com/iwvelando/serviceability/pkg/validation"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	financialYear := flag.String("financial-year", "", "financial year override for assessments that name none, e.g. 2024-25")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *financialYear != "" {
		conf.FinancialYear = *financialYear
	}

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	engine := affordability.NewEngine(logger)
	reports, err := engine.AssessAll(conf.Requests())
	if err != nil {
		logger.Fatal("failed to compute assessments",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(reports)
	case constants.OutputFormatCSV:
		if err := output.CsvFormat(reports); err != nil {
			logger.Fatal("failed to write output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(reports); err != nil {
			logger.Fatal("failed to write output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}
