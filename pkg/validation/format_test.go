package validation

import (
	"strings"
	"testing"

	"github.com/iwvelando/serviceability/pkg/constants"
)

func TestValidateOutputFormat(t *testing.T) {
	valid := []string{constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON}
	for _, format := range valid {
		if err := ValidateOutputFormat(format); err != nil {
			t.Errorf("ValidateOutputFormat(%q) unexpected error: %v", format, err)
		}
	}

	invalid := []string{"", "PRETTY", "Csv", "JSON", " pretty ", "prettyprint", "yaml", "table", "csv\n"}
	for _, format := range invalid {
		t.Run("rejects "+strings.TrimSpace(format), func(t *testing.T) {
			err := ValidateOutputFormat(format)
			if err == nil {
				t.Fatalf("ValidateOutputFormat(%q) expected error", format)
			}
			for _, name := range valid {
				if !strings.Contains(err.Error(), name) {
					t.Errorf("error %q should list supported format %q", err.Error(), name)
				}
			}
		})
	}
}
