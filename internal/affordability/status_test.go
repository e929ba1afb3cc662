package affordability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		classify func(float64) Status
		value    float64
		expected Status
	}{
		{"DSR at green limit", ClassifyDSR, 35.0, StatusGreen},
		{"DSR just above green", ClassifyDSR, 35.01, StatusAmber},
		{"DSR at amber limit", ClassifyDSR, 50.0, StatusAmber},
		{"DSR just above amber", ClassifyDSR, 50.01, StatusRed},
		{"LSR at green limit", ClassifyLSR, 28.0, StatusGreen},
		{"LSR just above green", ClassifyLSR, 28.01, StatusAmber},
		{"LSR at amber limit", ClassifyLSR, 35.0, StatusAmber},
		{"LSR just above amber", ClassifyLSR, 35.01, StatusRed},
		{"DTI at green limit", ClassifyDTI, 5.0, StatusGreen},
		{"DTI above green", ClassifyDTI, 5.1, StatusAmber},
		{"DTI at amber limit", ClassifyDTI, 6.0, StatusAmber},
		{"DTI above amber", ClassifyDTI, 6.1, StatusRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.classify(tt.value))
		})
	}
}

func TestOverallStatus(t *testing.T) {
	assert.Equal(t, StatusGreen, OverallStatus(100, StatusGreen, StatusGreen, StatusGreen))
	assert.Equal(t, StatusAmber, OverallStatus(100, StatusGreen, StatusAmber, StatusGreen))
	assert.Equal(t, StatusRed, OverallStatus(100, StatusAmber, StatusGreen, StatusRed))
	assert.Equal(t, StatusRed, OverallStatus(-1, StatusGreen, StatusGreen, StatusGreen), "negative surplus is red")
	assert.Equal(t, StatusGreen, OverallStatus(0, StatusGreen), "zero surplus is not a shortfall")
}

func TestDescribeSeparatesDTIFromShortfall(t *testing.T) {
	dtiRed := Results{DSRStatus: StatusGreen, LSRStatus: StatusAmber, DTIStatus: StatusRed, OverallStatus: StatusRed, DTI: 6.4, MonthlySurplus: 100}
	assert.Contains(t, describe(dtiRed), "debt-to-income ratio of 6.4")

	dtiAmber := Results{DSRStatus: StatusGreen, LSRStatus: StatusGreen, DTIStatus: StatusAmber, OverallStatus: StatusAmber, DTI: 5.5, MonthlySurplus: 100}
	assert.Contains(t, describe(dtiAmber), "debt-to-income ratio of 5.5")

	repaymentRed := Results{DSRStatus: StatusRed, LSRStatus: StatusRed, DTIStatus: StatusRed, OverallStatus: StatusRed, DTI: 7, MonthlySurplus: 100}
	assert.Contains(t, describe(repaymentRed), "Serviceability shortfall")

	repaymentAmber := Results{DSRStatus: StatusAmber, LSRStatus: StatusGreen, DTIStatus: StatusAmber, OverallStatus: StatusAmber, MonthlySurplus: 100}
	assert.Contains(t, describe(repaymentAmber), "limited headroom")

	negative := Results{DSRStatus: StatusGreen, LSRStatus: StatusGreen, DTIStatus: StatusRed, OverallStatus: StatusRed, MonthlySurplus: -1}
	assert.Contains(t, describe(negative), "income after living expenses")

	assert.Contains(t, describe(Results{OverallStatus: StatusGreen}), "Comfortably serviceable")
}
