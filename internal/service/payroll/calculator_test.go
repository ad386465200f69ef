package payroll

import (
	"math"
	"testing"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_ReferenceExample(t *testing.T) {
	c, err := Calculate(CalculationInput{
		BaseSalary:       3000000,
		TotalWorkingDays: 22,
		Attendance: attendance.Summary{
			AbsentDays:     2,
			LateDays:       1,
			PresentDays:    19,
			TotalValidDays: 19,
		},
	})

	require.NoError(t, err)
	assert.InDelta(t, 272727.2727, c.AbsentDeduction, 0.001)
	assert.InDelta(t, 68181.8181, c.LateDeduction, 0.001)
	assert.InDelta(t, 340909.0909, c.Deductions, 0.001)
	assert.Equal(t, 0.0, c.Bonus)
	assert.Equal(t, 150000.0, c.Tax)

	base, days := 3000000.0, 22.0
	want := base - base*0.05 - ((base/days)*2 + (0.5*base/days)*1)
	assert.InDelta(t, want, c.TotalAmount, 1e-6)
	assert.InDelta(t, 2509090.9090, c.TotalAmount, 0.001)
}

func TestCalculate_BonusWindow(t *testing.T) {
	base := CalculationInput{BaseSalary: 1000000, TotalWorkingDays: 22}

	// 21 > 20: bonus granted.
	in := base
	in.Attendance = attendance.Summary{PresentDays: 21, TotalValidDays: 21, AbsentDays: 1}
	c, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, 200000.0, c.Bonus)
	// Tax is flat on the base salary, bonus or not.
	assert.Equal(t, 50000.0, c.Tax)
	assert.InDelta(t, 1000000.0-50000.0-1000000.0/22+200000.0, c.TotalAmount, 1e-6)

	// 20 is not > 20.
	in.Attendance = attendance.Summary{PresentDays: 20, TotalValidDays: 20, AbsentDays: 2}
	c, err = Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.Bonus)
}

func TestCalculate_LateDaysDoNotCountTowardsBonus(t *testing.T) {
	c, err := Calculate(CalculationInput{
		BaseSalary:       1000000,
		TotalWorkingDays: 20,
		Attendance:       attendance.Summary{LateDays: 20},
	})

	require.NoError(t, err)
	assert.Equal(t, 0.0, c.Bonus)
	assert.InDelta(t, 500000.0, c.LateDeduction, 1e-6)
}

func TestCalculate_NegativeTotalIsKept(t *testing.T) {
	c, err := Calculate(CalculationInput{
		BaseSalary:       1000000,
		TotalWorkingDays: 10,
		Attendance:       attendance.Summary{AbsentDays: 12},
	})

	require.NoError(t, err)
	assert.Less(t, c.TotalAmount, 0.0)
	assert.InDelta(t, 1000000-50000-1200000, c.TotalAmount, 1e-6)
}

func TestCalculate_RejectsInvalidInput(t *testing.T) {
	cases := map[string]CalculationInput{
		"zero working days": {BaseSalary: 1000000, TotalWorkingDays: 0},
		"negative days":     {BaseSalary: 1000000, TotalWorkingDays: -1},
		"zero salary":       {BaseSalary: 0, TotalWorkingDays: 22},
		"negative salary":   {BaseSalary: -5, TotalWorkingDays: 22},
		"NaN salary":        {BaseSalary: math.NaN(), TotalWorkingDays: 22},
		"infinite salary":   {BaseSalary: math.Inf(1), TotalWorkingDays: 22},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Calculate(in)
			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
		})
	}
}
