package utils

import (
	"testing"
	"time"

	"github.com/shiftflow-dev/shiftflow/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestValidatePeriod(t *testing.T) {
	assert.NoError(t, ValidatePeriod(date("2024-01-01"), date("2024-01-31")))
	assert.NoError(t, ValidatePeriod(date("2024-01-01"), date("2024-01-01")))
	assert.Error(t, ValidatePeriod(date("2024-01-02"), date("2024-01-01")))
}

func TestValidateAssignmentShifts(t *testing.T) {
	t.Run("早晚双班和下午单班都合法", func(t *testing.T) {
		assignment := &domain.Assignment{
			Shifts: []domain.Shift{
				{Date: date("2024-01-01"), Type: domain.ShiftMorning},
				{Date: date("2024-01-01"), Type: domain.ShiftEvening},
				{Date: date("2024-01-02"), Type: domain.ShiftAfternoon},
			},
		}
		assert.NoError(t, ValidateAssignmentShifts(assignment))
	})

	t.Run("同一天同一类型重复不合法", func(t *testing.T) {
		assignment := &domain.Assignment{
			Shifts: []domain.Shift{
				{Date: date("2024-01-01"), Type: domain.ShiftMorning},
				{Date: date("2024-01-01"), Type: domain.ShiftMorning},
			},
		}
		assert.Error(t, ValidateAssignmentShifts(assignment))
	})

	t.Run("afternoon 不能和其他班次同一天", func(t *testing.T) {
		assignment := &domain.Assignment{
			Shifts: []domain.Shift{
				{Date: date("2024-01-01"), Type: domain.ShiftMorning},
				{Date: date("2024-01-01"), Type: domain.ShiftAfternoon},
			},
		}
		assert.Error(t, ValidateAssignmentShifts(assignment))
	})

	t.Run("按天比较时忽略时分秒", func(t *testing.T) {
		assignment := &domain.Assignment{
			Shifts: []domain.Shift{
				{Date: date("2024-01-01"), Type: domain.ShiftAfternoon},
				{Date: date("2024-01-01").Add(9 * time.Hour), Type: domain.ShiftMorning},
			},
		}
		assert.Error(t, ValidateAssignmentShifts(assignment))
	})
}
