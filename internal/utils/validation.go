package utils

import (
	"fmt"
	"time"

	"github.com/shiftflow-dev/shiftflow/backend/internal/domain"
)

func ValidatePeriod(from time.Time, to time.Time) error {
	if from.After(to) {
		return fmt.Errorf("开始日期不能晚于结束日期")
	}
	return nil
}

// ValidateAssignmentShifts 检查一条排班记录中每一天的班次组合是否合法：
// 同一天同一类型的班次不允许重复，afternoon 不允许和其他班次同一天出现
// 生成器和修改操作本身不会产生非法组合，这里是写库前的最后一道防线
func ValidateAssignmentShifts(assignment *domain.Assignment) error {
	types := make(map[string]map[domain.ShiftType]bool)

	for _, shift := range assignment.Shifts {
		key := domain.DateKey(shift.Date)
		if _, exists := types[key]; !exists {
			types[key] = make(map[domain.ShiftType]bool)
		}
		if types[key][shift.Type] {
			return fmt.Errorf("%s 存在重复的 %s 班次", key, shift.Type)
		}
		types[key][shift.Type] = true
	}

	for key, dayTypes := range types {
		if dayTypes[domain.ShiftAfternoon] && len(dayTypes) > 1 {
			return fmt.Errorf("%s 的 afternoon 班次不能和其他班次同一天出现", key)
		}
	}

	return nil
}
