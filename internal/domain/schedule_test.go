package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestSchedule() *Schedule {
	return &Schedule{
		ID:     1,
		Period: Period{From: date("2024-01-01"), To: date("2024-01-03")},
		Assignments: []Assignment{
			{
				ID:       10,
				WorkerID: 100,
				Shifts: []Shift{
					{ID: 1, Date: date("2024-01-01"), Type: ShiftMorning},
					{ID: 2, Date: date("2024-01-01"), Type: ShiftEvening},
					{ID: 3, Date: date("2024-01-02"), Type: ShiftMorning},
					{ID: 4, Date: date("2024-01-02"), Type: ShiftEvening},
					{ID: 5, Date: date("2024-01-03"), Type: ShiftMorning},
					{ID: 6, Date: date("2024-01-03"), Type: ShiftEvening},
				},
			},
			{
				ID:       11,
				WorkerID: 101,
				Shifts: []Shift{
					{ID: 7, Date: date("2024-01-01"), Type: ShiftAfternoon},
					{ID: 8, Date: date("2024-01-02"), Type: ShiftAfternoon},
					{ID: 9, Date: date("2024-01-03"), Type: ShiftAfternoon},
				},
			},
		},
	}
}

func shiftsOn(a *Assignment, day string) []Shift {
	shifts := []Shift{}
	for _, s := range a.Shifts {
		if DateKey(s.Date) == day {
			shifts = append(shifts, s)
		}
	}
	return shifts
}

func TestAddWorker(t *testing.T) {
	t.Run("为新员工生成整个周期的下午班", func(t *testing.T) {
		s := newTestSchedule()
		a, err := s.AddWorker(102)
		require.NoError(t, err)
		require.Len(t, s.Assignments, 3)

		require.Len(t, a.Shifts, 3)
		for i, day := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
			assert.Equal(t, day, DateKey(a.Shifts[i].Date))
			assert.Equal(t, ShiftAfternoon, a.Shifts[i].Type)
		}
	})

	t.Run("重复加入同一个员工返回错误且不产生新记录", func(t *testing.T) {
		s := newTestSchedule()
		_, err := s.AddWorker(100)
		assert.ErrorIs(t, err, ErrDuplicateWorker)
		assert.Len(t, s.Assignments, 2)
	})
}

func TestEditAssignmentDay(t *testing.T) {
	t.Run("早晚双班改成下午班后当天只剩一个班次", func(t *testing.T) {
		s := newTestSchedule()
		a, err := s.EditAssignmentDay(10, date("2024-01-01"), ShiftAfternoon)
		require.NoError(t, err)

		day := shiftsOn(a, "2024-01-01")
		require.Len(t, day, 1)
		assert.Equal(t, ShiftAfternoon, day[0].Type)
		// 其余日期不受影响
		assert.Len(t, shiftsOn(a, "2024-01-02"), 2)
	})

	t.Run("Holiday 清空当天班次且重复调用不报错", func(t *testing.T) {
		s := newTestSchedule()
		a, err := s.EditAssignmentDay(10, date("2024-01-02"), ShiftHoliday)
		require.NoError(t, err)
		assert.Empty(t, shiftsOn(a, "2024-01-02"))

		a, err = s.EditAssignmentDay(10, date("2024-01-02"), ShiftHoliday)
		require.NoError(t, err)
		assert.Empty(t, shiftsOn(a, "2024-01-02"))
	})

	t.Run("morning 不会自动配对 evening，需要第二次调用补齐", func(t *testing.T) {
		s := newTestSchedule()
		a, err := s.EditAssignmentDay(11, date("2024-01-01"), ShiftMorning)
		require.NoError(t, err)
		day := shiftsOn(a, "2024-01-01")
		require.Len(t, day, 1)
		assert.Equal(t, ShiftMorning, day[0].Type)

		// 第二次改成 evening 时保留已有的 morning，两者在同一天共存
		a, err = s.EditAssignmentDay(11, date("2024-01-01"), ShiftEvening)
		require.NoError(t, err)
		day = shiftsOn(a, "2024-01-01")
		require.Len(t, day, 2)
		assert.Equal(t, ShiftMorning, day[0].Type)
		assert.Equal(t, ShiftEvening, day[1].Type)
	})

	t.Run("改成 afternoon 后可以再通过两次修改恢复早晚双班", func(t *testing.T) {
		s := newTestSchedule()
		_, err := s.EditAssignmentDay(10, date("2024-01-01"), ShiftAfternoon)
		require.NoError(t, err)

		_, err = s.EditAssignmentDay(10, date("2024-01-01"), ShiftMorning)
		require.NoError(t, err)
		a, err := s.EditAssignmentDay(10, date("2024-01-01"), ShiftEvening)
		require.NoError(t, err)

		day := shiftsOn(a, "2024-01-01")
		require.Len(t, day, 2)
		assert.Equal(t, ShiftMorning, day[0].Type)
		assert.Equal(t, ShiftEvening, day[1].Type)
	})

	t.Run("重复改成已有的类型不会产生重复班次", func(t *testing.T) {
		s := newTestSchedule()
		a, err := s.EditAssignmentDay(10, date("2024-01-01"), ShiftMorning)
		require.NoError(t, err)

		day := shiftsOn(a, "2024-01-01")
		require.Len(t, day, 2)
		assert.Equal(t, ShiftEvening, day[0].Type)
		assert.Equal(t, ShiftMorning, day[1].Type)
	})

	t.Run("无法识别的班次类型不做任何修改", func(t *testing.T) {
		s := newTestSchedule()
		a, err := s.EditAssignmentDay(10, date("2024-01-01"), ShiftType("night"))
		require.NoError(t, err)
		assert.Len(t, shiftsOn(a, "2024-01-01"), 2)
	})

	t.Run("零值日期不做任何修改", func(t *testing.T) {
		s := newTestSchedule()
		a, err := s.EditAssignmentDay(10, time.Time{}, ShiftAfternoon)
		require.NoError(t, err)
		assert.Len(t, a.Shifts, 6)
	})

	t.Run("排班记录不存在时返回错误", func(t *testing.T) {
		s := newTestSchedule()
		_, err := s.EditAssignmentDay(999, date("2024-01-01"), ShiftAfternoon)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("按天匹配时忽略时分秒", func(t *testing.T) {
		s := newTestSchedule()
		s.Assignments[0].Shifts[0].Date = date("2024-01-01").Add(9 * time.Hour)
		a, err := s.EditAssignmentDay(10, date("2024-01-01"), ShiftAfternoon)
		require.NoError(t, err)
		assert.Len(t, shiftsOn(a, "2024-01-01"), 1)
	})
}

func TestRemoveAssignmentDay(t *testing.T) {
	s := newTestSchedule()
	a, err := s.RemoveAssignmentDay(11, date("2024-01-02"))
	require.NoError(t, err)
	assert.Empty(t, shiftsOn(a, "2024-01-02"))
	assert.Len(t, a.Shifts, 2)

	_, err = s.RemoveAssignmentDay(999, date("2024-01-02"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveAssignment(t *testing.T) {
	s := newTestSchedule()
	require.NoError(t, s.RemoveAssignment(10))
	require.Len(t, s.Assignments, 1)
	assert.Equal(t, int64(11), s.Assignments[0].ID)
	assert.False(t, s.HasWorker(100))

	assert.ErrorIs(t, s.RemoveAssignment(10), ErrNotFound)
}
