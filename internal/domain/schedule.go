package domain

import (
	"slices"
	"time"
)

type ShiftType string

const (
	ShiftMorning   ShiftType = "morning"
	ShiftAfternoon ShiftType = "afternoon"
	ShiftEvening   ShiftType = "evening"
	// ShiftHoliday 不是一个真实的班次类型，只在修改操作中表示“清空当天的班次”
	ShiftHoliday ShiftType = "Holiday"
)

type Shift struct {
	ID   int64     `json:"id"`
	Date time.Time `json:"date"`
	Type ShiftType `json:"shiftType"`
}

type Assignment struct {
	ID       int64 `json:"id"`
	WorkerID int64 `json:"workerID"`
	// WorkerName 只在查询时由存储层填充，不落库
	WorkerName string  `json:"workerName,omitempty"`
	Shifts     []Shift `json:"shifts"`
}

// Period 是一个按天计算的闭区间，两端都包含在内
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Days 按升序展开区间内的每一个日期，From 晚于 To 时返回空序列
// 调用方需要保证传入的日期已经归一化到同一个时区，否则会出现跨天偏移
func (p Period) Days() []time.Time {
	days := []time.Time{}
	for d := p.From; !d.After(p.To); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

type Schedule struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Period      Period       `json:"period"`
	Assignments []Assignment `json:"assignments"`
	CreatedAt   time.Time    `json:"createdAt"`
	Version     int32        `json:"-"`
}

// DateKey 将日期截断到 YYYY-MM-DD，按天匹配时忽略时分秒
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Assignment 按 id 在聚合内做线性查找
func (s *Schedule) Assignment(assignmentID int64) (*Assignment, error) {
	for i := range s.Assignments {
		if s.Assignments[i].ID == assignmentID {
			return &s.Assignments[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *Schedule) HasWorker(workerID int64) bool {
	for _, a := range s.Assignments {
		if a.WorkerID == workerID {
			return true
		}
	}
	return false
}

// AddWorker 为新加入的员工生成整个周期的默认下午班并追加一条排班记录
// 不会重新平衡已有员工的班次
func (s *Schedule) AddWorker(workerID int64) (*Assignment, error) {
	if s.HasWorker(workerID) {
		return nil, ErrDuplicateWorker
	}

	days := s.Period.Days()
	shifts := make([]Shift, 0, len(days))
	for _, day := range days {
		shifts = append(shifts, Shift{Date: day, Type: ShiftAfternoon})
	}

	s.Assignments = append(s.Assignments, Assignment{
		WorkerID: workerID,
		Shifts:   shifts,
	})

	return &s.Assignments[len(s.Assignments)-1], nil
}

// removeShiftsOn 清除某一天的班次，types 为空时清除当天的全部班次
func (a *Assignment) removeShiftsOn(date time.Time, types ...ShiftType) {
	key := DateKey(date)
	shifts := a.Shifts[:0]
	for _, shift := range a.Shifts {
		if DateKey(shift.Date) != key {
			shifts = append(shifts, shift)
			continue
		}
		if len(types) > 0 && !slices.Contains(types, shift.Type) {
			shifts = append(shifts, shift)
		}
	}
	a.Shifts = shifts
}

// EditAssignmentDay 修改某一天的班次
// morning/evening 可以在同一天共存，但都不能和 afternoon 共存：
// 改成 morning 或 evening 时只清除当天的 afternoon 和同类型班次，保留互补的那个，
// 补上互补班次需要再调用一次；改成 afternoon 时清空当天再插入；
// Holiday 只清空不插入；无法识别的 newType 或零值日期不做任何修改
func (s *Schedule) EditAssignmentDay(assignmentID int64, date time.Time, newType ShiftType) (*Assignment, error) {
	a, err := s.Assignment(assignmentID)
	if err != nil {
		return nil, err
	}

	if date.IsZero() {
		return a, nil
	}

	switch newType {
	case ShiftMorning, ShiftEvening:
		a.removeShiftsOn(date, newType, ShiftAfternoon)
		a.Shifts = append(a.Shifts, Shift{Date: date, Type: newType})
	case ShiftAfternoon:
		a.removeShiftsOn(date)
		a.Shifts = append(a.Shifts, Shift{Date: date, Type: newType})
	case ShiftHoliday:
		a.removeShiftsOn(date)
	}

	return a, nil
}

// RemoveAssignmentDay 清空某一天的所有班次，等价于把这一天标记为休息日
func (s *Schedule) RemoveAssignmentDay(assignmentID int64, date time.Time) (*Assignment, error) {
	a, err := s.Assignment(assignmentID)
	if err != nil {
		return nil, err
	}

	a.removeShiftsOn(date)

	return a, nil
}

// RemoveAssignment 将整条排班记录从排班表中删除
func (s *Schedule) RemoveAssignment(assignmentID int64) error {
	for i := range s.Assignments {
		if s.Assignments[i].ID == assignmentID {
			s.Assignments = append(s.Assignments[:i], s.Assignments[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
