package scheduler

import (
	"time"

	"github.com/shiftflow-dev/shiftflow/backend/internal/domain"
)

type Scheduler struct {
	workers []*domain.Worker
	period  domain.Period
}

func New(workers []*domain.Worker, from time.Time, to time.Time) *Scheduler {
	return &Scheduler{
		workers: workers,
		period:  domain.Period{From: from, To: to},
	}
}

// PartitionRoster 把员工名单按固定比例拆成两组：
// 前 ceil(n/2) 人为 A 组（早晚双班），剩下的为 B 组（下午单班）
// 拆分是确定性的，依赖名单的输入顺序，不做随机化
func PartitionRoster(workers []*domain.Worker) ([]*domain.Worker, []*domain.Worker) {
	split := (len(workers) + 1) / 2
	return workers[:split], workers[split:]
}

/**
 * Generate 为整个周期生成所有员工的排班
 * 算法：
 * 		1. 展开周期内的每一天
 * 		2. 把名单拆成 A、B 两组
 * 		3. A 组每人每天两个班次：morning + evening
 * 		4. B 组每人每天一个班次：afternoon
 * 每个员工恰好得到一条排班记录，顺序为 A 组在前 B 组在后
 */
func (s *Scheduler) Generate() ([]domain.Assignment, error) {
	if len(s.workers) == 0 {
		return nil, domain.ErrEmptyRoster
	}

	days := s.period.Days()
	groupA, groupB := PartitionRoster(s.workers)

	assignments := make([]domain.Assignment, 0, len(s.workers))

	for _, worker := range groupA {
		shifts := make([]domain.Shift, 0, len(days)*2)
		for _, day := range days {
			shifts = append(shifts,
				domain.Shift{Date: day, Type: domain.ShiftMorning},
				domain.Shift{Date: day, Type: domain.ShiftEvening},
			)
		}
		assignments = append(assignments, domain.Assignment{
			WorkerID: worker.ID,
			Shifts:   shifts,
		})
	}

	for _, worker := range groupB {
		shifts := make([]domain.Shift, 0, len(days))
		for _, day := range days {
			shifts = append(shifts, domain.Shift{Date: day, Type: domain.ShiftAfternoon})
		}
		assignments = append(assignments, domain.Assignment{
			WorkerID: worker.ID,
			Shifts:   shifts,
		})
	}

	return assignments, nil
}
