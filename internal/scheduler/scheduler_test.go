package scheduler

import (
	"testing"
	"time"

	"github.com/shiftflow-dev/shiftflow/backend/internal/domain"
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

func makeRoster(names ...string) []*domain.Worker {
	workers := make([]*domain.Worker, len(names))
	for i, name := range names {
		workers[i] = &domain.Worker{ID: int64(i + 1), Name: name}
	}
	return workers
}

func TestPeriodDays(t *testing.T) {
	t.Run("单天区间只展开一天", func(t *testing.T) {
		days := domain.Period{From: date("2024-01-01"), To: date("2024-01-01")}.Days()
		require.Len(t, days, 1)
		assert.Equal(t, date("2024-01-01"), days[0])
	})

	t.Run("区间两端都包含且按升序展开", func(t *testing.T) {
		days := domain.Period{From: date("2024-02-27"), To: date("2024-03-02")}.Days()
		require.Len(t, days, 5)
		assert.Equal(t, date("2024-02-27"), days[0])
		assert.Equal(t, date("2024-02-29"), days[2]) // 2024 是闰年
		assert.Equal(t, date("2024-03-02"), days[4])
	})

	t.Run("起始日期晚于结束日期时返回空序列", func(t *testing.T) {
		days := domain.Period{From: date("2024-01-02"), To: date("2024-01-01")}.Days()
		assert.Empty(t, days)
	})
}

func TestPartitionRoster(t *testing.T) {
	t.Run("五个人拆成三比二", func(t *testing.T) {
		groupA, groupB := PartitionRoster(makeRoster("a", "b", "c", "d", "e"))
		assert.Len(t, groupA, 3)
		assert.Len(t, groupB, 2)
	})

	t.Run("空名单拆成两个空组", func(t *testing.T) {
		groupA, groupB := PartitionRoster(nil)
		assert.Empty(t, groupA)
		assert.Empty(t, groupB)
	})

	t.Run("拆分保持输入顺序", func(t *testing.T) {
		groupA, groupB := PartitionRoster(makeRoster("a", "b", "c"))
		require.Len(t, groupA, 2)
		require.Len(t, groupB, 1)
		assert.Equal(t, "a", groupA[0].Name)
		assert.Equal(t, "b", groupA[1].Name)
		assert.Equal(t, "c", groupB[0].Name)
	})
}

func TestGenerate(t *testing.T) {
	t.Run("空名单返回错误", func(t *testing.T) {
		_, err := New(nil, date("2024-01-01"), date("2024-01-07")).Generate()
		assert.ErrorIs(t, err, domain.ErrEmptyRoster)
	})

	t.Run("每个员工恰好一条排班记录且总班次数符合公式", func(t *testing.T) {
		// days = 7, n = 5: ceil(n/2)*2*days + floor(n/2)*days = 3*14 + 2*7
		assignments, err := New(makeRoster("a", "b", "c", "d", "e"), date("2024-01-01"), date("2024-01-07")).Generate()
		require.NoError(t, err)
		require.Len(t, assignments, 5)

		total := 0
		for _, a := range assignments {
			total += len(a.Shifts)
		}
		assert.Equal(t, 3*2*7+2*7, total)
	})

	t.Run("三人两天的完整场景", func(t *testing.T) {
		assignments, err := New(makeRoster("A", "B", "C"), date("2024-01-01"), date("2024-01-02")).Generate()
		require.NoError(t, err)
		require.Len(t, assignments, 3)

		wantDouble := []domain.Shift{
			{Date: date("2024-01-01"), Type: domain.ShiftMorning},
			{Date: date("2024-01-01"), Type: domain.ShiftEvening},
			{Date: date("2024-01-02"), Type: domain.ShiftMorning},
			{Date: date("2024-01-02"), Type: domain.ShiftEvening},
		}
		wantSingle := []domain.Shift{
			{Date: date("2024-01-01"), Type: domain.ShiftAfternoon},
			{Date: date("2024-01-02"), Type: domain.ShiftAfternoon},
		}

		// A、B 在前组，拿早晚双班；C 在后组，拿下午单班
		assert.Equal(t, int64(1), assignments[0].WorkerID)
		assert.Equal(t, wantDouble, assignments[0].Shifts)
		assert.Equal(t, int64(2), assignments[1].WorkerID)
		assert.Equal(t, wantDouble, assignments[1].Shifts)
		assert.Equal(t, int64(3), assignments[2].WorkerID)
		assert.Equal(t, wantSingle, assignments[2].Shifts)
	})

	t.Run("起始日期晚于结束日期时生成空班次", func(t *testing.T) {
		assignments, err := New(makeRoster("a", "b"), date("2024-01-02"), date("2024-01-01")).Generate()
		require.NoError(t, err)
		require.Len(t, assignments, 2)
		assert.Empty(t, assignments[0].Shifts)
		assert.Empty(t, assignments[1].Shifts)
	})
}
