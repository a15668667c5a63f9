package seed

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftflow-dev/shiftflow/backend/internal/config"
	"github.com/shiftflow-dev/shiftflow/backend/internal/domain"
	"github.com/shiftflow-dev/shiftflow/backend/internal/repository"
	"github.com/shiftflow-dev/shiftflow/backend/internal/scheduler"
	"github.com/shiftflow-dev/shiftflow/backend/internal/utils"
)

// InsertRandomWorkers 插入 n 个随机员工及其登录凭证，返回成功插入的数量
func InsertRandomWorkers(r *repository.Repository, cfg *config.Config, n int) int {
	cnt := 0
	for i := 0; i < n; i++ {
		worker, credential, err := utils.GenerateRandomWorker(cfg.Seed.Worker.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("无法生成随机员工", slog.String("error", err.Error()))
			continue
		}

		if err := r.CreateWorker(worker); err != nil {
			slog.Error("无法插入员工", slog.String("error", err.Error()))
			continue
		}

		credential.WorkerID = worker.ID
		if err := r.CreateWorkerCredential(credential); err != nil {
			slog.Error("无法插入登录凭证", slog.String("error", err.Error()))
			continue
		}

		cnt++
	}

	return cnt
}

// SeedDemoSchedule 用当前全部员工生成给定时间段的演示排班表
func SeedDemoSchedule(r *repository.Repository, from time.Time, to time.Time) {
	if err := utils.ValidatePeriod(from, to); err != nil {
		slog.Error("时间段不合法", slog.String("error", err.Error()))
		return
	}

	workers, err := r.GetAllWorkers()
	if err != nil {
		slog.Error("无法获取员工列表", slog.String("error", err.Error()))
		return
	}

	assignments, err := scheduler.New(workers, from, to).Generate()
	if err != nil {
		slog.Error("无法生成排班", slog.String("error", err.Error()))
		return
	}

	schedule := &domain.Schedule{
		Title:       fmt.Sprintf("Schedule for %s to %s", from.Format("2006-01-02"), to.Format("2006-01-02")),
		Period:      domain.Period{From: from, To: to},
		Assignments: assignments,
	}

	if err := r.InsertSchedule(schedule); err != nil {
		slog.Error("无法插入排班表", slog.String("error", err.Error()))
		return
	}

	slog.Info("插入演示排班表成功", slog.Int64("schedule_id", schedule.ID), slog.Int("assignments", len(schedule.Assignments)))
}
