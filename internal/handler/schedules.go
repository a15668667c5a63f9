package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftflow-dev/shiftflow/backend/internal/domain"
	"github.com/shiftflow-dev/shiftflow/backend/internal/scheduler"
	"github.com/shiftflow-dev/shiftflow/backend/internal/utils"
)

const dateLayout = "2006-01-02"

// CreateAutoSchedule 根据当前全部员工自动生成排班表
func (h *Handler) CreateAutoSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
		From  string `json:"from" validate:"required,datetime=2006-01-02"`
		To    string `json:"to" validate:"required,datetime=2006-01-02"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	from, _ := time.Parse(dateLayout, req.From)
	to, _ := time.Parse(dateLayout, req.To)

	if err := utils.ValidatePeriod(from, to); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	exists, err := h.repository.ScheduleExistsByPeriod(from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if exists {
		h.errorResponse(w, r, domain.ErrDuplicateSchedule.Error())
		return
	}

	workers, err := h.repository.GetAllWorkers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	assignments, err := scheduler.New(workers, from, to).Generate()
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyRoster):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("Schedule for %s to %s", req.From, req.To)
	}

	schedule := &domain.Schedule{
		Title:       title,
		Period:      domain.Period{From: from, To: to},
		Assignments: assignments,
	}

	if err := h.repository.InsertSchedule(schedule); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "schedules_period_from_period_to_key":
				h.errorResponse(w, r, domain.ErrDuplicateSchedule.Error())
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建排班表成功", schedule)
}

func (h *Handler) GetAllSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.repository.GetAllSchedules()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取排班表列表成功", schedules)
}

// AddWorkerToSchedule 为已有排班表追加一名员工，默认整个周期都排下午班
func (h *Handler) AddWorkerToSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	var req struct {
		WorkerID int64 `json:"workerID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, err := h.repository.GetWorkerByID(req.WorkerID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "员工不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	assignment, err := schedule.AddWorker(req.WorkerID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateWorker):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := utils.ValidateAssignmentShifts(assignment); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.InsertAssignment(schedule, assignment); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "排班表已被修改，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "添加员工到排班表成功", assignment)
}

// EditAssignment 修改某条排班记录：可以清空某一天，也可以把某一天改成指定班次
func (h *Handler) EditAssignment(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	assignmentID, err := strconv.ParseInt(chi.URLParam(r, "assignmentID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "排班记录编号不合法")
		return
	}

	var req struct {
		RemoveAllShiftsOnDate *string `json:"removeAllShiftsOnDate" validate:"omitempty,datetime=2006-01-02"`
		EditShiftDate         *string `json:"editShiftDate" validate:"omitempty,datetime=2006-01-02"`
		NewShiftType          *string `json:"newShiftType" validate:"omitempty,oneof=morning afternoon evening Holiday"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	assignment, err := schedule.Assignment(assignmentID)
	if err != nil {
		h.errorResponse(w, r, "排班记录不存在")
		return
	}

	if req.RemoveAllShiftsOnDate != nil {
		date, _ := time.Parse(dateLayout, *req.RemoveAllShiftsOnDate)
		if _, err := schedule.RemoveAssignmentDay(assignmentID, date); err != nil {
			h.errorResponse(w, r, "排班记录不存在")
			return
		}
	}

	if req.EditShiftDate != nil && req.NewShiftType != nil {
		date, _ := time.Parse(dateLayout, *req.EditShiftDate)
		if _, err := schedule.EditAssignmentDay(assignmentID, date, domain.ShiftType(*req.NewShiftType)); err != nil {
			h.errorResponse(w, r, "排班记录不存在")
			return
		}
	}

	if err := utils.ValidateAssignmentShifts(assignment); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.ReplaceAssignmentShifts(schedule, assignment); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "排班表已被修改，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "修改排班记录成功", assignment)
}

func (h *Handler) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	assignmentID, err := strconv.ParseInt(chi.URLParam(r, "assignmentID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "排班记录编号不合法")
		return
	}

	if err := schedule.RemoveAssignment(assignmentID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "排班记录不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.DeleteAssignment(schedule, assignmentID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "排班表已被修改，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "删除排班记录成功", nil)
}

// DeleteSchedulesInRange 删除完全落在给定日期范围内的排班表
func (h *Handler) DeleteSchedulesInRange(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
	if err != nil {
		h.errorResponse(w, r, "开始日期格式不合法")
		return
	}

	to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
	if err != nil {
		h.errorResponse(w, r, "结束日期格式不合法")
		return
	}

	if err := utils.ValidatePeriod(from, to); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	deleted, err := h.repository.DeleteSchedulesInRange(from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除排班表成功", map[string]int64{"deletedCount": deleted})
}
