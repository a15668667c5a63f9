package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftflow-dev/shiftflow/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// RegisterWorker 创建员工数据和对应的登录凭证
// 两次写入不在同一个事务中，先检查用户名是否可用，降低凭证写入失败后留下孤立员工数据的概率
// 唯一索引仍然是最终的防线，检查通过后插入仍可能因并发注册而失败
func (h *Handler) RegisterWorker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name" validate:"required"`
		Username string `json:"username" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, err := h.repository.GetWorkerCredentialByUsername(req.Username); err == nil {
		h.errorResponse(w, r, "用户名已存在")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		h.internalServerError(w, r, err)
		return
	}

	worker := &domain.Worker{
		Name: req.Name,
	}

	if err := h.repository.CreateWorker(worker); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "workers_name_key":
				h.errorResponse(w, r, "员工姓名已存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	credential := &domain.WorkerCredential{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		Name:         req.Name,
		Email:        req.Email,
		WorkerID:     worker.ID,
	}

	if err := h.repository.CreateWorkerCredential(credential); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "worker_credentials_username_key":
				h.errorResponse(w, r, "用户名已存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 通知新员工账号信息
	mailMessage := domain.MailMessage{
		Type: "create_worker",
		To:   credential.Email,
		Data: domain.CreateWorkerMailData{
			Name:     credential.Name,
			Username: credential.Username,
		},
	}

	if err := h.publishMailMessage(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "员工注册成功", worker)
}

func (h *Handler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	worker := &domain.Worker{
		Name: req.Name,
	}

	if err := h.repository.CreateWorker(worker); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "workers_name_key":
				h.errorResponse(w, r, "员工姓名已存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "员工创建成功", worker)
}

func (h *Handler) GetAllWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.repository.GetAllWorkers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工列表成功", workers)
}

func (h *Handler) GetWorkerLogins(w http.ResponseWriter, r *http.Request) {
	credentials, err := h.repository.GetAllWorkerCredentials()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取登录账号列表成功", credentials)
}

func (h *Handler) GetWorker(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)
	h.successResponse(w, r, "获取员工信息成功", worker)
}

func (h *Handler) UpdateWorker(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)

	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	worker.Name = req.Name

	if err := h.repository.UpdateWorker(worker); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "workers_name_key":
				h.errorResponse(w, r, "员工姓名已存在")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新员工信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新员工信息成功", worker)
}

// DeleteWorker 依次删除登录凭证、所有排班记录和员工数据
// 三步不在同一个事务中，中间失败时会留下部分删除的状态，把员工数据放在最后删除以便重试
func (h *Handler) DeleteWorker(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)

	if err := h.repository.DeleteWorkerCredentialByWorkerID(worker.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.repository.DeleteAssignmentsByWorkerID(worker.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.repository.DeleteWorker(worker.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除员工成功", nil)
}

func (h *Handler) GetWorkerSchedule(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)

	shifts, err := h.repository.GetShiftsByWorkerID(worker.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工班次成功", shifts)
}
