package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/shiftflow-dev/shiftflow/backend/internal/config"
	"github.com/shiftflow-dev/shiftflow/backend/internal/domain"
	"github.com/shiftflow-dev/shiftflow/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	adminOnly := h.RequiredRole([]domain.Role{domain.RoleAdmin})

	h.Mux.Route("/api", func(r chi.Router) {
		// 认证相关
		r.Post("/admin/register", h.RegisterAdmin)
		r.Post("/admin/login", h.AdminLogin)
		r.Post("/worker/login", h.WorkerLogin)
		r.Post("/logout", h.Logout)
		r.Route("/auth/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})

		// 以下 API 必须要在登录后才允许调用
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Route("/workers", func(r chi.Router) {
				r.With(adminOnly).Post("/register", h.RegisterWorker)
				r.With(adminOnly).Post("/", h.CreateWorker)
				r.Get("/", h.GetAllWorkers)
				r.Get("/logins", h.GetWorkerLogins) // 管理后台的账号总览
				r.Route("/{id}", func(r chi.Router) {
					r.Use(h.workerInfo)
					r.Get("/", h.GetWorker)
					r.With(adminOnly).Put("/", h.UpdateWorker)
					r.With(adminOnly).Delete("/", h.DeleteWorker)
				})
			})

			r.With(h.workerInfo).Get("/worker/{id}/schedule", h.GetWorkerSchedule)

			r.Route("/schedules", func(r chi.Router) {
				r.With(adminOnly).Post("/create-auto", h.CreateAutoSchedule)
				r.Get("/", h.GetAllSchedules)
				r.With(adminOnly).Delete("/delete-range", h.DeleteSchedulesInRange)
				r.Route("/{scheduleID}", func(r chi.Router) {
					r.Use(h.schedule)
					r.With(adminOnly).Post("/add-worker", h.AddWorkerToSchedule)
					r.Route("/assignment/{assignmentID}", func(r chi.Router) {
						r.With(adminOnly).Put("/", h.EditAssignment)
						r.With(adminOnly).Delete("/", h.RemoveAssignment)
					})
				})
			})
		})
	})
}
