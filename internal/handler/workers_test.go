package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shiftflow-dev/shiftflow/backend/internal/config"
	"github.com/shiftflow-dev/shiftflow/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	cfg.Database.TransactionTimeout = 10

	h, err := NewHandler(cfg, repository.NewRepository(cfg, db), nil, nil)
	require.NoError(t, err)
	return h, mock
}

func TestRegisterWorkerDuplicateUsername(t *testing.T) {
	h, mock := newTestHandler(t)

	rows := sqlmock.NewRows([]string{"id", "password_hash", "name", "email", "worker_id", "created_at", "version"}).
		AddRow(1, "$2a$10$aUTaWl3vmXuQFocBkb9Qx.YJPAzNoaAcj2VC5tI45l1Roh24meCgO", "张伟", "zhangwei1@example.com", 1, time.Now(), 1)
	mock.ExpectQuery("SELECT (.+) FROM worker_credentials WHERE username").WillReturnRows(rows)

	body, err := json.Marshal(map[string]string{
		"name":     "李强",
		"username": "zhangwei1",
		"email":    "liqiang@example.com",
		"password": "liqiang-password",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/workers/register", bytes.NewReader(body))
	h.RegisterWorker(rec, req)

	resp := Response{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "用户名已存在", resp.Message)

	// 用户名重复时不会执行任何 INSERT，也就不会留下孤立的员工数据
	assert.NoError(t, mock.ExpectationsWereMet())
}
