package domain

import "time"

type Worker struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

// WorkerCredential 是员工的登录凭证，与员工数据分开存储
// WorkerID 只是一个引用，删除员工时需要显式地级联删除凭证
type WorkerCredential struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	WorkerID     int64     `json:"workerDataID"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
