package domain

import "errors"

var (
	ErrEmptyRoster       = errors.New("员工名单为空")
	ErrDuplicateWorker   = errors.New("该员工已在排班表中")
	ErrDuplicateSchedule = errors.New("该时间段的排班表已存在")
	ErrNotFound          = errors.New("记录不存在")
)
