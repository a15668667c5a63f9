package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shiftflow-dev/shiftflow/backend/internal/domain"
)

func (r *Repository) InsertSchedule(schedule *domain.Schedule) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO schedules (title, period_from, period_to)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	if err := tx.QueryRowContext(ctx, query, schedule.Title, schedule.Period.From, schedule.Period.To).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.Version); err != nil {
		return err
	}

	for i := range schedule.Assignments {
		assignment := &schedule.Assignments[i]

		query := `
			INSERT INTO assignments (schedule_id, worker_id)
			VALUES ($1, $2)
			RETURNING id
		`

		if err := tx.QueryRowContext(ctx, query, schedule.ID, assignment.WorkerID).Scan(&assignment.ID); err != nil {
			return err
		}

		for j := range assignment.Shifts {
			shift := &assignment.Shifts[j]

			query := `
				INSERT INTO shifts (assignment_id, shift_date, shift_type)
				VALUES ($1, $2, $3)
				RETURNING id
			`

			if err := tx.QueryRowContext(ctx, query, assignment.ID, shift.Date, shift.Type).Scan(&shift.ID); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

const scheduleColumns = `
	SELECT
		sch.id,
		sch.title,
		sch.period_from,
		sch.period_to,
		sch.created_at,
		sch.version,
		a.id,
		a.worker_id,
		w.name,
		s.id,
		s.shift_date,
		s.shift_type
	FROM schedules sch
	LEFT JOIN assignments a ON a.schedule_id = sch.id
	LEFT JOIN workers w ON w.id = a.worker_id
	LEFT JOIN shifts s ON s.assignment_id = a.id
`

// scanSchedules 把 LEFT JOIN 展开的行重新组装成排班表聚合
// 行按 (schedule, assignment, shift) 的 id 升序排列，组装时保持这个顺序
func scanSchedules(rows *sql.Rows) ([]*domain.Schedule, error) {
	schedules := make([]*domain.Schedule, 0)

	var curSchedule *domain.Schedule
	var curAssignment *domain.Assignment

	for rows.Next() {
		var row struct {
			scheduleID   int64
			title        sql.NullString
			periodFrom   time.Time
			periodTo     time.Time
			createdAt    time.Time
			version      int32
			assignmentID sql.NullInt64
			workerID     sql.NullInt64
			workerName   sql.NullString
			shiftID      sql.NullInt64
			shiftDate    sql.NullTime
			shiftType    sql.NullString
		}

		dst := []any{
			&row.scheduleID,
			&row.title,
			&row.periodFrom,
			&row.periodTo,
			&row.createdAt,
			&row.version,
			&row.assignmentID,
			&row.workerID,
			&row.workerName,
			&row.shiftID,
			&row.shiftDate,
			&row.shiftType,
		}

		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if curSchedule == nil || curSchedule.ID != row.scheduleID {
			schedules = append(schedules, &domain.Schedule{
				ID:          row.scheduleID,
				Title:       row.title.String,
				Period:      domain.Period{From: row.periodFrom, To: row.periodTo},
				Assignments: make([]domain.Assignment, 0),
				CreatedAt:   row.createdAt,
				Version:     row.version,
			})
			curSchedule = schedules[len(schedules)-1]
			curAssignment = nil
		}

		if !row.assignmentID.Valid {
			// 这个排班表没有任何排班记录，只有直接写库才会造成这种状态
			continue
		}

		if curAssignment == nil || curAssignment.ID != row.assignmentID.Int64 {
			curSchedule.Assignments = append(curSchedule.Assignments, domain.Assignment{
				ID:         row.assignmentID.Int64,
				WorkerID:   row.workerID.Int64,
				WorkerName: row.workerName.String,
				Shifts:     make([]domain.Shift, 0),
			})
			curAssignment = &curSchedule.Assignments[len(curSchedule.Assignments)-1]
		}

		if !row.shiftID.Valid {
			// 这条排班记录的所有班次都被清空了（整个周期都是休息日），这是允许的
			continue
		}

		curAssignment.Shifts = append(curAssignment.Shifts, domain.Shift{
			ID:   row.shiftID.Int64,
			Date: row.shiftDate.Time,
			Type: domain.ShiftType(row.shiftType.String),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *Repository) GetScheduleByID(id int64) (*domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := scheduleColumns + `
		WHERE sch.id = $1
		ORDER BY a.id, s.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules, err := scanSchedules(rows)
	if err != nil {
		return nil, err
	}

	if len(schedules) == 0 {
		return nil, sql.ErrNoRows
	}

	return schedules[0], nil
}

func (r *Repository) GetAllSchedules() ([]*domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := scheduleColumns + `
		ORDER BY sch.id, a.id, s.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSchedules(rows)
}

func (r *Repository) ScheduleExistsByPeriod(from time.Time, to time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM schedules WHERE period_from = $1 AND period_to = $2)
	`

	isExists := false
	if err := r.dbpool.QueryRowContext(ctx, query, from, to).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}

// bumpScheduleVersion 在事务中推进排班表的版本号
// 版本不匹配时返回 sql.ErrNoRows，调用方以此实现乐观并发控制
func bumpScheduleVersion(ctx context.Context, tx *sql.Tx, schedule *domain.Schedule) error {
	query := `
		UPDATE schedules SET version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`

	return tx.QueryRowContext(ctx, query, schedule.ID, schedule.Version).Scan(&schedule.Version)
}

func (r *Repository) InsertAssignment(schedule *domain.Schedule, assignment *domain.Assignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := bumpScheduleVersion(ctx, tx, schedule); err != nil {
		return err
	}

	query := `
		INSERT INTO assignments (schedule_id, worker_id)
		VALUES ($1, $2)
		RETURNING id
	`

	if err := tx.QueryRowContext(ctx, query, schedule.ID, assignment.WorkerID).Scan(&assignment.ID); err != nil {
		return err
	}

	for i := range assignment.Shifts {
		shift := &assignment.Shifts[i]

		query := `
			INSERT INTO shifts (assignment_id, shift_date, shift_type)
			VALUES ($1, $2, $3)
			RETURNING id
		`

		if err := tx.QueryRowContext(ctx, query, assignment.ID, shift.Date, shift.Type).Scan(&shift.ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// ReplaceAssignmentShifts 把一条排班记录的班次整体替换成内存中修改后的状态
// 先删后插在同一个事务中完成，失败时库中的聚合保持原样
func (r *Repository) ReplaceAssignmentShifts(schedule *domain.Schedule, assignment *domain.Assignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := bumpScheduleVersion(ctx, tx, schedule); err != nil {
		return err
	}

	query := `DELETE FROM shifts WHERE assignment_id = $1`
	if _, err := tx.ExecContext(ctx, query, assignment.ID); err != nil {
		return err
	}

	for i := range assignment.Shifts {
		shift := &assignment.Shifts[i]

		query := `
			INSERT INTO shifts (assignment_id, shift_date, shift_type)
			VALUES ($1, $2, $3)
			RETURNING id
		`

		if err := tx.QueryRowContext(ctx, query, assignment.ID, shift.Date, shift.Type).Scan(&shift.ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteAssignment(schedule *domain.Schedule, assignmentID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := bumpScheduleVersion(ctx, tx, schedule); err != nil {
		return err
	}

	query := `DELETE FROM assignments WHERE id = $1 AND schedule_id = $2`
	if _, err := tx.ExecContext(ctx, query, assignmentID, schedule.ID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// DeleteSchedulesInRange 只删除整个周期都落在 [from, to] 内的排班表
// 部分重叠的排班表不会被删除
func (r *Repository) DeleteSchedulesInRange(from time.Time, to time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM schedules WHERE period_from >= $1 AND period_to <= $2
	`

	result, err := r.dbpool.ExecContext(ctx, query, from, to)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *Repository) DeleteAssignmentsByWorkerID(workerID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM assignments WHERE worker_id = $1
	`

	if _, err := r.dbpool.ExecContext(ctx, query, workerID); err != nil {
		return err
	}

	return nil
}

// GetShiftsByWorkerID 汇总一个员工在所有排班表中的班次
// 按排班表的顺序拼接，不做全局的日期重排
func (r *Repository) GetShiftsByWorkerID(workerID int64) ([]domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT s.id, s.shift_date, s.shift_type
		FROM shifts s
		JOIN assignments a ON a.id = s.assignment_id
		WHERE a.worker_id = $1
		ORDER BY a.schedule_id, s.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]domain.Shift, 0)
	for rows.Next() {
		var shift domain.Shift
		if err := rows.Scan(&shift.ID, &shift.Date, &shift.Type); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}
