package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/shiftflow-dev/shiftflow/backend/internal/config"
	"github.com/shiftflow-dev/shiftflow/backend/internal/repository"
	"github.com/shiftflow-dev/shiftflow/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var from string
	var to string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机员工, 2: 生成演示排班表)")
	flag.IntVar(&n, "n", 5, "要插入的员工数量")
	flag.StringVar(&from, "from", "", "演示排班表的开始日期 (YYYY-MM-DD)，默认为明天")
	flag.StringVar(&to, "to", "", "演示排班表的结束日期 (YYYY-MM-DD)，默认为开始日期之后的一个月")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
			return
		}

		cnt := seed.InsertRandomWorkers(repo, cfg, n)
		slog.Info("插入员工成功", slog.Int("count", cnt))
	case 2:
		fromDate := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
		if from != "" {
			fromDate, err = time.Parse("2006-01-02", from)
			if err != nil {
				slog.Error("开始日期格式不合法", slog.String("from", from))
				return
			}
		}

		toDate := fromDate.AddDate(0, 1, 0)
		if to != "" {
			toDate, err = time.Parse("2006-01-02", to)
			if err != nil {
				slog.Error("结束日期格式不合法", slog.String("to", to))
				return
			}
		}

		seed.SeedDemoSchedule(repo, fromDate, toDate)
	default:
		slog.Error("指定的操作非法")
	}
}
