package main

import (
	"flag"
	"log"

	"roadmap_learner_backend/internal/app"
	"roadmap_learner_backend/internal/config"
	"roadmap_learner_backend/pkg/configwatcher"
	"roadmap_learner_backend/pkg/logger"

	"go.uber.org/zap"
)

// @title Roadmap Learner API
// @version 1.0
// @description 学习路线与记忆卡片后端服务
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to init app: %v", err)
	}
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		application.Reload(newCfg)
	})

	if err := application.Run(); err != nil {
		logger.Log.Fatal("server exited with error", zap.Error(err))
	}
}
