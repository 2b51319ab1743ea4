/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/studydesk/internal/adapter/repository"
	"github.com/eslsoft/studydesk/internal/infrastructure/config"
	"github.com/eslsoft/studydesk/internal/infrastructure/database"
	"github.com/eslsoft/studydesk/internal/infrastructure/database/migrate"
	"github.com/eslsoft/studydesk/internal/infrastructure/server"
)

// dbInitCmd creates or extends the schema without touching existing data
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "初始化数据库",
	Long:  "创建缺失的表、列与索引。迁移只做增量变更，不会删除任何已有数据。注意: go-sqlite3 需要 CGO_ENABLED=1 构建。",
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		if err := runMigrations(cmd.Context(), timeout); err != nil {
			return err
		}
		cmd.Printf("数据库迁移完成 (schema version %d)\n", migrate.SchemaVersion)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)
	dbInitCmd.Flags().Duration("timeout", 30*time.Second, "迁移超时时间")
}

// runMigrations applies the additive schema migration regardless of store.auto_migrate.
func runMigrations(ctx context.Context, timeout time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	logger, err := server.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("创建日志失败: %w", err)
	}
	drv, cleanup, err := database.NewDriver(cfg, logger)
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := repository.Open(ctx, drv,
		repository.WithLogger(logger),
		repository.WithAutoMigrate(true),
	); err != nil {
		return fmt.Errorf("执行数据库迁移失败: %w", err)
	}
	return nil
}
