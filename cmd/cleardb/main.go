package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"campus-connect-server/bootstrap"
	"campus-connect-server/domain/entity"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 命令行参数
	force := flag.Bool("force", false, "跳过确认提示，强制执行清库")
	truncate := flag.Bool("truncate", false, "使用 TRUNCATE（更快，postgres 下级联）")
	tables := flag.String("tables", "", "指定要清空的表，逗号分隔（例如: events,club_members）；留空表示清空所有表")
	flag.Parse()

	// 加载环境变量
	env := bootstrap.LoadEnv()
	logger := bootstrap.NewLogger(env.LogLevel)
	defer logger.Sync() //nolint:errcheck

	// 连接数据库
	db := bootstrap.NewDatabase(env.DatabaseDriver, env.DatabaseURL, logger)

	targetTables := getAllTables(db)
	if *tables != "" {
		targetTables = parseTableNames(*tables)
	}

	// 确认提示
	if !*force {
		fmt.Println("⚠️  警告：此操作将删除数据库中的所有数据！")
		fmt.Println("📊 受影响的表：")
		for _, t := range targetTables {
			fmt.Printf("   - %s\n", t)
		}

		fmt.Print("\n确认执行清库操作？(yes/no): ")
		reader := bufio.NewReader(os.Stdin)
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(strings.ToLower(input))

		if input != "yes" && input != "y" {
			fmt.Println("❌ 操作已取消")
			return
		}
	}

	// 执行清库
	fmt.Println("\n🚀 开始清库...")

	for _, tableName := range targetTables {
		if err := db.Exec(clearStatement(env.DatabaseDriver, tableName, *truncate)).Error; err != nil {
			logger.Error("❌ 清空表失败", zap.String("table", tableName), zap.Error(err))
		} else {
			logger.Info("✅ 已清空表", zap.String("table", tableName))
		}
	}

	fmt.Println("\n🎉 清库操作完成！")
}

// getAllTables 返回所有需要清空的表名
// 注意：顺序很重要！先删除有依赖的表（events / club_members），再删除被依赖的表
func getAllTables(db *gorm.DB) []string {
	models := []interface{}{
		&entity.Event{},
		&entity.ClubMember{},
		&entity.Club{},
		&entity.Profile{},
	}

	tables := make([]string, 0, len(models))
	for _, m := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err == nil {
			tables = append(tables, stmt.Schema.Table)
		}
	}
	return tables
}

// clearStatement TRUNCATE 的级联语法只有 postgres 支持
func clearStatement(driver, table string, truncate bool) string {
	if !truncate {
		return fmt.Sprintf("DELETE FROM %s", table)
	}
	if driver == "mysql" {
		return fmt.Sprintf("TRUNCATE TABLE %s", table)
	}
	return fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)
}

// parseTableNames 解析命令行指定的表名
func parseTableNames(input string) []string {
	parts := strings.Split(input, ",")
	var tables []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tables = append(tables, p)
		}
	}
	return tables
}
