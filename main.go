package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"pocketledger/catalog"
	"pocketledger/config"
	"pocketledger/database"
	"pocketledger/ledger"
	"pocketledger/ledger/memstore"
	"pocketledger/middleware"
	"pocketledger/report"
	"pocketledger/router"

	"github.com/joho/godotenv"
)

// @title 记账账本 API
// @version 1.0
// @description 收支记录、钱包余额与统计报表
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var (
	configFile  string
	port        string
	showVersion bool
	issueToken  string
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
	flag.StringVar(&issueToken, "issue-token", "", "为指定用户 ID 签发访问令牌后退出")
}

type backend struct {
	store   ledger.Store
	reports report.Source
	catalog catalog.Source
}

func openBackend(cfg *config.Config) (*backend, error) {
	if cfg.Database.Driver == "memory" {
		log.Printf("使用内存存储，数据不会持久化")
		s := memstore.New()
		return &backend{store: s, reports: s, catalog: s}, nil
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	s := database.NewStore(db)
	return &backend{store: s, reports: s, catalog: database.NewCatalogSource(db)}, nil
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("记账账本 v1.0.0")
		return
	}

	// .env 不存在时忽略
	if err := godotenv.Load(); err == nil {
		log.Printf("已加载 .env")
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化 JWT
	middleware.InitJWT(cfg)

	if issueToken != "" {
		userID, err := strconv.ParseUint(issueToken, 10, 32)
		if err != nil || userID == 0 {
			log.Fatalf("无效的用户 ID: %s", issueToken)
		}
		token, err := middleware.GenerateToken(uint(userID), "user"+issueToken, cfg.JWT.ExpireTime)
		if err != nil {
			log.Fatalf("签发令牌失败: %v", err)
		}
		fmt.Println(token)
		return
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	config.PrintConfig()

	b, err := openBackend(cfg)
	if err != nil {
		log.Fatalf("存储初始化失败: %v", err)
	}

	cat := catalog.New(b.catalog, cfg.Catalog.CacheTTL())
	engine := ledger.NewEngine(b.store,
		ledger.WithLocation(cfg.Ledger.Location),
		ledger.WithZeroBalancePruning(cfg.Ledger.PruneZeroBalances),
	)
	reports := report.NewService(b.reports, cat, report.WithLocation(cfg.Ledger.Location))

	r := router.SetupRouter(cfg, router.Deps{
		Engine:  engine,
		Reports: reports,
		Catalog: cat,
	})

	log.Printf("==========================================")
	log.Printf("  记账账本已启动")
	log.Printf("==========================================")
	log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Printf("  API接口:  http://localhost%s/api/v1/", cfg.Server.Port)
	log.Printf("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
