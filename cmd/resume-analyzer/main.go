package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	hconfig "github.com/cloudwego/hertz/pkg/common/config"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"resume-analyzer-go/internal/analyzer"
	"resume-analyzer-go/internal/api/handler"
	"resume-analyzer-go/internal/api/router"
	"resume-analyzer-go/internal/config"
	"resume-analyzer-go/internal/logger"
	"resume-analyzer-go/internal/session"
	"resume-analyzer-go/internal/tracing"
	"resume-analyzer-go/internal/view"
)

func main() {
	// 0. 加载.env（不存在时忽略），解析命令行参数
	_ = godotenv.Load()

	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config file")
	pflag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置失败")
	}

	// 2. 初始化日志
	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	glog.SetLogger(hertzadapter.From(logger.Logger))
	logger.Info().Str("address", cfg.Server.Address).Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. 初始化链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitProvider(ctx, tracing.Config{
			Endpoint:    cfg.Tracing.Endpoint,
			ServiceName: cfg.Tracing.ServiceName,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("初始化链路追踪失败")
		}
		defer func() {
			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()
			if err := shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("关闭链路追踪失败")
			}
		}()
		logger.Info().Str("endpoint", cfg.Tracing.Endpoint).Msg("链路追踪初始化成功")
	}

	// 4. 初始化会话管理器并启动过期清理
	sessionManager := session.NewManager(time.Duration(cfg.Session.TTLMinutes) * time.Minute)
	sessionManager.StartSweeper(ctx, time.Duration(cfg.Session.SweepIntervalMinutes)*time.Minute)
	logger.Info().Int("ttl_minutes", cfg.Session.TTLMinutes).Msg("会话管理器初始化成功")

	// 5. 初始化外部分析服务客户端
	analyzerClient := analyzer.NewClient(
		cfg.Analyzer.BaseURL,
		analyzer.WithTimeout(time.Duration(cfg.Analyzer.TimeoutSeconds)*time.Second),
	)
	logger.Info().Str("base_url", cfg.Analyzer.BaseURL).Msg("分析服务客户端初始化成功")

	// 6. 创建HTTP服务器并加载模板
	// 请求体上限要容得下5MB的简历加表单开销，超限文件由接入层校验给出用户可见的错误
	serverOptions := []hconfig.Option{
		server.WithHostPorts(cfg.Server.Address),
		server.WithMaxRequestBodySize(8 << 20),
	}
	var tracerCfg *hertztracing.Config
	if cfg.Tracing.Enabled {
		tracer, tcfg := hertztracing.NewServerTracer()
		serverOptions = append(serverOptions, tracer)
		tracerCfg = tcfg
	}
	h := server.Default(serverOptions...)
	if tracerCfg != nil {
		h.Use(hertztracing.ServerMiddleware(tracerCfg))
	}

	h.SetFuncMap(view.FuncMap())
	h.LoadHTMLGlob(cfg.Server.TemplateGlob)

	// 7. 注册路由
	router.RegisterRoutes(h, sessionManager, handler.NewPageHandler(), handler.NewAnalysisHandler(analyzerClient))

	// 8. 启动服务器
	go func() {
		logger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器启动")
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	// 9. 等待终止信号，优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
	}
	logger.Info().Msg("优雅退出完成")
}
