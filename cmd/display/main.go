package main

import (
	"flag"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/Lry0305/insurtech-insight/internal/config"
	"github.com/Lry0305/insurtech-insight/internal/display"
	"github.com/Lry0305/insurtech-insight/internal/export"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 是服务的名称
	Name string = "display"
	// Version 是服务的版本号
	Version string
	// flagconf 是配置文件的路径命令行参数
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)

	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		panic(err)
	}

	// 展示服务直接消费批次分析导出的表文件
	table, err := export.ReadTableJSON(cfg.Output.JSONFile)
	if err != nil {
		panic(err)
	}

	svc := display.NewService(table, cfg.Analysis, logger)
	httpSrv := display.NewHTTPServer(cfg.Server, svc)

	app := kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Logger(logger),
		kratos.Server(httpSrv),
	)
	if err := app.Run(); err != nil {
		panic(err)
	}
}
