package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cran-montage/cranweb/config"
	"github.com/cran-montage/cranweb/internal/adminapi"
	"github.com/cran-montage/cranweb/internal/app"
	"github.com/cran-montage/cranweb/internal/siteapi"
	"github.com/cran-montage/cranweb/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "cranweb.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and re-create all tables, seed defaults, then exit")
	initcfg  = flag.Bool("initcfg", false, "write a default config file and exit")
)

var gitCommit = "unknown"

func printHelp() {
	if *h {
		fmt.Fprintln(os.Stderr, "cranweb usage: cranweb -h\nOptions:")
		flag.PrintDefaults()
		os.Exit(0)
	}
}

func main() {
	flag.Parse()
	printHelp()

	if *showVer {
		fmt.Printf("cranweb (%s)\n", gitCommit)
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)

	if *initcfg {
		if err := config.WriteDefaultConfig(*conffile); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Println("wrote " + *conffile)
		return
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	webserver.Init(application)
	siteapi.InitRouter(application)
	adminapi.InitRouter(application)

	errc := make(chan error, 1)
	go func() {
		errc <- webserver.Listen()
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		zap.L().Error("web server stopped", zap.Error(err))
	case sig := <-sigc:
		zap.L().Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webserver.Shutdown(ctx); err != nil {
			zap.L().Error("shutdown error", zap.Error(err))
		}
	}
}
