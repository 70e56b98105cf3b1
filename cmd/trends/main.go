package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	trends "github.com/RavensCloud/tiktok-trends"
)

func main() {
	dataDir := flag.String("data-dir", "data", "Directory for raw snapshot files")
	docsDir := flag.String("docs-dir", "docs", "Directory for published dashboard artifacts")
	input := flag.String("input", "", "Analyze a snapshot file instead of collecting")
	continuous := flag.Bool("continuous", false, "Keep running on an interval")
	interval := flag.Duration("interval", time.Hour, "Delay between continuous runs")
	force := flag.Bool("force", false, "Analyze and publish even when rankings are unchanged")
	push := flag.Bool("push", false, "Commit and push published artifacts via git")
	repoDir := flag.String("repo", ".", "Git repository root for --push")
	proxyURL := flag.String("proxy", "", "Proxy URL (http/https/socks5)")
	cookies := flag.String("cookies", "", "Path to cookies JSON file")
	topicCount := flag.Int("topics", 5, "Number of latent topics to discover")
	verbose := flag.Bool("verbose", false, "Development logging")
	flag.Parse()

	// Optional .env for cookie paths, proxies, and the like.
	_ = godotenv.Load()

	logger, err := newLogger(*verbose)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	analyzer := trends.NewAnalyzer().
		WithTopicCount(*topicCount).
		WithLogger(logger)
	store := trends.NewStore(*dataDir, *docsDir)
	if err := store.EnsureDirs(); err != nil {
		logger.Fatal("ensure dirs", zap.Error(err))
	}

	// Offline mode: analyze an existing snapshot file and exit.
	if *input != "" {
		snap, err := trends.ReadSnapshot(*input)
		if err != nil {
			logger.Fatal("read snapshot", zap.Error(err))
		}
		report := analyzer.Analyze(snap)
		if err := store.SaveReport(report); err != nil {
			logger.Fatal("save report", zap.Error(err))
		}
		fmt.Printf("Report written to %s\n", *docsDir)
		return
	}

	collector := trends.NewCollector().WithLogger(logger)
	defer collector.Close()

	if *proxyURL != "" {
		if err := collector.SetProxy(*proxyURL); err != nil {
			logger.Fatal("set proxy", zap.Error(err))
		}
	}

	if *cookies != "" {
		if err := collector.LoadCookies(*cookies); err != nil {
			logger.Fatal("load cookies", zap.Error(err))
		}
	} else if err := collector.InitSession(); err != nil {
		logger.Fatal("init session", zap.Error(err))
	}

	runner := trends.NewRunner(collector, analyzer, store).
		WithInterval(*interval).
		WithForce(*force).
		WithLogger(logger)
	if *push {
		runner.WithPublisher(trends.NewGitPublisher(*repoDir).WithLogger(logger))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *continuous {
		if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Fatal("run", zap.Error(err))
		}
		return
	}

	published, err := runner.RunOnce(ctx)
	if err != nil {
		logger.Fatal("run", zap.Error(err))
	}
	if published {
		fmt.Printf("Report written to %s\n", *docsDir)
	} else {
		fmt.Println("Rankings unchanged, no report written")
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
