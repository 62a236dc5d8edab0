package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/razeghi71/ask/config"
	"github.com/razeghi71/ask/loader"
	"github.com/razeghi71/ask/logger"
	"github.com/razeghi71/ask/metrics"
	"github.com/razeghi71/ask/output"
	"github.com/razeghi71/ask/repl"
	"github.com/razeghi71/ask/session"
	"github.com/razeghi71/ask/table"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, rest, err := config.Load(args, stderr)
	if errors.Is(err, config.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	log := logger.NewWithOutput(stderr, cfg.Log.Level, cfg.Log.Format, cfg.Log.DisableTimestamp)
	if cfg.File != "" {
		log.WithField("file", cfg.File).Debug("using config file")
	}

	ds, source, err := loadDataset(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "load error: %v\n", err)
		return 1
	}

	m := metrics.New()
	sess := session.New(ds, source, session.Options{
		Identifier: cfg.Identifier,
		CacheTTL:   cfg.CacheTTL,
		CacheSize:  cfg.CacheSize,
		Metrics:    m,
		Logger:     log,
	})
	defer sess.Close()

	if cfg.ListColumns {
		for _, col := range ds.Columns() {
			if col == ds.Identifier() {
				fmt.Fprintf(stdout, "%s (identifier)\n", col)
				continue
			}
			fmt.Fprintln(stdout, col)
		}
		return 0
	}

	if len(rest) > 0 {
		return answer(sess, strings.Join(rest, " "), cfg.Format, stdout, stderr)
	}

	if cfg.MetricsAddr != "" {
		serveMetrics(ctx, cfg.MetricsAddr, m, log)
	}
	if cfg.Watch && cfg.Data != "" {
		if err := sess.Watch(ctx, cfg.Data); err != nil {
			log.WithField("err", err).Warn("cannot watch dataset")
		}
	}

	r, err := repl.New(sess, stdout, repl.Options{
		Format:      cfg.Format,
		PreviewRows: cfg.PreviewRows,
		HistoryFile: cfg.HistoryFile,
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if err := r.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func loadDataset(cfg *config.Config) (*table.Dataset, string, error) {
	if cfg.Data == "" {
		ds, err := table.NewDataset(loader.Sample(), cfg.Identifier)
		return ds, "built-in sample", err
	}
	tbl, err := loader.Load(cfg.Data)
	if err != nil {
		return nil, "", err
	}
	ds, err := table.NewDataset(tbl, cfg.Identifier)
	if err != nil {
		return nil, "", fmt.Errorf("invalid dataset %s: %w", cfg.Data, err)
	}
	return ds, cfg.Data, nil
}

func answer(sess *session.Session, question, format string, stdout, stderr io.Writer) int {
	result, err := sess.Ask(question)
	if errors.Is(err, session.ErrEmptyQuery) {
		fmt.Fprintln(stderr, "usage: ask [flags] [question...]")
		fmt.Fprintln(stderr, "error: the question is empty")
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	f, err := output.New(format, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if err := f.Format(result); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func serveMetrics(ctx context.Context, addr string, m *metrics.Metrics, log *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.WithField("addr", addr).Info("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithFields(logrus.Fields{"addr": addr, "err": err}).Error("metrics server failed")
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
