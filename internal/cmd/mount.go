package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	_ "bazil.org/fuse/fs/fstestutil"
	"github.com/dendrascience/slackfs/internal/config"
	"github.com/dendrascience/slackfs/internal/logging"
	"github.com/dendrascience/slackfs/internal/metrics"
	"github.com/dendrascience/slackfs/remote"
	"github.com/dendrascience/slackfs/slackfs"
	"github.com/dendrascience/slackfs/version"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func runMount(ctx context.Context, mountpoint string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := checkMountpoint(mountpoint); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Sync() //nolint:errcheck

	logger := logging.L().With(zap.String("session", uuid.NewString()))
	logger.Info("slackfs starting", zap.String("version", version.GetFullVersion()))

	client, err := remote.NewSlack(remote.SlackConfig{
		Token:    cfg.Token,
		BaseURL:  cfg.APIURL,
		ProxyURL: cfg.Proxy,
		Logger:   logger.Named("remote"),
	})
	if err != nil {
		return err
	}

	// The catalog is loaded before mounting; failure here is fatal.
	filesystem, err := slackfs.New(ctx, client, slackfs.WithLogger(logger.Named("fs")))
	if err != nil {
		logger.Error("failed to load collections", zap.Error(err))
		return err
	}
	mount := slackfs.NewMount(filesystem)

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, logger)
	}

	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("slackfs"),
		fuse.Subtype("slackfs"),
	)
	if err != nil {
		return fmt.Errorf("mount %s: %w", mountpoint, err)
	}
	defer c.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		logger.Info("received interrupt signal, unmounting", zap.String("mountpoint", mountpoint))
		if err := fuse.Unmount(mountpoint); err != nil {
			logger.Error("unmount failed", zap.Error(err))
		}
	}()

	server := fs.New(c, nil)
	mount.SetServer(server)

	logger.Info("slackfs mounted",
		zap.String("mountpoint", mountpoint),
		zap.Int("collections", filesystem.Catalog().Len()),
	)
	if err := server.Serve(mount); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}

// checkMountpoint requires an existing directory.
func checkMountpoint(mountpoint string) error {
	info, err := os.Stat(mountpoint)
	if err != nil {
		return fmt.Errorf("mountpoint: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("mountpoint %s: %w", mountpoint, errNotDirectory)
	}
	return nil
}

var errNotDirectory = errors.New("not a directory")

func serveMetrics(addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	logger.Info("serving metrics", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", zap.Error(err))
	}
}
