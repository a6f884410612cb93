package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/CreativeUnicorns/stationprefs"
	"github.com/CreativeUnicorns/stationprefs/cache"
	"github.com/CreativeUnicorns/stationprefs/encryption"
	"github.com/CreativeUnicorns/stationprefs/internal/config"
	"github.com/CreativeUnicorns/stationprefs/internal/logging"
	"github.com/CreativeUnicorns/stationprefs/notify"
	"github.com/CreativeUnicorns/stationprefs/storage"
	"github.com/CreativeUnicorns/stationprefs/syscheck"
	"github.com/CreativeUnicorns/stationprefs/temporal"
)

// app is everything a command needs, opened from configuration.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *stationprefs.Store
	closers []io.Closer
}

func openApp(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	logger, logCloser, err := logging.New(logging.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		File:      cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
		Stderr:    opts.stderr,
	})
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	st, err := storage.Open(ctx, storage.Config{
		Driver:         cfg.Storage.Driver,
		DSN:            cfg.Storage.DSN,
		DynamoTable:    cfg.Storage.DynamoDB.Table,
		DynamoRegion:   cfg.Storage.DynamoDB.Region,
		DynamoEndpoint: cfg.Storage.DynamoDB.Endpoint,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	a.closers = append(a.closers, st)

	storeOpts := []stationprefs.Option{
		stationprefs.WithStorage(st),
		stationprefs.WithLogger(logger),
		stationprefs.WithCacheTTL(cfg.Cache.TTL),
		stationprefs.WithProductLabel(cfg.ProductLabel),
		stationprefs.WithSystemChecker(syscheck.NewCommand(cfg.SystemCheck.Command)),
		stationprefs.WithServerProbe(syscheck.NewHTTPProbe(cfg.SystemCheck.ProbeTimeout)),
	}

	c, err := cache.Open(cache.Config{
		Driver: cfg.Cache.Driver,
		Redis: cache.RedisOptions{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
		},
	})
	if err != nil {
		logger.Warn("Cache disabled", "driver", cfg.Cache.Driver, "error", err)
	} else if c != nil {
		a.closers = append(a.closers, c)
		storeOpts = append(storeOpts, stationprefs.WithCache(c))
	}

	n, err := notify.Open(notify.Config{
		Driver:       cfg.Notify.Driver,
		RedisAddr:    cfg.Notify.Redis.Addr,
		RedisChannel: cfg.Notify.Redis.Channel,
		KafkaBrokers: cfg.Notify.Kafka.Brokers,
		KafkaTopic:   cfg.Notify.Kafka.Topic,
	}, logger)
	if err != nil {
		logger.Warn("Change notifications disabled", "driver", cfg.Notify.Driver, "error", err)
	} else if n != nil {
		a.closers = append(a.closers, n)
		storeOpts = append(storeOpts, stationprefs.WithNotifier(n))
	}

	if os.Getenv(encryption.EnvKeyName) != "" {
		enc, err := stationprefs.NewEncryptionAdapter()
		if err != nil {
			a.Close()
			return nil, err
		}
		storeOpts = append(storeOpts, stationprefs.WithEncryption(enc))
	}

	a.store = stationprefs.New(storeOpts...)

	if err := a.applyTimezone(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// applyTimezone makes the configured zone, or else the stored timezone
// preference, the default for local time conversions.
func (a *app) applyTimezone(ctx context.Context) error {
	zone := a.cfg.Timezone
	if zone == "" {
		stored, err := a.store.GetTimezone(ctx)
		if err != nil {
			return err
		}
		zone = stored
	}
	if err := temporal.SetDefaultTimezone(zone); err != nil {
		if a.cfg.Timezone != "" {
			return err
		}
		a.logger.Warn("Ignoring stored timezone", "timezone", zone, "error", err)
	}
	return nil
}

// Close releases resources in reverse order of opening.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
