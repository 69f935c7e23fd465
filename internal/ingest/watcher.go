package ingest

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/financeiro-script/nfse-validator/constants"
)

type WatchConfig struct {
	Root        string        // invoices directory to watch
	InitialScan bool          // if true, emit one trigger for files already present
	Debounce    time.Duration // coalesce rapid create/write bursts
}

// StartWatcher watches the invoices directory and emits the path of each
// document that lands in it. The caller decides what a trigger means; the
// validation daemon runs a full batch per burst.
func StartWatcher(ctx context.Context, cfg WatchConfig) (<-chan string, <-chan error, error) {
	if cfg.Root == "" {
		slog.Error("watcher start failed: no root provided")
		return nil, nil, errors.New("no root provided")
	}
	evCh := make(chan string, 256)
	errCh := make(chan error, 1)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("failed to create fsnotify watcher", "error", err)
		return nil, nil, err
	}
	if err := w.Add(cfg.Root); err != nil {
		slog.Error("failed to watch invoices directory", "root", cfg.Root, "error", err)
		_ = w.Close()
		return nil, nil, err
	}

	if cfg.InitialScan {
		paths, err := ListInvoices(cfg.Root, nil)
		if err != nil {
			_ = w.Close()
			return nil, nil, err
		}
		for _, p := range paths {
			select {
			case evCh <- p:
			default:
			}
		}
	}

	go func() {
		defer close(evCh)
		defer close(errCh)
		defer func() { _ = w.Close() }()

		// the timer starts disarmed; pending and evCh are only touched from
		// this goroutine, so cancellation cannot race a debounce flush
		timer := time.NewTimer(time.Hour)
		if !timer.Stop() {
			<-timer.C
		}
		armed := false
		pending := map[string]struct{}{}

		sendPending := func() {
			for p := range pending {
				select {
				case evCh <- p:
				default:
				}
				delete(pending, p)
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
				armed = false
				sendPending()
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if !allowed(e.Name) || e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				pending[e.Name] = struct{}{}
				if cfg.Debounce > 0 {
					if armed && !timer.Stop() {
						<-timer.C
					}
					timer.Reset(cfg.Debounce)
					armed = true
				} else {
					sendPending()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Error("watcher error", "error", err)
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()

	return evCh, errCh, nil
}

func allowed(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return constants.AllowedExt(filepath.Ext(path))
}
