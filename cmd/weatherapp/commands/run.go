package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/belinwu/WeatherApp/app"
	"github.com/belinwu/WeatherApp/homescreen"
	"github.com/belinwu/WeatherApp/mainscreen"
	"github.com/belinwu/WeatherApp/model"
)

type runOptions struct {
	metricsAddr string
	duration    time.Duration
	grant       bool
	location    string
	city        string
}

// run: open both screens and print every state until interrupted.
func runCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the main and home screens and print their states",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.metricsAddr != "" {
				cfg.MetricsAddr = opts.metricsAddr
			}
			return runScreens(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (overrides config)")
	cmd.Flags().DurationVar(&opts.duration, "duration", 0, "stop after this long; 0 runs until interrupted")
	cmd.Flags().BoolVar(&opts.grant, "grant", false, "grant location permission on start")
	cmd.Flags().StringVar(&opts.location, "location", "", "deliver a location fix as lat,lon")
	cmd.Flags().StringVar(&opts.city, "city", "", "city name to display once the home screen is ready")
	return cmd
}

// lockedWriter serializes writes from the printer goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func runScreens(ctx context.Context, w io.Writer, opts runOptions) error {
	out := &lockedWriter{w: w}

	var fix model.Location
	if opts.location != "" {
		loc, err := parseLocation(opts.location)
		if err != nil {
			return err
		}
		fix = loc
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	a, err := app.New(ctx, cfg, app.WithLogger(logger), app.WithRegisterer(reg))
	if err != nil {
		return err
	}
	defer a.Close()

	home, err := a.OpenHome(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for state := range a.Main().Subscribe(gctx) {
			fmt.Fprintf(out, "main: %v\n", state)
		}
		return nil
	})

	g.Go(func() error {
		cityShown := false
		for state := range home.Subscribe(gctx) {
			switch s := state.(type) {
			case homescreen.Error:
				fmt.Fprintf(out, "home: error: %s\n", a.ErrorText(s))
			case homescreen.Success:
				fmt.Fprintf(out, "home: %v\n", s)
				if opts.city != "" && !cityShown {
					cityShown = true
					home.Dispatch(homescreen.DisplayCityName{Name: opts.city})
				}
			default:
				fmt.Fprintf(out, "home: %v\n", s)
			}
		}
		return nil
	})

	g.Go(func() error {
		for available := range a.Main().HasAppUpdate(gctx) {
			if available {
				fmt.Fprintln(out, "main: app update available")
			}
		}
		return nil
	})

	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("serving metrics", slog.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if opts.grant {
		a.Main().Dispatch(mainscreen.GrantPermission{Granted: true})
		a.Main().Dispatch(mainscreen.CheckLocationSettings{Enabled: true})
	}
	if opts.location != "" {
		a.Main().Dispatch(mainscreen.ReceiveLocation{Latitude: fix.Latitude, Longitude: fix.Longitude})
	}

	return g.Wait()
}
