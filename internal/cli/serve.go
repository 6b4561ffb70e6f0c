package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowsketch/flowsketch/internal/server"
	"github.com/flowsketch/flowsketch/pkg/pipeline"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 10 * time.Second

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address (overrides config)
	storeKey string // store backend: "memory" or "mongo"
	mongoURI string // mongo connection string
	cacheKey string // cache backend: "file", "redis", or "none"
	redisURL string // redis connection URL
}

// newServeCmd creates the serve command, which runs the HTTP API.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the graph-building HTTP API",
		Long: `Serve runs an HTTP API for building, storing, and rendering
control-flow graphs. Graphs submitted via POST /api/graphs are persisted
in the configured store and can be fetched as JSON, DOT, SVG, or PNG.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default: 127.0.0.1:8080)")
	cmd.Flags().StringVar(&opts.storeKey, "store", "", "store backend: memory (default), mongo")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "mongo connection string")
	cmd.Flags().StringVar(&opts.cacheKey, "cache", "", "cache backend: file (default), redis, none")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "redis connection URL")

	return cmd
}

// runServe builds the runner and store from config plus flag overrides,
// then serves until the context is canceled.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	conf, err := loadConfig()
	if err != nil {
		return err
	}
	applyServeFlags(&conf, opts)

	c, err := openCache(ctx, conf.Cache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	st, err := openStore(ctx, conf.Server)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			logger.Warnf("Closing store: %v", err)
		}
	}()

	srv := server.NewServer(server.Config{Addr: conf.Server.Addr}, runner, st, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Infof("Listening on %s", conf.Server.Addr)
	printInfo("Serving on http://%s", conf.Server.Addr)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// applyServeFlags overlays flag values onto the loaded config.
func applyServeFlags(cfg *Config, opts *serveOpts) {
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.storeKey != "" {
		cfg.Server.Store = opts.storeKey
	}
	if opts.mongoURI != "" {
		cfg.Server.MongoURI = opts.mongoURI
	}
	if opts.cacheKey != "" {
		cfg.Cache.Backend = opts.cacheKey
	}
	if opts.redisURL != "" {
		cfg.Cache.RedisURL = opts.redisURL
	}
}
