package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/umonteiro/toric/pkg/api"
	"github.com/umonteiro/toric/pkg/cache"
	"github.com/umonteiro/toric/pkg/solver"
)

// Store and cache backend names for the serve command.
const (
	storeMemory = "memory"
	storeMongo  = "mongo"

	cacheFile  = "file"
	cacheRedis = "redis"
	cacheNone  = "none"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr        string
	store       string
	mongoURI    string
	mongoDB     string
	cache       string
	redisAddr   string
	cachePrefix string
	jobTimeout  time.Duration
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:       ":8080",
		store:      storeMemory,
		mongoURI:   "mongodb://localhost:27017",
		cache:      cacheFile,
		redisAddr:  "localhost:6379",
		jobTimeout: api.DefaultJobTimeout,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the toric HTTP job API",
		Long: `Run the HTTP API that accepts completion jobs.

Jobs are submitted as JSON to POST /v1/jobs and run in the background;
their status and the completed basis are available under /v1/jobs/{id}.
The memory store suits a single instance, the mongo store lets several
replicas share jobs. Redis can replace the file cache so replicas also
share completed bases.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.store, "store", opts.store, "job store backend: memory, mongo")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", opts.mongoURI, "MongoDB connection URI (store=mongo)")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name (store=mongo)")
	cmd.Flags().StringVar(&opts.cache, "cache", opts.cache, "basis cache backend: file, redis, none")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", opts.redisAddr, "Redis address (cache=redis)")
	cmd.Flags().StringVar(&opts.cachePrefix, "cache-prefix", "", "key prefix isolating this instance in a shared cache")
	cmd.Flags().DurationVar(&opts.jobTimeout, "job-timeout", opts.jobTimeout, "maximum runtime of a single job")

	return cmd
}

// runServe wires the store and cache backends and serves until the
// context is canceled.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	store, closeStore, err := newStore(ctx, opts)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer closeStore()

	backend, err := newServeCache(ctx, opts)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	var keyer cache.Keyer
	if opts.cachePrefix != "" {
		keyer = cache.NewScopedKeyer(nil, opts.cachePrefix)
	}
	runner := solver.NewRunner(backend, keyer, c.Logger)
	defer runner.Close()

	srv := api.NewServer(api.Config{
		Addr:       opts.addr,
		Store:      store,
		Runner:     runner,
		Logger:     c.Logger,
		JobTimeout: opts.jobTimeout,
	})

	host := opts.addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	printInfo("Serving the toric API on %s", opts.addr)
	printDetail("Store: %s · Cache: %s", opts.store, opts.cache)
	printNextStep("Submit a job", fmt.Sprintf(`curl -X POST %s/v1/jobs -d '{"matrix":[[1,5,10,25]],"rhs":[63]}'`, host))
	return srv.ListenAndServe(ctx)
}

// newStore builds the job store backend. The returned func releases the
// store's connections.
func newStore(ctx context.Context, opts serveOpts) (api.Store, func(), error) {
	switch opts.store {
	case storeMemory:
		return api.NewMemoryStore(), func() {}, nil
	case storeMongo:
		store, err := api.NewMongoStore(ctx, api.MongoConfig{
			URI:      opts.mongoURI,
			Database: opts.mongoDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close(context.Background()) }, nil
	}
	return nil, nil, fmt.Errorf("invalid store: %q (must be one of: memory, mongo)", opts.store)
}

// newServeCache builds the basis cache backend for the service.
func newServeCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch opts.cache {
	case cacheNone:
		return cache.NewNullCache(), nil
	case cacheFile:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case cacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr})
	}
	return nil, fmt.Errorf("invalid cache: %q (must be one of: file, redis, none)", opts.cache)
}
