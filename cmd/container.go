package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/compasshq/compass/geo"
	"github.com/compasshq/compass/geo/commute"
	"github.com/compasshq/compass/geo/geocache"
	"github.com/compasshq/compass/geo/geoinfra"
	"github.com/compasshq/compass/internal/observability/metrics"
	"github.com/compasshq/compass/matching/hierarchy"
	"github.com/compasshq/compass/matching/matchsrv"
	"github.com/compasshq/compass/pkg/logx"
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB      *sqlx.DB
	Redis   *redis.Client
	Maps    *geoinfra.MapsClient
	Metrics *metrics.EngineMetrics

	// Geo Services
	GeoCache  *geocache.Cache
	Commute   *commute.Service
	PreFilter *commute.PreFilter

	// Matching Services
	Classifier *hierarchy.Classifier
	Matcher    *matchsrv.Service
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	c.Metrics = metrics.NewEngineMetrics("compass")

	// 1. Redis Connection (local-tier backing store for geocodes)
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr != "" {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASS"),
			DB:       0,
		})
		if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
			logx.Warnf("Failed to connect to Redis: %v", err)
		}
	}

	// 2. Database Connection (durable geocode tier, optional)
	if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, os.Getenv("DB_PORT"), os.Getenv("DB_USER"), os.Getenv("DB_PASS"), os.Getenv("DB_NAME"))

		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			logx.Fatalf("Failed to connect to database: %v", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		c.DB = db
	}

	// 3. Maps Provider
	apiKey := os.Getenv("MAPS_API_KEY")
	if apiKey == "" {
		logx.Warn("MAPS_API_KEY is not set, geocoding and routing will fail")
	}
	c.Maps = geoinfra.NewMapsClient(geoinfra.MapsConfig{
		BaseURL:    os.Getenv("MAPS_BASE_URL"),
		APIKey:     apiKey,
		RatePerSec: envFloat("MAPS_RATE_PER_SEC", 0),
		RateBurst:  envInt("MAPS_RATE_BURST", 0),
	})
}

func (c *Container) initServices() {
	// Durable geocode tier: prefer Postgres when configured, else Redis.
	var store geo.CacheStore
	switch {
	case os.Getenv("GEO_STORE") == "postgres" && c.DB != nil:
		store = geoinfra.NewPostgresStore(c.DB)
	case c.Redis != nil:
		store = geoinfra.NewRedisStore(c.Redis)
	default:
		logx.Warn("No durable geocode store configured, running on the in-memory tier only")
	}

	cacheCfg := geocache.DefaultConfig()
	cacheCfg.LocalCapacity = envInt("GEO_CACHE_CAPACITY", cacheCfg.LocalCapacity)
	c.GeoCache = geocache.New(c.Maps, store, cacheCfg, c.Metrics)

	// Commute stack
	evaluator := commute.NewEvaluator(c.GeoCache, c.Maps)
	scorer := commute.NewScorer(commute.DefaultScorerConfig())
	c.Commute = commute.NewService(evaluator, scorer)

	filterCfg := commute.DefaultFilterConfig()
	filterCfg.MaxConcurrent = envInt("PREFILTER_CONCURRENCY", filterCfg.MaxConcurrent)
	filterCfg.BatchSize = envInt("PREFILTER_BATCH_SIZE", filterCfg.BatchSize)
	c.PreFilter = commute.NewPreFilter(evaluator, filterCfg, c.Metrics)

	// Matching stack
	c.Classifier = hierarchy.NewClassifier()
	c.Matcher = matchsrv.NewService(c.Classifier, hierarchy.NewMatrix(), c.Commute, matchsrv.Config{}, c.Metrics)
}

// Close releases infrastructure connections.
func (c *Container) Close() {
	if c.DB != nil {
		c.DB.Close()
	}
	if c.Redis != nil {
		c.Redis.Close()
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logx.Warnf("Invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return v
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logx.Warnf("Invalid %s=%q, using %g", key, raw, fallback)
		return fallback
	}
	return v
}
