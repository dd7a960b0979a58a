package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "nfl-trends-api" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.StorageDriver != StorageDriverPostgres {
		t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
	}
	if cfg.ReadTimeout != 10*time.Second || cfg.WriteTimeout != 15*time.Second {
		t.Fatalf("unexpected timeouts: read=%s write=%s", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if !cfg.DBCircuitEnabled || cfg.DBCircuitFailureCount != 5 || cfg.DBCircuitHalfOpenMaxReq != 2 {
		t.Fatalf("unexpected circuit defaults: %+v", cfg)
	}
	if cfg.DBCircuitOpenTimeout != 15*time.Second {
		t.Fatalf("unexpected circuit open timeout: %s", cfg.DBCircuitOpenTimeout)
	}
	if cfg.DBBootstrapSeed {
		t.Fatalf("expected DBBootstrapSeed=false by default")
	}
	if !cfg.WarmupEnabled || cfg.WarmupTimeout != 30*time.Second {
		t.Fatalf("unexpected warmup defaults: enabled=%v timeout=%s", cfg.WarmupEnabled, cfg.WarmupTimeout)
	}
	if cfg.RegistryWorkers != 4 {
		t.Fatalf("unexpected registry workers: %d", cfg.RegistryWorkers)
	}
}

func TestLoad_StorageDriver(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("memory", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", " Memory ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StorageDriverMemory {
			t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "sqlite")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `x-other=1, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_BetterStackRequiresEndpointWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when BETTERSTACK_ENABLED=true without BETTERSTACK_ENDPOINT")
	}
}

func TestLoad_BetterStackConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "in.logs.betterstack.com")
	t.Setenv("BETTERSTACK_TOKEN", "token-123")
	t.Setenv("BETTERSTACK_TIMEOUT", "4s")
	t.Setenv("BETTERSTACK_MIN_LEVEL", "warn")
	t.Setenv("BETTERSTACK_BATCH_SIZE", "10")
	t.Setenv("BETTERSTACK_FLUSH_INTERVAL", "500ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.BetterStackEnabled {
		t.Fatalf("expected BetterStackEnabled=true")
	}
	if cfg.BetterStackToken != "token-123" {
		t.Fatalf("unexpected BetterStackToken")
	}
	if cfg.BetterStackTimeout != 4*time.Second {
		t.Fatalf("unexpected BetterStackTimeout: %s", cfg.BetterStackTimeout)
	}
	if cfg.BetterStackMinLevel.String() != "warn" {
		t.Fatalf("unexpected BetterStackMinLevel: %s", cfg.BetterStackMinLevel.String())
	}
	if cfg.BetterStackBatchSize != 10 || cfg.BetterStackFlushInterval != 500*time.Millisecond {
		t.Fatalf("unexpected batching: size=%d interval=%s", cfg.BetterStackBatchSize, cfg.BetterStackFlushInterval)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "nfl-trends-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "nfl-trends-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://trends.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://trends.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})

	t.Run("only separators", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " , ,")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for empty CORS origin list")
		}
	})
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}

func TestLoad_DBPoolParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "20")
		t.Setenv("DB_MAX_IDLE_CONNS", "0")
		t.Setenv("DB_CONN_MAX_LIFETIME", "5m")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.DBMaxOpenConns != 20 || cfg.DBMaxIdleConns != 0 || cfg.DBConnMaxLifetime != 5*time.Minute {
			t.Fatalf("unexpected pool config: open=%d idle=%d lifetime=%s", cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetime)
		}
	})

	t.Run("zero open conns", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for DB_MAX_OPEN_CONNS=0")
		}
	})

	t.Run("negative idle conns", func(t *testing.T) {
		t.Setenv("DB_MAX_IDLE_CONNS", "-1")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative DB_MAX_IDLE_CONNS")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheUpcomingTTL != time.Hour || cfg.CacheFilterOptionsTTL != time.Hour {
			t.Fatalf("unexpected default ttls: upcoming=%s options=%s", cfg.CacheUpcomingTTL, cfg.CacheFilterOptionsTTL)
		}
		if cfg.CacheUpcomingCapacity != 16 || cfg.CacheWeeklyCapacity != 100 {
			t.Fatalf("unexpected default capacities: upcoming=%d weekly=%d", cfg.CacheUpcomingCapacity, cfg.CacheWeeklyCapacity)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_UPCOMING_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_UPCOMING_TTL")
		}
	})

	t.Run("zero capacity", func(t *testing.T) {
		t.Setenv("CACHE_WEEKLY_CAPACITY", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for CACHE_WEEKLY_CAPACITY=0")
		}
	})
}

func TestLoad_StartupParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("WARMUP_ENABLED", "false")
	t.Setenv("WARMUP_TIMEOUT", "5s")
	t.Setenv("REGISTRY_WORKERS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.WarmupEnabled {
		t.Fatalf("expected WarmupEnabled=false")
	}
	if cfg.WarmupTimeout != 5*time.Second {
		t.Fatalf("unexpected warmup timeout: %s", cfg.WarmupTimeout)
	}
	if cfg.RegistryWorkers != 8 {
		t.Fatalf("unexpected registry workers: %d", cfg.RegistryWorkers)
	}
}
