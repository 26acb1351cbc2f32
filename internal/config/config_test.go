package config

import "testing"

func TestLoadDefaultsToMemoryStoreInDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Driver != StoreDriverMemory {
		t.Fatalf("driver = %q, want %q", cfg.Store.Driver, StoreDriverMemory)
	}
	if cfg.Auth.JWTSecret == "" {
		t.Fatal("expected development secret fallback")
	}
	again, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if again.Auth.JWTSecret == cfg.Auth.JWTSecret {
		t.Fatal("development secret must be generated per process, not a fixed value")
	}
}

func TestLoadRequiresSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("AUTH_JWT_SECRET", "")

	t.Setenv("APP_ENV", "")
	cfg, err := Load()
	if err == nil {
		t.Fatalf("unset APP_ENV must not fall back to a development secret; got env=%q secret=%q", cfg.App.Env, cfg.Auth.JWTSecret)
	}

	t.Setenv("APP_ENV", "production")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing AUTH_JWT_SECRET")
	}

	t.Setenv("AUTH_JWT_SECRET", "from-env")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Fatalf("secret = %q, want from-env", cfg.Auth.JWTSecret)
	}
}

func TestValidateStoreDriver(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "memory", cfg: Config{Store: StoreConfig{Driver: StoreDriverMemory}}},
		{name: "postgres without dsn", cfg: Config{Store: StoreConfig{Driver: StoreDriverPostgres}}, wantErr: true},
		{name: "postgres with dsn", cfg: Config{Store: StoreConfig{Driver: StoreDriverPostgres}, Postgres: PostgresConfig{DSN: "postgres://x"}}},
		{name: "mongo without uri", cfg: Config{Store: StoreConfig{Driver: StoreDriverMongo}}, wantErr: true},
		{name: "unknown", cfg: Config{Store: StoreConfig{Driver: "sqlite"}}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.App.Env = "development"
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
