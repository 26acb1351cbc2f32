package persistence

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/placement-portal/experience-service/internal/config"
)

func TestRedisDisabledWithoutAddress(t *testing.T) {
	r := NewRedis(context.Background(), config.RedisConfig{EventsChannel: "experience-events"}, zap.NewNop())
	if r.Enabled() {
		t.Fatal("expected forwarding disabled")
	}
	if err := r.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error on disabled client")
	}
	r.Close()
}

func TestRedisOptionsCarryConfig(t *testing.T) {
	opts, ok := redisOptions(config.RedisConfig{Addr: "cache:6379", Password: "pw", DB: 2})
	if !ok {
		t.Fatal("expected options for configured address")
	}
	if opts.Addr != "cache:6379" || opts.Password != "pw" || opts.DB != 2 {
		t.Fatalf("options = %+v", opts)
	}
	if opts.DialTimeout <= 0 {
		t.Fatal("expected a dial timeout")
	}
}
