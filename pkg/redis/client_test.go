package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/favorites-catalog/pkg/config"
	"github.com/redis/go-redis/v9"
)

type cachedPlanet struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestJSONRoundTripAndMiss(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	var out cachedPlanet
	found, err := client.GetJSON(ctx, client.PlanetKey(1), &out)
	if err != nil {
		t.Fatalf("unexpected error on miss: %v", err)
	}
	if found {
		t.Fatal("expected miss for empty cache")
	}

	if err := client.SetJSON(ctx, client.PlanetKey(1), cachedPlanet{ID: 1, Name: "Hoth"}, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if mock.ttls["fav:planet:1"] != time.Minute {
		t.Fatalf("expected ttl to be forwarded, got %v", mock.ttls["fav:planet:1"])
	}

	found, err = client.GetJSON(ctx, client.PlanetKey(1), &out)
	if err != nil || !found {
		t.Fatalf("expected hit, found=%v err=%v", found, err)
	}
	if out.Name != "Hoth" {
		t.Fatalf("unexpected cached value %+v", out)
	}

	if err := client.Del(ctx, client.PlanetKey(1)); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if found, _ := client.GetJSON(ctx, client.PlanetKey(1), &out); found {
		t.Fatal("expected miss after delete")
	}
}

func TestSetJSONIfAbsentKeepsExistingValue(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}
	key := client.PlanetKey(3)

	written, err := client.SetJSONIfAbsent(ctx, key, cachedPlanet{ID: 3, Name: "Tatooine"}, time.Minute)
	if err != nil || !written {
		t.Fatalf("expected first fill to write, written=%v err=%v", written, err)
	}
	if mock.ttls[key] != time.Minute {
		t.Fatalf("expected ttl to be forwarded, got %v", mock.ttls[key])
	}

	written, err = client.SetJSONIfAbsent(ctx, key, cachedPlanet{ID: 3, Name: "Stale"}, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written {
		t.Fatal("expected second fill to be skipped")
	}

	var out cachedPlanet
	if found, err := client.GetJSON(ctx, key, &out); err != nil || !found {
		t.Fatalf("expected hit, found=%v err=%v", found, err)
	}
	if out.Name != "Tatooine" {
		t.Fatalf("existing value was overwritten: %+v", out)
	}

	if _, err := (&Client{}).SetJSONIfAbsent(ctx, key, out, time.Minute); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
}

func TestGetJSONCorruptValue(t *testing.T) {
	mock := newMockCmdable()
	mock.data["fav:planet:2"] = "{not json"
	client := &Client{store: mock}

	var out cachedPlanet
	if _, err := client.GetJSON(context.Background(), client.PlanetKey(2), &out); err == nil {
		t.Fatal("expected decode error for corrupt value")
	}
}

func TestUninitializedClient(t *testing.T) {
	client := &Client{}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close on uninitialized client should be a no-op, got %v", err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.PlanetKey(42); got != "fav:planet:42" {
		t.Fatalf("unexpected planet key %s", got)
	}
	if got := client.buildKey("planet", ""); got != "fav:planet" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}

	opts, err := optionsFromConfig(config.RedisConfig{Address: "localhost:6379", DB: 3, PoolSize: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.DB != 3 || opts.PoolSize != 7 {
		t.Fatalf("unexpected options %+v", opts)
	}

	opts, err = optionsFromConfig(config.RedisConfig{URL: "redis://:pw@cache:6380/2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "cache:6380" || opts.DB != 2 || opts.Password != "pw" {
		t.Fatalf("unexpected options from url %+v", opts)
	}
}

type mockCmdable struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	default:
		m.data[key] = fmt.Sprint(v)
	}
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	if _, ok := m.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	m.Set(ctx, key, value, expiration)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
