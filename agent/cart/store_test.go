package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	items, err := store.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("fresh user should load empty, got %#v", items)
	}

	want := []LineItem{{ProductID: "ou1", Name: "Oud Royale", Price: 4800, Qty: 2}}
	if err := store.Save(ctx, "u1", want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("Load() = %#v, want %#v", got, want)
	}

	// mutating the loaded slice must not leak into the store
	got[0].Qty = 99
	again, _ := store.Load(ctx, "u1")
	if again[0].Qty != 2 {
		t.Fatalf("store state corrupted by caller mutation: %#v", again)
	}

	if err := store.Clear(ctx, "u1"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	items, _ = store.Load(ctx, "u1")
	if len(items) != 0 {
		t.Fatalf("Clear() left items: %#v", items)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := fmt.Sprintf("u%d", n%4)
			_ = store.Save(ctx, userID, []LineItem{{ProductID: "cy1", Qty: n}})
			_, _ = store.Load(ctx, userID)
		}(i)
	}
	wg.Wait()
}

func TestUpstashRedisStoreKey(t *testing.T) {
	t.Parallel()

	store := &UpstashRedisStore{keyPrefix: defaultStoreKeyPrefix}
	got, err := store.redisKey("u1")
	if err != nil {
		t.Fatalf("redisKey() error = %v", err)
	}
	if got != "scentbot:cart:u1" {
		t.Fatalf("redisKey() = %q", got)
	}

	if _, err := store.redisKey("  "); !errors.Is(err, ErrInvalidUser) {
		t.Fatalf("redisKey() error = %v, want ErrInvalidUser", err)
	}
}

func TestUpstashRedisStoreSaveAndLoad(t *testing.T) {
	t.Parallel()

	var commands [][]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var cmd []any
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			t.Errorf("decode command: %v", err)
			return
		}
		commands = append(commands, cmd)
		switch cmd[0] {
		case "SET":
			fmt.Fprint(w, `{"result":"OK"}`)
		case "GET":
			payload, _ := json.Marshal(`[{"id":"ou1","name":"Oud Royale","price":4800,"qty":2}]`)
			fmt.Fprintf(w, `{"result":%s}`, payload)
		default:
			fmt.Fprint(w, `{"result":1}`)
		}
	}))
	t.Cleanup(server.Close)

	store, err := NewUpstashRedisStore(
		UpstashRedisConfig{URL: server.URL, Token: "token"},
		WithHTTPClient(server.Client()),
		WithTTL(0),
	)
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}

	ctx := context.Background()
	if err := store.Save(ctx, "u1", []LineItem{{ProductID: "ou1", Name: "Oud Royale", Price: 4800, Qty: 2}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	items, err := store.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(items) != 1 || items[0].ProductID != "ou1" || items[0].Qty != 2 {
		t.Fatalf("Load() = %#v", items)
	}

	if len(commands) != 2 || commands[0][0] != "SET" || commands[1][0] != "GET" {
		t.Fatalf("unexpected command sequence: %#v", commands)
	}
	if commands[0][1] != "scentbot:cart:u1" {
		t.Fatalf("unexpected key: %v", commands[0][1])
	}
}

func TestUpstashRedisStoreMissingKeyLoadsEmpty(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":null}`)
	}))
	t.Cleanup(server.Close)

	store, err := NewUpstashRedisStore(
		UpstashRedisConfig{URL: server.URL, Token: "token"},
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}

	items, err := store.Load(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("missing key should load empty, got %#v", items)
	}
}

func TestUpstashRedisStoreSurfacesRedisError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"WRONGPASS invalid token"}`)
	}))
	t.Cleanup(server.Close)

	store, err := NewUpstashRedisStore(
		UpstashRedisConfig{URL: server.URL, Token: "bad"},
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}

	if _, err := store.Load(context.Background(), "u1"); err == nil {
		t.Fatal("expected redis error to surface")
	}
}
