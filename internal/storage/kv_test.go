package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/mind-engage/mcq-reviewer/internal/db"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()
	key := "mcq_pdf_reviewer_v1:guest|abc"

	if _, ok, err := kv.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get on empty store: ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, key, []byte(`{"idx":1}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set(ctx, key, []byte(`{"idx":2}`)); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(v, []byte(`{"idx":2}`)) {
		t.Fatalf("Get = %s", v)
	}
	if err := kv.Remove(ctx, key); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, key); ok {
		t.Fatal("key still present after Remove")
	}
	if err := kv.Remove(ctx, key); err != nil {
		t.Fatalf("Remove of missing key: %v", err)
	}
	if err := kv.Set(ctx, "", []byte("x")); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("Set empty key err = %v", err)
	}
}

func TestFSStore(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	exerciseKV(t, s)
}

func TestMemoryStore(t *testing.T) {
	exerciseKV(t, NewMemoryStore())
}

func TestSQLStore(t *testing.T) {
	ctx := context.Background()
	d, err := db.Open(ctx, db.DriverSQLite, "file:kv_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	defer d.Close()
	exerciseKV(t, NewSQLStore(d))
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client, err := DialRedis(context.Background(), addr, "", 0)
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	defer client.Close()
	exerciseKV(t, NewRedisStore(client, 0))
}

func TestParseDriver(t *testing.T) {
	cases := map[string]Driver{"": DriverFS, "fs": DriverFS, "sql": DriverSQL, "redis": DriverRedis, "memory": DriverMemory}
	for in, want := range cases {
		got, err := ParseDriver(in)
		if err != nil || got != want {
			t.Fatalf("ParseDriver(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseDriver("s3"); err == nil {
		t.Fatal("expected error for s3")
	}
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("down")
}
func (failingKV) Set(context.Context, string, []byte) error { return errors.New("down") }
func (failingKV) Remove(context.Context, string) error      { return errors.New("down") }

func TestBestEffortSwallowsErrors(t *testing.T) {
	ctx := context.Background()
	b := NewBestEffort(failingKV{}, nil)
	b.Set(ctx, "k", []byte("v"))
	b.Remove(ctx, "k")
	if _, ok := b.Get(ctx, "k"); ok {
		t.Fatal("failing store should read as absent")
	}

	var nilStore *BestEffort
	nilStore.Set(ctx, "k", nil)
	if _, ok := nilStore.Get(ctx, "k"); ok {
		t.Fatal("nil store should read as absent")
	}
}
