package storage

import (
	"context"
	"errors"
	"fmt"
)

// KV is a small key/value store for session blobs.
type KV interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte) error
	Remove(ctx context.Context, key string) error
}

var ErrEmptyKey = errors.New("empty key")

// Driver names a KV backend.
type Driver string

const (
	DriverFS     Driver = "fs"
	DriverSQL    Driver = "sql"
	DriverRedis  Driver = "redis"
	DriverMemory Driver = "memory"
)

func ParseDriver(s string) (Driver, error) {
	switch d := Driver(s); d {
	case DriverFS, DriverSQL, DriverRedis, DriverMemory:
		return d, nil
	case "":
		return DriverFS, nil
	default:
		return "", fmt.Errorf("unsupported store driver: %s", s)
	}
}
