// /home/krylon/go/src/github.com/blicero/sitfit/testutil/redis.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 01:35:40 krylon>

// Package testutil provides helpers shared by tests.
package testutil

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	redismodule "github.com/testcontainers/testcontainers-go/modules/redis"
)

// SetupRedisContainer starts a throwaway redis server and returns a client
// connected to it. The test is skipped if no container can be started,
// e.g. because Docker is not available.
func SetupRedisContainer(ctx context.Context, t *testing.T) (*redis.Client, func()) {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("failed to start redis container: %v", r)
		}
	}()

	var container, err = redismodule.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Skipf("failed to start redis container: %v", err)
	}

	var endpoint string
	if endpoint, err = container.Endpoint(ctx, ""); err != nil {
		t.Skipf("failed to get redis endpoint: %v", err)
	}

	var client = redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	var cleanup = func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close redis client: %v", err)
		}

		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	}

	return client, cleanup
} // func SetupRedisContainer(ctx context.Context, t *testing.T) (*redis.Client, func())
