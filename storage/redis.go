// /home/krylon/go/src/github.com/blicero/sitfit/storage/redis.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 01:31:15 krylon>

package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/logdomain"
	"github.com/redis/go-redis/v9"
)

const redisTimeout = time.Second * 3

// Redis saves the state under a single key on a redis server.
type Redis struct {
	log    *log.Logger
	client *redis.Client
	key    string
}

// NewRedis creates a Redis storage using an existing client.
func NewRedis(client *redis.Client, key string) (*Redis, error) {
	var (
		err error
		r   = &Redis{client: client, key: key}
	)

	if r.key == "" {
		r.key = common.BlobKey
	}

	if r.log, err = common.GetLogger(logdomain.Storage); err != nil {
		return nil, err
	}

	return r, nil
} // func NewRedis(client *redis.Client, key string) (*Redis, error)

// NewRedisFromConfig connects to the server described by cfg and checks
// that it answers.
func NewRedisFromConfig(cfg common.RedisConfig) (*Redis, error) {
	var (
		err         error
		r           *Redis
		ctx, cancel = context.WithTimeout(context.Background(), redisTimeout)
		client      = redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	)
	defer cancel()

	if err = client.Ping(ctx).Err(); err != nil {
		client.Close() // nolint: errcheck
		return nil, fmt.Errorf("Cannot reach redis at %s: %w", cfg.Addr, err)
	} else if r, err = NewRedis(client, cfg.Key); err != nil {
		client.Close() // nolint: errcheck
		return nil, err
	}

	return r, nil
} // func NewRedisFromConfig(cfg common.RedisConfig) (*Redis, error)

// Load fetches the saved state. A missing key yields no data.
func (r *Redis) Load() ([]byte, error) {
	var (
		err         error
		data        []byte
		ctx, cancel = context.WithTimeout(context.Background(), redisTimeout)
	)
	defer cancel()

	if data, err = r.client.Get(ctx, r.key).Bytes(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		r.log.Printf("[ERROR] Cannot GET %s: %s\n",
			r.key,
			err.Error())
		return nil, err
	}

	return data, nil
} // func (r *Redis) Load() ([]byte, error)

// Save stores data under the key.
func (r *Redis) Save(data []byte) error {
	var (
		err         error
		ctx, cancel = context.WithTimeout(context.Background(), redisTimeout)
	)
	defer cancel()

	if err = r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		r.log.Printf("[ERROR] Cannot SET %s: %s\n",
			r.key,
			err.Error())
		return err
	}

	return nil
} // func (r *Redis) Save(data []byte) error

// Close closes the client.
func (r *Redis) Close() error {
	return r.client.Close()
} // func (r *Redis) Close() error
