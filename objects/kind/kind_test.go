// /home/krylon/go/src/github.com/blicero/sitfit/objects/kind/kind_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 18:12:30 krylon>

package kind

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, k := range All() {
		var (
			err error
			val Kind
		)

		val, err = Parse(k.Name())
		require.NoError(t, err)
		assert.Equal(t, k, val)
	}

	var k, err = Parse(" Water ")
	require.NoError(t, err)
	assert.Equal(t, Water, k)

	_, err = Parse("yoga")
	assert.Error(t, err)
} // func TestParse(t *testing.T)

func TestJSON(t *testing.T) {
	var (
		err error
		buf []byte
		k   Kind
	)

	buf, err = json.Marshal(Breathing)
	require.NoError(t, err)
	assert.Equal(t, `"breathing"`, string(buf))

	require.NoError(t, json.Unmarshal([]byte(`"eye"`), &k))
	assert.Equal(t, Eye, k)

	assert.Error(t, json.Unmarshal([]byte(`"nap"`), &k))

	_, err = json.Marshal(Kind(42))
	assert.Error(t, err)
} // func TestJSON(t *testing.T)
