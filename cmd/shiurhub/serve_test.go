package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiurhub/shiurhub/internal/config"
)

func TestShutdownContextOutlivesCanceledParents(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	cancelParent()

	ctx, cancel := shutdownContext()
	defer cancel()

	// The drain context must stay live even though every serving context
	// is already canceled.
	require.Error(t, parent.Err())
	require.NoError(t, ctx.Err())

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(shutdownTimeout), deadline, time.Second)
}

func TestApplyServeOverrides(t *testing.T) {
	cfg := config.NewAppConfig()

	overridden := applyServeOverrides(cfg, "127.0.0.1", 9090)
	assert.Equal(t, "127.0.0.1:9090", overridden.Addr())

	unchanged := applyServeOverrides(cfg, "", 0)
	assert.Equal(t, cfg.Addr(), unchanged.Addr())
}
