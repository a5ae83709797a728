package clients

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/stock-backend/internal/cfg"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(&cfg.RedisCfg{Addr: mr.Addr(), DialTimeout: time.Second, Timeout: time.Second})
	defer client.Close()

	require.NoError(t, client.Ping(context.Background()))

	mr.Close()
	assert.Error(t, client.Ping(context.Background()))
}
