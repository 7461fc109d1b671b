package server

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophprofile/internal/logging"
	"github.com/dmitrijs2005/gophprofile/internal/server/config"
)

func TestNewApp_UnreachableDatabase(t *testing.T) {
	var c config.Config
	c.LoadDefaults()
	c.DatabaseDSN = "postgres://u:p@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"
	c.LogLevel = "error"

	app, err := NewApp(context.Background(), &c)
	require.Error(t, err)
	assert.Nil(t, app)
	assert.Contains(t, err.Error(), "db init error")
}

func TestWarnInsecureDefaults(t *testing.T) {
	var c config.Config
	c.LoadDefaults()

	var logs bytes.Buffer
	warnInsecureDefaults(context.Background(), logging.New(&logs, "info", "json"), &c)
	assert.Contains(t, logs.String(), "built-in JWT secret")
	assert.Contains(t, logs.String(), `"level":"WARN"`)

	logs.Reset()
	c.SecretKey = "a-real-secret"
	warnInsecureDefaults(context.Background(), logging.New(&logs, "info", "json"), &c)
	assert.Empty(t, logs.String())
}
