package database

import (
	"testing"
	"time"

	drv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDSN(t *testing.T) {
	dsn, err := normalizeDSN("postdeck:secret@tcp(127.0.0.1:3306)/postdeck?charset=utf8mb4")
	require.NoError(t, err)

	c, err := drv.ParseDSN(dsn)
	require.NoError(t, err)
	assert.True(t, c.ParseTime)
	assert.Equal(t, time.UTC, c.Loc)
	assert.Equal(t, "postdeck", c.DBName)
	assert.Equal(t, "'+00:00'", c.Params["time_zone"])
}

func TestNormalizeDSNRejectsGarbage(t *testing.T) {
	_, err := normalizeDSN("not a dsn")
	assert.Error(t, err)
}
