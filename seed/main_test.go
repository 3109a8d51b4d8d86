package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSqlitePath(t *testing.T) {
	assert.Equal(t, "override.db", sqlitePath("override.db", "env.db"), "flag wins over the environment")
	assert.Equal(t, "env.db", sqlitePath("", "env.db"))
	assert.Equal(t, "codelab.db", sqlitePath("", ""), "default matches the server's sqlite fallback")
}
