package catlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSimpleProducesUsableLogger(t *testing.T) {
	log := NewSimple("test")
	require.NotNil(t, log)

	assert.NotPanics(t, func() {
		log.Info("hello", "key", "value")
		log.Debug("debug line")
		log.Trace("trace line")
	})
}

func TestSubLoggerInheritsName(t *testing.T) {
	log := NewSimple("parent")
	child := log.New("child")
	require.NotNil(t, child)

	assert.NotPanics(t, func() {
		child.Info("from child")
	})
}

func TestWithCorrelationIDGeneratesWhenEmpty(t *testing.T) {
	log := NewSimple("test")
	scoped := log.WithCorrelationID("")
	require.NotNil(t, scoped)

	assert.NotPanics(t, func() {
		scoped.Info("scoped line")
	})
}
