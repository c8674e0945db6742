package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Promedio-api/pkg/logger"
)

func TestNew_ProductionEscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})
	log.Component("calculator").Info().Str("mode", "forward").Msg("cálculo")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "calculator", line["component"])
	assert.Equal(t, "forward", line["mode"])
	assert.Equal(t, "info", line["level"])
}

func TestNew_NivelFiltraDebug(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})
	log.Debug().Msg("no debe salir")
	log.Info().Msg("tampoco")
	assert.Zero(t, buf.Len())
}
