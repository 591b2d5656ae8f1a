package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aideon-labs/aideon-tools/internal/codecs/excel"
	"github.com/aideon-labs/aideon-tools/internal/codecs/jsonld"
	"github.com/aideon-labs/aideon-tools/internal/codecs/rdf"
	"github.com/aideon-labs/aideon-tools/internal/core/services"
)

func setupFormatsTest() func() {
	registry := services.NewCodecRegistry()
	registry.Register(jsonld.New())
	registry.Register(excel.New())
	registry.Register(rdf.New())

	oldRegistry := codecRegistry
	codecRegistry = registry
	return func() {
		codecRegistry = oldRegistry
	}
}

func TestFormatsCmd_Use(t *testing.T) {
	assert.Equal(t, "formats", formatsCmd.Use)
}

func TestFormatsCmd_ListsFormatsAndConversions(t *testing.T) {
	cleanup := setupFormatsTest()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"formats"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "jsonld")
	assert.Contains(t, output, "xlsx")
	assert.Contains(t, output, "rdf")
	assert.Contains(t, output, "jsonld -> xlsx")
	assert.Contains(t, output, "xlsx -> jsonld")
}

func TestFormatsCmd_RegistryNotConfigured(t *testing.T) {
	oldRegistry := codecRegistry
	codecRegistry = nil
	defer func() {
		codecRegistry = oldRegistry
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"formats"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "codec registry not configured")
}
