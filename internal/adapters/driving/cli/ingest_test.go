package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [path]", ingestCmd.Use)
}

func TestIngestCmd_RequiresExactlyOneArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestIngestCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	fake := ingestService.(*fakeIngestService)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "report.pdf"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "report.pdf", fake.lastPath)
	assert.Contains(t, buf.String(), "Document ID: generated-id")
}

func TestIngestCmd_PassesIDFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	fake := ingestService.(*fakeIngestService)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "--id", "my-doc", "report.pdf"})
	defer func() {
		rootCmd.SetArgs(nil)
		ingestID = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "my-doc", fake.lastID)
	assert.Contains(t, buf.String(), "Document ID: my-doc")
}

func TestIngestCmd_ReportsFailure(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	ingestService.(*fakeIngestService).err = errors.New("no parser for file")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "archive.zip"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ingest failed")
}

func TestIngestCmd_ErrorsWithoutService(t *testing.T) {
	oldIngestService := ingestService
	ingestService = nil
	defer func() {
		ingestService = oldIngestService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "report.pdf"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
