package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrydata/statcan-cli/internal/core/domain"
)

func resetDownloadFlags() {
	downloadLanguage = ""
	downloadSaveDir = ""
	downloadRows = 5
	downloadCSV = false
}

func TestDownloadCmd_Use(t *testing.T) {
	assert.Equal(t, "download TABLE_NUMBER", downloadCmd.Use)
}

func TestDownloadCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"download"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestDownloadCmd_HasLanguageFlag(t *testing.T) {
	flag := downloadCmd.Flags().Lookup("language")
	require.NotNil(t, flag, "language flag should exist")
	assert.Equal(t, "l", flag.Shorthand)
}

func TestDownloadCmd_PrintsPreview(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"download", "18-10-0205-01"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetDownloadFlags()
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "New housing price index")
	assert.Contains(t, buf.String(), "2 rows x 4 columns")
	assert.Contains(t, buf.String(), "2021-01-01")
}

func TestDownloadCmd_CSVOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"download", "--csv", "18-10-0205-01"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetDownloadFlags()
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "REF_DATE,GEO,VALUE,INDICATOR")
	assert.Contains(t, buf.String(), "2021-01-01,Canada,100,New housing price index")
}

func TestDownloadCmd_SaveDir(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	dir := t.TempDir()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"download", "--save-dir", dir, "18-10-0205-01"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetDownloadFlags()
	}()

	err := rootCmd.Execute()
	assert.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "statcan_18100205_en.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "REF_DATE,GEO,VALUE,INDICATOR")
}

func TestDownloadCmd_InvalidLanguage(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"download", "-l", "de", "18-10-0205-01"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetDownloadFlags()
	}()

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
