package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlextract-go/pkg/xlextract/models"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	require.NoError(t, f.SetSheetRow(sheetName, "A1", &[]interface{}{"Invoice", "Widget", "unit price (EUR)"}))
	require.NoError(t, f.SetSheetRow(sheetName, "A2", &[]interface{}{"INV-1", 10, 2.5}))
	require.NoError(t, f.SetSheetRow(sheetName, "A4", &[]interface{}{"INV-3", 30, 7}))

	path := filepath.Join(t.TempDir(), "invoices.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBandCommand(t *testing.T) {
	path := writeWorkbook(t)

	out, err := execute(t, "band", path, "--columns", "B:C")
	require.NoError(t, err)

	var band models.BandData
	require.NoError(t, json.Unmarshal([]byte(out), &band))
	assert.Equal(t, "invoices.xlsx", band.BookName)
	assert.Equal(t, "Sheet1", band.SheetName)
	require.Len(t, band.Rows, 3)

	assert.Equal(t, models.BandRow{R: 2, Entries: []models.BandEntry{
		{Header: "Widget", Value: "10"},
		{Header: "unit price (EUR)", Value: "2.5"},
	}}, band.Rows[0])
	assert.Equal(t, 4, band.Rows[2].R)
	assert.Equal(t, "30", band.Rows[2].Entries[0].Value)
}

func TestBandCommandStopAtBlank(t *testing.T) {
	path := writeWorkbook(t)

	out, err := execute(t, "band", path, "--columns", "B:C", "--stop-at-blank")
	require.NoError(t, err)

	var band models.BandData
	require.NoError(t, json.Unmarshal([]byte(out), &band))
	require.Len(t, band.Rows, 1)
	assert.Equal(t, 2, band.Rows[0].R)
}

func TestBandCommandErrors(t *testing.T) {
	path := writeWorkbook(t)

	_, err := execute(t, "band", path, "--columns", "B")
	assert.Error(t, err)

	_, err = execute(t, "band", filepath.Join(t.TempDir(), "missing.xlsx"), "--columns", "B:C")
	assert.Error(t, err)

	_, err = execute(t, "band", path, "--columns", "B:C", "--sheet", "Nope")
	assert.Error(t, err)
}

func TestHeadersCommand(t *testing.T) {
	path := writeWorkbook(t)

	out, err := execute(t, "headers", path, "--columns", "B:C")
	require.NoError(t, err)
	assert.Contains(t, out, "Widget")
	assert.Contains(t, out, "UnitPriceEUR")
	assert.Contains(t, out, "C1")
}
