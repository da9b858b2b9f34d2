package reports

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vassimdr/dr-sahin-durmus-backend/internal/callback"
)

func sampleCallbacks() []callback.CallbackRequest {
	created := time.Date(2025, 2, 10, 9, 30, 0, 0, time.UTC)
	called := created.Add(2 * time.Hour)
	return []callback.CallbackRequest{
		{
			ID:        1,
			Name:      "Zeynep A.",
			Phone:     "905551234567",
			Status:    callback.StatusCalled,
			Priority:  4,
			Source:    callback.SourceWebsite,
			Notes:     "prefers afternoon",
			CreatedAt: created,
			CalledAt:  &called,
		},
		{
			ID:        2,
			Name:      "Ali B.",
			Phone:     "905559876543",
			Status:    callback.StatusPending,
			Priority:  3,
			Source:    callback.SourceInstagram,
			CreatedAt: created,
		},
	}
}

func TestExportCallbacksCSV(t *testing.T) {
	e := NewExporter()

	data, filename, contentType, err := e.ExportCallbacks(FormatCSV, sampleCallbacks())
	require.NoError(t, err)
	assert.Contains(t, filename, "callback_requests_")
	assert.Equal(t, "text/csv", contentType)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Name", records[0][1])
	assert.Equal(t, "Zeynep A.", records[1][1])
	assert.Equal(t, "2025-02-10 11:30:00", records[1][8], "called_at column")
	assert.Equal(t, "", records[2][8], "pending row has no called_at")
}

func TestExportCallbacksExcelAndPDFProduceFiles(t *testing.T) {
	e := NewExporter()

	xlsx, filename, contentType, err := e.ExportCallbacks(FormatExcel, sampleCallbacks())
	require.NoError(t, err)
	assert.NotEmpty(t, xlsx)
	assert.Contains(t, filename, ".xlsx")
	assert.Contains(t, contentType, "spreadsheetml")

	pdf, filename, contentType, err := e.ExportCallbacks(FormatPDF, sampleCallbacks())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "PDF magic header")
	assert.Contains(t, filename, ".pdf")
	assert.Equal(t, "application/pdf", contentType)
}

func TestExportCallbacksRejectsUnknownFormat(t *testing.T) {
	e := NewExporter()
	_, _, _, err := e.ExportCallbacks("xml", nil)
	assert.Error(t, err)
}
