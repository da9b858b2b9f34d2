package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/vassimdr/dr-sahin-durmus-backend/internal/auditlog"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/callback"
)

// Exporter renders back-office report data into downloadable files.
type Exporter interface {
	ExportCallbacks(format string, rows []callback.CallbackRequest) ([]byte, string, string, error)
	ExportAdminActions(format string, rows []auditlog.AdminAction) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

//// ============================
/// CALLBACK REQUEST EXPORTS
//// ============================

func (e *exporter) ExportCallbacks(format string, rows []callback.CallbackRequest) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		data, err := e.callbacksCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("callback_requests_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.callbacksExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("callback_requests_%s.xlsx", timestamp),
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.callbacksPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("callback_requests_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for callback report: %s", format)
	}
}

func (e *exporter) callbacksCSV(rows []callback.CallbackRequest) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Phone", "Status", "Priority", "Source", "Notes", "Created At", "Called At", "Completed At"}
	if err := w.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Name,
			r.Phone,
			r.Status,
			strconv.Itoa(r.Priority),
			r.Source,
			r.Notes,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			formatTimePtr(r.CalledAt),
			formatTimePtr(r.CompletedAt),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) callbacksExcel(rows []callback.CallbackRequest) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Callback Requests"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Name", "Phone", "Status", "Priority", "Source", "Notes", "Created At", "Called At", "Completed At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Phone)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Priority)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Source)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.Notes)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), formatTimePtr(r.CalledAt))
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), formatTimePtr(r.CompletedAt))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) callbacksPDF(rows []callback.CallbackRequest) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "") // Landscape for more columns
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Callback Requests Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	headers := []string{"ID", "Name", "Phone", "Status", "Prio", "Source", "Created At", "Called At"}
	widths := []float64{15, 55, 35, 25, 12, 30, 40, 40}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.Phone, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, strconv.Itoa(r.Priority), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, r.Source, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, r.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[7], 6, formatTimePtr(r.CalledAt), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// ADMIN ACTION EXPORTS
//// ============================

func (e *exporter) ExportAdminActions(format string, rows []auditlog.AdminAction) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		data, err := e.adminActionsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("admin_actions_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.adminActionsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("admin_actions_%s.xlsx", timestamp),
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.adminActionsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("admin_actions_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for admin action report: %s", format)
	}
}

func (e *exporter) adminActionsCSV(rows []auditlog.AdminAction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	headers := []string{"ID", "Action", "Resource", "Resource ID", "Status", "IP Address", "Device ID", "Timestamp", "Details"}
	if err := w.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Action,
			r.Resource,
			formatUintPtr(r.ResourceID),
			r.Status,
			r.IPAddress,
			r.DeviceID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			string(r.Details),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) adminActionsExcel(rows []auditlog.AdminAction) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Admin Actions"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Action", "Resource", "Resource ID", "Status", "IP Address", "Device ID", "Timestamp", "Details"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Action)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Resource)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), formatUintPtr(r.ResourceID))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.IPAddress)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.DeviceID)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), string(r.Details))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) adminActionsPDF(rows []auditlog.AdminAction) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Admin Actions Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	headers := []string{"ID", "Action", "Resource", "Status", "IP Address", "Device ID", "Timestamp"}
	widths := []float64{15, 55, 30, 22, 40, 50, 40}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		deviceID := r.DeviceID
		if len(deviceID) > 20 {
			deviceID = deviceID[:20] + "..."
		}
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.Action, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.Resource, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.IPAddress, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, deviceID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[6], 6, r.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatUintPtr(v *uint) string {
	if v == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*v), 10)
}
