package reports

// Report types offered to the back-office.
const (
	ReportTypeCallbacks    = "callbacks"
	ReportTypeAdminActions = "admin_actions"
)

// Export formats.
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

var validFormats = map[string]bool{
	FormatCSV:   true,
	FormatExcel: true,
	FormatPDF:   true,
}

func IsValidFormat(f string) bool { return validFormats[f] }
