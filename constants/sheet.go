package constants

// Workbook layout for exported records.
const SheetName = "Extracted Data"

// Column headers in their fixed order.
var Columns = []string{"#", "Key", "Value", "Comments"}

// Column widths, keyed by column letter.
var ColumnWidths = map[string]float64{
	"A": 5,
	"B": 35,
	"C": 30,
	"D": 100,
}
