package main

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/joseph-ayodele/docfacts/constants"
	"github.com/joseph-ayodele/docfacts/internal/entity"
)

// renderPreview prints at most n leading rows of tbl as a text table.
func renderPreview(w io.Writer, tbl entity.Table, n int) {
	if tbl.IsEmpty() {
		io.WriteString(w, "Empty table: no records.\n")
		return
	}
	t := tablewriter.NewWriter(w)
	t.SetHeader(constants.Columns)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(true)
	t.SetColWidth(60)
	for _, r := range tbl.Head(n) {
		t.Append([]string{strconv.Itoa(r.Seq), r.Key, r.Value, r.Comments})
	}
	t.Render()
}
