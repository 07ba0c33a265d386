package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/docfacts/constants"
	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/entity"
	"github.com/joseph-ayodele/docfacts/internal/telemetry"
)

// Service writes record tables as single-sheet XLSX workbooks.
type Service struct {
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger, metrics: telemetry.NewMetrics()}
}

// WriteXLSX returns the workbook for tbl as bytes, ready for a download
// response. An empty table is refused with ErrEmptyTable.
func (s *Service) WriteXLSX(ctx context.Context, tbl entity.Table) ([]byte, error) {
	start := time.Now()
	f, err := s.build(ctx, tbl)
	if err != nil {
		s.metrics.ObserveExport("buffer", outcomeOf(err))
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.metrics.ObserveExport("buffer", string(constants.OutcomeFailed))
		return nil, common.ExportError("xlsx write", err)
	}

	s.metrics.ObserveExport("buffer", string(constants.OutcomeOK))
	s.logger.Info("export.xlsx.ok",
		"destination", "buffer",
		"rows", tbl.Len(),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// SaveXLSX writes the workbook for tbl to path, replacing any existing file.
// An empty table is refused with ErrEmptyTable and nothing is written.
func (s *Service) SaveXLSX(ctx context.Context, tbl entity.Table, path string) error {
	start := time.Now()
	f, err := s.build(ctx, tbl)
	if err != nil {
		s.metrics.ObserveExport("file", outcomeOf(err))
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		s.metrics.ObserveExport("file", string(constants.OutcomeFailed))
		return common.ExportError("xlsx save "+path, err)
	}

	s.metrics.ObserveExport("file", string(constants.OutcomeOK))
	s.logger.Info("export.xlsx.ok",
		"destination", "file",
		"path", path,
		"rows", tbl.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *Service) build(ctx context.Context, tbl entity.Table) (*excelize.File, error) {
	if tbl.IsEmpty() {
		s.logger.Warn("export.xlsx.skip", "reason", "empty_table")
		return nil, common.ExportError("export skipped", common.ErrEmptyTable)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := constants.SheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		_ = f.Close()
		return nil, common.ExportError("rename sheet", err)
	}

	header := make([]any, len(constants.Columns))
	for i, h := range constants.Columns {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, common.ExportError("write header", err)
	}

	for i, r := range tbl.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		cells := r.Cells()
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			_ = f.Close()
			return nil, common.ExportError("write row "+strconv.Itoa(r.Seq), err)
		}
	}

	cols := make([]string, 0, len(constants.ColumnWidths))
	for col := range constants.ColumnWidths {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		_ = f.SetColWidth(sheet, col, col, constants.ColumnWidths[col])
	}

	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		_ = f.Close()
		return nil, common.ExportError("comments style", err)
	}
	last := fmt.Sprintf("D%d", tbl.Len()+1)
	if err := f.SetCellStyle(sheet, "D2", last, wrap); err != nil {
		_ = f.Close()
		return nil, common.ExportError("comments style", err)
	}
	return f, nil
}

// ReadXLSX reads a workbook produced by WriteXLSX back into a table.
func ReadXLSX(r io.Reader) (entity.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return entity.Table{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(constants.SheetName)
	if err != nil {
		return entity.Table{}, fmt.Errorf("read sheet %q: %w", constants.SheetName, err)
	}
	if len(rows) == 0 {
		return entity.Table{}, fmt.Errorf("sheet %q has no header row", constants.SheetName)
	}

	var out entity.Table
	for i, row := range rows[1:] {
		// GetRows drops trailing empty cells
		for len(row) < len(constants.Columns) {
			row = append(row, "")
		}
		seq, err := strconv.Atoi(row[0])
		if err != nil {
			return entity.Table{}, fmt.Errorf("row %d: bad sequence number %q", i+2, row[0])
		}
		out.Rows = append(out.Rows, entity.Row{Seq: seq, Key: row[1], Value: row[2], Comments: row[3]})
	}
	return out, nil
}

func outcomeOf(err error) string {
	if errors.Is(err, common.ErrEmptyTable) {
		return string(constants.OutcomeEmpty)
	}
	return string(constants.OutcomeFailed)
}
