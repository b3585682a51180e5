package extractor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
)

// extractXLSX reads the first sheet as a table: the header row names the
// columns, each following row becomes one document with the cells as
// metadata. Numeric and boolean cells are coerced so payload filters on
// fields like price_usd or refundable keep working.
func (e *Extractor) extractXLSX(path string) ([]domain.Document, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "open xlsx file", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "read xlsx file", fmt.Errorf("no sheets in %s", path))
	}
	sheet := sheets[0]

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "read xlsx file", fmt.Errorf("sheet %s has no data rows", sheet))
	}

	header := rows[0]
	docs := make([]domain.Document, 0, len(rows)-1)
	for rowIdx, row := range rows[1:] {
		metadata := make(map[string]any, len(header)+4)
		var content strings.Builder
		for colIdx, name := range header {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			var cell string
			if colIdx < len(row) {
				cell = strings.TrimSpace(row[colIdx])
			}
			if cell == "" {
				continue
			}
			metadata[name] = coerceCell(cell)
			fmt.Fprintf(&content, "%s: %s\n", name, cell)
		}
		if len(metadata) == 0 {
			continue
		}
		metadata["source"] = path
		metadata["document_type"] = "xlsx"
		metadata["sheet"] = sheet
		metadata["row_index"] = rowIdx

		docs = append(docs, domain.Document{
			Content:  content.String(),
			Metadata: metadata,
		})
	}
	return docs, nil
}

func coerceCell(cell string) any {
	if b, err := strconv.ParseBool(strings.ToLower(cell)); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}
