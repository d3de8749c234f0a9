package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mind-engage/mcq-reviewer/internal/mcq"
)

const sheetName = "Questions"

var xlsxHeaders = []string{"#", "Question", "A", "B", "C", "D", "E", "F", "Answer", "Explanation"}

// XLSX lays out one question per row with options in columns A..F. Options
// keyed outside A..F are appended to the F column.
func XLSX(qs []mcq.Question) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}
	for i, h := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	for i, q := range qs {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
		write(1, q.Number)
		write(2, q.Question)
		cols := map[int][]string{}
		for _, o := range q.Options {
			col := 8 // F
			if k := strings.ToUpper(o.Key); len(k) == 1 && k[0] >= 'A' && k[0] <= 'F' {
				col = 3 + int(k[0]-'A')
			}
			cols[col] = append(cols[col], o.Text)
		}
		for col, texts := range cols {
			write(col, strings.Join(texts, " / "))
		}
		write(9, q.AnswerKey)
		write(10, q.Explanation)
	}

	_ = f.SetColWidth(sheetName, "A", "A", 6)
	_ = f.SetColWidth(sheetName, "B", "B", 60)
	_ = f.SetColWidth(sheetName, "C", "H", 28)
	_ = f.SetColWidth(sheetName, "I", "I", 8)
	_ = f.SetColWidth(sheetName, "J", "J", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
