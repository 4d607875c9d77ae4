package analyTool

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/Hakuto4838/TwoDList.git/skiplist"
)

// PrintTable 以表格打印結構，欄位依 level 0 的 key 對齊，最多顯示 maxNodes 欄
func PrintTable(w io.Writer, sl skiplist.Analyable, maxNodes int) {
	base := LevelKeys(sl, 0)
	if maxNodes > 0 && len(base) > maxNodes {
		base = base[:maxNodes]
	}

	header := make([]string, len(base)+1)
	header[0] = "Level"
	for i := range base {
		header[i+1] = fmt.Sprintf("#%d", i)
	}
	if len(base) == 0 {
		header = append(header, "Keys")
	}

	rows := make([][]string, 0, sl.MaxLevels())
	for i := sl.MaxLevels() - 1; i >= 0; i-- {
		row := []string{fmt.Sprintf("%d", i)}
		if LevelKeys(sl, i) == nil {
			row = append(row, "empty")
			for len(row) < len(header) {
				row = append(row, "")
			}
		} else {
			row = append(row, alignRow(sl, i, base)...)
		}
		rows = append(rows, row)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}
