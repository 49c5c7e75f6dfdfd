package loop

// layout places the square board inside the terminal. Cells hold two
// vertical pixels, so a square board is twice as many columns as rows.
type layout struct {
	cols, rows     int
	offCol, offRow int
	termW, termH   int
}

// fitBoard picks the largest board that leaves room for a one-cell border.
func fitBoard(termW, termH int) layout {
	rows := min(termH-2, (termW-2)/2)
	if rows < 1 {
		rows = 1
	}
	cols := rows * 2
	return layout{
		cols:   cols,
		rows:   rows,
		offCol: max((termW-cols)/2, 0),
		offRow: max((termH-rows)/2, 0),
		termW:  termW,
		termH:  termH,
	}
}
