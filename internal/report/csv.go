package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

func writeCSV(w io.Writer, run *Run, noPoints bool) error {
	cw := csv.NewWriter(w)

	if noPoints {
		if err := cw.Write([]string{"elapsed_seconds"}); err != nil {
			return err
		}
		if err := cw.Write([]string{strconv.FormatFloat(run.Elapsed.Seconds(), 'f', 6, 64)}); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	}

	if err := cw.Write([]string{"step", "t", "x", "y", "z"}); err != nil {
		return err
	}

	row := make([]string, 5)
	for i, p := range run.Points {
		row[0] = strconv.Itoa(i)
		row[1] = strconv.FormatFloat(float64(i)*run.Dt, 'f', 6, 64)
		row[2] = strconv.FormatFloat(p[0], 'f', 6, 64)
		row[3] = strconv.FormatFloat(p[1], 'f', 6, 64)
		row[4] = strconv.FormatFloat(p[2], 'f', 6, 64)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
