package loader

import (
	"encoding/csv"
	"io"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/bfvm/pkg/raster"
)

// TraceColumns are the columns of a decode trace, in order.
var TraceColumns = []string{"step", "x", "y", "r", "g", "b", "token", "heading"}

// TraceFrame lays out a decode result as one row per visited pixel. The
// token column is empty where the color was skipped and the heading column
// holds the heading after the pixel was interpreted.
func TraceFrame(res *raster.Result) *dataframe.DataFrame {
	n := len(res.Visits)
	ints := make([][]interface{}, 6)
	for i := range ints {
		ints[i] = make([]interface{}, 0, n)
	}
	tokens := make([]interface{}, 0, n)
	headings := make([]interface{}, 0, n)

	for i, v := range res.Visits {
		ints[0] = append(ints[0], int64(i))
		ints[1] = append(ints[1], int64(v.X))
		ints[2] = append(ints[2], int64(v.Y))
		ints[3] = append(ints[3], int64(v.Color.R))
		ints[4] = append(ints[4], int64(v.Color.G))
		ints[5] = append(ints[5], int64(v.Color.B))
		if v.Mapped {
			tokens = append(tokens, v.Token.String())
		} else {
			tokens = append(tokens, "")
		}
		headings = append(headings, v.Heading.String())
	}

	series := make([]dataframe.Series, 0, len(TraceColumns))
	for i := range ints {
		series = append(series, dataframe.NewSeriesInt64(TraceColumns[i], &dataframe.SeriesInit{Capacity: n}, ints[i]...))
	}
	series = append(series,
		dataframe.NewSeriesString("token", &dataframe.SeriesInit{Capacity: n}, tokens...),
		dataframe.NewSeriesString("heading", &dataframe.SeriesInit{Capacity: n}, headings...),
	)
	return dataframe.NewDataFrame(series...)
}

// WriteTraceCSV writes the trace of res as CSV with a TraceColumns header.
func WriteTraceCSV(w io.Writer, res *raster.Result) error {
	df := TraceFrame(res)
	cw := csv.NewWriter(w)
	if err := cw.Write(TraceColumns); err != nil {
		return err
	}
	record := make([]string, len(df.Series))
	for row := 0; row < df.NRows(); row++ {
		for i, s := range df.Series {
			v := s.Value(row)
			if v == nil {
				record[i] = ""
				continue
			}
			record[i] = s.ValueString(row)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
