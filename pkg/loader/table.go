package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	log "github.com/sirupsen/logrus"

	"github.com/akhildatla/bfvm/pkg/raster"
)

// Pixel table errors
var (
	ErrEmptyTable        = errors.New("pixel table has no rows")
	ErrMissingColumn     = errors.New("pixel table is missing a column")
	ErrInvalidPixel      = errors.New("invalid pixel row")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// PixelColumns are the columns every pixel table must carry. Other columns
// are ignored, so a trace written by WriteTraceCSV loads back as a table.
var PixelColumns = []string{"x", "y", "r", "g", "b"}

// Pixel table limits. A row whose coordinate exceeds MaxCoordinate, or a
// table whose bitmap would hold more than MaxPixels cells, is rejected.
const (
	MaxCoordinate = 1 << 16
	MaxPixels     = 1 << 24
)

// LoadPixelTable loads a .csv, .json/.jsonl or .parquet pixel table and
// returns it as a bitmap. Cells with no row are holes.
func LoadPixelTable(path string) (*raster.Bitmap, error) {
	var (
		df  *dataframe.DataFrame
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		df, err = LoadCSV(path)
	case ".json", ".jsonl":
		df, err = LoadJSON(path)
	case ".parquet":
		df, err = LoadParquet(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	return PixelTable(df)
}

// IsPixelTable reports whether path names a file LoadPixelTable understands.
func IsPixelTable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".json", ".jsonl", ".parquet":
		return true
	}
	return false
}

// PixelTable converts a frame with x, y, r, g, b columns into a bitmap sized
// to the largest coordinates present.
func PixelTable(df *dataframe.DataFrame) (*raster.Bitmap, error) {
	cols := make([]dataframe.Series, len(PixelColumns))
	for i, name := range PixelColumns {
		idx, err := df.NameToColumn(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		cols[i] = df.Series[idx]
	}

	n := cols[0].NRows()
	if n == 0 {
		return nil, ErrEmptyTable
	}

	type pixel struct {
		x, y int
		c    raster.RGB
	}
	pixels := make([]pixel, 0, n)
	width, height := 0, 0
	for row := 0; row < n; row++ {
		var v [5]int64
		for i, s := range cols {
			val, ok := intValue(s, row)
			if !ok {
				return nil, fmt.Errorf("%w: row %d column %q", ErrInvalidPixel, row, PixelColumns[i])
			}
			v[i] = val
		}
		if v[0] < 0 || v[1] < 0 {
			return nil, fmt.Errorf("%w: row %d has negative coordinates", ErrInvalidPixel, row)
		}
		if v[0] >= MaxCoordinate || v[1] >= MaxCoordinate {
			return nil, fmt.Errorf("%w: row %d coordinates (%d,%d) exceed %d", ErrInvalidPixel, row, v[0], v[1], MaxCoordinate-1)
		}
		for i := 2; i < 5; i++ {
			if v[i] < 0 || v[i] > 255 {
				return nil, fmt.Errorf("%w: row %d channel %s=%d", ErrInvalidPixel, row, PixelColumns[i], v[i])
			}
		}
		p := pixel{int(v[0]), int(v[1]), raster.RGB{R: uint8(v[2]), G: uint8(v[3]), B: uint8(v[4])}}
		pixels = append(pixels, p)
		width = max(width, p.x+1)
		height = max(height, p.y+1)
	}

	if width*height > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d bitmap exceeds %d pixels", ErrInvalidPixel, width, height, MaxPixels)
	}

	b := raster.NewBitmap(width, height)
	for _, p := range pixels {
		b.Set(p.x, p.y, p.c)
	}
	log.Debugf("loaded pixel table: %d rows, %dx%d", n, width, height)
	return b, nil
}

// intValue extracts an integer from a Series at index i, accepting the
// types the dataframe importers infer.
func intValue(s dataframe.Series, i int) (int64, bool) {
	v := s.Value(i)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	case float64:
		if val != float64(int64(val)) {
			return 0, false
		}
		return int64(val), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		return n, err == nil
	default:
		f, err := strconv.ParseFloat(fmt.Sprint(val), 64)
		if err != nil || f != float64(int64(f)) {
			return 0, false
		}
		return int64(f), true
	}
}
