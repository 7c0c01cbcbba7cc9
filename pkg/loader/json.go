package loader

import (
	"bytes"
	"context"
	"os"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/imports"
)

// LoadJSON reads a JSON Lines pixel table, one object per row:
//
//	{"x": 0, "y": 0, "r": 0, "g": 255, "b": 0}
func LoadJSON(path string) (*dataframe.DataFrame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cannotRead(path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyTable
	}

	df, err := imports.LoadFromJSON(context.Background(), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if df == nil || len(df.Series) == 0 {
		return nil, ErrEmptyTable
	}

	return df, nil
}
