package loader

import (
	"context"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/imports"
	"github.com/xitongsys/parquet-go-source/local"
)

// LoadParquet reads a Parquet pixel table.
func LoadParquet(path string) (*dataframe.DataFrame, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, cannotRead(path, err)
	}
	defer fr.Close()

	df, err := imports.LoadFromParquet(context.Background(), fr)
	if err != nil {
		return nil, err
	}

	if df == nil || len(df.Series) == 0 {
		return nil, ErrEmptyTable
	}

	return df, nil
}
