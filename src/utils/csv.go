package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/tradekit/investright/src/models"
)

// ExportCandlesToCsv writes candles to a timestamped CSV file inside outDir,
// creating the directory if needed, and returns the file path.
func ExportCandlesToCsv(outDir string, candles []models.CandleDTO, outFilePrefix string) (string, error) {
	now := time.Now()
	outFilePath := path.Join(outDir, fmt.Sprintf("%s_%s.csv", outFilePrefix, now.Format("2006-01-02_15-04-05")))

	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
			return "", fmt.Errorf("ExportCandlesToCsv: failed to create directory: %w", err)
		}
	}

	file, err := os.Create(outFilePath)
	if err != nil {
		return "", fmt.Errorf("ExportCandlesToCsv: failed to create file: %w", err)
	}
	defer file.Close()

	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		writer := csv.NewWriter(out)
		return gocsv.NewSafeCSVWriter(writer)
	})

	if err := gocsv.MarshalFile(&candles, file); err != nil {
		return "", fmt.Errorf("ExportCandlesToCsv: failed to write to file: %w", err)
	}

	return outFilePath, nil
}
