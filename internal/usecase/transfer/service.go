package transfer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/eslsoft/spellnet/internal/entity"
	"github.com/eslsoft/spellnet/internal/repository"
)

// Format is the file format of an import.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Columns is the CSV header written on export and matched on import.
var Columns = []string{"english_word", "chinese_definition", "example_sentence_en", "example_sentence_cn", "week_tag"}

const utf8BOM = "\ufeff"

// DetectFormat maps a file name to an import format by extension. Names
// without an extension are read as CSV.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt", "":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ImportResult counts what an import did with the data rows it saw.
type ImportResult struct {
	Processed int `json:"processed"`
	Imported  int `json:"imported"`
	Skipped   int `json:"skipped"`
}

type ProgressReporter interface {
	Start(total int)
	Increment(delta int)
	Finish()
}

type noopProgress struct{}

func (noopProgress) Start(int)     {}
func (noopProgress) Increment(int) {}
func (noopProgress) Finish()       {}

// Service moves the word bank in and out of spreadsheet files.
type Service struct {
	words    repository.WordRepository
	logger   logrus.FieldLogger
	clock    func() time.Time
	reporter ProgressReporter
}

type Option func(*Service)

// WithProgressReporter registers a reporter that receives per-row callbacks.
func WithProgressReporter(reporter ProgressReporter) Option {
	return func(s *Service) {
		if reporter != nil {
			s.reporter = reporter
		}
	}
}

func NewService(words repository.WordRepository, logger logrus.FieldLogger, opts ...Option) *Service {
	svc := &Service{
		words:    words,
		logger:   logger,
		clock:    time.Now,
		reporter: noopProgress{},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Export writes every word as CSV, ordered by id, and returns the number of
// data rows written.
func (s *Service) Export(ctx context.Context, w io.Writer) (int, error) {
	words, err := s.words.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	s.reporter.Start(len(words))
	for _, word := range words {
		record := []string{
			word.EnglishWord,
			word.ChineseDefinition,
			word.ExampleSentenceEN,
			word.ExampleSentenceCN,
			word.WeekTag,
		}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("write word %d: %w", word.ID, err)
		}
		s.reporter.Increment(1)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}
	s.reporter.Finish()
	return len(words), nil
}

// ExportToDir writes a timestamped snapshot into dir and returns its path.
func (s *Service) ExportToDir(ctx context.Context, dir string) (path string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	name := fmt.Sprintf("words-%s-%s.csv", s.clock().UTC().Format("20060102T150405Z"), uuid.NewString()[:8])
	path = filepath.Join(dir, name)

	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if _, err = s.Export(ctx, file); err != nil {
		return "", err
	}
	return path, nil
}

// Import adds the rows of r to the bank. Rows missing the english word or the
// definition, duplicates and rows the store rejects are skipped; only an
// unreadable file or an empty one fails the whole import.
func (s *Service) Import(ctx context.Context, r io.Reader, format Format) (*ImportResult, error) {
	var (
		rows      [][]string
		malformed int
		err       error
	)
	switch format {
	case FormatCSV, "":
		rows, malformed, err = readCSV(r)
	case FormatXLSX:
		rows, err = readXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	words, processed := mapRows(rows)
	processed += malformed
	if processed == 0 {
		return nil, entity.ErrEmptyImport
	}

	result := &ImportResult{Processed: processed, Skipped: processed - len(words)}
	now := s.clock().UTC()
	s.reporter.Start(processed)
	s.reporter.Increment(result.Skipped)
	for _, word := range words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		word.CreatedAt = now
		inserted, err := s.words.InsertIgnore(ctx, word)
		switch {
		case err != nil:
			s.logger.WithError(err).WithField("english_word", word.EnglishWord).Warn("import row rejected")
			result.Skipped++
		case inserted:
			result.Imported++
		default:
			result.Skipped++
		}
		s.reporter.Increment(1)
	}
	s.reporter.Finish()

	s.logger.WithFields(logrus.Fields{
		"processed": result.Processed,
		"imported":  result.Imported,
		"skipped":   result.Skipped,
	}).Info("word import finished")
	return result, nil
}

// mapRows turns a header row plus data rows into valid words. Blank rows are
// ignored; processed counts every other data row.
func mapRows(rows [][]string) ([]*entity.Word, int) {
	if len(rows) == 0 {
		return nil, 0
	}
	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	cell := func(row []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var (
		words     []*entity.Word
		processed int
	)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		processed++
		word := &entity.Word{
			EnglishWord:       cell(row, "english_word"),
			ChineseDefinition: cell(row, "chinese_definition"),
			ExampleSentenceEN: cell(row, "example_sentence_en"),
			ExampleSentenceCN: cell(row, "example_sentence_cn"),
			WeekTag:           cell(row, "week_tag"),
		}
		word.Normalize()
		if word.Validate() != nil {
			continue
		}
		words = append(words, word)
	}
	return words, processed
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// readCSV reads all records. Data records the parser rejects are counted
// rather than failing the file; a rejected header fails it.
func readCSV(r io.Reader) (rows [][]string, malformed int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			if len(rows) == 0 {
				return nil, 0, fmt.Errorf("%w: malformed header on line %d: %v", entity.ErrEmptyImport, parseErr.Line, parseErr.Err)
			}
			malformed++
			continue
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, malformed, nil
}

// readXLSX returns the rows of the first sheet.
func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open xlsx: %v", entity.ErrUnsupportedFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, entity.ErrEmptyImport
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
