package repository

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
)

// RecordCSV appends completed intake records to a CSV file, one row per
// interview. Columns are id, created_at, the questionnaire's output fields
// in question order, the recommendation fields and the forced_advance flag.
// The header is written once, when the file is created.
type RecordCSV struct {
	path   string
	fields []string
	mu     sync.Mutex
}

var recommendationColumns = []string{
	"recommended_approach",
	"suggested_model_type",
	"complexity_estimate",
	"next_steps",
	"forced_advance",
}

func NewRecordCSV(path string, questionnaire *entity.Questionnaire) *RecordCSV {
	return &RecordCSV{
		path:   path,
		fields: questionnaire.FieldOrder(),
	}
}

// Append writes one record as a CSV row, creating the file and header on
// first use. Serialized with a mutex: concurrent sessions may complete at
// the same time and the file is a single shared resource.
func (s *RecordCSV) Append(record *entity.IntakeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create csv directory: %w", err)
		}
	}

	writeHeader := false
	if info, err := os.Stat(s.path); os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		writeHeader = true
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if writeHeader {
		if err := w.Write(s.header()); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
	}

	if err := w.Write(s.row(record)); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

func (s *RecordCSV) header() []string {
	header := []string{"id", "created_at"}
	header = append(header, s.fields...)
	header = append(header, recommendationColumns...)
	return header
}

func (s *RecordCSV) row(record *entity.IntakeRecord) []string {
	row := []string{record.ID, record.CreatedAt.Format("2006-01-02T15:04:05Z07:00")}
	for _, field := range s.fields {
		row = append(row, record.Fields[field])
	}
	row = append(row,
		record.RecommendedApproach,
		record.SuggestedModelType,
		record.ComplexityEstimate,
		record.NextSteps,
		fmt.Sprintf("%t", record.ForcedAdvance),
	)
	return row
}
