package audit

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Service builds order reports on demand and delivers them to managers.
type Service struct {
	exporter TableExporter
	writer   func() ExcelWriter
	notifier Notifier
	logger   *zerolog.Logger
	now      func() time.Time
}

// NewService creates an audit service.
func NewService(exporter TableExporter, writerFactory func() ExcelWriter, notifier Notifier, logger *zerolog.Logger) *Service {
	return &Service{
		exporter: exporter,
		writer:   writerFactory,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// ExportOrders writes every export table to one workbook, a sheet per
// table, and sends it to the managers.
func (s *Service) ExportOrders(ctx context.Context) error {
	started := s.now()

	tables, err := s.exporter.GetTableNames(ctx)
	if err != nil {
		return fmt.Errorf("list export tables: %w", err)
	}

	w := s.writer()
	totalRows := 0

	for _, table := range tables {
		rows, columns, err := s.exporter.GetTableData(ctx, table)
		if err != nil {
			return fmt.Errorf("export table %s: %w", table, err)
		}

		if err := w.AddSheet(table); err != nil {
			return err
		}
		if err := w.WriteHeader(columns); err != nil {
			return err
		}
		for _, row := range rows {
			vals := make([]interface{}, len(columns))
			for i, col := range columns {
				vals[i] = row[col]
			}
			if err := w.WriteRow(vals); err != nil {
				return err
			}
		}
		totalRows += len(rows)
	}

	var buf bytes.Buffer
	if err := w.Save(&buf); err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}

	filename := Filename(started)
	caption := fmt.Sprintf("Отчет по заказам на %s", started.Format("02.01.2006"))
	if err := s.notifier.SendDocument(ctx, filename, &buf, caption); err != nil {
		return fmt.Errorf("send report: %w", err)
	}

	s.logger.Info().
		Str("filename", filename).
		Int("tables", len(tables)).
		Int("rows", totalRows).
		Dur("took", time.Since(started)).
		Msg("order export delivered")
	return nil
}
