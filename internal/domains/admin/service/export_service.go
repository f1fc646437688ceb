package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	cm "consulting-backend/internal/contentmanager"
	"consulting-backend/internal/domains/admin/model"
	"consulting-backend/internal/domains/record"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Source lists every row of one resource.
type Source func(ctx context.Context) ([]cm.Record, error)

// SourceOf adapts a record service into an export source.
func SourceOf[T any, PT record.Ptr[T]](svc *record.Service[T, PT]) Source {
	return func(ctx context.Context) ([]cm.Record, error) {
		recs, err := svc.List(ctx, record.ListOptions{})
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(recs)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", svc.Name(), err)
		}
		var rows []cm.Record
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("decode %s: %w", svc.Name(), err)
		}
		return rows, nil
	}
}

// ExportService renders any registered tab as CSV or XLSX, using the tab's
// display fields as columns.
type ExportService struct {
	sources map[string]Source
}

func NewExportService(sources map[string]Source) *ExportService {
	return &ExportService{sources: sources}
}

// Export writes the resource to w. Unknown resources and formats fail
// with model.ErrUnknownResource and record.ValidationError respectively.
func (s *ExportService) Export(ctx context.Context, resource, format string, w io.Writer) error {
	if err := s.Check(resource, format); err != nil {
		return err
	}
	tab, _ := LookupTab(resource)

	rows, err := s.sources[resource](ctx)
	if err != nil {
		return err
	}

	header := make([]string, len(tab.Display))
	for i, key := range tab.Display {
		header[i] = tab.Schema.Label(key)
	}
	table := cm.Table(rows, tab.Display)

	if format == FormatXLSX {
		return cm.WriteXLSX(w, tab.Title, header, table)
	}
	return cm.WriteCSV(w, header, table)
}

// Check reports whether an export request would be accepted, so handlers
// can fail before writing headers.
func (s *ExportService) Check(resource, format string) error {
	_, ok := LookupTab(resource)
	if _, hasSrc := s.sources[resource]; !ok || !hasSrc {
		return model.ErrUnknownResource
	}
	if format != FormatCSV && format != FormatXLSX {
		return record.Invalid(fmt.Errorf("format must be %s or %s", FormatCSV, FormatXLSX))
	}
	return nil
}
