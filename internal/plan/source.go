package plan

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/challenge45/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// maxPlanBodyBytes caps a published plan export, a 45 day plan is a few KB.
const maxPlanBodyBytes = 4 << 20

// Source fetches the raw rows of one routine's plan.
type Source interface {
	Rows(ctx context.Context) ([]WorkoutRow, error)
	Name() string
}

// HTTPSource reads a published CSV export of the plan spreadsheet.
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

func NewHTTPSource(url string, httpClient *http.Client) *HTTPSource {
	return &HTTPSource{
		url:        url,
		httpClient: httpClient,
	}
}

func (s *HTTPSource) Name() string {
	return "csv"
}

func (s *HTTPSource) Rows(ctx context.Context) (_ []WorkoutRow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "plan.source.http.rows")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("url", s.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected plan response status: %d", resp.StatusCode)
	}

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxPlanBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read plan response: %w", err)
	}
	if len(respBytes) > maxPlanBodyBytes {
		return nil, fmt.Errorf("plan response larger than %d bytes", maxPlanBodyBytes)
	}

	return ParseCSV(bytes.NewReader(respBytes))
}

// SheetsSource reads the plan directly from a Google Sheets range,
// the first row of the range is the header.
type SheetsSource struct {
	service       *sheets.Service
	spreadsheetID string
	readRange     string
}

func NewSheetsSource(ctx context.Context, spreadsheetID, readRange string, opts ...option.ClientOption) (*SheetsSource, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsSource{
		service:       service,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}, nil
}

func (s *SheetsSource) Name() string {
	return "sheets"
}

func (s *SheetsSource) Rows(ctx context.Context) (_ []WorkoutRow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "plan.source.sheets.rows")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("range", s.readRange))

	resp, err := s.service.Spreadsheets.Values.
		Get(s.spreadsheetID, s.readRange).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("get sheet values: %w", err)
	}

	table := make([][]string, 0, len(resp.Values))
	for _, values := range resp.Values {
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = fmt.Sprint(v)
		}
		table = append(table, record)
	}

	return ParseTable(table)
}
