// Package sheets is the Google Sheets read-range collaborator: it hands the
// pipeline raw cell grids plus a last-modified stamp per spreadsheet.
package sheets

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/termopark/finboard/pkg/models"
)

// Client wraps the Sheets and Drive services behind one service-account
// credential.
type Client struct {
	sheets *sheetsapi.Service
	drive  *drive.Service
	logger *log.Logger
}

// NewClient authenticates with a service-account key (the JSON document, not
// a file path) and builds read-only Sheets and Drive services.
func NewClient(ctx context.Context, credentialsJSON []byte, logger *log.Logger) (*Client, error) {
	if len(credentialsJSON) == 0 {
		return nil, fmt.Errorf("missing service account credentials")
	}
	cfg, err := google.JWTConfigFromJSON(credentialsJSON,
		sheetsapi.SpreadsheetsReadonlyScope,
		drive.DriveMetadataReadonlyScope,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	httpClient := cfg.Client(ctx)

	sheetsService, err := sheetsapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	driveService, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Client{sheets: sheetsService, drive: driveService, logger: logger}, nil
}

// Spreadsheet returns a handle bound to one spreadsheet ID.
func (c *Client) Spreadsheet(id string) *Spreadsheet {
	return &Spreadsheet{client: c, id: id}
}

// Spreadsheet reads ranges from a single spreadsheet.
type Spreadsheet struct {
	client *Client
	id     string
}

// ReadRange fetches one A1-notation range as a cell grid. Values come back
// unformatted so numbers stay numbers; dates render as the strings the
// bookkeepers typed, which is what the normalizers expect.
func (s *Spreadsheet) ReadRange(ctx context.Context, rng string) ([][]models.Cell, error) {
	resp, err := s.client.sheets.Spreadsheets.Values.Get(s.id, rng).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", rng, err)
	}
	s.client.logger.Debug("read sheet range", "spreadsheet", s.id, "range", rng, "rows", len(resp.Values))
	return models.GridFromValues(resp.Values), nil
}

// ModifiedTime returns the spreadsheet's last-modified stamp from Drive,
// used by the caller for cache display, not consumed by the pipeline.
func (s *Spreadsheet) ModifiedTime(ctx context.Context) (string, error) {
	f, err := s.client.drive.Files.Get(s.id).Fields("modifiedTime").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to read file metadata: %w", err)
	}
	return f.ModifiedTime, nil
}
