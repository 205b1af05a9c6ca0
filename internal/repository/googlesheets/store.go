package googlesheets

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/sheet"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const valueInputOption = "USER_ENTERED"

type storeImpl struct {
	svc *sheets.Service
}

// NewStore authenticates with a base64-encoded service-account JSON key.
func NewStore(ctx context.Context, credentialsB64 string) (sheet.Store, error) {
	raw, err := base64.StdEncoding.DecodeString(credentialsB64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode google credentials: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, raw, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse google credentials: %w", err)
	}

	httpClient := oauth2.NewClient(ctx, creds.TokenSource)
	httpClient.Timeout = 15 * time.Second

	return NewStoreWithOptions(ctx, option.WithHTTPClient(httpClient))
}

// NewStoreWithOptions builds a store from raw client options, e.g. a custom
// endpoint in tests.
func NewStoreWithOptions(ctx context.Context, opts ...option.ClientOption) (sheet.Store, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &storeImpl{svc: svc}, nil
}

// Get implements sheet.Store.
func (s *storeImpl) Get(ctx context.Context, sheetID string, rng string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(sheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rng, err)
	}

	values := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellString(v)
		}
		values = append(values, cells)
	}
	return values, nil
}

// Append implements sheet.Store.
func (s *storeImpl) Append(ctx context.Context, sheetID string, rng string, row []string) (int64, error) {
	resp, err := s.svc.Spreadsheets.Values.Append(sheetID, rng, toValueRange(row)).
		ValueInputOption(valueInputOption).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("failed to append to %s: %w", rng, err)
	}
	if resp.Updates == nil {
		return 0, nil
	}
	return resp.Updates.UpdatedRows, nil
}

// Update implements sheet.Store.
func (s *storeImpl) Update(ctx context.Context, sheetID string, rng string, row []string) error {
	_, err := s.svc.Spreadsheets.Values.Update(sheetID, rng, toValueRange(row)).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", rng, err)
	}
	return nil
}

func toValueRange(row []string) *sheets.ValueRange {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return &sheets.ValueRange{Values: [][]interface{}{cells}}
}

func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
