package sheets

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/poultry/internal/config"
)

// errNoTab is returned when a record operation names no tab.
var errNoTab = errors.New("sheet tab must not be empty")

// Repository is the spreadsheet surface the record store needs: every tab
// holds rows of [id, payload] in columns A and B.
type Repository interface {
	AppendRecord(ctx context.Context, tab, id, payload string) error
	ReadRecords(ctx context.Context, tab string) ([][]interface{}, error)
}

// recordRange is the A1 range covering the id and payload columns of tab.
func recordRange(tab string) (string, error) {
	if tab == "" {
		return "", errNoTab
	}
	return fmt.Sprintf("'%s'!A:B", tab), nil
}

// GoogleSheetRepository implements Repository on one spreadsheet through the
// Google Sheets API.
type GoogleSheetRepository struct {
	values        *sheetsapi.SpreadsheetsValuesService
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository authenticates with the service-account file and
// binds the repository to cfg.SpreadsheetID.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("init sheets client: %w", err)
	}

	return newGoogleSheetRepository(svc, cfg.SpreadsheetID, logger), nil
}

func newGoogleSheetRepository(svc *sheetsapi.Service, spreadsheetID string, logger *zap.Logger) *GoogleSheetRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleSheetRepository{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}
}

// AppendRecord adds one [id, payload] row below the last row of tab. Values
// are written RAW so payloads are never parsed as formulas or dates.
func (r *GoogleSheetRepository) AppendRecord(ctx context.Context, tab, id, payload string) error {
	rng, err := recordRange(tab)
	if err != nil {
		return err
	}

	row := &sheetsapi.ValueRange{Values: [][]interface{}{{id, payload}}}
	_, err = r.values.Append(r.spreadsheetID, rng, row).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", tab, err)
	}

	r.logger.Debug("record appended", zap.String("tab", tab), zap.String("id", id))
	return nil
}

// ReadRecords returns every row of the id and payload columns of tab,
// header included. Cells come back unformatted.
func (r *GoogleSheetRepository) ReadRecords(ctx context.Context, tab string) ([][]interface{}, error) {
	rng, err := recordRange(tab)
	if err != nil {
		return nil, err
	}

	resp, err := r.values.Get(r.spreadsheetID, rng).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", tab, err)
	}
	return resp.Values, nil
}
