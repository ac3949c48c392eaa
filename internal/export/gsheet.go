package export

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/shrimpsizemoose/trekker/logger"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/memalihaider/techverse-portal/internal/app"
)

// GSheetExporter pushes the live leaderboard into Google Sheets on a cron
// schedule, one job per configured sheet.
type GSheetExporter struct {
	service   *app.Service
	scheduler *gocron.Scheduler
}

func NewGSheetExporter(service *app.Service) (*GSheetExporter, error) {
	ctx := context.Background()
	scheduler := gocron.NewScheduler(time.UTC)

	e := &GSheetExporter{
		service:   service,
		scheduler: scheduler,
	}

	for _, cfg := range service.Config.GSheet {
		svc, err := sheets.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath))
		if err != nil {
			return nil, fmt.Errorf("failed to create sheets service: %w", err)
		}

		cfg := cfg
		if _, err := scheduler.Cron(cfg.Schedule).Do(func() {
			if err := e.Export(svc, &cfg); err != nil {
				logger.Error.Printf("Leaderboard export to %s failed: %v", cfg.SheetName, err)
			}
		}); err != nil {
			return nil, fmt.Errorf("failed to schedule export: %w", err)
		}
	}

	scheduler.StartAsync()
	return e, nil
}

func (e *GSheetExporter) Stop() {
	e.scheduler.Stop()
}

// Export writes the current ranking starting at row 2, leaving row 1 for the
// sheet's own header.
func (e *GSheetExporter) Export(svc *sheets.Service, cfg *app.GSheetConfig) error {
	rows, err := e.service.Leaderboard()
	if err != nil {
		return fmt.Errorf("failed to build leaderboard: %w", err)
	}

	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		avg := interface{}("")
		if row.Scores.AverageTotal != nil {
			avg = *row.Scores.AverageTotal
		}
		values = append(values, []interface{}{
			row.Rank,
			row.Team,
			row.Name,
			row.Phase,
			row.Scores.Count,
			avg,
		})
	}

	updateRange := fmt.Sprintf("%s!A2", cfg.SheetName)
	_, err = svc.Spreadsheets.Values.Update(cfg.SheetID, updateRange,
		&sheets.ValueRange{Values: values}).ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to update leaderboard range: %w", err)
	}

	if cfg.TimestampRange != "" {
		timestamp := fmt.Sprintf("UPD: %s", time.Now().UTC().Format("2 January 15:04"))
		tsRange := fmt.Sprintf("%s!%s", cfg.SheetName, cfg.TimestampRange)
		_, err = svc.Spreadsheets.Values.Update(cfg.SheetID, tsRange,
			&sheets.ValueRange{Values: [][]interface{}{{timestamp}}}).ValueInputOption("RAW").Do()
	}

	return err
}
