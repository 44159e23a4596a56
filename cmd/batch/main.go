package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"address-validator/internal/config"
	"address-validator/internal/models"
	"address-validator/internal/provider"
	"address-validator/internal/repository"
	"address-validator/internal/service"
	"address-validator/internal/validation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type batchOptions struct {
	file      string
	column    string
	output    string
	store     bool
	configDir string
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Validate every address in a CSV file",
		Long: `Reads addresses from a CSV file, validates each one against the geocoding
provider and prints a summary. Results can be written to a CSV file and
bulk-copied into the validation history table.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Path to the CSV file to validate")
	cmd.Flags().StringVar(&opts.column, "column", "address", "Name of the column holding the address")
	cmd.Flags().StringVar(&opts.output, "output", "", "Write results to this CSV file")
	cmd.Flags().BoolVar(&opts.store, "store", false, "Copy results into the validation history table")
	cmd.Flags().StringVar(&opts.configDir, "config", "configs", "Directory containing app.env")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func run(ctx context.Context, opts *batchOptions) error {
	fmt.Printf("Starting batch validation from file: %s\n", opts.file)

	addresses, err := parseCSV(opts.file, opts.column)
	if err != nil {
		return fmt.Errorf("error parsing CSV: %w", err)
	}

	fmt.Printf("Parsed %d addresses\n", len(addresses))

	cfg, err := config.LoadConfig(opts.configDir)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	geocoder := provider.NewGoogleGeocoder(provider.Options{
		APIKey:    cfg.GoogleMapsAPIKey,
		Endpoint:  cfg.ProviderEndpoint,
		Timeout:   cfg.ProviderTimeout,
		RateLimit: cfg.ProviderRateLimit,
		Burst:     cfg.ProviderBurst,
	})
	svc := service.NewAddressValidationService(geocoder, validation.NewClassifier(cfg.SimilarityThreshold), nil, cfg.MaxAddressLength)

	records, summary, err := validateAll(ctx, svc, addresses, progressbar.Default(int64(len(addresses)), "validating"))
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := writeCSV(opts.output, records); err != nil {
			return fmt.Errorf("error writing results: %w", err)
		}
		fmt.Printf("Wrote results to %s\n", opts.output)
	}

	if opts.store {
		if err := storeRecords(ctx, cfg.DBSource, records); err != nil {
			return err
		}
	}

	fmt.Printf("Exact: %d, corrected: %d, unverifiable: %d, failed: %d\n",
		summary.counts[models.StatusExact], summary.counts[models.StatusCorrected], summary.counts[models.StatusUnverifiable], summary.failed)
	return nil
}

type batchSummary struct {
	counts map[models.Status]int
	failed int
}

type addressValidator interface {
	Validate(ctx context.Context, address string) (*models.ValidationResult, error)
}

// validateAll validates addresses in order. Quota and access errors abort the
// run since every following request would fail the same way.
func validateAll(ctx context.Context, svc addressValidator, addresses []string, bar *progressbar.ProgressBar) ([]models.ValidationRecord, batchSummary, error) {
	summary := batchSummary{counts: map[models.Status]int{}}
	records := make([]models.ValidationRecord, 0, len(addresses))

	for _, address := range addresses {
		result, err := svc.Validate(ctx, address)
		if bar != nil {
			_ = bar.Add(1)
		}
		if err != nil {
			if kind, ok := provider.KindOf(err); ok && (kind == provider.ErrorKindQuotaExceeded || kind == provider.ErrorKindAccessDenied) {
				return records, summary, fmt.Errorf("aborting batch: %w", err)
			}
			summary.failed++
			log.Warn().Err(err).Str("address", address).Msg("validation failed")
			continue
		}

		summary.counts[result.Outcome.Status()]++
		records = append(records, models.NewValidationRecord(uuid.New(), result))
	}

	return records, summary, nil
}

func parseCSV(filePath, column string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), column) {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, fmt.Errorf("column %q not found in header", column)
	}

	var addresses []string
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if index >= len(record) || strings.TrimSpace(record[index]) == "" {
			continue
		}
		addresses = append(addresses, record[index])
	}

	return addresses, nil
}

func writeCSV(filePath string, records []models.ValidationRecord) (err error) {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"input", "status", "formatted_address", "alternatives", "message"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{r.Input, string(r.Status), r.FormattedAddress, strings.Join(r.Alternatives, " | "), r.Message}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func storeRecords(ctx context.Context, dbSource string, records []models.ValidationRecord) error {
	if dbSource == "" {
		return errors.New("--store requires DB_SOURCE to be set")
	}

	pool, err := pgxpool.New(ctx, dbSource)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer pool.Close()

	repo := repository.NewRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}

	n, err := repo.CopyValidations(ctx, records)
	if err != nil {
		return err
	}
	if n != int64(len(records)) {
		return fmt.Errorf("record count mismatch: expected %d, got %d", len(records), n)
	}

	fmt.Printf("Stored %d validations\n", n)
	return nil
}
