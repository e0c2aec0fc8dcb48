package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/arkas/internal/cli"
	"github.com/Veraticus/arkas/internal/common"
	"github.com/Veraticus/arkas/internal/config"
	"github.com/Veraticus/arkas/internal/export"
	"github.com/Veraticus/arkas/internal/model"
	"github.com/Veraticus/arkas/internal/service"
	"github.com/Veraticus/arkas/internal/sheets"
	"github.com/Veraticus/arkas/internal/storage"
)

func worksheetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worksheet",
		Short: "Fill in and manage Stop-Start-Continue worksheets",
	}

	cmd.AddCommand(worksheetSubmitCmd())
	cmd.AddCommand(worksheetListCmd())
	cmd.AddCommand(worksheetDeleteCmd())
	cmd.AddCommand(worksheetExportCmd())
	cmd.AddCommand(worksheetMigrateCmd())

	return cmd
}

func worksheetSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Save a completed worksheet",
		Long: `Save a Stop-Start-Continue worksheet.

Each --stop, --start and --continue value is "activity|parameter" and may be
given up to three times.

Example:
  arkas worksheet submit --name Sari --email sari@example.co.id \
    --stop "Begadang|setiap malam" --start "Olahraga|3x seminggu"`,
		RunE: runWorksheetSubmit,
	}

	cmd.Flags().String("name", "", "your name")
	cmd.Flags().String("date", "", "worksheet date, YYYY-MM-DD (default today)")
	cmd.Flags().String("email", "", "your email address")
	for _, section := range model.Sections() {
		name := strings.ToLower(string(section))
		cmd.Flags().StringArray(name, nil, fmt.Sprintf("%s item as \"activity|parameter\"", section))
	}
	cmd.Flags().BoolP("interactive", "i", false, "fill in the worksheet in a form")

	return cmd
}

func runWorksheetSubmit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	sub, err := submissionFromFlags(cmd, time.Now())
	if err != nil {
		return err
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if err := cli.NewWorksheetForm(&sub).RunWithContext(ctx); err != nil {
			return fmt.Errorf("worksheet form canceled: %w", err)
		}
	}

	store, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Append(ctx, sub); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			for _, p := range verr.Problems {
				fmt.Fprintln(out, cli.FormatError(fmt.Sprintf("%s: %s", p.Field, p.Message)))
			}
		}
		return fmt.Errorf("worksheet not saved: %w", err)
	}

	common.LogInfo("worksheet saved", common.Fields{"name": sub.Name, "date": sub.Date})
	fmt.Fprintln(out, cli.FormatSuccess("Worksheet tersimpan. Terima kasih!"))
	return nil
}

func submissionFromFlags(cmd *cobra.Command, now time.Time) (model.Submission, error) {
	var sub model.Submission
	sub.Name, _ = cmd.Flags().GetString("name")
	sub.Email, _ = cmd.Flags().GetString("email")
	sub.Date, _ = cmd.Flags().GetString("date")
	if sub.Date == "" {
		sub.Date = now.Format(model.DateLayout)
	}

	for _, section := range model.Sections() {
		values, _ := cmd.Flags().GetStringArray(strings.ToLower(string(section)))
		if len(values) > model.ItemsPerSection {
			return sub, fmt.Errorf("%s accepts at most %d items, got %d", section, model.ItemsPerSection, len(values))
		}
		for i, v := range values {
			if err := sub.SetItem(section, i, parseItem(v)); err != nil {
				return sub, err
			}
		}
	}
	return sub, nil
}

// parseItem splits "activity|parameter"; a value without "|" is all
// activity.
func parseItem(s string) model.Item {
	activity, parameter, _ := strings.Cut(s, "|")
	return model.Item{
		Activity:  strings.TrimSpace(activity),
		Parameter: strings.TrimSpace(parameter),
	}
}

func worksheetListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved worksheets (admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkAdmin(cmd); err != nil {
				return err
			}

			store, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			submissions, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			printSubmissions(cmd.OutOrStdout(), submissions)
			return nil
		},
	}
	cmd.Flags().String("password", "", "admin password")
	return cmd
}

func printSubmissions(w io.Writer, submissions []model.Submission) {
	if len(submissions) == 0 {
		fmt.Fprintln(w, cli.FormatInfo("Belum ada data worksheet."))
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(cli.SubtleStyle).
		Headers("#", "Nama", "Tanggal", "Email", "Stop", "Start", "Continue").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return cli.TableHeaderStyle
			}
			return cli.TableCellStyle
		})

	for i, sub := range submissions {
		t.Row(strconv.Itoa(i+1), sub.Name, sub.Date, sub.Email,
			summarizeItems(sub.Stop), summarizeItems(sub.Start), summarizeItems(sub.Continue))
	}

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, cli.SubtleStyle.Render(fmt.Sprintf("%d worksheet", len(submissions))))
}

func summarizeItems(items [model.ItemsPerSection]model.Item) string {
	var lines []string
	for _, item := range items {
		if item.Activity == "" {
			continue
		}
		if item.Parameter != "" {
			lines = append(lines, fmt.Sprintf("%s (%s)", item.Activity, item.Parameter))
		} else {
			lines = append(lines, item.Activity)
		}
	}
	return strings.Join(lines, "\n")
}

func worksheetDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <number>",
		Short: "Delete a worksheet by its number in 'worksheet list' (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid worksheet number %q", args[0])
			}
			if err := checkAdmin(cmd); err != nil {
				return err
			}

			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				confirmed := false
				title := fmt.Sprintf("Hapus worksheet %d?", n)
				if err := cli.NewConfirmForm(title, &confirmed).RunWithContext(cmd.Context()); err != nil {
					return fmt.Errorf("confirmation canceled: %w", err)
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Dibatalkan."))
					return nil
				}
			}

			store, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Delete(cmd.Context(), n-1); err != nil {
				return fmt.Errorf("failed to delete worksheet %d: %w", n, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Worksheet %d dihapus.", n)))
			return nil
		},
	}
	cmd.Flags().String("password", "", "admin password")
	cmd.Flags().BoolP("yes", "y", false, "delete without asking for confirmation")
	return cmd
}

func worksheetExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all worksheets to Excel or Google Sheets (admin)",
		Long: `Export every worksheet, one row per item, to an .xlsx file.

With --sheets the same rows are also written to the configured Google
Sheets spreadsheet (see 'arkas auth sheets').`,
		RunE: runWorksheetExport,
	}
	cmd.Flags().String("password", "", "admin password")
	cmd.Flags().StringP("out", "o", "", "output file (default stop-start-continue-YYYYMMDD.xlsx)")
	cmd.Flags().Bool("sheets", false, "also write to Google Sheets")
	return cmd
}

func runWorksheetExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := checkAdmin(cmd); err != nil {
		return err
	}

	store, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	submissions, err := store.Load(ctx)
	if err != nil {
		return err
	}
	rows := export.Rows(submissions)

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		outPath = export.Filename(time.Now())
	}
	if err := writeXLSXFile(config.ExpandPath(outPath), rows); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%d baris diekspor ke %s", len(rows), outPath)))

	if toSheets, _ := cmd.Flags().GetBool("sheets"); !toSheets {
		return nil
	}

	sheetsCfg, err := config.LoadSheetsConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("google sheets not configured: %w", err)
	}
	writer, err := sheets.NewWriter(ctx, *sheetsCfg, slog.Default())
	if err != nil {
		return err
	}
	if err := writeRemote(cmd, writer, rows); err != nil {
		common.LogError(err, "google sheets export failed", common.Fields{"rows": len(rows)})
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Data dikirim ke Google Sheets."))
	return nil
}

func writeXLSXFile(path string, rows []export.Row) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.WriteXLSX(f, rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeRemote(cmd *cobra.Command, writer service.RowWriter, rows []export.Row) error {
	err := cli.WithSpinner(cmd.ErrOrStderr(), "Mengirim ke Google Sheets...", func() error {
		return writer.Write(cmd.Context(), export.Header, export.Values(rows))
	})
	if err == nil {
		return nil
	}

	var retryable *common.RetryableError
	switch {
	case common.IsRetryable(err):
		return common.NewUserError("Google Sheets sedang membatasi permintaan, coba lagi nanti", err)
	case errors.As(err, &retryable):
		return common.NewUserError("Google Sheets menolak permintaan, periksa izin dan ID spreadsheet", err)
	default:
		return err
	}
}

func worksheetMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy worksheets from a JSON file into the configured store",
		Long: `Replace the contents of the configured store (storage.backend) with the
worksheets found in a JSON file, e.g. when moving from the JSON backend to
SQLite or PostgreSQL.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, _ := cmd.Flags().GetString("from")
			if from == "" {
				return errors.New("--from is required")
			}

			src, err := storage.OpenJSONFile(config.ExpandPath(from))
			if err != nil {
				return common.NewUserError("File sumber tidak ditemukan", err)
			}
			dst, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = dst.Close() }()

			n, err := storage.Copy(cmd.Context(), dst, src)
			if errors.Is(err, storage.ErrEmptySource) {
				return common.NewUserError("File sumber tidak berisi worksheet; store tidak diubah", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%d worksheet disalin.", n)))
			return nil
		},
	}
	cmd.Flags().String("from", "", "JSON file to copy from")
	return cmd
}
