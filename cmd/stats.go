package cmd

import (
	"fmt"
	"io"

	"github.com/jjenkins/hansard/internal/model"
	"github.com/jjenkins/hansard/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var statsReadings bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a summary of the loaded parliamentary records",
	Long: `Stats prints the number of sittings, members, bills and sections in the
database, how many sittings fall in the current year, and the latest sitting.

Examples:
  # Summary only
  ./hansard stats

  # Also list the bill readings from the latest sitting
  ./hansard stats --readings`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsReadings, "readings", false, "List bill readings from the latest sitting")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := store.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	stats, err := store.NewStatsStore(db).Get(ctx)
	if err != nil {
		return err
	}

	var readings []model.BillReading
	if statsReadings {
		readings, err = store.NewBillStore(db).ReadingsFromLastSitting(ctx)
		if err != nil {
			return err
		}
	}

	printStats(cmd.OutOrStdout(), stats, readings)
	return nil
}

func printStats(w io.Writer, stats *model.Stats, readings []model.BillReading) {
	p := message.NewPrinter(language.English)

	p.Fprintln(w, "=== Hansard Summary ===")
	p.Fprintf(w, "Sittings:           %d\n", stats.SessionCount)
	p.Fprintf(w, "Sittings this year: %d\n", stats.SittingsThisYear)
	p.Fprintf(w, "Members:            %d\n", stats.MemberCount)
	p.Fprintf(w, "Bills:              %d\n", stats.BillCount)
	p.Fprintf(w, "Sections:           %d\n", stats.SectionCount)

	if s := stats.LatestSession; s != nil {
		date := s.Date.String()
		if date == "" {
			date = "undated"
		}
		p.Fprintf(w, "Latest sitting:     %s (sitting %d, %d sections)\n", date, s.SittingNo, s.SectionCount)
	} else {
		p.Fprintln(w, "Latest sitting:     none")
	}

	if readings == nil {
		return
	}
	p.Fprintln(w, "")
	p.Fprintln(w, "=== Readings at the latest sitting ===")
	if len(readings) == 0 {
		p.Fprintln(w, "No bill readings recorded.")
		return
	}
	for _, r := range readings {
		p.Fprintf(w, "%s  %s\n", r.SectionType, r.BillTitle)
	}
}
