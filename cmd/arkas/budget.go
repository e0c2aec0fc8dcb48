package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Veraticus/arkas/internal/budget"
	"github.com/Veraticus/arkas/internal/cli"
	"github.com/Veraticus/arkas/internal/currency"
	"github.com/Veraticus/arkas/internal/model"
	"github.com/Veraticus/arkas/internal/narrative"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Simulate a monthly salary allocation",
		Long: `Compare monthly spending per category against the recommended share of salary.

Amounts accept plain digits or "." thousands separators, e.g. 5.000.000.
Categories left out keep the midpoint of their recommended range.

Examples:
  arkas budget --salary 8.000.000 --bonus 1.000.000
  arkas budget --spend 1.000.000,1.500.000,3.000.000 --no-ai
  arkas budget --interactive --chat`,
		RunE: runBudget,
	}

	cmd.Flags().String("salary", "", "monthly salary in rupiah (default 5.000.000)")
	cmd.Flags().String("bonus", "", "average monthly incentive/overtime in rupiah")
	cmd.Flags().StringSlice("spend", nil, "spend per category, in display order")
	cmd.Flags().BoolP("interactive", "i", false, "enter amounts in a form")
	cmd.Flags().Bool("no-ai", false, "skip the text-generation service")
	cmd.Flags().Bool("chat", false, "ask follow-up questions after the analysis")

	return cmd
}

func runBudget(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	interactive, _ := cmd.Flags().GetBool("interactive")
	noAI, _ := cmd.Flags().GetBool("no-ai")
	chat, _ := cmd.Flags().GetBool("chat")

	sess := budget.NewSession(model.DefaultCategories())

	if interactive {
		in := cli.NewBudgetInput(sess)
		if err := cli.NewBudgetForm(in, sess.Categories).RunWithContext(ctx); err != nil {
			return fmt.Errorf("budget form canceled: %w", err)
		}
		sess.Update(in.Amounts())
	} else {
		salary, _ := cmd.Flags().GetString("salary")
		bonus, _ := cmd.Flags().GetString("bonus")
		spends, _ := cmd.Flags().GetStringSlice("spend")
		if err := applyBudgetFlags(sess, salary, bonus, spends); err != nil {
			return err
		}
	}

	gen := newGenerator(noAI)
	printAnalysis(ctx, out, sess, gen)

	if !chat {
		return nil
	}

	handler := cli.NewInterruptHandler(out, "Sesi konsultasi selesai.")
	chatCtx, stop := handler.HandleInterrupts(ctx)
	defer stop()

	reader := cli.NewNonBlockingReader(cmd.InOrStdin())
	_, err := cli.RunChat(chatCtx, reader, out, func(ctx context.Context, q string) (narrative.Result, error) {
		return gen.Ask(ctx, sess, q)
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, cli.SubtleStyle.Render(narrative.Disclaimer))
	return nil
}

// applyBudgetFlags overrides the session defaults with the given flag
// values. An empty salary keeps the default; a shorter spend list keeps the
// remaining midpoints.
func applyBudgetFlags(sess *budget.Session, salary, bonus string, spends []string) error {
	if len(spends) > len(sess.Categories) {
		return fmt.Errorf("got %d spend values, expected at most %d", len(spends), len(sess.Categories))
	}

	newSalary := sess.Salary
	if salary != "" {
		newSalary = currency.Parse(salary)
	}

	amounts := budget.DefaultSpends(newSalary, sess.Categories)
	for i, s := range spends {
		amounts[i] = currency.Parse(s)
	}

	sess.Update(newSalary, currency.Parse(bonus), amounts)
	return nil
}

// printAnalysis renders the table, warnings and the explanation, and records
// the result in the session.
func printAnalysis(ctx context.Context, w io.Writer, sess *budget.Session, gen *narrative.Generator) {
	a := sess.Analyze()

	fmt.Fprintln(w, cli.FormatTitle("Hasil Simulasi"))
	fmt.Fprintln(w, cli.RenderSummary(a))
	fmt.Fprintln(w)

	if warning := a.OverBudgetWarning(); warning != "" {
		fmt.Fprintln(w, cli.FormatWarning(warning))
	}
	if flags := cli.RenderFlags(a); flags != "" {
		fmt.Fprint(w, flags)
	}
	fmt.Fprintln(w, cli.FormatInfo(a.BonusSentence()))
	fmt.Fprintln(w)

	result := cli.WithSpinner(w, "Menganalisis keuangan Anda...", func() narrative.Result {
		return gen.Explain(ctx, a)
	})
	if result.Fallback {
		fmt.Fprintln(w, cli.FormatWarning(fmt.Sprintf("Layanan AI tidak tersedia (%v); menampilkan analisis standar.", result.Err)))
	}
	fmt.Fprintln(w, cli.RenderBox(cli.RobotIcon+" Analisis", result.Text))

	sess.Record(a, result.Text, result.Fallback)
}
