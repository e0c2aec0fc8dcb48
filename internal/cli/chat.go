package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/arkas/internal/narrative"
)

// Answerer answers one follow-up question.
type Answerer func(ctx context.Context, question string) (narrative.Result, error)

// RunChat reads questions line by line until an empty line, end of input or
// cancellation, printing each answer. It returns the number of questions
// answered.
func RunChat(ctx context.Context, r *NonBlockingReader, w io.Writer, ask Answerer) (int, error) {
	if _, err := fmt.Fprintln(w, TitleStyle.Render(RobotIcon+" Konsultasi Keuangan")); err != nil {
		return 0, err
	}

	count := 0
	for {
		if _, err := fmt.Fprint(w, FormatPrompt("Tanyakan tentang keuangan Anda (kosong untuk selesai)")); err != nil {
			return count, err
		}

		question, err := r.ReadLine(ctx)
		if errors.Is(err, ErrInputCancelled) {
			return count, nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return count, fmt.Errorf("failed to read question: %w", err)
		}
		if question == "" {
			return count, nil
		}

		result, askErr := WithSpinner(w, "Memproses pertanyaan Anda...", func() askResult {
			res, e := ask(ctx, question)
			return askResult{res, e}
		}).unpack()
		if askErr != nil {
			return count, askErr
		}
		count++

		if result.Fallback {
			if _, err := fmt.Fprintln(w, FormatWarning(fmt.Sprintf("Layanan AI tidak tersedia (%v); menampilkan jawaban umum.", result.Err))); err != nil {
				return count, err
			}
		}
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n\n%s\n%s\n\n",
			BoldStyle.Render(fmt.Sprintf("Pertanyaan %d:", count)), question,
			BoldStyle.Render("Jawaban:"), result.Text); err != nil {
			return count, err
		}

		if errors.Is(err, io.EOF) {
			return count, nil
		}
	}
}

type askResult struct {
	result narrative.Result
	err    error
}

func (a askResult) unpack() (narrative.Result, error) {
	return a.result, a.err
}
