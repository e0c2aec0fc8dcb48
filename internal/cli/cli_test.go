package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/arkas/internal/budget"
	"github.com/Veraticus/arkas/internal/model"
	"github.com/Veraticus/arkas/internal/narrative"
)

func TestNonBlockingReader_ReadLine(t *testing.T) {
	r := NewNonBlockingReader(strings.NewReader("  pertama \nkedua"))

	line, err := r.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pertama", line)

	line, err = r.ReadLine(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "kedua", line)
}

func TestNonBlockingReader_Cancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	r := NewNonBlockingReader(pr)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.ReadLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestNewNonBlockingReader_NilPanics(t *testing.T) {
	assert.Panics(t, func() { NewNonBlockingReader(nil) })
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(""))
	assert.NoError(t, ValidateAmount("5000000"))
	assert.NoError(t, ValidateAmount("5.000.000"))
	assert.ErrorIs(t, ValidateAmount("lima juta"), ErrAmountFormat)
	assert.ErrorIs(t, ValidateAmount("-100"), ErrAmountFormat)
}

func TestValidateEmailAndDate(t *testing.T) {
	assert.NoError(t, ValidateEmail("sari@example.co.id"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("sari@"))

	assert.NoError(t, ValidateDate("2025-01-15"))
	assert.Error(t, ValidateDate("15-01-2025"))
}

func TestBudgetInput_RoundTrip(t *testing.T) {
	s := budget.NewSession(model.DefaultCategories())
	in := NewBudgetInput(s)

	assert.Equal(t, "5.000.000", in.Salary)
	require.Len(t, in.Spends, 7)

	in.Bonus = "1.250.000"
	in.Spends[0] = "abc"
	salary, bonus, spends := in.Amounts()
	assert.Equal(t, int64(5000000), salary)
	assert.Equal(t, int64(1250000), bonus)
	assert.Equal(t, int64(0), spends[0])
	assert.Equal(t, s.Spends[1], spends[1])
}

func TestNewWorksheetForm_DefaultsDate(t *testing.T) {
	var sub model.Submission
	form := NewWorksheetForm(&sub)
	require.NotNil(t, form)
	assert.Equal(t, time.Now().Format(model.DateLayout), sub.Date)
}

func TestRenderSummary(t *testing.T) {
	cats := model.DefaultCategories()
	spends := budget.DefaultSpends(5000000, cats)
	spends[6] = 2000000
	a := budget.Analyze(5000000, 0, spends, cats)

	out := RenderSummary(a)
	assert.Contains(t, out, "Hasil Simulasi (%)")
	assert.Contains(t, out, "Hidup Gaya")
	assert.Contains(t, out, "Total Gaji")

	flags := RenderFlags(a)
	assert.Contains(t, flags, "Hidup Gaya")
	assert.Contains(t, flags, "batas atas 10%")
}

func TestRenderFlags_Empty(t *testing.T) {
	cats := model.DefaultCategories()
	a := budget.Analyze(5000000, 0, budget.DefaultSpends(5000000, cats), cats)
	assert.Empty(t, RenderFlags(a))
}

func TestWithSpinner(t *testing.T) {
	var buf bytes.Buffer
	got := WithSpinner(&buf, "menunggu", func() int {
		time.Sleep(150 * time.Millisecond)
		return 42
	})
	assert.Equal(t, 42, got)
}

func TestRunChat(t *testing.T) {
	in := NewNonBlockingReader(strings.NewReader("Bagaimana menabung?\nPerlu asuransi?\n\n"))
	var out bytes.Buffer

	var asked []string
	ask := func(_ context.Context, q string) (narrative.Result, error) {
		asked = append(asked, q)
		if len(asked) == 2 {
			return narrative.Result{Text: narrative.ChatFallback(q), Fallback: true, Err: narrative.ErrUnavailable}, nil
		}
		return narrative.Result{Text: "Sisihkan 10% di awal bulan."}, nil
	}

	n, err := RunChat(context.Background(), in, &out, ask)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"Bagaimana menabung?", "Perlu asuransi?"}, asked)

	text := out.String()
	assert.Contains(t, text, "Pertanyaan 1:")
	assert.Contains(t, text, "Pertanyaan 2:")
	assert.Contains(t, text, "Sisihkan 10% di awal bulan.")
	assert.Contains(t, text, "Untuk pertanyaan 'Perlu asuransi?'")
}

func TestRunChat_LastLineWithoutNewline(t *testing.T) {
	in := NewNonBlockingReader(strings.NewReader("Satu pertanyaan"))
	var out bytes.Buffer

	n, err := RunChat(context.Background(), in, &out, func(context.Context, string) (narrative.Result, error) {
		return narrative.Result{Text: "jawaban"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRunChat_AskError(t *testing.T) {
	in := NewNonBlockingReader(strings.NewReader("?\n"))
	var out bytes.Buffer
	boom := errors.New("boom")

	_, err := RunChat(context.Background(), in, &out, func(context.Context, string) (narrative.Result, error) {
		return narrative.Result{}, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestInterruptHandler(t *testing.T) {
	var out bytes.Buffer
	h := NewInterruptHandler(&out, "Dibatalkan")
	ctx, cleanup := h.HandleInterrupts(context.Background())

	assert.False(t, h.WasInterrupted())
	h.interrupt()
	h.interrupt()
	assert.True(t, h.WasInterrupted())
	assert.Equal(t, 1, strings.Count(out.String(), "Dibatalkan"))

	cleanup()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
