package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/txscope/internal/format"
	"github.com/Veraticus/txscope/internal/model"
	"github.com/Veraticus/txscope/internal/validate"
)

// ErrInputTerminated is returned when input ends before a prompt is answered.
var ErrInputTerminated = errors.New("input terminated")

// Prompter asks for create-transaction fields on the terminal.
type Prompter struct {
	writer io.Writer
	reader *NonBlockingReader
}

// NewPrompter creates a prompter with the given reader and writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// field describes one prompted value.
type field struct {
	check    func(string) error
	target   *string
	label    string
	optional bool
}

// CompleteCreateRequest prompts for every field of req that is still empty. Invalid
// answers are re-asked. Optional gas fields accept an empty answer.
func (p *Prompter) CompleteCreateRequest(ctx context.Context, req model.CreateRequest) (model.CreateRequest, error) {
	fields := []field{
		{label: "From address", target: &req.FromAddress, check: validate.Address},
		{label: "To address", target: &req.ToAddress, check: validate.Address},
		{label: "Amount", target: &req.Amount, check: validate.Amount},
		{label: "Gas limit (optional)", target: &req.GasLimit, check: validate.GasValue, optional: true},
		{label: "Gas price (optional)", target: &req.GasPrice, check: validate.GasValue, optional: true},
	}

	for _, f := range fields {
		if *f.target != "" {
			continue
		}
		value, err := p.promptValue(ctx, f)
		if err != nil {
			return req, err
		}
		*f.target = value
	}

	return validate.Normalize(req), nil
}

func (p *Prompter) promptValue(ctx context.Context, f field) (string, error) {
	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt(f.label)); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		input, err := p.reader.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", ErrInputTerminated
			}
			return "", err
		}

		if input == "" && f.optional {
			return "", nil
		}

		checkErr := f.check(input)
		if checkErr == nil {
			return input, nil
		}

		if _, err := fmt.Fprintln(p.writer, FormatError(checkErr.Error())); err != nil {
			slog.Warn("Failed to write error message", "error", err)
		}
	}
}

// Confirm shows req and asks for a yes/no answer. Anything but y/yes declines.
func (p *Prompter) Confirm(ctx context.Context, req model.CreateRequest) (bool, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "From:      %s\n", format.ChecksumAddress(req.FromAddress))
	fmt.Fprintf(&b, "To:        %s\n", format.ChecksumAddress(req.ToAddress))
	fmt.Fprintf(&b, "Amount:    %s\n", format.AmountFixed6(req.Amount))
	fmt.Fprintf(&b, "Gas limit: %s\n", orNotAvailable(format.Gas(req.GasLimit)))
	fmt.Fprintf(&b, "Gas price: %s\n", orNotAvailable(req.GasPrice))
	fmt.Fprintf(&b, "Est. fee:  %s", format.Fee(req.GasLimit, req.GasPrice))

	if _, err := fmt.Fprintln(p.writer, RenderBox("New transaction", b.String())); err != nil {
		return false, fmt.Errorf("failed to write summary: %w", err)
	}
	if _, err := fmt.Fprint(p.writer, FormatPrompt("Submit? [y/N]")); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := p.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func orNotAvailable(s string) string {
	if s == "" {
		return format.NotAvailable
	}
	return s
}
