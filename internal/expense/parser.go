package expense

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/frahmantamala/expense-bot/internal"
	"github.com/frahmantamala/expense-bot/internal/category"
)

// ErrMalformedInput marks chat text that is not "description category amount".
var ErrMalformedInput = errors.New("malformed expense message")

const messageTokens = 3

// Parsed is the result of splitting an expense message.
type Parsed struct {
	Description string
	Category    string
	Amount      float64
}

// Parse splits text into description, category hint and amount, resolving the
// hint against catalog. Errors wrap ErrMalformedInput.
func Parse(text string, catalog category.Catalog) (Parsed, error) {
	tokens := strings.Fields(text)
	if len(tokens) != messageTokens {
		return Parsed{}, malformed(
			fmt.Sprintf("expected %d words (description category amount), got %d", messageTokens, len(tokens)),
			internal.ErrCodeMalformedInput,
		)
	}

	amount, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil || isHexLiteral(tokens[2]) || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Parsed{}, malformed(
			fmt.Sprintf("amount %q is not a number", tokens[2]),
			internal.ErrCodeInvalidAmount,
		)
	}

	return Parsed{
		Description: tokens[0],
		Category:    catalog.Resolve(tokens[1]),
		Amount:      amount,
	}, nil
}

// isHexLiteral reports whether tok uses ParseFloat's hexadecimal form; amounts
// are decimal only.
func isHexLiteral(tok string) bool {
	tok = strings.TrimLeft(tok, "+-")
	return strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X")
}

func malformed(message string, code internal.ErrorCode) *internal.AppError {
	return internal.NewValidationError(message, code).WithCause(ErrMalformedInput)
}
