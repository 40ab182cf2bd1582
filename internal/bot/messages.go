package bot

import (
	"fmt"
	"strconv"

	"github.com/frahmantamala/expense-bot/internal/expense"
)

const (
	CommandCorrect = "Cor"
	CommandReport  = "Reporte"
)

const (
	StatusNoMessage          = "no_message"
	StatusUnknownMessageType = "unknown_message_type"
	StatusTextReceived       = "text_received"
	StatusMalformedInput     = "malformed_input"
	StatusCategoryModified   = "category_modified"
	StatusMissingCategory    = "missing_category"
	StatusNothingToCorrect   = "nothing_to_correct"
	StatusReturnedReport     = "returned report"
	StatusError              = "error"
)

const (
	msgMissingCategory  = "Missing category parameter."
	msgNothingToCorrect = "No hay gastos registrados para corregir."
	msgLoadFailed       = "no se pudieron cargar los gastos"
	msgUsage            = "Formato: <descripción> <categoría> <monto>, por ejemplo: Pan Comida 2500. " +
		"Usa \"Cor <categoría>\" para corregir el último gasto o \"Reporte\" para ver el resumen."
)

func recordedReply(text string, e *expense.Expense) string {
	return fmt.Sprintf("%s, transformado a %s con categoría %s y precio %s",
		text, e.Description, e.Category, strconv.FormatFloat(e.Amount, 'f', -1, 64))
}

func correctedReply(category string) string {
	return "last entry modified to categoría " + category
}
