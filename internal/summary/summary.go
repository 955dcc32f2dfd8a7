// Package summary renders collected booking fields as human-readable text.
package summary

import (
	"fmt"
	"strings"

	"leadbot/internal/models"
)

const (
	// ReviewPrefix opens the first confirmation block
	ReviewPrefix = "Проверьте, пожалуйста, ваши данные:\n"
	// UpdatedPrefix opens the confirmation block shown after an edit
	UpdatedPrefix = "Обновленные данные:\n"

	noComment         = "нет"
	noCommentOperator = "(нет)"
	operatorHeader    = "🔔 Новая заявка XENON PRIVE 🔔\n"
)

// Compose renders fields in fixed order after prefix
func Compose(f models.Fields, prefix string) string {
	comment := noComment
	if strings.TrimSpace(f.Comment) != "" {
		comment = f.Comment
	}

	var text strings.Builder
	text.WriteString(prefix)
	writeFields(&text, f)
	text.WriteString(fmt.Sprintf("Комментарий: %s", comment))
	return text.String()
}

// OperatorMessage renders a lead for the operator chat
func OperatorMessage(lead models.Lead) string {
	comment := lead.Fields.Comment
	if strings.TrimSpace(comment) == "" {
		comment = noCommentOperator
	}

	var text strings.Builder
	text.WriteString(operatorHeader)
	writeFields(&text, lead.Fields)
	text.WriteString(fmt.Sprintf("Комментарий: %s\n", comment))
	text.WriteString(fmt.Sprintf("Пользователь Telegram: %s", lead.Submitter.Handle()))
	return text.String()
}

// FormatLine renders the selected format as "label — price"
func FormatLine(f models.Fields) string {
	if f.FormatPrice == "" {
		return f.FormatLabel
	}
	return f.FormatLabel + " — " + f.FormatPrice
}

func writeFields(text *strings.Builder, f models.Fields) {
	text.WriteString(fmt.Sprintf("Имя: %s\n", f.Name))
	text.WriteString(fmt.Sprintf("Телефон: %s\n", f.Phone))
	text.WriteString(fmt.Sprintf("Удобное время: %s\n", f.Time))
	text.WriteString(fmt.Sprintf("Адрес: %s\n", f.Address))
	text.WriteString(fmt.Sprintf("Формат: %s\n", FormatLine(f)))
}
