package booking

import (
	"fmt"
	"strings"

	"leadbot/internal/models"
)

// Field names a value the user can replace from the edit menu
type Field string

const (
	FieldName    Field = "name"
	FieldPhone   Field = "phone"
	FieldTime    Field = "time"
	FieldAddress Field = "address"
	FieldFormat  Field = "format"
	FieldComment Field = "comment"
)

const editCallbackPrefix = "edit_"

// editableFields is the edit menu layout, two buttons per row
var editableFields = [][]Field{
	{FieldName, FieldPhone},
	{FieldTime, FieldAddress},
	{FieldFormat, FieldComment},
}

// ParseField accepts a bare field name
func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldName, FieldPhone, FieldTime, FieldAddress, FieldFormat, FieldComment:
		return f, nil
	}
	return "", fmt.Errorf("unknown field %q", s)
}

// parseEditCallback extracts the field from callback data like "edit_phone"
func parseEditCallback(data string) (Field, bool) {
	if !strings.HasPrefix(data, editCallbackPrefix) {
		return "", false
	}
	f, err := ParseField(strings.TrimPrefix(data, editCallbackPrefix))
	if err != nil {
		return "", false
	}
	return f, true
}

func (f Field) callbackData() string {
	return editCallbackPrefix + string(f)
}

// ButtonText is the edit menu label
func (f Field) ButtonText() string {
	switch f {
	case FieldName:
		return "Имя"
	case FieldPhone:
		return "Телефон"
	case FieldTime:
		return "Время"
	case FieldAddress:
		return "Адрес"
	case FieldFormat:
		return "Формат"
	case FieldComment:
		return "Комментарий"
	}
	panic(fmt.Sprintf("booking: no button text for field %q", string(f)))
}

// EditPrompt asks for a replacement value
func (f Field) EditPrompt() string {
	switch f {
	case FieldName:
		return "Введите новое имя:"
	case FieldPhone:
		return "Введите новый номер телефона:"
	case FieldTime:
		return "Укажите новое удобное время:"
	case FieldAddress:
		return "Укажите новый адрес или район:"
	case FieldFormat:
		return "Выберите новый формат:"
	case FieldComment:
		return "Введите новый комментарий (или оставьте пустым):"
	}
	panic(fmt.Sprintf("booking: no edit prompt for field %q", string(f)))
}

// Apply overwrites the text field with value. Format is replaced through the
// catalog, never through free text.
func (f Field) Apply(fields *models.Fields, value string) error {
	switch f {
	case FieldName:
		fields.Name = value
	case FieldPhone:
		fields.Phone = value
	case FieldTime:
		fields.Time = value
	case FieldAddress:
		fields.Address = value
	case FieldComment:
		fields.Comment = value
	case FieldFormat:
		return fmt.Errorf("field %q is selected from the catalog", string(f))
	default:
		return fmt.Errorf("unknown field %q", string(f))
	}
	return nil
}
