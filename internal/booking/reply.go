package booking

import "leadbot/internal/catalog"

// ReplyKind tells the transport how to deliver a reply
type ReplyKind int

const (
	// ReplySend sends a new message to the chat
	ReplySend ReplyKind = iota
	// ReplyEditSource replaces the text of the message whose button was pressed
	ReplyEditSource
	// ReplyClearSourceMarkup strips the buttons of the message whose button was pressed
	ReplyClearSourceMarkup
)

// Button is an inline keyboard button. Exactly one of Data and URL is set.
type Button struct {
	Text string
	Data string
	URL  string
}

// Reply is a transport-independent outgoing message
type Reply struct {
	Kind    ReplyKind
	Text    string
	Buttons [][]Button

	// ContactButton, when set, attaches a one-time "share contact" keyboard
	ContactButton string
	// RemoveKeyboard hides a previously shown reply keyboard
	RemoveKeyboard bool
}

// Result is the outcome of handling one event
type Result struct {
	Replies []Reply
	// Handled is false when the event did not match any transition
	Handled bool
}

func handled(replies ...Reply) Result {
	return Result{Replies: replies, Handled: true}
}

// Callback payloads of the review and edit menus
const (
	CallbackConfirm       = "confirm_send"
	CallbackEdit          = "edit_data"
	CallbackBackToConfirm = "back_to_confirm"
)

const (
	textNamePrompt        = "Как Вас зовут?"
	textPhonePrompt       = "Укажите, пожалуйста, Ваш номер телефона."
	textContactButton     = "📱 Отправить номер телефона"
	textTimePrompt        = "Когда Вам удобно пройти сессию? Укажите дату и время."
	textAddressPrompt     = "Укажите адрес или район, где будет проходить сессия."
	textFormatPrompt      = "Выберите формат программы:"
	textCommentPrompt     = "Если у Вас есть дополнительные комментарии или вопросы, вы можете написать их ниже.\nЕсли комментариев нет, отправьте /skip."
	textEditMenu          = "Что вы хотите изменить?"
	textSubmitted         = "Спасибо! Ваша заявка принята. Мы свяжемся с вами в ближайшее время."
	textCancelled         = "Вы отменили запись. Если потребуется, вы можете начать заново командой /start."
	textNothingCancel     = "Активной записи нет."
	textFormatSaved       = "Формат сохранён. Теперь вы можете записаться на сессию через меню 📝 Записаться."
	textFormatSelected    = "Выбран формат: %s"
	textFormatSavedInFlow = "Формат сохранён."
	textConfirmButton     = "✅ Отправить заявку"
	textEditButton        = "✏️ Изменить данные"
	textBackButton        = "🔙 Назад"
)

func send(text string) Reply {
	return Reply{Kind: ReplySend, Text: text}
}

// CatalogButtons renders one catalog entry per row
func CatalogButtons() [][]Button {
	entries := catalog.Entries()
	rows := make([][]Button, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []Button{{Text: e.ButtonText(), Data: e.CallbackData()}})
	}
	return rows
}

// CatalogReply is the format selection prompt
func CatalogReply() Reply {
	return Reply{Kind: ReplySend, Text: textFormatPrompt, Buttons: CatalogButtons()}
}

func reviewButtons() [][]Button {
	return [][]Button{
		{{Text: textConfirmButton, Data: CallbackConfirm}},
		{{Text: textEditButton, Data: CallbackEdit}},
	}
}

func editMenuButtons() [][]Button {
	rows := make([][]Button, 0, len(editableFields)+1)
	for _, row := range editableFields {
		buttons := make([]Button, 0, len(row))
		for _, f := range row {
			buttons = append(buttons, Button{Text: f.ButtonText(), Data: f.callbackData()})
		}
		rows = append(rows, buttons)
	}
	return append(rows, []Button{{Text: textBackButton, Data: CallbackBackToConfirm}})
}
