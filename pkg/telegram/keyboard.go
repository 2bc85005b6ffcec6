package telegram

// InlineKeyboard builds an InlineKeyboardMarkup row by row.
type InlineKeyboard struct {
	rows    [][]InlineKeyboardButton
	current []InlineKeyboardButton
}

// NewInlineKeyboard returns an empty keyboard builder.
func NewInlineKeyboard() *InlineKeyboard {
	return &InlineKeyboard{}
}

// Text appends a callback button to the current row.
func (k *InlineKeyboard) Text(text, data string) *InlineKeyboard {
	k.current = append(k.current, InlineKeyboardButton{Text: text, CallbackData: data})
	return k
}

// URL appends a link button to the current row.
func (k *InlineKeyboard) URL(text, url string) *InlineKeyboard {
	k.current = append(k.current, InlineKeyboardButton{Text: text, URL: url})
	return k
}

// Row closes the current row. Empty rows are skipped.
func (k *InlineKeyboard) Row() *InlineKeyboard {
	if len(k.current) > 0 {
		k.rows = append(k.rows, k.current)
		k.current = nil
	}
	return k
}

// Markup returns the finished keyboard, closing any open row.
func (k *InlineKeyboard) Markup() *InlineKeyboardMarkup {
	k.Row()
	rows := k.rows
	if rows == nil {
		rows = [][]InlineKeyboardButton{}
	}
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

// NewReplyKeyboard builds a resized reply keyboard from rows of button labels.
func NewReplyKeyboard(rows ...[]string) *ReplyKeyboardMarkup {
	kb := &ReplyKeyboardMarkup{ResizeKeyboard: true}
	for _, row := range rows {
		buttons := make([]KeyboardButton, 0, len(row))
		for _, text := range row {
			buttons = append(buttons, KeyboardButton{Text: text})
		}
		kb.Keyboard = append(kb.Keyboard, buttons)
	}
	return kb
}
