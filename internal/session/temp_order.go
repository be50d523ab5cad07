package session

// TempOrderData - данные, накопленные за время диалога приема заявки.
// Живут только в памяти процесса.
type TempOrderData struct {
	RequesterID int64
	Name        string
	Task        string
}

// NewTempOrder создает пустые данные заявки для пользователя.
func NewTempOrder(chatID int64) TempOrderData {
	return TempOrderData{RequesterID: chatID}
}
