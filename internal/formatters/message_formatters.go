package formatters

import (
	"fmt"
	"strings"

	"intakebot/internal/constants"
	"intakebot/internal/models"
)

// ComposeTaskText собирает итоговое поле task: описание и исходный текст бюджета.
func ComposeTaskText(task, budgetText string) string {
	return fmt.Sprintf("%s\n\n%s%s", task, constants.BudgetAnnotationPrefix, budgetText)
}

// FormatNewOrderNotice форматирует уведомление оператору о новой заявке.
func FormatNewOrderNotice(orderID int64, name, handle, task, budgetText string) string {
	var b strings.Builder
	b.WriteString(constants.TitleNewOrderFmt)
	b.WriteString(fmt.Sprintf("ID: %d\n", orderID))
	b.WriteString(fmt.Sprintf("Имя: %s\n", name))
	b.WriteString(fmt.Sprintf("Юзер: @%s\n", handle))
	b.WriteString(fmt.Sprintf("Задача: %s\n", task))
	b.WriteString(constants.BudgetAnnotationPrefix + budgetText)
	return b.String()
}

// FormatOrderList форматирует список заявок для команды /orders.
// Для пустого списка вызывающий код отправляет MsgNoOrders.
func FormatOrderList(title string, orders []models.Order) string {
	var b strings.Builder
	b.WriteString(title)
	for _, order := range orders {
		b.WriteString(FormatOrderBlock(order))
	}
	return b.String()
}

// FormatOrderBlock - блок одной заявки в списке.
func FormatOrderBlock(order models.Order) string {
	return fmt.Sprintf(
		"#%d\nИмя: %s\nЮзер: @%s\nЗадача: %s\nСтатус: %s\n\n",
		order.ID, order.Name, order.RequesterHandle, order.Task, order.Status,
	)
}
