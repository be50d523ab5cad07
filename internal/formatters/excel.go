package formatters

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"intakebot/internal/constants"
	"intakebot/internal/models"
)

const ordersSheetName = "Заявки"

// BuildOrdersWorkbook формирует xlsx-файл со списком заявок.
func BuildOrdersWorkbook(orders []models.Order) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile создает лист Sheet1, переименовываем его
	if err := f.SetSheetName("Sheet1", ordersSheetName); err != nil {
		return nil, fmt.Errorf("ошибка создания листа: %w", err)
	}

	headers := []string{"ID", "Создана", "Имя", "Юзер", "ID пользователя", "Задача", "Статус"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(ordersSheetName, cell, header)
	}

	for i, order := range orders {
		row := i + 2
		status, ok := constants.StatusDisplayMap[order.Status]
		if !ok {
			status = order.Status
		}
		created := ""
		if !order.CreatedAt.IsZero() {
			created = order.CreatedAt.Format(constants.CreatedAtLayout)
		}
		values := []any{order.ID, created, order.Name, "@" + order.RequesterHandle, order.RequesterID, order.Task, status}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(ordersSheetName, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("ошибка записи Excel файла: %w", err)
	}
	return buf.Bytes(), nil
}
