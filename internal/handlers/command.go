package handlers

import (
	"strings"

	"intakebot/internal/constants"
	"intakebot/internal/utils"
)

// Command - результат разбора входящего текста перед диспетчеризацией.
// Конкретные типы: StartCommand, CancelCommand, ListOrdersCommand, TakeCommand,
// DoneCommand, ExportCommand, UnknownCommand, DialogText.
type Command interface {
	isCommand()
}

// StartCommand начинает диалог приема заявки.
type StartCommand struct {
	Payload string
}

// CancelCommand прерывает диалог.
type CancelCommand struct{}

// ListOrdersCommand - /orders [filter]. Valid=false, если фильтр не распознан.
type ListOrdersCommand struct {
	Filter string
	Valid  bool
}

// TakeCommand - /take <id>. Valid=false при неверных аргументах.
type TakeCommand struct {
	OrderID int64
	Valid   bool
}

// DoneCommand - /done <id>. Valid=false при неверных аргументах.
type DoneCommand struct {
	OrderID int64
	Valid   bool
}

// ExportCommand - /export, выгрузка заявок в Excel.
type ExportCommand struct{}

// UnknownCommand - команда, которую бот не обрабатывает.
type UnknownCommand struct {
	Name string
}

// DialogText - обычный текст, ответ на вопрос диалога.
type DialogText struct {
	Text string
}

func (StartCommand) isCommand()      {}
func (CancelCommand) isCommand()     {}
func (ListOrdersCommand) isCommand() {}
func (TakeCommand) isCommand()       {}
func (DoneCommand) isCommand()       {}
func (ExportCommand) isCommand()     {}
func (UnknownCommand) isCommand()    {}
func (DialogText) isCommand()        {}

// ParseCommand разбирает текст сообщения.
// Команды вида /cmd@OtherBot, адресованные другому боту, считаются обычным текстом.
func ParseCommand(text, botUsername string) Command {
	parts := strings.Fields(text)
	if len(parts) == 0 || !strings.HasPrefix(parts[0], "/") {
		return DialogText{Text: text}
	}

	name := strings.TrimPrefix(parts[0], "/")
	if at := strings.Index(name, "@"); at >= 0 {
		mention := name[at+1:]
		name = name[:at]
		if botUsername != "" && !strings.EqualFold(mention, botUsername) {
			return DialogText{Text: text}
		}
	}
	args := parts[1:]

	switch name {
	case constants.CMD_START:
		var payload string
		if len(args) > 0 {
			payload = args[0]
		}
		return StartCommand{Payload: payload}
	case constants.CMD_CANCEL:
		return CancelCommand{}
	case constants.CMD_ORDERS:
		if len(args) == 0 {
			return ListOrdersCommand{Filter: constants.FILTER_NEW, Valid: true}
		}
		switch args[0] {
		case constants.FILTER_ALL, constants.FILTER_DONE, constants.FILTER_WORK:
			return ListOrdersCommand{Filter: args[0], Valid: true}
		}
		return ListOrdersCommand{Filter: args[0], Valid: false}
	case constants.CMD_TAKE:
		id, ok := parseSingleID(args)
		return TakeCommand{OrderID: id, Valid: ok}
	case constants.CMD_DONE:
		id, ok := parseSingleID(args)
		return DoneCommand{OrderID: id, Valid: ok}
	case constants.CMD_EXPORT:
		return ExportCommand{}
	}
	return UnknownCommand{Name: name}
}

// parseSingleID требует ровно один аргумент из одних цифр.
func parseSingleID(args []string) (int64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	id, err := utils.ParseOrderID(args[0])
	if err != nil {
		return 0, false
	}
	return id, true
}
