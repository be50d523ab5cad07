package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Command
	}{
		{name: "start", text: "/start", want: StartCommand{}},
		{name: "start with payload", text: "/start order", want: StartCommand{Payload: "order"}},
		{name: "start addressed to bot", text: "/start@intake_bot", want: StartCommand{}},
		{name: "addressed to another bot", text: "/start@other_bot", want: DialogText{Text: "/start@other_bot"}},
		{name: "cancel", text: "/cancel", want: CancelCommand{}},
		{name: "orders default", text: "/orders", want: ListOrdersCommand{Filter: "", Valid: true}},
		{name: "orders all", text: "/orders all", want: ListOrdersCommand{Filter: "all", Valid: true}},
		{name: "orders done", text: "/orders done", want: ListOrdersCommand{Filter: "done", Valid: true}},
		{name: "orders work", text: "/orders work", want: ListOrdersCommand{Filter: "work", Valid: true}},
		{name: "orders unknown filter", text: "/orders archived", want: ListOrdersCommand{Filter: "archived", Valid: false}},
		{name: "take", text: "/take 12", want: TakeCommand{OrderID: 12, Valid: true}},
		{name: "take no id", text: "/take", want: TakeCommand{Valid: false}},
		{name: "take non digits", text: "/take abc", want: TakeCommand{Valid: false}},
		{name: "take negative", text: "/take -3", want: TakeCommand{Valid: false}},
		{name: "take too many args", text: "/take 1 2", want: TakeCommand{Valid: false}},
		{name: "done", text: "/done 7", want: DoneCommand{OrderID: 7, Valid: true}},
		{name: "done bad", text: "/done 7x", want: DoneCommand{Valid: false}},
		{name: "export", text: "/export", want: ExportCommand{}},
		{name: "unknown", text: "/help", want: UnknownCommand{Name: "help"}},
		{name: "plain text", text: "  fix my bug ", want: DialogText{Text: "  fix my bug "}},
		{name: "empty", text: "", want: DialogText{Text: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCommand(tt.text, "intake_bot"))
		})
	}
}

func TestParseCommand_NoBotUsernameAcceptsAnyMention(t *testing.T) {
	assert.Equal(t, CancelCommand{}, ParseCommand("/cancel@whatever_bot", ""))
}
