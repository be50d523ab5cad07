package constants

// Intake Dialog States
// Состояния диалога приема заявки
const (
	STATE_IDLE            = "idle"
	STATE_AWAITING_NAME   = "awaiting_name"
	STATE_AWAITING_TASK   = "awaiting_task"
	STATE_AWAITING_BUDGET = "awaiting_budget"
)

// Order Statuses
// Статусы заявок
const (
	STATUS_NEW        = "new"
	STATUS_INPROGRESS = "in_progress"
	STATUS_DONE       = "done"
)

// Фильтры команды /orders
const (
	FILTER_NEW  = ""
	FILTER_ALL  = "all"
	FILTER_DONE = "done"
	FILTER_WORK = "work"
)

// Bot Commands
// Команды бота
const (
	CMD_START  = "start"
	CMD_CANCEL = "cancel"
	CMD_ORDERS = "orders"
	CMD_TAKE   = "take"
	CMD_DONE   = "done"
	CMD_EXPORT = "export"
)

// Ограничения диалога
const (
	MIN_NAME_LENGTH   = 2
	MIN_TASK_LENGTH   = 5
	DEFAULT_MINBUDGET = 50

	// UNKNOWN_USERNAME подставляется, если у пользователя Telegram нет @username.
	UNKNOWN_USERNAME = "no_username"

	// CreatedAtLayout - формат колонки orders.created_at.
	CreatedAtLayout = "2006-01-02 15:04"

	// StartPayload - параметр deep-link ссылки на бота.
	StartPayload = "order"
)

// Тексты сообщений пользователю
const (
	MsgGreeting        = "Здравствуйте! Как тебя зовут?"
	MsgNameTooShort    = "Имя слишком короткое. Введи имя ещё раз."
	MsgNiceToMeetFmt   = "Приятно познакомиться, %s"
	MsgAskTask         = "Что тебе нужно сделать?"
	MsgTaskTooShort    = "Опиши задачу чуть подробнее."
	MsgAskBudget       = "💰 Укажи примерный бюджет (например: 50$, 3000₽)"
	MsgBudgetNotNumber = "❌ Укажи бюджет числом (например: 50, 100$)"
	MsgBudgetTooLowFmt = "❌ Минимальный бюджет - эквивалент %d$.\nК сожалению, мы не сможем взять эту заявку."
	MsgOrderAccepted   = "✅ Заявка принята. Мы скоро с тобой свяжемся."
	MsgCancelled       = "Диалог отменён. Можешь начать заново командой /start"

	// BudgetAnnotationPrefix предшествует исходному тексту бюджета в поле task.
	BudgetAnnotationPrefix = "💰 Бюджет: "
)

// Тексты сообщений оператору
const (
	MsgAccessDeniedOrders = "⛔ у тебя нет доступа к этой команде."
	MsgAccessDeniedDone   = "⛔ у тебя нет доступа."
	MsgAccessDeniedTake   = "⛔ нет доступа"
	MsgOrdersUsage        = "Используй: /orders | /orders all | /orders done | /orders work"
	MsgDoneUsage          = "Используй: /done <id>"
	MsgTakeUsage          = "Используй: /take <id>"
	MsgNoOrders           = "Заявок нет."
	MsgOrderNotFound      = "❌ Заявка не найдена"
	MsgDoneAckFmt         = "✅ Заявка #%d отмечена как выполненная"
	MsgTakeAckFmt         = "🛠 Заявка #%d взята в работу"
	MsgExportEmpty        = "Нет заявок для выгрузки."
	MsgExportCaptionFmt   = "Выгрузка заявок за %s"

	TitleNewOrders   = "📋 Новые заявки:\n\n"
	TitleAllOrders   = "📋 Все заявки:\n\n"
	TitleDoneOrders  = "✅ Выполненные заявки:\n\n"
	TitleWorkOrders  = "🛠 В работе:\n\n"
	TitleNewOrderFmt = "📥 Новая заявка\n"
)

// Уведомления заказчику о смене статуса
const (
	MsgRequesterDone       = "✅ Ваша заявка выполнена.\nСпасибо за обращение!"
	MsgRequesterInProgress = "🛠 Ваша заявка взята в работу.\nМы скоро свяжемся с вами."
)

// StatusDisplayMap используется в выгрузке Excel.
var StatusDisplayMap = map[string]string{
	STATUS_NEW:        "Новая",
	STATUS_INPROGRESS: "В работе",
	STATUS_DONE:       "Выполнена",
}

// FilterStatusMap сопоставляет фильтр /orders со статусом в БД.
// Пустая строка статуса означает "все заявки".
var FilterStatusMap = map[string]string{
	FILTER_NEW:  STATUS_NEW,
	FILTER_ALL:  "",
	FILTER_DONE: STATUS_DONE,
	FILTER_WORK: STATUS_INPROGRESS,
}

// FilterTitleMap - заголовки списков для каждого фильтра.
var FilterTitleMap = map[string]string{
	FILTER_NEW:  TitleNewOrders,
	FILTER_ALL:  TitleAllOrders,
	FILTER_DONE: TitleDoneOrders,
	FILTER_WORK: TitleWorkOrders,
}
