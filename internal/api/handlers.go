package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"intakebot/internal/constants"
	"intakebot/internal/formatters"
	"intakebot/internal/utils"
)

// jsonResponse - стандартный ответ API.
type jsonResponse struct {
	Status  string      `json:"status"` // "success" или "error"
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type apiHandler struct {
	deps ApiDependencies
}

func writeJSON(w http.ResponseWriter, status int, resp jsonResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("writeJSON: ошибка кодирования ответа: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, jsonResponse{Status: "error", Message: message})
}

// Health - проверка живости.
func (h *apiHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, jsonResponse{Status: "success", Message: "ok"})
}

// BotQRCode отдает PNG с QR-кодом ссылки на бота.
func (h *apiHandler) BotQRCode(w http.ResponseWriter, r *http.Request) {
	link, err := utils.GenerateBotLink(h.deps.Config.BotUsername)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	png, err := utils.GenerateQRCode(link)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "не удалось сгенерировать QR-код")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// ListOrders - GET /api/admin/orders?filter=all|done|work.
func (h *apiHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	if filter == "new" {
		filter = constants.FILTER_NEW
	}
	status, ok := constants.FilterStatusMap[filter]
	if !ok {
		writeError(w, http.StatusBadRequest, "filter должен быть одним из: new, all, done, work")
		return
	}

	orders, err := h.deps.Store.ListOrders(status)
	if err != nil {
		log.Printf("API ListOrders: ошибка получения заявок: %v", err)
		writeError(w, http.StatusInternalServerError, "ошибка получения заявок")
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{Status: "success", Data: orders})
}

// GetOrder - GET /api/admin/orders/{id}.
func (h *apiHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseOrderID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	order, found, err := h.deps.Store.GetOrder(orderID)
	if err != nil {
		log.Printf("API GetOrder: ошибка получения заявки #%d: %v", orderID, err)
		writeError(w, http.StatusInternalServerError, "ошибка получения заявки")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, constants.MsgOrderNotFound)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{Status: "success", Data: order})
}

// TakeOrder - POST /api/admin/orders/{id}/take.
func (h *apiHandler) TakeOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, constants.STATUS_INPROGRESS)
}

// DoneOrder - POST /api/admin/orders/{id}/done.
func (h *apiHandler) DoneOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, constants.STATUS_DONE)
}

func (h *apiHandler) transition(w http.ResponseWriter, r *http.Request, status string) {
	orderID, err := utils.ParseOrderID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	order, found, err := h.deps.Bot.TransitionOrder(orderID, status)
	if err != nil && !found {
		log.Printf("API transition: ошибка перевода заявки #%d в %s: %v", orderID, status, err)
		writeError(w, http.StatusInternalServerError, "ошибка изменения статуса")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, constants.MsgOrderNotFound)
		return
	}
	resp := jsonResponse{Status: "success", Data: order}
	if err != nil {
		// Статус изменен, но заказчик не уведомлен
		log.Printf("API transition: заявка #%d переведена в %s, уведомление не доставлено: %v", orderID, status, err)
		resp.Message = "статус изменен, уведомление заказчику не доставлено"
	}
	writeJSON(w, http.StatusOK, resp)
}

// ExportOrders - GET /api/admin/orders/export, xlsx со всеми заявками.
func (h *apiHandler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.deps.Store.ListOrders("")
	if err != nil {
		log.Printf("API ExportOrders: ошибка получения заявок: %v", err)
		writeError(w, http.StatusInternalServerError, "ошибка получения заявок")
		return
	}
	data, err := formatters.BuildOrdersWorkbook(orders)
	if err != nil {
		log.Printf("API ExportOrders: %v", err)
		writeError(w, http.StatusInternalServerError, "ошибка формирования файла")
		return
	}

	fileName := fmt.Sprintf("orders_%s_%s.xlsx", time.Now().Format("20060102"), uuid.New().String()[:8])
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
