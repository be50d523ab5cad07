package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"intakebot/internal/constants"
)

// budgetDigitsRegex находит первую непрерывную последовательность десятичных цифр любой письменности.
var budgetDigitsRegex = regexp.MustCompile(`\p{Nd}+`)

// ParseBudget извлекает бюджет из произвольного текста: "50$" -> 50, "3000₽" -> 3000, "٥٠$" -> 50.
// Валюта и слова игнорируются. ok=false, если в тексте нет цифр.
// Слишком длинное число насыщается до math.MaxInt.
func ParseBudget(text string) (value int, ok bool) {
	match := budgetDigitsRegex.FindString(text)
	if match == "" {
		return 0, false
	}
	var ascii strings.Builder
	for _, r := range match {
		ascii.WriteByte(byte('0' + decimalDigitValue(r)))
	}
	value, err := strconv.Atoi(ascii.String())
	if err != nil {
		// Atoi на строке из одних цифр падает только при переполнении
		return math.MaxInt, true
	}
	return value, true
}

// decimalDigitValue возвращает значение цифры категории Nd.
// Цифры Unicode идут блоками по десять подряд от нуля, соседние блоки стыкуются.
func decimalDigitValue(r rune) int {
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return int(r-start) % 10
}

// ValidateName обрезает пробелы и проверяет минимальную длину имени.
func ValidateName(input string) (string, error) {
	name := strings.TrimSpace(input)
	if utf8.RuneCountInString(name) < constants.MIN_NAME_LENGTH {
		return "", fmt.Errorf("имя короче %d символов", constants.MIN_NAME_LENGTH)
	}
	return name, nil
}

// ValidateTask обрезает пробелы и проверяет минимальную длину описания задачи.
func ValidateTask(input string) (string, error) {
	task := strings.TrimSpace(input)
	if utf8.RuneCountInString(task) < constants.MIN_TASK_LENGTH {
		return "", fmt.Errorf("описание задачи короче %d символов", constants.MIN_TASK_LENGTH)
	}
	return task, nil
}

// IsDigits сообщает, состоит ли строка только из десятичных цифр.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseOrderID разбирает ID заявки из аргумента команды (/take 12).
func ParseOrderID(arg string) (int64, error) {
	if !IsDigits(arg) {
		return 0, fmt.Errorf("ID заявки должен состоять только из цифр: '%s'", arg)
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("некорректный ID заявки '%s': %w", arg, err)
	}
	return id, nil
}
