package service

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	jsonFenceRegex = regexp.MustCompile("(?s)```json\\s*([\\s\\S]*?)\\s*```")
	anyFenceRegex  = regexp.MustCompile("(?s)```\\s*([\\s\\S]*?)\\s*```")
	objectFallback = regexp.MustCompile(`(?s)({[\s\S]*})`)
	arrayFallback  = regexp.MustCompile(`(?s)(\[[\s\S]*\])`)
)

// isValidJSON проверяет, можно ли распарсить строку как JSON.
func isValidJSON(s string) bool {
	var js json.RawMessage
	return json.Unmarshal([]byte(s), &js) == nil
}

// balanceBrackets добавляет недостающие закрывающие скобки в конец строки,
// закрывая их в порядке, обратном открытию. Скобки внутри строковых
// литералов не учитываются. Незакрытый строковый литерал закрывается тоже:
// обрыв ответа посреди строки - обычное дело при достижении лимита токенов.
func balanceBrackets(text string) string {
	var stack []rune
	inString := false
	escape := false

	for _, r := range text {
		if escape {
			escape = false
			continue
		}
		if r == '\\' {
			escape = true
			continue
		}
		if r == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch r {
		case '{', '[':
			stack = append(stack, r)
		case '}':
			if len(stack) > 0 && stack[len(stack)-1] == '{' {
				stack = stack[:len(stack)-1]
			}
		case ']':
			if len(stack) > 0 && stack[len(stack)-1] == '[' {
				stack = stack[:len(stack)-1]
			}
		}
	}

	var b strings.Builder
	b.WriteString(text)
	if inString {
		b.WriteString(`"`)
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			b.WriteString("}")
		} else {
			b.WriteString("]")
		}
	}
	return b.String()
}

// processPotentialJSON пытается привести строку к валидному JSON
// (trim, балансировка скобок). Возвращает "" при неудаче.
func processPotentialJSON(content string) string {
	trimmed := strings.TrimSpace(content)
	if isValidJSON(trimmed) {
		return trimmed
	}
	balanced := balanceBrackets(trimmed)
	if isValidJSON(balanced) {
		return balanced
	}
	return ""
}

// ExtractJSONContent извлекает JSON-документ из сырого ответа модели.
// Модели любят оборачивать JSON в markdown-блоки и сопровождать его
// пояснениями, поэтому кандидаты проверяются по убыванию надежности:
//  1. блок ```json ... ```;
//  2. любой блок ``` ... ```;
//  3. срез от первой открывающей скобки до последней закрывающей;
//  4. жадные регулярки по всему тексту.
//
// Возвращает пустую строку, если валидный JSON извлечь не удалось.
func ExtractJSONContent(rawText string) string {
	rawText = strings.TrimSpace(rawText)

	if matches := jsonFenceRegex.FindStringSubmatch(rawText); len(matches) > 1 {
		if result := processPotentialJSON(matches[1]); result != "" {
			return result
		}
	}

	if matches := anyFenceRegex.FindStringSubmatch(rawText); len(matches) > 1 {
		if result := processPotentialJSON(matches[1]); result != "" {
			return result
		}
	}

	firstBrace := strings.Index(rawText, "{")
	lastBrace := strings.LastIndex(rawText, "}")
	firstBracket := strings.Index(rawText, "[")
	lastBracket := strings.LastIndex(rawText, "]")

	startIdx, endIdx := -1, -1
	if firstBrace != -1 && (firstBracket == -1 || firstBrace < firstBracket) {
		startIdx, endIdx = firstBrace, lastBrace
	} else if firstBracket != -1 {
		startIdx, endIdx = firstBracket, lastBracket
	}

	if startIdx != -1 {
		potential := rawText[startIdx:]
		if endIdx > startIdx {
			potential = rawText[startIdx : endIdx+1]
		}
		if result := processPotentialJSON(potential); result != "" {
			return result
		}
	}

	if matches := objectFallback.FindStringSubmatch(rawText); len(matches) > 1 {
		if result := processPotentialJSON(matches[1]); result != "" {
			return result
		}
	}
	if matches := arrayFallback.FindStringSubmatch(rawText); len(matches) > 1 {
		if result := processPotentialJSON(matches[1]); result != "" {
			return result
		}
	}

	return ""
}

// ExtractJSONObject извлекает из ответа модели JSON-объект.
// ok=false означает, что объект извлечь не удалось и вызывающий код
// должен перейти на резервные данные.
func ExtractJSONObject(rawText string) (map[string]interface{}, bool) {
	content := ExtractJSONContent(rawText)
	if content == "" {
		return nil, false
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(content), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// ExtractJSONArray извлекает из ответа модели JSON-массив.
func ExtractJSONArray(rawText string) ([]interface{}, bool) {
	content := ExtractJSONContent(rawText)
	if content == "" {
		return nil, false
	}
	var arr []interface{}
	if err := json.Unmarshal([]byte(content), &arr); err != nil {
		return nil, false
	}
	return arr, true
}
