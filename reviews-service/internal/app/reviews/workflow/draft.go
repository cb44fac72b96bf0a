package workflow

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"bistrobot/reviews-service/internal/app/reviews/entity"
)

// composeDraft выбирает шаблон по тональности отзыва и применяет
// к результату настройки бренда
func composeDraft(review *entity.Review, guidelines entity.BrandGuidelines) string {
	var draft string

	switch review.Sentiment {
	case entity.SentimentPositive:
		draft = fmt.Sprintf(
			"Dear %s, thank you so much for your wonderful %d-star review! We're thrilled you enjoyed your visit and can't wait to welcome you back.",
			review.Customer, review.Rating,
		)
	case entity.SentimentNegative:
		draft = fmt.Sprintf(
			"Dear %s, we're truly sorry to hear about your experience. Your feedback matters to us and we'd love the chance to make it right. Please reach out to us at %s.",
			review.Customer, guidelines.ContactInfo,
		)
	case entity.SentimentNeutral:
		draft = fmt.Sprintf(
			"Hi %s, thank you for taking the time to share your thoughts. We appreciate your %d-star review and are always working to improve.",
			review.Customer, review.Rating,
		)
	default:
		draft = fmt.Sprintf("Dear %s, thank you for your feedback. We appreciate you taking the time to share it with us.", review.Customer)
	}

	return applyGuidelines(draft, guidelines)
}

// applyGuidelines маскирует запрещённые слова и дописывает предложение
// для каждого обязательного слова, которого ещё нет в тексте
func applyGuidelines(draft string, guidelines entity.BrandGuidelines) string {
	patterns := make([]string, 0, len(guidelines.WordsToAvoid))
	for _, word := range guidelines.WordsToAvoid {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		patterns = append(patterns, maskPattern(word))
	}

	if len(patterns) > 0 {
		// Только целые слова, без учёта регистра
		re := regexp.MustCompile(`(?i)(?:` + strings.Join(patterns, `|`) + `)`)
		draft = re.ReplaceAllString(draft, "***")
	}

	for _, word := range guidelines.WordsToInclude {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}

		if !strings.Contains(strings.ToLower(draft), strings.ToLower(word)) {
			draft += fmt.Sprintf(" We always make sure everything we serve is %s.", word)
		}
	}

	return draft
}

// maskPattern строит шаблон для одного запрещённого слова. Якорь \b
// совпадает только рядом со словесным символом, поэтому ставим его лишь
// с той стороны, где слово начинается или заканчивается буквой либо цифрой
func maskPattern(word string) string {
	pattern := regexp.QuoteMeta(word)
	if first, _ := utf8.DecodeRuneInString(word); isWordChar(first) {
		pattern = `\b` + pattern
	}
	if last, _ := utf8.DecodeLastRuneInString(word); isWordChar(last) {
		pattern += `\b`
	}
	return pattern
}

func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
