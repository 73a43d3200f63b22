package geocode

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

// Геокодер возвращает адреса вида
// "日本、〒123-4567 東京都あきる野市佐野1丁目2番地3" - для подписи маркера
// нужна только короткая локальная часть "佐野1-2-3".
var (
	countryRe    = regexp.MustCompile(`^日本[、､,]?\s*`)
	postalRe     = regexp.MustCompile(`〒?\d{3}-?\d{4}\s*`)
	prefectureRe = regexp.MustCompile(`^(東京都|北海道|大阪府|京都府|\S{2,3}県)`)
	blockRe      = regexp.MustCompile(`(丁目|番地|番|号)`)
)

// NormalizeAddress приводит адрес из ответа геокодера к короткой форме:
// полноширинные цифры и дефисы сужаются, страна, индекс и префектура
// отбрасываются, счётные слова кварталов заменяются на дефис.
func NormalizeAddress(raw string) string {
	s := width.Narrow.String(raw)
	s = strings.TrimSpace(s)
	s = countryRe.ReplaceAllString(s, "")
	s = postalRe.ReplaceAllString(s, "")
	s = prefectureRe.ReplaceAllString(s, "")
	s = blockRe.ReplaceAllString(s, "-")
	s = strings.ReplaceAll(s, "--", "-")
	s = strings.TrimRight(s, "-")
	return strings.TrimSpace(s)
}
