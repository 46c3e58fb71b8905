package document

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var seqPadRe = regexp.MustCompile(`\{SEQ(\d+)\}`)

// QuotationNumberTemplate renders suggestions such as QT-2025-0001.
const QuotationNumberTemplate = "QT-{YYYY}-{SEQ4}"

// FormatNumber renders a document number template for a sequence value.
// Supported tokens are {YYYY}, {YY}, {MM}, {DD}, {SEQ} and {SEQn}, the
// latter zero-padded to n digits.
func FormatNumber(template string, at time.Time, seq int64) (string, error) {
	if template == "" {
		return "", fmt.Errorf("number template is empty")
	}
	if seq <= 0 {
		return "", fmt.Errorf("invalid sequence: %d", seq)
	}

	out := template
	out = strings.ReplaceAll(out, "{YYYY}", at.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", at.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", at.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", at.Format("02"))
	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))
	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}
		return fmt.Sprintf("%0*d", width, seq)
	})

	if strings.ContainsAny(out, "{}") {
		return "", fmt.Errorf("unresolved token in number template: %s", out)
	}
	return out, nil
}

// NumberPrefix is the part of a template before its sequence token.
func NumberPrefix(template string, at time.Time) string {
	if i := strings.Index(template, "{SEQ"); i >= 0 {
		template = template[:i]
	}
	out := strings.ReplaceAll(template, "{YYYY}", at.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", at.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", at.Format("01"))
	return strings.ReplaceAll(out, "{DD}", at.Format("02"))
}
