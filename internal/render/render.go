package render

import (
	"strconv"
	"strings"

	"bookcatalog/internal/models"
)

// Result is one render cycle. Each row carries its own delete control as a
// button holding the book id in data-id.
type Result struct {
	Body  string
	Empty bool
}

// Books renders the table body for books, in order.
func Books(books []models.Book) Result {
	if len(books) == 0 {
		return Result{Empty: true}
	}

	var sb strings.Builder
	for _, b := range books {
		sb.WriteString("<tr>")
		cell(&sb, EscapeHTML(b.Title))
		cell(&sb, EscapeHTML(b.Author))
		cell(&sb, strconv.Itoa(b.PublicationYear))
		cell(&sb, EscapeHTML(b.Genre))
		sb.WriteString(`<td><button class="delete-btn" data-id="`)
		sb.WriteString(EscapeHTML(b.ID))
		sb.WriteString(`">Delete</button></td>`)
		sb.WriteString("</tr>")
	}

	return Result{Body: sb.String()}
}

func cell(sb *strings.Builder, text string) {
	sb.WriteString("<td>")
	sb.WriteString(text)
	sb.WriteString("</td>")
}

// EscapeHTML replaces the five reserved characters. '&' goes first so the
// references added by later steps are not escaped again. Applying it twice
// escapes the ampersands of the first pass.
func EscapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&#039;")
	return s
}
