package documents

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/docscan/internal/models"
)

// FormatRelativeDate renders t relative to now for list views. The exact
// wording is part of the UI contract and must not drift.
func FormatRelativeDate(t, now time.Time) string {
	d := now.Sub(t)

	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	case d < 24*time.Hour:
		h := int(d.Hours())
		if h == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", h)
	}

	days := int(d.Hours() / 24)
	switch {
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 28:
		w := days / 7
		if w == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", w)
	}

	return t.Format("Jan 2, 2006")
}

// FormatSize renders a byte count for display: bytes below 1 KiB as-is,
// then one-decimal KB, then one-decimal MB.
func FormatSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}

// typeColors maps a classified document type to its display color.
// Types missing from the table fall back to the unknown color.
var typeColors = map[string]string{
	"receipt":       "#4CAF50",
	"invoice":       "#2196F3",
	"id_card":       "#9C27B0",
	"passport":      "#673AB7",
	"contract":      "#FF9800",
	"letter":        "#00BCD4",
	"form":          "#3F51B5",
	"report":        "#009688",
	"business_card": "#E91E63",
	"note":          "#795548",
	"unknown":       "#9E9E9E",
}

func ColorForType(documentType string) string {
	if c, ok := typeColors[strings.ToLower(documentType)]; ok {
		return c
	}
	return typeColors[models.DocumentTypeUnknown]
}

// typeLabel turns a snake_case document type into a display label,
// e.g. "id_card" -> "Id Card".
func typeLabel(documentType string) string {
	if documentType == "" {
		documentType = models.DocumentTypeUnknown
	}
	words := strings.Split(documentType, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
