// Package email renders document notification emails. Delivery lives in the ses and
// noop subpackages.
package email

import (
	"fmt"
	"html"
	"strings"

	"salesdocs/internal/port"
)

// Subject returns the subject line of a document email.
func Subject(e port.DocumentEmail) string {
	return fmt.Sprintf("%s %s from %s", Title(e.DocumentType), e.Number, e.CompanyName)
}

// Title turns a document type such as "delivery_challan" into "Delivery Challan".
func Title(docType string) string {
	words := strings.Split(docType, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// TextBody returns the plain text body.
func TextBody(e port.DocumentEmail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", e.ToName)
	if e.Message != "" {
		fmt.Fprintf(&b, "%s\n\n", e.Message)
	}
	fmt.Fprintf(&b, "Please find %s %s", strings.ToLower(Title(e.DocumentType)), e.Number)
	if e.TotalAmount != "" {
		fmt.Fprintf(&b, " for INR %s", e.TotalAmount)
	}
	b.WriteString(".\n")
	if e.DownloadURL != "" {
		fmt.Fprintf(&b, "\nDownload: %s\n", e.DownloadURL)
	}
	fmt.Fprintf(&b, "\n%s\n", e.CompanyName)
	return b.String()
}

// HTMLBody returns the HTML body. Every interpolated value is escaped.
func HTMLBody(e port.DocumentEmail) string {
	esc := html.EscapeString
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
`)
	fmt.Fprintf(&b, "  <h2 style=\"color: #333;\">%s %s</h2>\n", esc(Title(e.DocumentType)), esc(e.Number))
	fmt.Fprintf(&b, "  <p>Hi %s,</p>\n", esc(e.ToName))
	if e.Message != "" {
		fmt.Fprintf(&b, "  <p>%s</p>\n", esc(e.Message))
	}
	if e.TotalAmount != "" {
		fmt.Fprintf(&b, "  <p>Amount: <strong>INR %s</strong></p>\n", esc(e.TotalAmount))
	}
	if e.DownloadURL != "" {
		fmt.Fprintf(&b, `  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Download PDF</a>
  </p>
`, esc(e.DownloadURL))
	}
	fmt.Fprintf(&b, `  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`, esc(e.CompanyName))
	return b.String()
}
