package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salesdocs/internal/email"
	"salesdocs/internal/port"
)

func sample() port.DocumentEmail {
	return port.DocumentEmail{
		ToEmail:      "asha@example.com",
		ToName:       "Asha",
		CompanyName:  "Rexa <Industries>",
		DocumentType: "delivery_challan",
		Number:       "RX-DC25-25-07-001",
		TotalAmount:  "2360.00",
		DownloadURL:  "https://files.example.com/dc.pdf?sig=1&x=2",
	}
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Delivery Challan RX-DC25-25-07-001 from Rexa <Industries>", email.Subject(sample()))
}

func TestTextBody(t *testing.T) {
	body := email.TextBody(sample())

	assert.Contains(t, body, "Hi Asha,")
	assert.Contains(t, body, "delivery challan RX-DC25-25-07-001 for INR 2360.00")
	assert.Contains(t, body, "Download: https://files.example.com/dc.pdf?sig=1&x=2")
}

func TestHTMLBody_Escapes(t *testing.T) {
	body := email.HTMLBody(sample())

	assert.Contains(t, body, "Rexa &lt;Industries&gt;")
	assert.NotContains(t, body, "<Industries>")
	assert.Contains(t, body, "sig=1&amp;x=2")
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Purchase Order", email.Title("purchase_order"))
	assert.Equal(t, "Invoice", email.Title("invoice"))
}
