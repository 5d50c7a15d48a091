package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/invoice-dashboard/internal/model"
)

func TestRender_PreviewData(t *testing.T) {
	for name, data := range PreviewData {
		t.Run(string(name), func(t *testing.T) {
			html, err := Render(name, data)

			require.NoError(t, err)
			for _, v := range data {
				assert.Contains(t, html, v)
			}
		})
	}
}

func TestRender_EscapesValues(t *testing.T) {
	html, err := Render(TemplateInvoiceCreated, map[string]string{"CustomerName": "<script>x</script>"})

	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render(Template("missing"), nil)

	require.Error(t, err)
}

func TestInvoiceCreatedData(t *testing.T) {
	data := InvoiceCreatedData(model.InvoiceNotice{
		InvoiceID:    "inv-1",
		CustomerName: "Delba de Oliveira",
		Amount:       123456,
		Status:       model.InvoiceStatusPaid,
		Date:         "2024-06-01",
	})

	assert.Equal(t, "$1,234.56", data["Amount"])
	assert.Equal(t, "paid", data["Status"])
	assert.Equal(t, "Delba de Oliveira", data["CustomerName"])
}
