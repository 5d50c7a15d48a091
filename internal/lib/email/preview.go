package email

// PreviewData contains sample template data for local preview/testing,
// keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateInvoiceCreated: {
		"CustomerName": "Lee Robinson",
		"InvoiceID":    "3958dc9e-712f-4377-85e9-fec4b6a6442a",
		"Amount":       "$157.95",
		"Status":       "pending",
		"Date":         "2024-06-01",
	},
}
