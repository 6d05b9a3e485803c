package convert

import (
	"github.com/beevik/etree"

	"annotation-exporter/internal/annotation"
)

// flatMapping drives the fixed Payable fields. Output order follows the
// table order; sections or fields missing from the input render as empty
// elements.
var flatMapping = []struct {
	section string
	fields  []fieldMapping
}{
	{"invoice_info_section", []fieldMapping{
		{"InvoiceNumber", "document_id"},
		{"InvoiceDate", "date_issue"},
		{"DueDate", "date_due"},
	}},
	{"payment_info_section", []fieldMapping{
		{"Iban", "iban"},
	}},
	{"amounts_section", []fieldMapping{
		{"TotalAmount", "amount_total"},
		{"Amount", "amount_total_tax"},
		{"Currency", "currency"},
	}},
	{"vendor_section", []fieldMapping{
		{"Vendor", "sender_name"},
		{"VendorAddress", "sender_address"},
	}},
}

// detailMapping drives the per-line-item Detail fields, in output order.
var detailMapping = []fieldMapping{
	{"Amount", "item_amount_total"},
	{"Quantity", "item_quantity"},
	{"Notes", "item_description"},
}

type fieldMapping struct {
	element string
	field   string
}

// ToXML renders the annotation content tree into the fixed
// InvoiceRegisters/Invoices/Payable document, pretty-printed with a UTF-8
// declaration. The output is always fully shaped: absent sections and fields
// become empty elements.
func ToXML(sections []annotation.Section) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	registers := doc.CreateElement("InvoiceRegisters")
	invoices := registers.CreateElement("Invoices")
	payable := invoices.CreateElement("Payable")

	for _, m := range flatMapping {
		children := annotation.SectionChildren(sections, m.section)
		for _, f := range m.fields {
			payable.CreateElement(f.element).SetText(annotation.FieldValue(children, f.field))
		}
	}
	// No source field maps to the flat Notes; it is always present and empty.
	payable.CreateElement("Notes")

	details := payable.CreateElement("Details")
	for _, item := range lineItems(sections) {
		detail := details.CreateElement("Detail")
		for _, f := range detailMapping {
			detail.CreateElement(f.element).SetText(annotation.FieldValue(item.Children, f.field))
		}
		detail.CreateElement("AccountId")
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

// lineItems digs out the repeated line-item entries:
// line_items_section > line_items > one child per item.
func lineItems(sections []annotation.Section) []annotation.Section {
	return annotation.SectionChildren(
		annotation.SectionChildren(sections, "line_items_section"),
		"line_items",
	)
}
