package infra

// pdf.go renders the outbound request slip attached to the manager mail:
//   - title and request date
//   - warehouse, customer and requester block
//   - item table (name, quantity)
//   - remarks

import (
	"bytes"
	"fmt"

	"github.com/lyb5737-lyb77/inventory-management/internal/dto"

	"github.com/go-pdf/fpdf"
)

const slipFont = "slip"

// RenderOutboundSlip returns the A4 slip for n as PDF bytes. fontPath names a
// TrueType font with Hangul glyphs; without it the core Helvetica font is
// used and non-Latin text does not render.
func RenderOutboundSlip(n dto.OutboundNotice, fontPath string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)

	family := "Helvetica"
	if fontPath != "" {
		pdf.AddUTF8Font(slipFont, "", fontPath)
		pdf.AddUTF8Font(slipFont, "B", fontPath)
		family = slipFont
	}
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont(family, "B", 18)
	pdf.CellFormat(contentW, 12, "출고 요청서", "", 1, "C", false, 0, "")
	pdf.SetFont(family, "", 10)
	pdf.CellFormat(contentW, 6, n.RequestedOn, "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// ── Parties ──────────────────────────────────────────────────────────────
	labelW := contentW * 0.25
	field := func(label, value string) {
		pdf.SetFont(family, "B", 10)
		pdf.CellFormat(labelW, 8, label, "1", 0, "L", false, 0, "")
		pdf.SetFont(family, "", 10)
		pdf.CellFormat(contentW-labelW, 8, value, "1", 1, "L", false, 0, "")
	}
	field("창고", n.WarehouseName)
	field("요청자", n.RequesterName)
	field("고객사", n.CustomerName)
	field("주소", n.CustomerAddress)
	field("연락처", n.CustomerContact)
	pdf.Ln(6)

	// ── Items ────────────────────────────────────────────────────────────────
	nameW := contentW * 0.75
	qtyW := contentW - nameW
	pdf.SetFont(family, "B", 10)
	pdf.CellFormat(nameW, 8, "품목", "1", 0, "C", false, 0, "")
	pdf.CellFormat(qtyW, 8, "수량", "1", 1, "C", false, 0, "")
	pdf.SetFont(family, "", 10)
	for _, it := range n.Items {
		pdf.CellFormat(nameW, 8, it.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(qtyW, 8, fmt.Sprintf("%d", it.Quantity), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// ── Remarks ──────────────────────────────────────────────────────────────
	pdf.SetFont(family, "B", 10)
	pdf.CellFormat(contentW, 8, "비고", "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 10)
	pdf.MultiCell(contentW, 6, n.Remarks, "1", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render slip: %w", err)
	}
	return buf.Bytes(), nil
}
