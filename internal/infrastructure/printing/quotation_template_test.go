package printing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mrtoldo/backend/internal/domain/catalog"
	"github.com/mrtoldo/backend/internal/domain/partner"
	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/mrtoldo/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDetail(iva bool) *trade.QuotationDetail {
	items := []trade.QuotationItem{
		{ProductID: 11, Quantity: 2, Price: decimal.RequireFromString("250.50")},
		{ProductID: 12, Quantity: 1, Price: decimal.RequireFromString("450")},
	}
	subtotal, total := trade.CalculateTotals(items, iva)

	q := trade.Quotation{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: shared.BaseEntity{ID: 42}},
		Date:              time.Date(2025, time.January, 5, 12, 0, 0, 0, time.UTC),
		CustomerID:        1,
		BillingDetailsID:  2,
		IVA:               iva,
		Subtotal:          subtotal,
		Total:             total,
		Notes:             "Entrega en 5 días\nPago <anticipado>",
		Status:            trade.QuotationStatusPending,
		Items:             items,
	}

	return &trade.QuotationDetail{
		Quotation: q,
		Customer: partner.Customer{
			Name:     "Juan",
			Lastname: "Pérez",
			Email:    "juan@example.com",
			Company:  "Lonas del Norte",
			RFC:      "XAXX010101000",
			Phone:    5512345678,
		},
		BillingDetails: &partner.BillingDetails{
			Clabe:        "012345678901234567",
			CheckAccount: "",
		},
		Lines: []trade.QuotationLine{
			{
				QuotationItem: items[0],
				Product: catalog.Product{
					Name:        "Toldo retráctil",
					Description: strings.Repeat("x", 90),
					Brand:       "Sombra",
					ImageURL:    "https://cdn.example.com/products/toldo.jpg",
				},
			},
			{
				QuotationItem: items[1],
				Product: catalog.Product{
					Name:        "Lona <premium>",
					Description: "Lona impermeable",
					Brand:       "Acme",
				},
			},
		},
	}
}

func TestQuotationTemplate_Render(t *testing.T) {
	tmpl, err := NewQuotationTemplate()
	require.NoError(t, err)

	html, err := tmpl.Render(newDetail(true))
	require.NoError(t, err)

	t.Run("company block", func(t *testing.T) {
		assert.Contains(t, html, "MRTOLDO S.A. DE C.V.")
		assert.Contains(t, html, "MRT180518HK0")
		assert.Contains(t, html, "mrtoldo.com")
		assert.NotContains(t, html, `class="company-logo"`, "no logo configured")
	})

	t.Run("header and customer", func(t *testing.T) {
		assert.Contains(t, html, "Número de Cotización: 42")
		assert.Contains(t, html, "Fecha: 05 ene 2025")
		assert.Contains(t, html, "Juan Pérez (Lonas del Norte)")
		assert.Contains(t, html, "Teléfono: 5512345678")
		assert.Contains(t, html, "RFC: XAXX010101000")
	})

	t.Run("line items", func(t *testing.T) {
		assert.Contains(t, html, "<td>11</td>")
		assert.Contains(t, html, "$250.50")
		assert.Contains(t, html, "$501.00")
		assert.Contains(t, html, "$450.00")
		assert.Contains(t, html, strings.Repeat("x", 80)+"...")
		assert.Contains(t, html, "Lona &lt;premium&gt;")
		assert.NotContains(t, html, "Lona <premium>")
	})

	t.Run("totals with iva", func(t *testing.T) {
		// subtotal 951.00, total 1103.16
		assert.Contains(t, html, "$951.00")
		assert.Contains(t, html, "IVA:")
		assert.Contains(t, html, "$152.16")
	})

	t.Run("payment details", func(t *testing.T) {
		assert.Contains(t, html, "Clabe: 012345678901234567")
		assert.NotContains(t, html, "Cuenta Cheques:")
	})

	t.Run("notes keep line breaks and are escaped", func(t *testing.T) {
		assert.Contains(t, html, `class="notes-box"`)
		assert.Contains(t, html, "Entrega en 5 días<br>Pago &lt;anticipado&gt;")
	})

	t.Run("one spec page per product", func(t *testing.T) {
		assert.Equal(t, 2, strings.Count(html, `class="product-page"`))
		assert.Contains(t, html, `src="https://cdn.example.com/products/toldo.jpg"`)
		assert.Equal(t, 1, strings.Count(html, "Imagen no disponible"))
		assert.Contains(t, html, "2 unidades")
		assert.Contains(t, html, "$450.00 MXN")
		assert.Contains(t, html, "#42")
	})
}

func TestQuotationTemplate_RenderWithoutIVA(t *testing.T) {
	tmpl, err := NewQuotationTemplate()
	require.NoError(t, err)

	d := newDetail(false)
	d.Notes = ""
	d.BillingDetails = nil

	html, err := tmpl.Render(d)
	require.NoError(t, err)

	assert.NotContains(t, html, "IVA:")
	assert.NotContains(t, html, `class="notes-box"`)
	assert.NotContains(t, html, "Clabe:")
	assert.Contains(t, html, "$951.00")
}

func TestQuotationTemplate_RenderNil(t *testing.T) {
	tmpl, err := NewQuotationTemplate()
	require.NoError(t, err)

	_, err = tmpl.Render(nil)
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeTemplate, renderErr.Code)
}

func TestQuotationTemplate_WithLogo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0o600))

	logo, err := LoadLogo(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(logo), "data:image/png;base64,"))

	company := DefaultCompany()
	company.Logo = logo
	tmpl, err := NewQuotationTemplate(WithCompany(company))
	require.NoError(t, err)

	html, err := tmpl.Render(newDetail(true))
	require.NoError(t, err)
	assert.Contains(t, html, `class="company-logo"`)
	assert.Contains(t, html, `src="data:image/png;base64,`)
}

func TestLoadLogo_MissingFile(t *testing.T) {
	_, err := LoadLogo(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
}
