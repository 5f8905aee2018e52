package printing

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mrtoldo/backend/internal/domain/trade"
)

//go:embed templates/quotation.html
var templateFS embed.FS

// descriptionPreviewLen is how much of a product description the table shows
const descriptionPreviewLen = 80

// Company is the issuer block printed on every quotation
type Company struct {
	Name     string
	FullName string
	RFC      string
	Phone    string
	Email    string
	Address  string
	// Logo is a data URL, empty to omit the logo
	Logo template.URL
}

// DefaultCompany returns the issuer data of MRTOLDO
func DefaultCompany() Company {
	return Company{
		Name:     "mrtoldo.com",
		FullName: "MRTOLDO S.A. DE C.V.",
		RFC:      "MRT180518HK0",
		Phone:    "81 8335-1041 y 81 1221-7917",
		Email:    "carlos@mrtoldo.com",
		Address:  "Calle Sembradores 248, Col. Leones, Monterrey, NL, CP 64600",
	}
}

// LoadLogo reads an image file and returns it as a base64 data URL
func LoadLogo(path string) (template.URL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read logo: %w", err)
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return template.URL("data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)), nil
}

// QuotationTemplate renders a quotation detail into printable HTML
type QuotationTemplate struct {
	tmpl    *template.Template
	company Company
}

// QuotationTemplateOption configures a QuotationTemplate
type QuotationTemplateOption func(*QuotationTemplate)

// WithCompany replaces the issuer block
func WithCompany(c Company) QuotationTemplateOption {
	return func(t *QuotationTemplate) {
		t.company = c
	}
}

// NewQuotationTemplate parses the embedded quotation template
func NewQuotationTemplate(opts ...QuotationTemplateOption) (*QuotationTemplate, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/quotation.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse quotation template: %w", err)
	}
	t := &QuotationTemplate{tmpl: tmpl, company: DefaultCompany()}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

type customerView struct {
	Name     string
	Lastname string
	Company  string
	Email    string
	Phone    string
	RFC      string
}

type lineView struct {
	Code             int64
	Name             string
	Brand            string
	Description      string
	ShortDescription string
	ImageURL         string
	Quantity         int
	Price            string
	Total            string
}

type quotationView struct {
	ID           int64
	Date         string
	Company      Company
	Customer     customerView
	Lines        []lineView
	Subtotal     string
	ShowIVA      bool
	IVA          string
	Total        string
	Clabe        string
	CheckAccount string
	NoteLines    []string
}

// Render builds the HTML document for detail
func (t *QuotationTemplate) Render(detail *trade.QuotationDetail) (string, error) {
	if detail == nil {
		return "", NewRenderError(ErrCodeTemplate, "quotation detail is nil", nil)
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, t.view(detail)); err != nil {
		return "", NewRenderError(ErrCodeTemplate, "failed to execute quotation template", err)
	}
	return buf.String(), nil
}

func (t *QuotationTemplate) view(d *trade.QuotationDetail) quotationView {
	v := quotationView{
		ID:      d.ID,
		Date:    FormatShortDate(d.Date),
		Company: t.company,
		Customer: customerView{
			Name:     d.Customer.Name,
			Lastname: d.Customer.Lastname,
			Company:  d.Customer.Company,
			Email:    d.Customer.Email,
			Phone:    strconv.FormatInt(d.Customer.Phone, 10),
			RFC:      d.Customer.RFC,
		},
		Subtotal: FormatMoney(d.Subtotal),
		ShowIVA:  d.IVA,
		IVA:      FormatMoney(d.IVAAmount()),
		Total:    FormatMoney(d.Total),
	}
	if d.BillingDetails != nil {
		v.Clabe = d.BillingDetails.Clabe
		v.CheckAccount = d.BillingDetails.CheckAccount
	}
	if strings.TrimSpace(d.Notes) != "" {
		v.NoteLines = splitLines(d.Notes)
	}

	v.Lines = make([]lineView, 0, len(d.Lines))
	for _, l := range d.Lines {
		v.Lines = append(v.Lines, lineView{
			Code:             l.ProductID,
			Name:             l.Product.Name,
			Brand:            l.Product.Brand,
			Description:      l.Product.Description,
			ShortDescription: Truncate(l.Product.Description, descriptionPreviewLen),
			ImageURL:         l.Product.ImageURL,
			Quantity:         l.Quantity,
			Price:            FormatMoney(l.Price),
			Total:            FormatMoney(l.Amount()),
		})
	}
	return v
}
