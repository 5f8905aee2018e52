// Package printing renders quotations to PDF.
//
// QuotationTemplate turns a trade.QuotationDetail into an HTML document and
// ChromedpRenderer prints that document to an A4 PDF with a headless Chrome.
//
// Example usage:
//
//	tmpl, err := printing.NewQuotationTemplate()
//	if err != nil {
//	    return err
//	}
//	html, err := tmpl.Render(detail)
//	if err != nil {
//	    return err
//	}
//
//	renderer := printing.NewChromedpRenderer(&printing.ChromedpConfig{NoSandbox: true})
//	defer renderer.Close()
//
//	result, err := renderer.Render(ctx, &printing.RenderRequest{HTML: html})
package printing
