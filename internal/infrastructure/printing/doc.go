// Package printing renders transaction receipts.
//
// TemplateEngine fills the embedded HTML receipt templates, formatting
// amounts and quantities for a configured locale. ChromedpRenderer turns the
// resulting HTML into a PDF through a headless Chrome instance:
//
//	engine, err := NewTemplateEngine("id")
//	html, err := engine.Render(TemplateFor(PaperThermal80), data)
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{NoSandbox: true})
//	result, err := renderer.Render(ctx, &RenderRequest{HTML: string(html), PaperSize: PaperThermal80})
package printing
