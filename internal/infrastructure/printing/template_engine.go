package printing

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// TemplateEngine renders the receipt templates with locale-aware number
// formatting.
type TemplateEngine struct {
	tag       language.Tag
	printer   *message.Printer
	templates *template.Template
}

// NewTemplateEngine parses the embedded templates for the given BCP 47
// locale. An unparseable locale falls back to Indonesian.
func NewTemplateEngine(locale string) (*TemplateEngine, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Indonesian
	}

	e := &TemplateEngine{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}

	tmpl, err := template.New("receipts").Funcs(e.funcMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "failed to parse templates", err)
	}
	e.templates = tmpl
	return e, nil
}

// Locale returns the language tag used for formatting
func (e *TemplateEngine) Locale() language.Tag {
	return e.tag
}

// Render executes the named template with data
func (e *TemplateEngine) Render(name string, data any) ([]byte, error) {
	tmpl := e.templates.Lookup(name)
	if tmpl == nil {
		return nil, NewRenderError(ErrCodeUnknownTemplate, "unknown template: "+name, nil)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}
	return buf.Bytes(), nil
}

// FormatMoney groups digits for the locale; fractions are shown only when
// the amount has cents.
func (e *TemplateEngine) FormatMoney(d decimal.Decimal) string {
	d = d.Round(2)
	scale := 0
	if !d.Equal(d.Truncate(0)) {
		scale = 2
	}
	return e.printer.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(scale)))
}

// FormatQuantity shows up to two fraction digits
func (e *TemplateEngine) FormatQuantity(d decimal.Decimal) string {
	return e.printer.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(2)))
}

func (e *TemplateEngine) funcMap() template.FuncMap {
	return template.FuncMap{
		"money":    e.FormatMoney,
		"qty":      e.FormatQuantity,
		"datetime": formatDateTime,
		"upper":    strings.ToUpper,
		"nonzero":  func(d decimal.Decimal) bool { return !d.IsZero() },
	}
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}
