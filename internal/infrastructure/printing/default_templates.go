package printing

import "embed"

//go:embed templates/*.html
var templateFS embed.FS

// DefaultTemplate describes one embedded receipt template
type DefaultTemplate struct {
	Name      string
	PaperSize PaperSize
	FilePath  string // Path within embed.FS
}

// GetDefaultTemplates returns the embedded receipt templates
func GetDefaultTemplates() []DefaultTemplate {
	return []DefaultTemplate{
		{
			Name:      "receipt_thermal.html",
			PaperSize: PaperThermal80,
			FilePath:  "templates/receipt_thermal.html",
		},
		{
			Name:      "receipt_a5.html",
			PaperSize: PaperA5,
			FilePath:  "templates/receipt_a5.html",
		},
	}
}

// TemplateFor returns the template name for a paper size
func TemplateFor(paper PaperSize) string {
	for _, t := range GetDefaultTemplates() {
		if t.PaperSize == paper {
			return t.Name
		}
	}
	return GetDefaultTemplates()[0].Name
}
