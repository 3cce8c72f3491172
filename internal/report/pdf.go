package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/signintech/gopdf"

	"health-risk-analyzer/internal/assessment"
)

const fontFamily = "DejaVu"

// DefaultFontPaths are tried in order when no font is configured.
var DefaultFontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

type Renderer struct {
	fontPaths []string
	now       func() time.Time
}

// NewRenderer builds a PDF renderer. An empty fontPath falls back to DefaultFontPaths.
func NewRenderer(fontPath string) *Renderer {
	paths := DefaultFontPaths
	if fontPath != "" {
		paths = append([]string{fontPath}, DefaultFontPaths...)
	}
	return &Renderer{fontPaths: paths, now: time.Now}
}

// Render produces a one-page PDF summary of a stored assessment.
func (r *Renderer) Render(rec assessment.AnalysisRecord, res assessment.Result) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	var fontErr error
	fontLoaded := false
	for _, path := range r.fontPaths {
		if err := pdf.AddTTFFont(fontFamily, path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("failed to load font for PDF, last error: %w", fontErr)
	}

	if err := pdf.SetFont(fontFamily, "", 20); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Health risk report: %s", rec.Name))
	pdf.Br(30)

	if err := pdf.SetFont(fontFamily, "", 12); err != nil {
		return nil, err
	}
	smoker := "no"
	if rec.IsSmoker {
		smoker = "yes"
	}
	for _, line := range []string{
		fmt.Sprintf("Date: %s", r.now().Format("02.01.2006 15:04")),
		fmt.Sprintf("Analysis ID: %s", rec.ID),
		fmt.Sprintf("Age: %d   BMI: %.1f   Smoker: %s", rec.Age, rec.BMI, smoker),
		fmt.Sprintf("Systolic BP: %d mmHg   Fasting blood sugar: %d mg/dL", rec.SystolicBP, rec.BloodSugar),
		fmt.Sprintf("Overall status: %s", levelLabel(res.Level)),
	} {
		pdf.Cell(nil, line)
		pdf.Br(15)
	}
	pdf.Br(10)

	if err := pdf.SetFont(fontFamily, "", 14); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Risk scores:")
	pdf.Br(15)
	if err := pdf.SetFont(fontFamily, "", 11); err != nil {
		return nil, err
	}
	for _, s := range []struct {
		name  string
		value float64
	}{
		{"Metabolic syndrome", res.Scores.Metabolic},
		{"Hypertension", res.Scores.Hypertension},
		{"Diabetes", res.Scores.Diabetes},
	} {
		pdf.Cell(nil, fmt.Sprintf("- %s: %.1f %%", s.name, s.value))
		pdf.Br(12)
	}
	pdf.Br(15)

	if err := pdf.SetFont(fontFamily, "", 14); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Risk factors:")
	pdf.Br(15)
	if err := pdf.SetFont(fontFamily, "", 11); err != nil {
		return nil, err
	}
	if len(res.Factors) == 0 {
		pdf.Cell(nil, "- No particular risk factors found.")
		pdf.Br(12)
	}
	for _, f := range res.Factors {
		pdf.Cell(nil, "- "+string(f))
		pdf.Br(12)
	}
	pdf.Br(15)

	if err := pdf.SetFont(fontFamily, "", 14); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Recommendations:")
	pdf.Br(15)
	if err := pdf.SetFont(fontFamily, "", 11); err != nil {
		return nil, err
	}
	for _, advice := range res.Recommendations {
		lines, err := pdf.SplitText("- "+plainText(advice), 500)
		if err != nil {
			return nil, fmt.Errorf("failed to wrap recommendation: %w", err)
		}
		for _, l := range lines {
			pdf.Cell(nil, l)
			pdf.Br(12)
		}
		pdf.Br(5)
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// plainText drops the bold markers used in recommendation text.
func plainText(s string) string {
	return strings.ReplaceAll(s, "**", "")
}

func levelLabel(l assessment.RiskLevel) string {
	switch l {
	case assessment.LevelDanger:
		return "Danger"
	case assessment.LevelCaution:
		return "Caution"
	case assessment.LevelSafe:
		return "Good"
	default:
		return string(l)
	}
}
