package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tikoncha/internal/models"
)

// Generator — интерфейс (удобно мокать в тестах)
type Generator interface {
	GenerateUsageReport(data UsageReportData) (string, error)
}

// ReportGenerator — реализация
type ReportGenerator struct {
	RootDir  string // корень хранения, например "./files"
	FontPath string // путь до TTF, например "assets/fonts/DejaVuSans.ttf"
	fontName string // внутреннее имя шрифта в PDF
}

type UsageReportData struct {
	StudentName string
	SchoolName  string
	From        time.Time
	To          time.Time
	Rows        []*models.LogDaySummary
	GeneratedAt time.Time
	Filename    string // имя файла (без путей); если пусто — сгенерируем
}

func NewReportGenerator(rootDir, fontPath string) *ReportGenerator {
	return &ReportGenerator{
		RootDir:  filepath.Clean(rootDir),
		FontPath: fontPath,
		fontName: "DejaVu",
	}
}

func (g *ReportGenerator) GenerateUsageReport(data UsageReportData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("usage_%s.pdf", data.From.Format("2006-01-02"))
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Отчёт об использовании устройства", false)
	pdf.SetAuthor("Tikoncha", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	g.addUTF8Font(pdf)
	pdf.AddPage()

	// ===== Заголовок
	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "ОТЧЁТ ОБ ИСПОЛЬЗОВАНИИ", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("%s — %s",
		data.From.Format("02.01.2006"),
		data.To.Format("02.01.2006"),
	)
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)

	pdf.Ln(3)

	// ===== Ученик
	g.sectionTitle(pdf, "Ученик")
	g.kvLine(pdf, "ФИО", data.StudentName)
	if data.SchoolName != "" {
		g.kvLine(pdf, "Школа", data.SchoolName)
	}
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Активность по дням
	g.sectionTitle(pdf, "Активность по дням")
	if len(data.Rows) == 0 {
		pdf.SetFont(g.fontName, "", 11)
		pdf.MultiCell(0, 6, "За выбранный период событий не зарегистрировано.", "", "L", false)
	} else {
		g.summaryHeader(pdf)
		pdf.SetFont(g.fontName, "", 10)
		for _, row := range data.Rows {
			pdf.CellFormat(35, 6, row.Day.Format("02.01.2006"), "1", 0, "L", false, 0, "")
			pdf.CellFormat(75, 6, row.ActionName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 6, degreeLabel(row.Degree), "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, fmt.Sprintf("%d", row.Count), "1", 1, "R", false, 0, "")
		}
	}
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Сводка
	g.sectionTitle(pdf, "Сводка")
	total, flagged := 0, 0
	for _, row := range data.Rows {
		total += row.Count
		if row.Degree != models.DegreeNeutral {
			flagged += row.Count
		}
	}
	g.kvLine(pdf, "Всего событий", fmt.Sprintf("%d", total))
	g.kvLine(pdf, "Требуют внимания", fmt.Sprintf("%d", flagged))
	g.kvLine(pdf, "Сформирован", data.GeneratedAt.Format("02.01.2006 15:04"))

	// ===== Нумерация страниц
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Стр. %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(filepath.Base(absPath)), nil
}

func degreeLabel(degree string) string {
	switch degree {
	case models.DegreeSuspicious:
		return "подозрительно"
	case models.DegreeTerrible:
		return "опасно"
	default:
		return "обычное"
	}
}

// === helpers ===

func (g *ReportGenerator) summaryHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont(g.fontName, "B", 10)
	pdf.CellFormat(35, 7, "Дата", "1", 0, "L", false, 0, "")
	pdf.CellFormat(75, 7, "Действие", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Степень", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Кол-во", "1", 1, "R", false, 0, "")
}

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *ReportGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename) // безопасность
	return filepath.Join(g.RootDir, filename), nil
}

func (g *ReportGenerator) addUTF8Font(pdf *gofpdf.Fpdf) {
	// AddUTF8Font принимает путь до TTF
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
}
