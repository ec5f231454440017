package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator — interfaz (cómoda de simular en tests)
type Generator interface {
	GenerateProjectReport(data ProjectReportData) ([]byte, error)
}

// ReportGenerator — implementación
type ReportGenerator struct {
	FontPath string // ruta al TTF, p. ej. "assets/fonts/DejaVuSans.ttf"
	fontName string
}

type ReportCollaborator struct {
	Name string
	Role string
}

type ReportCategory struct {
	Name      string
	TaskCount int
}

type StatusCount struct {
	Status string
	Count  int
}

type PriorityCount struct {
	Priority string
	Count    int
}

type ProjectReportData struct {
	ProjectID     int64
	ProjectName   string
	Description   string
	CreatorName   string
	GeneratedAt   time.Time
	Collaborators []ReportCollaborator
	Categories    []ReportCategory
	ByStatus      []StatusCount
	ByPriority    []PriorityCount
}

func NewReportGenerator(fontPath string) *ReportGenerator {
	return &ReportGenerator{
		FontPath: fontPath,
		fontName: "DejaVu",
	}
}

func (g *ReportGenerator) GenerateProjectReport(data ProjectReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Informe del proyecto %s", data.ProjectName), true)
	pdf.SetAuthor("Panal", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	g.addUTF8Font(pdf)
	pdf.AddPage()

	// ===== Cabecera
	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "INFORME DE PROYECTO", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("Nº PANAL-%06d  ·  %s",
		data.ProjectID,
		data.GeneratedAt.Format("02/01/2006"),
	)
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)

	pdf.Ln(3)

	// ===== Datos generales
	g.sectionTitle(pdf, "Datos generales")
	g.kvLine(pdf, "Proyecto", data.ProjectName)
	g.kvLine(pdf, "Creador", data.CreatorName)
	if data.Description != "" {
		pdf.SetFont(g.fontName, "", 11)
		pdf.MultiCell(0, 6, data.Description, "", "L", false)
	}
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Tareas por estado
	g.sectionTitle(pdf, "Tareas por estado")
	for _, s := range data.ByStatus {
		g.kvLine(pdf, s.Status, fmt.Sprintf("%d", s.Count))
	}
	pdf.Ln(1)

	// ===== Tareas por prioridad
	g.sectionTitle(pdf, "Tareas por prioridad")
	for _, p := range data.ByPriority {
		g.kvLine(pdf, p.Priority, fmt.Sprintf("%d", p.Count))
	}
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Columnas
	g.sectionTitle(pdf, "Columnas")
	for _, c := range data.Categories {
		g.kvLine(pdf, c.Name, fmt.Sprintf("%d tareas", c.TaskCount))
	}
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Equipo
	g.sectionTitle(pdf, "Equipo")
	for _, c := range data.Collaborators {
		g.kvLine(pdf, c.Name, c.Role)
	}

	// ===== Numeración de páginas
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Pág. %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ===== helpers =====

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

func (g *ReportGenerator) addUTF8Font(pdf *gofpdf.Fpdf) {
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
}
