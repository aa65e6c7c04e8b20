package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Data carries the display fields for one receipt. Everything here is a
// snapshot of immutable payment columns, so regenerating a receipt for
// the same payment always produces the same document.
type Data struct {
	ReceiptID     string
	UserName      string
	UserEmail     string
	HackathonName string
	Amount        int64
	Currency      string
	PaymentDate   string
	PaymentMethod string
	Status        string
	InvoiceID     string
}

type Service struct {
	dir string
}

func NewService(dir string) (*Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create receipts dir: %w", err)
	}
	return &Service{dir: dir}, nil
}

// Path is a pure function of the payment id.
func (s *Service) Path(paymentID uint) string {
	return filepath.Join(s.dir, fmt.Sprintf("receipt-%d.pdf", paymentID))
}

func (s *Service) Exists(paymentID uint) bool {
	_, err := os.Stat(s.Path(paymentID))
	return err == nil
}

// Generate renders the receipt PDF and returns its path. The document is
// written to a temp file and renamed so a failed render never leaves a
// half-written file at the canonical path.
func (s *Service) Generate(paymentID uint, data Data) (string, error) {
	path := s.Path(paymentID)
	tmp := fmt.Sprintf("%s.%d.tmp", path, time.Now().UnixNano())

	pdf := render(data)
	if err := pdf.OutputFileAndClose(tmp); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("render receipt pdf: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("save receipt pdf: %w", err)
	}
	return path, nil
}

func render(data Data) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	// header band
	pdf.SetFillColor(15, 23, 42)
	pdf.Rect(0, 0, pageW, 100, "F")

	pdf.SetTextColor(96, 165, 250)
	pdf.SetFont("Helvetica", "B", 28)
	pdf.Text(50, 52, "AIrena")

	pdf.SetTextColor(148, 163, 184)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(50, 72, "Hackathon Platform")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	textRight(pdf, pageW-50, 56, "PAYMENT RECEIPT")

	// metadata strip
	pdf.SetFillColor(30, 41, 59)
	pdf.Rect(50, 120, pageW-100, 60, "F")

	label(pdf, 70, 142, "INVOICE ID")
	value(pdf, 70, 158, data.InvoiceID, 226, 232, 240)

	label(pdf, 300, 142, "DATE")
	value(pdf, 300, 158, data.PaymentDate, 226, 232, 240)

	label(pdf, 450, 142, "STATUS")
	if data.Status == "SUCCESS" {
		value(pdf, 450, 158, data.Status, 16, 185, 129)
	} else {
		value(pdf, 450, 158, data.Status, 239, 68, 68)
	}

	// divider
	pdf.SetDrawColor(51, 65, 85)
	pdf.Line(50, 200, pageW-50, 200)

	// bill to
	pdf.SetTextColor(100, 116, 139)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(50, 230, "BILL TO")

	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(50, 250, data.UserName)

	pdf.SetTextColor(71, 85, 105)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(50, 268, data.UserEmail)

	// details table
	tableTop := 310.0
	tableLeft := 50.0
	tableW := pageW - 100

	pdf.SetFillColor(30, 41, 59)
	pdf.Rect(tableLeft, tableTop, tableW, 30, "F")
	pdf.SetTextColor(148, 163, 184)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(tableLeft+10, tableTop+20, "DESCRIPTION")
	pdf.Text(tableLeft+300, tableTop+20, "DETAILS")

	rows := [][2]string{
		{"Hackathon Registration", data.HackathonName},
		{"Payment Method", data.PaymentMethod},
		{"Receipt ID", data.ReceiptID},
	}
	pdf.SetFont("Helvetica", "", 11)
	y := tableTop + 30
	for i, row := range rows {
		if i%2 == 0 {
			pdf.SetFillColor(248, 250, 252)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.Rect(tableLeft, y, tableW, 28, "F")
		pdf.SetTextColor(55, 65, 81)
		pdf.Text(tableLeft+10, y+18, row[0])
		pdf.Text(tableLeft+300, y+18, row[1])
		y += 28
	}

	// amount band
	amtY := y + 32
	pdf.SetFillColor(15, 23, 42)
	pdf.Rect(tableLeft, amtY, tableW, 50, "F")

	pdf.SetTextColor(148, 163, 184)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(tableLeft+10, amtY+30, "TOTAL AMOUNT PAID")

	pdf.SetTextColor(96, 165, 250)
	pdf.SetFont("Helvetica", "B", 22)
	textRight(pdf, pageW-60, amtY+34, formatAmount(data.Amount, data.Currency))

	// footer
	pdf.SetTextColor(148, 163, 184)
	pdf.SetFont("Helvetica", "", 9)
	textCenter(pdf, pageW/2, pageH-80, "This is a computer-generated receipt. No signature required.")
	textCenter(pdf, pageW/2, pageH-65, "AIrena Hackathon Platform  -  support@airena.io")

	return pdf
}

func label(pdf *gofpdf.Fpdf, x, y float64, s string) {
	pdf.SetTextColor(148, 163, 184)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(x, y, s)
}

func value(pdf *gofpdf.Fpdf, x, y float64, s string, r, g, b int) {
	pdf.SetTextColor(r, g, b)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(x, y, s)
}

func textRight(pdf *gofpdf.Fpdf, x, y float64, s string) {
	pdf.Text(x-pdf.GetStringWidth(s), y, s)
}

func textCenter(pdf *gofpdf.Fpdf, x, y float64, s string) {
	pdf.Text(x-pdf.GetStringWidth(s)/2, y, s)
}

// formatAmount renders the total band. A zero amount is the literal
// token FREE; anything else uses Indian digit grouping, matching the
// currency conventions the platform charges in.
func formatAmount(amount int64, currency string) string {
	if amount == 0 {
		return "FREE"
	}
	return currency + " " + groupIndian(amount)
}

func groupIndian(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		parts = append(parts, tail)
		s = ""
		for i, p := range parts {
			if i > 0 {
				s += ","
			}
			s += p
		}
	}
	if neg {
		s = "-" + s
	}
	return s
}
