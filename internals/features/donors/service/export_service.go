package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"sevasangh_backend/internals/features/donors/model"
)

// BuildCSV renders donor rows as a flat CSV document.
func BuildCSV(rows []model.UserData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{
		"user_id", "usercode", "name", "surname", "father_or_husband_name",
		"gender", "mobile_no1", "village", "area", "address", "pincode",
		"state", "type",
	}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		village, area := "", ""
		if r.Village != nil {
			village = r.Village.Name
		}
		if r.Area != nil {
			area = r.Area.Name
		}
		if err := w.Write([]string{
			fmt.Sprintf("%d", r.ID),
			r.Usercode,
			r.Name,
			r.Surname,
			r.FatherOrHusbandName,
			r.Gender,
			r.MobileNo1,
			village,
			area,
			r.Address,
			r.Pincode,
			r.State,
			r.Type,
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Page geometry for the two-column donor report (A4 portrait, mm units).
const (
	pdfLeftColX  = 10.0
	pdfRightColX = 110.0
	pdfColWidth  = 90.0
	pdfTopY      = 25.0
	pdfBlockH    = 34.0
	pdfBottomY   = 270.0
)

// BuildPDF lays donor records into a fixed two-column report: records fill
// the left column top to bottom, then the right column, then a new page.
func BuildPDF(rows []model.UserData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Donor Report", false)
	pdf.SetAutoPageBreak(false, 0)

	header := func() {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Text(pdfLeftColX, 15, "Donor Report")
		pdf.SetFont("Helvetica", "", 8)
		pdf.Text(pdfRightColX+40, 15, time.Now().Format("02 Jan 2006"))
	}

	pdf.AddPage()
	header()

	x, y := pdfLeftColX, pdfTopY
	for _, r := range rows {
		if y+pdfBlockH > pdfBottomY {
			if x == pdfLeftColX {
				x, y = pdfRightColX, pdfTopY
			} else {
				pdf.AddPage()
				header()
				x, y = pdfLeftColX, pdfTopY
			}
		}
		drawDonorBlock(pdf, x, y, r)
		y += pdfBlockH
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawDonorBlock(pdf *fpdf.Fpdf, x, y float64, r model.UserData) {
	village, area := "-", "-"
	if r.Village != nil {
		village = r.Village.Name
	}
	if r.Area != nil {
		area = r.Area.Name
	}

	pdf.Rect(x, y, pdfColWidth, pdfBlockH-2, "D")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(x+2, y+6, fmt.Sprintf("%s %s", r.Name, r.Surname))
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(x+2, y+11, "Code: "+orDash(r.Usercode))
	pdf.Text(x+2, y+16, "Father/Husband: "+orDash(r.FatherOrHusbandName))
	pdf.Text(x+2, y+21, fmt.Sprintf("Village: %s   Area: %s", village, area))
	pdf.Text(x+2, y+26, "Mobile: "+orDash(r.MobileNo1))
	pdf.Text(x+2, y+31, "Address: "+truncate(r.Address, 55))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens on rune boundaries so multibyte addresses survive.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return orDash(s)
	}
	return string(r[:n-1]) + "…"
}
