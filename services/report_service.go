package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/andrey156p/taskflow/models"
	"github.com/andrey156p/taskflow/utils"
)

const (
	// ReportSheet is the single sheet in the exported workbook.
	ReportSheet = "Tasks"
	// ReportFilename is the download name for the HTTP export.
	ReportFilename = "Tasks_Export.xlsx"
	// ReportMIME is the xlsx container MIME type.
	ReportMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// undatedBucket labels the fallback bucket for tasks whose due date does
	// not parse.
	undatedBucket = "undated"
)

// Column order is fixed. The sheet is right-to-left, so column A renders on
// the right edge, which puts the dates where a Hebrew reader starts.
var reportHeaders = []string{
	"תאריך התחלה",    // start_date
	"תאריך יעד",      // due_date
	"סיבת הארכה",     // extension_reason
	"סטטוס",          // status
	"עדיפות",         // priority
	"תיאור משימה",    // description
	"חומרים",         // materials
	"מבצע",           // performer
	"אחראי",          // person_in_charge
	"קבלן",           // contractor
	"פרטי קשר קבלן",  // contractor_contact
	"ספק",            // supplier
	"פרטי קשר ספק",   // supplier_contact
	"מזהה",           // id
}

// Widths tuned for the Hebrew field labels above.
var reportColWidths = []float64{15, 15, 25, 10, 10, 30, 20, 15, 15, 15, 18, 15, 18, 6}

// ReportService renders the full task history, archived rows included, as a
// week-grouped spreadsheet.
type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// weekBucket computes the task's containing week, keyed by its Sunday start.
// A fresh value is computed per task; nothing is mutated while walking.
func weekBucket(dueDate string) string {
	due, err := utils.ParseDate(dueDate)
	if err != nil {
		return undatedBucket
	}
	return utils.WeekStart(due).Format(utils.DateLayout)
}

func taskRow(t models.Task) []interface{} {
	return []interface{}{
		t.StartDate,
		t.DueDate,
		t.ExtensionReason,
		t.Status.Label(),
		t.Priority.Label(),
		t.Description,
		t.Materials,
		t.Performer,
		t.PersonInCharge,
		t.Contractor,
		t.ContractorContact,
		t.Supplier,
		t.SupplierContact,
		t.ID,
	}
}

// Generate builds the workbook from tasks already ordered by due date. Every
// week change emits a blank spacer row followed by a label row whose only
// populated cell sits in the start-date column.
func (rs *ReportService) Generate(tasks []models.Task) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ReportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	rtl := true
	if err := f.SetSheetView(ReportSheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return nil, err
	}

	for i, width := range reportColWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(ReportSheet, col, col, width); err != nil {
			return nil, err
		}
	}

	headerRow := make([]interface{}, len(reportHeaders))
	for i, h := range reportHeaders {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(ReportSheet, "A1", &headerRow); err != nil {
		return nil, err
	}

	// Freeze the header row.
	if err := f.SetPanes(ReportSheet, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	// A bucket key is never the empty string, so the first task always
	// opens a bucket.
	row := 2
	prevBucket := ""
	for _, t := range tasks {
		bucket := weekBucket(t.DueDate)
		if bucket != prevBucket {
			// spacer row is left entirely blank
			row++
			label := fmt.Sprintf("--- Week: %s ---", bucket)
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(ReportSheet, cell, label); err != nil {
				return nil, err
			}
			row++
			prevBucket = bucket
		}

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		data := taskRow(t)
		if err := f.SetSheetRow(ReportSheet, cell, &data); err != nil {
			return nil, err
		}
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

// DatedFilename is the attachment name used by the weekly mail.
func DatedFilename(now time.Time) string {
	return fmt.Sprintf("Tasks_Export_%s.xlsx", now.Format(utils.DateLayout))
}
