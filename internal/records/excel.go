package records

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/hr-matcher/internal/aggregate"
)

const (
	summarySheet = "Summary"
	rankedSheet  = "Ranked"
)

var rankedHeader = []string{"Rank", "Candidate", "Job", "Overall Match", "Status", "Skills", "Cultural", "Behavioral"}

// ExportExcel writes a workbook with a summary sheet and a ranked sheet. The .xlsx extension
// is added when missing; the final path is returned.
func (r *Results) ExportExcel(path string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return "", err
	}
	if _, err := f.NewSheet(rankedSheet); err != nil {
		return "", err
	}

	if err := r.writeSummary(f); err != nil {
		return "", fmt.Errorf("summary sheet: %w", err)
	}
	if err := r.writeRanked(f); err != nil {
		return "", fmt.Errorf("ranked sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

func (r *Results) writeSummary(f *excelize.File) error {
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 40); err != nil {
		return err
	}

	rows := [][]any{
		{"Run ID", r.RunID},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Pairs Scored", r.Len()},
		{"Average Overall Match", average(r)},
		{},
	}

	counts := r.CountByStatus()
	for _, status := range aggregate.Statuses {
		rows = append(rows, []any{status, counts[status]})
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, cell, cell, labelStyle); err != nil {
			return err
		}
	}
	return nil
}

func (r *Results) writeRanked(f *excelize.File) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	header := make([]any, len(rankedHeader))
	for i, h := range rankedHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(rankedSheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(rankedHeader), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(rankedSheet, "A1", last, headerStyle); err != nil {
		return err
	}

	ranked := &Results{Items: append(r.Items[:0:0], r.Items...)}
	ranked.SortByOverall()

	for i, item := range ranked.Items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{i + 1, item.CandidateID, item.JobID, item.OverallMatch, item.Status, item.Skills, item.Cultural, item.Behavioral}
		if err := f.SetSheetRow(rankedSheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetPanes(rankedSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func average(r *Results) float64 {
	if r.Len() == 0 {
		return 0
	}
	total := 0.0
	for _, item := range r.Items {
		total += item.OverallMatch
	}
	return total / float64(r.Len())
}
