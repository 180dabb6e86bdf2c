package export

import (
	"fmt"
	"io"
	"time"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/xuri/excelize/v2"
)

// SheetName лист с расписанием в выгрузке
const SheetName = "Розклад"

var headers = []string{"Дата", "День", "Початок", "Кінець", "Назва", "Тип", "Підгрупа", "Викладачі", "Місце", "Коментар", "Скасовано"}

// XLSX пишет неделю расписания в таблицу, одна строка на занятие
func XLSX(w io.Writer, monday time.Time, week model.Week) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetName, cell, header)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, style); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}
	_ = f.SetColWidth(SheetName, "E", "E", 40)
	_ = f.SetColWidth(SheetName, "H", "H", 30)

	row := 2
	for i, day := range week.Days {
		date := monday.AddDate(0, 0, i)
		for _, l := range day.Lessons {
			canceled := ""
			if l.Canceled {
				canceled = "так"
			}
			values := []any{
				date.Format("02.01.2006"),
				DayName(i + 1),
				ClockTime(l.Time),
				ClockTime(l.Time + l.Duration),
				l.Title(),
				l.LessonType,
				SubgroupLabel(l.Subgroup),
				Lecturers(l),
				l.FirstPlace(),
				l.Comment,
				canceled,
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
			row++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
