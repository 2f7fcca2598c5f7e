package export

import (
	"fmt"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/balkashynov/jess/internal/layout"
	"github.com/balkashynov/jess/internal/models"
)

var pdfGrid = []uint{2, 2, 2, 3, 2, 1}

// PDF writes a printable timetable to path: one table per visible day,
// classes ordered by start time.
func PDF(path, title string, classes []models.ClassSession, w layout.Window) error {
	if title == "" {
		title = "Timetable"
	}

	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(title, props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(fmt.Sprintf("%d classes, %d:00 - %d:00", len(classes), w.StartHour, w.EndHour), props.Text{
					Top:   3,
					Style: consts.Normal,
					Align: consts.Center,
					Size:  12,
				})
			})
		})
	})

	headers := []string{"Time", "Code", "Type", "Course", "Location", "Instructor"}

	groups := layout.Vertical(classes, w)
	if len(groups) == 0 {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("No classes found.", props.Text{Top: 5, Align: consts.Center, Size: 12})
			})
		})
	}

	for _, group := range groups {
		rows := make([][]string, 0, len(group.Classes))
		for _, c := range group.Classes {
			rows = append(rows, []string{
				c.TimeStart + "-" + c.TimeEnd,
				c.CourseCode,
				c.Type,
				c.CourseName,
				c.Location,
				c.Instructor,
			})
		}

		day := group.Day
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(day, props.Text{
					Top:   5,
					Style: consts.Bold,
					Size:  12,
					Align: consts.Left,
				})
			})
		})

		m.TableList(headers, rows, props.TableList{
			HeaderProp: props.TableListContent{
				Size:      10,
				GridSizes: pdfGrid,
			},
			ContentProp: props.TableListContent{
				Size:      9,
				GridSizes: pdfGrid,
			},
			Align:                consts.Left,
			AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
			HeaderContentSpace:   1,
			Line:                 false,
		})

		// Add some space after table
		m.Row(5, func() {})
	}

	if err := m.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
