package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/caadpo/genesis-backend/internal/model"
)

// ── Export business errors ──

var ErrExportNoEntries = errors.New("operation has no schedule entries to export")

// ExportService renders a materialized operation roster to downloadable
// documents. It is a pure consumer of the hierarchy: no consistency logic
// lives here, the operation arrives fully loaded from OperationService.
type ExportService interface {
	// RosterXLSX renders the operation's roster as a spreadsheet, returning
	// the content and a suggested filename.
	RosterXLSX(ctx context.Context, publicCode string) (*bytes.Buffer, string, error)
	// RosterICS renders the operation's entries as an iCalendar feed.
	RosterICS(ctx context.Context, publicCode string) (*bytes.Buffer, string, error)
}

type exportService struct {
	operations OperationService
	logger     *zap.Logger
}

// NewExportService creates the ExportService.
func NewExportService(operations OperationService, logger *zap.Logger) ExportService {
	return &exportService{operations: operations, logger: logger}
}

// ────────────────────── RosterXLSX ──────────────────────

func (s *exportService) RosterXLSX(ctx context.Context, publicCode string) (*bytes.Buffer, string, error) {
	op, err := s.operations.GetByCode(ctx, publicCode)
	if err != nil {
		return nil, "", err
	}
	if len(op.Entries) == 0 {
		return nil, "", ErrExportNoEntries
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Roster"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 28)
	f.SetColWidth(sheet, "C", "D", 14)
	f.SetColWidth(sheet, "E", "F", 18)
	f.SetColWidth(sheet, "G", "H", 22)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// title row: operation code and name
	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s — %s (%02d/%d)", op.PublicCode, op.Name, op.Month, op.Year))
	f.MergeCell(sheet, "A1", "H1")
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	headers := []string{"Rank", "Name", "Service #", "Type", "Starts", "Ends", "Location", "Duty"}
	for i, h := range headers {
		cellName, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheet, cellName, h)
		f.SetCellStyle(sheet, cellName, cellName, headerStyle)
	}

	for i := range op.Entries {
		e := &op.Entries[i]
		row := i + 3
		values := []interface{}{
			e.PersonRank,
			e.PersonName,
			e.ServiceNumber,
			string(e.PersonType),
			e.StartsAt.Format("02/01/2006 15:04"),
			e.EndsAt.Format("02/01/2006 15:04"),
			e.Location,
			e.Duty,
		}
		for col, v := range values {
			cellName, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cellName, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("roster xlsx generation failed", zap.String("code", publicCode), zap.Error(err))
		return nil, "", err
	}
	return buf, rosterFilename(op, "xlsx"), nil
}

// ────────────────────── RosterICS ──────────────────────

func (s *exportService) RosterICS(ctx context.Context, publicCode string) (*bytes.Buffer, string, error) {
	op, err := s.operations.GetByCode(ctx, publicCode)
	if err != nil {
		return nil, "", err
	}
	if len(op.Entries) == 0 {
		return nil, "", ErrExportNoEntries
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//genesis-backend//roster//EN")
	cal.SetName(fmt.Sprintf("%s %s", op.PublicCode, op.Name))

	for i := range op.Entries {
		e := &op.Entries[i]
		ev := cal.AddEvent(fmt.Sprintf("entry-%d@genesis-backend", e.ID))
		ev.SetCreatedTime(e.CreatedAt)
		ev.SetDtStampTime(time.Now())
		ev.SetStartAt(e.StartsAt)
		ev.SetEndAt(e.EndsAt)
		ev.SetSummary(fmt.Sprintf("%s — %s %s", op.Name, e.PersonRank, e.PersonName))
		if e.Location != "" {
			ev.SetLocation(e.Location)
		}
		if e.Duty != "" {
			ev.SetDescription(e.Duty)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, rosterFilename(op, "ics"), nil
}

func rosterFilename(op *model.Operation, ext string) string {
	code := strings.ReplaceAll(op.PublicCode, "/", "-")
	return fmt.Sprintf("roster-%s.%s", code, ext)
}
