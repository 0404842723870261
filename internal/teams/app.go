package teams

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/models"
)

// TeamsRepository defines what the app layer needs from the repository
type TeamsRepository interface {
	GetTeamByJoinCode(ctx context.Context, draftID uuid.UUID, code string) (*models.Team, error)
	ListTeams(ctx context.Context, draftID uuid.UUID) ([]models.Team, error)
	UpsertTeams(ctx context.Context, draftID uuid.UUID, rows []TeamUpsert) error
	ReplaceTeams(ctx context.Context, draftID uuid.UUID, rows []TeamUpsert) error
}

// App coordinates team membership and roster imports.
type App struct {
	repo TeamsRepository
}

func NewApp(repo TeamsRepository) *App {
	return &App{repo: repo}
}

// JoinTeam resolves a team by its join code.
func (a *App) JoinTeam(ctx context.Context, draftID uuid.UUID, code string) (*models.Team, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidJoinCode
	}
	return a.repo.GetTeamByJoinCode(ctx, draftID, code)
}

// ListTeams returns every team in the draft.
func (a *App) ListTeams(ctx context.Context, draftID uuid.UUID) ([]models.Team, error) {
	return a.repo.ListTeams(ctx, draftID)
}

// ImportTeams parses the CSV text and upserts the teams it describes.
// Returns the number of teams imported.
func (a *App) ImportTeams(ctx context.Context, draftID uuid.UUID, csvText string) (int, error) {
	rows, err := ParseTeamsCSV(csvText)
	if err != nil {
		return 0, err
	}
	if err := a.repo.UpsertTeams(ctx, draftID, rows); err != nil {
		return 0, err
	}
	log.Info().Str("draft_id", draftID.String()).Int("count", len(rows)).Msg("imported teams")
	return len(rows), nil
}

// ReplaceTeams parses the CSV text and swaps the draft's team list for it.
// Returns the number of teams installed.
func (a *App) ReplaceTeams(ctx context.Context, draftID uuid.UUID, csvText string) (int, error) {
	rows, err := ParseTeamsCSV(csvText)
	if err != nil {
		return 0, err
	}
	if err := a.repo.ReplaceTeams(ctx, draftID, rows); err != nil {
		return 0, err
	}
	log.Info().Str("draft_id", draftID.String()).Int("count", len(rows)).Msg("replaced teams")
	return len(rows), nil
}

// RowError is one rejected CSV row. Row numbers are 1-based positions in
// the file, header included, so they match what a spreadsheet shows.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ValidationError aggregates every rejected row of an import. Imports are
// all-or-nothing: any bad row rejects the whole file.
type ValidationError struct {
	Rows []RowError `json:"rows"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("csv validation failed: %d bad row(s)", len(e.Rows))
}

var teamHeaderAliases = map[string]string{
	"name":               "name",
	"team":               "name",
	"code":               "code",
	"join_code":          "code",
	"budget":             "budget",
	"spots":              "spots",
	"roster_spots":       "spots",
	"roster_spots_total": "spots",
}

// ParseTeamsCSV parses a header-row CSV of teams. Recognized columns are
// name, code (alias join_code), budget and spots (aliases roster_spots,
// roster_spots_total). A UTF-8 BOM is stripped.
func ParseTeamsCSV(text string) ([]TeamUpsert, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(text, "\ufeff")))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ValidationError{Rows: []RowError{{Row: 1, Message: "empty file"}}}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	cols := map[string]int{}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := teamHeaderAliases[key]; ok {
			cols[canonical] = i
		}
	}
	var rowErrs []RowError
	for _, required := range []string{"name", "code", "budget", "spots"} {
		if _, ok := cols[required]; !ok {
			rowErrs = append(rowErrs, RowError{Row: 1, Message: "missing column: " + required})
		}
	}
	if len(rowErrs) > 0 {
		return nil, &ValidationError{Rows: rowErrs}
	}

	field := func(record []string, col string) string {
		i := cols[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var out []TeamUpsert
	seenNames := map[string]bool{}
	seenCodes := map[string]bool{}
	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: "malformed row"})
			continue
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		row := TeamUpsert{
			Name:     field(record, "name"),
			JoinCode: field(record, "code"),
		}
		if row.Name == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: "name is required"})
		} else if seenNames[row.Name] {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: "duplicate name: " + row.Name})
		}
		if row.JoinCode == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: "code is required"})
		} else if seenCodes[row.JoinCode] {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: "duplicate code: " + row.JoinCode})
		}

		budget, err := strconv.Atoi(field(record, "budget"))
		if err != nil || budget < 0 {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: "budget must be a non-negative integer"})
		}
		row.Budget = budget

		spots, err := strconv.Atoi(field(record, "spots"))
		if err != nil || spots < 1 {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: "spots must be a positive integer"})
		}
		row.Spots = spots

		seenNames[row.Name] = true
		seenCodes[row.JoinCode] = true
		out = append(out, row)
	}

	if len(rowErrs) > 0 {
		return nil, &ValidationError{Rows: rowErrs}
	}
	if len(out) == 0 {
		return nil, &ValidationError{Rows: []RowError{{Row: 2, Message: "no team rows"}}}
	}
	return out, nil
}

// IsValidation reports whether err carries row-level validation failures.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
