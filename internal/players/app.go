package players

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/models"
)

// PlayersRepository defines what the app layer needs from the repository
type PlayersRepository interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListPlayers(ctx context.Context, draftID uuid.UUID) ([]models.Player, error)
	UpsertPlayers(ctx context.Context, draftID uuid.UUID, rows []PlayerUpsert) error
	ReplaceUndrafted(ctx context.Context, draftID uuid.UUID) (int, error)
}

// App coordinates the draftable player pool.
type App struct {
	repo PlayersRepository
}

func NewApp(repo PlayersRepository) *App {
	return &App{repo: repo}
}

// ListPlayers returns every player in the draft.
func (a *App) ListPlayers(ctx context.Context, draftID uuid.UUID) ([]models.Player, error) {
	return a.repo.ListPlayers(ctx, draftID)
}

// ImportPlayers parses the CSV text and upserts the players it describes.
// Returns the number of players imported.
func (a *App) ImportPlayers(ctx context.Context, draftID uuid.UUID, csvText string) (int, error) {
	rows, err := ParsePlayersCSV(csvText)
	if err != nil {
		return 0, err
	}
	if err := a.repo.UpsertPlayers(ctx, draftID, rows); err != nil {
		return 0, err
	}
	log.Info().Str("draft_id", draftID.String()).Int("count", len(rows)).Msg("imported players")
	return len(rows), nil
}

// ReplaceUndrafted clears the undrafted player pool so a fresh list can be
// imported. Returns the number of players removed.
func (a *App) ReplaceUndrafted(ctx context.Context, draftID uuid.UUID) (int, error) {
	removed, err := a.repo.ReplaceUndrafted(ctx, draftID)
	if err != nil {
		return 0, err
	}
	log.Info().Str("draft_id", draftID.String()).Int("removed", removed).Msg("cleared undrafted players")
	return removed, nil
}

// CSVError is a player CSV rejection. The first bad row stops the parse.
type CSVError struct {
	Message string
}

func (e *CSVError) Error() string { return e.Message }

// IsCSVError reports whether err is a player CSV rejection.
func IsCSVError(err error) bool {
	var ce *CSVError
	return errors.As(err, &ce)
}

// ParsePlayersCSV parses a player list. The file is headerless by default
// with columns name, primary, secondary; a header row is sniffed when the
// first row names a "name" column and a primary-position column (aliases
// pos1, position_primary). Rows with an empty name are skipped. A UTF-8 BOM
// is stripped.
func ParsePlayersCSV(text string) ([]PlayerUpsert, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(text, "\ufeff")))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := readAll(reader)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &CSVError{Message: "no rows found"}
	}

	nameCol, primaryCol, secondaryCol := 0, 1, 2
	if header, ok := sniffHeader(records[0]); ok {
		nameCol = header["name"]
		primaryCol = header["primary"]
		secondaryCol = -1
		if i, ok := header["secondary"]; ok {
			secondaryCol = i
		}
		records = records[1:]
	}

	field := func(record []string, i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var out []PlayerUpsert
	for _, record := range records {
		name := field(record, nameCol)
		if name == "" {
			continue
		}
		primary := NormalizePosition(field(record, primaryCol))
		if primary == "" {
			return nil, &CSVError{Message: fmt.Sprintf("missing primary position for %q", name)}
		}
		if !ValidPrimary(primary) {
			return nil, &CSVError{Message: fmt.Sprintf("invalid primary position %q for %q", primary, name)}
		}

		eligibility := models.PositionEligibility{Primary: primary}
		if secondary := NormalizePosition(field(record, secondaryCol)); secondary != "" {
			if !ValidSecondary(secondary) {
				return nil, &CSVError{Message: fmt.Sprintf("invalid secondary position %q for %q", secondary, name)}
			}
			eligibility.Secondary = &secondary
		}
		out = append(out, PlayerUpsert{Name: name, Position: eligibility})
	}

	if len(out) == 0 {
		return nil, &CSVError{Message: "no valid player rows found"}
	}
	return out, nil
}

func readAll(reader *csv.Reader) ([][]string, error) {
	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, &CSVError{Message: "malformed csv: " + err.Error()}
		}
		empty := true
		for _, f := range record {
			if strings.TrimSpace(f) != "" {
				empty = false
				break
			}
		}
		if !empty {
			records = append(records, record)
		}
	}
}

var playerHeaderAliases = map[string]string{
	"name":             "name",
	"primary":          "primary",
	"pos1":             "primary",
	"positionprimary":  "primary",
	"position_primary": "primary",
	"secondary":        "secondary",
	"pos2":             "secondary",
	"positionsecondary": "secondary",
	"position_secondary": "secondary",
}

// sniffHeader decides whether the first row is a header. It must name both
// the name column and a primary-position column to qualify; anything else
// is treated as data.
func sniffHeader(row []string) (map[string]int, bool) {
	cols := map[string]int{}
	for i, cell := range row {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(cell)), " ", "")
		if canonical, ok := playerHeaderAliases[key]; ok {
			if _, taken := cols[canonical]; !taken {
				cols[canonical] = i
			}
		}
	}
	_, hasName := cols["name"]
	_, hasPrimary := cols["primary"]
	if !hasName || !hasPrimary {
		return nil, false
	}
	return cols, true
}
