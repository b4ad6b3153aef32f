package command

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixil98/go-worldsync/internal/entity"
	"github.com/pixil98/go-worldsync/internal/messaging"
)

// seedFile is one JSON file of rows for a single table.
type seedFile struct {
	Table string          `json:"table"`
	Rows  json.RawMessage `json:"rows"`
}

type seedDecoder func(json.RawMessage) ([]messaging.Row, error)

func decodeRows[R messaging.Row](raw json.RawMessage) ([]messaging.Row, error) {
	var rows []R
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	out := make([]messaging.Row, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out, nil
}

var seedDecoders = map[string]seedDecoder{
	entity.TablePlayer:                 decodeRows[entity.Player],
	entity.TableItemDefinition:         decodeRows[entity.ItemDefinition],
	entity.TableRecipe:                 decodeRows[entity.Recipe],
	entity.TableWorldState:             decodeRows[entity.WorldState],
	entity.TableInventoryItem:          decodeRows[entity.InventoryItem],
	entity.TableActiveEquipment:        decodeRows[entity.ActiveEquipment],
	entity.TableCraftingQueueItem:      decodeRows[entity.CraftingQueueItem],
	entity.TableMessage:                decodeRows[entity.Message],
	entity.TablePlayerPin:              decodeRows[entity.PlayerPin],
	entity.TableActiveConnection:       decodeRows[entity.ActiveConnection],
	entity.TableActiveConsumableEffect: decodeRows[entity.ActiveConsumableEffect],
	entity.TableTree:                   decodeRows[entity.Tree],
	entity.TableStone:                  decodeRows[entity.Stone],
	entity.TableResource:               decodeRows[entity.Resource],
	entity.TableCampfire:               decodeRows[entity.Campfire],
	entity.TableWoodenStorageBox:       decodeRows[entity.WoodenStorageBox],
	entity.TableSleepingBag:            decodeRows[entity.SleepingBag],
	entity.TableStash:                  decodeRows[entity.Stash],
	entity.TableDroppedItem:            decodeRows[entity.DroppedItem],
	entity.TableCloud:                  decodeRows[entity.Cloud],
}

type seedRows struct {
	table string
	rows  []messaging.Row
}

// loadSeeds reads every json file under path.
func loadSeeds(path string) ([]seedRows, error) {
	var seeds []seedRows
	err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(p) != ".json" {
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading file %s: %w", p, err)
		}

		var f seedFile
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("unmarshaling seed %s: %w", p, err)
		}
		decode, ok := seedDecoders[f.Table]
		if !ok {
			return fmt.Errorf("seed %s: unknown table %q", p, f.Table)
		}
		rows, err := decode(f.Rows)
		if err != nil {
			return fmt.Errorf("decoding %s rows in %s: %w", f.Table, p, err)
		}

		seeds = append(seeds, seedRows{table: f.Table, rows: rows})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking seed path %s: %w", path, err)
	}

	return seeds, nil
}
