package entity

import (
	"slices"
	"strconv"
)

type ItemDefinition struct {
	ID        uint64 `json:"id" msgpack:"id"`
	Name      string `json:"name" msgpack:"name"`
	Category  string `json:"category" msgpack:"category"`
	StackSize uint32 `json:"stack_size" msgpack:"stack_size"`
	Icon      string `json:"icon" msgpack:"icon"`
	Damage    uint32 `json:"damage" msgpack:"damage"`
}

func (d ItemDefinition) Key() string { return strconv.FormatUint(d.ID, 10) }
func (d ItemDefinition) Differs(o ItemDefinition) bool { return d != o }

type Ingredient struct {
	ItemDefID uint64 `json:"item_def_id" msgpack:"item_def_id"`
	Quantity  uint32 `json:"quantity" msgpack:"quantity"`
}

type Recipe struct {
	ID              uint64       `json:"id" msgpack:"id"`
	OutputItemDefID uint64       `json:"output_item_def_id" msgpack:"output_item_def_id"`
	OutputQuantity  uint32       `json:"output_quantity" msgpack:"output_quantity"`
	Ingredients     []Ingredient `json:"ingredients" msgpack:"ingredients"`
	CraftSeconds    uint32       `json:"craft_seconds" msgpack:"craft_seconds"`
}

func (r Recipe) Key() string { return strconv.FormatUint(r.ID, 10) }

func (r Recipe) Differs(o Recipe) bool {
	return r.OutputItemDefID != o.OutputItemDefID ||
		r.OutputQuantity != o.OutputQuantity ||
		r.CraftSeconds != o.CraftSeconds ||
		!slices.Equal(r.Ingredients, o.Ingredients)
}

// WorldState is the single-row world clock.
type WorldState struct {
	ID            uint64  `json:"id" msgpack:"id"`
	Day           uint32  `json:"day" msgpack:"day"`
	CycleProgress float32 `json:"cycle_progress" msgpack:"cycle_progress"`
	TimeOfDay     string  `json:"time_of_day" msgpack:"time_of_day"`
	IsFullMoon    bool    `json:"is_full_moon" msgpack:"is_full_moon"`
}

func (w WorldState) Key() string { return strconv.FormatUint(w.ID, 10) }
func (w WorldState) Differs(o WorldState) bool { return w != o }
