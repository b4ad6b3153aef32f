package entity

import "strconv"

type InventoryItem struct {
	InstanceID uint64 `json:"instance_id" msgpack:"instance_id"`
	OwnerID    string `json:"owner_id" msgpack:"owner_id"`
	ItemDefID  uint64 `json:"item_def_id" msgpack:"item_def_id"`
	Quantity   uint32 `json:"quantity" msgpack:"quantity"`
	// Slot is the hotbar or inventory slot, negative when unslotted.
	Slot int32 `json:"slot" msgpack:"slot"`
}

func (i InventoryItem) Key() string { return strconv.FormatUint(i.InstanceID, 10) }
func (i InventoryItem) Differs(o InventoryItem) bool { return i != o }

type ActiveEquipment struct {
	PlayerIdentity     string `json:"player_identity" msgpack:"player_identity"`
	EquippedItemDefID  uint64 `json:"equipped_item_def_id" msgpack:"equipped_item_def_id"`
	EquippedInstanceID uint64 `json:"equipped_instance_id" msgpack:"equipped_instance_id"`
	SwingStartMs       int64  `json:"swing_start_ms" msgpack:"swing_start_ms"`
}

func (e ActiveEquipment) Key() string { return e.PlayerIdentity }
func (e ActiveEquipment) Differs(o ActiveEquipment) bool { return e != o }

type CraftingQueueItem struct {
	QueueItemID    uint64 `json:"queue_item_id" msgpack:"queue_item_id"`
	PlayerIdentity string `json:"player_identity" msgpack:"player_identity"`
	RecipeID       uint64 `json:"recipe_id" msgpack:"recipe_id"`
	FinishAt       int64  `json:"finish_at" msgpack:"finish_at"`
}

func (c CraftingQueueItem) Key() string { return strconv.FormatUint(c.QueueItemID, 10) }
func (c CraftingQueueItem) Differs(o CraftingQueueItem) bool { return c != o }

type ActiveConsumableEffect struct {
	EffectID       uint64 `json:"effect_id" msgpack:"effect_id"`
	PlayerIdentity string `json:"player_identity" msgpack:"player_identity"`
	ItemDefID      uint64 `json:"item_def_id" msgpack:"item_def_id"`
	EffectType     string `json:"effect_type" msgpack:"effect_type"`
	StartedAt      int64  `json:"started_at" msgpack:"started_at"`
	EndsAt         int64  `json:"ends_at" msgpack:"ends_at"`
}

func (e ActiveConsumableEffect) Key() string { return strconv.FormatUint(e.EffectID, 10) }
func (e ActiveConsumableEffect) Differs(o ActiveConsumableEffect) bool { return e != o }
