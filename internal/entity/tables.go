package entity

// Table names as published by the store.
const (
	TablePlayer                 = "player"
	TableItemDefinition         = "item_definition"
	TableRecipe                 = "recipe"
	TableWorldState             = "world_state"
	TableInventoryItem          = "inventory_item"
	TableActiveEquipment        = "active_equipment"
	TableCraftingQueueItem      = "crafting_queue_item"
	TableMessage                = "message"
	TablePlayerPin              = "player_pin"
	TableActiveConnection       = "active_connection"
	TableActiveConsumableEffect = "active_consumable_effect"

	TableTree             = "tree"
	TableStone            = "stone"
	TableResource         = "resource"
	TableCampfire         = "campfire"
	TableWoodenStorageBox = "wooden_storage_box"
	TableSleepingBag      = "sleeping_bag"
	TableStash            = "stash"
	TableDroppedItem      = "dropped_item"
	TableCloud            = "cloud"
)

// GlobalTables are subscribed once per connection, independent of position.
// Reference data comes first so rows that point at it resolve on arrival.
var GlobalTables = []string{
	TableItemDefinition,
	TableRecipe,
	TableWorldState,
	TablePlayer,
	TableInventoryItem,
	TableActiveEquipment,
	TableCraftingQueueItem,
	TableMessage,
	TablePlayerPin,
	TableActiveConnection,
	TableActiveConsumableEffect,
}

// SpatialTables are partitioned by chunk index and subscribed per chunk.
var SpatialTables = []string{
	TableTree,
	TableStone,
	TableResource,
	TableCampfire,
	TableWoodenStorageBox,
	TableSleepingBag,
	TableStash,
	TableDroppedItem,
	TableCloud,
}

// Position is a world-space point.
type Position struct {
	X float32 `json:"x" msgpack:"x"`
	Y float32 `json:"y" msgpack:"y"`
}
