package cache

import (
	"fmt"
	"sync/atomic"

	"github.com/pixil98/go-worldsync/internal/entity"
	"github.com/pixil98/go-worldsync/internal/identity"
	"github.com/pixil98/go-worldsync/internal/placement"
	"github.com/pixil98/go-worldsync/internal/store"
)

type applier interface {
	Name() string
	Len() int
	Clear()
	EvictChunk(uint32) int
	apply(store.Event) (store.Op, any, error)
}

type placed interface {
	Placer() string
}

// Cache is the local read model of the store: one table per entity kind.
// Apply is expected to be called from a single goroutine; readers may use the
// tables concurrently.
type Cache struct {
	Players                 *Table[entity.Player]
	ItemDefinitions         *Table[entity.ItemDefinition]
	Recipes                 *Table[entity.Recipe]
	WorldStates             *Table[entity.WorldState]
	InventoryItems          *Table[entity.InventoryItem]
	ActiveEquipment         *Table[entity.ActiveEquipment]
	CraftingQueue           *Table[entity.CraftingQueueItem]
	Messages                *Table[entity.Message]
	PlayerPins              *Table[entity.PlayerPin]
	ActiveConnections       *Table[entity.ActiveConnection]
	ActiveConsumableEffects *Table[entity.ActiveConsumableEffect]

	Trees              *Table[entity.Tree]
	Stones             *Table[entity.Stone]
	Resources          *Table[entity.Resource]
	Campfires          *Table[entity.Campfire]
	WoodenStorageBoxes *Table[entity.WoodenStorageBox]
	SleepingBags       *Table[entity.SleepingBag]
	Stashes            *Table[entity.Stash]
	DroppedItems       *Table[entity.DroppedItem]
	Clouds             *Table[entity.Cloud]

	tables map[string]applier

	local     string
	placement placement.Canceler

	registered atomic.Bool
	generation atomic.Uint64
}

// New builds an empty cache for the session identified by local.
func New(local identity.Identity, opts ...CacheOpt) *Cache {
	c := &Cache{
		Players:                 NewTable[entity.Player](entity.TablePlayer),
		ItemDefinitions:         NewTable[entity.ItemDefinition](entity.TableItemDefinition),
		Recipes:                 NewTable[entity.Recipe](entity.TableRecipe),
		WorldStates:             NewTable[entity.WorldState](entity.TableWorldState),
		InventoryItems:          NewTable[entity.InventoryItem](entity.TableInventoryItem),
		ActiveEquipment:         NewTable[entity.ActiveEquipment](entity.TableActiveEquipment),
		CraftingQueue:           NewTable[entity.CraftingQueueItem](entity.TableCraftingQueueItem),
		Messages:                NewTable[entity.Message](entity.TableMessage),
		PlayerPins:              NewTable[entity.PlayerPin](entity.TablePlayerPin),
		ActiveConnections:       NewTable[entity.ActiveConnection](entity.TableActiveConnection),
		ActiveConsumableEffects: NewTable[entity.ActiveConsumableEffect](entity.TableActiveConsumableEffect),

		Trees:              NewTable[entity.Tree](entity.TableTree),
		Stones:             NewTable[entity.Stone](entity.TableStone),
		Resources:          NewTable[entity.Resource](entity.TableResource),
		Campfires:          NewTable[entity.Campfire](entity.TableCampfire),
		WoodenStorageBoxes: NewTable[entity.WoodenStorageBox](entity.TableWoodenStorageBox),
		SleepingBags:       NewTable[entity.SleepingBag](entity.TableSleepingBag),
		Stashes:            NewTable[entity.Stash](entity.TableStash),
		DroppedItems:       NewTable[entity.DroppedItem](entity.TableDroppedItem),
		Clouds:             NewTable[entity.Cloud](entity.TableCloud),

		local:     local.String(),
		placement: placement.Nop{},
	}

	c.tables = map[string]applier{}
	for _, t := range []applier{
		c.Players, c.ItemDefinitions, c.Recipes, c.WorldStates, c.InventoryItems,
		c.ActiveEquipment, c.CraftingQueue, c.Messages, c.PlayerPins,
		c.ActiveConnections, c.ActiveConsumableEffects,
		c.Trees, c.Stones, c.Resources, c.Campfires, c.WoodenStorageBoxes,
		c.SleepingBags, c.Stashes, c.DroppedItems, c.Clouds,
	} {
		c.tables[t.Name()] = t
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetChunkGate installs the predicate spatial rows must pass to be cached.
// Rows in chunks the session has stopped watching are dropped on arrival.
func (c *Cache) SetChunkGate(gate func(uint32) bool) {
	c.Trees.gate = gate
	c.Stones.gate = gate
	c.Resources.gate = gate
	c.Campfires.gate = gate
	c.WoodenStorageBoxes.gate = gate
	c.SleepingBags.gate = gate
	c.Stashes.gate = gate
	c.DroppedItems.gate = gate
	c.Clouds.gate = gate
}

// Apply folds one change event into the matching table.
func (c *Cache) Apply(ev store.Event) error {
	t, ok := c.tables[ev.Table]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, ev.Table)
	}

	op, row, err := t.apply(ev)
	if err != nil {
		return fmt.Errorf("applying %s to %s: %w", ev.Op, ev.Table, err)
	}
	if op == 0 {
		return nil
	}

	c.generation.Add(1)

	switch op {
	case store.OpInsert:
		c.inserted(row)
	case store.OpDelete:
		c.deleted(row)
	}
	return nil
}

func (c *Cache) inserted(row any) {
	switch r := row.(type) {
	case entity.Player:
		if r.Identity == c.local {
			c.registered.Store(true)
		}
	case placed:
		if r.Placer() == c.local {
			c.placement.CancelPlacement()
		}
	}
}

func (c *Cache) deleted(row any) {
	if p, ok := row.(entity.Player); ok && p.Identity == c.local {
		c.registered.Store(false)
	}
}

// EvictChunk drops every cached row that lives in the chunk.
func (c *Cache) EvictChunk(idx uint32) int {
	n := 0
	for _, name := range entity.SpatialTables {
		n += c.tables[name].EvictChunk(idx)
	}
	if n > 0 {
		c.generation.Add(1)
	}
	return n
}

// Reset empties every table and clears the local player latch.
func (c *Cache) Reset() {
	for _, t := range c.tables {
		t.Clear()
	}
	c.registered.Store(false)
	c.generation.Add(1)
}

// LocalPlayer returns the row of the session's own player, if cached.
func (c *Cache) LocalPlayer() (entity.Player, bool) {
	return c.Players.Get(c.local)
}

// PlayerRegistered reports whether the local player's row has arrived.
func (c *Cache) PlayerRegistered() bool {
	return c.registered.Load()
}

// Generation increments on every material change. UI layers can poll it to
// decide whether to re-read.
func (c *Cache) Generation() uint64 {
	return c.generation.Load()
}

// Sizes returns the row count of every table.
func (c *Cache) Sizes() map[string]int {
	out := make(map[string]int, len(c.tables))
	for name, t := range c.tables {
		out[name] = t.Len()
	}
	return out
}

// Empty reports whether every table is empty.
func (c *Cache) Empty() bool {
	for _, t := range c.tables {
		if t.Len() > 0 {
			return false
		}
	}
	return true
}
