// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package combat

import "github.com/cespare/xxhash/v2"

// ItemID identifies an item instance.
type ItemID uint64

// Rarity grades an item.
type Rarity uint8

// Rarities.
const (
	Common Rarity = iota
	Uncommon
	Rare
	Epic
	Legendary
)

// String implements fmt.Stringer.
func (r Rarity) String() string {
	switch r {
	case Common:
		return "Common"
	case Uncommon:
		return "Uncommon"
	case Rare:
		return "Rare"
	case Epic:
		return "Epic"
	case Legendary:
		return "Legendary"
	default:
		return "Unknown"
	}
}

// Category groups items by where they can be used.
type Category uint8

// Categories.
const (
	CategoryWeapon Category = iota
	CategoryArmor
	CategoryAccessory
	CategoryConsumable
	CategoryMaterial
)

// String implements fmt.Stringer.
func (c Category) String() string {
	switch c {
	case CategoryWeapon:
		return "Weapon"
	case CategoryArmor:
		return "Armor"
	case CategoryAccessory:
		return "Accessory"
	case CategoryConsumable:
		return "Consumable"
	case CategoryMaterial:
		return "Material"
	default:
		return "Unknown"
	}
}

// Item is an equippable or carried object.
type Item struct {
	ID            ItemID        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	Category      Category      `json:"category"`
	Rarity        Rarity        `json:"rarity"`
	Modifiers     StatModifiers `json:"modifiers"`
	Element       Element       `json:"element"`
	Weapon        *WeaponData   `json:"weapon,omitempty"`
	RequiredLevel uint32        `json:"required_level,omitempty"`
	StackCount    uint32        `json:"stack_count,omitempty"`
	MaxStack      uint32        `json:"max_stack,omitempty"`
}

// IsStackable reports whether copies of the item share a slot.
func (i *Item) IsStackable() bool { return i.MaxStack > 1 }

// Count is the number of copies the item stands for. Zero means one.
func (i *Item) Count() uint32 { return max(i.StackCount, 1) }

// IsWeapon reports whether the item is a weapon with weapon data.
func (i *Item) IsWeapon() bool {
	return i.Category == CategoryWeapon && i.Weapon != nil
}

// IsTwoHanded reports whether the item is a two-handed weapon.
func (i *Item) IsTwoHanded() bool {
	return i.Weapon != nil && i.Weapon.Type.Grip() == TwoHanded
}

// NewWeapon builds a weapon item with stock stats for t.
func NewWeapon(id ItemID, name string, t WeaponType, baseDamage float32, rarity Rarity) *Item {
	return &Item{
		ID:       id,
		Name:     name,
		Category: CategoryWeapon,
		Rarity:   rarity,
		Weapon:   NewWeaponData(t, baseDamage),
	}
}

var lootTable = map[string]Item{
	"Health Potion": {Category: CategoryConsumable, Description: "Restores health", MaxStack: 10},
	"Ancient Coin":  {Category: CategoryMaterial, Rarity: Uncommon, MaxStack: 99},
	"Time Shard":    {Category: CategoryMaterial, Rarity: Rare, MaxStack: 99},
}

// LootItem builds one copy of the world item called name. Names without
// a table entry become common materials. The id is derived from the name
// so copies of the same loot stack.
func LootItem(name string) *Item {
	it, ok := lootTable[name]
	if !ok {
		it = Item{Category: CategoryMaterial, MaxStack: 99}
	}
	it.ID = ItemID(xxhash.Sum64String(name))
	it.Name = name
	it.StackCount = 1
	return &it
}
