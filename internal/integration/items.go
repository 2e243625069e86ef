// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package integration

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/riftwalk/riftwalk/internal/combat"
)

var gameCategories = map[string]combat.Category{
	"Weapon":     combat.CategoryWeapon,
	"Armor":      combat.CategoryArmor,
	"Accessory":  combat.CategoryAccessory,
	"Consumable": combat.CategoryConsumable,
	"Material":   combat.CategoryMaterial,
}

var rarities = map[string]combat.Rarity{
	"common":    combat.Common,
	"uncommon":  combat.Uncommon,
	"rare":      combat.Rare,
	"epic":      combat.Epic,
	"legendary": combat.Legendary,
	"mythic":    combat.Legendary,
}

// catalogCategory maps the catalog's generic category pair when the item
// carries no game category.
func catalogCategory(category, subcategory string) combat.Category {
	switch {
	case category == "equipment" && subcategory == "weapon":
		return combat.CategoryWeapon
	case category == "equipment" && subcategory == "armor":
		return combat.CategoryArmor
	case category == "accessory":
		return combat.CategoryAccessory
	case category == "consumable":
		return combat.CategoryConsumable
	default:
		return combat.CategoryMaterial
	}
}

func parseElement(s string) combat.Element {
	for _, e := range combat.Elements() {
		if strings.EqualFold(e.String(), s) {
			return e
		}
	}
	return combat.Physical
}

func parseWeaponType(s string) combat.WeaponType {
	want := strings.ReplaceAll(s, " ", "")
	for _, w := range combat.WeaponTypes() {
		if strings.EqualFold(strings.ReplaceAll(w.String(), " ", ""), want) {
			return w
		}
	}
	return combat.Sword
}

// ToGameItem converts a catalog entry into a game item. Entries without
// game stats are not usable in combat and report false.
func ToGameItem(s ServerItem) (*combat.Item, bool) {
	custom := s.Stats.Custom
	if custom == nil {
		return nil, false
	}

	category, ok := gameCategories[custom.GameCategory]
	if !ok {
		category = catalogCategory(s.Category, s.Subcategory)
	}
	rarity, ok := rarities[strings.ToLower(s.Rarity)]
	if !ok {
		rarity = combat.Common
	}

	item := &combat.Item{
		ID:            combat.ItemID(xxhash.Sum64String(s.ItemID)),
		Name:          s.Name,
		Description:   s.Description,
		Category:      category,
		Rarity:        rarity,
		Element:       parseElement(custom.Element),
		RequiredLevel: max(custom.RequiredLevel, 1),
	}
	if m := custom.StatModifiers; m != nil {
		item.Modifiers = combat.StatModifiers{
			MaxHP:          m.MaxHP,
			Attack:         m.Attack,
			Defense:        m.Defense,
			Speed:          m.Speed,
			CritChance:     m.CritChance,
			CritMultiplier: m.CritMultiplier,
		}
	}
	if w := custom.WeaponData; w != nil {
		item.Weapon = combat.NewWeaponData(parseWeaponType(w.WeaponType), w.BaseDamage)
	}
	return item, true
}

var catalogPairs = map[combat.Category][2]string{
	combat.CategoryWeapon:     {"equipment", "weapon"},
	combat.CategoryArmor:      {"equipment", "armor"},
	combat.CategoryAccessory:  {"accessory", "jewelry"},
	combat.CategoryConsumable: {"consumable", "other"},
	combat.CategoryMaterial:   {"collectible", "other"},
}

// FromGameItem builds the catalog entry for a game item.
func FromGameItem(item *combat.Item, projectID string) ServerItem {
	pair := catalogPairs[item.Category]
	m := item.Modifiers
	custom := &GameItemStats{
		StatModifiers: &CustomStatModifiers{
			MaxHP:          m.MaxHP,
			Attack:         m.Attack,
			Defense:        m.Defense,
			Speed:          m.Speed,
			CritChance:     m.CritChance,
			CritMultiplier: m.CritMultiplier,
		},
		Element:       item.Element.String(),
		ItemLevel:     1,
		RequiredLevel: item.RequiredLevel,
		GameCategory:  item.Category.String(),
	}
	if w := item.Weapon; w != nil {
		grip := "OneHanded"
		if w.Type.Grip() == combat.TwoHanded {
			grip = "TwoHanded"
		}
		custom.WeaponData = &CustomWeaponData{
			WeaponType: strings.ReplaceAll(w.Type.String(), " ", ""),
			BaseDamage: w.BaseDamage,
			WeaponGrip: grip,
		}
	}
	return ServerItem{
		ItemID:      "item_" + strconv.FormatUint(uint64(item.ID), 10),
		ProjectID:   projectID,
		Name:        item.Name,
		Description: item.Description,
		Icon:        "📦",
		Category:    pair[0],
		Subcategory: pair[1],
		Rarity:      strings.ToLower(item.Rarity.String()),
		MaxStack:    1,
		IsAvailable: true,
		Stats:       ServerItemStats{Custom: custom},
	}
}
