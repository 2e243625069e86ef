// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package combat

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/samber/oops"
)

// Slot is one of the fourteen equipment slots.
type Slot uint8

// Equipment slots.
const (
	Head Slot = iota
	Shoulders
	Chest
	Bracers
	Gloves
	Belt
	Legs
	Boots
	Cape
	MainHand
	OffHand
	Ring1
	Ring2
	Amulet

	slotCount
)

var slotNames = [slotCount]string{
	"Head", "Shoulders", "Chest", "Bracers", "Gloves", "Belt", "Legs",
	"Boots", "Cape", "Main Hand", "Off Hand", "Ring 1", "Ring 2", "Amulet",
}

// Slots lists every slot.
func Slots() []Slot {
	out := make([]Slot, slotCount)
	for i := range out {
		out[i] = Slot(i)
	}
	return out
}

// String implements fmt.Stringer.
func (s Slot) String() string {
	if s < slotCount {
		return slotNames[s]
	}
	return "Unknown"
}

// Category is the only item category s accepts.
func (s Slot) Category() Category {
	switch s {
	case MainHand, OffHand:
		return CategoryWeapon
	case Ring1, Ring2, Amulet:
		return CategoryAccessory
	default:
		return CategoryArmor
	}
}

// EquipErrorKind classifies a rejected equip.
type EquipErrorKind uint8

// Equip error kinds.
const (
	WrongCategory EquipErrorKind = iota + 1
	TwoHandedConflict
	MainHandTwoHanded
)

// EquipError explains why an item could not be equipped.
type EquipError struct {
	Kind     EquipErrorKind
	Slot     Slot
	Expected Category
	Got      Category
}

func (e *EquipError) Error() string {
	switch e.Kind {
	case WrongCategory:
		return fmt.Sprintf("slot %s requires %s, got %s", e.Slot, e.Expected, e.Got)
	case TwoHandedConflict:
		return "two-handed weapon requires an empty off hand"
	case MainHandTwoHanded:
		return "cannot equip off hand with a two-handed main weapon"
	default:
		return "equip failed"
	}
}

// Code returns the error code for the kind.
func (e *EquipError) Code() string {
	switch e.Kind {
	case WrongCategory:
		return "EQUIP_WRONG_CATEGORY"
	case TwoHandedConflict:
		return "EQUIP_TWO_HANDED_CONFLICT"
	default:
		return "EQUIP_MAIN_HAND_TWO_HANDED"
	}
}

func equipFailure(e *EquipError) error {
	return oops.Code(e.Code()).
		With("slot", e.Slot.String()).
		Wrap(e)
}

// Equipment is the set of items a combatant wears.
type Equipment struct {
	slots [slotCount]*Item
}

// NewEquipment returns an empty set.
func NewEquipment() *Equipment {
	return &Equipment{}
}

// Equip puts item into slot and returns whatever was there. On error the
// set is unchanged; the *EquipError is reachable with errors.As.
func (q *Equipment) Equip(slot Slot, item *Item) (*Item, error) {
	if want := slot.Category(); item.Category != want {
		return nil, equipFailure(&EquipError{Kind: WrongCategory, Slot: slot, Expected: want, Got: item.Category})
	}
	if slot == MainHand && item.IsTwoHanded() && q.slots[OffHand] != nil {
		return nil, equipFailure(&EquipError{Kind: TwoHandedConflict, Slot: slot, Expected: CategoryWeapon, Got: item.Category})
	}
	if slot == OffHand {
		if main := q.slots[MainHand]; main != nil && main.IsTwoHanded() {
			return nil, equipFailure(&EquipError{Kind: MainHandTwoHanded, Slot: slot, Expected: CategoryWeapon, Got: item.Category})
		}
	}
	prev := q.slots[slot]
	q.slots[slot] = item
	return prev, nil
}

// Unequip empties slot and returns its item.
func (q *Equipment) Unequip(slot Slot) *Item {
	prev := q.slots[slot]
	q.slots[slot] = nil
	return prev
}

// Get returns the item in slot, or nil.
func (q *Equipment) Get(slot Slot) *Item {
	return q.slots[slot]
}

// TotalModifiers sums the modifiers of every equipped item.
func (q *Equipment) TotalModifiers() StatModifiers {
	var total StatModifiers
	for _, it := range q.slots {
		if it != nil {
			total.Add(it.Modifiers)
		}
	}
	return total
}

// MainHandWeapon returns the main-hand weapon data, if any.
func (q *Equipment) MainHandWeapon() *WeaponData {
	if it := q.slots[MainHand]; it != nil {
		return it.Weapon
	}
	return nil
}

// MainWeaponType returns the main-hand weapon type, if any.
func (q *Equipment) MainWeaponType() *WeaponType {
	if w := q.MainHandWeapon(); w != nil {
		t := w.Type
		return &t
	}
	return nil
}

// MainWeaponDamage is the main-hand base damage, or 0 unarmed.
func (q *Equipment) MainWeaponDamage() float32 {
	if w := q.MainHandWeapon(); w != nil {
		return w.BaseDamage
	}
	return 0
}

// Equipped is one occupied slot, as written to a save.
type Equipped struct {
	Slot Slot `json:"slot" jsonschema:"required,minimum=0,maximum=13"`
	Item Item `json:"item" jsonschema:"required"`
}

// Equipped lists the occupied slots in slot order.
func (q *Equipment) Equipped() []Equipped {
	var out []Equipped
	for i, it := range q.slots {
		if it != nil {
			out = append(out, Equipped{Slot: Slot(i), Item: *it})
		}
	}
	return out
}

// Restore replaces the set with items. Items are equipped in slot order
// under the usual rules; on error the set is unchanged.
func (q *Equipment) Restore(items []Equipped) error {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Equipped) int { return cmp.Compare(a.Slot, b.Slot) })

	var next Equipment
	for _, e := range sorted {
		if e.Slot >= slotCount {
			return oops.Code("EQUIP_UNKNOWN_SLOT").With("slot", int(e.Slot)).Errorf("unknown equipment slot %d", e.Slot)
		}
		it := e.Item
		if _, err := next.Equip(e.Slot, &it); err != nil {
			return err
		}
	}
	q.slots = next.slots
	return nil
}
