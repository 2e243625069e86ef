// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package combat

import (
	"cmp"
	"errors"
	"slices"

	"github.com/samber/oops"
)

// MaxInventorySize is the default number of inventory slots.
const MaxInventorySize = 40

// ErrInventoryFull is returned when an item does not fit.
var ErrInventoryFull = errors.New("inventory full")

// Inventory is an ordered list of carried items. Stackable items with the
// same id and category share a slot up to their MaxStack.
type Inventory struct {
	items    []*Item
	capacity int
}

// NewInventory returns an empty inventory with capacity slots. A
// non-positive capacity uses MaxInventorySize.
func NewInventory(capacity int) *Inventory {
	if capacity <= 0 {
		capacity = MaxInventorySize
	}
	return &Inventory{capacity: capacity}
}

// Add stores item, topping up existing stacks before opening a new slot.
// When the inventory runs out of slots the part that did not fit is
// returned with an error wrapping ErrInventoryFull; whatever was merged
// stays merged.
func (inv *Inventory) Add(item *Item) (*Item, error) {
	left := *item
	left.StackCount = item.Count()

	if left.IsStackable() {
		for _, it := range inv.items {
			if it.ID != left.ID || it.Category != left.Category || it.Count() >= it.MaxStack {
				continue
			}
			moved := min(left.StackCount, it.MaxStack-it.Count())
			it.StackCount = it.Count() + moved
			left.StackCount -= moved
			if left.StackCount == 0 {
				return nil, nil
			}
		}
	}

	if len(inv.items) >= inv.capacity {
		return &left, oops.Code("INVENTORY_FULL").
			With("item", left.Name).
			With("capacity", inv.capacity).
			Wrap(ErrInventoryFull)
	}
	inv.items = append(inv.items, &left)
	return nil, nil
}

// Remove takes the whole slot at index out of the inventory.
func (inv *Inventory) Remove(index int) (*Item, bool) {
	if index < 0 || index >= len(inv.items) {
		return nil, false
	}
	it := inv.items[index]
	inv.items = slices.Delete(inv.items, index, index+1)
	return it, true
}

// RemoveStack takes count copies from the slot at index. Taking the whole
// stack or more removes the slot.
func (inv *Inventory) RemoveStack(index int, count uint32) (*Item, bool) {
	if index < 0 || index >= len(inv.items) {
		return nil, false
	}
	it := inv.items[index]
	if count >= it.Count() {
		return inv.Remove(index)
	}
	part := *it
	part.StackCount = count
	it.StackCount = it.Count() - count
	return &part, true
}

// Get returns the slot at index.
func (inv *Inventory) Get(index int) (*Item, bool) {
	if index < 0 || index >= len(inv.items) {
		return nil, false
	}
	return inv.items[index], true
}

// Count is the number of copies of id held across every slot.
func (inv *Inventory) Count(id ItemID) uint32 {
	var n uint32
	for _, it := range inv.items {
		if it.ID == id {
			n += it.Count()
		}
	}
	return n
}

// Len is the number of occupied slots.
func (inv *Inventory) Len() int { return len(inv.items) }

// Capacity is the number of slots.
func (inv *Inventory) Capacity() int { return inv.capacity }

// IsFull reports whether every slot is taken.
func (inv *Inventory) IsFull() bool { return len(inv.items) >= inv.capacity }

// ByCategory returns the indices of the slots holding category items.
func (inv *Inventory) ByCategory(c Category) []int {
	var out []int
	for i, it := range inv.items {
		if it.Category == c {
			out = append(out, i)
		}
	}
	return out
}

// SortByCategory orders slots weapon first, material last.
func (inv *Inventory) SortByCategory() {
	slices.SortStableFunc(inv.items, func(a, b *Item) int { return cmp.Compare(a.Category, b.Category) })
}

// SortByRarity orders slots legendary first.
func (inv *Inventory) SortByRarity() {
	slices.SortStableFunc(inv.items, func(a, b *Item) int { return cmp.Compare(b.Rarity, a.Rarity) })
}

// Items returns copies of every slot, in order.
func (inv *Inventory) Items() []Item {
	out := make([]Item, len(inv.items))
	for i, it := range inv.items {
		out[i] = *it
	}
	return out
}

// Replace swaps the contents for items, as loaded from a save. Slots past
// capacity are dropped and reported with ErrInventoryFull.
func (inv *Inventory) Replace(items []Item) error {
	inv.items = inv.items[:0]
	for i := range items {
		if len(inv.items) >= inv.capacity {
			return oops.Code("INVENTORY_FULL").
				With("dropped", len(items)-i).
				Wrap(ErrInventoryFull)
		}
		it := items[i]
		inv.items = append(inv.items, &it)
	}
	return nil
}
