// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package goap

// Role selects a preset goal and action set.
type Role uint8

// Roles.
const (
	Villager Role = iota
	Guard
	Shopkeeper
	QuestGiver
	Enemy
)

var roleNames = [...]string{"Villager", "Guard", "Shopkeeper", "Quest Giver", "Enemy"}

// String returns the display name of the role.
func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "Unknown"
}

func goal(name, fact string, priority float32) Goal {
	return Goal{Name: name, Desired: StateOf(fact, true), Priority: priority}
}

func action(name, pre, eff string, cost, duration float32) Action {
	a := Action{
		Name:          name,
		Preconditions: NewState(),
		Effects:       StateOf(eff, true),
		Cost:          cost,
		Duration:      duration,
	}
	if pre != "" {
		a.Preconditions.SetBool(pre, true)
	}
	return a
}

// BrainForRole returns a fresh brain loaded with the role's preset.
func BrainForRole(r Role) *Brain {
	switch r {
	case Guard:
		return NewBrain(
			[]Goal{
				goal("patrol", "patrol_complete", 0.4),
				goal("respond_to_threat", "threat_neutralized", 0.8),
			},
			[]Action{
				action("patrol_point", "", "patrol_complete", 1, 6),
				action("return_to_post", "", "at_home", 1.5, 4),
				action("chase_enemy", "player_in_aggro_range", "threat_neutralized", 2, 5),
			},
		)
	case Shopkeeper:
		return NewBrain(
			[]Goal{goal("tend_shop", "shop_tended", 0.5)},
			[]Action{
				action("wait_for_customer", "", "shop_tended", 0.5, 8),
				action("wander", "", "has_wandered", 1, 3),
			},
		)
	case QuestGiver:
		return NewBrain(
			[]Goal{goal("wait_for_hero", "waiting", 0.5)},
			[]Action{
				action("wait", "", "waiting", 0.5, 5),
				action("wander", "", "has_wandered", 1, 4),
			},
		)
	case Enemy:
		return NewBrain(
			[]Goal{
				goal("patrol_area", "patrol_complete", 0.3),
				goal("chase_player", "player_in_attack_range", 0.8),
				goal("attack_player", "player_damaged", 0.9),
				goal("flee", "is_safe", 1.0),
			},
			[]Action{
				action("patrol_point", "", "patrol_complete", 1, 5),
				action("chase_target", "player_in_aggro_range", "player_in_attack_range", 1, 3),
				action("attack_melee", "player_in_attack_range", "player_damaged", 0.5, 1),
				action("flee_from_target", "health_low", "is_safe", 0.5, 5),
			},
		)
	default:
		return NewBrain(
			[]Goal{
				goal("stay_near_home", "at_home", 0.3),
				goal("wander_around", "has_wandered", 0.2),
			},
			[]Action{
				action("go_home", "", "at_home", 1, 5),
				action("wander", "", "has_wandered", 0.5, 4),
				action("talk_to_npc", "player_nearby", "socialized", 1, 3),
			},
		)
	}
}
