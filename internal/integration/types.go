// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package integration

import "encoding/json"

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	ExpiresIn    uint64   `json:"expiresIn"`
	User         UserInfo `json:"user"`
}

// UserInfo identifies the logged-in account.
type UserInfo struct {
	ID       string `json:"_id"`
	UserName string `json:"userName"`
	Role     string `json:"role,omitempty"`
}

// ServerCharacter is a character stored on the server.
type ServerCharacter struct {
	ID           string               `json:"_id,omitempty"`
	Name         string               `json:"name"`
	SystemPrompt string               `json:"systemPrompt"`
	Lore         *CharacterLore       `json:"lore,omitempty"`
	Appearance   *CharacterAppearance `json:"appearance,omitempty"`
	ProjectID    string               `json:"projectId,omitempty"`
	UserID       string               `json:"userId,omitempty"`
}

// CharacterLore is a character's backstory.
type CharacterLore struct {
	Backstory   string `json:"backstory"`
	Personality string `json:"personality"`
	Occupation  string `json:"occupation"`
	Era         string `json:"era"`
}

// CharacterAppearance is the server-side appearance text.
type CharacterAppearance struct {
	Description string `json:"description"`
}

// CreateCharacterRequest is the body of POST /v1/characters.
type CreateCharacterRequest struct {
	Name         string         `json:"name"`
	SystemPrompt string         `json:"systemPrompt"`
	Lore         *CharacterLore `json:"lore,omitempty"`
}

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /v1/ai/chat.
type ChatRequest struct {
	Messages     []ChatMessage `json:"messages"`
	SystemPrompt string        `json:"systemPrompt"`
	Model        string        `json:"model,omitempty"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Content string `json:"content"`
}

// ServerItem is an entry in the project's item catalog.
type ServerItem struct {
	ID           string             `json:"_id,omitempty"`
	ItemID       string             `json:"itemId"`
	ProjectID    string             `json:"projectId,omitempty"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Icon         string             `json:"icon,omitempty"`
	Category     string             `json:"category"`
	Subcategory  string             `json:"subcategory,omitempty"`
	Rarity       string             `json:"rarity,omitempty"`
	Tags         []string           `json:"tags,omitempty"`
	Price        float64            `json:"price"`
	Stackable    bool               `json:"stackable"`
	MaxStack     uint32             `json:"maxStack,omitempty"`
	IsAvailable  bool               `json:"isAvailable"`
	EquipSlot    string             `json:"equipSlot,omitempty"`
	Stats        ServerItemStats    `json:"stats"`
	Effects      []ServerItemEffect `json:"effects,omitempty"`
	Requirements *ItemRequirements  `json:"requirements,omitempty"`
}

// ServerItemStats wraps the game-specific stat blob.
type ServerItemStats struct {
	Custom *GameItemStats `json:"custom,omitempty"`
}

// GameItemStats is the game's data stored under stats.custom.
type GameItemStats struct {
	StatModifiers *CustomStatModifiers `json:"statModifiers,omitempty"`
	Element       string               `json:"element,omitempty"`
	WeaponData    *CustomWeaponData    `json:"weaponData,omitempty"`
	ItemLevel     uint32               `json:"itemLevel,omitempty"`
	RequiredLevel uint32               `json:"requiredLevel,omitempty"`
	GameCategory  string               `json:"gameCategory,omitempty"`
}

// CustomStatModifiers are the flat bonuses of an item.
type CustomStatModifiers struct {
	MaxHP          float32 `json:"maxHp"`
	Attack         float32 `json:"attack"`
	Defense        float32 `json:"defense"`
	Speed          float32 `json:"speed"`
	CritChance     float32 `json:"critChance"`
	CritMultiplier float32 `json:"critMultiplier"`
}

// CustomWeaponData describes a weapon item.
type CustomWeaponData struct {
	WeaponType string  `json:"weaponType"`
	BaseDamage float32 `json:"baseDamage"`
	WeaponGrip string  `json:"weaponGrip,omitempty"`
}

// ServerItemEffect is an on-use effect.
type ServerItemEffect struct {
	Type        string  `json:"type"`
	Target      string  `json:"target,omitempty"`
	Value       float64 `json:"value"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description,omitempty"`
}

// ItemRequirements gate equipping an item.
type ItemRequirements struct {
	Level       uint32 `json:"level"`
	Achievement string `json:"achievement,omitempty"`
	Quest       string `json:"quest,omitempty"`
}

// UnmarshalJSON applies the catalog defaults for absent fields.
func (i *ServerItem) UnmarshalJSON(b []byte) error {
	type plain ServerItem
	p := plain{
		Icon:        "📦",
		Subcategory: "other",
		Rarity:      "common",
		MaxStack:    1,
		IsAvailable: true,
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*i = ServerItem(p)
	return nil
}

type itemListResponse struct {
	Items []ServerItem `json:"items"`
	Total uint64       `json:"total"`
}

type itemMutationResponse struct {
	Success bool       `json:"success"`
	Item    ServerItem `json:"item"`
}

// DeleteResponse is returned by DELETE /v1/character-items/{id}.
type DeleteResponse struct {
	Success bool `json:"success"`
	Deleted bool `json:"deleted"`
}
