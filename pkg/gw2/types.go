package gw2

import (
	"encoding/json"
	"fmt"
	"time"
)

// EquipmentSlot identifies where an item is worn
type EquipmentSlot string

const (
	SlotHelm       EquipmentSlot = "Helm"
	SlotShoulders  EquipmentSlot = "Shoulders"
	SlotCoat       EquipmentSlot = "Coat"
	SlotGloves     EquipmentSlot = "Gloves"
	SlotLeggings   EquipmentSlot = "Leggings"
	SlotBoots      EquipmentSlot = "Boots"
	SlotRing1      EquipmentSlot = "Ring1"
	SlotRing2      EquipmentSlot = "Ring2"
	SlotAmulet     EquipmentSlot = "Amulet"
	SlotAccessory1 EquipmentSlot = "Accessory1"
	SlotAccessory2 EquipmentSlot = "Accessory2"
	SlotBackpack   EquipmentSlot = "Backpack"
	SlotWeaponA1   EquipmentSlot = "WeaponA1"
	SlotWeaponA2   EquipmentSlot = "WeaponA2"
	SlotWeaponB1   EquipmentSlot = "WeaponB1"
	SlotWeaponB2   EquipmentSlot = "WeaponB2"
)

// GearSlots is the display order of the slots shown by the gear command
var GearSlots = []EquipmentSlot{
	SlotHelm, SlotShoulders, SlotCoat, SlotGloves, SlotLeggings, SlotBoots,
	SlotRing1, SlotRing2, SlotAmulet, SlotAccessory1, SlotAccessory2, SlotBackpack,
	SlotWeaponA1, SlotWeaponA2, SlotWeaponB1, SlotWeaponB2,
}

// Character is a character record as returned by /v2/characters
type Character struct {
	Name       string         `json:"name"`
	Profession string         `json:"profession"`
	Race       string         `json:"race"`
	Gender     string         `json:"gender"`
	Level      int            `json:"level"`
	Created    time.Time      `json:"created"`
	Age        int64          `json:"age"`
	Deaths     int            `json:"deaths"`
	Title      *int           `json:"title,omitempty"`
	Guild      *string        `json:"guild,omitempty"`
	Equipment  []EquippedItem `json:"equipment,omitempty"`
}

// UnmarshalJSON rejects records without a name
func (c *Character) UnmarshalJSON(data []byte) error {
	type rawCharacter Character
	var raw rawCharacter
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Name == "" {
		return fmt.Errorf("character record has no name")
	}
	*c = Character(raw)
	return nil
}

// CreatedDate returns the creation date without its time of day
func (c *Character) CreatedDate() string {
	return c.Created.UTC().Format("2006-01-02")
}

// Equipment locations reported once equipment templates are enabled
const (
	LocationEquipped                    = "Equipped"
	LocationArmory                      = "Armory"
	LocationEquippedFromLegendaryArmory = "EquippedFromLegendaryArmory"
	LocationLegendaryArmory             = "LegendaryArmory"
)

// EquippedItem is one entry of a character's equipment list
type EquippedItem struct {
	ID        int           `json:"id"`
	Slot      EquipmentSlot `json:"slot"`
	Upgrades  []int         `json:"upgrades,omitempty"`
	Infusions []int         `json:"infusions,omitempty"`
	Stats     *ItemStats    `json:"stats,omitempty"`
	Location  string        `json:"location,omitempty"`
	Tabs      []int         `json:"tabs,omitempty"`
}

// IsEquipped reports whether the item is worn on the active equipment tab.
// Records without a location predate equipment templates and are always worn.
func (e EquippedItem) IsEquipped() bool {
	switch e.Location {
	case "", LocationEquipped, LocationEquippedFromLegendaryArmory:
		return true
	default:
		return false
	}
}

// ItemStats is the stat selection applied to a selectable-stat item
type ItemStats struct {
	ID int `json:"id"`
}

// Item is an entry of /v2/items
type Item struct {
	ID      int          `json:"id"`
	Name    string       `json:"name"`
	Type    string       `json:"type,omitempty"`
	Details *ItemDetails `json:"details,omitempty"`
}

// ItemDetails holds the subset of item details the bot reads
type ItemDetails struct {
	InfixUpgrade *InfixUpgrade `json:"infix_upgrade,omitempty"`
}

// InfixUpgrade is the intrinsic stat set of an item
type InfixUpgrade struct {
	ID int `json:"id"`
}

// IntrinsicStatID returns the item's built-in stat id, if it has one
func (i *Item) IntrinsicStatID() (int, bool) {
	if i == nil || i.Details == nil || i.Details.InfixUpgrade == nil {
		return 0, false
	}
	return i.Details.InfixUpgrade.ID, true
}

// ItemStat is an entry of /v2/itemstats
type ItemStat struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Title is an entry of /v2/titles
type Title struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Guild is the public part of /v2/guild/:id
type Guild struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

// TokenInfo is the response of /v2/tokeninfo
type TokenInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// APIKey is a user's registered key together with the permissions it was granted
type APIKey struct {
	UserID      string
	Key         string
	Name        string
	Permissions []string
}

// MissingScopes returns the scopes the key was not granted
func (k *APIKey) MissingScopes(scopes []string) []string {
	granted := make(map[string]bool, len(k.Permissions))
	for _, p := range k.Permissions {
		granted[p] = true
	}

	var missing []string
	for _, s := range scopes {
		if !granted[s] {
			missing = append(missing, s)
		}
	}
	return missing
}
