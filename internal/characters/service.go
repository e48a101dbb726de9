// Package characters builds display summaries of a user's Guild Wars 2 characters.
package characters

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/latoulicious/tyria/pkg/gamedata"
	"github.com/latoulicious/tyria/pkg/gw2"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=mocks/service.go -package=charactersmocks -source=service.go

// Scope every character endpoint requires
const ScopeCharacters = "characters"

// ListEndpoint returns the first page of the user's characters. Later pages are never requested.
const ListEndpoint = "characters?page=0"

var (
	// ErrEmptyName is returned when no character name was given
	ErrEmptyName = errors.New("character name is empty")

	// ErrNoPlaytime is returned for deaths per hour of a character with zero played time
	ErrNoPlaytime = errors.New("character has no recorded playtime")

	// ErrUnknownItem is returned when equipment references an item the API does not know
	ErrUnknownItem = errors.New("unknown item")

	// ErrCharacterNotFound is returned when the name matches none of the user's characters.
	// Not-found answers from later title, guild or item lookups never carry it.
	ErrCharacterNotFound = errors.New("character not found")
)

// API performs requests scoped to the permissions of the invoking user's key
type API interface {
	CallAuthorized(ctx context.Context, userID, endpoint string, scopes []string, out any) error
}

// ReferenceStore translates ids into display names
type ReferenceStore interface {
	Items(ctx context.Context, ids []int) (map[int]gw2.Item, error)
	StatNames(ctx context.Context, ids []int) (map[int]string, error)
	Title(ctx context.Context, id int) (string, error)
	Guild(ctx context.Context, id string) (*gw2.Guild, error)
}

// Service answers the character commands
type Service struct {
	api         API
	refs        ReferenceStore
	professions gamedata.Professions
	now         func() time.Time
	logger      *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithClock replaces the clock used for birthday countdowns
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a character service
func NewService(api API, refs ReferenceStore, professions gamedata.Professions, opts ...Option) *Service {
	s := &Service{
		api:         api,
		refs:        refs,
		professions: professions,
		now:         time.Now,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup resolves one of the user's characters by free-text name
func (s *Service) Lookup(ctx context.Context, userID, name string) (*gw2.Character, error) {
	id := NormalizeName(name)
	if id == "" {
		return nil, ErrEmptyName
	}

	var character gw2.Character
	if err := s.api.CallAuthorized(ctx, userID, "characters/"+id, []string{ScopeCharacters}, &character); err != nil {
		if errors.Is(err, gw2.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrCharacterNotFound, err)
		}
		return nil, err
	}
	return &character, nil
}

// List returns the user's characters from the first page of results
func (s *Service) List(ctx context.Context, userID string) ([]gw2.Character, error) {
	var characters []gw2.Character
	if err := s.api.CallAuthorized(ctx, userID, ListEndpoint, []string{ScopeCharacters}, &characters); err != nil {
		return nil, err
	}
	return characters, nil
}

// InfoSummary is the display bundle of the info command
type InfoSummary struct {
	Name          string
	Title         string
	Created       string
	PlayedFor     string
	Guild         *gw2.Guild
	Deaths        int
	DeathsPerHour float64
	Color         int
	Icon          string
	Gender        string
	Race          string
	Profession    string
}

// Footer describes the character as "A gender race profession"
func (i *InfoSummary) Footer() string {
	return fmt.Sprintf("A %s %s %s", i.Gender, i.Race, i.Profession)
}

// Info builds the summary of one character. name is echoed as typed.
func (s *Service) Info(ctx context.Context, userID, name string) (*InfoSummary, error) {
	character, err := s.Lookup(ctx, userID, name)
	if err != nil {
		return nil, err
	}

	deathsPerHour, err := DeathsPerHour(character.Deaths, character.Age)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", character.Name, err)
	}

	summary := &InfoSummary{
		Name:          name,
		Created:       character.CreatedDate(),
		PlayedFor:     FormatAge(character.Age),
		Deaths:        character.Deaths,
		DeathsPerHour: deathsPerHour,
		Gender:        strings.ToLower(character.Gender),
		Race:          strings.ToLower(character.Race),
		Profession:    strings.ToLower(character.Profession),
	}
	summary.Color, summary.Icon = s.professionStyle(character.Profession)

	if character.Title != nil {
		title, err := s.refs.Title(ctx, *character.Title)
		if err != nil {
			return nil, err
		}
		summary.Title = title
	}

	if character.Guild != nil && *character.Guild != "" {
		guild, err := s.refs.Guild(ctx, *character.Guild)
		if err != nil {
			return nil, err
		}
		summary.Guild = guild
	}

	return summary, nil
}

// GearPiece is the resolved content of one equipment slot
type GearPiece struct {
	Slot      gw2.EquipmentSlot
	ItemName  string
	StatName  string
	Upgrades  []string
	Infusions []string
}

// Heading renders "stat item [slot]"
func (p GearPiece) Heading() string {
	return fmt.Sprintf("%s %s [%s]", p.StatName, p.ItemName, p.Slot)
}

// Body lists deduplicated upgrades then infusions, or "---" when there are none
func (p GearPiece) Body() string {
	lines := append(Dedupe(p.Upgrades), Dedupe(p.Infusions)...)
	if len(lines) == 0 {
		return "---"
	}
	return strings.Join(lines, "\n")
}

// GearSummary is the display bundle of the gear command
type GearSummary struct {
	Name       string
	Level      int
	Profession string
	Color      int
	Icon       string
	Pieces     []GearPiece
}

// Gear resolves the equipment of one character. Items, upgrades and infusions are
// resolved with a single batched lookup; stats with a second one whose failure only
// blanks the stat names.
func (s *Service) Gear(ctx context.Context, userID, name string) (*GearSummary, error) {
	character, err := s.Lookup(ctx, userID, name)
	if err != nil {
		return nil, err
	}

	equipped := make(map[gw2.EquipmentSlot]gw2.EquippedItem, len(gw2.GearSlots))
	for _, item := range character.Equipment {
		if !item.IsEquipped() {
			continue
		}
		if _, seen := equipped[item.Slot]; !seen {
			equipped[item.Slot] = item
		}
	}

	var ids []int
	for _, slot := range gw2.GearSlots {
		if item, ok := equipped[slot]; ok {
			ids = append(ids, item.ID)
			ids = append(ids, item.Upgrades...)
			ids = append(ids, item.Infusions...)
		}
	}

	items := map[int]gw2.Item{}
	if len(ids) > 0 {
		items, err = s.refs.Items(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	statIDs := make(map[gw2.EquipmentSlot]int)
	var lookupIDs []int
	for _, slot := range gw2.GearSlots {
		equippedItem, ok := equipped[slot]
		if !ok {
			continue
		}
		if equippedItem.Stats != nil {
			statIDs[slot] = equippedItem.Stats.ID
		} else if item, ok := items[equippedItem.ID]; ok {
			if id, ok := item.IntrinsicStatID(); ok {
				statIDs[slot] = id
			}
		}
		if id, ok := statIDs[slot]; ok {
			lookupIDs = append(lookupIDs, id)
		}
	}

	statNames := map[int]string{}
	if len(lookupIDs) > 0 {
		statNames, err = s.refs.StatNames(ctx, lookupIDs)
		if err != nil {
			s.logger.Warn("stat names unavailable, leaving them blank",
				zap.String("character", character.Name),
				zap.Error(err),
			)
			statNames = map[int]string{}
		}
	}

	summary := &GearSummary{
		Name:       name,
		Level:      character.Level,
		Profession: strings.ToLower(character.Profession),
	}
	summary.Color, summary.Icon = s.professionStyle(character.Profession)

	for _, slot := range gw2.GearSlots {
		equippedItem, ok := equipped[slot]
		if !ok {
			continue
		}

		piece := GearPiece{Slot: slot}
		if piece.ItemName, err = itemName(items, equippedItem.ID); err != nil {
			return nil, err
		}
		if id, ok := statIDs[slot]; ok {
			piece.StatName = statNames[id]
		}
		if piece.Upgrades, err = itemNames(items, equippedItem.Upgrades); err != nil {
			return nil, err
		}
		if piece.Infusions, err = itemNames(items, equippedItem.Infusions); err != nil {
			return nil, err
		}

		summary.Pieces = append(summary.Pieces, piece)
	}

	return summary, nil
}

func itemName(items map[int]gw2.Item, id int) (string, error) {
	item, ok := items[id]
	if !ok {
		return "", fmt.Errorf("item %d: %w", id, ErrUnknownItem)
	}
	return item.Name, nil
}

func itemNames(items map[int]gw2.Item, ids []int) ([]string, error) {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name, err := itemName(items, id)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// BirthdayEntry is the countdown to a character's next creation anniversary
type BirthdayEntry struct {
	Name          string
	Days          int
	Year          int
	DaysRemaining int
}

// Line renders "name N days until Yth birthday"
func (b BirthdayEntry) Line() string {
	return fmt.Sprintf("%s %d days until %d%s birthday", b.Name, b.DaysRemaining, b.Year, Ordinal(b.Year))
}

// Birthdays lists every character of the first page, soonest anniversary first
func (s *Service) Birthdays(ctx context.Context, userID string) ([]BirthdayEntry, error) {
	characters, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ComputeBirthdays(characters, s.now()), nil
}

// ComputeBirthdays counts whole UTC days since each creation date and sorts stably by
// days remaining until the next 365-day anniversary.
func ComputeBirthdays(characters []gw2.Character, now time.Time) []BirthdayEntry {
	now = now.UTC()
	entries := make([]BirthdayEntry, 0, len(characters))
	for _, character := range characters {
		created := character.Created.UTC()
		createdDay := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC)

		days := int(math.Floor(now.Sub(createdDay).Hours() / 24))
		years := days / 365
		entries = append(entries, BirthdayEntry{
			Name:          character.Name,
			Days:          days,
			Year:          years + 1,
			DaysRemaining: 365 - (days - 365*years),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DaysRemaining < entries[j].DaysRemaining
	})
	return entries
}

func (s *Service) professionStyle(profession string) (int, string) {
	meta, ok := s.professions.Lookup(profession)
	if !ok {
		s.logger.Warn("no metadata for profession", zap.String("profession", profession))
		return 0, ""
	}

	color, err := meta.ColorValue()
	if err != nil {
		s.logger.Warn("invalid profession color", zap.String("profession", profession), zap.Error(err))
	}
	return color, meta.Icon
}
