package inventory

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/cory-johannsen/tdnd/internal/game/character"
)

// Catalog subdirectories read by LoadRegistry.
const (
	ArmorDir  = "armor"
	WeaponDir = "weapons"
	ItemDir   = "items"
)

// Registry holds all loaded armor, weapon, and item definitions indexed by ID.
//
// Registry is safe for concurrent reads once registration is complete.
type Registry struct {
	armors  map[string]*ArmorDef
	weapons map[string]*WeaponDef
	items   map[string]*ItemDef
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{
		armors:  make(map[string]*ArmorDef),
		weapons: make(map[string]*WeaponDef),
		items:   make(map[string]*ItemDef),
	}
}

// LoadRegistry loads the armor/, weapons/, and items/ subdirectories of dir
// into a new Registry. A missing subdirectory is an error.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a populated Registry or a non-nil error.
func LoadRegistry(dir string) (*Registry, error) {
	armors, err := LoadArmors(filepath.Join(dir, ArmorDir))
	if err != nil {
		return nil, err
	}
	weapons, err := LoadWeapons(filepath.Join(dir, WeaponDir))
	if err != nil {
		return nil, err
	}
	items, err := LoadItems(filepath.Join(dir, ItemDir))
	if err != nil {
		return nil, err
	}

	r := NewRegistry()
	for _, a := range armors {
		if err := r.RegisterArmor(a); err != nil {
			return nil, err
		}
	}
	for _, w := range weapons {
		if err := r.RegisterWeapon(w); err != nil {
			return nil, err
		}
	}
	for _, it := range items {
		if err := r.RegisterItem(it); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RegisterArmor adds a to the registry.
//
// Precondition:  a must not be nil.
// Postcondition: Armor(a.ID) returns a; returns error if a.ID already registered.
func (r *Registry) RegisterArmor(a *ArmorDef) error {
	if _, exists := r.armors[a.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterArmor: armor ID %q already registered", a.ID)
	}
	r.armors[a.ID] = a
	return nil
}

// RegisterWeapon adds w to the registry.
//
// Precondition:  w must not be nil.
// Postcondition: Weapon(w.ID) returns w; returns error if w.ID already registered.
func (r *Registry) RegisterWeapon(w *WeaponDef) error {
	if _, exists := r.weapons[w.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterWeapon: weapon ID %q already registered", w.ID)
	}
	r.weapons[w.ID] = w
	return nil
}

// RegisterItem adds d to the registry.
//
// Precondition:  d must not be nil.
// Postcondition: Item(d.ID) returns (d, true); returns error if d.ID already registered.
func (r *Registry) RegisterItem(d *ItemDef) error {
	if _, exists := r.items[d.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterItem: item ID %q already registered", d.ID)
	}
	r.items[d.ID] = d
	return nil
}

// Armor returns the ArmorDef for the given id, or nil if not found.
func (r *Registry) Armor(id string) *ArmorDef {
	return r.armors[id]
}

// Weapon returns the WeaponDef for the given id, or nil if not found.
func (r *Registry) Weapon(id string) *WeaponDef {
	return r.weapons[id]
}

// Item returns the ItemDef for the given id and whether it was found.
//
// Postcondition: ok is true iff the id is registered.
func (r *Registry) Item(id string) (*ItemDef, bool) {
	d, ok := r.items[id]
	return d, ok
}

// NewArmor builds the armor registered as id for wearer.
//
// Postcondition: Returns an error for an unknown id, or one wrapping
// character.ErrIneligibleEquipment when wearer may not wear it.
func (r *Registry) NewArmor(id string, wearer *character.Character) (character.Armor, error) {
	def := r.Armor(id)
	if def == nil {
		return nil, fmt.Errorf("inventory: unknown armor %q", id)
	}
	return def.Build(wearer)
}

// NewWeapon builds the weapon registered as id.
func (r *Registry) NewWeapon(id string) (character.Weapon, error) {
	def := r.Weapon(id)
	if def == nil {
		return nil, fmt.Errorf("inventory: unknown weapon %q", id)
	}
	return def.Build()
}

// NewItem builds the item registered as id.
func (r *Registry) NewItem(id string) (character.Item, error) {
	def, ok := r.Item(id)
	if !ok {
		return nil, fmt.Errorf("inventory: unknown item %q", id)
	}
	return def.Build()
}

// ArmorIDs returns all registered armor IDs in sorted order.
func (r *Registry) ArmorIDs() []string { return sortedKeys(r.armors) }

// WeaponIDs returns all registered weapon IDs in sorted order.
func (r *Registry) WeaponIDs() []string { return sortedKeys(r.weapons) }

// ItemIDs returns all registered item IDs in sorted order.
func (r *Registry) ItemIDs() []string { return sortedKeys(r.items) }

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
