package inventory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/tdnd/internal/game/character"
	"github.com/cory-johannsen/tdnd/internal/game/inventory"
)

func writeCatalogFile(t *testing.T, dir, sub, name, body string) {
	t.Helper()
	path := filepath.Join(dir, sub)
	require.NoError(t, os.MkdirAll(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, name), []byte(body), 0o644))
}

func newCatalogDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeCatalogFile(t, dir, inventory.ArmorDir, "plate.yaml", "id: plate\nname: Plate\nbase: plate\n")
	writeCatalogFile(t, dir, inventory.ArmorDir, "leather.yaml", "id: leather\nname: Leather\nbase: leather\n")
	writeCatalogFile(t, dir, inventory.WeaponDir, "axe.yaml", "id: war_axe\nname: War Axe\nbase: war_axe\n")
	writeCatalogFile(t, dir, inventory.ItemDir, "ring.yaml", "id: ring\nname: Ring\nkind: ring_of_protection\n")
	return dir
}

func TestRegistry_RegisterWeapon_Lookup(t *testing.T) {
	r := inventory.NewRegistry()
	def := &inventory.WeaponDef{ID: "sword", Name: "Sword", Base: inventory.WeaponLongSword}
	require.NoError(t, r.RegisterWeapon(def))
	assert.Same(t, def, r.Weapon("sword"))
	assert.Nil(t, r.Weapon("missing"))
}

func TestRegistry_RegisterWeapon_CollisionError(t *testing.T) {
	r := inventory.NewRegistry()
	def := &inventory.WeaponDef{ID: "sword", Name: "Sword", Base: inventory.WeaponLongSword}
	require.NoError(t, r.RegisterWeapon(def))
	assert.ErrorContains(t, r.RegisterWeapon(def), "already registered")
}

func TestRegistry_RegisterArmor_CollisionError(t *testing.T) {
	r := inventory.NewRegistry()
	def := &inventory.ArmorDef{ID: "leather", Name: "Leather", Base: inventory.ArmorLeather}
	require.NoError(t, r.RegisterArmor(def))
	assert.ErrorContains(t, r.RegisterArmor(def), "already registered")
}

func TestRegistry_Item_NotFound(t *testing.T) {
	_, ok := inventory.NewRegistry().Item("missing")
	assert.False(t, ok)
}

func TestLoadRegistry_LoadsAllKinds(t *testing.T) {
	r, err := inventory.LoadRegistry(newCatalogDir(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"leather", "plate"}, r.ArmorIDs())
	assert.Equal(t, []string{"war_axe"}, r.WeaponIDs())
	assert.Equal(t, []string{"ring"}, r.ItemIDs())
}

func TestLoadRegistry_MissingSubdirectory(t *testing.T) {
	dir := t.TempDir()
	writeCatalogFile(t, dir, inventory.ArmorDir, "leather.yaml", "id: leather\nname: Leather\nbase: leather\n")
	_, err := inventory.LoadRegistry(dir)
	assert.ErrorContains(t, err, "LoadWeapons")
}

func TestLoadRegistry_DuplicateIDAcrossFiles(t *testing.T) {
	dir := newCatalogDir(t)
	writeCatalogFile(t, dir, inventory.ArmorDir, "leather2.yaml", "id: leather\nname: Leather Again\nbase: leather\n")
	_, err := inventory.LoadRegistry(dir)
	assert.ErrorContains(t, err, "already registered")
}

func TestRegistry_Builders(t *testing.T) {
	r, err := inventory.LoadRegistry(newCatalogDir(t))
	require.NoError(t, err)

	_, err = r.NewArmor("plate", character.New())
	assert.ErrorIs(t, err, character.ErrIneligibleEquipment)

	armor, err := r.NewArmor("leather", character.New())
	require.NoError(t, err)
	assert.Equal(t, 2, armor.ArmorClassBonus(character.New()))

	weapon, err := r.NewWeapon("war_axe")
	require.NoError(t, err)
	assert.Equal(t, "War Axe", weapon.Name())

	item, err := r.NewItem("ring")
	require.NoError(t, err)
	assert.Equal(t, 2, item.ArmorClassBonus())

	_, err = r.NewArmor("missing", character.New())
	assert.ErrorContains(t, err, "unknown armor")
	_, err = r.NewWeapon("missing")
	assert.ErrorContains(t, err, "unknown weapon")
	_, err = r.NewItem("missing")
	assert.ErrorContains(t, err, "unknown item")
}
