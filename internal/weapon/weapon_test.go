package weapon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stick-battle-arena/internal/ecs"
	"stick-battle-arena/internal/item"
)

type mockWorld struct {
	mock.Mock
}

func (m *mockWorld) Strike(owner item.Owner, reach, damage int, used *item.Item) {
	m.Called(owner, reach, damage, used)
}

func (m *mockWorld) Fire(owner item.Owner, shot Shot) {
	m.Called(owner, shot)
}

type nopPool struct{}

func (nopPool) Release(item.Kind, *item.Item) {}

type player struct{}

func (player) PlayerID() ecs.EntityID { return 4 }
func (player) Holder() item.Holder { return nil }

func equipped(t *testing.T, durability int) *item.Item {
	t.Helper()
	it := item.New("test", durability, nopPool{})
	it.Spawn(time.Minute)
	require.True(t, it.PickUp(player{}))
	it.Equip()
	return it
}

func TestMeleeStrikesAndWears(t *testing.T) {
	it := equipped(t, 3)
	w := &mockWorld{}
	w.On("Strike", player{}, 1, 25, it).Once()
	Attach(it, Melee{Damage: 25, Reach: 0, Wear: 1}, w)

	it.UseButtonDown()
	it.UseButtonUp()

	w.AssertExpectations(t)
	assert.Equal(t, 2, it.Durability())
}

func TestMeleeBreaksAfterStrike(t *testing.T) {
	it := equipped(t, 1)
	w := &mockWorld{}
	w.On("Strike", player{}, 2, 10, it).Once()
	broke := false
	it.OnBreak(func(*item.Item) { broke = true })
	Attach(it, Melee{Damage: 10, Reach: 2, Wear: 1}, w)

	it.UseButtonDown()

	w.AssertExpectations(t)
	assert.True(t, broke)
	assert.Equal(t, item.Pooled, it.State())
}

func TestPistolFiresOnPress(t *testing.T) {
	it := equipped(t, 5)
	w := &mockWorld{}
	w.On("Fire", player{}, mock.MatchedBy(func(s Shot) bool {
		return s.Projectile == "bullet" && s.Used == it && s.Damage == 15
	})).Twice()
	Attach(it, Pistol{Shot: Shot{Projectile: "bullet", Damage: 15, Speed: 20, Range: 12}, Wear: 1}, w)

	it.UseButtonDown()
	it.UseButtonUp()
	it.UseButtonDown()

	w.AssertExpectations(t)
	assert.Equal(t, 3, it.Durability())
}

func TestBowLoosesOnRelease(t *testing.T) {
	it := equipped(t, 5)
	w := &mockWorld{}
	w.On("Fire", player{}, mock.AnythingOfType("weapon.Shot")).Once()
	bow := &Bow{Shot: Shot{Projectile: "arrow", Damage: 30}, Wear: 1}
	Attach(it, bow, w)

	it.UseButtonUp()
	w.AssertNotCalled(t, "Fire", mock.Anything, mock.Anything)

	it.UseButtonDown()
	assert.True(t, bow.Drawn())
	w.AssertNotCalled(t, "Fire", mock.Anything, mock.Anything)

	it.UseButtonUp()
	assert.False(t, bow.Drawn())
	w.AssertExpectations(t)
	assert.Equal(t, 4, it.Durability())
}

func TestDetachStopsBehaviour(t *testing.T) {
	it := equipped(t, 5)
	w := &mockWorld{}
	detach := Attach(it, Melee{Damage: 1, Wear: 1}, w)
	detach()

	it.UseButtonDown()

	w.AssertNotCalled(t, "Strike", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 5, it.Durability())
}

func TestStowedItemDoesNothing(t *testing.T) {
	it := equipped(t, 5)
	it.UnEquip()
	w := &mockWorld{}
	Attach(it, Melee{Damage: 1, Wear: 1}, w)

	it.UseButtonDown()

	w.AssertNotCalled(t, "Strike", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBowDrawIsDroppedWhenStowed(t *testing.T) {
	cases := []struct {
		name  string
		reset func(it *item.Item)
	}{
		{"unequip", func(it *item.Item) {
			it.UnEquip()
			it.Equip()
		}},
		{"return to pool", func(it *item.Item) {
			it.ReturnToPool()
			it.Spawn(time.Minute)
			require.True(t, it.PickUp(player{}))
			it.Equip()
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			it := equipped(t, 5)
			w := &mockWorld{}
			bow := &Bow{Shot: Shot{Projectile: "arrow", Damage: 30}, Wear: 1}
			Attach(it, bow, w)

			it.UseButtonDown()
			require.True(t, bow.Drawn())
			c.reset(it)
			assert.False(t, bow.Drawn())

			it.UseButtonUp()
			w.AssertNotCalled(t, "Fire", mock.Anything, mock.Anything)
			assert.Equal(t, 5, it.Durability())
		})
	}
}

func TestDetachDropsStowHook(t *testing.T) {
	it := equipped(t, 5)
	bow := &Bow{}
	detach := Attach(it, bow, &mockWorld{})
	it.UseButtonDown()
	detach()

	it.UnEquip()
	assert.True(t, bow.Drawn(), "a detached bow no longer hears its item")
}
