package engine

import "testing"

// groundScene builds a 10 tile wide floor on row 0 and a wall at column 5.
func groundScene(t *testing.T) (*Scene, Sprite, *Physics) {
	t.Helper()
	s := NewScene(640, 640, 64)
	s.AddLayer(LayerPlatforms, true)
	for col := 0; col < 10; col++ {
		s.AddSprite(LayerPlatforms, float64(col)*64+32, 32, 64, 64, Appearance{Glyph: '#'})
	}
	s.AddSprite(LayerPlatforms, 5*64+32, 96, 64, 64, Appearance{Glyph: '#'})
	s.AddLayer(LayerPlayer, true)
	player := s.AddSprite(LayerPlayer, 64, 128, 48, 96, Appearance{})
	return s, player, NewPhysics(s, player, 1, LayerPlatforms, 64)
}

func TestPhysicsLandsOnGround(t *testing.T) {
	_, player, phys := groundScene(t)

	if phys.CanJump() {
		t.Fatal("player spawns in the air")
	}
	for i := 0; i < 30; i++ {
		phys.Update()
	}

	_, y := player.Pos()
	if y != 64+48 {
		t.Errorf("resting y = %v, expected %v", y, 64+48)
	}
	if _, vy := player.Vel(); vy != 0 {
		t.Errorf("vy on ground = %v, expected 0", vy)
	}
	if !phys.CanJump() {
		t.Error("CanJump should be true on ground")
	}
}

func TestPhysicsWallStopsHorizontalMove(t *testing.T) {
	_, player, phys := groundScene(t)
	for i := 0; i < 30; i++ {
		phys.Update()
	}

	player.SetVelX(5)
	for i := 0; i < 100; i++ {
		phys.Update()
	}

	x, _ := player.Pos()
	// Wall left edge is at 320, player half width is 24
	if x != 320-24 {
		t.Errorf("x against wall = %v, expected %v", x, 320-24)
	}
	if vx, _ := player.Vel(); vx != 5 {
		t.Errorf("vx = %v, walking into a wall keeps velocity", vx)
	}
}

func TestPhysicsJumpArc(t *testing.T) {
	_, player, phys := groundScene(t)
	for i := 0; i < 30; i++ {
		phys.Update()
	}
	_, ground := player.Pos()

	player.SetVelY(20)
	phys.Update()
	_, y := player.Pos()
	if y != ground+19 {
		t.Errorf("after first jump tick y = %v, expected %v", y, ground+19)
	}
	if phys.CanJump() {
		t.Error("CanJump should be false in the air")
	}

	for i := 0; i < 60; i++ {
		phys.Update()
	}
	if _, y := player.Pos(); y != ground {
		t.Errorf("after landing y = %v, expected %v", y, ground)
	}
}

func TestPhysicsNoTunnelingOnFastFall(t *testing.T) {
	_, player, phys := groundScene(t)
	player.SetPos(64, 600)
	player.SetVel(0, -200)
	phys.Update()

	if _, y := player.Pos(); y != 64+48 {
		t.Errorf("y = %v, fast fall should stop on the floor", y)
	}
}

func TestPhysicsInvalidPlayer(t *testing.T) {
	s, player, phys := groundScene(t)
	s.Remove(player)
	phys.Update() // must not panic
	if phys.CanJump() {
		t.Error("CanJump on removed player should be false")
	}
}
