package session

import (
	"testing"

	"github.com/vovakirdan/tui-duel/internal/config"
	"github.com/vovakirdan/tui-duel/internal/contest"
)

func TestCampaignClamps(t *testing.T) {
	c := testCampaign()
	for i := 0; i < 10; i++ {
		c.Apply(false)
	}
	if c.HP != 0 || c.Gold != 0 || !c.Over() {
		t.Errorf("campaign = %+v", c)
	}

	c.Restart()
	c.Gold = c.GoldCap
	if d := c.Apply(true); d.Gold != 0 || c.Gold != c.GoldCap {
		t.Errorf("gold over the cap: %+v", c)
	}
}

func TestCampaignOrder(t *testing.T) {
	c := testCampaign()
	var ids []string
	for range contest.Kinds() {
		id, _ := c.Next()
		ids = append(ids, id)
		c.Apply(true)
	}
	for i, k := range contest.Kinds() {
		if ids[i] != k.String() {
			t.Errorf("encounter %d is %s, expected %s", i, ids[i], k)
		}
	}
	if id, _ := c.Next(); id != contest.KindFlapping.String() {
		t.Errorf("after a full round got %s", id)
	}
}

func TestCampaignDifficultyRises(t *testing.T) {
	cfg := config.Default().Campaign
	c := NewCampaign(cfg)
	_, first := c.Next()
	prev := first
	for i := 0; i < 20; i++ {
		c.Apply(true)
		_, d := c.Next()
		if d < prev {
			t.Fatalf("difficulty fell from %f to %f", prev, d)
		}
		prev = d
	}
	if first != 0 || prev != 1 {
		t.Errorf("difficulty ran %f..%f, expected 0..1", first, prev)
	}

	c.Difficulty().ApplyPreset(config.DifficultyFixed)
	if _, d := c.Next(); d != 0 {
		t.Errorf("fixed difficulty = %f", d)
	}
}
