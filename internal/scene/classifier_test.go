package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

var mapFromTextCases = []struct {
	Text   string
	Expect Scene
}{
	{"请关灯", Off},
	{"帮我关闭灯光吧", Off},
	{"恢复正常", Relax},
	{"用默认的", Relax},
	{"来个派对", Party},
	{"let's party", Party},
	{"浪漫一点", Romantic},
	{"睡前模式", Relax},
	{"我想放松", Relax},
	{"relax please", Relax},
	{"hello world", Relax},
	{"", Relax},
	{"PARTY", Relax},
	{"关灯然后放松", Off},
	{"放松, 然后关灯", Off},
	{"派对结束, 关灯", Off},
	{"浪漫派对", Party},
	{"默认派对", Relax},
}

func TestMapFromText(t *testing.T) {
	for _, v := range mapFromTextCases {
		t.Run(v.Text, func(t *testing.T) {
			assert.Equal(t, v.Expect, MapFromText(v.Text))
		})
	}
}

func TestMapFromTextDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.String().Draw(t, "text")
		if MapFromText(text) != MapFromText(text) {
			t.Fatalf("classification of %q is not stable", text)
		}
	})
}

func TestMapFromTextOffWinsOverMood(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pre := rapid.String().Draw(t, "pre")
		mid := rapid.String().Draw(t, "mid")
		post := rapid.String().Draw(t, "post")
		mood := rapid.SampledFrom([]string{"放松", "relax", "派对", "party", "浪漫", "睡前"}).Draw(t, "mood")
		off := rapid.SampledFrom([]string{"关灯", "关闭灯光"}).Draw(t, "off")
		if rapid.Bool().Draw(t, "offFirst") {
			mood, off = off, mood
		}
		if got := MapFromText(pre + off + mid + mood + post); got != Off {
			t.Fatalf("expected off, got %v", got)
		}
	})
}

func TestClassifierWithRules(t *testing.T) {
	c := Default().WithRules([]Rule{{Keywords: []string{"disco"}, Scene: Party}})
	assert.Equal(t, Party, c.Classify("disco time"))
	assert.Equal(t, Off, c.Classify("关灯"))
	assert.Equal(t, Relax, c.Classify("nothing"))
	assert.Equal(t, Relax, MapFromText("disco time"), "default table must be untouched")
	assert.Len(t, c.Rules(), len(DefaultRules)+1)
}

func TestClassifierIgnoresEmptyKeyword(t *testing.T) {
	c := NewClassifier([]Rule{{Keywords: []string{""}, Scene: Party}}, Romantic)
	assert.Equal(t, Romantic, c.Classify("anything"))
}

func TestClassifierCopiesRules(t *testing.T) {
	rules := []Rule{{Keywords: []string{"a"}, Scene: Party}}
	c := NewClassifier(rules, Relax)
	rules[0].Keywords[0] = "b"
	assert.Equal(t, Party, c.Classify("a"))
}
