package xmlattr

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/hunt-tracker/internal/domain/attributes"
	"github.com/ersonp/hunt-tracker/internal/domain/entities"
)

const rootAttrsDoc = `<Attributes MissionBagTeam_0_handicap="0" MissionBagTeam_0_isinvite="false" ` +
	`MissionBagTeam_0_mmr="2500" MissionBagTeam_0_numplayers="1" MissionBagTeam_0_ownteam="true" ` +
	`MissionBagPlayer_0_0_blood_line_name="Alice" MissionBagPlayer_0_0_mmr="2480" ` +
	`MissionBagPlayer_0_0_profileid="1001" MissionBagPlayer_0_0_killedbyme="0" ` +
	`MissionBagPlayer_0_0_killedme="0" MissionBagPlayer_0_0_downedbyme="0" ` +
	`MissionBagPlayer_0_0_downedme="0" MissionBagPlayer_0_0_bountypickedup="1" ` +
	`MissionBagPlayer_0_0_bountyextracted="1" MissionBagPlayer_0_0_hadbounty="true" ` +
	`MissionBagPlayer_0_0_ispartner="false" MissionBagPlayer_0_0_issoulsurvivor="false" ` +
	`MissionBagPlayer_0_0_teamextraction="true" MissionBagPlayer_0_0_proximity="false"/>`

const childAttrsDoc = `<?xml version="1.0" encoding="utf-8"?>
<Attributes Version="37">
  <Attr name="MissionBagNumTeams" value="1"/>
  <Attr name="MissionBagTeam_0_handicap" value="3"/>
  <Attr name="MissionBagTeam_0_isinvite" value="True"/>
  <Attr name="MissionBagTeam_0_mmr" value="3050"/>
  <Attr name="MissionBagTeam_0_numplayers" value="0"/>
  <Attr name="MissionBagTeam_0_ownteam" value="false"/>
  <Other>ignored <Attr name="nested" value="x"/></Other>
</Attributes>`

func TestParse_RootAttributes(t *testing.T) {
	el, err := Parse([]byte(rootAttrsDoc))
	require.NoError(t, err)

	v, ok := el.Get("MissionBagTeam_0_mmr")
	require.True(t, ok)
	assert.Equal(t, "2500", v)
	assert.Equal(t, "Attributes", el.Name.Local)

	teams, err := attributes.ParseTeams(el)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, 2500, teams[0].MMR)
	assert.True(t, teams[0].OwnTeam)
	require.Len(t, teams[0].Players, 1)
	assert.Equal(t, "Alice", teams[0].Players[0].Name)
	assert.True(t, teams[0].Players[0].HadBounty)
}

func TestParse_ChildAttrElements(t *testing.T) {
	el, err := Parse([]byte(childAttrsDoc))
	require.NoError(t, err)

	v, ok := el.Get("Version")
	require.True(t, ok)
	assert.Equal(t, "37", v)

	_, ok = el.Get("nested")
	assert.False(t, ok, "only direct Attr children are read")

	teams, err := attributes.Enumerator{Bounds: attributes.BoundDeclared}.Enumerate(el)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, 3050, teams[0].MMR)
	assert.True(t, teams[0].IsInvite)
	assert.Empty(t, teams[0].Players)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "truncated", input: `<Attributes MissionBagTeam_0_mmr="25`},
		{name: "unclosed root", input: `<Attributes><Attr name="a" value="b"/>`},
		{name: "garbage", input: "\x00\x00\x00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Nil(t, el)
		})
	}
}

func TestElement_SetMutatesInPlace(t *testing.T) {
	el, err := Parse([]byte(`<Attributes a="1" b="2"/>`))
	require.NoError(t, err)

	el.Set("b", "20")
	el.Set("c", "3")

	assert.Equal(t, []string{"a", "b", "c"}, el.Keys())
	assert.Equal(t, 3, el.Len())
	v, _ := el.Get("b")
	assert.Equal(t, "20", v)
}

func TestElement_ZeroValueIsUsable(t *testing.T) {
	var el Element
	el.Set("k", "v")
	v, ok := el.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestElement_WriteToRoundTrip(t *testing.T) {
	teams := []entities.Team{
		{MMR: 2900, NumPlayers: 1, OwnTeam: true, Players: []entities.Player{
			{Name: `Jack "the <Ripper>" & Co`, MMR: 2950, ProfileID: 7, KilledMe: 1},
		}},
		{MMR: 2100, Handicap: -2, IsInvite: true, Players: []entities.Player{}},
	}

	el := NewElement("Attributes")
	attributes.WriteTeams(el, teams)

	var buf bytes.Buffer
	_, err := el.WriteTo(&buf)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "<Attributes "))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, el.Keys(), decoded.Keys())

	got, err := attributes.ParseTeams(decoded)
	require.NoError(t, err)
	assert.Equal(t, teams, got)
}

func TestElement_MarshalDefaultsRootName(t *testing.T) {
	el := &Element{}
	el.Set("x", "1")

	var buf bytes.Buffer
	_, err := el.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, `<Attributes x="1"></Attributes>`, buf.String())
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "attributes.xml")
	require.NoError(t, os.WriteFile(path, []byte(childAttrsDoc), 0644))

	el, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7, el.Len())

	_, err = ReadFile(filepath.Join(dir, "missing.xml"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformed)
}
