package resume

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeToleratesMissingFields(t *testing.T) {
	doc, err := Decode([]byte(`{"basics":{"fullName":"Ada"},"sections":[{"id":"a","type":"skills"}]}`), FormatJSON)
	require.NoError(t, err)
	require.True(t, doc.Loaded())
	require.Len(t, doc.Sections, 1)
	assert.Nil(t, doc.Sections[0].Items)
	assert.True(t, doc.Sections[0].Visible())
	assert.False(t, doc.Sections[0].InLeftColumn())
}

func TestDecodeMissingSectionsIsNotLoaded(t *testing.T) {
	doc, err := Decode([]byte(`{"basics":{"fullName":"Ada"}}`), FormatJSON)
	require.NoError(t, err)
	assert.False(t, doc.Loaded())

	doc, err = Decode([]byte(`{"basics":{"fullName":"Ada"},"sections":[]}`), FormatJSON)
	require.NoError(t, err)
	assert.True(t, doc.Loaded())
}

func TestHiddenSectionRoundTrips(t *testing.T) {
	raw := []byte(`{"basics":{"fullName":"Ada","email":"a@b.c"},"sections":[{"id":"x","title":"Secret","type":"text","isVisible":false,"column":"left","content":"<b>hi</b>","items":[]},{"id":"y","title":"Open","type":"text","items":[]}]}`)
	doc, err := Decode(raw, FormatJSON)
	require.NoError(t, err)
	require.False(t, doc.Sections[0].Visible())
	require.Nil(t, doc.Sections[1].IsVisible)

	for _, format := range []Format{FormatJSON, FormatYAML} {
		encoded, err := Encode(doc, format)
		require.NoError(t, err)
		again, err := Decode(encoded, format)
		require.NoError(t, err)
		assert.Equal(t, doc, again, "format %s", format)
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("cv.YML"))
	assert.Equal(t, FormatYAML, FormatFromPath("cv.yaml"))
	assert.Equal(t, FormatJSON, FormatFromPath("cv.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("cv"))
}

func TestValidate(t *testing.T) {
	sample, err := json.Marshal(Sample())
	require.NoError(t, err)
	require.NoError(t, Validate(sample))

	err = Validate([]byte(`{"basics":{"fullName":"Ada"},"sections":[{"id":"a","type":"chart"}]}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDocument))

	// 未知列值合法，渲染时归入主列。
	require.NoError(t, Validate([]byte(`{"basics":{"fullName":"Ada"},"sections":[{"id":"a","type":"text","column":"middle"}]}`)))

	require.Error(t, Validate([]byte(`not json`)))
}

func TestValidateAcceptsNullFields(t *testing.T) {
	raw := []byte(`{"basics":{"fullName":"A","email":"a@b","phone":null},` +
		`"sections":[{"id":"s1","type":"text","content":null,"isVisible":null},` +
		`{"id":"s2","type":"skills","items":[{"id":"i","tags":["Go",null]}]}]}`)
	require.NoError(t, Validate(raw))

	doc, err := Decode(raw, FormatJSON)
	require.NoError(t, err)
	require.True(t, doc.Loaded())
	assert.Equal(t, "", doc.Basics.Phone)
	assert.Equal(t, "", doc.Sections[0].Content)
	assert.True(t, doc.Sections[0].Visible())
}

func TestEditsDoNotMutateReceiver(t *testing.T) {
	base := Sample()
	snapshot := base.Clone()

	edited := base.SetSectionVisible("summary", false)
	edited = edited.SetSectionColumn("experience", ColumnLeft)
	edited = edited.UpdateItem("skills", "s1", func(item *SectionItem) {
		item.Tags[0] = "Changed"
	})
	edited = edited.SetBasics(Basics{FullName: "Someone Else"})

	assert.Equal(t, snapshot, base)
	assert.False(t, edited.Sections[0].Visible())
	assert.Equal(t, ColumnLeft, edited.Sections[1].Column)
	assert.Equal(t, "Changed", edited.Sections[3].Items[0].Tags[0])
	assert.Equal(t, "Someone Else", edited.Basics.FullName)
}

func TestAddSectionAndPageBreak(t *testing.T) {
	doc := Document{Basics: &Basics{FullName: "Ada"}, Sections: []Section{}}

	doc, added := doc.AddSection("", TypeList)
	assert.Equal(t, "New Section", added.Title)
	assert.Equal(t, ColumnFull, added.Column)
	assert.True(t, added.Visible())
	assert.NotEmpty(t, added.ID)

	doc = doc.AddPageBreak()
	require.Len(t, doc.Sections, 2)
	assert.True(t, doc.Sections[1].IsBreak())
	assert.NotEqual(t, doc.Sections[0].ID, doc.Sections[1].ID)
}

func TestMoveSection(t *testing.T) {
	doc := Document{Sections: []Section{{ID: "a"}, {ID: "b"}, {ID: "c"}}}

	ids := func(d Document) []string {
		out := make([]string, 0, len(d.Sections))
		for _, s := range d.Sections {
			out = append(out, s.ID)
		}
		return out
	}

	assert.Equal(t, []string{"b", "a", "c"}, ids(doc.MoveSection(1, Up)))
	assert.Equal(t, []string{"a", "c", "b"}, ids(doc.MoveSection(1, Down)))
	assert.Equal(t, []string{"a", "b", "c"}, ids(doc.MoveSection(0, Up)))
	assert.Equal(t, []string{"a", "b", "c"}, ids(doc.MoveSection(2, Down)))
	assert.Equal(t, []string{"a", "b", "c"}, ids(doc.MoveSection(9, Up)))
}

func TestItemOperations(t *testing.T) {
	doc := Sample()

	doc, item := doc.AddItem("skills")
	assert.Equal(t, []string{"Skill 1"}, item.Tags)

	doc, listItem := doc.AddItem("experience")
	assert.Nil(t, listItem.Tags)
	assert.Equal(t, "New Item", listItem.Title)

	exp, ok := doc.Section("experience")
	require.True(t, ok)
	require.Len(t, exp.Items, 3)

	doc = doc.RemoveItem("experience", listItem.ID)
	exp, _ = doc.Section("experience")
	assert.Len(t, exp.Items, 2)

	unchanged := doc.RemoveItem("missing", "nope").DeleteSection("missing")
	assert.Equal(t, doc, unchanged)

	doc = doc.DeleteSection("skills")
	_, ok = doc.Section("skills")
	assert.False(t, ok)
}
