package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/testutil"
)

func newPopulatedStore(t *testing.T) *domain.TicketStore {
	t.Helper()
	clock := &testutil.MockClock{NowTime: time.Date(2024, 1, 1, 0, 0, 0, 123456789, time.UTC)}
	store := domain.NewTicketStoreWithClock(clock)

	draft, err := domain.NewTicketDraft("Fix bug", "")
	require.NoError(t, err)
	id1 := store.Create(draft)

	draft, err = domain.NewTicketDraft("Write docs", "long text: with \"quotes\"\nand newlines")
	require.NoError(t, err)
	id2 := store.Create(draft)

	draft, err = domain.NewTicketDraft("日本語のタイトル", "")
	require.NoError(t, err)
	id3 := store.Create(draft)

	store.UpdateStatus(id1, domain.StatusInProgress)
	_, err = store.AddComment(id2, "first")
	require.NoError(t, err)
	_, err = store.AddComment(id2, "second # not a comment")
	require.NoError(t, err)
	store.Delete(id3)
	return store
}

func TestCodecs_RoundTrip(t *testing.T) {
	codecs := []domain.Codec{YAMLCodec{}, JSONCodec{}, CBORCodec{}}

	for _, codec := range codecs {
		t.Run(codec.Format(), func(t *testing.T) {
			store := newPopulatedStore(t)

			data, err := Encode(codec, store)
			require.NoError(t, err)

			restored, err := Decode(codec, data, domain.RealClock{})
			require.NoError(t, err)

			assert.Equal(t, store.Snapshot(), restored.Snapshot())
			assert.Equal(t, store.List(), restored.List())
			assert.Equal(t, domain.TicketID(3), restored.CurrentID())
		})
	}
}

func TestCodecs_EmptyStore(t *testing.T) {
	codecs := []domain.Codec{YAMLCodec{}, JSONCodec{}, CBORCodec{}}

	for _, codec := range codecs {
		t.Run(codec.Format(), func(t *testing.T) {
			data, err := Encode(codec, domain.NewTicketStore())
			require.NoError(t, err)

			restored, err := Decode(codec, data, domain.RealClock{})
			require.NoError(t, err)
			assert.Equal(t, 0, restored.Len())
			assert.Equal(t, domain.TicketID(0), restored.CurrentID())
		})
	}
}

func TestSerialize_Deserialize(t *testing.T) {
	store := newPopulatedStore(t)

	data, err := Serialize(store)
	require.NoError(t, err)

	restored, err := Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, store.Snapshot(), restored.Snapshot())
}

func TestSerialize_YAMLLayout(t *testing.T) {
	clock := &testutil.MockClock{NowTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := domain.NewTicketStoreWithClock(clock)
	draft, err := domain.NewTicketDraft("Fix bug", "")
	require.NoError(t, err)
	store.Create(draft)

	data, err := Serialize(store)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "current_id: 1")
	assert.Contains(t, out, "data:")
	assert.Contains(t, out, "title: Fix bug")
	assert.Contains(t, out, "status: ToDo")
	assert.Contains(t, out, "comments: []")
	assert.Contains(t, out, "created_at: 2024-01-01T00:00:00Z")
}

func TestDeserialize_HandWrittenYAML(t *testing.T) {
	data := []byte(`current_id: 4
data:
  2:
    id: 2
    title: Write docs
    description: long text
    status: Blocked
    comments:
      - waiting on review
    created_at: 2024-01-01T00:00:00Z
    updated_at: 2024-01-02T00:00:00Z
`)

	store, err := Deserialize(data)
	require.NoError(t, err)

	got, ok := store.Get(2)
	require.True(t, ok)
	assert.Equal(t, "Write docs", got.Title().String())
	assert.Equal(t, domain.StatusBlocked, got.Status())
	require.Len(t, got.Comments(), 1)
	assert.Equal(t, "waiting on review", got.Comments()[0].String())
	draft, err := domain.NewTicketDraft(got.Title().String(), "")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketID(5), store.Create(draft))
}

func TestJSONCodec_AcceptsCommentsAndTrailingCommas(t *testing.T) {
	data := []byte(`{
  // hand-edited
  "current_id": 1,
  "data": {
    "1": {
      "id": 1,
      "title": "Fix bug",
      "description": "",
      "status": "Done",
      "comments": ["done", ],
      "created_at": "2024-01-01T00:00:00Z",
      "updated_at": "2024-01-01T00:00:00Z", /* trailing */
    },
  },
}`)

	store, err := Decode(JSONCodec{}, data, domain.RealClock{})
	require.NoError(t, err)

	got, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, domain.StatusDone, got.Status())
}

func TestDecode_CorruptInput(t *testing.T) {
	tests := []struct {
		codec domain.Codec
		name  string
		data  string
	}{
		{name: "yaml syntax", codec: YAMLCodec{}, data: "current_id: [unterminated"},
		{name: "json syntax", codec: JSONCodec{}, data: `{"current_id": `},
		{name: "cbor garbage", codec: CBORCodec{}, data: "\xff\xfe\xfd"},
		{name: "invalid title", codec: YAMLCodec{}, data: "current_id: 1\ndata:\n  1: {id: 1, title: \"\", status: ToDo}\n"},
		{name: "unknown status", codec: YAMLCodec{}, data: "current_id: 1\ndata:\n  1: {id: 1, title: x, status: Closed}\n"},
		{name: "id above counter", codec: YAMLCodec{}, data: "current_id: 0\ndata:\n  1: {id: 1, title: x, status: ToDo}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Decode(tt.codec, []byte(tt.data), domain.RealClock{})
			assert.Nil(t, store)
			assert.ErrorIs(t, err, domain.ErrCorruptSnapshot)
		})
	}
}

func TestCodecFor(t *testing.T) {
	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{format: "", want: FormatYAML},
		{format: "yaml", want: FormatYAML},
		{format: "YML", want: FormatYAML},
		{format: "json", want: FormatJSON},
		{format: "jsonc", want: FormatJSON},
		{format: "cbor", want: FormatCBOR},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			codec, err := CodecFor(tt.format)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, codec.Format())
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("/data/ticket_store.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("/data/ticket_store"))
	assert.Equal(t, FormatJSON, FormatFromPath("/data/tickets.JSON"))
	assert.Equal(t, FormatJSON, FormatFromPath("/data/tickets.jsonc"))
	assert.Equal(t, FormatCBOR, FormatFromPath("/data/tickets.cbor"))

	codec, err := CodecForPath("", "/data/tickets.cbor")
	require.NoError(t, err)
	assert.Equal(t, FormatCBOR, codec.Format())

	codec, err = CodecForPath("json", "/data/tickets.cbor")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, codec.Format())
}
