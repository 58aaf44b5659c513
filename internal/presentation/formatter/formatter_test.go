package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/penwyp/go-feed-digest/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult(warning model.Warning) model.Result {
	start := time.Date(2024, 3, 9, 6, 0, 0, 0, time.UTC)
	return model.Result{
		Window: model.Window{Start: start, End: start.Add(24 * time.Hour)},
		Items: []model.TimelineItem{
			{
				ID:        "102",
				CreatedAt: start.Add(20 * time.Hour),
				Payload:   json.RawMessage(`{"id_str":"102","full_text":"second\nline","user":{"screen_name":"alice"}}`),
			},
			{
				ID:        "101",
				CreatedAt: start.Add(2 * time.Hour),
				Payload:   json.RawMessage(`{"id_str":"101","text":"hello, world","user":{"screen_name":"bob"}}`),
			},
			{
				ID:        "100",
				CreatedAt: start.Add(time.Hour),
				Payload:   json.RawMessage(`{"id":"100","content":"plain","author":"alice"}`),
			},
		},
		Warning: warning,
		Fetches: 3,
	}
}

func TestNewPublication(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	pub := NewPublication(testResult(model.EndPotentiallyUnreachable), loc)

	assert.Equal(t, "Europe/London", pub.Timezone)
	assert.Equal(t, 6, pub.Start.Hour())
	assert.Equal(t, 3, pub.Fetches)
	assert.Equal(t, "RangeEndPotentiallyUnreachable", pub.Warning)
	assert.Contains(t, pub.Message, "Range end potentially unreachable")

	require.Len(t, pub.Items, 3)
	assert.Equal(t, ItemView{ID: "102", CreatedAt: pub.Items[0].CreatedAt, Author: "alice", Text: "second line"}, pub.Items[0])
	assert.Equal(t, "bob", pub.Items[1].Author)
	assert.Equal(t, "hello, world", pub.Items[1].Text)
	assert.Equal(t, "alice", pub.Items[2].Author)
	assert.Equal(t, "plain", pub.Items[2].Text)
}

func TestNewPublication_NilLocationAndEmptyPayload(t *testing.T) {
	result := model.Result{
		Items: []model.TimelineItem{{ID: "1", CreatedAt: time.Unix(0, 0)}},
	}

	pub := NewPublication(result, nil)

	assert.Equal(t, "UTC", pub.Timezone)
	assert.Empty(t, pub.Warning)
	require.Len(t, pub.Items, 1)
	assert.Empty(t, pub.Items[0].Author)
	assert.Empty(t, pub.Items[0].Text)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		want    interface{}
		wantErr bool
	}{
		{"", &TableFormatter{}, false},
		{"table", &TableFormatter{}, false},
		{"json", &JSONFormatter{}, false},
		{"csv", &CSVFormatter{}, false},
		{"summary", &SummaryFormatter{}, false},
		{"xml", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, f)
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	pub := NewPublication(testResult(model.StartPotentiallyUnreachable), time.UTC)

	require.NoError(t, NewJSONFormatter().Format(&buf, pub))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "UTC", decoded["timezone"])
	assert.Equal(t, "RangeStartPotentiallyUnreachable", decoded["warning"])
	assert.Equal(t, float64(3), decoded["fetches"])
	items, ok := decoded["items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 3)
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestJSONFormatter_OmitsEmptyWarning(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, NewPublication(testResult(model.WarningNone), time.UTC)))

	assert.NotContains(t, buf.String(), `"warning"`)
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	pub := NewPublication(testResult(model.WarningNone), time.UTC)

	require.NoError(t, NewCSVFormatter().Format(&buf, pub))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"ID", "Created At", "Author", "Text"}, records[0])
	assert.Equal(t, []string{"101", "2024-03-09T08:00:00Z", "bob", "hello, world"}, records[2])
}

func TestSummaryFormatter(t *testing.T) {
	var buf bytes.Buffer
	pub := NewPublication(testResult(model.EndPotentiallyUnreachable), time.UTC)

	require.NoError(t, NewSummaryFormatter().Format(&buf, pub))

	out := buf.String()
	assert.Contains(t, out, "2024-03-09 06:00 → 2024-03-10 06:00 (UTC)")
	assert.Contains(t, out, "Window length:      24h0m0s")
	assert.Contains(t, out, "Items:              3")
	assert.Contains(t, out, "Authors:            2")
	assert.Contains(t, out, "@alice")
	assert.Contains(t, out, "Warning: Range end potentially unreachable")

	lines := strings.Split(out, "\n")
	var authorLines []string
	for _, l := range lines {
		if strings.HasPrefix(l, "  @") {
			authorLines = append(authorLines, l)
		}
	}
	require.Len(t, authorLines, 2)
	assert.True(t, strings.HasPrefix(authorLines[0], "  @alice"))
}

func TestTopAuthors(t *testing.T) {
	counts := map[string]int{"a": 1, "b": 3, "c": 3, "d": 2}

	assert.Equal(t, []string{"b", "c", "d"}, topAuthors(counts, 3))
	assert.Len(t, topAuthors(counts, 10), 4)
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	pub := NewPublication(testResult(model.StartPotentiallyUnreachable), time.UTC)

	require.NoError(t, NewTableFormatter(80).Format(&buf, pub))

	out := buf.String()
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "└")
	assert.Contains(t, out, "@alice")
	assert.Contains(t, out, "second line")
	assert.Contains(t, out, "3 items, 3 pages fetched")
	assert.Contains(t, out, "Range start potentially unreachable")
}

func TestTableFormatter_TruncatesToWidth(t *testing.T) {
	result := testResult(model.WarningNone)
	result.Items[0].Payload = json.RawMessage(`{"text":"` + strings.Repeat("long ", 60) + `"}`)
	pub := NewPublication(result, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(70).Format(&buf, pub))

	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "│") || strings.HasPrefix(line, "┌") {
			assert.LessOrEqual(t, displayWidth(line), 70, line)
		}
	}
	assert.Contains(t, buf.String(), "…")
}

func TestTableFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	pub := NewPublication(model.Result{}, time.UTC)

	require.NoError(t, NewTableFormatter(80).Format(&buf, pub))

	assert.Contains(t, buf.String(), "│ no items in window │")
	assert.NotContains(t, buf.String(), "…")
	assert.Contains(t, buf.String(), "0 items, 0 pages fetched")
}

func TestTableFormatter_EmptyNarrowTerminal(t *testing.T) {
	var buf bytes.Buffer
	pub := NewPublication(model.Result{}, time.UTC)

	require.NoError(t, NewTableFormatter(30).Format(&buf, pub))

	assert.Contains(t, buf.String(), "no items in window")
}

func displayWidth(s string) int {
	return len([]rune(s))
}
