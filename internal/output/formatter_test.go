package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"text", FormatText},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"toon", FormatTOON},
		{"", FormatText},
		{"yaml", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewFormatter_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.json")

	f, err := NewFormatter(FormatJSON, path, true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}
	if f.colored {
		t.Error("colored should be false when writing to a file")
	}
	if err := f.Output(map[string]int{"frames": 3}); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !strings.Contains(string(data), `"frames": 3`) {
		t.Errorf("file content = %q", data)
	}
}

func TestNewFormatter_InvalidPath(t *testing.T) {
	if _, err := NewFormatter(FormatText, "/nonexistent/directory/file.txt", false); err == nil {
		t.Error("NewFormatter() should error for invalid path")
	}
}

func frameTable() *Table {
	return NewTable(
		"Frames",
		[]string{"Label", "Files", "Lines"},
		[][]string{
			{"2024-01-01", "2", "55"},
			{"2024-01-02", "2", "85"},
		},
		[]string{"Total", "", "85"},
		nil,
	)
}

func TestTable_RenderText(t *testing.T) {
	for _, colored := range []bool{false, true} {
		var buf bytes.Buffer
		if err := frameTable().RenderText(&buf, colored); err != nil {
			t.Fatalf("RenderText() error: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"Frames", "LABEL", "FILES", "2024-01-01", "2024-01-02", "85"} {
			if !strings.Contains(out, want) {
				t.Errorf("colored=%v: output missing %q:\n%s", colored, want, out)
			}
		}
	}
}

func TestTable_RenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := frameTable().RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"## Frames",
		"| Label | Files | Lines |",
		"| --- | --- | --- |",
		"| 2024-01-02 | 2 | 85 |",
		"| Total |  | 85 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTable_RenderData(t *testing.T) {
	t.Run("data_field", func(t *testing.T) {
		data := map[string]any{"interval": "day"}
		table := NewTable("Frames", []string{"Label"}, [][]string{{"2024-01-01"}}, nil, data)

		got, ok := table.RenderData().(map[string]any)
		if !ok || got["interval"] != "day" {
			t.Errorf("RenderData() = %v, want the Data field", table.RenderData())
		}
	})

	t.Run("rows", func(t *testing.T) {
		rows, ok := frameTable().RenderData().([]map[string]string)
		if !ok {
			t.Fatalf("RenderData() type = %T, want []map[string]string", frameTable().RenderData())
		}
		if len(rows) != 2 {
			t.Fatalf("rows = %d, want 2", len(rows))
		}
		if rows[1]["Label"] != "2024-01-02" || rows[1]["Lines"] != "85" {
			t.Errorf("row 1 = %v", rows[1])
		}
	})

	t.Run("short_row", func(t *testing.T) {
		table := NewTable("", []string{"A", "B", "C"}, [][]string{{"1", "2"}}, nil, nil)
		rows := table.RenderData().([]map[string]string)
		if len(rows[0]) != 2 {
			t.Errorf("row = %v, want two columns", rows[0])
		}
	})
}

func TestFormatter_Output(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   any
		want   string
	}{
		{"text_table", FormatText, frameTable(), "2024-01-02"},
		{"markdown_table", FormatMarkdown, frameTable(), "| 2024-01-01 | 2 | 55 |"},
		{"json_table", FormatJSON, frameTable(), `"Label": "2024-01-01"`},
		{"json_raw", FormatJSON, map[string]string{"first": "2024-01-01"}, `"first": "2024-01-01"`},
		{"markdown_raw", FormatMarkdown, []string{"alice", "bob"}, "```json"},
		{"text_raw", FormatText, []string{"alice", "bob"}, "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			f := NewWriterFormatter(tt.format, &buf, false)
			if err := f.Output(tt.data); err != nil {
				t.Fatalf("Output() error: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, buf.String())
			}
		})
	}
}

func TestFormatter_JSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	f := NewWriterFormatter(FormatJSON, &buf, false)
	if err := f.Output(map[string][]string{"contributors": {"alice", "bob"}}); err != nil {
		t.Fatalf("Output() error: %v", err)
	}

	var got map[string][]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal() error: %v\n%s", err, buf.String())
	}
	if strings.Join(got["contributors"], ",") != "alice,bob" {
		t.Errorf("contributors = %v", got["contributors"])
	}
}

func TestFormatter_Messages(t *testing.T) {
	var buf bytes.Buffer
	f := NewWriterFormatter(FormatText, &buf, false)

	f.Success("adopted %d frames", 4)
	f.Warning("%d malformed changes skipped", 1)
	f.Error("rebuild failed: %s", "not a repository")
	f.Info("watching %s", ".git")

	want := "adopted 4 frames\n" +
		"WARNING: 1 malformed changes skipped\n" +
		"ERROR: rebuild failed: not a repository\n" +
		"watching .git\n"
	if buf.String() != want {
		t.Errorf("messages = %q, want %q", buf.String(), want)
	}
}

func TestFormatterOutputTOON(t *testing.T) {
	type row struct {
		Label string `toon:"label"`
		Files int    `toon:"files"`
	}
	data := struct {
		Interval string `toon:"interval"`
		Frames   []row  `toon:"frames"`
	}{
		Interval: "week",
		Frames:   []row{{Label: "2024-W01", Files: 3}, {Label: "2024-W02", Files: 5}},
	}

	var buf bytes.Buffer
	f := NewWriterFormatter(FormatTOON, &buf, false)
	if err := f.Output(data); err != nil {
		t.Fatalf("Output() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"interval", "week", "2024-W01", "2024-W02"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMarshal(t *testing.T) {
	data := map[string]int{"frames": 4}

	tests := []struct {
		name   string
		format Format
		check  func(t *testing.T, out string)
	}{
		{
			name:   "json",
			format: FormatJSON,
			check: func(t *testing.T, out string) {
				var m map[string]int
				if err := json.Unmarshal([]byte(out), &m); err != nil {
					t.Fatalf("Unmarshal() error: %v", err)
				}
				if m["frames"] != 4 {
					t.Errorf("frames = %d, want 4", m["frames"])
				}
			},
		},
		{
			name:   "toon",
			format: FormatTOON,
			check: func(t *testing.T, out string) {
				if !strings.Contains(out, "frames") || !strings.Contains(out, "4") {
					t.Errorf("toon output = %q", out)
				}
			},
		},
		{
			name:   "markdown_fenced",
			format: FormatMarkdown,
			check: func(t *testing.T, out string) {
				if !strings.HasPrefix(out, "```") || !strings.HasSuffix(out, "```") {
					t.Errorf("markdown output should be fenced: %q", out)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Marshal(data, tt.format)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			tt.check(t, out)
		})
	}
}
