package android

import (
	"testing"

	"github.com/mj1618/uistate/internal/model"
)

func TestParseBounds(t *testing.T) {
	tests := []struct {
		in     string
		want   model.BoundingBox
		wantOK bool
	}{
		{"[10,20][110,220]", model.BoundingBox{X1: 10, Y1: 20, X2: 110, Y2: 220}, true},
		{"[0,0][1080,1920]", model.BoundingBox{X1: 0, Y1: 0, X2: 1080, Y2: 1920}, true},
		{"[-5,-5][5,5]", model.BoundingBox{X1: -5, Y1: -5, X2: 5, Y2: 5}, true},
		{"[110,220][10,20]", model.BoundingBox{X1: 10, Y1: 20, X2: 110, Y2: 220}, true},
		{"garbage", model.BoundingBox{}, false},
		{"", model.BoundingBox{}, false},
		{"[1,2][3]", model.BoundingBox{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseBounds(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseBounds(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

const sampleDump = `<?xml version='1.0' encoding='UTF-8' standalone='yes' ?>
<hierarchy rotation="0">
  <node index="0" text="" class="android.widget.FrameLayout" content-desc="" enabled="true" visible-to-user="true" bounds="[0,0][1080,1920]">
    <node index="0" text="OK" class="android.widget.Button" content-desc="" enabled="true" visible-to-user="true" bounds="[0,0][50,50]" resource-id="com.app:id/ok"/>
    <node index="1" text="Hello" class="android.widget.TextView" content-desc="" enabled="true" visible-to-user="true" bounds="[0,60][200,100]"/>
    <node index="2" text="" class="android.widget.ImageView" content-desc="Logo" enabled="true" visible-to-user="true" bounds="garbage"/>
    <node index="3" text="Hidden" class="android.widget.Button" content-desc="" enabled="true" visible-to-user="false" bounds="[0,0][10,10]"/>
    <node index="4" text="Off" class="android.widget.Button" content-desc="" enabled="false" visible-to-user="true" bounds="[0,0][10,10]"/>
    <node index="5" text="" class="android.widget.EditText" content-desc="" enabled="true" visible-to-user="true" bounds="[0,120][1080,200]"/>
  </node>
</hierarchy>
UI hierchary dumped to: /dev/tty
`

func TestParse(t *testing.T) {
	nodes, err := Adapter{}.Parse([]byte(sampleDump), model.Window{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// FrameLayout has no text and is not whitelisted; hidden and disabled nodes are dropped.
	if len(nodes) != 4 {
		t.Fatalf("got %d nodes, want 4", len(nodes))
	}

	wantTypes := []string{"android.widget.Button", "android.widget.TextView", "android.widget.ImageView", "android.widget.EditText"}
	for i, n := range nodes {
		if n.TypeName() != wantTypes[i] {
			t.Errorf("node %d type = %q, want %q", i, n.TypeName(), wantTypes[i])
		}
	}

	if nodes[0].Name() != "OK" || nodes[0].Attr("resource-id") != "com.app:id/ok" {
		t.Errorf("node 0 = %q / %q", nodes[0].Name(), nodes[0].Attr("resource-id"))
	}
	if nodes[2].Name() != "Logo" || nodes[2].Label() != "Logo" {
		t.Errorf("content-desc fallback: name %q label %q", nodes[2].Name(), nodes[2].Label())
	}
	if _, ok := nodes[2].Box(); ok {
		t.Error("garbage bounds should not produce a box")
	}
	box, ok := nodes[0].Box()
	if !ok || box != (model.BoundingBox{X1: 0, Y1: 0, X2: 50, Y2: 50}) {
		t.Errorf("node 0 box = %v, %v", box, ok)
	}
}

func TestParseMissingVisibility(t *testing.T) {
	dump := `<hierarchy><node text="Go" class="android.widget.Button" enabled="true" bounds="[1,2][3,4]"/></hierarchy>`
	nodes, err := Adapter{}.Parse([]byte(dump), model.Window{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(nodes) != 1 || !nodes[0].Visible() {
		t.Fatalf("got %d nodes, want 1 visible node", len(nodes))
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := (Adapter{}).Parse([]byte("not xml at all"), model.Window{}); err == nil {
		t.Error("expected error for non-xml dump")
	}
}
