package core

import (
	"os"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func buttonRecord() ExtractionRecord {
	return ExtractionRecord{
		UnitName:          "Button.vue",
		PlaceholderID:     "_s-abcdefgh",
		PlaceholderMarker: PlaceholderMarkerFor("_s-abcdefgh"),
		StyleText:         ".a{color:red}",
	}
}

func TestFinalizeArtifactQuoting(t *testing.T) {
	rec := buttonRecord()
	want := `['_s-abcdefgh', ".a{color:red}"]`

	tests := []struct {
		name string
		text string
	}{
		{name: "single quoted", text: "x(" + rec.PlaceholderMarker + ");"},
		{name: "double quoted", text: `x(console.warn("__###_s-abcdefgh###__"));`},
		{name: "repeated", text: rec.PlaceholderMarker + `;console.warn("__###_s-abcdefgh###__")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinalizeArtifact(tt.text, []ExtractionRecord{rec})
			if strings.Contains(got, "__###") {
				t.Errorf("Expected no residual marker, got %s", got)
			}
			if !strings.Contains(got, want) {
				t.Errorf("Expected %s in output, got %s", want, got)
			}
		})
	}
}

func TestFinalizeArtifactStripsKeepAlive(t *testing.T) {
	tests := []string{
		"a();_export_sfc({}, ['to-remove']);b();",
		"a();\n_export_sfc({}, [\"to-remove\"]);\nb();",
		"a();_export_sfc({},[\"to-remove\"]);b();",
		"a();\nexport_helper_default({}, [\"to-remove\"]);\nb();",
		"a();_export_sfc2({}, [\"to-remove\"]);b();",
		"a();(0, import_export_helper.default)({}, [\"to-remove\"]);b();",
	}

	for _, text := range tests {
		got := FinalizeArtifact(text, nil)
		if strings.Contains(got, "to-remove") {
			t.Errorf("Expected scaffolding stripped from %q, got %q", text, got)
		}
		if !strings.Contains(got, "b();") {
			t.Errorf("Expected surrounding code kept, got %q", got)
		}
	}
}

func TestFinalizeArtifactPrependsHelpersOnce(t *testing.T) {
	got := FinalizeArtifact("console.log(1);", []ExtractionRecord{buttonRecord()})

	if !strings.HasPrefix(got, RuntimeHelpers) {
		t.Error("Expected runtime helpers at the top")
	}
	if n := strings.Count(got, RuntimeHelpers); n != 1 {
		t.Errorf("Expected helpers once, got %d", n)
	}
	if !strings.HasSuffix(got, "console.log(1);") {
		t.Errorf("Expected original text after helpers, got %q", got)
	}
}

func TestRuntimeHelpersSelfContained(t *testing.T) {
	if strings.Contains(RuntimeHelpers, ExportHelper+"(") {
		t.Error("Expected runtime helpers not to call the bundled export helper by name")
	}
	if !strings.Contains(RuntimeHelpers, "const "+ExportHelperWithStyles+" =") {
		t.Errorf("Expected runtime helpers to define %s", ExportHelperWithStyles)
	}
}

func TestFinalizeArtifactKeepsOtherCalls(t *testing.T) {
	text := "register({}, ['to-keep']);\nexport_helper_default({}, [\"to-remove\"]);"

	got := FinalizeArtifact(text, nil)
	if !strings.Contains(got, "register({}, ['to-keep']);") {
		t.Errorf("Expected unrelated call kept, got %q", got)
	}
	if strings.Contains(got, "to-remove") {
		t.Errorf("Expected renamed scaffolding stripped, got %q", got)
	}
}

func TestFinalizeArtifactSkipsRecordsWithoutMarker(t *testing.T) {
	styleOnly := ExtractionRecord{UnitName: "Orphan.vue", PlaceholderID: "_s-orphan00", StyleText: ".o{}"}
	text := "const x = 1;"

	got := FinalizeArtifact(text, []ExtractionRecord{styleOnly})
	if got != RuntimeHelpers+"\n"+text {
		t.Errorf("Expected text untouched apart from helpers, got %q", got)
	}
}

func TestStyleLiteralEscaping(t *testing.T) {
	rec := ExtractionRecord{
		PlaceholderID: "_s-12345678",
		StyleText:     ".a::after{content:\"`${x}`\"}\n.b{}",
	}

	want := `['_s-12345678', ".a::after{content:\"` + "`${x}`" + `\"}\n.b{}"]`
	if got := StyleLiteral(rec); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestFinalizeArtifactSnapshot(t *testing.T) {
	bundle := `// src/export-helper.js
var export_helper_default = (sfc, props) => {
  const target = sfc.__vccOpts || sfc;
  for (const [key, val] of props) {
    target[key] = val;
  }
  return target;
};
const _sfc_main = { name: "Button" };
function _sfc_render() {
  return "button";
}
var Button_default = /* @__PURE__ */ _export_sfc_with_styles(_sfc_main, [["render", _sfc_render]], console.warn("__###_s-abcdefgh###__"));
export_helper_default({}, ["to-remove"]);
export {
  Button_default as Button
};
`
	snaps.MatchSnapshot(t, FinalizeArtifact(bundle, []ExtractionRecord{buttonRecord()}))
}
