package assets_test

import (
	"testing"

	"github.com/milk9111/scenescript/assets"
	"github.com/milk9111/scenescript/engine"
	"github.com/milk9111/scenescript/engine/enemy"
	"github.com/milk9111/scenescript/script"
)

func TestDefaultDocumentLoads(t *testing.T) {
	spec, err := enemy.LoadSpec()
	if err != nil {
		t.Fatalf("enemy spec: %v", err)
	}
	reg := engine.NewRegistry()
	if err := enemy.Register(reg, spec); err != nil {
		t.Fatalf("register: %v", err)
	}

	doc, err := script.Load(assets.DefaultDocument(), script.Options{States: reg})
	if err != nil {
		t.Fatalf("default document: %v", err)
	}
	if doc.OpeningScene != "prison" {
		t.Fatalf("unexpected opening scene %q", doc.OpeningScene)
	}
	if _, ok := doc.Scenes[spec.Prisoner.ExitTo]; !ok {
		t.Fatalf("prisoner exits to %q, which the document lacks", spec.Prisoner.ExitTo)
	}
	for _, name := range []string{"prison", "big bad", "boss fight"} {
		if _, ok := doc.Scripts[name]; !ok {
			t.Fatalf("missing script %q", name)
		}
	}
}

func TestLoaderFallsBackToEmbedded(t *testing.T) {
	l := assets.Loader{Root: t.TempDir()}
	b, err := l.LoadFile("assets/" + assets.DefaultDocumentName)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(b) != string(assets.DefaultDocument()) {
		t.Fatalf("expected the embedded document")
	}
	if _, err := l.LoadFile("nope.png"); err == nil {
		t.Fatalf("expected an error for a missing asset")
	}
}
