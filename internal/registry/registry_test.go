package registry

import (
	"reflect"
	"testing"
)

func TestDefault_ResolvesEveryKeyLabelAndAlias(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	for _, ds := range Builtin() {
		byKey, ok := r.Resolve(ds.Key)
		if !ok {
			t.Fatalf("key %q did not resolve", ds.Key)
		}
		byLabel, ok := r.Resolve(ds.Label)
		if !ok {
			t.Fatalf("label %q did not resolve", ds.Label)
		}
		if !reflect.DeepEqual(byKey.Layers, byLabel.Layers) {
			t.Fatalf("key and label for %q resolve to different layer lists", ds.Key)
		}
		for _, alias := range ds.Aliases {
			got, ok := r.Resolve(alias)
			if !ok || got.Key != ds.Key {
				t.Fatalf("alias %q did not resolve to %q", alias, ds.Key)
			}
		}
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	ds, ok := r.Resolve("FAIRFAX COUNTY STORMWATER BMPS")
	if !ok || ds.Key != KeyFairfaxBMPs {
		t.Fatalf("upper-cased label should resolve to %s, got %+v ok=%v", KeyFairfaxBMPs, ds, ok)
	}
	if _, ok := r.Resolve("  tmdl "); !ok {
		t.Fatalf("alias with surrounding whitespace should resolve")
	}
}

func TestResolve_Unknown(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if _, ok := r.Resolve("no_such_dataset"); ok {
		t.Fatalf("unknown name should not resolve")
	}
}

func TestNew_FailsOnDuplicateLookupName(t *testing.T) {
	layer := Layer{Endpoint: "https://example.test/MapServer/0", IDFields: []string{"ID"}}
	_, err := New([]Dataset{
		{Key: "a", Label: "Shared Name", Layers: []Layer{layer}},
		{Key: "b", Label: "shared name", Layers: []Layer{layer}},
	})
	if err == nil {
		t.Fatalf("duplicate label must fail construction, not silently shadow")
	}
}

func TestNew_FailsOnAliasColldingWithKey(t *testing.T) {
	layer := Layer{Endpoint: "https://example.test/MapServer/0", IDFields: []string{"ID"}}
	_, err := New([]Dataset{
		{Key: "ponds", Label: "Ponds", Layers: []Layer{layer}},
		{Key: "lakes", Label: "Lakes", Aliases: []string{"ponds"}, Layers: []Layer{layer}},
	})
	if err == nil {
		t.Fatalf("alias colliding with another key must fail construction")
	}
}

func TestNew_FailsOnEmptyLayerList(t *testing.T) {
	_, err := New([]Dataset{{Key: "x", Label: "X"}})
	if err == nil {
		t.Fatalf("dataset without layers must fail construction")
	}
}
