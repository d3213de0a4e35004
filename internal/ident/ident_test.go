package ident

import (
	"reflect"
	"testing"

	"stormgis/internal/registry"
)

func TestVariants_NumberSuffixConvention(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"1373DP", []string{"1373DP", "1373-DP", "1373 DP"}},
		{"1373-dp", []string{"1373DP", "1373-DP", "1373 DP"}},
		{" 1373 dp ", []string{"1373DP", "1373-DP", "1373 DP"}},
		{"123AB", []string{"123AB", "123-AB", "123 AB"}},
	}
	for _, tc := range cases {
		got := Variants(tc.in, registry.ConvNumberSuffix)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Variants(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestVariants_ConventionMissFallsBack(t *testing.T) {
	got := Variants("WP-40 21", registry.ConvNumberSuffix)
	want := []string{"WP-40 21", "WP40 21", "WP-4021"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Variants fallback = %v, want %v", got, want)
	}
	// fallback set collapses to one entry when reformatting changes nothing
	got = Variants("WP4021", registry.ConvNumberSuffix)
	if !reflect.DeepEqual(got, []string{"WP4021"}) {
		t.Fatalf("Variants(WP4021) = %v, want singleton", got)
	}
}

func TestVariants_PlainConventionIsSingleton(t *testing.T) {
	got := Variants("  wp4021 ", registry.ConvPlain)
	if !reflect.DeepEqual(got, []string{"WP4021"}) {
		t.Fatalf("Variants plain = %v, want [WP4021]", got)
	}
	got = Variants("1373DP", registry.ConvPlain)
	if !reflect.DeepEqual(got, []string{"1373DP"}) {
		t.Fatalf("plain datasets must not expand ids, got %v", got)
	}
}

func TestDetectDataset_Precedence(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"TC-103-SR", registry.KeyTMDLStructures, true},
		{"tc103sr", registry.KeyTMDLStructures, true},
		{"WP4021", registry.KeyDCLandscape, true},
		{"abc99", registry.KeyDCLandscape, true},
		{"1373DP", registry.KeyFairfaxBMPs, true},
		{"123 ab", registry.KeyFairfaxBMPs, true},
		{"totally-unrecognizable", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := DetectDataset(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("DetectDataset(%q) = (%q,%v), want (%q,%v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
