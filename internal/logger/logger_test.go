package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestBuild_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	zl := Build(Config{Level: "info", Component: "server"}, &buf)
	zl.Info().Str("dataset", "fairfax_bmps").Msg("asset resolved")

	out := buf.String()
	for _, want := range []string{`"component":"server"`, `"dataset":"fairfax_bmps"`, `"msg":"asset resolved"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log line missing %s: %s", want, out)
		}
	}
}

func TestNewSlog_CarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	zl := Build(Config{Level: "debug"}, &buf)
	sl := NewSlog(&zl)

	ctx := WithRequestID(context.Background(), "abc123")
	sl.InfoContext(ctx, "probe", "endpoint", "https://a.test")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"abc123"`) {
		t.Fatalf("request id not propagated: %s", out)
	}
	if !strings.Contains(out, `"endpoint":"https://a.test"`) {
		t.Fatalf("attrs not propagated: %s", out)
	}
}

func TestNewID_Unique(t *testing.T) {
	if NewID() == NewID() {
		t.Fatalf("ids should not repeat")
	}
	if len(NewID()) != 16 {
		t.Fatalf("id should be 8 random bytes hex-encoded")
	}
}
