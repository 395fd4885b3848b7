package domain

import (
	"encoding/json"
	"testing"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name string
		wire string
		kind StoreKind
		key  string
	}{
		{"seed", "m1", KindSeed, "1"},
		{"session", "s6ba7b810-9dad-11d1-80b4-00c04fd430c8", KindSession, "6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
		{"durable hex", "507f1f77bcf86cd799439011", KindDurable, "507f1f77bcf86cd799439011"},
		{"durable hex starting with digit", "0a1b2c3d4e5f6a7b8c9d0e1f", KindDurable, "0a1b2c3d4e5f6a7b8c9d0e1f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := ParseID(tt.wire)
			if id.Kind != tt.kind {
				t.Errorf("ParseID(%q).Kind = %v, want %v", tt.wire, id.Kind, tt.kind)
			}
			if id.Key != tt.key {
				t.Errorf("ParseID(%q).Key = %q, want %q", tt.wire, id.Key, tt.key)
			}
			if got := id.String(); got != tt.wire {
				t.Errorf("round trip of %q produced %q", tt.wire, got)
			}
		})
	}
}

func TestParseID_Empty(t *testing.T) {
	id := ParseID("")
	if !id.IsZero() {
		t.Errorf("ParseID(\"\") should be zero, got %+v", id)
	}
}

func TestTaggedID_Fallback(t *testing.T) {
	if !ParseID("m1").Fallback() {
		t.Error("seed id should route to the session store")
	}
	if !ParseID("sabc").Fallback() {
		t.Error("session id should route to the session store")
	}
	if ParseID("507f1f77bcf86cd799439011").Fallback() {
		t.Error("durable id should not route to the session store")
	}
}

func TestNewSessionID_Unique(t *testing.T) {
	a := NewSessionID()
	b := NewSessionID()
	if a == b {
		t.Error("session ids should not collide")
	}
	if a.Kind != KindSession {
		t.Errorf("session id kind = %v", a.Kind)
	}
}

func TestTaggedID_JSON(t *testing.T) {
	p := Product{ID: NewSeedID("1"), Name: "x", Price: 10, InStock: true}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Product
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ID != p.ID {
		t.Errorf("id round trip: got %+v, want %+v", decoded.ID, p.ID)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if raw["_id"] != "m1" {
		t.Errorf("wire id = %v, want m1", raw["_id"])
	}
}
