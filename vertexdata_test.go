package ccraster

import "testing"

func TestEncodeVertexDataRoundTrip(t *testing.T) {
	flagSets := []VertexFlags{
		FlagHull,
		FlagEdge,
		FlagEdge | FlagInvertCoverage,
		FlagCorner,
	}
	for left := 0; left < 4; left++ {
		for right := 0; right < 4; right++ {
			for bloat := 0; bloat < 4; bloat++ {
				for corner := 0; corner < 4; corner++ {
					for _, flags := range flagSets {
						v := EncodeVertexData(left, right, bloat, corner, flags)
						f := v.Decode()
						if f.LeftNeighborID != left || f.RightNeighborID != right ||
							f.BloatIdx != bloat || f.CornerID != corner || f.Flags != flags {
							t.Fatalf("Encode(%d,%d,%d,%d,%#x).Decode() = %+v",
								left, right, bloat, corner, flags, f)
						}
					}
				}
			}
		}
	}
}

func TestEncodeVertexDataMasksOutOfRange(t *testing.T) {
	// Field values beyond 2 bits must not leak into neighboring fields.
	v := EncodeVertexData(7, 5, 6, 9, FlagHull)
	want := EncodeVertexData(3, 1, 2, 1, FlagHull)
	if v != want {
		t.Errorf("masked encode = %#x, want %#x", uint32(v), uint32(want))
	}
}

func TestBuilderWords(t *testing.T) {
	tests := []struct {
		name string
		got  VertexData
		want uint32
	}{
		{"hull corner 0 bloat 0", HullVertexData(0, 0, 3), 0x904},
		{"hull corner 1 bloat 2", HullVertexData(1, 2, 3), 0x285},
		{"edge 0->1 bloat 0", EdgeVertexData(0, 1, 0, 0), 0x009},
		{"edge 1->0 bloat 0 inverted", EdgeVertexData(1, 0, 0, FlagInvertCoverage), 0x528},
		{"corner 0 bloat 1", TriangleCornerVertexData(0, 1), 0x950},
	}
	for _, tt := range tests {
		if uint32(tt.got) != tt.want {
			t.Errorf("%s: got %#x, want %#x", tt.name, uint32(tt.got), tt.want)
		}
	}
}

func TestRoleFlagAccessors(t *testing.T) {
	hull := HullVertexData(0, 0, 3)
	if !hull.IsHull() || hull.IsEdge() || hull.IsCorner() || hull.InvertsCoverage() {
		t.Errorf("hull word role flags wrong: %#x", uint32(hull))
	}
	edge := EdgeVertexData(1, 0, 2, FlagInvertCoverage)
	if edge.IsHull() || !edge.IsEdge() || edge.IsCorner() || !edge.InvertsCoverage() {
		t.Errorf("edge word role flags wrong: %#x", uint32(edge))
	}
	corner := TriangleCornerVertexData(2, 3)
	if corner.IsHull() || corner.IsEdge() || !corner.IsCorner() {
		t.Errorf("corner word role flags wrong: %#x", uint32(corner))
	}
}

func TestEdgeVertexDataNeighborFields(t *testing.T) {
	// Both neighbor fields hold the left endpoint; the corner field holds
	// the right endpoint.
	v := EdgeVertexData(2, 1, 0, 0)
	if v.LeftNeighborID() != 2 || v.RightNeighborID() != 2 || v.CornerID() != 1 {
		t.Errorf("edge fields = left %d right %d corner %d, want 2 2 1",
			v.LeftNeighborID(), v.RightNeighborID(), v.CornerID())
	}
}

func TestReverseMaskConstants(t *testing.T) {
	if m := reverseMask(3); m != 0xafe {
		t.Errorf("reverseMask(3) = %#x, want 0xafe", m)
	}
	if m := reverseMask(4); m != 0xfff {
		t.Errorf("reverseMask(4) = %#x, want 0xfff", m)
	}
}

// Subtracting a table word from the reverse mask must remap every index
// field i to n-1-i while leaving the other fields' bits absorbed by the
// middle guard term, for every word in both static tables.
func TestReverseMaskRemapsIndexFields(t *testing.T) {
	check := func(t *testing.T, m *Mesh) {
		t.Helper()
		n := m.Sides()
		mask := reverseMask(n)
		for i, v := range m.Vertices() {
			r := mask - uint32(v)
			if got, want := int(r)&3, n-1-v.CornerID(); got != want {
				t.Errorf("vertex %d: reversed corner = %d, want %d", i, got, want)
			}
			if got, want := int(r>>leftNeighborIDShift)&3, n-1-v.LeftNeighborID(); got != want {
				t.Errorf("vertex %d: reversed left = %d, want %d", i, got, want)
			}
			if got, want := int(r>>rightNeighborIDShift)&3, n-1-v.RightNeighborID(); got != want {
				t.Errorf("vertex %d: reversed right = %d, want %d", i, got, want)
			}
		}
	}
	t.Run("triangle", func(t *testing.T) { check(t, TriangleMesh()) })
	t.Run("hull4", func(t *testing.T) { check(t, Hull4Mesh()) })
}
