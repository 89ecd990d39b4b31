package merkle

import (
	"fmt"
	"testing"

	"github.com/yourusername/ledgerbook/internal/crypto"
)

func TestRoot_Empty(t *testing.T) {
	root := Root([]string{})

	if root != EmptyRoot {
		t.Errorf("Empty root = %q, want %q", root, EmptyRoot)
	}
}

func TestRoot_SingleRecord(t *testing.T) {
	record := "single transaction"

	root := Root([]string{record})

	if root != crypto.HashHex(record) {
		t.Error("Single record root should be the digest of that record")
	}
}

func TestRoot_TwoRecords(t *testing.T) {
	a := "transaction 1"
	b := "transaction 2"

	root := Root([]string{a, b})

	// The pair combines into one element, which the final step hashes again.
	expected := crypto.HashHex(crypto.HashPairHex(a, b))

	if root != expected {
		t.Errorf("Two record root incorrect\nGot:  %s\nWant: %s", root, expected)
	}
}

func TestRoot_OddNumber(t *testing.T) {
	// Three records: the unpaired tail must pair with itself.
	a, b, c := "tx1", "tx2", "tx3"

	root := Root([]string{a, b, c})

	// Level 1: [H(a+b), H(c+c)]
	hab := crypto.HashPairHex(a, b)
	hcc := crypto.HashPairHex(c, c)

	// Level 2: [H(hab+hcc)], then the survivor is hashed once more.
	expected := crypto.HashHex(crypto.HashPairHex(hab, hcc))

	if root != expected {
		t.Error("Odd number root calculation incorrect")
	}
}

func TestRoot_FiveRecords(t *testing.T) {
	records := []string{"r0", "r1", "r2", "r3", "r4"}

	root := Root(records)

	// Level 1: [H(r0+r1), H(r2+r3), H(r4+r4)]
	l1 := []string{
		crypto.HashPairHex("r0", "r1"),
		crypto.HashPairHex("r2", "r3"),
		crypto.HashPairHex("r4", "r4"),
	}
	// Level 2: [H(l1[0]+l1[1]), H(l1[2]+l1[2])]
	l2 := []string{
		crypto.HashPairHex(l1[0], l1[1]),
		crypto.HashPairHex(l1[2], l1[2]),
	}
	expected := crypto.HashHex(crypto.HashPairHex(l2[0], l2[1]))

	if root != expected {
		t.Errorf("Five record root incorrect\nGot:  %s\nWant: %s", root, expected)
	}
}

func TestRoot_Deterministic(t *testing.T) {
	records := []string{"a", "b", "c", "d", "e", "f", "g"}

	root1 := Root(records)
	root2 := Root(records)

	if root1 != root2 {
		t.Error("Root is not deterministic")
	}
}

func TestRoot_OrderMatters(t *testing.T) {
	root1 := Root([]string{"tx1", "tx2"})
	root2 := Root([]string{"tx2", "tx1"})

	if root1 == root2 {
		t.Error("Root should differ when record order changes")
	}
}

func TestRoot_ChangeSensitivity(t *testing.T) {
	root1 := Root([]string{"tx1", "tx2"})
	root2 := Root([]string{"tx1", "tx2_modified"})

	if root1 == root2 {
		t.Error("Root should change when a record changes")
	}
}

func TestRoot_DoesNotMutateInput(t *testing.T) {
	records := []string{"a", "b", "c"}

	Root(records)

	if records[0] != "a" || records[1] != "b" || records[2] != "c" {
		t.Error("Root mutated its input slice")
	}
}

func TestLevels(t *testing.T) {
	records := make([]string, 4)
	for i := range records {
		records[i] = fmt.Sprintf("record %d", i)
	}

	levels := Levels(records)

	// Four records reduce over levels of size 4, 2, 1.
	if len(levels) != 3 {
		t.Fatalf("Levels count = %d, want 3", len(levels))
	}
	for i, want := range []int{4, 2, 1} {
		if len(levels[i]) != want {
			t.Errorf("Level %d size = %d, want %d", i, len(levels[i]), want)
		}
	}

	// Hashing the surviving element yields the commitment.
	if crypto.HashHex(levels[2][0]) != Root(records) {
		t.Error("Levels survivor doesn't match Root result")
	}
}

func TestLevels_Empty(t *testing.T) {
	if Levels(nil) != nil {
		t.Error("Levels of no records should be nil")
	}
}

func BenchmarkRoot_100Records(b *testing.B) {
	records := make([]string, 100)
	for i := range records {
		records[i] = fmt.Sprintf("record %d", i)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		Root(records)
	}
}
