package headlessterm

import "testing"

func TestHyperlinkTableOpenDedupesSameURIAndID(t *testing.T) {
	ht := NewHyperlinkTable()

	id1 := ht.Open(Hyperlink{ID: "grp1", URI: "https://example.com"})
	id2 := ht.Open(Hyperlink{ID: "grp1", URI: "https://example.com"})

	if id1 != id2 {
		t.Fatalf("expected same id for matching id+uri, got %d and %d", id1, id2)
	}
	if ht.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", ht.Len())
	}
}

func TestHyperlinkTableOpenDistinguishesByURI(t *testing.T) {
	ht := NewHyperlinkTable()

	id1 := ht.Open(Hyperlink{ID: "grp1", URI: "https://example.com/a"})
	id2 := ht.Open(Hyperlink{ID: "grp1", URI: "https://example.com/b"})

	if id1 == id2 {
		t.Fatal("expected distinct ids for distinct URIs")
	}
}

func TestHyperlinkTableOpenMintsIDWhenOmitted(t *testing.T) {
	ht := NewHyperlinkTable()

	id1 := ht.Open(Hyperlink{URI: "https://example.com"})
	id2 := ht.Open(Hyperlink{URI: "https://example.com"})

	if id1 == id2 {
		t.Fatal("expected distinct entries when no id is supplied, since a fresh uuid is minted each time")
	}
}

func TestHyperlinkTableLookup(t *testing.T) {
	ht := NewHyperlinkTable()
	id := ht.Open(Hyperlink{ID: "x", URI: "https://example.com"})

	link, ok := ht.Lookup(id)
	if !ok {
		t.Fatal("expected lookup to succeed")
	}
	if link.URI != "https://example.com" {
		t.Errorf("unexpected URI: %s", link.URI)
	}

	if _, ok := ht.Lookup(0); ok {
		t.Fatal("expected HyperlinkID 0 to never resolve")
	}
	if _, ok := ht.Lookup(id + 100); ok {
		t.Fatal("expected unknown id to fail lookup")
	}
}

func TestHyperlinkTableClear(t *testing.T) {
	ht := NewHyperlinkTable()
	ht.Open(Hyperlink{ID: "x", URI: "https://example.com"})
	ht.Clear()

	if ht.Len() != 0 {
		t.Fatalf("expected empty table after Clear, got %d entries", ht.Len())
	}

	id := ht.Open(Hyperlink{ID: "y", URI: "https://example.org"})
	if id != 1 {
		t.Fatalf("expected id counter to restart at 1 after Clear, got %d", id)
	}
}
