package omap

import "testing"

func TestMap_OrderAndUpdate(t *testing.T) {
	m := New[int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3) // update keeps the slot

	keys := m.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("order wrong: %v", keys)
	}
	if v, ok := m.Get("b"); !ok || v != 3 {
		t.Fatalf("update lost: %v %v", v, ok)
	}
	if m.Len() != 2 {
		t.Fatalf("len: %d", m.Len())
	}
}

func TestMap_CloneIsIndependent(t *testing.T) {
	m := New[string]()
	m.Set("x", "1")
	c := m.Clone()
	c.Set("x", "2")
	c.Set("y", "3")

	if v, _ := m.Get("x"); v != "1" {
		t.Fatalf("clone write leaked: %v", v)
	}
	if m.Len() != 1 || c.Len() != 2 {
		t.Fatalf("sizes: %d %d", m.Len(), c.Len())
	}
}

func TestMap_EachVisitsInOrder(t *testing.T) {
	m := New[int]()
	m.Set("one", 1)
	m.Set("two", 2)

	var seen []string
	m.Each(func(k string, v int) { seen = append(seen, k) })
	if len(seen) != 2 || seen[0] != "one" || seen[1] != "two" {
		t.Fatalf("visit order wrong: %v", seen)
	}
}
