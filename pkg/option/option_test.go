package option

import "testing"

func TestMatch(t *testing.T) {
	t.Run("some calls onSome", func(t *testing.T) {
		got := Match(Some(41),
			func(v int) int { return v + 1 },
			func() int { return -1 },
		)
		if got != 42 {
			t.Fatalf("expected 42, got %d", got)
		}
	})

	t.Run("none calls onNone", func(t *testing.T) {
		got := Match(None[int](),
			func(v int) string { return "some" },
			func() string { return "none" },
		)
		if got != "none" {
			t.Fatalf("expected none, got %q", got)
		}
	})

	t.Run("zero value is none", func(t *testing.T) {
		var o Option[string]
		got := Match(o,
			func(string) bool { return true },
			func() bool { return false },
		)
		if got {
			t.Fatal("zero Option must be None")
		}
	})

	t.Run("some of zero value is still some", func(t *testing.T) {
		got := Match(Some(""),
			func(string) bool { return true },
			func() bool { return false },
		)
		if !got {
			t.Fatal("Some(\"\") must be Some")
		}
	})
}

func TestDo(t *testing.T) {
	tests := []struct {
		name string
		o    Option[int]
		want string
	}{
		{"some", Some(7), "some:7"},
		{"none", None[int](), "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			Do(tt.o,
				func(v int) { got = append(got, "some:"+string(rune('0'+v))) },
				func() { got = append(got, "none") },
			)
			if len(got) != 1 || got[0] != tt.want {
				t.Fatalf("expected exactly [%s], got %v", tt.want, got)
			}
		})
	}
}

func TestFromPtr(t *testing.T) {
	if ToPtr(FromPtr[int](nil)) != nil {
		t.Fatal("FromPtr(nil) must be None")
	}

	v := 7
	p := ToPtr(FromPtr(&v))
	if p == nil || *p != 7 {
		t.Fatalf("expected pointer to 7, got %v", p)
	}
	if p == &v {
		t.Fatal("ToPtr must return a copy, not the original pointer")
	}
}

func TestMap(t *testing.T) {
	doubled := Map(Some(3), func(v int) int { return v * 2 })
	if got := Match(doubled, func(v int) int { return v }, func() int { return 0 }); got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}

	calls := 0
	empty := Map(None[int](), func(v int) int { calls++; return v })
	if calls != 0 {
		t.Fatalf("Map must not call f on None, got %d calls", calls)
	}
	if ToPtr(empty) != nil {
		t.Fatal("Map of None must be None")
	}
}

func TestFilter(t *testing.T) {
	even := func(v int) bool { return v%2 == 0 }

	if p := ToPtr(Filter(Some(4), even)); p == nil || *p != 4 {
		t.Fatalf("expected Some(4), got %v", p)
	}
	if ToPtr(Filter(Some(3), even)) != nil {
		t.Fatal("expected None when keep rejects the value")
	}
	if ToPtr(Filter(None[int](), even)) != nil {
		t.Fatal("Filter of None must be None")
	}
}
