/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package segmenttrie

import "testing"

func TestInsertAndMatch(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("payment.gateway", 502))
	must(t, tr.Insert("coupon.use.already_used", 409))
	must(t, tr.Insert("outbox.publish.retry.exhausted", 500))

	tests := []struct {
		reason  string
		want    int
		pattern string
	}{
		{"payment.gateway.timeout", 502, "payment.gateway"},
		{"payment.gateway", 502, "payment.gateway"},
		{"coupon.use.already_used", 409, "coupon.use.already_used"},
		{"outbox.publish.retry.exhausted", 500, "outbox.publish.retry.exhausted"},
	}
	for _, tt := range tests {
		v, ok, p := tr.MatchWithPattern(tt.reason)
		if !ok || v != tt.want || p != tt.pattern {
			t.Fatalf("MatchWithPattern(%q) = (%v, %v, %q); want (%v, true, %q)", tt.reason, v, ok, p, tt.want, tt.pattern)
		}
	}

	if _, ok := tr.Match("payment.gate"); ok {
		t.Fatalf("partial segment must not match")
	}
	if _, ok := tr.Match("payment"); ok {
		t.Fatalf("shorter reason must not match a longer prefix")
	}
}

func TestLongestPrefixWins(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("payment", 500))
	must(t, tr.Insert("payment.gateway", 502))
	must(t, tr.Insert("payment.gateway.timeout", 504))

	if v, _ := tr.Match("payment.gateway.timeout.read"); v != 504 {
		t.Fatalf("got %d, want 504", v)
	}
	if v, _ := tr.Match("payment.gateway.refused"); v != 502 {
		t.Fatalf("got %d, want 502", v)
	}
	if v, _ := tr.Match("payment.card"); v != 500 {
		t.Fatalf("got %d, want 500", v)
	}
}

func TestWildcard_OneSegment(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("coupon.*.expired", 410))
	must(t, tr.Insert("coupon.use.expired", 400))

	if v, ok, p := tr.MatchWithPattern("coupon.use.expired"); !ok || v != 400 || p != "coupon.use.expired" {
		t.Fatalf("literal must beat wildcard at equal depth: ok=%v v=%v p=%q", ok, v, p)
	}
	if v, ok, p := tr.MatchWithPattern("coupon.issue.expired.yesterday"); !ok || v != 410 || p != "coupon.*.expired" {
		t.Fatalf("wildcard match failed: ok=%v v=%v p=%q", ok, v, p)
	}
	if _, ok := tr.Match("coupon.expired"); ok {
		t.Fatalf("wildcard must not match zero segments")
	}
}

func TestLPM_PrefersDeeperWildcardPath(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("a.*.c", 7))
	// a literal branch that stops short must not hide a deeper wildcard hit
	must(t, tr.Insert("a.b", 1))

	if v, ok, p := tr.MatchWithPattern("a.b.c"); !ok || v != 7 || p != "a.*.c" {
		t.Fatalf("LPM must choose wildcard path: ok=%v v=%v p=%q", ok, v, p)
	}
}

func TestInsert_Replaces(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("order.stock", 1))
	must(t, tr.Insert("order.stock", 2))
	if v, _ := tr.Match("order.stock"); v != 2 {
		t.Fatalf("re-insert must replace, got %d", v)
	}
}

func TestInvalidInputs(t *testing.T) {
	tr := New[int]()
	for _, p := range []string{"", "UPPER.case", "a..b", "*", "*.*", "order.", "9lives"} {
		if err := tr.Insert(p, 1); err == nil {
			t.Fatalf("Insert(%q) must fail", p)
		}
	}
	must(t, tr.Insert("order.stock", 1))
	for _, r := range []string{"UPPER.case", "order..stock", "Order.stock"} {
		if _, ok := tr.Match(r); ok {
			t.Fatalf("Match(%q) should be false for invalid reason", r)
		}
	}

	var nilTrie *Trie[int]
	if err := nilTrie.Insert("a.b", 1); err == nil {
		t.Fatalf("insert on nil trie must fail")
	}
	if _, ok := nilTrie.Match("a.b"); ok {
		t.Fatalf("nil trie must not match")
	}
}

func TestValidSegment(t *testing.T) {
	tests := []struct {
		seg  string
		wild bool
		want bool
	}{
		{"coupon", false, true},
		{"already_used", false, true},
		{"v2", false, true},
		{"*", true, true},
		{"*", false, false},
		{"", true, false},
		{"2fa", false, false},
		{"Coupon", false, false},
		{"a-b", false, false},
	}
	for _, tt := range tests {
		if got := ValidSegment(tt.seg, tt.wild); got != tt.want {
			t.Fatalf("ValidSegment(%q, %v) = %v, want %v", tt.seg, tt.wild, got, tt.want)
		}
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
