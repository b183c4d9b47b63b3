package stripe

import "testing"

func TestModeFromSecretKey(t *testing.T) {
	cases := []struct {
		key  string
		want Mode
	}{
		{"sk_test_abc123", ModeTest},
		{"rk_test_abc123", ModeTest},
		{"sk_live_abc123", ModeLive},
		{"rk_live_abc123", ModeLive},
		{"pk_live_abc123", ModeUnknown},
		{"", ModeUnknown},
	}
	for _, tc := range cases {
		if got := ModeFromSecretKey(tc.key); got != tc.want {
			t.Errorf("ModeFromSecretKey(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestClassifyIdentifier(t *testing.T) {
	cases := []struct {
		id   string
		want Mode
	}{
		{"acct_test_1AbCd", ModeTest},
		{"cs_test_a1b2c3", ModeTest},
		{"pi_test_xyz", ModeTest},
		{"tr_test_xyz", ModeTest},
		{"ch_test_xyz", ModeTest},
		{"evt_test_xyz", ModeTest},
		{"acct_1AbCd", ModeLive},
		{"cs_a1b2c3", ModeLive},
		{"pi_3OaBcDeFg", ModeLive},
		{"not-a-stripe-id", ModeLive},
		{"", ModeUnknown},
	}
	for _, tc := range cases {
		if got := ClassifyIdentifier(tc.id); got != tc.want {
			t.Errorf("ClassifyIdentifier(%q) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestMatchesMode(t *testing.T) {
	cases := []struct {
		name string
		id   string
		mode Mode
		want bool
	}{
		{"test id against test mode", "cs_test_a1b2c3", ModeTest, true},
		{"test id against live mode", "cs_test_a1b2c3", ModeLive, false},
		{"live id against live mode", "cs_a1b2c3", ModeLive, true},
		{"live id against test mode", "cs_a1b2c3", ModeTest, false},
		{"empty id never matches", "", ModeTest, false},
		{"unknown mode never matches", "cs_a1b2c3", ModeUnknown, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MatchesMode(tc.id, tc.mode); got != tc.want {
				t.Errorf("MatchesMode(%q, %q) = %v, want %v", tc.id, tc.mode, got, tc.want)
			}
		})
	}
}
