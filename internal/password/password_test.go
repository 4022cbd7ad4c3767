package password

import "testing"

func TestHashProducesDistinctDigests(t *testing.T) {
	first, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same input must differ (random salt)")
	}
	if !Verify("correct horse battery staple", first) {
		t.Error("first digest did not verify")
	}
	if !Verify("correct horse battery staple", second) {
		t.Error("second digest did not verify")
	}
}

func TestVerify(t *testing.T) {
	digest, err := Hash("hunter22")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	tests := []struct {
		name      string
		plaintext string
		digest    string
		want      bool
	}{
		{"correct password", "hunter22", digest, true},
		{"wrong password", "hunter23", digest, false},
		{"empty password", "", digest, false},
		{"corrupt digest", "hunter22", "not-a-bcrypt-digest", false},
		{"empty digest", "hunter22", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Verify(tt.plaintext, tt.digest); got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}
