package usecase

import "testing"

func TestEditDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"jenkins", "jenkins", 0},
		{"jenkins", "jenkin", 1},
		{"aws", "azure", 4},
		{"", "abc", 3},
	}
	for _, tc := range cases {
		if got := editDistance([]rune(tc.a), []rune(tc.b)); got != tc.want {
			t.Fatalf("editDistance(%q, %q) = %d, expected %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestNameSimilarityExactMatch(t *testing.T) {
	if got := nameSimilarity("Jenkins", "Jenkins"); got != 1 {
		t.Fatalf("exact match similarity = %f, expected 1", got)
	}
}

func TestNameSimilarityCloseNames(t *testing.T) {
	if got := nameSimilarity("jenkis", "Jenkins"); got < 0.6 {
		t.Fatalf("close name similarity = %f, expected >= 0.6", got)
	}
	if got := nameSimilarity("github actions", "Github"); got < 0.4 {
		t.Fatalf("token overlap similarity = %f, expected >= 0.4", got)
	}
}

func TestNameSimilarityUnrelatedNames(t *testing.T) {
	if got := nameSimilarity("Terraform", "ALMx"); got >= 0.6 {
		t.Fatalf("unrelated name similarity = %f, expected < 0.6", got)
	}
}
