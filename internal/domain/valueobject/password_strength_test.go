package valueobject

import "testing"

func TestEvaluatePassword(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		expectedScore int
		expectedLabel string
	}{
		{name: "empty string", password: "", expectedScore: 0, expectedLabel: "Very Weak"},
		{name: "short with nothing", password: "!!", expectedScore: 1, expectedLabel: "Weak"},
		{name: "short lowercase only", password: "abc", expectedScore: 0, expectedLabel: "Very Weak"},
		{name: "short uppercase only", password: "ABC", expectedScore: 0, expectedLabel: "Very Weak"},
		{name: "long lowercase only", password: "abcdefgh", expectedScore: 1, expectedLabel: "Weak"},
		{name: "mixed case short", password: "Abc", expectedScore: 1, expectedLabel: "Weak"},
		{name: "mixed case with digit short", password: "Abc1", expectedScore: 2, expectedLabel: "Medium"},
		{name: "no special character", password: "Abc12345", expectedScore: 3, expectedLabel: "Good"},
		{name: "all requirements", password: "Abcd123!", expectedScore: 4, expectedLabel: "Strong"},
		{name: "special outside allowed set", password: "Abcd123?", expectedScore: 3, expectedLabel: "Good"},
		{name: "digits and specials only", password: "12345678!", expectedScore: 3, expectedLabel: "Good"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := EvaluatePassword(tt.password)
			if e.Score != tt.expectedScore {
				t.Errorf("expected score %d, got %d", tt.expectedScore, e.Score)
			}
			if label := e.Level().Label; label != tt.expectedLabel {
				t.Errorf("expected label %q, got %q", tt.expectedLabel, label)
			}
		})
	}
}

func TestEvaluatePassword_ShortPasswordsWithoutClassesScoreZero(t *testing.T) {
	for _, p := range []string{"", "a", "abcdefg", "ZZZZ", "       ", "é"} {
		if score := EvaluatePassword(p).Score; score != 0 {
			t.Errorf("password %q: expected score 0, got %d", p, score)
		}
	}
}

func TestEvaluatePassword_Predicates(t *testing.T) {
	e := EvaluatePassword("Abc12345")

	if !e.HasLowercase || !e.HasUppercase || !e.HasDigit || !e.HasMinLength {
		t.Errorf("expected lowercase, uppercase, digit and length to be satisfied: %+v", e)
	}
	if e.HasSpecial {
		t.Error("expected special to be unsatisfied")
	}
	if e.IsStrong() {
		t.Error("expected password not to be strong")
	}
}

func TestEvaluatePassword_LengthCountsCharacters(t *testing.T) {
	// Seven runes, more than eight bytes.
	if EvaluatePassword("ééééééé").HasMinLength {
		t.Error("expected 7 characters to fail the length requirement")
	}
	if !EvaluatePassword("éééééééé").HasMinLength {
		t.Error("expected 8 characters to satisfy the length requirement")
	}

	// Emoji outside the BMP count once each, not as surrogate pairs.
	if EvaluatePassword("Ab1!😀😀").HasMinLength {
		t.Error("expected 6 characters with emoji to fail the length requirement")
	}
	if !EvaluatePassword("Ab1!😀😀😀😀").HasMinLength {
		t.Error("expected 8 characters with emoji to satisfy the length requirement")
	}
}

func TestEvaluatePassword_Idempotent(t *testing.T) {
	for _, p := range []string{"", "Abc12345", "Abcd123!", "weak"} {
		first := EvaluatePassword(p)
		second := EvaluatePassword(p)
		if first != second {
			t.Errorf("password %q: evaluations differ: %+v vs %+v", p, first, second)
		}
		if first.Level() != second.Level() {
			t.Errorf("password %q: levels differ", p)
		}
	}
}

func TestPasswordEvaluation_Indicators(t *testing.T) {
	indicators := EvaluatePassword("abc12345").Indicators()

	if len(indicators) != 4 {
		t.Fatalf("expected 4 indicators, got %d", len(indicators))
	}

	expected := map[RequirementGroup]bool{
		GroupMixedCase: false,
		GroupDigit:     true,
		GroupSpecial:   false,
		GroupLength:    true,
	}
	for _, ind := range indicators {
		if ind.Satisfied != expected[ind.Group] {
			t.Errorf("group %s: expected satisfied=%v, got %v", ind.Group, expected[ind.Group], ind.Satisfied)
		}
		wantColor := ColorUnsatisfied
		if ind.Satisfied {
			wantColor = ColorSatisfied
		}
		if ind.Color != wantColor {
			t.Errorf("group %s: expected color %s, got %s", ind.Group, wantColor, ind.Color)
		}
	}
}

func TestClassifyScore(t *testing.T) {
	tests := []struct {
		score  int
		label  string
		weight string
		color  string
	}{
		{0, "Very Weak", "10%", "#F7567C"},
		{1, "Weak", "40%", "#FFA500"},
		{2, "Medium", "70%", "#FFD700"},
		{3, "Good", "85%", "#9ACD32"},
		{4, "Strong", "100%", "#28a745"},
	}

	for _, tt := range tests {
		level := ClassifyScore(tt.score)
		if level.Score != tt.score {
			t.Errorf("score %d: expected level score %d, got %d", tt.score, tt.score, level.Score)
		}
		if level.Label != tt.label {
			t.Errorf("score %d: expected label %q, got %q", tt.score, tt.label, level.Label)
		}
		if level.WeightPercent() != tt.weight {
			t.Errorf("score %d: expected weight %s, got %s", tt.score, tt.weight, level.WeightPercent())
		}
		if level.Color != tt.color {
			t.Errorf("score %d: expected color %s, got %s", tt.score, tt.color, level.Color)
		}
	}

	if len(strengthLevels) != 5 {
		t.Errorf("expected exactly 5 levels, got %d", len(strengthLevels))
	}
}

func TestClassifyScore_Clamps(t *testing.T) {
	if got := ClassifyScore(-3).Label; got != "Very Weak" {
		t.Errorf("expected negative score to clamp to Very Weak, got %q", got)
	}
	if got := ClassifyScore(9).Label; got != "Strong" {
		t.Errorf("expected large score to clamp to Strong, got %q", got)
	}
}
