package model_test

import (
	"errors"
	"testing"

	"github.com/belinwu/WeatherApp/model"
)

func TestParseLanguage_MatchesRegionalTags(t *testing.T) {
	tests := []struct {
		input string
		want  model.Language
	}{
		{"en", model.English},
		{"en-GB", model.English},
		{"fr-CA", model.French},
		{"de-AT", model.German},
		{" es ", model.Spanish},
		{"sw", model.Swahili},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := model.ParseLanguage(tt.input)
			if err != nil {
				t.Fatalf("ParseLanguage(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLanguage(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLanguage_RejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "not a tag!", "123456789"} {
		_, err := model.ParseLanguage(input)
		if !errors.Is(err, model.ErrUnsupportedLanguage) {
			t.Errorf("ParseLanguage(%q) error = %v, want ErrUnsupportedLanguage", input, err)
		}
	}
}

func TestLanguage_TagRoundTrip(t *testing.T) {
	for _, l := range model.AllLanguages() {
		if got := l.Tag().String(); got != l.Value() {
			t.Errorf("%q.Tag() = %q", l, got)
		}
	}
}

func TestParseUnits(t *testing.T) {
	got, err := model.ParseUnits("IMPERIAL")
	if err != nil {
		t.Fatalf("ParseUnits() error = %v", err)
	}
	if got != model.Imperial {
		t.Errorf("ParseUnits() = %q, want %q", got, model.Imperial)
	}

	if _, err := model.ParseUnits("kelvin"); !errors.Is(err, model.ErrUnknownUnits) {
		t.Errorf("ParseUnits(kelvin) error = %v, want ErrUnknownUnits", err)
	}
}

func TestResult(t *testing.T) {
	ok := model.Success(42)
	if v, present := ok.Data(); !present || v != 42 {
		t.Errorf("Success.Data() = %v, %v", v, present)
	}
	if _, isFailure := ok.Kind(); isFailure {
		t.Error("Success.Kind() reported a failure")
	}

	failed := model.Failure[int](model.ErrorNetworkUnavailable)
	if failed.IsSuccess() {
		t.Error("Failure.IsSuccess() = true")
	}
	if kind, isFailure := failed.Kind(); !isFailure || kind != model.ErrorNetworkUnavailable {
		t.Errorf("Failure.Kind() = %v, %v", kind, isFailure)
	}

	var zero model.Result[string]
	if kind, isFailure := zero.Kind(); !isFailure || kind != model.ErrorGeneric {
		t.Errorf("zero Result.Kind() = %v, %v, want generic failure", kind, isFailure)
	}
}

func TestLocation_IsZero(t *testing.T) {
	if !model.NoLocation.IsZero() {
		t.Error("NoLocation.IsZero() = false")
	}
	if model.NewLocation(10, 20).IsZero() {
		t.Error("NewLocation(10, 20).IsZero() = true")
	}
}

func TestWeather_IsEmpty(t *testing.T) {
	if !(model.Weather{}).IsEmpty() {
		t.Error("zero Weather should be empty")
	}
	w := model.Weather{Current: &model.Measurement{Temperature: 18}}
	if w.IsEmpty() {
		t.Error("Weather with current measurement should not be empty")
	}
}

func TestParseErrorKind_RoundTrip(t *testing.T) {
	for _, kind := range model.AllErrorKinds() {
		got, err := model.ParseErrorKind(" " + kind.String() + " ")
		if err != nil {
			t.Fatalf("ParseErrorKind(%q) error = %v", kind, err)
		}
		if got != kind {
			t.Errorf("ParseErrorKind(%q) = %v", kind, got)
		}
	}

	if _, err := model.ParseErrorKind("timeout"); !errors.Is(err, model.ErrUnknownErrorKind) {
		t.Errorf("ParseErrorKind(timeout) error = %v, want ErrUnknownErrorKind", err)
	}
}
