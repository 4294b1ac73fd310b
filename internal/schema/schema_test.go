package schema

import (
	"reflect"
	"testing"
)

func TestResolveProjectionDefault(t *testing.T) {
	got := PovertyData.ResolveProjection(nil)
	want := []string{
		"hh_id", "province_name", "city_name", "barangay_name", "urb_rur",
		"no_of_indiv", "no_sleeping_rooms", "house_type", "has_electricity",
		"television", "ref", "motorcycle", "poverty_status", "poor",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("default projection = %v, want %v", got, want)
	}
}

func TestResolveProjectionDropsUnknown(t *testing.T) {
	got := PovertyData.ResolveProjection([]string{"hh_id", "unknown_col"})
	want := []string{"hh_id"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("projection = %v, want %v", got, want)
	}
}

func TestResolveProjectionPreservesOrder(t *testing.T) {
	requested := []string{"poor", "hh_id", "province_name"}
	got := PovertyData.ResolveProjection(requested)
	if !reflect.DeepEqual(got, requested) {
		t.Errorf("projection = %v, want caller order %v", got, requested)
	}
}

func TestResolveProjectionIdempotent(t *testing.T) {
	requested := []string{"hh_id", "poor", "bogus"}
	first := PovertyData.ResolveProjection(requested)
	second := PovertyData.ResolveProjection(first)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolving twice changed the projection: %v then %v", first, second)
	}
}

func TestResolveProjectionFallbackSurvey(t *testing.T) {
	got := PovertyData.ResolveProjection([]string{"nope", "also_nope"})
	if len(got) != 15 {
		t.Fatalf("survey fallback should be first 15 schema columns, got %d", len(got))
	}
	if got[0] != "hh_id" || got[14] != "water_supply" {
		t.Errorf("fallback = %v", got)
	}
}

func TestResolveProjectionFallbackPredictions(t *testing.T) {
	got := Predictions.ResolveProjection([]string{"nope"})
	if len(got) != 14 {
		t.Errorf("predictions fallback should be the full schema, got %d columns", len(got))
	}
}

func TestPredictionsDefaultIsFullSchema(t *testing.T) {
	got := Predictions.ResolveProjection(nil)
	if len(got) != len(Predictions.Columns()) {
		t.Errorf("default projection has %d columns, want %d", len(got), len(Predictions.Columns()))
	}
	if got[0] != "prediction_id" {
		t.Errorf("first column = %s, want prediction_id", got[0])
	}
}

func TestByName(t *testing.T) {
	if tab, ok := ByName("poverty_data"); !ok || tab != PovertyData {
		t.Error("ByName(poverty_data) should return the survey table")
	}
	if tab, ok := ByName("poverty_predictions"); !ok || tab != Predictions {
		t.Error("ByName(poverty_predictions) should return the prediction log")
	}
	if _, ok := ByName("users"); ok {
		t.Error("ByName(users) should not resolve")
	}
}

func TestHas(t *testing.T) {
	if !PovertyData.Has("no_of_indiv") {
		t.Error("survey table should declare no_of_indiv")
	}
	if PovertyData.Has("prediction_id") {
		t.Error("survey table should not declare prediction_id")
	}
}
