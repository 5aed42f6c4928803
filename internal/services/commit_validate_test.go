package services

import (
	"testing"
)

func TestValidateUnknownStep(t *testing.T) {
	if err := validateStep("bogus", &CommitPayload{}, "c1"); err == nil {
		t.Fatal("expected rejection for unknown step")
	}
}

func TestValidateMetaRequiresTitle(t *testing.T) {
	if err := validateStep("meta", &CommitPayload{}, ""); err == nil {
		t.Fatal("expected rejection without title")
	}
	title := "Surah Al-Fatiha"
	if err := validateStep("meta", &CommitPayload{Title: &title}, ""); err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
}

func TestValidateContainerRequiresTypeAndKey(t *testing.T) {
	cType := "surah"
	if err := validateStep("container", &CommitPayload{ContainerType: &cType}, ""); err == nil {
		t.Fatal("expected rejection without container_key")
	}
	cKey := "001"
	p := &CommitPayload{Container: &ContainerInput{ContainerType: &cType, ContainerKey: &cKey}}
	if err := validateStep("container", p, ""); err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
}

func TestValidateUnitsAyahBounds(t *testing.T) {
	from, to := 1, 7
	ok := &CommitPayload{Units: []UnitInput{{AyahFrom: &from, AyahTo: &to}}}
	if err := validateStep("units", ok, "c1"); err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	// Untyped units default to ayah and need both bounds.
	bad := &CommitPayload{Units: []UnitInput{{AyahFrom: &from}}}
	if err := validateStep("units", bad, "c1"); err == nil {
		t.Fatal("expected rejection for ayah unit missing ayah_to")
	}
	passage := "passage"
	ref := "1:1"
	typed := &CommitPayload{Units: []UnitInput{{UnitType: &passage, StartRef: &ref}}}
	if err := validateStep("units", typed, "c1"); err != nil {
		t.Fatalf("non-ayah units need no bounds: %v", err)
	}
}

func TestValidateOccurrenceStepsNeedContainer(t *testing.T) {
	idx := 0
	surface := "kitab"
	p := &CommitPayload{OccTokens: []TokenOccInput{{SurfaceAr: &surface, PosIndex: &idx}}}
	if err := validateStep("tokens", p, ""); err == nil {
		t.Fatal("expected rejection without an active container")
	}
	if err := validateStep("tokens", p, "c1"); err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	if err := validateStep("tokens", &CommitPayload{}, "c1"); err == nil {
		t.Fatal("expected rejection without occ_tokens")
	}
}

func TestValidateLinksNeedAtLeastOneList(t *testing.T) {
	if err := validateStep("links", &CommitPayload{}, "c1"); err == nil {
		t.Fatal("expected rejection for empty links step")
	}
	from, to, lt := "a", "b", "idafa"
	p := &CommitPayload{PairLinks: []PairLinkInput{{FromTokenOcc: &from, ToTokenOcc: &to, LinkType: &lt}}}
	if err := validateStep("links", p, ""); err != nil {
		t.Fatalf("links step needs no container: %v", err)
	}
}
