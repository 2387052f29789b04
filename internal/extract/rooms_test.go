package extract

import "testing"

func TestExtractRooms_Studio(t *testing.T) {
	r := ExtractRooms("Studio apartment in the city center")
	if r == nil || *r != 0 {
		t.Fatalf("expected studio to resolve to 0 rooms, got %v", r)
	}
}

func TestExtractRooms_StudioHebrew(t *testing.T) {
	r := ExtractRooms("סטודיו מרוהט במרכז העיר")
	if r == nil || *r != 0 {
		t.Fatalf("expected studio to resolve to 0 rooms, got %v", r)
	}
}

func TestExtractRooms_HalfRoomHebrew(t *testing.T) {
	r := ExtractRooms("דירת 3.5 חדרים משופצת")
	if r == nil || *r != 3.5 {
		t.Fatalf("expected 3.5 rooms, got %v", r)
	}
}

func TestExtractRooms_EnglishBedrooms(t *testing.T) {
	r := ExtractRooms("Lovely 2 bedrooms flat near the park")
	if r == nil || *r != 2 {
		t.Fatalf("expected 2 rooms, got %v", r)
	}
}

func TestExtractRooms_NoSignalReturnsNil(t *testing.T) {
	if r := ExtractRooms("Great apartment, no room count mentioned"); r != nil {
		t.Fatalf("expected nil, got %v", r)
	}
}
